// Package role decides once per process whether it runs as a distributed worker.
package role

import (
	"strconv"
	"strings"

	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/pkg/errors"
)

// LookupFunc reads an environment variable, see os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// WorkerInputFromEnv returns the worker input context the supervisor exported
// for this process, or nil when the process was not spawned as a worker.
func WorkerInputFromEnv(lookup LookupFunc) (*core.WorkerInput, error) {
	workerID, ok := lookup(constants.WorkerEnv)
	workerID = strings.TrimSpace(workerID)
	if !ok || workerID == "" {
		return nil, nil
	}
	count, err := WorkerCountFromEnv(lookup)
	if err != nil {
		return nil, err
	}
	return &core.WorkerInput{WorkerID: core.WorkerID(workerID), WorkerCount: count}, nil
}

// WorkerCountFromEnv returns the number of workers requested for the session.
// An unset or empty value means no parallelism.
func WorkerCountFromEnv(lookup LookupFunc) (int, error) {
	raw, ok := lookup(constants.WorkerCountEnv)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return 0, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0, errors.Wrapf(errs.ErrInvalidWorkerCount, "%s=%q", constants.WorkerCountEnv, raw)
	}
	return count, nil
}

// Detect computes the role of the process. Only the presence of a worker input
// makes a process a worker: requesting workers does not guarantee one was assigned.
func Detect(input *core.WorkerInput, numProcesses int, dist core.DistMode) core.Role {
	r := core.Role{
		Worker:      core.MasterWorker,
		Parallelism: numProcesses,
		Granularity: dist.Granularity(),
	}
	if input == nil {
		return r
	}
	if input.WorkerID != "" {
		r.Worker = input.WorkerID
	}
	if input.WorkerCount > r.Parallelism {
		r.Parallelism = input.WorkerCount
	}
	return r
}
