package core

import (
	"context"
	"strings"
)

// ModuleDelimiter separates the containing module from the rest of a test identifier.
const ModuleDelimiter = "::"

// TestID uniquely names one executable test case, e.g. "pkg/store::TestFlush".
type TestID string

// Module returns the identifier truncated to its containing module (file or package).
// Identifiers without a delimiter are already module level.
func (t TestID) Module() TestID {
	if i := strings.Index(string(t), ModuleDelimiter); i >= 0 {
		return t[:i]
	}
	return t
}

// WorkerID identifies a parallel worker, e.g. "gw0".
type WorkerID string

// MasterWorker is the identity of every process that is not a distributed worker.
const MasterWorker WorkerID = "master"

// Granularity is the unit in which executed tests are tracked.
type Granularity string

// list of supported granularities
const (
	TestGranularity Granularity = "test"
	FileGranularity Granularity = "file"
)

// DistMode is the distribution strategy requested from the worker supervisor.
type DistMode string

// list of distribution modes
const (
	DistNo       DistMode = "no"
	DistLoad     DistMode = "load"
	DistLoadFile DistMode = "loadfile"
)

// Granularity returns the tracking granularity for the distribution mode.
func (d DistMode) Granularity() Granularity {
	if d == DistLoadFile {
		return FileGranularity
	}
	return TestGranularity
}

// WorkerInput is the context the supervisor hands to a spawned worker process.
type WorkerInput struct {
	WorkerID    WorkerID
	WorkerCount int
}

// Role is computed once per process and never changes afterwards.
type Role struct {
	Worker      WorkerID
	Parallelism int
	Granularity Granularity
}

// IsWorker reports whether the process runs as a distributed worker.
func (r Role) IsWorker() bool {
	return r.Worker != "" && r.Worker != MasterWorker
}

// Parallel reports whether parallel execution was requested for the session.
func (r Role) Parallel() bool {
	return r.Parallelism > 0
}

// Plugin receives the lifecycle events of a test session. The session driver
// invokes every method synchronously from a single goroutine.
type Plugin interface {
	// Name returns the registration name of the plugin.
	Name() string
	// OnCollectionFinalized may filter and reorder the collected candidates.
	OnCollectionFinalized(ctx context.Context, candidates []TestID) ([]TestID, error)
	// OnTestStarting is called right before a test executes.
	OnTestStarting(ctx context.Context, id TestID)
	// OnSessionEnding is called once after the last test finished.
	OnSessionEnding(ctx context.Context) error
}

// CollectionHinter narrows the paths the host needs to collect from.
// The hint only affects collection cost, never the final candidate list.
type CollectionHinter interface {
	CollectionPaths(ctx context.Context) ([]string, error)
}

// Recorder tracks the tests executed by one worker and persists them.
type Recorder interface {
	Plugin
	// Add inserts id unless it was recorded before.
	Add(id TestID)
	// Recorded returns the identifiers in first execution order.
	Recorded() []TestID
	// DestinationPath returns the worker specific record file path.
	DestinationPath() string
	// Flush truncates and writes the record file.
	Flush(ctx context.Context) error
}

// Replayer reduces a candidate collection to a recorded subset in recorded order.
type Replayer interface {
	Plugin
	CollectionHinter
	// TargetTests returns the replay spec, loading it on first access.
	TargetTests(ctx context.Context) ([]TestID, error)
	// TargetTestModules returns the distinct modules of the replay spec.
	TargetTestModules(ctx context.Context) ([]TestID, error)
	// FilterAndOrder keeps the candidates found in the replay spec, in spec order.
	FilterAndOrder(ctx context.Context, candidates []TestID) ([]TestID, error)
}
