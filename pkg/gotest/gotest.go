// Package gotest adapts the go toolchain as the host of a test session.
// Test identifiers have the form "<import path>::<TestName>".
package gotest

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/pkg/errors"
)

// CommandRunner runs a command in dir and returns its combined output.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Config configures the go test host.
type Config struct {
	// Binary is the go binary, "go" by default.
	Binary string
	// Dir is the working directory of every go invocation.
	Dir string
	// Flags are passed to every go test invocation.
	Flags []string
	// Timeout bounds a single test execution.
	Timeout time.Duration
}

// Host collects and executes go tests.
type Host struct {
	cfg    Config
	run    CommandRunner
	logger lumber.Logger
}

var listedTest = regexp.MustCompile(`^(Test|Example|Fuzz)\w*$`)

// New returns a go test host executing commands with os/exec.
func New(cfg Config, logger lumber.Logger) *Host {
	return NewWithRunner(cfg, execRunner, logger)
}

// NewWithRunner returns a go test host using run to execute commands.
func NewWithRunner(cfg Config, run CommandRunner, logger lumber.Logger) *Host {
	if cfg.Binary == "" {
		cfg.Binary = constants.DefaultGoBinary
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = constants.DefaultTestTimeout
	}
	return &Host{cfg: cfg, run: run, logger: logger}
}

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Collect lists the tests of the packages matching paths, "./..." when empty.
func (h *Host) Collect(ctx context.Context, paths []string) ([]core.TestID, error) {
	if len(paths) == 0 {
		paths = []string{"./..."}
	}
	args := append([]string{"test", "-list", "."}, h.cfg.Flags...)
	args = append(args, paths...)
	out, err := h.run(ctx, h.cfg.Dir, h.cfg.Binary, args...)
	if err != nil {
		h.logger.Errorf("go test -list failed: %v\n%s", err, out)
		return nil, errors.Wrapf(errs.ErrGoTestList, "%v", err)
	}
	ids := ParseList(out)
	h.logger.Debugf("collected %d go tests from %v", len(ids), paths)
	return ids, nil
}

// ParseList turns the output of "go test -list" into test identifiers. Test
// names precede the "ok" summary line naming their package.
func ParseList(out []byte) []core.TestID {
	var ids []core.TestID
	var pending []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case listedTest.MatchString(line):
			pending = append(pending, line)
		case strings.HasPrefix(line, "ok"):
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			for _, name := range pending {
				ids = append(ids, core.TestID(fields[1]+core.ModuleDelimiter+name))
			}
			pending = pending[:0]
		}
	}
	return ids
}

// Execute runs a single test with "go test -run ^Name$".
func (h *Host) Execute(ctx context.Context, id core.TestID) (core.TestResult, error) {
	pkg, name, err := splitID(id)
	if err != nil {
		return core.TestResult{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, h.cfg.Timeout)
	defer cancel()

	args := append([]string{"test", "-count=1", "-v", "-run", "^" + regexp.QuoteMeta(name) + "$"}, h.cfg.Flags...)
	args = append(args, pkg)
	start := time.Now()
	out, runErr := h.run(ctx, h.cfg.Dir, h.cfg.Binary, args...)
	result := core.TestResult{ID: id, Duration: time.Since(start), Output: string(out)}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil && bytes.Contains(out, []byte("--- SKIP: "+name)):
		result.Status = core.TestSkipped
	case runErr == nil:
		result.Status = core.TestPassed
	case errors.As(runErr, &exitErr), errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.Status = core.TestFailed
	default:
		return result, runErr
	}
	return result, nil
}

func splitID(id core.TestID) (pkg, name string, err error) {
	i := strings.Index(string(id), core.ModuleDelimiter)
	if i <= 0 || i+len(core.ModuleDelimiter) >= len(id) {
		return "", "", errors.Errorf("invalid go test identifier %q", id)
	}
	return string(id[:i]), string(id[i+len(core.ModuleDelimiter):]), nil
}
