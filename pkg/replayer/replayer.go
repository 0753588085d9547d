package replayer

import (
	"context"
	"strings"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/LambdaTest/xdist-tracker/pkg/record"
)

// Name is the registration name of the replayer plugin.
const Name = "xdist_runner"

type state int

const (
	unloaded state = iota
	loaded
)

type replayer struct {
	logger lumber.Logger
	source core.RecordSource
	state  state
	spec   *record.Spec
}

// New returns a replayer reading its spec from source on first access.
func New(source core.RecordSource, logger lumber.Logger) core.Replayer {
	return &replayer{
		logger: logger.WithFields(lumber.Fields{"plugin": Name, "source": source.String()}),
		source: source,
		state:  unloaded,
	}
}

func (r *replayer) Name() string {
	return Name
}

// LoadReplaySpec reads the source unconditionally. Use targetSpec for the memoized spec.
func (r *replayer) LoadReplaySpec(ctx context.Context) (*record.Spec, error) {
	spec, err := record.Load(ctx, r.source)
	if err != nil {
		r.logger.Errorf("failed to read replay source %s, error: %v", r.source, err)
		return nil, err
	}
	for _, id := range spec.IDs() {
		if !strings.Contains(string(id), core.ModuleDelimiter) {
			r.logger.Warnf("replay source %s contains module level entry %q, per test candidates will not match it", r.source, id)
			break
		}
	}
	r.logger.Debugf("loaded %d target tests from %s", spec.Len(), r.source)
	return spec, nil
}

func (r *replayer) targetSpec(ctx context.Context) (*record.Spec, error) {
	if r.state == loaded {
		return r.spec, nil
	}
	spec, err := r.LoadReplaySpec(ctx)
	if err != nil {
		return nil, err
	}
	r.spec = spec
	r.state = loaded
	return r.spec, nil
}

func (r *replayer) TargetTests(ctx context.Context) ([]core.TestID, error) {
	spec, err := r.targetSpec(ctx)
	if err != nil {
		return nil, err
	}
	return spec.IDs(), nil
}

func (r *replayer) TargetTestModules(ctx context.Context) ([]core.TestID, error) {
	spec, err := r.targetSpec(ctx)
	if err != nil {
		return nil, err
	}
	return spec.Modules(), nil
}

func (r *replayer) CollectionPaths(ctx context.Context) ([]string, error) {
	modules, err := r.TargetTestModules(ctx)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(modules))
	for i, module := range modules {
		paths[i] = string(module)
	}
	return paths, nil
}

func (r *replayer) FilterAndOrder(ctx context.Context, candidates []core.TestID) ([]core.TestID, error) {
	spec, err := r.targetSpec(ctx)
	if err != nil {
		return nil, err
	}
	return spec.Filter(candidates), nil
}

func (r *replayer) OnCollectionFinalized(ctx context.Context, candidates []core.TestID) ([]core.TestID, error) {
	selected, err := r.FilterAndOrder(ctx, candidates)
	if err != nil {
		return nil, err
	}
	r.logger.Infof("selected %d of %d collected tests for replay", len(selected), len(candidates))
	return selected, nil
}

func (r *replayer) OnTestStarting(ctx context.Context, id core.TestID) {}

func (r *replayer) OnSessionEnding(ctx context.Context) error {
	return nil
}
