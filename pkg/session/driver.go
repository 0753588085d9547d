package session

import (
	"context"

	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/LambdaTest/xdist-tracker/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Driver runs one test session and fires the plugin lifecycle events.
type Driver struct {
	logger    lumber.Logger
	role      core.Role
	collector core.Collector
	executor  core.Executor
	plugins   []core.Plugin
	tracer    trace.Tracer
}

// NewDriver returns a new session driver.
func NewDriver(role core.Role,
	collector core.Collector,
	executor core.Executor,
	plugins []core.Plugin,
	logger lumber.Logger) *Driver {
	return &Driver{
		logger:    logger,
		role:      role,
		collector: collector,
		executor:  executor,
		plugins:   plugins,
		tracer:    otel.Tracer(constants.ServiceName),
	}
}

// Run collects the tests below paths, lets the plugins reshape the collection,
// executes every test and finally ends the session. Session ending hooks run
// even when collection or execution failed.
func (d *Driver) Run(ctx context.Context, paths []string) (summary *core.SessionSummary, err error) {
	sessionID := utils.GenerateUUID()
	logger := d.logger.WithFields(lumber.Fields{"session": sessionID, "worker": d.role.Worker})
	ctx, span := d.tracer.Start(ctx, "session", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("worker.id", string(d.role.Worker)),
	))
	defer span.End()

	summary = &core.SessionSummary{
		SessionID: sessionID,
		Worker:    d.role.Worker,
		Counts:    make(map[core.TestStatus]int),
	}
	defer func() {
		if endErr := d.endSession(ctx, logger); endErr != nil && err == nil {
			err = endErr
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	tests, err := d.collect(ctx, paths, logger)
	if err != nil {
		return summary, err
	}
	for _, id := range tests {
		for _, p := range d.plugins {
			p.OnTestStarting(ctx, id)
		}
		result, execErr := d.executor.Execute(ctx, id)
		if execErr != nil {
			logger.Errorf("failed to execute test %s, error: %v", id, execErr)
			return summary, execErr
		}
		summary.Counts[result.Status]++
		summary.Results = append(summary.Results, result)
		logger.Debugf("test %s %s in %s", id, result.Status, result.Duration)
	}
	logger.Infof("session finished, passed %d, failed %d, skipped %d",
		summary.Counts[core.TestPassed], summary.Counts[core.TestFailed], summary.Counts[core.TestSkipped])
	return summary, nil
}

func (d *Driver) collect(ctx context.Context, paths []string, logger lumber.Logger) ([]core.TestID, error) {
	ctx, span := d.tracer.Start(ctx, "collection")
	defer span.End()

	for _, p := range d.plugins {
		hinter, ok := p.(core.CollectionHinter)
		if !ok {
			continue
		}
		hinted, err := hinter.CollectionPaths(ctx)
		if err != nil {
			return nil, err
		}
		logger.Debugf("plugin %s narrowed collection to %v", p.Name(), hinted)
		paths = hinted
	}

	candidates, err := d.collector.Collect(ctx, paths)
	if err != nil {
		logger.Errorf("failed to collect tests, error: %v", err)
		return nil, err
	}
	for _, p := range d.plugins {
		if candidates, err = p.OnCollectionFinalized(ctx, candidates); err != nil {
			logger.Errorf("plugin %s failed to finalize collection, error: %v", p.Name(), err)
			return nil, err
		}
	}
	span.SetAttributes(attribute.Int("tests.count", len(candidates)))
	return candidates, nil
}

func (d *Driver) endSession(ctx context.Context, logger lumber.Logger) error {
	ctx, span := d.tracer.Start(ctx, "sessionfinish")
	defer span.End()

	var firstErr error
	for _, p := range d.plugins {
		if err := p.OnSessionEnding(ctx); err != nil {
			logger.Errorf("plugin %s failed to end session, error: %v", p.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
