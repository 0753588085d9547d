package recorder

import (
	"context"
	"path/filepath"

	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/LambdaTest/xdist-tracker/pkg/record"
)

// Name is the registration name of the recorder plugin.
const Name = "xdist_tracker"

type recorder struct {
	logger   lumber.Logger
	role     core.Role
	rootDir  string
	prefix   string
	record   *record.Record
	uploader core.RecordUploader
}

// Option configures the recorder.
type Option func(r *recorder)

// WithUploader publishes the record file after every successful flush.
func WithUploader(uploader core.RecordUploader) Option {
	return func(r *recorder) {
		r.uploader = uploader
	}
}

// New returns a recorder writing to {prefix}_worker_{identity}.txt below rootDir.
func New(role core.Role, rootDir, prefix string, logger lumber.Logger, opts ...Option) core.Recorder {
	if prefix == "" {
		prefix = constants.DefaultXdistStats
	}
	r := &recorder{
		logger:  logger.WithFields(lumber.Fields{"plugin": Name, "worker": role.Worker}),
		role:    role,
		rootDir: rootDir,
		prefix:  prefix,
		record:  record.New(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *recorder) Name() string {
	return Name
}

// Add inserts id once. Empty identifiers are dropped, a record file cannot
// tell them apart from blank lines.
func (r *recorder) Add(id core.TestID) {
	if id == "" {
		return
	}
	if r.role.Granularity == core.FileGranularity {
		id = id.Module()
	}
	r.record.Add(id)
}

func (r *recorder) Recorded() []core.TestID {
	return r.record.IDs()
}

func (r *recorder) DestinationPath() string {
	fileName := r.prefix + "_" + constants.WorkerToken + "_" + string(r.role.Worker) + constants.RecordFileExt
	return filepath.Join(r.rootDir, fileName)
}

// Flush writes the record once per session. It must only run on workers,
// two masters would otherwise race on the same file. Failures are returned
// unlogged, the session driver reports them.
func (r *recorder) Flush(ctx context.Context) error {
	path := r.DestinationPath()
	if err := record.WriteFile(path, r.record.IDs()); err != nil {
		return err
	}
	r.logger.Infof("stored %d executed tests in %s", r.record.Len(), path)
	if r.uploader == nil {
		return nil
	}
	blobURL, err := r.uploader.UploadFile(ctx, filepath.Base(path), path)
	if err != nil {
		return err
	}
	r.logger.Debugf("uploaded %s to %s", path, blobURL)
	return nil
}

func (r *recorder) OnCollectionFinalized(ctx context.Context, candidates []core.TestID) ([]core.TestID, error) {
	return candidates, nil
}

func (r *recorder) OnTestStarting(ctx context.Context, id core.TestID) {
	r.Add(id)
}

func (r *recorder) OnSessionEnding(ctx context.Context) error {
	if !r.role.IsWorker() {
		r.logger.Debugf("not a distributed worker, skipping record of %d tests", r.record.Len())
		return nil
	}
	return r.Flush(ctx)
}
