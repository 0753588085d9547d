package recorder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/LambdaTest/xdist-tracker/pkg/record"
	"github.com/LambdaTest/xdist-tracker/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workerRole = core.Role{Worker: "gw2", Parallelism: 3, Granularity: core.TestGranularity}

func TestRecorderAdd(t *testing.T) {
	r := New(workerRole, t.TempDir(), "", testutils.GetLogger())
	for _, id := range testutils.IDs("a", "b", "a", "c", "b") {
		r.Add(id)
	}
	assert.Equal(t, testutils.IDs("a", "b", "c"), r.Recorded())
}

func TestRecorderAddIgnoresEmpty(t *testing.T) {
	r := New(workerRole, t.TempDir(), "", testutils.GetLogger())
	r.Add("")
	assert.Empty(t, r.Recorded())
}

func TestRecorderAddFileGranularity(t *testing.T) {
	role := workerRole
	role.Granularity = core.FileGranularity
	r := New(role, t.TempDir(), "", testutils.GetLogger())
	for _, id := range testutils.IDs("tests/b.py::test_1", "tests/a.py::test_1", "tests/b.py::test_2") {
		r.OnTestStarting(context.Background(), id)
	}
	assert.Equal(t, testutils.IDs("tests/b.py", "tests/a.py"), r.Recorded())
}

func TestDestinationPath(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		worker core.WorkerID
		want   string
	}{
		{name: "default prefix", worker: "gw2", want: "xdist_stats_worker_gw2.txt"},
		{name: "custom prefix", prefix: "xxx", worker: "gw2", want: "xxx_worker_gw2.txt"},
		{name: "master", worker: core.MasterWorker, want: "xdist_stats_worker_master.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(core.Role{Worker: tt.worker}, "/root/dir", tt.prefix, testutils.GetLogger())
			assert.Equal(t, filepath.Join("/root/dir", tt.want), r.DestinationPath())
		})
	}
}

func TestFlush(t *testing.T) {
	dir := t.TempDir()
	r := New(workerRole, dir, "", testutils.GetLogger())
	r.Add("tests/test_xxx.py::test_xxx")
	require.NoError(t, r.Flush(context.Background()))

	raw, err := os.ReadFile(filepath.Join(dir, "xdist_stats_worker_gw2.txt"))
	require.NoError(t, err)
	assert.Equal(t, "tests/test_xxx.py::test_xxx", string(raw))
}

func TestFlushEmpty(t *testing.T) {
	dir := t.TempDir()
	r := New(workerRole, dir, "", testutils.GetLogger())
	require.NoError(t, r.Flush(context.Background()))

	raw, err := os.ReadFile(filepath.Join(dir, "xdist_stats_worker_gw2.txt"))
	require.NoError(t, err)
	assert.Equal(t, "", string(raw))
}

func TestFlushRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := New(workerRole, dir, "", testutils.GetLogger())
	ids := testutils.IDs("t::a", "t::multi\nline", "t::50%", "t::ñandú", "t::a", "t::b")
	for _, id := range ids {
		r.Add(id)
	}
	require.NoError(t, r.Flush(context.Background()))

	spec, err := record.Load(context.Background(), record.FileSource{Path: r.DestinationPath()})
	require.NoError(t, err)
	assert.Equal(t, r.Recorded(), spec.IDs())
}

func TestFlushFailure(t *testing.T) {
	r := New(workerRole, filepath.Join(t.TempDir(), "missing"), "", testutils.GetLogger())
	err := r.Flush(context.Background())
	assert.ErrorIs(t, err, errs.ErrRecordWrite)
}

func TestFlushUploads(t *testing.T) {
	dir := t.TempDir()
	uploads := &testutils.Uploads{}
	r := New(workerRole, dir, "", testutils.GetLogger(), WithUploader(uploads))
	r.Add("t::a")
	require.NoError(t, r.Flush(context.Background()))
	assert.Equal(t, map[string]string{
		"xdist_stats_worker_gw2.txt": filepath.Join(dir, "xdist_stats_worker_gw2.txt"),
	}, uploads.Calls)
}

func TestFlushUploadFailureKeepsFile(t *testing.T) {
	dir := t.TempDir()
	uploadErr := errors.New("boom")
	r := New(workerRole, dir, "", testutils.GetLogger(), WithUploader(&testutils.Uploads{Err: uploadErr}))
	r.Add("t::a")
	assert.ErrorIs(t, r.Flush(context.Background()), uploadErr)
	assert.FileExists(t, r.DestinationPath())
}

func TestOnSessionEnding(t *testing.T) {
	dir := t.TempDir()
	r := New(workerRole, dir, "", testutils.GetLogger())
	r.OnTestStarting(context.Background(), "t::a")
	require.NoError(t, r.OnSessionEnding(context.Background()))
	assert.FileExists(t, filepath.Join(dir, "xdist_stats_worker_gw2.txt"))
}

func TestOnSessionEndingMaster(t *testing.T) {
	dir := t.TempDir()
	r := New(core.Role{Worker: core.MasterWorker, Parallelism: 2}, dir, "", testutils.GetLogger())
	r.OnTestStarting(context.Background(), "t::a")
	require.NoError(t, r.OnSessionEnding(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOnCollectionFinalizedPassthrough(t *testing.T) {
	r := New(workerRole, t.TempDir(), "", testutils.GetLogger())
	candidates := testutils.IDs("b", "a")
	got, err := r.OnCollectionFinalized(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, candidates, got)
	assert.Equal(t, Name, r.Name())
}
