package replayer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/LambdaTest/xdist-tracker/pkg/record"
	"github.com/LambdaTest/xdist-tracker/pkg/recorder"
	"github.com/LambdaTest/xdist-tracker/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodePrefix = "tests/backend/unit/test_awesome.py::test_one_"

func items(suffixes ...string) []core.TestID {
	out := make([]core.TestID, len(suffixes))
	for i, s := range suffixes {
		out[i] = core.TestID(nodePrefix + s)
	}
	return out
}

func TestTargetTestsLoadsOnce(t *testing.T) {
	source := &testutils.StringSource{Content: nodePrefix + "0"}
	r := New(source, testutils.GetLogger())
	assert.Zero(t, source.Opens)

	first, err := r.TargetTests(context.Background())
	require.NoError(t, err)
	second, err := r.TargetTests(context.Background())
	require.NoError(t, err)

	assert.Equal(t, items("0"), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, source.Opens)
}

func TestModulesAndFilterShareLoad(t *testing.T) {
	source := &testutils.StringSource{Content: nodePrefix + "0\ntests/other.py::test_x"}
	r := New(source, testutils.GetLogger())

	modules, err := r.TargetTestModules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutils.IDs("tests/backend/unit/test_awesome.py", "tests/other.py"), modules)

	_, err = r.OnCollectionFinalized(context.Background(), items("0", "1"))
	require.NoError(t, err)
	assert.Equal(t, 1, source.Opens)
}

func TestCollectionPaths(t *testing.T) {
	source := &testutils.StringSource{Content: "pkg/a::TestOne\npkg/b::TestTwo\npkg/a::TestThree"}
	paths, err := New(source, testutils.GetLogger()).CollectionPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/a", "pkg/b"}, paths)
}

func TestMissingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file_not_exist.txt")
	r := New(record.FileSource{Path: path}, testutils.GetLogger())

	_, err := r.TargetTests(context.Background())
	assert.ErrorIs(t, err, errs.ErrReplaySourceNotFound)

	got, err := r.OnCollectionFinalized(context.Background(), items("0"))
	assert.ErrorIs(t, err, errs.ErrReplaySourceNotFound)
	assert.Nil(t, got)
}

func TestLoadFailureIsNotCached(t *testing.T) {
	source := &testutils.StringSource{Err: errs.ReplaySourceNotFound("x", os.ErrNotExist)}
	r := New(source, testutils.GetLogger())
	_, err := r.TargetTests(context.Background())
	require.Error(t, err)

	source.Err = nil
	source.Content = "t::a"
	ids, err := r.TargetTests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutils.IDs("t::a"), ids)
}

func TestOnCollectionFinalized(t *testing.T) {
	target := []core.TestID{nodePrefix + "0", nodePrefix + "11", nodePrefix + "12"}
	source := &testutils.StringSource{Content: string(record.Marshal(target))}
	r := New(source, testutils.GetLogger())

	candidates := items("1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "0", "12", "11")
	got, err := r.OnCollectionFinalized(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestRecordThenReplay(t *testing.T) {
	dir := t.TempDir()
	rec := recorder.New(core.Role{Worker: "gw0", Parallelism: 1}, dir, "", testutils.GetLogger())
	rec.OnTestStarting(context.Background(), "t::a")
	rec.OnTestStarting(context.Background(), "t::b")
	require.NoError(t, rec.OnSessionEnding(context.Background()))
	content, err := os.ReadFile(filepath.Join(dir, "xdist_stats_worker_gw0.txt"))
	require.NoError(t, err)
	assert.Equal(t, "t::a\nt::b", string(content))

	replayFile := filepath.Join(dir, "replay.txt")
	require.NoError(t, os.WriteFile(replayFile, []byte("t::b\nt::a"), 0o600))

	r := New(record.FileSource{Path: replayFile}, testutils.GetLogger())
	got, err := r.FilterAndOrder(context.Background(), testutils.IDs("t::a", "t::b", "t::c"))
	require.NoError(t, err)
	assert.Equal(t, testutils.IDs("t::b", "t::a"), got)
}

func TestReplayOfOwnRecord(t *testing.T) {
	dir := t.TempDir()
	rec := recorder.New(core.Role{Worker: "gw1", Parallelism: 2}, dir, "", testutils.GetLogger())
	for _, id := range testutils.IDs("t::c", "t::a", "t::c") {
		rec.OnTestStarting(context.Background(), id)
	}
	require.NoError(t, rec.OnSessionEnding(context.Background()))

	r := New(record.FileSource{Path: rec.DestinationPath()}, testutils.GetLogger())
	got, err := r.FilterAndOrder(context.Background(), testutils.IDs("t::a", "t::b", "t::c"))
	require.NoError(t, err)
	assert.Equal(t, testutils.IDs("t::c", "t::a"), got)
}

func TestPassiveHooks(t *testing.T) {
	source := &testutils.StringSource{}
	r := New(source, testutils.GetLogger())
	r.OnTestStarting(context.Background(), "t::a")
	assert.NoError(t, r.OnSessionEnding(context.Background()))
	assert.Zero(t, source.Opens)
	assert.Equal(t, Name, r.Name())
}
