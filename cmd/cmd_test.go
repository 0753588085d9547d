package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/LambdaTest/xdist-tracker/config"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/LambdaTest/xdist-tracker/pkg/record"
	"github.com/LambdaTest/xdist-tracker/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	root := RootCommand()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"run", "replay", "upload", "fetch", "show"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("xdist-stats"))
}

func TestReplayRequiresSource(t *testing.T) {
	root := RootCommand()
	root.SetArgs([]string{"replay"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.ErrorIs(t, root.Execute(), errs.ErrMissingReplaySource)
}

func TestShowCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xdist_stats_worker_gw0.txt")
	require.NoError(t, record.WriteFile(path, testutils.IDs("t::b", "t::a")))

	root := RootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"show", "--rootdir", dir, "xdist_stats_worker_gw0.txt"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "t::b\nt::a\n", out.String())
}

func TestSetupLogBackend(t *testing.T) {
	root := RootCommand()
	show, _, err := root.Find([]string{"show"})
	require.NoError(t, err)
	require.NoError(t, show.ParseFlags([]string{"--rootdir", t.TempDir(), "--log-backend", "logrus"}))

	cfg, logger, err := setup(show)
	require.NoError(t, err)
	assert.Equal(t, "logrus", cfg.LogBackend)
	assert.NotNil(t, logger)

	require.NoError(t, show.ParseFlags([]string{"--log-backend", "glog"}))
	_, _, err = setup(show)
	assert.ErrorIs(t, err, errs.ErrInvalidLogBackend)
}

func TestShowCommandMissing(t *testing.T) {
	root := RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"show", "--rootdir", t.TempDir(), "missing.txt"})
	assert.ErrorIs(t, root.Execute(), errs.ErrReplaySourceNotFound)
}

func TestPrintSpecJSON(t *testing.T) {
	out := &bytes.Buffer{}
	spec := record.NewSpec(testutils.IDs("pkg/a::TestOne", "pkg/b::TestTwo"))
	require.NoError(t, printSpec(out, "rec.txt", spec, true))
	assert.JSONEq(t, `{
		"source": "rec.txt",
		"tests": ["pkg/a::TestOne", "pkg/b::TestTwo"],
		"modules": ["pkg/a", "pkg/b"]
	}`, out.String())
}

func TestUploadRecords(t *testing.T) {
	dir := t.TempDir()
	files := []string{filepath.Join(dir, "xdist_stats_worker_gw0.txt"), filepath.Join(dir, "xdist_stats_worker_gw1.txt")}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("t::a"), 0o600))
	}
	uploads := &syncUploads{calls: map[string]string{}}
	out := &bytes.Buffer{}
	require.NoError(t, uploadRecords(context.Background(), uploads, nil, files, out, testutils.GetLogger()))
	assert.Equal(t, map[string]string{
		"xdist_stats_worker_gw0.txt": files[0],
		"xdist_stats_worker_gw1.txt": files[1],
	}, uploads.calls)
	assert.Contains(t, out.String(), files[1]+" -> blob://xdist_stats_worker_gw1.txt")
}

func TestUploadRecordsFailure(t *testing.T) {
	uploads := &syncUploads{err: errors.New("denied")}
	err := uploadRecords(context.Background(), uploads, nil, []string{"a.txt"}, &bytes.Buffer{}, testutils.GetLogger())
	assert.EqualError(t, err, "denied")
}

func TestUploadRecordsWithSas(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "xdist_stats_worker_gw0.txt")
	require.NoError(t, os.WriteFile(file, []byte("t::a"), 0o600))
	uploads := &syncUploads{calls: map[string]string{}}
	out := &bytes.Buffer{}
	require.NoError(t, uploadRecords(context.Background(), uploads, sasLinks{}, []string{file}, out, testutils.GetLogger()))
	assert.Equal(t, file+" -> https://share/xdist_stats_worker_gw0.txt?sig=r\n", out.String())

	err := uploadRecords(context.Background(), uploads, sasLinks{err: errors.New("no key")}, []string{file}, &bytes.Buffer{}, testutils.GetLogger())
	assert.EqualError(t, err, "no key")
}

func TestPrintSasURL(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, printSasURL(context.Background(), sasLinks{}, "build/rec.txt", out))
	assert.Equal(t, "share: https://share/build/rec.txt?sig=r\n", out.String())
}

func TestArtifactWiringLocalSource(t *testing.T) {
	cfg := &config.Config{RootDir: "/work", FromXdistStats: "rec.txt"}
	source, uploader, err := artifactWiring(cfg, testutils.GetLogger())
	require.NoError(t, err)
	assert.Nil(t, uploader)
	assert.Equal(t, record.FileSource{Path: "/work/rec.txt"}, source)
}

func TestArtifactWiringRemoteNeedsAzure(t *testing.T) {
	cfg := &config.Config{RootDir: "/work", FromXdistStats: "azure://build/rec.txt"}
	_, _, err := artifactWiring(cfg, testutils.GetLogger())
	assert.ErrorIs(t, err, errs.ErrAzureConfig)
}
