package core

import (
	"context"
	"io"
	"time"
)

// TestStatus is the outcome of one test execution.
type TestStatus string

// list of test statuses
const (
	TestPassed  TestStatus = "passed"
	TestFailed  TestStatus = "failed"
	TestSkipped TestStatus = "skipped"
)

// TestResult is the outcome reported by an Executor.
type TestResult struct {
	ID       TestID        `json:"id"`
	Status   TestStatus    `json:"status"`
	Duration time.Duration `json:"duration"`
	Output   string        `json:"-"`
}

// SessionSummary counts the outcomes of a session.
type SessionSummary struct {
	SessionID string             `json:"session_id"`
	Worker    WorkerID           `json:"worker"`
	Counts    map[TestStatus]int `json:"counts"`
	Results   []TestResult       `json:"results"`
}

// Collector lists the candidate tests below the given paths.
type Collector interface {
	Collect(ctx context.Context, paths []string) ([]TestID, error)
}

// Executor runs a single test.
type Executor interface {
	Execute(ctx context.Context, id TestID) (TestResult, error)
}

// RecordSource opens a persisted execution record.
type RecordSource interface {
	// Open returns a reader over the whole record.
	Open(ctx context.Context) (io.ReadCloser, error)
	// String describes the source in logs and errors.
	String() string
}

// RecordUploader publishes a flushed record file.
type RecordUploader interface {
	UploadFile(ctx context.Context, blobPath, localPath string) (string, error)
}

// RecordSharer hands out read-only links to uploaded records.
type RecordSharer interface {
	GenerateSasURL(ctx context.Context, blobPath string) (string, error)
}
