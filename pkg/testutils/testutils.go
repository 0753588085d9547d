// Package testutils holds helpers shared by package tests.
package testutils

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
)

// GetLogger returns a logger that discards everything.
func GetLogger() lumber.Logger {
	logger, err := lumber.NewLogger(&lumber.LoggingConfig{}, false, lumber.InstanceZapLogger)
	if err != nil {
		panic(err)
	}
	return logger
}

// ErrorLog is a lumber.Logger discarding everything but error messages.
type ErrorLog struct {
	Errors []string
}

func (l *ErrorLog) Debugf(format string, args ...interface{}) {}
func (l *ErrorLog) Infof(format string, args ...interface{}) {}
func (l *ErrorLog) Warnf(format string, args ...interface{}) {}
func (l *ErrorLog) Fatalf(format string, args ...interface{}) {}
func (l *ErrorLog) Panicf(format string, args ...interface{}) {}

// Errorf remembers the formatted message.
func (l *ErrorLog) Errorf(format string, args ...interface{}) {
	l.Errors = append(l.Errors, fmt.Sprintf(format, args...))
}

// WithFields returns the same logger, fields are dropped.
func (l *ErrorLog) WithFields(keyValues lumber.Fields) lumber.Logger {
	return l
}

// StringSource is an in-memory core.RecordSource counting its opens.
type StringSource struct {
	Content string
	Err     error
	Opens   int
}

// Open returns a reader over Content, or Err when set.
func (s *StringSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.Opens++
	if s.Err != nil {
		return nil, s.Err
	}
	return io.NopCloser(strings.NewReader(s.Content)), nil
}

func (s *StringSource) String() string {
	return "memory"
}

// Uploads records the calls made to a core.RecordUploader.
type Uploads struct {
	Calls map[string]string
	Err   error
}

// UploadFile remembers the blob and local path of the upload.
func (u *Uploads) UploadFile(ctx context.Context, blobPath, localPath string) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	if u.Calls == nil {
		u.Calls = make(map[string]string)
	}
	u.Calls[blobPath] = localPath
	return "https://example.blob.core.windows.net/records/" + blobPath, nil
}

// IDs converts strings to test identifiers.
func IDs(ids ...string) []core.TestID {
	out := make([]core.TestID, len(ids))
	for i, id := range ids {
		out[i] = core.TestID(id)
	}
	return out
}
