package constants

import "time"

const (
	// ServiceName OpenTelemetry service name
	ServiceName = "xdist-tracker"
	// DefaultXdistStats is the default prefix of worker record files.
	DefaultXdistStats = "xdist_stats"
	// WorkerToken separates the prefix and the worker identity in a record file name.
	WorkerToken = "worker"
	// RecordFileExt is the extension of worker record files.
	RecordFileExt = ".txt"
	// RecordMimeType is the content type used when uploading record files.
	RecordMimeType = "text/plain; charset=utf-8"
	// RecordSeparator separates identifiers in a record file.
	RecordSeparator = "\n"
	// WorkerEnv carries the worker tag of a spawned worker process.
	WorkerEnv = "XDIST_WORKER"
	// WorkerCountEnv carries the number of workers requested for the session.
	WorkerCountEnv = "XDIST_WORKER_COUNT"
	// AzureSourceScheme prefixes replay sources stored in azure blob storage.
	AzureSourceScheme = "azure://"
	// DefaultGoBinary is the go toolchain binary used by the go test host.
	DefaultGoBinary = "go"
	// DefaultTestTimeout bounds the execution of a single go test.
	DefaultTestTimeout = 10 * time.Minute
	// DefaultUploadAttempts is the number of attempts for a record upload.
	DefaultUploadAttempts = 3
	// DefaultUploadDelay is the initial backoff between upload attempts.
	DefaultUploadDelay = 500 * time.Millisecond
)
