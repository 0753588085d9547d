package config

import (
	"time"

	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
)

// Supported log backends.
const (
	LogBackendZap    = "zap"
	LogBackendLogrus = "logrus"
)

type (
	// ConfigWrapper is a wrapper for the config
	ConfigWrapper struct {
		Config `mapstructure:"data"`
	}

	// Config the application's configuration
	Config struct {
		// XdistStats is the prefix of the worker record files.
		XdistStats string
		// FromXdistStats is the record to replay, a local path or azure://<blob>.
		FromXdistStats string
		// RootDir resolves relative record paths, the working directory by default.
		RootDir string
		// Dist is the distribution mode of the supervisor (no, load, loadfile).
		Dist string
		// NumProcesses is the number of workers requested from the supervisor.
		NumProcesses int
		LogFile      string
		// LogBackend selects the logger implementation, zap or logrus.
		LogBackend string
		LogConfig  lumber.LoggingConfig
		Env          string
		Verbose      bool
		Azure        Azure
		Tracing      TracingConfig
		GoTest       GoTestConfig
	}

	// TracingConfig provides opentelemetry configurations
	TracingConfig struct {
		// OtelEndpoint for storing host name for otel collector
		OtelEndpoint string
	}

	// Azure providers the storage configuration.
	Azure struct {
		// StorageAccountName azure storage account name
		StorageAccountName string
		// StorageAccessKey azure storage access key
		StorageAccessKey string
		// ContainerName for storing the worker records
		ContainerName string
		// Folder prefixes every uploaded record, e.g. the CI build id
		Folder string
		// Endpoint overrides the blob service url
		Endpoint string
		// Upload uploads the record of every worker after it is flushed
		Upload bool
		// UploadAttempts number of attempts for a record upload
		UploadAttempts uint
	}

	// GoTestConfig configures the go toolchain host.
	GoTestConfig struct {
		// Binary the go binary
		Binary string
		// Flags extra flags passed to every go test invocation
		Flags []string
		// Timeout for a single test execution
		Timeout time.Duration
	}
)
