package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LambdaTest/xdist-tracker/config"
	"github.com/LambdaTest/xdist-tracker/pkg/azure"
	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/LambdaTest/xdist-tracker/pkg/core"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/LambdaTest/xdist-tracker/pkg/gotest"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	"github.com/LambdaTest/xdist-tracker/pkg/opentelemetry"
	"github.com/LambdaTest/xdist-tracker/pkg/record"
	"github.com/LambdaTest/xdist-tracker/pkg/role"
	"github.com/LambdaTest/xdist-tracker/pkg/session"
	"github.com/spf13/cobra"
)

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd := cobra.Command{
		Use: "xdist-tracker",
		Long: `xdist-tracker records the tests each parallel worker executed and replays ` +
			`a recorded subset on a single worker in the same order.`,
		Version:       constants.BinaryVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// define flags used for this command
	AttachCLIFlags(&rootCmd)

	rootCmd.AddCommand(runCommand(), replayCommand(), uploadCommand(), fetchCommand(), showCommand())
	return &rootCmd
}

func runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [packages]",
		Short: "Run go tests, recording the executed tests when running as a worker",
		RunE:  runSession,
	}
	attachSessionFlags(cmd)
	return cmd
}

func replayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [packages]",
		Short: "Run only the tests of a record, in the recorded order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source, _ := cmd.Flags().GetString("from-xdist-stats"); source == "" {
				return errs.ErrMissingReplaySource
			}
			return runSession(cmd, args)
		},
	}
	attachSessionFlags(cmd)
	return cmd
}

// setup loads the config and the logger shared by every command
func setup(cmd *cobra.Command) (*config.Config, lumber.Logger, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, nil, err
	}

	// patch logconfig file location with root level log file location
	if cfg.LogFile != "" {
		cfg.LogConfig.EnableFile = true
		cfg.LogConfig.FileLocation = filepath.Join(cfg.LogFile, "xt.log")
	}

	logger, err := lumber.NewLogger(&cfg.LogConfig, cfg.Verbose, cfg.LoggerInstance())
	if err != nil {
		log.Printf("could not instantiate logger %s", err.Error())
		return nil, nil, err
	}
	return cfg, logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	// initialize tracer
	if cfg.Tracing.OtelEndpoint != "" {
		tracerCleanup := opentelemetry.InitTracer(ctx, cfg, logger)
		defer func() {
			if tracerErr := tracerCleanup(context.Background()); tracerErr != nil {
				logger.Errorf("Failed to cleanup the tracer %v", tracerErr)
			}
		}()
	}

	workerInput, err := role.WorkerInputFromEnv(os.LookupEnv)
	if err != nil {
		logger.Errorf("invalid worker input %v", err)
		return err
	}
	requested, err := role.WorkerCountFromEnv(os.LookupEnv)
	if err != nil {
		logger.Errorf("invalid worker count %v", err)
		return err
	}
	if cfg.NumProcesses > requested {
		requested = cfg.NumProcesses
	}
	processRole := role.Detect(workerInput, requested, cfg.DistMode())
	logger.Debugf("running as worker %s, parallelism %d, granularity %s",
		processRole.Worker, processRole.Parallelism, processRole.Granularity)

	activation := session.Activation{
		Role:    processRole,
		RootDir: cfg.RootDir,
		Prefix:  cfg.XdistStats,
	}
	if cfg.FromXdistStats != "" || cfg.Azure.Upload {
		if activation.ReplaySource, activation.Uploader, err = artifactWiring(cfg, logger); err != nil {
			return err
		}
	}

	host := gotest.New(gotest.Config{
		Binary:  cfg.GoTest.Binary,
		Dir:     cfg.RootDir,
		Flags:   cfg.GoTest.Flags,
		Timeout: cfg.GoTest.Timeout,
	}, logger)
	plugins := session.Plugins(activation, logger)
	summary, err := session.NewDriver(processRole, host, host, plugins, logger).Run(ctx, args)
	if err != nil {
		return err
	}
	for _, result := range summary.Results {
		if result.Status == core.TestFailed {
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n%s\n", result.ID, result.Output)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d passed, %d failed, %d skipped\n",
		summary.Counts[core.TestPassed], summary.Counts[core.TestFailed], summary.Counts[core.TestSkipped])
	if summary.Counts[core.TestFailed] > 0 {
		return errs.ErrTestsFailed
	}
	return nil
}

// artifactWiring builds the replay source and the record uploader from the config.
func artifactWiring(cfg *config.Config, logger lumber.Logger) (core.RecordSource, core.RecordUploader, error) {
	var source core.RecordSource
	if cfg.FromXdistStats != "" && !azure.IsRemoteSource(cfg.FromXdistStats) {
		source = record.FileSource{Path: resolve(cfg.RootDir, cfg.FromXdistStats)}
	}
	if source != nil && !cfg.Azure.Upload {
		return source, nil, nil
	}
	store, err := azure.NewAzureBlobEnv(cfg, logger)
	if err != nil {
		logger.Errorf("could not instantiate azure client %v", err)
		return nil, nil, err
	}
	if cfg.FromXdistStats != "" && source == nil {
		source = azure.NewRecordSource(store, azure.BlobPath(cfg.FromXdistStats))
	}
	var uploader core.RecordUploader
	if cfg.Azure.Upload {
		uploader = store
	}
	return source, uploader, nil
}

func resolve(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
