package cmd

import (
	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/spf13/cobra"
)

// AttachCLIFlags attaches the flags shared by every command
func AttachCLIFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file path")
	flags.BoolP("verbose", "v", false, "enable debug logs")
	flags.String("log-file", "", "directory of the log file")
	flags.String("log-backend", "zap", "logger implementation: zap or logrus")
	flags.String("rootdir", "", "directory the record files are resolved against (default: working directory)")
	flags.String("xdist-stats", constants.DefaultXdistStats,
		"prefix of the files storing the tests run on each worker, "+
			"running with -n2 generates xdist_stats_worker_gw0.txt and xdist_stats_worker_gw1.txt")
	flags.String("azure-folder", "", "blob folder of uploaded records, e.g. the CI build id")
}

func attachSessionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("from-xdist-stats", "",
		"file with tests to run on a single worker in the recorded order, a local path or azure://<blob>")
	flags.IntP("numprocesses", "n", 0, "number of workers requested from the supervisor")
	flags.String("dist", "load", "distribution mode of the supervisor: no, load or loadfile")
	flags.Bool("upload", false, "upload the worker record to azure blob storage after the session")
	flags.String("go-binary", constants.DefaultGoBinary, "go binary used to list and run tests")
	flags.StringSlice("go-flags", nil, "extra flags passed to go test")
	flags.Duration("test-timeout", constants.DefaultTestTimeout, "timeout of a single test")
}
