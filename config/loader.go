package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/LambdaTest/xdist-tracker/pkg/lumber"
	errs "github.com/LambdaTest/xdist-tracker/pkg/errors"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps cli flags to their config keys
var flagKeys = map[string]string{
	"xdist-stats":      "Data.XdistStats",
	"from-xdist-stats": "Data.FromXdistStats",
	"rootdir":          "Data.RootDir",
	"dist":             "Data.Dist",
	"numprocesses":     "Data.NumProcesses",
	"verbose":          "Data.Verbose",
	"log-file":         "Data.LogFile",
	"log-backend":      "Data.LogBackend",
	"upload":           "Data.Azure.Upload",
	"azure-folder":     "Data.Azure.Folder",
	"go-binary":        "Data.GoTest.Binary",
	"go-flags":         "Data.GoTest.Flags",
	"test-timeout":     "Data.GoTest.Timeout",
}

// envKeys binds secrets to short environment variable names
var envKeys = map[string]string{
	"Data.Azure.StorageAccountName": "XT_AZURE_STORAGE_ACCOUNT",
	"Data.Azure.StorageAccessKey":   "XT_AZURE_STORAGE_KEY",
	"Data.Azure.ContainerName":      "XT_AZURE_CONTAINER",
	"Data.Tracing.OtelEndpoint":     "XT_OTEL_ENDPOINT",
}

// Load loads config from command instance to predefined config variables
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	// default viper configs
	v.SetEnvPrefix("XT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// set default configs
	setDefaultConfig(v)

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName(".xt")
		v.AddConfigPath("./")
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: No configuration file found. Proceeding with defaults")
		}
	}

	return populateConfig(v)
}

func populateConfig(v *viper.Viper) (*Config, error) {
	wrapper := new(ConfigWrapper)
	if err := v.Unmarshal(wrapper); err != nil {
		return nil, err
	}
	if err := wrapper.Config.validate(); err != nil {
		return nil, err
	}
	return &wrapper.Config, nil
}

func (c *Config) validate() error {
	switch core.DistMode(c.Dist) {
	case core.DistNo, core.DistLoad, core.DistLoadFile:
	default:
		return errors.Wrapf(errs.ErrInvalidDist, "%q", c.Dist)
	}
	switch c.LogBackend {
	case LogBackendZap, LogBackendLogrus:
	default:
		return errors.Wrapf(errs.ErrInvalidLogBackend, "%q", c.LogBackend)
	}
	if c.NumProcesses < 0 {
		return errors.Wrapf(errs.ErrInvalidWorkerCount, "numprocesses %d", c.NumProcesses)
	}
	if c.RootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.RootDir = wd
	}
	return nil
}

// LoggerInstance maps the configured log backend to its lumber instance.
func (c *Config) LoggerInstance() int {
	if c.LogBackend == LogBackendLogrus {
		return lumber.InstanceLogrusLogger
	}
	return lumber.InstanceZapLogger
}

// DistMode returns the configured distribution mode.
func (c *Config) DistMode() core.DistMode {
	return core.DistMode(c.Dist)
}
