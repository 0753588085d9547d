package config

import (
	"github.com/LambdaTest/xdist-tracker/pkg/constants"
	"github.com/spf13/viper"
)

func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("Data.LogConfig.EnableConsole", true)
	v.SetDefault("Data.LogConfig.ConsoleJSONFormat", false)
	v.SetDefault("Data.LogConfig.ConsoleLevel", "info")
	v.SetDefault("Data.LogConfig.EnableFile", false)
	v.SetDefault("Data.LogConfig.FileJSONFormat", true)
	v.SetDefault("Data.LogConfig.FileLevel", "debug")
	v.SetDefault("Data.LogConfig.FileLocation", "./xdist-tracker.log")
	v.SetDefault("Data.LogBackend", LogBackendZap)
	v.SetDefault("Data.Env", "prod")
	v.SetDefault("Data.Verbose", false)
	v.SetDefault("Data.XdistStats", constants.DefaultXdistStats)
	v.SetDefault("Data.Dist", "load")
	v.SetDefault("Data.GoTest.Binary", constants.DefaultGoBinary)
	v.SetDefault("Data.GoTest.Timeout", constants.DefaultTestTimeout)
	v.SetDefault("Data.Azure.UploadAttempts", constants.DefaultUploadAttempts)
}
