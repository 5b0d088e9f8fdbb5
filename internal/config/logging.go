// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoggingConfig is the configuration for the logging package
type LoggingConfig struct {
	Level   string `mapstructure:"level" default:"info"`
	Format  string `mapstructure:"format" default:"text"`
	LogFile string `mapstructure:"log_file" default:""`
}

func registerLoggingFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	err := BindConfigFlag(v, flags, "logging.level", "logging-level",
		v.GetString("logging.level"), "Logging level (debug, info, warn, error, fatal)", flags.String)
	if err != nil {
		return err
	}

	return BindConfigFlag(v, flags, "logging.format", "logging-format",
		v.GetString("logging.format"), "Logging format (text or json)", flags.String)
}
