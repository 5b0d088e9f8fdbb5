// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the default name of the CLI configuration file
const FileName = "metro.config.yaml"

// FlagName is the name of the flag carrying the configuration file path
const FlagName = "config"

// GetRelevantCfgPath returns the first path that exists (and is a config file).
func GetRelevantCfgPath(paths []string) string {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(filepath.Clean(path)); err == nil {
			return path
		}
	}
	return ""
}

// DefaultCfgPaths returns the places a configuration file is looked up when
// no explicit path is given.
func DefaultCfgPaths() []string {
	paths := []string{filepath.Join(".", FileName)}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "metro", "config.yaml"))
	}
	return paths
}

// GetConfigFileData returns the data from the given configuration file.
func GetConfigFileData(cfgFilePath string) (interface{}, error) {
	cfgFile, err := os.Open(filepath.Clean(cfgFilePath))
	if err != nil {
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer cfgFile.Close()

	var data interface{}
	if err := yaml.NewDecoder(cfgFile).Decode(&data); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return data, nil
}

// GetKeysWithNullValueFromYAML returns the paths of every key in data whose
// value is null. Paths use a jq-like syntax, e.g. `.logging.level` or `.a[1]`.
func GetKeysWithNullValueFromYAML(data interface{}, currentPath string) []string {
	var keysWithNullValue []string
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			keysWithNullValue = append(keysWithNullValue, nullKeys(value, currentPath+"."+key)...)
		}
	case map[interface{}]interface{}:
		for key, value := range v {
			name := "null"
			if key != nil {
				name = fmt.Sprintf("%v", key)
			}
			keysWithNullValue = append(keysWithNullValue, nullKeys(value, currentPath+"."+name)...)
		}
	case []interface{}:
		for i, item := range v {
			keysWithNullValue = append(keysWithNullValue, nullKeys(item, fmt.Sprintf("%s[%d]", currentPath, i))...)
		}
	}
	return keysWithNullValue
}

func nullKeys(value interface{}, path string) []string {
	if value == nil {
		return []string{path}
	}
	return GetKeysWithNullValueFromYAML(value, path)
}

// PreParse extracts the global flags, --config among them, from raw process
// arguments and binds them into v. It runs before any command parsing,
// since option defaults are resolved from the loaded configuration. Parse
// errors are ignored here; cobra reports them when the command runs.
func PreParse(v *viper.Viper, args []string) string {
	fs := pflag.NewFlagSet(FlagName, pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.BoolP("help", "h", false, "")
	path := fs.String(FlagName, "", "")
	if err := RegisterFlags(v, fs); err != nil {
		return *path
	}
	_ = fs.Parse(args)
	return *path
}

// Load reads the configuration file at cfgFile (or the first default path
// that exists) into v and decodes it. An explicit path that does not exist
// is an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	candidates := DefaultCfgPaths()
	if cfgFile != "" {
		if _, err := os.Stat(filepath.Clean(cfgFile)); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
		candidates = []string{cfgFile}
	}

	if cfgFilePath := GetRelevantCfgPath(candidates); cfgFilePath != "" {
		cfgFileData, err := GetConfigFileData(cfgFilePath)
		if err != nil {
			return nil, err
		}

		if keys := GetKeysWithNullValueFromYAML(cfgFileData, ""); len(keys) > 0 {
			return nil, fmt.Errorf("the following configuration keys are missing values: %s",
				strings.Join(keys, ", "))
		}

		v.SetConfigFile(cfgFilePath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFilePath, err)
		}
	}
	v.AutomaticEnv()

	cfg, err := ReadConfigFromViper[Config](v)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
