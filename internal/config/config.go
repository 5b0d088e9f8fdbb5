// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package config contains a centralized structure for all configuration
// options of the metro CLI.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the top-level configuration structure. It is loaded once at
// startup and handed unchanged to every command handler.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	SetupEnv SetupEnvConfig `mapstructure:"setup_env"`
	Project  ProjectConfig  `mapstructure:"project"`
}

// DefaultConfigForTest returns a configuration with all the struct defaults set,
// but no other changes.
func DefaultConfigForTest() *Config {
	v := viper.New()
	SetViperDefaults(v)
	c, err := ReadConfigFromViper[Config](v)
	if err != nil {
		panic(fmt.Sprintf("Failed to read default config: %v", err))
	}
	return c
}

// ReadConfigFromViper reads the configuration from the given Viper instance.
// This will return the already-parsed and validated configuration, or an error.
func ReadConfigFromViper[CFG any](v *viper.Viper) (*CFG, error) {
	var cfg CFG
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetViperDefaults sets the default values for the configuration to be picked
// up by viper
func SetViperDefaults(v *viper.Viper) {
	v.SetEnvPrefix("metro")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	SetViperStructDefaults(v, "", Config{})
}

// SetViperStructDefaults recursively sets the viper default values for the given struct.
//
// Per https://github.com/spf13/viper/issues/188#issuecomment-255519149, and
// https://github.com/spf13/viper/issues/761, we need to call viper.SetDefault() for each
// field in the struct to be able to use env var overrides.  This also lets us use the
// struct as the source of default values.
func SetViperStructDefaults(v *viper.Viper, prefix string, s any) {
	structType := reflect.TypeOf(s)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if unicode.IsLower([]rune(field.Name)[0]) {
			// Skip private fields
			continue
		}
		if field.Tag.Get("mapstructure") == "" {
			// Error, need a tag
			panic(fmt.Sprintf("Untagged config struct field %q", field.Name))
		}
		valueName := strings.ToLower(prefix + field.Tag.Get("mapstructure"))

		if field.Type.Kind() == reflect.Struct {
			SetViperStructDefaults(v, valueName+".", reflect.Zero(field.Type).Interface())
			continue
		}

		// Extract a default value the `default` struct tag
		// we don't support all value types yet, but we can add them as needed
		value := field.Tag.Get("default")
		defaultValue := reflect.Zero(field.Type).Interface()
		var err error // We handle errors at the end of the switch
		fieldType := field.Type.Kind()
		//nolint:golint,exhaustive
		switch fieldType {
		case reflect.String:
			defaultValue = value
		case reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8, reflect.Int,
			reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8, reflect.Uint:
			if value != "" {
				defaultValue, err = strconv.Atoi(value)
			}
		case reflect.Bool:
			if value != "" {
				defaultValue, err = strconv.ParseBool(value)
			}
		case reflect.Slice:
			if field.Type.Elem().Kind() != reflect.String {
				err = fmt.Errorf("unhandled slice element type %s", field.Type.Elem().Kind())
				break
			}
			defaultValue = splitList(value)
		default:
			err = fmt.Errorf("unhandled type %s", fieldType)
		}
		if err != nil {
			// This is effectively a compile-time error, so exit early
			panic(fmt.Sprintf("Bad value for field %q (%s): %q", valueName, fieldType, err))
		}

		if err := v.BindEnv(valueName); err != nil {
			panic(fmt.Sprintf("Failed to bind %q to env var: %v", valueName, err))
		}
		v.SetDefault(valueName, defaultValue)
	}
}

func splitList(value string) []string {
	out := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// FlagInst is a function that creates a flag and returns a pointer to the value
type FlagInst[V any] func(name string, value V, usage string) *V

// BindConfigFlag is a helper function that binds a configuration value to a flag.
//
// Parameters:
// - v: The viper.Viper object used to retrieve the configuration value.
// - flags: The pflag.FlagSet object used to retrieve the flag value.
// - viperPath: The path used to retrieve the configuration value from Viper.
// - cmdLineArg: The flag name used to check if the flag has been set and to retrieve its value.
// - help: The help text for the flag.
// - defaultValue: A default value used to determine the type of the flag (string, int, etc.).
// - binder: A function that creates a flag and returns a pointer to the value.
func BindConfigFlag[V any](
	v *viper.Viper,
	flags *pflag.FlagSet,
	viperPath string,
	cmdLineArg string,
	defaultValue V,
	help string,
	binder FlagInst[V],
) error {
	binder(cmdLineArg, defaultValue, help)
	v.SetDefault(viperPath, defaultValue)
	if err := v.BindPFlag(viperPath, flags.Lookup(cmdLineArg)); err != nil {
		return fmt.Errorf("failed to bind flag %s to viper path %s: %w", cmdLineArg, viperPath, err)
	}
	return nil
}

// RegisterFlags registers the global configuration flags on the given flag set.
func RegisterFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := registerLoggingFlags(v, flags); err != nil {
		return err
	}
	return BindConfigFlag(v, flags, "setup_env.dir", "setup-env-dir",
		v.GetString("setup_env.dir"), "Directory containing the environment setup script", flags.String)
}
