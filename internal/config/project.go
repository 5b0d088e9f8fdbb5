// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"slices"
)

// SetupEnvConfig locates the environment setup script run before any command.
type SetupEnvConfig struct {
	// Dir is the directory holding setup_env.sh / setup_env.bat. Empty means
	// the directory of the running executable.
	Dir string `mapstructure:"dir" default:""`
}

// ProjectConfig describes the project being bundled.
type ProjectConfig struct {
	Root        string   `mapstructure:"root" default:"."`
	Transformer string   `mapstructure:"transformer" default:""`
	Platforms   []string `mapstructure:"platforms" default:"ios,android"`
	AssetExts   []string `mapstructure:"asset_exts" default:"png,jpg,jpeg,gif,webp,ttf,otf,json"`
}

// SupportsPlatform reports whether platform is one of the configured platforms.
func (p ProjectConfig) SupportsPlatform(platform string) bool {
	return slices.Contains(p.Platforms, platform)
}

// Validate checks the project configuration
func (p ProjectConfig) Validate() error {
	var errs []error
	if p.Root == "" {
		errs = append(errs, errors.New("project.root cannot be empty"))
	}
	if len(p.Platforms) == 0 {
		errs = append(errs, errors.New("project.platforms must list at least one platform"))
	}
	for _, ext := range p.AssetExts {
		if ext == "" || ext[0] == '.' {
			errs = append(errs, fmt.Errorf("project.asset_exts entry %q must be a bare extension", ext))
		}
	}
	return errors.Join(errs...)
}

// Validate validates the configuration
func (c Config) Validate() error {
	return c.Project.Validate()
}
