// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"github.com/Prairie-Wolf/metro-bundler/internal/command"
	"github.com/Prairie-Wolf/metro-bundler/internal/config"
	"github.com/Prairie-Wolf/metro-bundler/internal/constants"
)

// Name is the name of the bundle command.
const Name = "bundle"

// Command returns the descriptor of the bundle command, backed by b.
func Command(b Bundler) command.Descriptor {
	return command.Descriptor{
		Name:        Name,
		Description: "builds the javascript bundle for offline use",
		Func:        Handler(b),
		Options:     Options(),
		Examples: []command.Example{
			{
				Desc: "Build the iOS bundle",
				Cmd:  "metro bundle --entry-file index.js --bundle-output ios/main.jsbundle",
			},
			{
				Desc: "Build a release Android bundle with its assets",
				Cmd: "metro bundle --entry-file index.js --platform android --dev false " +
					"--bundle-output android/index.android.bundle --assets-dest android/res",
			},
		},
		Pkg: &command.PackageInfo{
			Name:    "metro-bundler",
			Version: constants.CLIVersion,
		},
	}
}

// Options returns the options of the bundle command.
func Options() []command.Option {
	return []command.Option{
		{
			Command:     "--entry-file <path>",
			Description: "Path to the root JS file, either absolute or relative to JS root",
			Required:    true,
		},
		{
			Command:     "--platform [string]",
			Description: "Either \"ios\" or \"android\"",
			Default:     command.Literal("ios"),
		},
		{
			Command:     "--transformer [string]",
			Description: "Specify a custom transformer to be used",
			Default: command.FromConfig(func(cfg *config.Config) any {
				if cfg.Project.Transformer == "" {
					return nil
				}
				return cfg.Project.Transformer
			}),
		},
		{
			Command:     "--dev [boolean]",
			Description: "If false, warnings are disabled and the bundle is minified; needs a value, as in --dev false",
			Parse:       parseBool,
			Default:     command.Literal(true),
		},
		{
			Command:     "--bundle-output <string>",
			Description: "File name where to store the resulting bundle, ex. /tmp/groups.bundle",
			Required:    true,
		},
		{
			Command:     "--bundle-encoding [string]",
			Description: "Encoding the bundle should be written in (utf8, utf16le or ascii)",
			Default:     command.Literal(EncodingUTF8),
		},
		{
			Command:     "--sourcemap-output [string]",
			Description: "File name where to store the source map file for resulting bundle, ex. /tmp/groups.map",
		},
		{
			Command:     "--assets-dest [string]",
			Description: "Directory name where to store assets referenced in the bundle",
		},
		{
			Command:     "--project-root [path]",
			Description: "Directory containing the project sources",
			Default: command.FromConfig(func(cfg *config.Config) any {
				return cfg.Project.Root
			}),
		},
		{
			Command:     "--verbose",
			Description: "Enables logging",
		},
	}
}

// parseBool treats anything but "false" as true.
func parseBool(s string) (any, error) {
	return s != "false", nil
}
