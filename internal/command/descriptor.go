// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/Prairie-Wolf/metro-bundler/internal/config"
)

// Handler executes a command. argv holds the positional arguments, opts the
// parsed options keyed by their camel-cased long name.
type Handler func(ctx context.Context, argv []string, cfg *config.Config, opts Options) error

// ParseFunc converts the raw value of a flag.
type ParseFunc func(string) (any, error)

// Descriptor declares a subcommand.
type Descriptor struct {
	// Name is the subcommand name, unique within a Registry.
	Name string
	// Description is shown in help. A command without one is hidden.
	Description string
	Options     []Option
	Examples    []Example
	Func        Handler
	// Pkg optionally names the package providing the command.
	Pkg *PackageInfo
}

// Option declares a single flag of a command.
type Option struct {
	// Command is the flag pattern, e.g. "-p, --platform <string>" or "--dev".
	Command     string
	Description string
	// Parse converts the raw flag value. Nil keeps the string as is.
	Parse    ParseFunc
	Default  Default
	Required bool
}

// Example is a usage example displayed in the command help.
type Example struct {
	Desc string
	Cmd  string
}

// PackageInfo identifies the package a command comes from.
type PackageInfo struct {
	Name    string
	Version string
}

func (p PackageInfo) String() string {
	return fmt.Sprintf("%s@%s", p.Name, p.Version)
}

// Options holds the parsed option values of an invocation. Every declared
// option has an entry; unset options without a default hold nil.
type Options map[string]any

// String returns the string value of key, or "" when unset or not a string.
func (o Options) String(key string) string {
	s, _ := o[key].(string)
	return s
}

// Bool returns the boolean value of key, or false when unset or not a bool.
func (o Options) Bool(key string) bool {
	b, _ := o[key].(bool)
	return b
}

// IsSet reports whether key holds a value.
func (o Options) IsSet(key string) bool {
	return o[key] != nil
}
