// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"github.com/Prairie-Wolf/metro-bundler/internal/config"
)

type defaultKind int

const (
	defaultNone defaultKind = iota
	defaultLiteral
	defaultResolver
)

// Resolver computes a default value from the configuration.
type Resolver func(cfg *config.Config) any

// Default is the default value of an option: nothing (the zero value), a
// literal, or a value computed from the configuration. The variant is
// explicit, so a literal may itself be a function value.
type Default struct {
	kind     defaultKind
	literal  any
	resolver Resolver
}

// Literal returns a Default holding v.
func Literal(v any) Default {
	return Default{kind: defaultLiteral, literal: v}
}

// FromConfig returns a Default computed by fn when the command is registered.
func FromConfig(fn Resolver) Default {
	return Default{kind: defaultResolver, resolver: fn}
}

// IsSet reports whether a default was declared.
func (d Default) IsSet() bool {
	return d.kind != defaultNone
}

// Resolve returns the effective default value for cfg, and whether there is one.
func (d Default) Resolve(cfg *config.Config) (any, bool) {
	switch d.kind {
	case defaultLiteral:
		return d.literal, true
	case defaultResolver:
		return d.resolver(cfg), true
	default:
		return nil, false
	}
}
