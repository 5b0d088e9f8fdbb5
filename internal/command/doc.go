// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package command binds declarative command descriptors into cobra.
//
// A Descriptor names a subcommand, its options (in the commander-style
// pattern syntax `-s, --long-name <arg>`), example usages and a handler.
// A Registry, constructed once at startup with the loaded configuration,
// turns descriptors into cobra commands: it resolves option defaults
// against the configuration, injects the reserved --config flag, and
// installs a dispatcher that validates required options before running
// the handler. Every failure reaching the caller implements Failure.
package command
