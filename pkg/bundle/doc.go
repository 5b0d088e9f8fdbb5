// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle declares the metro bundle command and the data written
// alongside every bundle. The command is backed by a Bundler; package
// archive provides the default one.
package bundle
