// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package main provides the entrypoint for the metro cli
package main

import (
	"github.com/Prairie-Wolf/metro-bundler/cmd/metro/app"
)

func main() {
	app.Execute()
}
