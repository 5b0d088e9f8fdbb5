// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap prepares the process environment by running the setup
// script shipped next to the metro executable.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	unixScript    = "setup_env.sh"
	windowsScript = "setup_env.bat"
)

// ErrScriptNotFound is wrapped by Error when the setup script does not exist.
var ErrScriptNotFound = errors.New("setup script not found")

// ScriptName returns the setup script name for the given operating system.
func ScriptName(goos string) string {
	if goos == "windows" {
		return windowsScript
	}
	return unixScript
}

// DefaultDir returns the directory holding the metro executable.
func DefaultDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Error is returned when the environment could not be set up. It is not
// recoverable.
type Error struct {
	Script string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("environment setup with %s failed: %v", e.Script, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Bootstrapper runs the setup script synchronously.
type Bootstrapper struct {
	Fs     afero.Fs
	Runner Runner
	// Dir is the directory containing the script.
	Dir string
	// GOOS selects the script; empty means runtime.GOOS.
	GOOS string
}

// Script returns the path of the script that Run executes.
func (b *Bootstrapper) Script() string {
	goos := b.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	return filepath.Join(b.Dir, ScriptName(goos))
}

// Run executes the setup script and waits for it. A missing script or a
// failing one yields an *Error.
func (b *Bootstrapper) Run(ctx context.Context) error {
	script := b.Script()
	logger := zerolog.Ctx(ctx).With().Str("phase", "bootstrapping").Str("script", script).Logger()

	info, err := b.Fs.Stat(script)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Error{Script: script, Err: ErrScriptNotFound}
		}
		return &Error{Script: script, Err: err}
	}
	if info.IsDir() {
		return &Error{Script: script, Err: fmt.Errorf("%w: %s is a directory", ErrScriptNotFound, script)}
	}

	logger.Debug().Msg("running environment setup")
	out, err := b.Runner.Run(ctx, script, b.Dir)
	if err != nil {
		return &Error{Script: script, Err: err}
	}
	if out = strings.TrimSpace(out); out != "" {
		logger.Debug().Str("output", out).Msg("environment setup output")
	}
	return nil
}
