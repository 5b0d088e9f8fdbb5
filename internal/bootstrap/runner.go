// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

//go:generate go run go.uber.org/mock/mockgen -package mock_$GOPACKAGE -destination=./mock/$GOFILE -source=./$GOFILE

// Runner executes a script and waits for it to finish.
type Runner interface {
	// Run executes the script at path with dir as working directory. It
	// returns the script's standard output, and an *ExitError when the script
	// exits with a non-zero status.
	Run(ctx context.Context, path string, dir string) (string, error)
}

// ExitError reports a script that ran but exited unsuccessfully.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Stderr)
}

// ExecRunner runs scripts as child processes.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, path string, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), &ExitError{
			Code:   exitErr.ExitCode(),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}
	return stdout.String(), err
}
