// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Prairie-Wolf/metro-bundler/internal/bootstrap"
	mockbootstrap "github.com/Prairie-Wolf/metro-bundler/internal/bootstrap/mock"
)

func TestScriptName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "setup_env.bat", bootstrap.ScriptName("windows"))
	assert.Equal(t, "setup_env.sh", bootstrap.ScriptName("linux"))
	assert.Equal(t, "setup_env.sh", bootstrap.ScriptName("darwin"))
}

func TestBootstrapperRun(t *testing.T) {
	t.Parallel()

	errExit := &bootstrap.ExitError{Code: 3, Stderr: "no node"}

	tests := []struct {
		name      string
		goos      string
		files     []string
		dirs      []string
		setup     func(*mockbootstrap.MockRunner, string)
		wantErrIs error
	}{
		{
			name:  "runs the unix script",
			goos:  "linux",
			files: []string{"setup_env.sh"},
			setup: func(r *mockbootstrap.MockRunner, dir string) {
				r.EXPECT().Run(gomock.Any(), filepath.Join(dir, "setup_env.sh"), dir).Return("ok\n", nil)
			},
		},
		{
			name:  "runs the windows script",
			goos:  "windows",
			files: []string{"setup_env.bat", "setup_env.sh"},
			setup: func(r *mockbootstrap.MockRunner, dir string) {
				r.EXPECT().Run(gomock.Any(), filepath.Join(dir, "setup_env.bat"), dir).Return("", nil)
			},
		},
		{
			name:      "missing script",
			goos:      "linux",
			files:     []string{"setup_env.bat"},
			wantErrIs: bootstrap.ErrScriptNotFound,
		},
		{
			name:      "script is a directory",
			goos:      "linux",
			dirs:      []string{"setup_env.sh"},
			wantErrIs: bootstrap.ErrScriptNotFound,
		},
		{
			name:  "script fails",
			goos:  "darwin",
			files: []string{"setup_env.sh"},
			setup: func(r *mockbootstrap.MockRunner, dir string) {
				r.EXPECT().Run(gomock.Any(), filepath.Join(dir, "setup_env.sh"), dir).Return("", errExit)
			},
			wantErrIs: errExit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			dir := filepath.Join("opt", "metro", "bin")
			fs := afero.NewMemMapFs()
			for _, f := range tt.files {
				require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, f), []byte("#!/bin/sh\n"), 0o755))
			}
			for _, d := range tt.dirs {
				require.NoError(t, fs.MkdirAll(filepath.Join(dir, d), 0o755))
			}

			runner := mockbootstrap.NewMockRunner(ctrl)
			if tt.setup != nil {
				tt.setup(runner, dir)
			}

			b := &bootstrap.Bootstrapper{Fs: fs, Runner: runner, Dir: dir, GOOS: tt.goos}
			err := b.Run(context.Background())
			if tt.wantErrIs == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErrIs)
			var berr *bootstrap.Error
			require.True(t, errors.As(err, &berr))
			assert.Equal(t, b.Script(), berr.Script)
		})
	}
}

func TestExecRunner(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o700))
		return path
	}

	out, err := bootstrap.ExecRunner{}.Run(context.Background(), write("ok.sh", "pwd\n"), dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Base(dir))

	_, err = bootstrap.ExecRunner{}.Run(context.Background(), write("fail.sh", "echo broken >&2\nexit 4\n"), dir)
	var exitErr *bootstrap.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 4, exitErr.Code)
	assert.Equal(t, "broken", exitErr.Stderr)
	assert.Equal(t, "exit status 4: broken", exitErr.Error())

	_, err = bootstrap.ExecRunner{}.Run(context.Background(), filepath.Join(dir, "missing.sh"), dir)
	require.Error(t, err)
	assert.False(t, errors.As(err, &exitErr))
}
