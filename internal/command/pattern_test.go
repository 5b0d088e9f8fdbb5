// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    Pattern
		key     string
		wantErr bool
	}{
		{
			name:    "required argument with short flag",
			pattern: "-e, --entry-file <path>",
			want:    Pattern{Short: "e", Long: "entry-file", ArgName: "path", Arg: ArgRequired},
			key:     "entryFile",
		},
		{
			name:    "optional argument",
			pattern: "--platform [string]",
			want:    Pattern{Long: "platform", ArgName: "string", Arg: ArgOptional},
			key:     "platform",
		},
		{
			name:    "boolean",
			pattern: "--verbose",
			want:    Pattern{Long: "verbose"},
			key:     "verbose",
		},
		{
			name:    "negatable boolean",
			pattern: "--no-minify",
			want:    Pattern{Long: "no-minify", Negate: true},
			key:     "minify",
		},
		{
			name:    "no- prefix with an argument is not negatable",
			pattern: "--no-cache-dir <dir>",
			want:    Pattern{Long: "no-cache-dir", ArgName: "dir", Arg: ArgRequired},
			key:     "noCacheDir",
		},
		{
			name:    "pipe separator",
			pattern: "-p|--project-root <path>",
			want:    Pattern{Short: "p", Long: "project-root", ArgName: "path", Arg: ArgRequired},
			key:     "projectRoot",
		},
		{name: "empty", pattern: "", wantErr: true},
		{name: "short only", pattern: "-v", wantErr: true},
		{name: "two long flags", pattern: "--a --b", wantErr: true},
		{name: "long short flag", pattern: "-ab, --all", wantErr: true},
		{name: "two arguments", pattern: "--out <a> [b]", wantErr: true},
		{name: "stray word", pattern: "--out file", wantErr: true},
		{name: "empty argument", pattern: "--out <>", wantErr: true},
		{name: "bad name", pattern: "--out_file", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePattern(tt.pattern)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPattern)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.key, got.Key())
			assert.Equal(t, "--"+tt.want.Long, got.Flag())
		})
	}
}

func TestCamelCase(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"entry-file":       "entryFile",
		"sourcemap-output": "sourcemapOutput",
		"dev":              "dev",
		"a-b-c":            "aBC",
	} {
		assert.Equal(t, want, camelCase(in), in)
	}
}
