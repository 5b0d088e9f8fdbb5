// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGetKeysWithNullValueFromYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		yamlInput string
		want      []string
	}{
		{
			name: "Test with null values",
			yamlInput: `
key1: null
key2:
  subkey1: null
  subkey2: value
key3: [null, value]
`,
			want: []string{
				".key1",
				".key2.subkey1",
				".key3[0]",
			},
		},
		{
			name: "Test without null values",
			yamlInput: `
key1: value1
key2:
  subkey1: subvalue1
  subkey2: subvalue2
key3: [value1, value2]
`,
			want: []string{},
		},
		{
			name: "Test with nested null values",
			yamlInput: `
logging:
  level: info
project:
  root: null
  platforms: [ios, null]
setup_env:
`,
			want: []string{
				".project.root",
				".project.platforms[1]",
				".setup_env",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			var data interface{}
			err := yaml.Unmarshal([]byte(test.yamlInput), &data)
			require.NoError(t, err)

			got := GetKeysWithNullValueFromYAML(data, "")
			assert.ElementsMatchf(t, got, test.want, "GetKeysWithNullValueFromYAML() = %v, want %v", got, test.want)
		})
	}
}

func TestGetRelevantCfgPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{
			name:  "Test with empty paths",
			paths: []string{},
			want:  "",
		},
		{
			name:  "Test with one empty path",
			paths: []string{""},
			want:  "",
		},
		{
			name:  "Test with one non-empty path",
			paths: []string{"config.yaml"},
			want:  "config.yaml",
		},
		{
			name:  "Test with multiple paths with empty path in the middle",
			paths: []string{"config.yaml", "", "config.yml"},
			want:  "config.yaml",
		},
		{
			name:  "Test with one non-empty path and all empty paths",
			paths: []string{"", "", "", "config.yaml"},
			want:  "config.yaml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			baseDir := t.TempDir()
			createdpaths := []string{}
			for _, path := range tt.paths {
				if path != "" {
					f, err := os.Create(filepath.Clean(filepath.Join(baseDir, path)))
					require.NoError(t, err)
					require.NoError(t, f.Close())
					createdpaths = append(createdpaths, f.Name())
				}
			}

			got := GetRelevantCfgPath(append(createdpaths, filepath.Join(baseDir, "missing.yaml")))
			assert.Regexp(t, regexp.MustCompile("^.*"+tt.want+"$"), got)
		})
	}
}

func TestPreParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		wantPath  string
		wantLevel string
	}{
		{
			name:      "no flags",
			args:      []string{"bundle"},
			wantLevel: "info",
		},
		{
			name:      "config among unknown flags",
			args:      []string{"bundle", "--entry-file", "index.js", "--config", "metro.yaml", "-p", "ios"},
			wantPath:  "metro.yaml",
			wantLevel: "info",
		},
		{
			name:      "global flags",
			args:      []string{"--logging-level=debug", "bundle", "--config=a.yaml"},
			wantPath:  "a.yaml",
			wantLevel: "debug",
		},
		{
			name:      "help does not stop parsing",
			args:      []string{"bundle", "--help", "--config", "b.yaml"},
			wantPath:  "b.yaml",
			wantLevel: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := viper.New()
			SetViperDefaults(v)
			got := PreParse(v, tt.args)
			assert.Equal(t, tt.wantPath, got)
			assert.Equal(t, tt.wantLevel, v.GetString("logging.level"))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		noFile  bool
		errMsg  string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid file",
			content: `
project:
  root: ./mobile
  platforms: [android]
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "./mobile", cfg.Project.Root)
				assert.Equal(t, []string{"android"}, cfg.Project.Platforms)
			},
		},
		{
			name: "null values",
			content: `
project:
  root:
`,
			errMsg: ".project.root",
		},
		{
			name: "invalid configuration",
			content: `
project:
  platforms: []
`,
			errMsg: "invalid configuration",
		},
		{
			name:   "explicit path missing",
			noFile: true,
			errMsg: "reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), FileName)
			if !tt.noFile {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			v := viper.New()
			SetViperDefaults(v)
			cfg, err := Load(v, path)
			if tt.errMsg != "" {
				assert.ErrorContains(t, err, tt.errMsg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
