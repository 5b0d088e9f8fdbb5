// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseVersionStartsWithVersion(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.HasPrefix(VerboseCLIVersion, CLIVersion))
}

func TestVersionStructString(t *testing.T) {
	t.Parallel()

	vvs := versionStruct{
		Version:   "1.2.3",
		GoVersion: "go1.24.6",
		Commit:    "abc123",
		Time:      "2024-05-01T00:00:00Z",
		OS:        "linux",
		Arch:      "amd64",
		Modified:  true,
	}

	out := vvs.String()
	assert.True(t, strings.HasPrefix(out, "1.2.3\n"))
	assert.Contains(t, out, "Git Commit: abc123")
	assert.Contains(t, out, "OS/Arch: linux/amd64")
	assert.Contains(t, out, "Dirty: true")
}
