// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prairie-Wolf/metro-bundler/internal/util/cli"
)

func TestFormatHelp(t *testing.T) {
	t.Parallel()

	reg, _, _ := newTestRegistry(t)
	inv := &invocation{}
	b, err := reg.bind(Descriptor{
		Name:        "bundle",
		Description: "Build the bundle",
		Pkg:         &PackageInfo{Name: "metro", Version: "1.2.3"},
		Options: []Option{
			{Command: "--entry-file <path>", Description: "Path to the root JS file", Required: true},
			{Command: "--dev [boolean]", Description: "Dev mode", Default: Literal(true)},
		},
		Examples: []Example{{Desc: "Build", Cmd: "metro bundle --entry-file index.js"}},
		Func:     inv.handler,
	})
	require.NoError(t, err)

	want := "\n" +
		"  metro bundle [options]\n" +
		"  Build the bundle\n" +
		"\n" +
		"  Source: metro@1.2.3\n" +
		"\n" +
		"  Options:\n" +
		"\n" +
		"    --entry-file <path>  Path to the root JS file\n" +
		"    --dev [boolean]      Dev mode (default: true)\n" +
		"    --config [string]    Path to the CLI configuration file\n" +
		"    -h, --help           output usage information\n" +
		"\n" +
		"  Example usage:\n" +
		"\n" +
		"    Build:\n" +
		"    metro bundle --entry-file index.js\n" +
		"\n" +
		"\n"
	assert.Equal(t, want, formatHelp(cli.PlainStyler(), 80, "metro bundle", b))
}

func TestFormatHelpMinimal(t *testing.T) {
	t.Parallel()

	reg, _, _ := newTestRegistry(t)
	inv := &invocation{}
	b, err := reg.bind(Descriptor{Name: "clean", Func: inv.handler})
	require.NoError(t, err)

	got := formatHelp(cli.PlainStyler(), 80, "metro clean", b)
	assert.NotContains(t, got, "Source:")
	assert.NotContains(t, got, "Example usage:")
	assert.Contains(t, got, "  metro clean [options]\n\n  Options:\n")
}

func TestOptionLinesWrapDescriptions(t *testing.T) {
	t.Parallel()

	const desc = "File name where to store the resulting bundle, ex. /tmp/groups.bundle"
	reg, _, _ := newTestRegistry(t)
	inv := &invocation{}
	b, err := reg.bind(Descriptor{
		Name:    "bundle",
		Options: []Option{{Command: "--bundle-output <string>", Description: desc}},
		Func:    inv.handler,
	})
	require.NoError(t, err)

	// the flags column is as wide as "--bundle-output <string>"
	const column = len("--bundle-output <string>") + 2
	lines := optionLines(b, 70)
	require.Len(t, lines, 4)

	var words []string
	for i, line := range lines[:len(lines)-2] {
		assert.LessOrEqual(t, len(line)+4, 70, line)
		if i > 0 {
			assert.Equal(t, strings.Repeat(" ", column), line[:column], line)
		}
		words = append(words, strings.Fields(line[column:])...)
	}
	assert.Equal(t, strings.Fields(desc), words)
	assert.Equal(t, "--bundle-output <string>  File", lines[0][:column+4])

	// nothing is wrapped when the terminal is wide enough
	assert.Len(t, optionLines(b, 200), 3)
}

func TestHelpFlagRendersCustomHelp(t *testing.T) {
	t.Parallel()

	reg, root, out := newTestRegistry(t)
	inv := &invocation{}
	_, err := reg.Add(Descriptor{
		Name:        "bundle",
		Description: "Build the bundle",
		Options:     []Option{{Command: "--entry-file <path>", Required: true}},
		Func:        inv.handler,
	})
	require.NoError(t, err)

	require.NoError(t, execute(root, "bundle", "--help"))
	assert.Zero(t, inv.calls)
	assert.Contains(t, out.String(), "  metro bundle [options]\n  Build the bundle\n")
	assert.Contains(t, out.String(), "--config [string]")
}
