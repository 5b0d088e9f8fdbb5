// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/Prairie-Wolf/metro-bundler/pkg/bundle"
)

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/plain.txt", []byte("not gzip"), 0o644))

	_, err := Open(fs, "/out/missing.bundle")
	require.Error(t, err)

	_, err = Open(fs, "/out/plain.txt")
	require.ErrorContains(t, err, "gzip reader")
}

func TestVerifyDetectsTampering(t *testing.T) {
	t.Parallel()

	fs := newProject(t)
	_, err := newTestPacker(fs).Bundle(context.Background(), &bundle.Request{
		EntryFile:    "index.js",
		BundleOutput: "/out/main.jsbundle",
		ProjectRoot:  "/app",
	})
	require.NoError(t, err)

	arc, err := Open(fs, "/out/main.jsbundle")
	require.NoError(t, err)
	require.NoError(t, arc.Verify())

	require.NoError(t, afero.WriteFile(arc.Source, "assets/img/logo.png", []byte("changed"), 0o644))
	require.ErrorContains(t, arc.Verify(), "hash mismatch for img/logo.png")

	require.NoError(t, arc.Source.Remove("src/index.js"))
	require.ErrorContains(t, arc.Verify(), "reading entry")
}
