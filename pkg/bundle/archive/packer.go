// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package archive implements the default bundle.Bundler. It packs the entry
// file, the project assets and a manifest describing them into a gzipped
// tarball.
package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"

	"github.com/Prairie-Wolf/metro-bundler/internal/constants"
	"github.com/Prairie-Wolf/metro-bundler/pkg/bundle"
)

// skippedDirs are never searched for assets.
var skippedDirs = []string{"node_modules"}

// Packer writes bundles to archives on a filesystem.
type Packer struct {
	Fs afero.Fs
	// AssetExts lists the asset file extensions, without the leading dot.
	AssetExts []string
	// Now stamps the manifest. Nil means time.Now.
	Now func() time.Time
}

var _ bundle.Bundler = (*Packer)(nil)

// NewPacker returns a packer writing to fs.
func NewPacker(fs afero.Fs, assetExts []string) *Packer {
	return &Packer{Fs: fs, AssetExts: assetExts}
}

type asset struct {
	name string
	data []byte
}

// Bundle implements bundle.Bundler.
func (p *Packer) Bundle(ctx context.Context, req *bundle.Request) (*bundle.Result, error) {
	logger := zerolog.Ctx(ctx)

	entryPath := req.EntryPath()
	src, err := afero.ReadFile(p.Fs, entryPath)
	if err != nil {
		return nil, fmt.Errorf("reading entry file: %w", err)
	}
	encoded, err := encode(src, req.Encoding())
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", entryPath, err)
	}
	entryName := relName(req.ProjectRoot, entryPath)

	assets, err := p.collectAssets(req, entryPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("count", len(assets)).Str("root", req.ProjectRoot).Msg("collected assets")

	now := p.now()
	man := &bundle.Manifest{
		Metadata: &bundle.Metadata{
			Name:        entryName,
			Platform:    req.Platform,
			Dev:         req.Dev,
			Encoding:    req.Encoding(),
			Transformer: req.Transformer,
			Version:     constants.CLIVersion,
			Date:        &now,
		},
		Files: &bundle.Files{
			Entry:  bundle.NewFile(entryName, encoded),
			Assets: make([]*bundle.File, 0, len(assets)),
		},
	}
	for _, a := range assets {
		man.Files.Assets = append(man.Files.Assets, bundle.NewFile(a.name, a.data))
	}

	if err := p.writeArchive(req.BundleOutput, man, encoded, assets, now); err != nil {
		return nil, fmt.Errorf("writing bundle to %s: %w", req.BundleOutput, err)
	}
	logger.Debug().Str("output", req.BundleOutput).Msg("archive written")

	res := &bundle.Result{Manifest: man, Output: req.BundleOutput}
	if req.AssetsDest != "" {
		if res.Assets, err = p.copyAssets(req.AssetsDest, assets); err != nil {
			return nil, err
		}
	}
	if req.SourcemapOutput != "" {
		if err := p.writeSourceMap(req.SourcemapOutput, req.BundleOutput, entryName); err != nil {
			return nil, err
		}
		res.SourceMap = req.SourcemapOutput
	}
	return res, nil
}

func (p *Packer) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

// collectAssets walks the project root for files with an asset extension.
func (p *Packer) collectAssets(req *bundle.Request, entryPath string) ([]asset, error) {
	root := filepath.Clean(req.ProjectRoot)
	exclude := []string{filepath.Clean(entryPath), filepath.Clean(req.BundleOutput)}
	if req.SourcemapOutput != "" {
		exclude = append(exclude, filepath.Clean(req.SourcemapOutput))
	}
	dest := ""
	if req.AssetsDest != "" {
		dest = filepath.Clean(req.AssetsDest)
	}

	var assets []asset
	err := afero.Walk(p.Fs, root, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("reading %q: %w", name, err)
		}
		if info.IsDir() {
			if name == root {
				return nil
			}
			base := info.Name()
			if strings.HasPrefix(base, ".") || slices.Contains(skippedDirs, base) || name == dest {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() || slices.Contains(exclude, name) || !p.isAsset(name) {
			return nil
		}
		data, err := afero.ReadFile(p.Fs, name)
		if err != nil {
			return fmt.Errorf("reading asset %q: %w", name, err)
		}
		assets = append(assets, asset{name: relName(root, name), data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting assets: %w", err)
	}
	return assets, nil
}

func (p *Packer) isAsset(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && slices.Contains(p.AssetExts, ext)
}

// writeArchive writes the manifest, the entry and the assets to a tar.gz
func (p *Packer) writeArchive(dst string, man *bundle.Manifest, entry []byte, assets []asset, now time.Time) error {
	if err := p.Fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := p.Fs.Create(filepath.Clean(dst))
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var manifest bytes.Buffer
	if err := man.Write(&manifest); err != nil {
		return err
	}

	gz := gzip.NewWriter(f)
	tarWriter := tar.NewWriter(gz)

	entries := []asset{
		{name: bundle.ManifestFileName, data: manifest.Bytes()},
		{name: path.Join(bundle.PathSource, man.Files.Entry.Name), data: entry},
	}
	for _, a := range assets {
		entries = append(entries, asset{name: path.Join(bundle.PathAssets, a.name), data: a.data})
	}
	for _, e := range entries {
		header := &tar.Header{
			Name:     e.name,
			Size:     int64(len(e.data)),
			Mode:     0o644,
			ModTime:  now,
			Typeflag: tar.TypeReg,
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("writing header for %q: %w", e.name, err)
		}
		if _, err := tarWriter.Write(e.data); err != nil {
			return fmt.Errorf("writing data from %q to archive: %w", e.name, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return f.Close()
}

func (p *Packer) copyAssets(dest string, assets []asset) ([]string, error) {
	copied := make([]string, 0, len(assets))
	for _, a := range assets {
		target := filepath.Join(dest, filepath.FromSlash(a.name))
		if err := p.Fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, fmt.Errorf("creating asset directory: %w", err)
		}
		if err := afero.WriteFile(p.Fs, target, a.data, 0o644); err != nil {
			return nil, fmt.Errorf("copying asset %s: %w", a.name, err)
		}
		copied = append(copied, target)
	}
	return copied, nil
}

// sourceMap is a revision 3 source map without mappings; the entry file is
// copied as is, so every generated position maps to itself.
type sourceMap struct {
	Version  int      `json:"version"`
	File     string   `json:"file"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

func (p *Packer) writeSourceMap(dst, bundleOutput, entryName string) error {
	data, err := json.Marshal(sourceMap{
		Version: 3,
		File:    filepath.Base(bundleOutput),
		Sources: []string{entryName},
		Names:   []string{},
	})
	if err != nil {
		return fmt.Errorf("encoding source map: %w", err)
	}
	if err := p.Fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating source map directory: %w", err)
	}
	if err := afero.WriteFile(p.Fs, dst, data, 0o644); err != nil {
		return fmt.Errorf("writing source map: %w", err)
	}
	return nil
}

func encode(src []byte, encoding string) ([]byte, error) {
	switch encoding {
	case bundle.EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes(src)
	case bundle.EncodingASCII:
		for i, b := range src {
			if b >= utf8.RuneSelf {
				return nil, fmt.Errorf("non-ASCII byte at offset %d", i)
			}
		}
		return src, nil
	default:
		return src, nil
	}
}

// relName returns name relative to root with forward slashes, or its base
// name when it lies outside root.
func relName(root, name string) string {
	rel, err := filepath.Rel(root, name)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(name)
	}
	return filepath.ToSlash(rel)
}
