// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/Prairie-Wolf/metro-bundler/pkg/bundle"
)

// Archive is a bundle archive loaded into memory.
type Archive struct {
	Manifest *bundle.Manifest
	Source   afero.Fs
}

// Open loads the archive at name from fs. Note that this implementation
// loads the entire contents of the archive into memory.
func Open(fs afero.Fs, name string) (*Archive, error) {
	file, err := fs.Open(filepath.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("error while opening %s: %w", name, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("error while creating gzip reader for %s: %w", name, err)
	}
	defer gz.Close()

	source, err := copyTarIntoMemory(tar.NewReader(gz))
	if err != nil {
		return nil, err
	}

	f, err := source.Open(bundle.ManifestFileName)
	if err != nil {
		return nil, fmt.Errorf("archive %s has no manifest: %w", name, err)
	}
	defer f.Close()

	man := &bundle.Manifest{}
	if err := man.Read(f); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if man.Files == nil || man.Files.Entry == nil {
		return nil, fmt.Errorf("manifest of %s does not list an entry file", name)
	}
	return &Archive{Manifest: man, Source: source}, nil
}

// Entry returns the contents of the entry file.
func (a *Archive) Entry() ([]byte, error) {
	return afero.ReadFile(a.Source, path.Join(bundle.PathSource, a.Manifest.Files.Entry.Name))
}

// Asset returns the contents of the named asset.
func (a *Archive) Asset(name string) ([]byte, error) {
	return afero.ReadFile(a.Source, path.Join(bundle.PathAssets, name))
}

// Verify checks the contents of the archive against its manifest
func (a *Archive) Verify() error {
	var errs []error
	data, err := a.Entry()
	if err != nil {
		errs = append(errs, fmt.Errorf("reading entry: %w", err))
	} else if err := a.Manifest.Files.Entry.Verify(data); err != nil {
		errs = append(errs, err)
	}
	for _, f := range a.Manifest.Files.Assets {
		data, err := a.Asset(f.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading asset %s: %w", f.Name, err))
			continue
		}
		if err := f.Verify(data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func copyTarIntoMemory(tarReader *tar.Reader) (afero.Fs, error) {
	sourceFS := afero.NewMemMapFs()

	for {
		header, err := tarReader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error while iterating through tar: %w", err)
		}

		// assumption: we do not care about anything other than regular files
		// filter out relative paths to keep the static analysis tools happy
		if strings.Contains(header.Name, "..") || header.Typeflag != tar.TypeReg {
			continue
		}

		if err := sourceFS.MkdirAll(path.Dir(header.Name), 0o700); err != nil {
			return nil, fmt.Errorf("error creating directory in memfs: %w", err)
		}
		memFile, err := sourceFS.Create(header.Name)
		if err != nil {
			return nil, fmt.Errorf("error while creating memfs file: %w", err)
		}
		if _, err := io.Copy(memFile, tarReader); err != nil {
			_ = memFile.Close()
			return nil, fmt.Errorf("error while copying file into memfs: %w", err)
		}
		if err := memFile.Close(); err != nil {
			return nil, fmt.Errorf("error while closing memfs file: %w", err)
		}
	}

	return sourceFS, nil
}
