// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/Prairie-Wolf/metro-bundler/internal/command"
	"github.com/Prairie-Wolf/metro-bundler/internal/config"
)

// Encodings lists the accepted values of --bundle-encoding.
var Encodings = []string{EncodingUTF8, EncodingUTF16LE, EncodingASCII}

const (
	// EncodingUTF8 writes the entry file unchanged
	EncodingUTF8 = "utf8"
	// EncodingUTF16LE re-encodes the entry file as little-endian UTF-16
	EncodingUTF16LE = "utf16le"
	// EncodingASCII requires the entry file to be plain ASCII
	EncodingASCII = "ascii"
)

// Request holds the typed options of a bundle invocation.
type Request struct {
	EntryFile       string
	Platform        string
	Transformer     string
	Dev             bool
	BundleOutput    string
	BundleEncoding  string
	SourcemapOutput string
	AssetsDest      string
	ProjectRoot     string
	Verbose         bool
}

// NewRequest reads a Request out of the parsed options. Unset options
// leave their field zero.
func NewRequest(opts command.Options) *Request {
	return &Request{
		EntryFile:       opts.String("entryFile"),
		Platform:        opts.String("platform"),
		Transformer:     opts.String("transformer"),
		Dev:             opts.Bool("dev"),
		BundleOutput:    opts.String("bundleOutput"),
		BundleEncoding:  opts.String("bundleEncoding"),
		SourcemapOutput: opts.String("sourcemapOutput"),
		AssetsDest:      opts.String("assetsDest"),
		ProjectRoot:     opts.String("projectRoot"),
		Verbose:         opts.Bool("verbose"),
	}
}

// Validate checks the request against the project configuration.
func (r *Request) Validate(cfg *config.Config) error {
	var errs []error
	if r.EntryFile == "" {
		errs = append(errs, errors.New("an entry file is required"))
	}
	if r.BundleOutput == "" {
		errs = append(errs, errors.New("a bundle output path is required"))
	}
	if r.ProjectRoot == "" {
		errs = append(errs, errors.New("a project root is required"))
	}
	if !cfg.Project.SupportsPlatform(r.Platform) {
		errs = append(errs, fmt.Errorf("unsupported platform %q, expected one of %v", r.Platform, cfg.Project.Platforms))
	}
	if r.BundleEncoding != "" && !slices.Contains(Encodings, r.BundleEncoding) {
		errs = append(errs, fmt.Errorf("unsupported bundle encoding %q, expected one of %v", r.BundleEncoding, Encodings))
	}
	if err := errors.Join(errs...); err != nil {
		return &command.ValidationError{Err: err}
	}
	return nil
}

// EntryPath returns the entry file path, resolved against the project root.
func (r *Request) EntryPath() string {
	if filepath.IsAbs(r.EntryFile) {
		return filepath.Clean(r.EntryFile)
	}
	return filepath.Join(r.ProjectRoot, r.EntryFile)
}

// Encoding returns the requested encoding, utf8 when none was given.
func (r *Request) Encoding() string {
	if r.BundleEncoding == "" {
		return EncodingUTF8
	}
	return r.BundleEncoding
}
