// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import "time"

// HashAlgorithm is a label that indicates a hashing algorithm
type HashAlgorithm string

const (
	// PathSource is the archive directory holding the entry file
	PathSource = "src"

	// PathAssets is the archive directory holding the project assets
	PathAssets = "assets"

	// ManifestFileName is the default filename for the manifest
	ManifestFileName = "manifest.json"
)

const (
	// SHA256 is the algorithm name constant for the manifest and tests
	SHA256 = HashAlgorithm("sha-256")
)

// Metadata is the data describing the bundle
type Metadata struct {
	Name        string     `json:"name,omitempty"`
	Platform    string     `json:"platform,omitempty"`
	Dev         bool       `json:"dev"`
	Encoding    string     `json:"encoding,omitempty"`
	Transformer string     `json:"transformer,omitempty"`
	Version     string     `json:"version,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// File captures the path, size and hashes of a file included in the bundle
type File struct {
	// Name is the path of the file relative to the project root
	Name   string                   `json:"name,omitempty"`
	Size   int64                    `json:"size"`
	Hashes map[HashAlgorithm]string `json:"hashes,omitempty"`
}

// Files is the collection of the files included in the bundle organized by type
type Files struct {
	Entry  *File   `json:"entry"`
	Assets []*File `json:"assets,omitempty"`
}
