// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
)

// Manifest abstracts the json file included in the bundle that contains its metadata
type Manifest struct {
	Metadata *Metadata `json:"metadata,omitempty"`
	Files    *Files    `json:"files"`
}

// Write writes the bundle manifest to w
func (m *Manifest) Write(w io.Writer) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(&m); err != nil {
		return fmt.Errorf("encoding bundle manifest: %w", err)
	}

	return nil
}

// Read loads the manifest data by parsing json data from reader r
func (m *Manifest) Read(r io.Reader) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(m); err != nil {
		return fmt.Errorf("decoding manifest: %w", err)
	}
	return nil
}

// NewFile hashes data and returns its manifest entry.
func NewFile(name string, data []byte) *File {
	return &File{
		Name: name,
		Size: int64(len(data)),
		Hashes: map[HashAlgorithm]string{
			SHA256: fmt.Sprintf("%x", sha256.Sum256(data)),
		},
	}
}

// Verify checks data against the SHA-256 hash recorded for f.
func (f *File) Verify(data []byte) error {
	want, ok := f.Hashes[SHA256]
	if !ok {
		return fmt.Errorf("no %s hash recorded for %s", SHA256, f.Name)
	}
	if got := fmt.Sprintf("%x", sha256.Sum256(data)); got != want {
		return fmt.Errorf("hash mismatch for %s: got %s, want %s", f.Name, got, want)
	}
	return nil
}
