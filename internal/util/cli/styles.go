// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli contains utility for the cli
package cli

import (
	"io"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color Palette
var (
	// PrimaryColor is the primary color for the cli.
	PrimaryColor = lipgloss.Color("#00BBBE")
	// ErrorColor is used for failure messages.
	ErrorColor = lipgloss.Color("#E0343D")
)

// Text styles
var (
	// DefaultWidth is the width option descriptions in help are wrapped to
	DefaultWidth = 80
	// Bold renders headings such as "Options:"
	Bold = lipgloss.NewStyle().Bold(true)
	// Usage renders the command usage line
	Usage = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	// Example renders example command lines
	Example = lipgloss.NewStyle().Foreground(PrimaryColor)
	// Failure renders error messages
	Failure = lipgloss.NewStyle().Foreground(ErrorColor)
)

// Styler renders text with the CLI styles, or leaves it untouched when the
// destination is not a terminal.
type Styler struct {
	plain bool
}

// NewStyler returns a Styler suited to w.
func NewStyler(w io.Writer) Styler {
	return Styler{plain: !IsTerminal(w)}
}

// PlainStyler returns a Styler that never adds escape sequences.
func PlainStyler() Styler {
	return Styler{plain: true}
}

// Render renders text with style s.
func (st Styler) Render(s lipgloss.Style, text string) string {
	if st.plain {
		return text
	}
	return s.Render(text)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	if fd > math.MaxInt32 {
		return false
	}
	// checked for overflow explicitly
	// nolint: gosec
	return term.IsTerminal(int(fd))
}

func init() {
	// Get the terminal width, if available, and set widths based on terminal width
	fd := os.Stdout.Fd()
	if fd > math.MaxInt32 {
		return
	}
	// checked for overflow explicitly
	// nolint: gosec
	w, _, err := term.GetSize(int(fd))
	if err == nil && w > 0 {
		DefaultWidth = w
	}
}
