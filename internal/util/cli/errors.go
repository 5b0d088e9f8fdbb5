// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
)

// ReportFailure writes the error message to w surrounded by blank lines.
func ReportFailure(w io.Writer, err error) {
	st := NewStyler(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.Render(Failure, err.Error()))
	fmt.Fprintln(w)
}

// ExitNicelyOnError prints the error to stderr and exits with status 1
func ExitNicelyOnError(err error) {
	if err != nil {
		ReportFailure(os.Stderr, err)
		os.Exit(1)
	}
}
