// SPDX-FileCopyrightText: Copyright 2024 The Metro Bundler Authors
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Prairie-Wolf/metro-bundler/internal/util/cli"
)

const (
	helpUsage = "output usage information"
	// indent of the option rows, and the gap between flags and description
	optionIndent = 4
	optionGap    = 2
	// descriptions are never wrapped narrower than this
	minDescWidth = 20
)

func renderHelp(w io.Writer, cmd *cobra.Command, b *binding) {
	fmt.Fprint(w, formatHelp(cli.NewStyler(w), cli.DefaultWidth, cmd.CommandPath(), b))
}

func formatHelp(st cli.Styler, width int, path string, b *binding) string {
	var sb strings.Builder

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  %s\n", st.Render(cli.Usage, path+" [options]"))
	if b.desc.Description != "" {
		fmt.Fprintf(&sb, "  %s\n", b.desc.Description)
	}
	sb.WriteString("\n")

	if b.desc.Pkg != nil {
		fmt.Fprintf(&sb, "  %s %s\n\n", st.Render(cli.Bold, "Source:"), b.desc.Pkg)
	}

	fmt.Fprintf(&sb, "  %s\n\n", st.Render(cli.Bold, "Options:"))
	for _, line := range optionLines(b, width) {
		fmt.Fprintf(&sb, "    %s\n", line)
	}
	sb.WriteString("\n")

	if len(b.desc.Examples) > 0 {
		fmt.Fprintf(&sb, "  %s\n\n", st.Render(cli.Bold, "Example usage:"))
		for _, ex := range b.desc.Examples {
			fmt.Fprintf(&sb, "    %s:\n", ex.Desc)
			fmt.Fprintf(&sb, "    %s\n\n", st.Render(cli.Example, ex.Cmd))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// optionLines lists the flags with their descriptions aligned in a column.
// Descriptions running past width are wrapped and continue in the same
// column.
func optionLines(b *binding, width int) []string {
	type row struct{ flags, desc string }
	rows := make([]row, 0, len(b.options)+1)
	for _, o := range b.options {
		desc := o.opt.Description
		if o.def != nil && o.def != "" {
			desc += fmt.Sprintf(" (default: %v)", o.def)
		}
		rows = append(rows, row{flags: o.opt.Command, desc: desc})
	}
	rows = append(rows, row{flags: "-h, --help", desc: helpUsage})

	flagsWidth := 0
	for _, r := range rows {
		flagsWidth = max(flagsWidth, len(r.flags))
	}
	descWidth := max(width-optionIndent-flagsWidth-optionGap, minDescWidth)
	wrap := lipgloss.NewStyle().Width(descWidth)
	pad := strings.Repeat(" ", flagsWidth+optionGap)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		desc := []string{r.desc}
		if len(r.desc) > descWidth {
			desc = strings.Split(wrap.Render(r.desc), "\n")
		}
		lines = append(lines, strings.TrimRight(fmt.Sprintf("%-*s  %s", flagsWidth, r.flags, desc[0]), " "))
		for _, d := range desc[1:] {
			lines = append(lines, strings.TrimRight(pad+d, " "))
		}
	}
	return lines
}
