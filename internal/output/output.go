// Copyright (c) 2025 findx010197.
// SPDX-License-Identifier: MIT

// Package output renders command results as text tables, JSON, or YAML per
// the --output flag.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"
	yaml "gopkg.in/yaml.v2"
)

// Formats accepted by the --output flag.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormat reports whether f is a recognized output format.
func ValidFormat(f string) bool {
	return f == FormatText || f == FormatJSON || f == FormatYAML
}

// Spit writes v in the requested format. Text renders the given headers and
// rows as a borderless table; json and yaml marshal v directly. Unknown
// formats fall back to text.
func Spit(w io.Writer, format string, v any, headers []string, rows [][]string) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			log.WithError(err).Error("failed to marshal output")
			return
		}
		fmt.Fprintln(w, string(data))
	case FormatYAML:
		// Round trip through JSON so struct json tags drive the YAML keys.
		data, err := json.Marshal(v)
		if err != nil {
			log.WithError(err).Error("failed to marshal output")
			return
		}
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			log.WithError(err).Error("failed to convert output to yaml")
			return
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			log.WithError(err).Error("failed to marshal output")
			return
		}
		fmt.Fprint(w, string(out))
	default:
		spitTable(w, headers, rows)
	}
}

func spitTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		BorderHeader(false).
		Headers(headers...).
		Rows(rows...)

	if width := termWidth(); width > 0 {
		t = t.Width(width)
	}

	fmt.Fprintln(w, t)
}

// termWidth returns the terminal width, or 0 when stdout is not a terminal.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	if w, _, err := term.GetSize(fd); err == nil {
		return w
	}
	return 0
}
