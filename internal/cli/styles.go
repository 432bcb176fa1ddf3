// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for reqlog status output.

package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for one output stream.
type Styles struct {
	// Success marks completed operations
	// Color: Green (#42)
	Success lipgloss.Style

	// Error marks failures
	// Color: Red (#196)
	Error lipgloss.Style

	// Warning marks recoverable problems
	// Color: Yellow/Orange (#214)
	Warning lipgloss.Style

	// Path highlights file names
	// Color: Cyan (#39)
	Path lipgloss.Style

	// Dim is for secondary information
	// Color: Dim gray (#242)
	Dim lipgloss.Style
}

// NewStyles returns styles bound to w. Colors are dropped entirely when w
// is not a terminal or NO_COLOR is set.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(ColorProfile(w))

	return &Styles{
		Success: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		Path:    r.NewStyle().Foreground(lipgloss.Color("39")),
		Dim:     r.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

// RenderStatus renders a status tag with the matching color.
func (s *Styles) RenderStatus(status string) string {
	switch status {
	case "ok":
		return s.Success.Render("[OK]")
	case "error":
		return s.Error.Render("[ERROR]")
	case "warn":
		return s.Warning.Render("[WARN]")
	default:
		return s.Dim.Render("[" + status + "]")
	}
}
