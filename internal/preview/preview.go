// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview renders exported documents for display in a terminal.
package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN
// =============================================================================

// Glamour style names accepted by Options.Style.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

// Styles lists the accepted style names.
var Styles = []string{StyleAuto, StyleDark, StyleLight, StyleNoTTY}

// DefaultWidth is the word-wrap width used when Options.Width is not set.
const DefaultWidth = 100

// Options configures Markdown rendering.
type Options struct {
	Style string
	Width int
}

// ValidStyle reports whether name is an accepted style.
func ValidStyle(name string) bool {
	for _, s := range Styles {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// Markdown renders a Markdown document for the terminal.
func Markdown(doc string, opts Options) (string, error) {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	var styleOpt glamour.TermRendererOption
	switch strings.ToLower(opts.Style) {
	case "", StyleAuto:
		styleOpt = glamour.WithAutoStyle()
	case StyleDark, StyleLight, StyleNoTTY:
		styleOpt = glamour.WithStandardStyle(strings.ToLower(opts.Style))
	default:
		return "", fmt.Errorf("unknown preview style %q", opts.Style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(doc)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// =============================================================================
// JSON HIGHLIGHTING
// =============================================================================

// HighlightJSON colorizes JSON text for 256-color terminals. The input is
// returned unchanged if highlighting fails.
func HighlightJSON(text string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		return text
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return text
	}
	return buf.String()
}
