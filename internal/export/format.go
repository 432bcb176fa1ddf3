// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNilSummary        = errors.New("summary is nil")
)

// Format is an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var formats = []Format{FormatText, FormatMarkdown, FormatHTML}

// Formats returns all supported formats.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name or one of its aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// FileExtension returns the file extension for the format (e.g. ".md").
func (f Format) FileExtension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	}
	return ".txt"
}

// MimeType returns the MIME type for the format.
func (f Format) MimeType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown"
	case FormatHTML:
		return "text/html"
	}
	return "text/plain"
}

// NewRenderer returns a fresh renderer for the format.
func NewRenderer(f Format) (Renderer, error) {
	switch f {
	case FormatText:
		return NewPlainTextRenderer(), nil
	case FormatMarkdown:
		return NewMarkdownRenderer(), nil
	case FormatHTML:
		return NewHTMLRenderer(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}
