// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/reqlog/internal/jsonfmt"
	"github.com/jeranaias/reqlog/internal/summary"
)

// =============================================================================
// RENDERER INTERFACE
// =============================================================================

// Renderer accumulates one document. Implementations are not safe for
// concurrent use and Finalize must be called exactly once.
type Renderer interface {
	// AddHeading appends a primary section marker.
	AddHeading(title string)

	// AddSubHeading appends a secondary section marker.
	AddSubHeading(title string)

	// AddData appends a body blob: pretty JSON when it parses, the text
	// when it is valid UTF-8, and a byte-count placeholder otherwise.
	AddData(data []byte)

	// AddKeyValueSection appends a titled section. A nil section is skipped.
	// The title is a sub-heading when asSubHeading is true, else a heading.
	AddKeyValueSection(section *summary.KeyValueSection, asSubHeading bool)

	// Finalize returns the complete document.
	Finalize(title string) string
}

// AddSection appends section under a sub-heading.
func AddSection(r Renderer, section *summary.KeyValueSection) {
	r.AddKeyValueSection(section, true)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

const (
	// MissingValue is shown for items without a value.
	MissingValue = "–"

	// EmptySection is shown for sections without items.
	EmptySection = "Empty"
)

// Anchor returns the link target for a heading title: lowercased, with
// spaces replaced by underscores. Nothing else is escaped.
func Anchor(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "_"))
}

// heading is a table-of-contents record.
type heading struct {
	level int
	title string
}

const (
	levelHeading    = 2
	levelSubHeading = 3
)

func itemValue(it summary.Item) string {
	if it.Value == nil {
		return MissingValue
	}
	return *it.Value
}

type payloadKind int

const (
	payloadJSON payloadKind = iota
	payloadText
	payloadBinary
)

// payload is a body blob classified for rendering.
type payload struct {
	kind payloadKind
	json jsonfmt.Value
	data []byte
}

func classify(data []byte) payload {
	if v, err := jsonfmt.Parse(data); err == nil {
		return payload{kind: payloadJSON, json: v, data: data}
	}
	if utf8.Valid(data) {
		return payload{kind: payloadText, data: data}
	}
	return payload{kind: payloadBinary, data: data}
}

// placeholder describes a blob that cannot be shown as text.
func (p payload) placeholder() string {
	return "Data: " + humanize.Bytes(uint64(len(p.data)))
}

// writeText writes the JSON or text form of p, or its placeholder, into sb.
func (p payload) writeText(sb *strings.Builder) {
	switch p.kind {
	case payloadJSON:
		jsonfmt.Print(jsonfmt.NewTextSink(sb), p.json)
	case payloadText:
		sb.Write(p.data)
	default:
		sb.WriteString(p.placeholder())
	}
}
