// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/jeranaias/reqlog/internal/summary"
)

// =============================================================================
// PLAIN TEXT RENDERER
// =============================================================================

// PlainTextRenderer renders a plain-text document. Sections are marked with
// "## " and "#### " lines; there is no table of contents.
type PlainTextRenderer struct {
	contents strings.Builder
}

// NewPlainTextRenderer creates a new plain-text renderer.
func NewPlainTextRenderer() *PlainTextRenderer {
	return &PlainTextRenderer{}
}

// AddHeading implements Renderer.
func (r *PlainTextRenderer) AddHeading(title string) {
	r.contents.WriteString("## ")
	r.contents.WriteString(title)
	r.contents.WriteString("\n\n")
}

// AddSubHeading implements Renderer.
func (r *PlainTextRenderer) AddSubHeading(title string) {
	r.contents.WriteString("#### ")
	r.contents.WriteString(title)
	r.contents.WriteString("\n\n")
}

// AddData implements Renderer.
func (r *PlainTextRenderer) AddData(data []byte) {
	classify(data).writeText(&r.contents)
	r.contents.WriteString("\n\n")
}

// AddKeyValueSection implements Renderer.
func (r *PlainTextRenderer) AddKeyValueSection(section *summary.KeyValueSection, asSubHeading bool) {
	if section == nil {
		return
	}
	if asSubHeading {
		r.AddSubHeading(section.Title)
	} else {
		r.AddHeading(section.Title)
	}

	if section.IsEmpty() {
		r.contents.WriteString(EmptySection + "\n")
	} else {
		for _, it := range section.Items {
			r.contents.WriteString("- ")
			r.contents.WriteString(it.Key)
			r.contents.WriteString(": ")
			r.contents.WriteString(itemValue(it))
			r.contents.WriteString("\n")
		}
	}
	r.contents.WriteString("\n")
}

// Finalize implements Renderer. Plain text carries no document title.
func (r *PlainTextRenderer) Finalize(_ string) string {
	return r.contents.String()
}
