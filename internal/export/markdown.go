// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"

	"github.com/jeranaias/reqlog/internal/summary"
)

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// MarkdownRenderer renders a Markdown document. The table of contents and
// the body are written side by side in a single pass.
type MarkdownRenderer struct {
	toc      strings.Builder
	contents strings.Builder
}

// NewMarkdownRenderer creates a new Markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// AddHeading implements Renderer.
func (r *MarkdownRenderer) AddHeading(title string) {
	r.tocLine("- [**" + title + "**](#" + Anchor(title) + ")")
	r.writeHeading("## ", title)
}

// AddSubHeading implements Renderer.
func (r *MarkdownRenderer) AddSubHeading(title string) {
	r.tocLine("  - [" + title + "](#" + Anchor(title) + ")")
	r.writeHeading("#### ", title)
}

func (r *MarkdownRenderer) tocLine(line string) {
	if r.toc.Len() > 0 {
		r.toc.WriteString("\n")
	}
	r.toc.WriteString(line)
}

// writeHeading emits an HTML anchor above the heading so the TOC link target
// and the heading identifier are the same string.
func (r *MarkdownRenderer) writeHeading(marker, title string) {
	r.contents.WriteString(`<a id="`)
	r.contents.WriteString(Anchor(title))
	r.contents.WriteString("\"></a>\n")
	r.contents.WriteString(marker)
	r.contents.WriteString(title)
	r.contents.WriteString("\n\n")
}

// AddData implements Renderer. Only payloads that parsed as JSON get a
// "json" info string on the fence.
func (r *MarkdownRenderer) AddData(data []byte) {
	p := classify(data)
	fence := codeFence(data)

	r.contents.WriteString(fence)
	if p.kind == payloadJSON {
		r.contents.WriteString("json")
	}
	r.contents.WriteString("\n")
	p.writeText(&r.contents)
	r.contents.WriteString("\n")
	r.contents.WriteString(fence)
	r.contents.WriteString("\n\n")
}

// codeFence returns a backtick fence longer than any backtick run in data.
func codeFence(data []byte) string {
	longest, run := 0, 0
	for _, b := range data {
		if b == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// AddKeyValueSection implements Renderer.
func (r *MarkdownRenderer) AddKeyValueSection(section *summary.KeyValueSection, asSubHeading bool) {
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
			r.contents.WriteString("- **")
			r.contents.WriteString(it.Key)
			r.contents.WriteString("**: ")
			r.contents.WriteString(itemValue(it))
			r.contents.WriteString("\n")
		}
	}
	r.contents.WriteString("\n")
}

// Finalize implements Renderer.
func (r *MarkdownRenderer) Finalize(title string) string {
	var sb strings.Builder
	sb.Grow(len(title) + r.toc.Len() + r.contents.Len() + 8)
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	sb.WriteString(r.toc.String())
	sb.WriteString("\n\n")
	sb.WriteString(r.contents.String())
	return sb.String()
}
