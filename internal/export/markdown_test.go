// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jeranaias/reqlog/internal/summary"
)

func parseMarkdown(t *testing.T, src string) ast.Node {
	t.Helper()
	doc := goldmark.New().Parser().Parse(text.NewReader([]byte(src)))
	require.NotNil(t, doc)
	return doc
}

// nodeText concatenates the text segments below n.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func firstList(doc ast.Node) *ast.List {
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if l, ok := c.(*ast.List); ok {
			return l
		}
	}
	return nil
}

// =============================================================================
// TABLE OF CONTENTS
// =============================================================================

func TestMarkdown_TOCLines(t *testing.T) {
	r := NewMarkdownRenderer()
	r.AddHeading("Request")
	r.AddHeading("Response")
	r.AddHeading("Details")
	r.AddSubHeading("Sent Data")

	out := r.Finalize(DocumentTitle)
	want := "# Request Log\n\n" +
		"- [**Request**](#request)\n" +
		"- [**Response**](#response)\n" +
		"- [**Details**](#details)\n" +
		"  - [Sent Data](#sent_data)\n\n"
	assert.True(t, strings.HasPrefix(out, want), out)
}

func TestMarkdown_TOCStructure(t *testing.T) {
	r := NewMarkdownRenderer()
	r.AddHeading("Request")
	r.AddHeading("Response")
	r.AddHeading("Details")
	r.AddSubHeading("Sent Data")
	src := r.Finalize(DocumentTitle)

	doc := parseMarkdown(t, src)
	toc := firstList(doc)
	require.NotNil(t, toc)
	require.Equal(t, 3, toc.ChildCount())

	details := toc.LastChild()
	assert.Equal(t, "Details", nodeText(details.FirstChild(), []byte(src)))

	nested, ok := details.LastChild().(*ast.List)
	require.True(t, ok, "sub-heading is not nested under its heading")
	assert.Equal(t, 1, nested.ChildCount())
	assert.Equal(t, "Sent Data", nodeText(nested, []byte(src)))
}

func TestMarkdown_FullDocumentStructure(t *testing.T) {
	src := Markdown(fixture())
	doc := parseMarkdown(t, src)

	levels := map[int][]string{}
	var links []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			levels[node.Level] = append(levels[node.Level], nodeText(node, []byte(src)))
		case *ast.Link:
			links = append(links, string(node.Destination))
		}
		return ast.WalkContinue, nil
	})

	assert.Equal(t, []string{"Request Log"}, levels[1])
	assert.Equal(t, []string{"Summary", "Request", "Response", "Details"}, levels[2])
	assert.Equal(t, []string{"Request Headers", "Request Body", "Response Headers",
		"Response Body", "Timing", "Sent Data", "Query Items"}, levels[4])

	toc := firstList(doc)
	require.NotNil(t, toc)
	assert.Equal(t, 4, toc.ChildCount())

	// Every TOC link resolves to an anchor in the body.
	require.Len(t, links, 11)
	for _, dest := range links {
		require.True(t, strings.HasPrefix(dest, "#"), dest)
		assert.Contains(t, src, `<a id="`+dest[1:]+`"></a>`)
	}
}

func TestMarkdown_AnchorRoundTrip(t *testing.T) {
	src := Markdown(fixture())
	assert.Contains(t, src, "  - [Request Body](#request_body)")
	assert.Contains(t, src, "<a id=\"request_body\"></a>\n#### Request Body\n")
}

// =============================================================================
// BODY
// =============================================================================

func TestMarkdown_Data(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"json", []byte(`{"a":1}`), "```json\n{\n  \"a\": 1\n}\n```\n\n"},
		{"text", []byte("hello world"), "```\nhello world\n```\n\n"},
		{"binary", []byte{0xFF, 0xFE}, "```\nData: 2 B\n```\n\n"},
		{"json with invalid UTF-8", []byte("{\"a\":\"\xff\"}"), "```\nData: 8 B\n```\n\n"},
		{"backticks", []byte("a ```` b"), "`````\na ```` b\n`````\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewMarkdownRenderer()
			r.AddData(tt.data)
			assert.Equal(t, "# T\n\n\n\n"+tt.want, r.Finalize("T"))
		})
	}
}

func TestMarkdown_Section(t *testing.T) {
	r := NewMarkdownRenderer()
	r.AddKeyValueSection(summary.NewSection("Summary", summary.ColorPrimary,
		summary.Field("Method", "POST"),
		summary.Item{Key: "Duration"},
	), false)
	AddSection(r, summary.NewSection("Timing", summary.ColorOrange))
	AddSection(r, nil)

	want := "# Request Log\n\n" +
		"- [**Summary**](#summary)\n" +
		"  - [Timing](#timing)\n\n" +
		"<a id=\"summary\"></a>\n## Summary\n\n" +
		"- **Method**: POST\n" +
		"- **Duration**: –\n\n" +
		"<a id=\"timing\"></a>\n#### Timing\n\n" +
		"Empty\n\n"
	assert.Equal(t, want, r.Finalize(DocumentTitle))
}

func TestCodeFence(t *testing.T) {
	assert.Equal(t, "```", codeFence([]byte("plain")))
	assert.Equal(t, "```", codeFence([]byte("``inline``")))
	assert.Equal(t, "````", codeFence([]byte("```")))
	assert.Equal(t, "``````", codeFence([]byte("x`````y")))
}
