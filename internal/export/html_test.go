// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jeranaias/reqlog/internal/summary"
)

func parseHTML(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAll returns every element below n accepted by match, in document order.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// =============================================================================
// TABLE OF CONTENTS
// =============================================================================

func TestHTML_TOCRows(t *testing.T) {
	doc := parseHTML(t, HTML(fixture()))

	tocs := findAll(doc, func(n *html.Node) bool {
		return n.Data == "ul" && attr(n, "class") == "toc"
	})
	require.Len(t, tocs, 1)

	var rows []string
	for _, li := range findAll(tocs[0], byTag("li")) {
		rows = append(rows, textContent(li))
	}
	assert.Equal(t, []string{
		"Summary",
		"Request: Request Headers · Request Body",
		"Response: Response Headers · Response Body",
		"Details: Timing · Sent Data · Query Items",
	}, rows)
}

func TestHTML_TOCLinksResolve(t *testing.T) {
	doc := parseHTML(t, HTML(fixture()))

	ids := map[string]bool{}
	for _, n := range findAll(doc, func(n *html.Node) bool { return attr(n, "id") != "" }) {
		ids[attr(n, "id")] = true
	}

	links := findAll(doc, byTag("a"))
	require.Len(t, links, 11)
	for _, a := range links {
		href := attr(a, "href")
		require.True(t, strings.HasPrefix(href, "#"), href)
		assert.True(t, ids[href[1:]], "no element with id %q", href[1:])
	}
	assert.True(t, ids["request_body"])
}

func TestHTML_TOCLeadingSubHeadings(t *testing.T) {
	r := NewHTMLRenderer()
	r.AddSubHeading("Orphan")
	r.AddHeading("Details")
	r.AddSubHeading("Sent Data")

	doc := parseHTML(t, r.Finalize(DocumentTitle))
	var rows []string
	for _, li := range findAll(doc, byTag("li")) {
		rows = append(rows, textContent(li))
	}
	assert.Equal(t, []string{"Orphan", "Details: Sent Data"}, rows)
}

func TestTOCRows(t *testing.T) {
	toc := []heading{
		{levelHeading, "Request"},
		{levelSubHeading, "Request Headers"},
		{levelHeading, "Response"},
		{levelHeading, "Details"},
		{levelSubHeading, "Timing"},
		{levelSubHeading, "Sent Data"},
	}
	rows := tocRows(toc)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 2)
	assert.Len(t, rows[1], 1)
	assert.Len(t, rows[2], 3)
	assert.Nil(t, tocRows(nil))
}

// =============================================================================
// DOCUMENT
// =============================================================================

func TestHTML_Document(t *testing.T) {
	out := HTML(fixture())

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, "<title>Request Log</title>")
	assert.Contains(t, out, "prefers-color-scheme: dark")
	assert.Contains(t, out, `<ul class="kv-purple">`)

	doc := parseHTML(t, out)
	// Self-contained: no scripts, stylesheets or images.
	for _, tag := range []string{"script", "link", "img", "iframe"} {
		assert.Empty(t, findAll(doc, byTag(tag)), tag)
	}
	assert.Len(t, findAll(doc, byTag("style")), 1)
	assert.Len(t, findAll(doc, byTag("h1")), 1)
	assert.Len(t, findAll(doc, byTag("h2")), 4)
	assert.Len(t, findAll(doc, byTag("h3")), 7)
}

func TestHTML_JSONIsColorized(t *testing.T) {
	doc := parseHTML(t, HTML(fixture()))

	spans := findAll(doc, byTag("span"))
	classes := map[string][]string{}
	for _, s := range spans {
		classes[attr(s, "class")] = append(classes[attr(s, "class")], textContent(s))
	}
	assert.Equal(t, []string{`"a"`}, classes["s"])
	assert.Equal(t, []string{"1"}, classes["n"])
	assert.Equal(t, []string{"{", ":", "}"}, classes["o"])

	codes := findAll(doc, byTag("code"))
	require.Len(t, codes, 2)
	assert.Equal(t, "{\n  \"a\": 1\n}", textContent(codes[0]))
	assert.Equal(t, "Data: 2 B", textContent(codes[1]))
}

func TestHTML_TextBodyNotColorized(t *testing.T) {
	r := NewHTMLRenderer()
	r.AddData([]byte("<b>hello</b> & 42"))
	out := r.Finalize(DocumentTitle)

	assert.Contains(t, out, "<pre><code>&lt;b&gt;hello&lt;/b&gt; &amp; 42</code></pre>")
	assert.NotContains(t, out, "<span")
}

func TestHTML_InvalidUTF8JSONIsBinary(t *testing.T) {
	r := NewHTMLRenderer()
	r.AddData([]byte("{\"a\":\"\xff\"}"))
	out := r.Finalize(DocumentTitle)

	assert.Contains(t, out, "<pre><code>Data: 8 B</code></pre>")
	assert.NotContains(t, out, "<span")
	assert.NotContains(t, out, "\uFFFD")
}

func TestHTML_EscapesUntrustedText(t *testing.T) {
	s := &summary.Summary{
		Overview: summary.NewSection("Summary", summary.ColorPrimary,
			summary.Field("URL", `https://x.io/?q=<script>alert(1)</script>`),
		),
		RequestHeaders: map[string]string{`X-"Evil"`: "<img src=x>"},
		RequestBody:    []byte(`{"<k>":"</code></pre><script>"}`),
	}
	out := HTML(s)
	doc := parseHTML(t, out)

	assert.Empty(t, findAll(doc, byTag("script")))
	assert.Empty(t, findAll(doc, byTag("img")))
	assert.Contains(t, textContent(doc), "<script>alert(1)</script>")
	assert.Contains(t, textContent(doc), `X-"Evil": <img src=x>`)
}

func TestHTML_EmptySection(t *testing.T) {
	r := NewHTMLRenderer()
	AddSection(r, summary.NewSection("Response Headers", summary.ColorRed))
	out := r.Finalize(DocumentTitle)

	assert.Contains(t, out, "<h3 id=\"response_headers\">Response Headers</h3>\n<p>Empty</p>\n")
}
