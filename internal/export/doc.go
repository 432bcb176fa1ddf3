// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export turns a network exchange summary into a self-contained
// document.
//
// One fixed traversal (Render) drives a Renderer through the same ordered
// sequence of headings, sections and body blobs for every format, so the
// documents produced for the same summary carry the same sections in the
// same order.
//
// # Key Types
//
//   - Renderer: the emit contract shared by all formats
//   - PlainTextRenderer, MarkdownRenderer, HTMLRenderer: format implementations
//   - Format: export format enumeration (text, markdown, html)
//   - Options: file export configuration
//
// # Supported Formats
//
//   - Plain text: "## " / "#### " section markers, no table of contents
//   - Markdown: linked table of contents, fenced code blocks
//   - HTML: single offline file with inline CSS and colorized JSON
//
// # Usage
//
// Export to a string:
//
//	doc, err := export.Export(sum, export.FormatHTML)
//
// Export to a file:
//
//	path, err := export.ExportToFile(sum, "api.example.com", export.FormatMarkdown, opts)
//
// A Renderer accumulates state for exactly one document. Never share one
// between exports; Export creates a fresh one per call.
package export
