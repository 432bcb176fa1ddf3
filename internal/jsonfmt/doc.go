// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jsonfmt pretty-prints JSON documents for export.
//
// Parse decodes a payload into an ordered Value tree: object members keep
// the order they had in the input and numbers keep their literal text, so
// printing never reorders or reformats data. Payloads that are not valid
// UTF-8 are rejected rather than repaired. Print walks the tree and emits
// tokens into a Sink with two-space indentation per nesting level.
//
// # Sinks
//
//   - TextSink: plain text, used by the plain-text and Markdown exports
//   - HTMLSink: escaped text with every token wrapped in a class-tagged
//     <span> ("s" strings, "o" punctuation, "n" numbers and keywords)
//
// # Usage
//
//	v, err := jsonfmt.Parse(body)
//	if err != nil {
//	    // not JSON, fall back to text
//	}
//	var sb strings.Builder
//	jsonfmt.Print(jsonfmt.NewHTMLSink(&sb), v)
package jsonfmt
