// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the reqlog command-line interface.
//
// # Commands
//
//   - export: Write a capture as a text, Markdown or HTML document
//   - view: Preview the Markdown export in the terminal
//   - body: Print the pretty-printed request or response body
//   - watch: Re-export a capture every time it changes
//   - config: Show the effective configuration or write a default file
//   - version: Print version information
//
// Global flags --config, --log_level and --log_format apply to every
// command. Output is colored only when stdout is a terminal and NO_COLOR
// is not set.
package cli
