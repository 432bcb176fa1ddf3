// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for reqlog.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the CLI)
//   - Environment variables (REQLOG_*)
//   - ~/.reqlog/config.toml
//   - ~/.reqlog/config.json
//   - Built-in defaults
//
// # Example
//
//	[export]
//	format = "markdown"
//	output_dir = "exports"
//	open_after_export = false
//
//	[log]
//	level = "info"
//	format = "json"
//
//	[preview]
//	style = "dark"
//	width = 100
package config
