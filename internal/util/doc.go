// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides file and string helpers shared by the reqlog packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync and rename
//   - SanitizeFilename: turns a display name into a portable file name stem
//   - TruncateWidth: display-width aware truncation (CJK counts as 2 columns)
//
// # Usage
//
//	name := util.SanitizeFilename("api.example.com/v1/users", "request")
//	err := util.AtomicWriteFile(filepath.Join(dir, name+".html"), data, 0o644)
package util
