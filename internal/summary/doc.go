// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package summary defines the read-only model of one logged network exchange
// that the export subsystem renders.
//
// # Key Types
//
//   - Summary: bodies, headers, transfer sizes and pre-built sections
//   - KeyValueSection: a titled, ordered list of optionally-valued fields
//   - TransferSizes: the six byte counts shown in the "Sent Data" section
//
// # Section Builders
//
// The Make* functions build the sections a Summary carries from raw capture
// values. Ordering decisions (such as sorting headers by name) are made here,
// never by a renderer:
//
//	headers := summary.MakeHeaders("Request Headers", req.Header)
//	query := summary.MakeQueryItems(u)
package summary
