// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// MaxFilenameWidth is the display width SanitizeFilename truncates to.
const MaxFilenameWidth = 50

// SanitizeFilename turns s into a file name stem that is valid on Windows
// and Unix. The result is NFC-normalized and at most MaxFilenameWidth
// columns wide. fallback is returned when nothing usable remains.
func SanitizeFilename(s, fallback string) string {
	s = norm.NFC.String(strings.TrimSpace(s))

	var sb strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			sb.WriteRune('-')
		case unicode.IsSpace(r):
			sb.WriteRune('_')
		case r < 32 || r == 127 || !unicode.IsPrint(r):
			sb.WriteRune('-')
		default:
			sb.WriteRune(r)
		}
	}

	out := TruncateWidth(sb.String(), MaxFilenameWidth)
	// Windows drops trailing dots and spaces.
	out = strings.TrimRight(out, ". ")
	if strings.Trim(out, "-_") == "" {
		return fallback
	}
	return out
}

// TruncateWidth truncates s to at most maxWidth display columns without
// splitting a character. Wide characters (CJK) count as two columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "")
}
