// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the slog handlers used by the reqlog CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
)

const (
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
	JSONFormat   = "json"
)

// Formats lists the accepted log formats.
var Formats = []string{TextFormat, LogfmtFormat, JSONFormat}

// Levels lists the accepted log level names.
var Levels = []string{"error", "warn", "info", "debug"}

// CreateHandler creates a slog.Handler writing to w.
//
// Text is human readable and colored when w is a terminal. Logfmt and JSON
// are for machines.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level := GetLevel(logLevel)

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case LogfmtFormat:
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			Formatter:       charmlog.LogfmtFormatter,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
		}), nil
	case TextFormat, "":
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:     charmlog.Level(level),
			Formatter: charmlog.TextFormatter,
		}), nil
	}

	return nil, fmt.Errorf("unknown log format %q", logFormat)
}

// GetLevel parses a level name. Unknown names mean info.
func GetLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "panic", "fatal", "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether level is a known level name.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "panic", "fatal", "error", "warn", "warning", "info", "debug", "trace":
		return true
	}
	return false
}

// ValidFormat reports whether format is a known log format.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case TextFormat, LogfmtFormat, JSONFormat:
		return true
	}
	return false
}
