// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"error", slog.LevelError},
		{"FATAL", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"info", slog.LevelInfo},
		{" debug ", slog.LevelDebug},
		{"trace", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetLevel(tt.in), tt.in)
	}
}

func TestCreateHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	h, err := CreateHandler(&buf, "debug", "JSON")
	require.NoError(t, err)
	slog.New(h).Debug("export written", "format", "html")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "export written", rec["msg"])
	assert.Equal(t, "html", rec["format"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestCreateHandler_TextFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	h, err := CreateHandler(&buf, "warn", "text")
	require.NoError(t, err)
	logger := slog.New(h)
	logger.Info("hidden")
	logger.Warn("shown", "path", "/tmp/x.md")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=/tmp/x.md")
	assert.NotContains(t, out, "\x1b[", "no colors on a buffer")
}

func TestCreateHandler_Logfmt(t *testing.T) {
	var buf bytes.Buffer
	h, err := CreateHandler(&buf, "info", "logfmt")
	require.NoError(t, err)
	slog.New(h).Info("capture loaded", "id", "c-1")

	out := buf.String()
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "msg=\"capture loaded\"")
	assert.Contains(t, out, "id=c-1")
	assert.Contains(t, out, "time=")
}

func TestCreateHandler_UnknownFormat(t *testing.T) {
	_, err := CreateHandler(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)

	h, err := CreateHandler(&bytes.Buffer{}, "info", "")
	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestValidators(t *testing.T) {
	for _, l := range Levels {
		assert.True(t, ValidLevel(l), l)
	}
	assert.False(t, ValidLevel("loud"))

	for _, f := range Formats {
		assert.True(t, ValidFormat(f), f)
	}
	assert.False(t, ValidFormat("xml"))
}
