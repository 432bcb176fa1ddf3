// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capture.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	changed := make(chan struct{}, 8)
	cw, err := NewCaptureWatcher(path, 20*time.Millisecond, func() {
		changed <- struct{}{}
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cw.Run(ctx) }()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))
	select {
	case <-changed:
		t.Fatal("callback fired for an unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte(`{"url":"https://example.com"}`), 0o644))
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not fired after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewCaptureWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.json")

	for _, d := range []time.Duration{0, -time.Second} {
		_, err := NewCaptureWatcher(path, d, func() {})
		require.Error(t, err, d.String())
	}

	// A 1ns debounce would otherwise give a zero ticker period.
	cw, err := NewCaptureWatcher(path, time.Nanosecond, func() {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cw.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewCaptureWatcher_MissingDir(t *testing.T) {
	_, err := NewCaptureWatcher(filepath.Join(t.TempDir(), "nope", "capture.json"), DefaultDebounce, func() {})
	require.Error(t, err)
}

func TestFormatBody(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"json", []byte(`{"a":[1,2]}`), "{\n  \"a\": [\n    1,\n    2\n  ]\n}"},
		{"text", []byte("plain body"), "plain body"},
		{"binary", []byte{0xFF, 0x00, 0xFE}, "Data: 3 B"},
		{"json with invalid UTF-8", []byte("{\"a\":\"\xff\"}"), "Data: 8 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBody(tt.data, false))
		})
	}
}

func TestNewStyles_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	st := NewStyles(os.Stdout)
	assert.Equal(t, "[OK]", st.RenderStatus("ok"))
	assert.Equal(t, "[WARN]", st.RenderStatus("warn"))
	assert.Equal(t, "[skipped]", st.RenderStatus("skipped"))
}

func TestColorsEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	assert.False(t, ColorsEnabled(&nopWriter{}))

	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, ColorsEnabled(&nopWriter{}))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorsEnabled(&nopWriter{}))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
