// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for reqlog output.
//
// Commands write to the cobra output streams, which are plain buffers in
// tests and *os.File in normal use, so detection works on an io.Writer.

package cli

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	return ok && term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// ColorsEnabled reports whether colored output should be written to w.
// NO_COLOR disables colors, FORCE_COLOR enables them, otherwise colors
// follow TTY detection. See https://no-color.org/.
func ColorsEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return IsTerminal(w)
}

// ColorProfile returns the termenv color profile for w. Ascii means no
// escape sequences at all.
func ColorProfile(w io.Writer) termenv.Profile {
	if !ColorsEnabled(w) {
		return termenv.Ascii
	}
	if !IsTerminal(w) {
		// FORCE_COLOR on a pipe
		return termenv.ANSI256
	}
	return termenv.NewOutput(w).ColorProfile()
}
