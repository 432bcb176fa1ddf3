// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes for reqlog commands.
//
// Commands always return errors; main displays them once and maps them to
// an exit code.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/reqlog/internal/capture"
	"github.com/jeranaias/reqlog/internal/config"
	"github.com/jeranaias/reqlog/internal/export"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrConfig wraps failures to load or validate configuration.
var ErrConfig = errors.New("configuration error")

// ValidationError represents a validation failure for user input.
type ValidationError struct {
	Field   string // Flag or argument that failed validation
	Value   string // Value that was provided
	Reason  string // Why validation failed
	Example string // Example of valid value (optional)
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	if e.Value != "" {
		msg += fmt.Sprintf(" (got: %s)", e.Value)
	}
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var (
		validation *ValidationError
		invalid    config.ValidateErrors
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, capture.ErrCaptureNotFound):
		return ExitNotFoundError
	case errors.Is(err, ErrConfig), errors.As(err, &invalid):
		return ExitConfigError
	case errors.Is(err, export.ErrUnsupportedFormat), errors.As(err, &validation):
		return ExitUsageError
	default:
		return ExitGeneralError
	}
}

// DisplayError writes err to w in the standard format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	st := NewStyles(w)
	fmt.Fprintf(w, "%s %s\n", st.RenderStatus("error"), err.Error())
}
