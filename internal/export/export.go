// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/reqlog/internal/summary"
	"github.com/jeranaias/reqlog/internal/util"
)

// DocumentTitle is the title of every exported document.
const DocumentTitle = "Request Log"

// =============================================================================
// EXPORT DRIVER
// =============================================================================

// Render walks s and feeds r the same ordered sequence of calls regardless
// of format, then finalizes the document. r must be fresh; s must not be nil.
func Render(s *summary.Summary, r Renderer) string {
	r.AddKeyValueSection(s.Overview, false)
	r.AddKeyValueSection(s.Error, false)

	r.AddHeading("Request")
	AddSection(r, s.RequestHeadersSection())
	if len(s.RequestBody) > 0 {
		r.AddSubHeading("Request Body")
		r.AddData(s.RequestBody)
	}

	r.AddHeading("Response")
	AddSection(r, s.ResponseHeadersSection())
	if len(s.ResponseBody) > 0 {
		r.AddSubHeading("Response Body")
		r.AddData(s.ResponseBody)
	}

	r.AddHeading("Details")
	AddSection(r, s.Timing)
	if s.Transfer != nil {
		AddSection(r, transferSection(s.Transfer))
	}
	AddSection(r, s.Parameters)

	return r.Finalize(DocumentTitle)
}

// transferSection lists the six transfer sizes in their fixed order.
func transferSection(t *summary.TransferSizes) *summary.KeyValueSection {
	return summary.NewSection("Sent Data", summary.ColorGray,
		summary.Field("Total Bytes Sent", formatBytes(t.TotalBytesSent)),
		summary.Field("Headers Sent", formatBytes(t.HeadersBytesSent)),
		summary.Field("Body Sent", formatBytes(t.BodyBytesSent)),
		summary.Field("Total Bytes Received", formatBytes(t.TotalBytesReceived)),
		summary.Field("Headers Received", formatBytes(t.HeadersBytesReceived)),
		summary.Field("Body Received", formatBytes(t.BodyBytesReceived)),
	)
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Export renders s in the given format with a new renderer.
func Export(s *summary.Summary, f Format) (string, error) {
	if s == nil {
		return "", ErrNilSummary
	}
	r, err := NewRenderer(f)
	if err != nil {
		return "", err
	}
	return Render(s, r), nil
}

// PlainText renders s as plain text.
func PlainText(s *summary.Summary) string {
	return Render(s, NewPlainTextRenderer())
}

// Markdown renders s as Markdown.
func Markdown(s *summary.Summary) string {
	return Render(s, NewMarkdownRenderer())
}

// HTML renders s as a standalone HTML document.
func HTML(s *summary.Summary) string {
	return Render(s, NewHTMLRenderer())
}

// Sections renders sections under one heading in the plain-text layout,
// which reads as Markdown too. Nil sections are skipped; when all are nil
// the result is empty.
func Sections(heading string, sections ...*summary.KeyValueSection) string {
	r := NewPlainTextRenderer()
	added := false
	for _, section := range sections {
		if section == nil {
			continue
		}
		if !added {
			r.AddHeading(heading)
			added = true
		}
		AddSection(r, section)
	}
	if !added {
		return ""
	}
	return r.Finalize(DocumentTitle)
}

// =============================================================================
// FILE EXPORT
// =============================================================================

// Options configures file export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		OpenAfterExport: false,
	}
}

// ExportToFile exports s to a new file in opts.OutputDir and returns its path.
// name identifies the exchange in the file name (e.g. the host).
func ExportToFile(s *summary.Summary, name string, f Format, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := Export(s, f)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := fmt.Sprintf("request_log_%s_%s%s",
		util.SanitizeFilename(name, "request"),
		time.Now().Format("20060102_150405"),
		f.FileExtension(),
	)

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	outputPath := filepath.Join(dir, filename)
	if err := util.AtomicWriteFile(outputPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	slog.Debug("export written", "path", outputPath, "format", f, "mime", f.MimeType(), "bytes", len(content))

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal - file was still created successfully
			slog.Warn("could not open exported file", "path", outputPath, "error", err)
		}
	}

	return outputPath, nil
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	if _, err := os.Stat(path); err != nil {
		return err
	}
	return cmd.Start()
}
