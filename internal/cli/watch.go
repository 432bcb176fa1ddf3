// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// DefaultDebounce is how long a capture must stay unchanged before it is
// exported again.
const DefaultDebounce = 200 * time.Millisecond

// minTick bounds how often pending changes are checked.
const minTick = time.Millisecond

// =============================================================================
// CAPTURE WATCHER
// =============================================================================

// CaptureWatcher calls a function whenever one file is written or
// re-created. The parent directory is watched so editors that save by
// renaming a temp file are still seen.
type CaptureWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func()
}

// NewCaptureWatcher creates a watcher for path. debounce must be positive.
func NewCaptureWatcher(path string, debounce time.Duration, onChange func()) (*CaptureWatcher, error) {
	if debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %s", debounce)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &CaptureWatcher{
		path:     abs,
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (cw *CaptureWatcher) Run(ctx context.Context) error {
	defer cw.watcher.Close()

	ticker := time.NewTicker(max(cw.debounce/2, minTick))
	defer ticker.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= cw.debounce {
				pending = time.Time{}
				cw.onChange()
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "path", cw.path, "error", err)
		}
	}
}

// =============================================================================
// WATCH COMMAND
// =============================================================================

// NewWatchCmd returns the watch command.
func NewWatchCmd(root *RootArgs) *cobra.Command {
	args := NewExportArgs(root)

	cmd := &cobra.Command{
		Use:   "watch <capture>",
		Short: "Re-export a capture every time it changes",
		Long: `Export a capture, then export it again every time the file is written,
until interrupted. Errors while re-exporting are reported and watching
continues.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			cfg := args.Config()

			f, err := resolveFormat(args.GetFormat(), cfg)
			if err != nil {
				return err
			}
			opts := cfg.ExportOptions()
			if cc.Flags().Changed("output") {
				opts.OutputDir = args.GetOutput()
			}

			path := pArgs[0]
			out := cc.OutOrStdout()
			run := func() error {
				c, s, err := loadSummary(path)
				if err != nil {
					return err
				}
				return exportFile(out, s, c.Name(), f, opts)
			}

			if err := run(); err != nil {
				return err
			}

			cw, err := NewCaptureWatcher(path, DefaultDebounce, func() {
				if err := run(); err != nil {
					DisplayError(cc.ErrOrStderr(), err)
				}
			})
			if err != nil {
				return err
			}

			slog.Info("watching capture", "path", path)
			return cw.Run(cc.Context())
		},
	}

	cmd.Flags().StringVarP(args.format, "format", "f", "", "Document format: text, markdown or html (default from config)")
	cmd.Flags().StringVarP(args.output, "output", "o", "", "Output directory (default from config)")
	must(cmd.MarkFlagDirname("output"))

	return cmd
}
