// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reqlog/internal/config"
	"github.com/jeranaias/reqlog/internal/export"
	"github.com/jeranaias/reqlog/internal/summary"
)

const (
	exportDesc = `Export a captured exchange as a document.

The document lists the overview, request and response headers and bodies,
timing, transfer sizes and query parameters. JSON bodies are pretty-printed;
binary bodies are replaced by their size.
`
	exportExample = `  # Write an HTML page into the configured output directory
  reqlog export capture.json

  # Markdown into ./exports
  reqlog export capture.yaml -f md -o exports

  # Plain text on stdout
  reqlog export capture.json -f text --stdout
`
)

// ExportArgs holds the arguments for the export command.
type ExportArgs struct {
	format *string
	output *string
	stdout *bool
	open   *bool
	*RootArgs
}

// NewExportArgs creates a new [ExportArgs].
func NewExportArgs(args *RootArgs) *ExportArgs {
	return &ExportArgs{
		format:   new(string),
		output:   new(string),
		stdout:   new(bool),
		open:     new(bool),
		RootArgs: args,
	}
}

func (a *ExportArgs) GetFormat() string {
	return *a.format
}

func (a *ExportArgs) GetOutput() string {
	return *a.output
}

func (a *ExportArgs) GetStdout() bool {
	return *a.stdout
}

func (a *ExportArgs) GetOpen() bool {
	return *a.open
}

// NewExportCmd returns the export command.
func NewExportCmd(root *RootArgs) *cobra.Command {
	args := NewExportArgs(root)

	cmd := &cobra.Command{
		Use:     "export <capture>",
		Short:   "Export a capture as text, Markdown or HTML",
		Long:    exportDesc,
		Example: exportExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			cfg := args.Config()

			f, err := resolveFormat(args.GetFormat(), cfg)
			if err != nil {
				return err
			}

			c, s, err := loadSummary(pArgs[0])
			if err != nil {
				return err
			}

			if args.GetStdout() {
				doc, err := export.Export(s, f)
				if err != nil {
					return fmt.Errorf("failed to export: %w", err)
				}
				_, err = io.WriteString(cc.OutOrStdout(), doc)
				return err
			}

			opts := cfg.ExportOptions()
			if cc.Flags().Changed("output") {
				opts.OutputDir = args.GetOutput()
			}
			if cc.Flags().Changed("open") {
				opts.OpenAfterExport = args.GetOpen()
			}
			return exportFile(cc.OutOrStdout(), s, c.Name(), f, opts)
		},
	}

	cmd.Flags().StringVarP(args.format, "format", "f", "", "Document format: text, markdown or html (default from config)")
	cmd.Flags().StringVarP(args.output, "output", "o", "", "Output directory (default from config)")
	cmd.Flags().BoolVar(args.stdout, "stdout", false, "Print the document instead of writing a file")
	cmd.Flags().BoolVar(args.open, "open", false, "Open the written file in the default application")
	must(cmd.MarkFlagDirname("output"))
	cmd.MarkFlagsMutuallyExclusive("stdout", "output")
	cmd.MarkFlagsMutuallyExclusive("stdout", "open")

	return cmd
}

// resolveFormat returns the format named by flag, or the configured one.
func resolveFormat(flag string, cfg *config.Config) (export.Format, error) {
	var (
		f   export.Format
		err error
	)
	if flag != "" {
		f, err = export.ParseFormat(flag)
	} else {
		f, err = cfg.ExportFormat()
	}
	if err != nil {
		return "", fmt.Errorf("--format: %w", err)
	}
	return f, nil
}

// exportFile writes s to a file and reports the path on w.
func exportFile(w io.Writer, s *summary.Summary, name string, f export.Format, opts *export.Options) error {
	path, err := export.ExportToFile(s, name, f, opts)
	if err != nil {
		return err
	}
	st := NewStyles(w)
	fmt.Fprintf(w, "%s Exported %s to %s\n", st.RenderStatus("ok"), f, st.Path.Render(path))
	return nil
}
