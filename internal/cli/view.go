// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reqlog/internal/export"
	"github.com/jeranaias/reqlog/internal/preview"
)

// ViewArgs holds the arguments for the view command.
type ViewArgs struct {
	style *string
	width *int
	*RootArgs
}

// NewViewArgs creates a new [ViewArgs].
func NewViewArgs(args *RootArgs) *ViewArgs {
	return &ViewArgs{
		style:    new(string),
		width:    new(int),
		RootArgs: args,
	}
}

func (a *ViewArgs) GetStyle() string {
	return *a.style
}

func (a *ViewArgs) GetWidth() int {
	return *a.width
}

// NewViewCmd returns the view command.
func NewViewCmd(root *RootArgs) *cobra.Command {
	args := NewViewArgs(root)

	cmd := &cobra.Command{
		Use:   "view <capture>",
		Short: "Preview the Markdown export in the terminal",
		Long: `Render the Markdown export in the terminal, followed by the URL
components and client options, which the exported documents leave out.
`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			opts := preview.Options{
				Style: args.Config().Preview.Style,
				Width: args.Config().Preview.Width,
			}
			if style := args.GetStyle(); style != "" {
				if !preview.ValidStyle(style) {
					return &ValidationError{Field: "--style", Value: style, Reason: fmt.Sprintf("must be one of %v", preview.Styles)}
				}
				opts.Style = style
			}
			if cc.Flags().Changed("width") {
				if args.GetWidth() <= 0 {
					return &ValidationError{Field: "--width", Value: fmt.Sprint(args.GetWidth()), Reason: "must be positive"}
				}
				opts.Width = args.GetWidth()
			}

			_, s, err := loadSummary(pArgs[0])
			if err != nil {
				return err
			}

			doc := export.Markdown(s)
			if extra := export.Sections("Request Details", s.URLComponents, s.Options); extra != "" {
				doc += "\n" + extra
			}

			out, err := preview.Markdown(doc, opts)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cc.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(args.style, "style", "", "Preview style: auto, dark, light or notty (default from config)")
	cmd.Flags().IntVar(args.width, "width", 0, "Word-wrap width (default from config)")

	return cmd
}
