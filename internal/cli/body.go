// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jeranaias/reqlog/internal/jsonfmt"
	"github.com/jeranaias/reqlog/internal/preview"
)

// BodyArgs holds the arguments for the body command.
type BodyArgs struct {
	response *bool
	*RootArgs
}

// NewBodyArgs creates a new [BodyArgs].
func NewBodyArgs(args *RootArgs) *BodyArgs {
	return &BodyArgs{
		response: new(bool),
		RootArgs: args,
	}
}

func (a *BodyArgs) GetResponse() bool {
	return *a.response
}

// NewBodyCmd returns the body command.
func NewBodyCmd(root *RootArgs) *cobra.Command {
	args := NewBodyArgs(root)

	cmd := &cobra.Command{
		Use:   "body <capture>",
		Short: "Print the request or response body, pretty-printed",
		Long: `Print the request body (or the response body with --response).

JSON is pretty-printed, and syntax-highlighted when stdout is a terminal.
Text is printed as-is; binary bodies are summarized by size.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			_, s, err := loadSummary(pArgs[0])
			if err != nil {
				return err
			}

			which, data := "request", s.RequestBody
			if args.GetResponse() {
				which, data = "response", s.ResponseBody
			}

			out := cc.OutOrStdout()
			if len(data) == 0 {
				st := NewStyles(cc.ErrOrStderr())
				fmt.Fprintf(cc.ErrOrStderr(), "%s no %s body\n", st.RenderStatus("warn"), which)
				return nil
			}

			fmt.Fprintln(out, formatBody(data, ColorsEnabled(out)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(args.response, "response", "r", false, "Print the response body instead of the request body")

	return cmd
}

// formatBody renders a body for the terminal.
func formatBody(data []byte, color bool) string {
	if pretty, err := jsonfmt.Pretty(data); err == nil {
		if color {
			return preview.HighlightJSON(pretty)
		}
		return pretty
	}
	if utf8.Valid(data) {
		return string(data)
	}
	return "Data: " + humanize.Bytes(uint64(len(data)))
}
