// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersionString returns the version with build metadata.
func GetVersionString() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s/%s)", Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// NewVersionCmd returns the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version of the reqlog CLI",
		Args:  cobra.NoArgs,
		Run: func(cc *cobra.Command, _ []string) {
			fmt.Fprintln(cc.OutOrStdout(), cmdName+" "+GetVersionString())
		},
	}
}
