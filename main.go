// reqlog - Export logged network requests as text, Markdown or HTML.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/reqlog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}
