// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/jeranaias/reqlog/internal/capture"
	"github.com/jeranaias/reqlog/internal/config"
	"github.com/jeranaias/reqlog/internal/logging"
	"github.com/jeranaias/reqlog/internal/summary"
)

const (
	cmdName   = "reqlog"
	shortDesc = "Export logged network requests as text, Markdown or HTML."
	longDesc  = `reqlog turns a captured request/response exchange into a shareable
document: plain text, Markdown with a table of contents, or a
self-contained HTML page with colorized JSON bodies.

Captures are JSON or YAML files. Defaults come from ~/.reqlog/config.toml
and REQLOG_* environment variables.
`
)

// =============================================================================
// ROOT ARGS
// =============================================================================

// RootArgs holds the global flags and the configuration resolved from them.
type RootArgs struct {
	configPath *string
	logLevel   *string
	logFormat  *string
}

// NewRootArgs creates a new [RootArgs].
func NewRootArgs() *RootArgs {
	return &RootArgs{
		configPath: new(string),
		logLevel:   new(string),
		logFormat:  new(string),
	}
}

func (a *RootArgs) GetConfigPath() string {
	return *a.configPath
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

// Config returns the configuration installed before the command ran.
func (a *RootArgs) Config() *config.Config {
	return config.Global()
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCmd returns the reqlog root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().StringVar(args.configPath, "config", "", "Path to a config file (default ~/.reqlog/config.toml)")
	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "", "Set the log format (text, logfmt, json)")
	must(cmd.MarkPersistentFlagFilename("config", "toml", "json"))

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		cfg, loadErr := loadConfig(args.GetConfigPath())
		if cfg == nil {
			return fmt.Errorf("%w: %w", ErrConfig, loadErr)
		}

		var merr error
		if level := args.GetLogLevel(); level != "" {
			if logging.ValidLevel(level) {
				cfg.Log.Level = level
			} else {
				merr = multierror.Append(merr, &ValidationError{Field: "--log_level", Value: level, Reason: "unknown level", Example: "--log_level debug"})
			}
		}
		if format := args.GetLogFormat(); format != "" {
			if logging.ValidFormat(format) {
				cfg.Log.Format = format
			} else {
				merr = multierror.Append(merr, &ValidationError{Field: "--log_format", Value: format, Reason: "unknown format", Example: "--log_format json"})
			}
		}
		if merr != nil {
			return merr
		}

		h, err := logging.CreateHandler(cc.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed creating log handler: %w", err)
		}
		slog.SetDefault(slog.New(h))
		if loadErr != nil {
			slog.Warn("using default config", "error", loadErr)
		}

		config.SetGlobal(cfg)

		slog.Debug("ready to go", "command", cc.Name())
		return nil
	}

	cmd.AddCommand(
		NewExportCmd(args),
		NewViewCmd(args),
		NewBodyCmd(args),
		NewWatchCmd(args),
		NewConfigCmd(args),
		NewVersionCmd(),
	)

	return cmd
}

// loadConfig loads the config from path, or from the default locations
// when path is empty. A non-nil config with a non-nil error means a broken
// default config file was skipped.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.Load()
}

// loadSummary loads a capture file and builds its summary.
func loadSummary(path string) (*capture.Capture, *summary.Summary, error) {
	c, err := capture.Load(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := c.Summary()
	if err != nil {
		return nil, nil, fmt.Errorf("build summary: %w", err)
	}
	slog.Debug("capture loaded", "path", path, "id", c.ID, "url", c.URL)
	return c, s, nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
