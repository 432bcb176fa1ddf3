// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for reqlog.
//
// Subcommands:
//   show                Print the effective configuration as JSON
//   init                Write a default config file
//   path                Print the default config file location

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/reqlog/internal/config"
)

// ConfigArgs holds the arguments for the config init command.
type ConfigArgs struct {
	json  *bool
	force *bool
	*RootArgs
}

// NewConfigArgs creates a new [ConfigArgs].
func NewConfigArgs(args *RootArgs) *ConfigArgs {
	return &ConfigArgs{
		json:     new(bool),
		force:    new(bool),
		RootArgs: args,
	}
}

func (a *ConfigArgs) GetJSON() bool {
	return *a.json
}

func (a *ConfigArgs) GetForce() bool {
	return *a.force
}

// NewConfigCmd returns the config command and its subcommands.
func NewConfigCmd(root *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or create the configuration file",
	}

	cmd.AddCommand(
		newConfigShowCmd(root),
		newConfigInitCmd(root),
		newConfigPathCmd(),
	)

	return cmd
}

func newConfigShowCmd(root *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file, env and flags applied)",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cc.OutOrStdout(), root.Config().String())
			return err
		},
	}
}

func newConfigInitCmd(root *RootArgs) *cobra.Command {
	args := NewConfigArgs(root)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Example: `  # ~/.reqlog/config.toml
  reqlog config init

  # ~/.reqlog/config.json, replacing an existing file
  reqlog config init --json --force
`,
		Args: cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			pathFn := config.ConfigPathTOML
			if args.GetJSON() {
				pathFn = config.ConfigPathJSON
			}
			path, err := pathFn()
			if err != nil {
				return err
			}

			if !args.GetForce() {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}

			cfg := config.Default()
			if args.GetJSON() {
				err = config.SaveJSON(cfg, path)
			} else {
				err = config.Save(cfg)
			}
			if err != nil {
				return err
			}

			out := cc.OutOrStdout()
			st := NewStyles(out)
			fmt.Fprintf(out, "%s Wrote config to %s\n", st.RenderStatus("ok"), st.Path.Render(path))
			return nil
		},
	}

	cmd.Flags().BoolVar(args.json, "json", false, "Write config.json instead of config.toml")
	cmd.Flags().BoolVar(args.force, "force", false, "Overwrite an existing file")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			path, err := config.ConfigPathTOML()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cc.OutOrStdout(), path)
			return err
		},
	}
}
