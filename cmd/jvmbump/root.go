// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/jvmbump/cmd/jvmbump/commands"
	"github.com/walteh/jvmbump/cmd/jvmbump/opts"
	"github.com/walteh/jvmbump/pkg/config"
	"github.com/walteh/jvmbump/pkg/log"
	"github.com/walteh/jvmbump/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the flags shared by all commands
type rootFlags struct {
	configFile string
	root       string
	debug      bool
	noColor    bool
}

// newRootCmd wires the commands around a single RootOpts that is filled in
// once flags are parsed
func newRootCmd() (*cobra.Command, *opts.RootOpts) {
	flags := &rootFlags{}
	ro := &opts.RootOpts{Fs: afero.NewOsFs()}

	rootCmd := commands.NewUpdateCmd(ro)
	rootCmd.Use = "jvmbump"
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupRootOpts(cmd, flags, ro)
	}
	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewVersionCmd(FormatVersion),
	)

	return rootCmd, ro
}

// execute runs the command and always releases the logger, including when
// the run fails and cobra skips its post-run hooks
func execute(ctx context.Context, cmd *cobra.Command, ro *opts.RootOpts) (err error) {
	defer func() {
		if ro.Logger == nil {
			return
		}
		if cerr := ro.Logger.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing log file: %w", cerr)
		}
	}()

	return cmd.ExecuteContext(ctx)
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "config file path (yaml, hcl or json)")
	cmd.PersistentFlags().StringVarP(&flags.root, "root", "r", "", "directory to search, defaults to the config root or the working directory")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
}

// setupRootOpts loads config, configures logging and resolves the search root
func setupRootOpts(cmd *cobra.Command, flags *rootFlags, ro *opts.RootOpts) error {
	if flags.noColor {
		color.NoColor = true
		pterm.DisableStyling()
	}

	bootstrap := log.New(log.Options{Console: cmd.ErrOrStderr(), Debug: flags.debug, NoColor: color.NoColor})
	ctx := bootstrap.WithContext(cmd.Context())

	// a missing default config is fine, a missing explicit one is not
	load := config.LoadOrDefault
	if cmd.Flags().Changed("config") {
		load = config.Load
	}
	cfg, err := load(ctx, ro.Fs, flags.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	logger := bootstrap
	if cfg.LogFile != "" {
		logger = log.New(log.Options{Console: cmd.ErrOrStderr(), File: cfg.LogFile, Debug: flags.debug, NoColor: color.NoColor})
	}

	root, err := resolveRoot(flags.root, cfg.Root)
	if err != nil {
		return err
	}

	ro.Config = cfg
	ro.Root = root
	ro.Logger = logger
	ro.Reporter = status.NewReporter(cmd.OutOrStdout())

	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// resolveRoot picks the flag, then the config root, then the working directory
func resolveRoot(flagRoot, cfgRoot string) (string, error) {
	root := flagRoot
	if root == "" {
		root = cfgRoot
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Errorf("getting working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Errorf("getting absolute root path: %w", err)
	}
	return abs, nil
}
