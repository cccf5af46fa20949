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
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/pctreplace/cmd/pctreplace/commands"
	"github.com/walteh/pctreplace/cmd/pctreplace/opts"
	"github.com/walteh/pctreplace/pkg/log"
)

// newRootCmd wires the shared flags, logging, and subcommands
func newRootCmd(rootOpts *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pctreplace",
		Short: "Replace a percentage of pattern matches across many files",
		Long: `pctreplace applies an ordered list of rules to text files. Each rule finds
every match of a literal or regex pattern and replaces leading shares of the
matches with weighted replacement texts, leaving the rest untouched.

Outputs are written as {output_dir or source dir}/{prefix}{name}{suffix}{ext}.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zlog := setupLogging(rootOpts.Debug)
			ctx := zlog.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(os.Stdout, zlog))
			cmd.SetContext(ctx)

			rootOpts.UserLogger = log.NewUserLogger(ctx, os.Stdout)
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewValidateCmd(rootOpts),
		commands.NewInitCmd(rootOpts),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "pctreplace.yaml", "rule file path (.json, .jsonc, .yaml, .yml, .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging builds the process logger from flags
func setupLogging(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}
