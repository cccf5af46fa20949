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

package commands

import (
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pctreplace/cmd/pctreplace/opts"
	"github.com/walteh/pctreplace/pkg/config"
	"github.com/walteh/pctreplace/pkg/log"
)

// NewInitCmd creates the init command
func NewInitCmd(rootOpts *opts.RootOpts) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example rule file",
		Long: `Write an example rule file to the path named by --config. The format follows
the file extension. An existing file is only replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.ConfigFile

			if !force {
				if _, err := os.Stat(path); err == nil {
					return errors.Errorf("%s already exists, use --force to overwrite", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return errors.Errorf("checking %s: %w", path, err)
				}
			}

			if err := config.WriteFile(cmd.Context(), path, config.Starter()); err != nil {
				return errors.Errorf("writing starter rule file: %w", err)
			}

			rootOpts.UserLogger.LogFileWritten(path)
			log.FromContext(cmd.Context()).Successf("Edit the tasks, then: pctreplace run -c %s FILE...", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
