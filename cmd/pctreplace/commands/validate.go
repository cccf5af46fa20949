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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walteh/pctreplace/cmd/pctreplace/opts"
)

// NewValidateCmd creates the validate command
func NewValidateCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a rule file and list its rules",
		Long: `Load the rule file named by --config, validate every task, and print the
rules in the order they are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := rootOpts.LoadRuleSet(cmd.Context())
			if err != nil {
				return err
			}

			rootOpts.UserLogger.LogValidation(true, fmt.Sprintf("%s is valid: %s", rootOpts.ConfigFile, rs), nil)
			for i, rule := range rs.Rules {
				rootOpts.UserLogger.LogRule(i, rule)
			}

			return nil
		},
	}

	return cmd
}
