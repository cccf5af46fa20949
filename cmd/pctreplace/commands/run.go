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
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pctreplace/cmd/pctreplace/opts"
	"github.com/walteh/pctreplace/pkg/config"
	"github.com/walteh/pctreplace/pkg/log"
	"github.com/walteh/pctreplace/pkg/operation"
	"github.com/walteh/pctreplace/pkg/status"
	"github.com/walteh/pctreplace/pkg/text"
)

type runOpts struct {
	prefix     string
	suffix     string
	outputDir  string
	workers    int
	excludes   []string
	noProgress bool

	// single rule given on the command line instead of a rule file
	search     string
	regex      bool
	ignoreCase bool
	subs       []string
}

// NewRunCmd creates the run command
func NewRunCmd(rootOpts *opts.RootOpts) *cobra.Command {
	o := &runOpts{}

	cmd := &cobra.Command{
		Use:   "run [flags] FILE|GLOB...",
		Short: "Apply the rule set to files",
		Long: `Apply every rule of the rule set, in order, to each input file and write
the result to a new file. Inputs are never modified.

Arguments containing glob characters are expanded, "**" included. Rules come
from --config unless --search is given, in which case a single rule is built
from --search, --regex, --ignore-case, and one or more --sub TEXT=PCT flags.`,
		Example: `  pctreplace run -c rules.yaml docs/*.txt
  pctreplace run --search colour --ignore-case --sub color=50 --output-dir out 'notes/**/*.md'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, rootOpts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&o.prefix, "prefix", config.DefaultOutputPrefix, "output file name prefix (overrides the rule file)")
	flags.StringVar(&o.suffix, "suffix", "", "output file name suffix, before the extension (overrides the rule file)")
	flags.StringVarP(&o.outputDir, "output-dir", "o", "", "directory for outputs, empty for next to each input (overrides the rule file)")
	flags.IntVarP(&o.workers, "workers", "w", 0, "maximum files processed at once (0 for default)")
	flags.StringSliceVarP(&o.excludes, "exclude", "x", nil, "glob patterns of inputs to skip")
	flags.BoolVar(&o.noProgress, "no-progress", false, "disable the progress bar")

	flags.StringVarP(&o.search, "search", "s", "", "search term for a single command line rule")
	flags.BoolVar(&o.regex, "regex", false, "treat --search as a regular expression")
	flags.BoolVarP(&o.ignoreCase, "ignore-case", "i", false, "match --search case-insensitively")
	flags.StringArrayVar(&o.subs, "sub", nil, "weighted replacement TEXT=PCT for --search, repeatable")

	return cmd
}

// parseSubstitution splits TEXT=PCT on the last '='. A value with no '=' is
// replaced at 100 percent.
func parseSubstitution(s string) text.RawSubstitution {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return text.RawSubstitution{ReplaceWith: s, Percentage: "100"}
	}
	return text.RawSubstitution{ReplaceWith: s[:i], Percentage: s[i+1:]}
}

func (o *runOpts) commandLineRule() (*text.Rule, error) {
	raw := text.RawRule{
		SearchTerm:    o.search,
		UseRegex:      o.regex,
		CaseSensitive: !o.ignoreCase,
	}
	for _, s := range o.subs {
		raw.Substitutions = append(raw.Substitutions, parseSubstitution(s))
	}
	return text.ValidateRule(raw)
}

// ruleSet resolves the rules and naming for this run
func (o *runOpts) ruleSet(cmd *cobra.Command, rootOpts *opts.RootOpts) (*config.RuleSet, error) {
	flags := cmd.Flags()

	var rs *config.RuleSet
	if flags.Changed("search") {
		rule, err := o.commandLineRule()
		if err != nil {
			return nil, errors.Errorf("building rule from flags: %w", err)
		}
		rs = &config.RuleSet{
			Rules:        []*text.Rule{rule},
			OutputPrefix: config.DefaultOutputPrefix,
		}
	} else {
		if flags.Changed("regex") || flags.Changed("ignore-case") || flags.Changed("sub") {
			return nil, errors.New("--regex, --ignore-case, and --sub require --search")
		}
		var err error
		rs, err = rootOpts.LoadRuleSet(cmd.Context())
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("prefix") {
		rs.OutputPrefix = o.prefix
	}
	if flags.Changed("suffix") {
		rs.OutputSuffix = o.suffix
	}
	if flags.Changed("output-dir") {
		rs.OutputDir = o.outputDir
	}

	return rs, nil
}

func (o *runOpts) run(cmd *cobra.Command, rootOpts *opts.RootOpts, args []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	if o.workers < 0 {
		return errors.Errorf("--workers must not be negative, got %d", o.workers)
	}

	rs, err := o.ruleSet(cmd, rootOpts)
	if err != nil {
		return err
	}

	paths, err := operation.ExpandInputs(args, o.excludes)
	if err != nil {
		return errors.Errorf("expanding inputs: %w", err)
	}
	if len(paths) == 0 {
		return errors.New("no input files matched")
	}

	logger.Debug().
		Strs("paths", paths).
		Str("rule_set", rs.String()).
		Msg("resolved run")

	mgr := status.New(logger)
	var reporter status.Reporter = mgr
	if !o.noProgress && !rootOpts.Debug && rootOpts.Console != nil {
		reporter = status.Tee(mgr, status.NewBarReporter(rootOpts.Console, "Replacing"))
	}

	runner := operation.NewRunner(operation.Options{
		Workers:  o.workers,
		Writer:   mgr,
		Reporter: reporter,
	})

	naming := operation.NamingFromRuleSet(rs)
	batch, runErr := runner.RunBatch(ctx, paths, rs.Rules, naming, o.workers)
	if batch == nil {
		return errors.Errorf("running batch: %w", runErr)
	}

	source := rootOpts.ConfigFile
	if cmd.Flags().Changed("search") {
		source = "command line"
	}

	out := log.FromContext(ctx)
	out.Header(rs.String())
	out.Infof("rules from %s", source)
	out.StartBatch(ctx, log.BatchOperation{
		RunID:     batch.RunID,
		Files:     len(paths),
		Rules:     len(rs.Rules),
		OutputDir: naming.OutputDir,
	})
	for _, res := range batch.Results {
		out.LogFileResult(ctx, res.FileInfo())
	}
	out.EndBatch(ctx, log.Summary{
		Succeeded: batch.Succeeded(),
		Failed:    batch.Failed(),
		Before:    batch.Original,
		After:     batch.Final,
	})

	if n := batch.Failed(); n > 0 {
		out.LogNewline()
		out.Warningf("%d of %d files failed", n, len(batch.Results))
		for _, info := range mgr.ListFiles(ctx) {
			if info.Status == status.StatusFailed {
				out.Errorf("%s: %v", info.Path, info.Error)
			}
		}
	}

	if runErr != nil {
		return errors.Errorf("running batch: %w", runErr)
	}
	if n := batch.Failed(); n > 0 {
		return errors.Errorf("%d of %d files failed", n, len(batch.Results))
	}

	return nil
}
