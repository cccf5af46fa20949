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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pctreplace/pkg/text"
)

const (
	// DefaultOutputPrefix is used when a file does not set output_prefix
	DefaultOutputPrefix = "Imp_"

	// DefaultPercentage is used when a replacement does not set percentage
	DefaultPercentage = 100.0
)

// 🔌 Parser is the interface for rule set formats
type Parser interface {
	// 📝 Parse decodes a rule file from bytes
	Parse(ctx context.Context, data []byte) (*File, error)

	// 💾 Encode renders a rule file in the parser's format
	Encode(ctx context.Context, f *File) ([]byte, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// 🔄 Replacement is one weighted substitution as written on disk
type Replacement struct {
	ReplaceWith string   `json:"replace_with" yaml:"replace_with" hcl:"replace_with"`
	Percentage  *float64 `json:"percentage,omitempty" yaml:"percentage,omitempty" hcl:"percentage,optional"`
}

// 🔧 Task is one rule as written on disk
type Task struct {
	SearchTerm    string        `json:"search_term" yaml:"search_term" hcl:"search_term"`
	UseRegex      *bool         `json:"use_regex,omitempty" yaml:"use_regex,omitempty" hcl:"use_regex,optional"`
	CaseSensitive *bool         `json:"case_sensitive,omitempty" yaml:"case_sensitive,omitempty" hcl:"case_sensitive,optional"`
	Replacements  []Replacement `json:"replacements" yaml:"replacements" hcl:"replacement,block"`
}

// 📚 File is the persisted form of a rule set. Optional fields are pointers so
// that a missing value can be told apart from an explicit zero.
type File struct {
	OutputPrefix *string `json:"output_prefix,omitempty" yaml:"output_prefix,omitempty" hcl:"output_prefix,optional"`
	OutputSuffix *string `json:"output_suffix,omitempty" yaml:"output_suffix,omitempty" hcl:"output_suffix,optional"`
	OutputDir    *string `json:"output_dir,omitempty" yaml:"output_dir,omitempty" hcl:"output_dir,optional"`
	Tasks        []Task  `json:"tasks" yaml:"tasks" hcl:"task,block"`
}

// RuleSet is a validated, ordered list of rules plus output naming
type RuleSet struct {
	Rules        []*text.Rule
	OutputPrefix string
	OutputSuffix string
	OutputDir    string
}

// 📝 String returns a string representation of the rule set
func (rs *RuleSet) String() string {
	dir := rs.OutputDir
	if dir == "" {
		dir = "."
	}
	return fmt.Sprintf("%d rules -> %s/%s*%s", len(rs.Rules), dir, rs.OutputPrefix, rs.OutputSuffix)
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}

// 🏗️ FromFile applies load defaults and validates every task into a rule
func FromFile(f *File) (*RuleSet, error) {
	if f == nil || len(f.Tasks) == 0 {
		return nil, errors.New("tasks: at least one task is required")
	}

	rs := &RuleSet{
		OutputPrefix: valueOr(f.OutputPrefix, DefaultOutputPrefix),
		OutputSuffix: valueOr(f.OutputSuffix, ""),
		OutputDir:    valueOr(f.OutputDir, ""),
		Rules:        make([]*text.Rule, 0, len(f.Tasks)),
	}

	for i, task := range f.Tasks {
		args := text.RuleArgs{
			SearchTerm:    task.SearchTerm,
			UseRegex:      valueOr(task.UseRegex, false),
			CaseSensitive: valueOr(task.CaseSensitive, true),
		}
		for _, r := range task.Replacements {
			args.Substitutions = append(args.Substitutions, text.Substitution{
				ReplaceWith: r.ReplaceWith,
				Percentage:  valueOr(r.Percentage, DefaultPercentage),
			})
		}

		rule, err := text.NewRule(args)
		if err != nil {
			return nil, errors.Errorf("tasks[%d]: %w", i, err)
		}
		rs.Rules = append(rs.Rules, rule)
	}

	return rs, nil
}

// 💾 ToFile converts a rule set back to its persisted form with every field set
func ToFile(rs *RuleSet) *File {
	f := &File{
		OutputPrefix: ptr(rs.OutputPrefix),
		OutputSuffix: ptr(rs.OutputSuffix),
		OutputDir:    ptr(rs.OutputDir),
		Tasks:        make([]Task, 0, len(rs.Rules)),
	}

	for _, rule := range rs.Rules {
		task := Task{
			SearchTerm:    rule.SearchTerm(),
			UseRegex:      ptr(rule.UseRegex()),
			CaseSensitive: ptr(rule.CaseSensitive()),
		}
		for _, s := range rule.Substitutions() {
			task.Replacements = append(task.Replacements, Replacement{
				ReplaceWith: s.ReplaceWith,
				Percentage:  ptr(s.Percentage),
			})
		}
		f.Tasks = append(f.Tasks, task)
	}

	return f
}

// 🌱 Starter returns the example rule file written by init
func Starter() *File {
	return &File{
		OutputPrefix: ptr(DefaultOutputPrefix),
		OutputSuffix: ptr(""),
		OutputDir:    ptr("output"),
		Tasks: []Task{
			{
				SearchTerm:    "colour",
				UseRegex:      ptr(false),
				CaseSensitive: ptr(false),
				Replacements: []Replacement{
					{ReplaceWith: "color", Percentage: ptr(50.0)},
				},
			},
			{
				SearchTerm:    `\bteh\b`,
				UseRegex:      ptr(true),
				CaseSensitive: ptr(true),
				Replacements: []Replacement{
					{ReplaceWith: "the", Percentage: ptr(100.0)},
				},
			},
		},
	}
}

// 🎯 Load loads and validates a rule set from a file
func Load(ctx context.Context, path string) (*RuleSet, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rule set")

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rule file: %w", err)
	}

	f, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing rule file: %w", err)
	}

	rs, err := FromFile(f)
	if err != nil {
		return nil, errors.Errorf("validating rule file: %w", err)
	}

	logger.Debug().Int("rules", len(rs.Rules)).Str("rule_set", rs.String()).Msg("loaded rule set")

	return rs, nil
}

// 💾 Save writes a rule set to path in the format its extension selects
func Save(ctx context.Context, path string, rs *RuleSet) error {
	return WriteFile(ctx, path, ToFile(rs))
}

// WriteFile encodes f in the format path's extension selects
func WriteFile(ctx context.Context, path string, f *File) error {
	p := GetParser(path)
	if p == nil {
		return errors.Errorf("no parser found for file: %s", path)
	}

	data, err := p.Encode(ctx, f)
	if err != nil {
		return errors.Errorf("encoding rule file: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Errorf("writing rule file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("tasks", len(f.Tasks)).Msg("saved rule file")

	return nil
}
