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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/pctreplace/pkg/text"
)

// 📢 UserLogger provides user-friendly feedback about rule sets
type UserLogger struct {
	log    zerolog.Logger // for debug/error logging
	writer io.Writer
}

// 🎯 NewUserLogger creates a new user logger printing to w
func NewUserLogger(ctx context.Context, w io.Writer) *UserLogger {
	return &UserLogger{
		log:    *zerolog.Ctx(ctx),
		writer: w,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.writer)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	if valid {
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Debug().Msg(description)
		return
	}

	if err != nil {
		u.printer(pterm.Error, "❌").Println(description)
		pterm.Error.WithWriter(u.writer).Println(err)
		u.log.Error().Err(err).Msg(description)
		return
	}

	u.printer(pterm.Warning, "⚠️").Println(description)
	u.log.Warn().Msg(description)
}

// 📋 LogRule prints one rule and its weighted replacements
func (u *UserLogger) LogRule(index int, rule *text.Rule) {
	mode := "literal"
	if rule.UseRegex() {
		mode = "regex"
	}
	if !rule.CaseSensitive() {
		mode += ", ignore case"
	}

	subs := rule.Substitutions()
	parts := make([]string, 0, len(subs))
	for _, s := range subs {
		parts = append(parts, fmt.Sprintf("%q %g%%", s.ReplaceWith, s.Percentage))
	}

	msg := fmt.Sprintf("%d. %q (%s) -> %s", index+1, rule.SearchTerm(), mode, strings.Join(parts, ", "))
	u.printer(pterm.Info, "📋").Println(msg)
	u.log.Debug().Int("index", index).Str("pattern", rule.Pattern()).Msg("rule")
}

// 📦 LogFileWritten logs that a rule file was written
func (u *UserLogger) LogFileWritten(path string) {
	u.printer(pterm.Success, "✨").Printf("Wrote %s\n", path)
	u.log.Debug().Str("path", path).Msg("wrote rule file")
}
