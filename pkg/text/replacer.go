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

package text

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// PerRule holds the replacement count of each rule, in rule order
	PerRule []int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte

	// Before and After are the statistics of the original and modified content
	Before Stats
	After  Stats
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies rules in order to the content
	ReplaceText(ctx context.Context, content io.Reader, rules []*Rule) (*ReplacementResult, error)
}

var _ TextReplacer = (*PercentageReplacer)(nil)

// PercentageReplacer implements TextReplacer with percentage partitioned rules
type PercentageReplacer struct{}

// NewPercentageReplacer creates a new PercentageReplacer
func NewPercentageReplacer() *PercentageReplacer {
	return &PercentageReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *PercentageReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []*Rule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}

	original := string(originalContent)
	modified, perRule := ApplyRulesCount(original, rules)

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: []byte(modified),
		PerRule:         perRule,
		Before:          ComputeStats(original),
		After:           ComputeStats(modified),
	}
	for _, n := range perRule {
		result.ReplacementCount += n
	}
	result.WasModified = modified != original

	zerolog.Ctx(ctx).Debug().
		Int("rules", len(rules)).
		Int("replacements", result.ReplacementCount).
		Msg("replaced text")

	return result, nil
}

// Matches returns every non-overlapping occurrence of the rule's pattern in
// doc, in ascending order. An empty match that directly follows a previous
// match is not reported, so `a*` finds 3 matches in "baac", not 4.
func (r *Rule) Matches(doc string) []Match {
	locs := r.re.FindAllStringIndex(doc, -1)
	if len(locs) == 0 {
		return nil
	}
	matches := make([]Match, len(locs))
	for i, loc := range locs {
		matches[i] = Match{Start: loc[0], End: loc[1]}
	}
	return matches
}

// Edits returns the splices the rule makes to doc, in match order
func (r *Rule) Edits(doc string) []Edit {
	matches := r.Matches(doc)
	if len(matches) == 0 {
		return nil
	}

	var edits []Edit
	for _, span := range Partition(len(matches), r.substitutions) {
		text := r.substitutions[span.Substitution].ReplaceWith
		for _, m := range matches[span.Start:span.End] {
			edits = append(edits, Edit{Start: m.Start, End: m.End, Text: text})
		}
	}
	return edits
}

// Apply runs the rule over doc and returns the new document and the number
// of matches replaced. Unassigned matches keep their original text.
func (r *Rule) Apply(doc string) (string, int) {
	edits := r.Edits(doc)
	if len(edits) == 0 {
		return doc, 0
	}
	return applyEdits(doc, edits), len(edits)
}

// ApplyRules applies rules in order, each to the output of the previous one
func ApplyRules(doc string, rules []*Rule) string {
	out, _ := ApplyRulesCount(doc, rules)
	return out
}

// ApplyRulesCount is ApplyRules that also reports each rule's replacement count
func ApplyRulesCount(doc string, rules []*Rule) (string, []int) {
	counts := make([]int, len(rules))
	for i, rule := range rules {
		doc, counts[i] = rule.Apply(doc)
	}
	return doc, counts
}
