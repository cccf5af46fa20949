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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func literal(term string, subs ...Substitution) *Rule {
	return MustNewRule(RuleArgs{SearchTerm: term, CaseSensitive: true, Substitutions: subs})
}

func sub(with string, pct float64) Substitution {
	return Substitution{ReplaceWith: with, Percentage: pct}
}

func TestRuleApply(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		rule      *Rule
		want      string
		wantCount int
	}{
		{
			name:      "even_split",
			doc:       "aaaa",
			rule:      literal("a", sub("X", 50), sub("Y", 50)),
			want:      "XXYY",
			wantCount: 4,
		},
		{
			name:      "replace_all",
			doc:       "cat cat cat",
			rule:      literal("cat", sub("dog", 100)),
			want:      "dog dog dog",
			wantCount: 3,
		},
		{
			name: "regex_thirty_percent",
			doc:  "1 22 3 44 5 66 7 88 9 10",
			rule: MustNewRule(RuleArgs{
				SearchTerm:    `\d+`,
				UseRegex:      true,
				Substitutions: []Substitution{sub("N", 30)},
			}),
			want:      "N N N 44 5 66 7 88 9 10",
			wantCount: 3,
		},
		{
			name:      "half_of_three_rounds_up",
			doc:       "aaa",
			rule:      literal("a", sub("X", 50)),
			want:      "XXa",
			wantCount: 2,
		},
		{
			name:      "sum_over_100",
			doc:       "aaaa",
			rule:      literal("a", sub("X", 75), sub("Y", 50), sub("Z", 10)),
			want:      "XXXY",
			wantCount: 4,
		},
		{
			name:      "sum_under_100_keeps_remainder",
			doc:       "a a a a a a a a a a",
			rule:      literal("a", sub("X", 20), sub("Y", 30)),
			want:      "X X Y Y Y a a a a a",
			wantCount: 5,
		},
		{
			name: "case_insensitive_literal",
			doc:  "Cat cat CAT",
			rule: MustNewRule(RuleArgs{
				SearchTerm:    "cat",
				Substitutions: []Substitution{sub("dog", 100)},
			}),
			want:      "dog dog dog",
			wantCount: 3,
		},
		{
			name:      "case_sensitive_literal",
			doc:       "Cat cat CAT",
			rule:      literal("cat", sub("dog", 100)),
			want:      "Cat dog CAT",
			wantCount: 1,
		},
		{
			name:      "literal_metacharacters",
			doc:       "a.b a+b axb",
			rule:      literal("a.b", sub("X", 100)),
			want:      "X a+b axb",
			wantCount: 1,
		},
		{
			name: "replacement_is_literal",
			doc:  "joe@x ann@x",
			rule: MustNewRule(RuleArgs{
				SearchTerm:    `(\w+)@x`,
				UseRegex:      true,
				CaseSensitive: true,
				Substitutions: []Substitution{sub("$1", 100)},
			}),
			want:      "$1 $1",
			wantCount: 2,
		},
		{
			name: "empty_matches_advance",
			doc:  "ab",
			rule: MustNewRule(RuleArgs{
				SearchTerm:    "x*",
				UseRegex:      true,
				CaseSensitive: true,
				Substitutions: []Substitution{sub("-", 100)},
			}),
			want:      "-a-b-",
			wantCount: 3,
		},
		{
			name:      "multibyte_offsets",
			doc:       "héllo héllo",
			rule:      literal("é", sub("e", 50)),
			want:      "hello héllo",
			wantCount: 1,
		},
		{
			name:      "longer_replacement_shifts_nothing",
			doc:       "x.x.x.x",
			rule:      literal("x", sub("longer", 50), sub("", 25)),
			want:      "longer.longer..x",
			wantCount: 3,
		},
		{
			name:      "no_match",
			doc:       "nothing here",
			rule:      literal("cat", sub("dog", 100)),
			want:      "nothing here",
			wantCount: 0,
		},
		{
			name:      "empty_document",
			doc:       "",
			rule:      literal("cat", sub("dog", 100)),
			want:      "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := tt.rule.Apply(tt.doc)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestRuleMatchesEmpty(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		pattern     string
		wantMatches []Match
		want        string
	}{
		{
			name:    "no_empty_match_after_match",
			doc:     "baac",
			pattern: `a*`,
			// [3,3] directly after "aa" is skipped
			wantMatches: []Match{{Start: 0, End: 0}, {Start: 1, End: 3}, {Start: 4, End: 4}},
			want:        "XbXcX",
		},
		{
			name:        "empty_document",
			doc:         "",
			pattern:     `a*`,
			wantMatches: []Match{{Start: 0, End: 0}},
			want:        "X",
		},
		{
			name:        "empty_between_runes",
			doc:         "hé",
			pattern:     `x*`,
			wantMatches: []Match{{Start: 0, End: 0}, {Start: 1, End: 1}, {Start: 3, End: 3}},
			want:        "XhXéX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := MustNewRule(RuleArgs{
				SearchTerm:    tt.pattern,
				UseRegex:      true,
				CaseSensitive: true,
				Substitutions: []Substitution{sub("X", 100)},
			})

			assert.Equal(t, tt.wantMatches, rule.Matches(tt.doc))

			got, n := rule.Apply(tt.doc)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.wantMatches), n)
		})
	}
}

func TestRuleApplyProperties(t *testing.T) {
	docs := []string{
		"a",
		"ab ab ab ab ab ab ab",
		strings.Repeat("word ", 37),
		"the cat sat on the mat with another cat and a third cat",
		strings.Repeat("xy", 101),
	}
	rules := []*Rule{
		literal("a", sub("#", 100)),
		literal("a", sub("#", 25), sub("%", 25)),
		literal("t", sub("#", 10), sub("%", 20), sub("&", 5)),
		literal("y", sub("#", 60), sub("%", 60)),
	}

	for _, doc := range docs {
		for _, rule := range rules {
			matches := rule.Matches(doc)
			n := len(matches)

			expected := 0
			for _, s := range rule.Substitutions() {
				expected += RoundShare(n, s.Percentage)
			}
			expected = min(n, expected)

			got, count := rule.Apply(doc)
			assert.Equal(t, expected, count, "replaced count for %s on %q", rule, doc)

			// every replacement text here is one byte, so untouched matches
			// keep their offsets and must still read as the search term
			for _, m := range matches[count:] {
				assert.Equal(t, rule.SearchTerm(), got[m.Start:m.End], "unreplaced match must be byte identical")
			}
			assert.Len(t, rule.Matches(got), n-count, "remaining matches of %s", rule)
		}
	}
}

func TestRuleApplyIdempotent(t *testing.T) {
	rule := literal("cat", sub("dog", 50), sub("cow", 50))

	once, count := rule.Apply("cat cat cat cat")
	require.Equal(t, 4, count)
	assert.Equal(t, "dog dog cow cow", once)

	twice, count := rule.Apply(once)
	assert.Equal(t, 0, count)
	assert.Equal(t, once, twice)
}

func TestApplyRulesInOrder(t *testing.T) {
	rules := []*Rule{
		literal("cat", sub("dog", 100)),
		literal("dog", sub("bird", 50)),
	}

	got, counts := ApplyRulesCount("cat cat cat cat", rules)
	assert.Equal(t, "bird bird dog dog", got)
	assert.Equal(t, []int{4, 2}, counts)

	// reversed order: the second rule sees no dogs yet
	got = ApplyRules("cat cat cat cat", []*Rule{rules[1], rules[0]})
	assert.Equal(t, "dog dog dog dog", got)

	assert.Equal(t, "cat", ApplyRules("cat", nil))
}

func TestPercentageReplacer_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []*Rule
		want         string
		wantCount    int
		wantModified bool
		wantBefore   Stats
		wantAfter    Stats
	}{
		{
			name:         "simple_replacement",
			content:      "cat cat cat",
			rules:        []*Rule{literal("cat", sub("dog", 100))},
			want:         "dog dog dog",
			wantCount:    3,
			wantModified: true,
			wantBefore:   Stats{Chars: 9, Words: 3},
			wantAfter:    Stats{Chars: 9, Words: 3},
		},
		{
			name:    "multiple_rules",
			content: "Hello World",
			rules: []*Rule{
				literal("Hello", sub("Hi", 100)),
				literal("World", sub("big Universe", 100)),
			},
			want:         "Hi big Universe",
			wantCount:    2,
			wantModified: true,
			wantBefore:   Stats{Chars: 10, Words: 2},
			wantAfter:    Stats{Chars: 13, Words: 3},
		},
		{
			name:         "no_match",
			content:      "Hello World",
			rules:        []*Rule{literal("Goodbye", sub("Hi", 100))},
			want:         "Hello World",
			wantBefore:   Stats{Chars: 10, Words: 2},
			wantAfter:    Stats{Chars: 10, Words: 2},
			wantModified: false,
		},
		{
			name:    "empty_content",
			content: "",
			rules:   []*Rule{literal("World", sub("Universe", 100))},
			want:    "",
		},
		{
			name:       "empty_rules",
			content:    "Hello World",
			rules:      []*Rule{},
			want:       "Hello World",
			wantBefore: Stats{Chars: 10, Words: 2},
			wantAfter:  Stats{Chars: 10, Words: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replacer := NewPercentageReplacer()
			result, err := replacer.ReplaceText(context.Background(), strings.NewReader(tt.content), tt.rules)

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
			assert.Len(t, result.PerRule, len(tt.rules))
			assert.Equal(t, tt.wantBefore, result.Before)
			assert.Equal(t, tt.wantAfter, result.After)
		})
	}
}

func TestPercentageReplacer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPercentageReplacer().ReplaceText(ctx, strings.NewReader("cat"), []*Rule{literal("cat", sub("dog", 100))})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
