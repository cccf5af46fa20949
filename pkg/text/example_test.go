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

package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/pctreplace/pkg/text"
)

func ExampleRule_Apply() {
	rule := text.MustNewRule(text.RuleArgs{
		SearchTerm:    "a",
		CaseSensitive: true,
		Substitutions: []text.Substitution{
			{ReplaceWith: "X", Percentage: 50},
			{ReplaceWith: "Y", Percentage: 50},
		},
	})

	out, n := rule.Apply("aaaa")
	fmt.Println(out, n)

	// Output:
	// XXYY 4
}

func ExamplePercentageReplacer_ReplaceText() {
	replacer := text.NewPercentageReplacer()

	rules := []*text.Rule{
		text.MustNewRule(text.RuleArgs{
			SearchTerm:    `\d+`,
			UseRegex:      true,
			Substitutions: []text.Substitution{{ReplaceWith: "N", Percentage: 30}},
		}),
	}

	result, err := replacer.ReplaceText(context.Background(), strings.NewReader("1 2 3 4 5 6 7 8 9 10"), rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Before: %s\n", result.Before)
	fmt.Printf("After: %s\n", result.After)

	// Output:
	// Modified: N N N 4 5 6 7 8 9 10
	// Changes: 3
	// Before: 11 characters, 10 words
	// After: 11 characters, 10 words
}

func ExampleValidateRule() {
	_, err := text.ValidateRule(text.RawRule{
		SearchTerm: "cat",
		Substitutions: []text.RawSubstitution{
			{ReplaceWith: "dog", Percentage: "fifty"},
		},
	})
	fmt.Println(err)

	// Output:
	// invalid rule: replacements[0].percentage is not a number: "fifty"
}
