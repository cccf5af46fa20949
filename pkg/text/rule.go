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
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gitlab.com/tozd/go/errors"
)

// Substitution is one replacement text and the share of matches it receives
type Substitution struct {
	// ReplaceWith is inserted literally in place of each assigned match
	ReplaceWith string `json:"replace_with"`

	// Percentage is the share of the rule's matches, not of the document
	Percentage float64 `json:"percentage" validate:"finite,gt=0"`
}

// RuleArgs are the typed inputs to NewRule
type RuleArgs struct {
	SearchTerm    string         `json:"search_term" validate:"required"`
	UseRegex      bool           `json:"use_regex"`
	CaseSensitive bool           `json:"case_sensitive"`
	Substitutions []Substitution `json:"replacements" validate:"min=1,dive"`
}

// RawSubstitution is a substitution as entered by a user, percentage still unparsed
type RawSubstitution struct {
	ReplaceWith string
	Percentage  string
}

// RawRule is a rule as entered by a user
type RawRule struct {
	SearchTerm    string
	UseRegex      bool
	CaseSensitive bool
	Substitutions []RawSubstitution
}

// Rule is a validated, compiled search pattern with its ordered substitutions.
// A Rule is immutable and safe for concurrent use.
type Rule struct {
	searchTerm    string
	useRegex      bool
	caseSensitive bool
	substitutions []Substitution
	re            *regexp.Regexp
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func ruleValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// report json names so errors line up with the rule set file
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		})

		validate = v
	})
	return validate
}

// NewRule validates args and compiles the search pattern.
// It returns a *ValidationError for bad fields and a *PatternError when the
// regular expression does not compile.
func NewRule(args RuleArgs) (*Rule, error) {
	args.SearchTerm = strings.TrimSpace(args.SearchTerm)

	if err := ruleValidator().Struct(args); err != nil {
		return nil, toValidationError(err)
	}

	re, err := compilePattern(args.SearchTerm, args.UseRegex, args.CaseSensitive)
	if err != nil {
		return nil, err
	}

	subs := make([]Substitution, len(args.Substitutions))
	copy(subs, args.Substitutions)

	return &Rule{
		searchTerm:    args.SearchTerm,
		useRegex:      args.UseRegex,
		caseSensitive: args.CaseSensitive,
		substitutions: subs,
		re:            re,
	}, nil
}

// MustNewRule is like NewRule but panics on error
func MustNewRule(args RuleArgs) *Rule {
	r, err := NewRule(args)
	if err != nil {
		panic(err)
	}
	return r
}

// ValidateRule parses user entered fields into a Rule
func ValidateRule(raw RawRule) (*Rule, error) {
	args := RuleArgs{
		SearchTerm:    raw.SearchTerm,
		UseRegex:      raw.UseRegex,
		CaseSensitive: raw.CaseSensitive,
	}

	for i, s := range raw.Substitutions {
		field := fmt.Sprintf("replacements[%d].percentage", i)
		str := strings.TrimSpace(s.Percentage)
		if str == "" {
			return nil, &ValidationError{Field: field, Reason: "must not be empty"}
		}
		pct, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, &ValidationError{Field: field, Reason: fmt.Sprintf("is not a number: %q", str)}
		}
		args.Substitutions = append(args.Substitutions, Substitution{
			ReplaceWith: s.ReplaceWith,
			Percentage:  pct,
		})
	}

	return NewRule(args)
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Errorf("validating rule: %w", err)
	}

	fe := verrs[0]
	field := fe.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "must not be empty"
	case "min":
		reason = "must contain at least one replacement"
	case "gt":
		reason = "must be greater than 0"
	case "finite":
		reason = "must be a finite number"
	default:
		reason = fmt.Sprintf("failed %q validation", fe.Tag())
	}

	return &ValidationError{Field: field, Reason: reason}
}

func compilePattern(term string, useRegex, caseSensitive bool) (*regexp.Regexp, error) {
	expr := term
	if !useRegex {
		expr = regexp.QuoteMeta(term)
	}
	if !caseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: term, Err: err}
	}
	return re, nil
}

// SearchTerm returns the trimmed search term
func (r *Rule) SearchTerm() string { return r.searchTerm }

// UseRegex reports whether the search term is a regular expression
func (r *Rule) UseRegex() bool { return r.useRegex }

// CaseSensitive reports whether matching is case sensitive
func (r *Rule) CaseSensitive() bool { return r.caseSensitive }

// Substitutions returns a copy of the rule's substitutions in order
func (r *Rule) Substitutions() []Substitution {
	out := make([]Substitution, len(r.substitutions))
	copy(out, r.substitutions)
	return out
}

// Pattern returns the compiled expression source
func (r *Rule) Pattern() string { return r.re.String() }

// Args returns the inputs that rebuild an identical rule
func (r *Rule) Args() RuleArgs {
	return RuleArgs{
		SearchTerm:    r.searchTerm,
		UseRegex:      r.useRegex,
		CaseSensitive: r.caseSensitive,
		Substitutions: r.Substitutions(),
	}
}

func (r *Rule) String() string {
	parts := make([]string, 0, len(r.substitutions))
	for _, s := range r.substitutions {
		parts = append(parts, fmt.Sprintf("%q@%g%%", s.ReplaceWith, s.Percentage))
	}
	return fmt.Sprintf("%q -> [%s]", r.searchTerm, strings.Join(parts, ", "))
}
