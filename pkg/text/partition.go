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
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Match is a half-open byte range [Start, End) of one occurrence in a document
type Match struct {
	Start int
	End   int
}

// Span assigns the match indexes [Start, End) to Substitution
type Span struct {
	Substitution int
	Start        int
	End          int
}

// Len returns the number of matches in the span
func (s Span) Len() int { return s.End - s.Start }

// Edit replaces the bytes [Start, End) with Text
type Edit struct {
	Start int
	End   int
	Text  string
}

// RoundShare returns round(n * pct / 100), rounding halves away from zero.
// The result is clamped to [0, n].
func RoundShare(n int, pct float64) int {
	if n <= 0 || pct <= 0 {
		return 0
	}
	share := math.Round(float64(n) * pct / 100)
	if share >= float64(n) {
		return n
	}
	return int(share)
}

// Partition splits n ordered matches between subs, left to right.
// Each substitution takes the next RoundShare(n, pct) matches; once the
// matches run out later substitutions get nothing, and whatever is left after
// the last substitution stays unassigned. Substitutions with an empty share
// produce no span.
func Partition(n int, subs []Substitution) []Span {
	var spans []Span
	cursor := 0
	for k, sub := range subs {
		if cursor >= n {
			break
		}
		end := min(cursor+RoundShare(n, sub.Percentage), n)
		if end > cursor {
			spans = append(spans, Span{Substitution: k, Start: cursor, End: end})
			cursor = end
		}
	}
	return spans
}

// applyEdits splices edits into doc, highest offset first, so offsets of
// edits not yet applied stay valid. Edits must not overlap.
func applyEdits(doc string, edits []Edit) string {
	if len(edits) == 0 {
		return doc
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Compare(b.Start, a.Start)
	})

	// pieces are collected right to left and joined in reverse
	pieces := make([]string, 0, 2*len(sorted)+1)
	size := 0
	cut := len(doc)
	for _, e := range sorted {
		if e.Start < 0 || e.Start > e.End || e.End > cut {
			panic(fmt.Sprintf("text: edit [%d,%d) overlaps or exceeds [0,%d)", e.Start, e.End, cut))
		}
		pieces = append(pieces, doc[e.End:cut], e.Text)
		size += cut - e.End + len(e.Text)
		cut = e.Start
	}
	pieces = append(pieces, doc[:cut])
	size += cut

	var b strings.Builder
	b.Grow(size)
	for i := len(pieces) - 1; i >= 0; i-- {
		b.WriteString(pieces[i])
	}
	return b.String()
}
