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
	"strings"
	"unicode"
)

// Stats holds character and word counts for a document
type Stats struct {
	Chars int `json:"chars"`
	Words int `json:"words"`
}

// ComputeStats counts text
func ComputeStats(text string) Stats {
	return Stats{
		Chars: CountChars(text),
		Words: CountWords(text),
	}
}

// isSpace reports Unicode white space plus the information separators
// U+001C..U+001F, which are treated as whitespace for counting.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// CountChars counts the runes of text that are not whitespace
func CountChars(text string) int {
	n := 0
	for _, r := range text {
		if !isSpace(r) {
			n++
		}
	}
	return n
}

// CountWords counts maximal runs of non-whitespace
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}

// Add returns the sum of s and o
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Chars: s.Chars + o.Chars,
		Words: s.Words + o.Words,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d characters, %d words", s.Chars, s.Words)
}
