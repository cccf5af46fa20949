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

package status

import (
	"fmt"
)

// FileFormatter defines the interface for formatting status messages
type FileFormatter interface {
	// FormatFileResult formats the outcome of one file
	FormatFileResult(info FileInfo) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileResult formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFileResult(info FileInfo) string {
	switch info.Status {
	case StatusReplaced:
		return fmt.Sprintf("📝 Replaced %d in %s -> %s", info.Replacements, info.Path, info.Output)
	case StatusUnchanged:
		return fmt.Sprintf("👍 Unchanged %s -> %s", info.Path, info.Output)
	case StatusFailed:
		if info.Error != nil {
			return fmt.Sprintf("❌ Failed %s: %v", info.Path, info.Error)
		}
		return fmt.Sprintf("❌ Failed %s", info.Path)
	default:
		return fmt.Sprintf("❔ %s", info.Path)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	current, total = max(current, 0), max(total, 0)

	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = min(float64(current)/float64(total)*100, 100)
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}
