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

package operation

import (
	"github.com/walteh/pctreplace/pkg/status"
	"github.com/walteh/pctreplace/pkg/text"
)

// 📄 ProcessingResult is the outcome of one file. It is not modified after
// the worker that produced it returns.
type ProcessingResult struct {
	SourcePath   string
	OutputPath   string // empty when Err is set
	Original     text.Stats
	Final        text.Stats
	Replacements int
	Err          error
}

// Failed reports whether the file was skipped with an error
func (r ProcessingResult) Failed() bool {
	return r.Err != nil
}

// FileInfo converts the result for status reporting
func (r ProcessingResult) FileInfo() status.FileInfo {
	info := status.FileInfo{
		Path:         r.SourcePath,
		Output:       r.OutputPath,
		Replacements: r.Replacements,
		Before:       r.Original,
		After:        r.Final,
		Error:        r.Err,
	}
	switch {
	case r.Failed():
		info.Status = status.StatusFailed
	case r.Replacements > 0:
		info.Status = status.StatusReplaced
	default:
		info.Status = status.StatusUnchanged
	}
	return info
}

// ❌ FileError pairs a file with the reason it was not written
type FileError struct {
	Path    string
	Message string
}

// 📦 BatchResult is the outcome of a batch. Outputs and Errors follow input
// order; the totals cover successful files only.
type BatchResult struct {
	RunID    string
	Results  []ProcessingResult
	Outputs  []string
	Errors   []FileError
	Original text.Stats
	Final    text.Stats
}

// Succeeded returns the number of files written
func (b *BatchResult) Succeeded() int {
	return len(b.Outputs)
}

// Failed returns the number of files skipped with an error
func (b *BatchResult) Failed() int {
	return len(b.Errors)
}

func newBatchResult(runID string, results []ProcessingResult) *BatchResult {
	b := &BatchResult{RunID: runID, Results: results}
	for _, r := range results {
		if r.Failed() {
			b.Errors = append(b.Errors, FileError{Path: r.SourcePath, Message: r.Err.Error()})
			continue
		}
		b.Outputs = append(b.Outputs, r.OutputPath)
		b.Original = b.Original.Add(r.Original)
		b.Final = b.Final.Add(r.Final)
	}
	return b
}
