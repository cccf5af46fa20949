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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/pctreplace/pkg/status"
	"github.com/walteh/pctreplace/pkg/text"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 10 // Width for status text
)

// 📦 BatchOperation describes a batch run for logging
type BatchOperation struct {
	RunID     string // Batch run identifier
	Files     int    // Number of input files
	Rules     int    // Number of rules applied to each file
	OutputDir string // Where outputs are written
}

// 📊 Summary is the outcome of a finished batch
type Summary struct {
	Succeeded int        // Files written
	Failed    int        // Files skipped with an error
	Before    text.Stats // Totals over successful inputs
	After     text.Stats // Totals over their outputs
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog      zerolog.Logger
	console   io.Writer
	mu        sync.Mutex
	currentOp *BatchOperation
	results   []status.FileInfo
}

// 🏭 New creates a new logger that prints to console and mirrors to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileResult formats a file outcome for display
func (l *Logger) formatFileResult(info status.FileInfo) string {
	var symbol rune
	var symbolColor color.Attribute
	var detail string
	switch info.Status {
	case status.StatusReplaced:
		symbol = '✓'
		symbolColor = color.FgGreen
		detail = fmt.Sprintf("%d replaced -> %s", info.Replacements, info.Output)
	case status.StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
		if info.Error != nil {
			detail = info.Error.Error()
		}
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		detail = fmt.Sprintf("-> %s", info.Output)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, info.Path),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", statusWidth, info.Status)),
		detail)
}

// 📝 LogFileResult logs the outcome of one file
func (l *Logger) LogFileResult(ctx context.Context, info status.FileInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, info)

	fmt.Fprintln(l.console, l.formatFileResult(info))

	event := l.zlog.Debug()
	if info.Error != nil {
		event = l.zlog.Warn().Err(info.Error)
	}
	event.
		Str("file", info.Path).
		Str("output", info.Output).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg("file processed")
}

// 📝 StartBatch prints the batch header
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.results = nil

	dir := op.OutputDir
	if dir == "" {
		dir = "."
	}

	fmt.Fprintf(l.console, "[writing to %s]\n",
		color.New(color.FgCyan).Sprint(dir))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d files", op.Files),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d rules", op.Rules))

	l.zlog.Debug().
		Str("run_id", op.RunID).
		Int("files", op.Files).
		Int("rules", op.Rules).
		Str("output_dir", op.OutputDir).
		Msg("starting batch")
}

// 📝 EndBatch prints the before and after totals and closes the batch
func (l *Logger) EndBatch(ctx context.Context, sum Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\n%s %s\n",
		color.New(color.Bold).Sprint("Original:"),
		sum.Before)
	fmt.Fprintf(l.console, "%s %s\n",
		color.New(color.Bold).Sprint("Final:   "),
		sum.After)

	outcome := color.New(color.FgGreen).Sprintf("%d written", sum.Succeeded)
	if sum.Failed > 0 {
		outcome += color.New(color.Faint).Sprint(", ") + color.New(color.FgRed).Sprintf("%d failed", sum.Failed)
	}
	fmt.Fprintln(l.console, outcome)

	runID := ""
	if l.currentOp != nil {
		runID = l.currentOp.RunID
	}
	l.zlog.Debug().
		Str("run_id", runID).
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Int("chars_before", sum.Before.Chars).
		Int("chars_after", sum.After.Chars).
		Int("words_before", sum.Before.Words).
		Int("words_after", sum.After.Words).
		Int("files", len(l.results)).
		Msg("batch complete")

	l.currentOp = nil
	l.results = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("pctreplace")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
