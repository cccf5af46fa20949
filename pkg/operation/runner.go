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
	"context"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/walteh/pctreplace/pkg/status"
	"github.com/walteh/pctreplace/pkg/text"
)

// MaxDefaultWorkers caps the pool size when none is configured
const MaxDefaultWorkers = 8

// DefaultWorkers returns min(8, available CPUs)
func DefaultWorkers() int {
	return min(MaxDefaultWorkers, runtime.NumCPU())
}

// 🔧 Options configures a Runner
type Options struct {
	// Workers bounds concurrent files; zero or less means DefaultWorkers
	Workers int
	// Writer receives outputs and creates the output directory
	Writer status.FileWriter
	// Reporter receives progress, optional
	Reporter status.Reporter
	// Replacer applies rules to file content
	Replacer text.TextReplacer
}

// 🏃 Runner applies rule lists to files
type Runner struct {
	workers  int
	writer   status.FileWriter
	reporter status.Reporter
	replacer text.TextReplacer
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) *Runner {
	r := &Runner{
		workers:  opts.Workers,
		writer:   opts.Writer,
		reporter: opts.Reporter,
		replacer: opts.Replacer,
	}
	if r.writer == nil {
		r.writer = status.New(nil)
	}
	if r.replacer == nil {
		r.replacer = text.NewPercentageReplacer()
	}
	return r
}

// 📄 ProcessFile reads path as UTF-8, applies rules in order, and writes the
// result to its output path. Failures are returned in the result.
func (r *Runner) ProcessFile(ctx context.Context, path string, rules []*text.Rule, naming NamingOptions) ProcessingResult {
	res := ProcessingResult{SourcePath: path}
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()

	if err := ctx.Err(); err != nil {
		res.Err = errors.Errorf("processing %s: %w", path, err)
		return res
	}

	f, err := os.Open(path)
	if err != nil {
		res.Err = newIOError("read", path, err)
		return res
	}
	defer f.Close()

	replaced, err := r.replacer.ReplaceText(ctx, transform.NewReader(f, encoding.UTF8Validator), rules)
	if err != nil {
		switch {
		case errors.Is(err, encoding.ErrInvalidUTF8):
			res.Err = &IOError{Path: path, Op: "decode", Err: encoding.ErrInvalidUTF8}
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			res.Err = errors.Errorf("processing %s: %w", path, err)
		default:
			res.Err = newIOError("read", path, err)
		}
		return res
	}

	if err := ctx.Err(); err != nil {
		res.Err = errors.Errorf("processing %s: %w", path, err)
		return res
	}

	out := OutputPath(path, naming)
	if err := r.writer.WriteFileAtomic(ctx, out, replaced.ModifiedContent); err != nil {
		res.Err = newIOError("write", out, err)
		return res
	}

	res.OutputPath = out
	res.Original = replaced.Before
	res.Final = replaced.After
	res.Replacements = replaced.ReplacementCount

	logger.Debug().
		Str("output", out).
		Int("replacements", res.Replacements).
		Msg("file processed")

	return res
}

type completion struct {
	index  int
	result ProcessingResult
}

// 🏃 RunBatch processes paths concurrently with at most maxWorkers files in
// flight; zero or less falls back to the runner's Workers option.
//
// An uncreatable output directory aborts the batch before any file is read.
// Per file failures are collected in the result. If ctx is cancelled, files
// not yet started are recorded as failed and the partial result is returned
// together with the context error.
func (r *Runner) RunBatch(ctx context.Context, paths []string, rules []*text.Rule, naming NamingOptions, maxWorkers int) (*BatchResult, error) {
	if len(rules) == 0 {
		return nil, errors.New("at least one rule is required")
	}
	for i, rule := range rules {
		if rule == nil {
			return nil, errors.Errorf("rule %d is nil", i)
		}
	}

	runID := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	if naming.OutputDir != "" {
		if err := r.writer.CreateDir(ctx, naming.OutputDir); err != nil {
			return nil, newIOError("mkdir", naming.OutputDir, err)
		}
	}

	workers := maxWorkers
	if workers <= 0 {
		workers = r.workers
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	workers = max(1, min(workers, len(paths)))

	logger.Debug().
		Int("files", len(paths)).
		Int("rules", len(rules)).
		Int("workers", workers).
		Msg("starting batch")

	if r.reporter != nil {
		r.reporter.StartOperation(ctx, len(paths))
	}

	results := make([]ProcessingResult, len(paths))
	done := make([]bool, len(paths))
	processed := 0

	report := func(i int, res ProcessingResult) {
		results[i] = res
		done[i] = true
		processed++
		if r.reporter != nil {
			r.reporter.UpdateProgress(ctx, processed, res.FileInfo())
		}
	}

	// one aggregator owns results, done, and the reporter while workers run
	completions := make(chan completion)
	aggregated := make(chan struct{})
	go func() {
		defer close(aggregated)
		for c := range completions {
			report(c.index, c.result)
		}
	}()

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			completions <- completion{index: i, result: r.ProcessFile(ctx, path, rules, naming)}
			return nil
		})
	}
	_ = g.Wait()
	close(completions)
	<-aggregated

	for i, path := range paths {
		if done[i] {
			continue
		}
		report(i, ProcessingResult{
			SourcePath: path,
			Err:        errors.Errorf("not processed: %w", ctx.Err()),
		})
	}

	if r.reporter != nil {
		r.reporter.FinishOperation(ctx)
	}

	batch := newBatchResult(runID, results)

	logger.Info().
		Int("succeeded", batch.Succeeded()).
		Int("failed", batch.Failed()).
		Int("chars_before", batch.Original.Chars).
		Int("chars_after", batch.Final.Chars).
		Msg("batch complete")

	if err := ctx.Err(); err != nil {
		return batch, errors.Errorf("batch cancelled: %w", err)
	}

	return batch, nil
}
