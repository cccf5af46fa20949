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
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

var (
	_ Reporter = (*BarReporter)(nil)
	_ Reporter = multiReporter(nil)
)

// 📊 BarReporter drives a pterm progress bar from batch progress
type BarReporter struct {
	writer io.Writer
	title  string
	bar    *pterm.ProgressbarPrinter
}

// 🏭 NewBarReporter creates a progress bar reporter writing to w
func NewBarReporter(w io.Writer, title string) *BarReporter {
	return &BarReporter{writer: w, title: title}
}

func (b *BarReporter) StartOperation(ctx context.Context, total int) {
	if total <= 0 {
		return
	}

	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(b.title).
		WithWriter(b.writer).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("progress bar unavailable")
		return
	}
	b.bar = bar
}

func (b *BarReporter) UpdateProgress(ctx context.Context, processed int, info FileInfo) {
	if b.bar == nil {
		return
	}
	b.bar.UpdateTitle(fmt.Sprintf("%s %s", b.title, filepath.Base(info.Path)))
	b.bar.Increment()
}

func (b *BarReporter) FinishOperation(ctx context.Context) {
	if b.bar == nil {
		return
	}
	if _, err := b.bar.Stop(); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("stopping progress bar")
	}
	b.bar = nil
}

type multiReporter []Reporter

// Tee returns a Reporter that forwards every call to each non-nil reporter in order
func Tee(reporters ...Reporter) Reporter {
	out := make(multiReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiReporter) StartOperation(ctx context.Context, total int) {
	for _, r := range m {
		r.StartOperation(ctx, total)
	}
}

func (m multiReporter) UpdateProgress(ctx context.Context, processed int, info FileInfo) {
	for _, r := range m {
		r.UpdateProgress(ctx, processed, info)
	}
}

func (m multiReporter) FinishOperation(ctx context.Context) {
	for _, r := range m {
		r.FinishOperation(ctx)
	}
}
