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
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pctreplace/pkg/text"
)

// 📊 FileStatus represents the outcome of processing one input file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusReplaced             // Output written with at least one replacement
	StatusUnchanged            // Output written, no rule matched
	StatusFailed               // Nothing written
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusReplaced:
		return "replaced"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains what is known about a processed file
type FileInfo struct {
	Path         string     // Input path
	Output       string     // Output path, empty on failure
	Status       FileStatus // Outcome
	Replacements int        // Matches replaced across all rules
	Before       text.Stats // Statistics of the input
	After        text.Stats // Statistics of the output
	Error        error      // Failure reason
}

// 💾 FileWriter handles output file system operations
type FileWriter interface {
	// WriteFileAtomic writes content so that path is either absent, its
	// previous content, or the full new content
	WriteFileAtomic(ctx context.Context, path string, content []byte) error

	// CreateDir creates a directory and any missing parents
	CreateDir(ctx context.Context, path string) error
}

// 📈 Reporter receives batch progress. Calls are never concurrent.
type Reporter interface {
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int, info FileInfo)
	FinishOperation(ctx context.Context)
}

var (
	_ FileWriter = (*Manager)(nil)
	_ Reporter   = (*Manager)(nil)
)

// 🔧 Manager implements both FileWriter and Reporter
type Manager struct {
	logger    *zerolog.Logger // Logger for status updates
	formatter FileFormatter   // Formatter for status messages

	// Status tracking
	mu    sync.RWMutex
	files map[string]FileInfo

	// Progress tracking
	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(logger *zerolog.Logger) *Manager {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Manager{
		logger:    logger,
		formatter: NewDefaultFileFormatter(),
		files:     make(map[string]FileInfo),
	}
}

// FileWriter interface implementation

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tempPath)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Chmod(0644); err != nil {
		cleanup()
		return errors.Errorf("setting temp file mode: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Errorf("creating directory: %w", err)
	}
	return nil
}

// Reporter interface implementation

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	m.files = make(map[string]FileInfo, total)
	msg := m.formatter.FormatProgress(0, total)
	m.logger.Info().Int("total", total).Msg(msg)
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int, info FileInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	m.files[info.Path] = info

	event := m.logger.Debug()
	if info.Error != nil {
		event = m.logger.Warn().Err(info.Error)
	}
	event.
		Str("path", info.Path).
		Str("output", info.Output).
		Str("status", info.Status.String()).
		Int("replacements", info.Replacements).
		Msg(m.formatter.FormatFileResult(info))

	m.logger.Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg := m.formatter.FormatProgress(m.processed, m.total)
	m.logger.Info().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(msg)
}

// ListFiles returns every outcome reported since the last StartOperation,
// sorted by path
func (m *Manager) ListFiles(ctx context.Context) []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.files))
	for _, info := range m.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files
}
