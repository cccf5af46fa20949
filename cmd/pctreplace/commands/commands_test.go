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

package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/pctreplace/cmd/pctreplace/opts"
	"github.com/walteh/pctreplace/pkg/log"
	"github.com/walteh/pctreplace/pkg/text"
)

// testContext carries a test zerolog logger and a console logger printing to out
func testContext(t *testing.T, out *bytes.Buffer) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())
	return log.NewContext(ctx, log.New(out, logger))
}

func newTestOpts(ctx context.Context, configFile string, out *bytes.Buffer) *opts.RootOpts {
	return &opts.RootOpts{
		ConfigFile: configFile,
		UserLogger: log.NewUserLogger(ctx, out),
	}
}

func execute(ctx context.Context, cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(ctx)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestParseSubstitution(t *testing.T) {
	tests := []struct {
		in   string
		want text.RawSubstitution
	}{
		{in: "dog=50", want: text.RawSubstitution{ReplaceWith: "dog", Percentage: "50"}},
		{in: "a=b=25", want: text.RawSubstitution{ReplaceWith: "a=b", Percentage: "25"}},
		{in: "=10", want: text.RawSubstitution{ReplaceWith: "", Percentage: "10"}},
		{in: "dog", want: text.RawSubstitution{ReplaceWith: "dog", Percentage: "100"}},
		{in: "dog=", want: text.RawSubstitution{ReplaceWith: "dog", Percentage: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSubstitution(tt.in))
		})
	}
}

func TestRunCmd(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name        string
		rules       string // yaml rule file, empty for none
		inputs      map[string]string
		args        func(dir string) []string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, out string)
	}{
		{
			name:   "command line rule",
			inputs: map[string]string{"a.txt": "cat cat cat cat"},
			args: func(dir string) []string {
				return []string{"--search", "cat", "--sub", "dog=50", "--output-dir", filepath.Join(dir, "out"), filepath.Join(dir, "a.txt")}
			},
			check: func(t *testing.T, dir string, out string) {
				assert.Equal(t, "dog dog cat cat", readFile(t, filepath.Join(dir, "out", "Imp_a.txt")))
				assert.Equal(t, "cat cat cat cat", readFile(t, filepath.Join(dir, "a.txt")), "input must not change")
				assert.Contains(t, out, "1 written")
				assert.Contains(t, out, "pctreplace • 1 rules -> ")
				assert.Contains(t, out, "rules from command line")
			},
		},
		{
			name: "rule file with naming overrides",
			rules: `output_prefix: pre_
tasks:
  - search_term: colou?r
    use_regex: true
    case_sensitive: false
    replacements:
      - replace_with: hue
`,
			inputs: map[string]string{"docs/a.md": "Colour and color", "docs/b.md": "nothing"},
			args: func(dir string) []string {
				return []string{"--prefix=", "--suffix", "_v2", filepath.Join(dir, "docs", "*.md")}
			},
			check: func(t *testing.T, dir string, out string) {
				assert.Equal(t, "hue and hue", readFile(t, filepath.Join(dir, "docs", "a_v2.md")))
				assert.Equal(t, "nothing", readFile(t, filepath.Join(dir, "docs", "b_v2.md")))
				assert.NoFileExists(t, filepath.Join(dir, "docs", "pre_a.md"))
				assert.Contains(t, out, "2 written")
				assert.Contains(t, out, "rules.yaml")
				assert.NotContains(t, out, "files failed")
			},
		},
		{
			name:   "exclude pattern",
			inputs: map[string]string{"a.txt": "cat", "skip.txt": "cat"},
			args: func(dir string) []string {
				return []string{"-s", "cat", "--sub", "dog", "-x", "skip.txt", filepath.Join(dir, "*.txt")}
			},
			check: func(t *testing.T, dir string, out string) {
				assert.Equal(t, "dog", readFile(t, filepath.Join(dir, "Imp_a.txt")))
				assert.NoFileExists(t, filepath.Join(dir, "Imp_skip.txt"))
			},
		},
		{
			name:   "missing input fails the run but writes the rest",
			inputs: map[string]string{"a.txt": "cat"},
			args: func(dir string) []string {
				return []string{"-s", "cat", "--sub", "dog=100", filepath.Join(dir, "a.txt"), filepath.Join(dir, "missing.txt")}
			},
			wantErr:     true,
			errContains: "1 of 2 files failed",
			check: func(t *testing.T, dir string, out string) {
				assert.Equal(t, "dog", readFile(t, filepath.Join(dir, "Imp_a.txt")))
				assert.Contains(t, out, "1 failed")
				assert.Contains(t, out, "⚠️  1 of 2 files failed")
				assert.Contains(t, out, "❌ "+filepath.Join(dir, "missing.txt")+": ")
			},
		},
		{
			name:   "invalid percentage",
			inputs: map[string]string{"a.txt": "cat"},
			args: func(dir string) []string {
				return []string{"-s", "cat", "--sub", "dog=fifty", filepath.Join(dir, "a.txt")}
			},
			wantErr:     true,
			errContains: "not a number",
		},
		{
			name:   "rule flags without search",
			inputs: map[string]string{"a.txt": "cat"},
			args: func(dir string) []string {
				return []string{"--regex", filepath.Join(dir, "a.txt")}
			},
			wantErr:     true,
			errContains: "require --search",
		},
		{
			name: "no matching inputs",
			args: func(dir string) []string {
				return []string{"-s", "cat", "--sub", "dog", filepath.Join(dir, "*.none")}
			},
			wantErr:     true,
			errContains: "no input files matched",
		},
		{
			name:   "missing rule file",
			inputs: map[string]string{"a.txt": "cat"},
			args: func(dir string) []string {
				return []string{filepath.Join(dir, "a.txt")}
			},
			wantErr:     true,
			errContains: "loading rule set",
		},
		{
			name:   "negative workers",
			inputs: map[string]string{"a.txt": "cat"},
			args: func(dir string) []string {
				return []string{"-s", "cat", "--sub", "dog", "--workers", "-1", filepath.Join(dir, "a.txt")}
			},
			wantErr:     true,
			errContains: "must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ctx := testContext(t, &out)
			dir := t.TempDir()

			configFile := filepath.Join(dir, "rules.yaml")
			if tt.rules != "" {
				writeFile(t, configFile, tt.rules)
			}
			for name, content := range tt.inputs {
				writeFile(t, filepath.Join(dir, name), content)
			}

			cmd := NewRunCmd(newTestOpts(ctx, configFile, &out))
			err := execute(ctx, cmd, tt.args(dir)...)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
			}

			if tt.check != nil {
				tt.check(t, dir, out.String())
			}
		})
	}
}

func TestInitThenValidate(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	for _, ext := range []string{".yaml", ".json", ".hcl"} {
		t.Run(ext, func(t *testing.T) {
			var out bytes.Buffer
			ctx := testContext(t, &out)
			path := filepath.Join(t.TempDir(), "pctreplace"+ext)

			rootOpts := newTestOpts(ctx, path, &out)

			require.NoError(t, execute(ctx, NewInitCmd(rootOpts)))
			assert.FileExists(t, path)
			assert.Contains(t, out.String(), "Wrote "+path)
			assert.Contains(t, out.String(), "pctreplace run -c "+path)

			err := execute(ctx, NewInitCmd(rootOpts))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "already exists")

			require.NoError(t, execute(ctx, NewInitCmd(rootOpts), "--force"))

			out.Reset()
			require.NoError(t, execute(ctx, NewValidateCmd(rootOpts)))
			assert.Contains(t, out.String(), "is valid")
			assert.Contains(t, out.String(), `1. "colour" (literal, ignore case) -> "color" 50%`)
			assert.Contains(t, out.String(), `2. "\\bteh\\b" (regex) -> "the" 100%`)
		})
	}
}

func TestValidateCmdInvalid(t *testing.T) {
	var out bytes.Buffer
	ctx := testContext(t, &out)
	path := filepath.Join(t.TempDir(), "rules.json")
	writeFile(t, path, `{"tasks": [{"search_term": "[a-", "use_regex": true, "replacements": [{"replace_with": "x"}]}]}`)

	err := execute(ctx, NewValidateCmd(newTestOpts(ctx, path, &out)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating rule file")
}
