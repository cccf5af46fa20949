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
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// 🔍 ExpandInputs turns command line arguments into input files. Arguments
// with glob syntax (including **) expand to the regular files they match;
// other arguments are kept as given so that a missing file is reported by
// the batch. Paths matching an exclude pattern are dropped. A pattern without
// a slash is matched against the base name. Duplicates are removed and the
// first occurrence wins.
func ExpandInputs(args, excludes []string) ([]string, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, errors.Errorf("invalid exclude pattern: %q", pattern)
		}
	}

	excluded := func(path string) bool {
		slashed := filepath.ToSlash(path)
		for _, pattern := range excludes {
			pattern = filepath.ToSlash(pattern)
			target := slashed
			if !strings.Contains(pattern, "/") {
				target = filepath.Base(path)
			}
			if ok, _ := doublestar.Match(pattern, target); ok {
				return true
			}
		}
		return false
	}

	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		key := filepath.Clean(path)
		if seen[key] || excluded(path) {
			return
		}
		seen[key] = true
		out = append(out, path)
	}

	for _, arg := range args {
		if !hasGlobMeta(arg) {
			add(arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", arg, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}
