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

	"github.com/walteh/pctreplace/pkg/config"
)

// NamingOptions controls where outputs are written and what they are called
type NamingOptions struct {
	Prefix    string
	Suffix    string
	OutputDir string // empty means next to the source file
}

// NamingFromRuleSet takes the naming fields of a rule set
func NamingFromRuleSet(rs *config.RuleSet) NamingOptions {
	return NamingOptions{
		Prefix:    rs.OutputPrefix,
		Suffix:    rs.OutputSuffix,
		OutputDir: rs.OutputDir,
	}
}

// OutputPath returns {dir}/{prefix}{stem}{suffix}{ext} for src. A leading dot
// is part of the stem, so ".env" keeps no extension.
func OutputPath(src string, n NamingOptions) string {
	dir := n.OutputDir
	if dir == "" {
		dir = filepath.Dir(src)
	}

	name := filepath.Base(src)
	ext := filepath.Ext(name)
	if ext == name {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)

	return filepath.Join(dir, n.Prefix+stem+n.Suffix+ext)
}
