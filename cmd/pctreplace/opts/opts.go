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

package opts

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/pctreplace/pkg/config"
	"github.com/walteh/pctreplace/pkg/log"
)

// RootOpts contains shared options used by all commands. The console
// *log.Logger travels in the command context, see log.FromContext.
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Console    io.Writer // progress bar and other transient output
	UserLogger *log.UserLogger
}

// LoadRuleSet loads the rule set named by --config
func (o *RootOpts) LoadRuleSet(ctx context.Context) (*config.RuleSet, error) {
	if o.ConfigFile == "" {
		return nil, errors.New("no rule file given, use --config")
	}
	rs, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading rule set: %w", err)
	}
	return rs, nil
}
