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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/walteh/pctreplace/cmd/pctreplace/opts"
	"github.com/walteh/pctreplace/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootOpts := &opts.RootOpts{Console: os.Stderr}
	rootCmd := newRootCmd(rootOpts)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		userLogger := rootOpts.UserLogger
		if userLogger == nil {
			// flag errors happen before the loggers exist
			userLogger = log.NewUserLogger(ctx, os.Stderr)
		}
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
