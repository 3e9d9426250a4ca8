// Copyright 2026 The Psconf Authors
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
	"go.uber.org/dig"

	"github.com/maurerpe-go/psconf/internal/pslog"
)

// searchPath is a distinct type so dig can distinguish it from any other
// []string a future provider might register.
type searchPath []string

// buildContainer wires the shared, per-invocation dependencies every
// subcommand needs (logger, search path) the way uber-go-dig's own
// examples build a small dig.Container and Provide a handful of
// constructors before Invoke-ing the command body — scaled down from
// beads' larger DI graph to this CLI's two shared values.
func buildContainer(flags *rootFlags) (*dig.Container, error) {
	c := dig.New()
	if err := c.Provide(func() pslog.Logger { return newLogger(flags.verbose) }); err != nil {
		return nil, err
	}
	if err := c.Provide(func() searchPath { return searchPath(flags.searchPath) }); err != nil {
		return nil, err
	}
	return c, nil
}
