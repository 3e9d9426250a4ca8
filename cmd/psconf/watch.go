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
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/maurerpe-go/psconf/internal/pseval"
	"github.com/maurerpe-go/psconf/internal/pslog"
	"github.com/maurerpe-go/psconf/internal/psload"
	"github.com/maurerpe-go/psconf/internal/psval"
)

const watchDebounce = 150 * time.Millisecond

// newWatchCommand re-resolves a printer every time a .def.json file changes
// under its search path, printing the new fixed point. Grounded on
// steveyegge-beads' cmd/bd/list.go watch loop (fsnotify.NewWatcher, debounce
// timer, Has(fsnotify.Write) filtering) generalized from one watched file to
// a directory set.
func newWatchCommand(flags *rootFlags) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "watch <printer>",
		Short: "Re-resolve a printer every time its .def.json files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := parseSetFlags(sets)
			if err != nil {
				return err
			}

			c, err := buildContainer(flags)
			if err != nil {
				return err
			}
			return c.Invoke(func(logger pslog.Logger, sp searchPath) error {
				return runWatch(cmd, args[0], []string(sp), overrides, logger)
			})
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "pin a setting: scope:name=jsonvalue (repeatable)")
	return cmd
}

func runWatch(cmd *cobra.Command, name string, sp []string, overrides *psval.Value, logger pslog.Logger) error {
	out := cmd.OutOrStdout()
	resolveAndPrint := func() {
		p, err := psload.Load(name, sp, logger)
		if err != nil {
			fmt.Fprintf(out, "load error: %v\n", err)
			return
		}
		result, err := pseval.EvalAll(p, overrides, logger)
		if err != nil {
			fmt.Fprintf(out, "eval error: %v\n", err)
			return
		}
		fmt.Fprintln(out, result.String())
	}
	resolveAndPrint()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range sp {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	var debounce *time.Timer
	fmt.Fprintln(out, "watching for changes... (Ctrl+C to exit)")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(event.Name, ".def.json") {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, resolveAndPrint)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)
		}
	}
}
