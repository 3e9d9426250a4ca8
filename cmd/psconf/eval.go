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

	"github.com/spf13/cobra"

	"github.com/maurerpe-go/psconf/internal/pseval"
	"github.com/maurerpe-go/psconf/internal/pslog"
	"github.com/maurerpe-go/psconf/internal/psload"
)

func newEvalCommand(flags *rootFlags) *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "eval <printer>",
		Short: "Resolve a printer against user overrides to a fixed point",
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
				p, err := psload.Load(args[0], []string(sp), logger)
				if err != nil {
					return err
				}
				result, err := pseval.EvalAll(p, overrides, logger)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.String())
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "pin a setting: scope:name=jsonvalue (repeatable)")
	return cmd
}
