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
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/maurerpe-go/psconf/internal/pslog"
)

// rootFlags holds the persistent flags every subcommand shares. The only
// value read through viper is the optional config file's search_path, via
// a per-invocation viper.New() rather than the package-level global viper
// instance.
type rootFlags struct {
	searchPath []string
	verbose    bool
	config     string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	v := viper.New()

	root := &cobra.Command{
		Use:           "psconf",
		Short:         "Resolve Cura-style inheriting printer settings",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.config == "" {
				return nil
			}
			v.SetConfigFile(flags.config)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config %s: %w", flags.config, err)
			}
			// The config file's search_path supplements (not replaces) any
			// -I flags already given on the command line.
			flags.searchPath = append(flags.searchPath, v.GetStringSlice("search_path")...)
			return nil
		},
	}

	addGlobalFlags(root.PersistentFlags(), flags)

	root.AddCommand(
		newLoadCommand(flags),
		newScopesCommand(flags),
		newDefaultsCommand(flags),
		newEvalCommand(flags),
		newWatchCommand(flags),
	)
	return root
}

// addGlobalFlags registers the persistent flags every subcommand shares,
// mirroring cue's own cmd/cue/cmd/flags.go addGlobalFlags(*pflag.FlagSet)
// shape.
func addGlobalFlags(f *pflag.FlagSet, flags *rootFlags) {
	f.StringSliceVarP(&flags.searchPath, "search-path", "I", nil, "directory to search for .def.json files (repeatable)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	f.StringVarP(&flags.config, "config", "c", "", "optional YAML/JSON config file supplying search_path")
}

func newLogger(verbose bool) pslog.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return pslog.NoOp()
	}
	return pslog.Or(l)
}
