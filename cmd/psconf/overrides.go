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

	"github.com/maurerpe-go/psconf/internal/psload"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// parseSetFlags builds a hard-override bundle from repeated
// "--set scope:name=value" flags, where value is a JSON literal
// (3, "hi", true, [1,2]). A flag with no "scope:" prefix pins the
// setting in #global.
func parseSetFlags(sets []string) (*psval.Value, error) {
	bundle := psval.Object()
	for _, raw := range sets {
		eq := strings.IndexByte(raw, '=')
		if eq < 0 {
			return nil, fmt.Errorf("--set %q: expected scope:name=value", raw)
		}
		key, jsonVal := raw[:eq], raw[eq+1:]

		scope, name := "", key
		if colon := strings.IndexByte(key, ':'); colon >= 0 {
			scope, name = key[:colon], key[colon+1:]
		}
		if name == "" {
			return nil, fmt.Errorf("--set %q: empty setting name", raw)
		}

		v, err := psload.ParseValueJSON(jsonVal)
		if err != nil {
			return nil, fmt.Errorf("--set %q: %w", raw, err)
		}
		if err := psload.AddSetting(bundle, scope, name, v); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}
