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

package pseval

import "github.com/maurerpe-go/psconf/internal/psval"

// checkType implements the post-eval type table of spec §4.7: a declared
// `type` label accepts a narrow set of Value kinds; anything else is
// discarded as a TypeMismatch.
func checkType(declared string, v *psval.Value) bool {
	switch declared {
	case "str", "enum", "extruder", "optional_extruder":
		return v.Kind() == psval.KindString
	case "bool":
		return v.Kind() == psval.KindBool
	case "int", "float":
		return v.Kind() == psval.KindInt || v.Kind() == psval.KindFloat
	case "polygons":
		return v.Kind() == psval.KindList
	default:
		if len(declared) > 0 && declared[0] == '[' {
			return v.Kind() == psval.KindList
		}
		return true
	}
}
