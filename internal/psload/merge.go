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

import "github.com/maurerpe-go/psconf/internal/psval"

// forbidKey is the one reserved member the deep merge always skips: a
// UI-only subtree that must never participate in inheritance or override
// merging. Grounded on printer_settings.c's MergeMember "forbid" constant.
const forbidKey = "children"

// mergeInherit deep-merges src into dst following spec §4.2 step 3: keys
// dst lacks are deep-copied in; keys both sides have as objects are merged
// recursively; any other conflict leaves dst's value untouched (the more
// specific, already-loaded definition wins over an ancestor).
func mergeInherit(dst, src *psval.Value) {
	src.Members(func(key string, sv *psval.Value) bool {
		if key == forbidKey {
			return true
		}
		if dv, ok := dst.GetMember(key); ok {
			if dv.Kind() == psval.KindObject && sv.Kind() == psval.KindObject {
				mergeInherit(dv, sv)
			}
			return true
		}
		dst.AddMember(key, sv.Copy())
		return true
	})
}

// mergeOverride deep-merges src into dst with src winning every conflict,
// used when an `overrides` entry is folded into a setting's properties
// (spec §4.2 step 5). children is still never merged.
func mergeOverride(dst, src *psval.Value) {
	src.Members(func(key string, sv *psval.Value) bool {
		if key == forbidKey {
			return true
		}
		if dv, ok := dst.GetMember(key); ok && dv.Kind() == psval.KindObject && sv.Kind() == psval.KindObject {
			mergeOverride(dv, sv)
			return true
		}
		dst.AddMember(key, sv.Copy())
		return true
	})
}
