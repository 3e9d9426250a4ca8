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

package psval

// Equal implements structural equality (spec §4.6, §9): scalars compare
// after promoting the lower-ranked side to the higher-ranked kind along the
// boolean < integer < float < string chain (so `true == 1` compares as
// integers and is true); lists compare element-wise in order; objects
// compare by identical key sets with equal values at each key, independent
// of object insertion history (the backing tree always iterates sorted);
// variables compare by name; functions compare by name and argument list.
// null equals only null.
func (v *Value) Equal(o *Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull()
	}
	if v.kind != o.kind {
		if rk := v.kind.rank(); rk >= 0 && o.kind.rank() >= 0 {
			return promotedEqual(v, o)
		}
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindVariable:
		return v.s == o.s
	case KindList:
		return equalItems(v.items, o.items)
	case KindFunction:
		if v.s != o.s {
			return false
		}
		return equalItems(v.items, o.items)
	case KindObject:
		return equalObjects(v.obj, o.obj)
	default:
		return false
	}
}

func equalItems(a, b []*Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalObjects(a, b *object) bool {
	if a.len() != b.len() {
		return false
	}
	eq := true
	a.each(func(k string, av *Value) bool {
		bv, ok := b.get(k)
		if !ok || !av.Equal(bv) {
			eq = false
			return false
		}
		return true
	})
	return eq
}

// promotedEqual compares two scalars of different kinds by promoting the
// lower-ranked one to the higher-ranked kind's representation.
func promotedEqual(v, o *Value) bool {
	if v.kind.rank() > o.kind.rank() {
		v, o = o, v
	}
	switch o.kind {
	case KindInt:
		return v.AsInteger() == o.i
	case KindFloat:
		return v.AsFloat() == o.f
	case KindString:
		return scalarString(v) == o.s
	default:
		return false
	}
}

func scalarString(v *Value) string {
	switch v.kind {
	case KindString:
		return v.s
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindInt:
		return formatInt(v.i)
	case KindFloat:
		return formatFloat(v.f)
	default:
		return ""
	}
}
