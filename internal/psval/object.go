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

import "github.com/google/btree"

// object is the ordered-map backing an object-kind Value: a balanced
// search tree keyed by lexicographic string compare, satisfying the
// "any balanced BST (or skip list, or B-tree)" contract for the data model's
// ordered map. We use google/btree's generic in-memory B-tree rather than
// hand-rolling an AVL tree; a B-tree of low degree gives the same O(log n)
// lookup/insert and sorted iteration the original AVL tree provided.
type object struct {
	tree *btree.BTreeG[entry]
}

type entry struct {
	key string
	val *Value
}

func entryLess(a, b entry) bool { return a.key < b.key }

const objectDegree = 8

func newObject() *object {
	return &object{tree: btree.NewG(objectDegree, entryLess)}
}

func (o *object) len() int {
	if o == nil || o.tree == nil {
		return 0
	}
	return o.tree.Len()
}

func (o *object) get(key string) (*Value, bool) {
	if o == nil || o.tree == nil {
		return nil, false
	}
	e, ok := o.tree.Get(entry{key: key})
	if !ok {
		return nil, false
	}
	return e.val, true
}

// set replaces an existing key's value (preserving the sorted-order
// invariant: replacing never duplicates) or inserts a new one.
func (o *object) set(key string, v *Value) {
	o.tree.ReplaceOrInsert(entry{key: key, val: v})
}

func (o *object) remove(key string) bool {
	_, ok := o.tree.Delete(entry{key: key})
	return ok
}

// each visits members in ascending key order; returning false from fn stops
// iteration early.
func (o *object) each(fn func(key string, v *Value) bool) {
	if o == nil || o.tree == nil {
		return
	}
	o.tree.Ascend(func(e entry) bool {
		return fn(e.key, e.val)
	})
}

// keys returns the member names in sorted order.
func (o *object) keys() []string {
	out := make([]string, 0, o.len())
	o.each(func(k string, _ *Value) bool {
		out = append(out, k)
		return true
	})
	return out
}

func (o *object) clone(deep bool) *object {
	n := newObject()
	o.each(func(k string, v *Value) bool {
		if deep {
			n.set(k, v.Copy())
		} else {
			n.set(k, v)
		}
		return true
	})
	return n
}
