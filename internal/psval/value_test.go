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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueCmp compares two Values structurally via Equal but reports a
// human-readable diff through cmp's own machinery when they differ — the
// same cmp.Comparer extension point cuelang.org/go's own tests use to
// delegate comparison of unexported-field types to a domain Equal method.
var valueCmp = cmp.Comparer(func(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
})

func TestObjectSortedIteration(t *testing.T) {
	obj := Object()
	require.NoError(t, obj.AddMember("zeta", Int(1)))
	require.NoError(t, obj.AddMember("alpha", Int(2)))
	require.NoError(t, obj.AddMember("mid", Int(3)))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, obj.Keys())

	var order []string
	obj.Members(func(k string, _ *Value) bool {
		order = append(order, k)
		return true
	})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, order)
}

func TestObjectReplaceDoesNotDuplicate(t *testing.T) {
	obj := Object()
	require.NoError(t, obj.AddMember("a", Int(1)))
	require.NoError(t, obj.AddMember("a", Int(2)))
	assert.Equal(t, 1, len(obj.Keys()))
	m, ok := obj.GetMember("a")
	require.True(t, ok)
	assert.Equal(t, int64(2), m.AsInteger())
}

func TestCopyDeepCopiesComposites(t *testing.T) {
	inner := List(Int(1), Int(2))
	outer := Object()
	require.NoError(t, outer.AddMember("nums", inner))

	dup := outer.Copy()
	require.NoError(t, inner.Append(Int(3)))

	nums, ok := dup.GetMember("nums")
	require.True(t, ok)
	assert.Equal(t, 2, nums.ItemCount())
}

func TestCopySharesScalars(t *testing.T) {
	s := String("hello")
	dup := s.Copy()
	assert.Same(t, s, dup)
}

func TestEqualPromotesBooleanToInteger(t *testing.T) {
	assert.True(t, Bool(true).Equal(Int(1)))
	assert.True(t, Int(1).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(Int(2)))
	assert.False(t, Bool(false).Equal(Int(1)))
}

func TestEqualPromotesIntegerToFloat(t *testing.T) {
	assert.True(t, Int(3).Equal(Float(3.0)))
	assert.False(t, Int(3).Equal(Float(3.5)))
}

func TestEqualLists(t *testing.T) {
	a := List(Int(1), String("x"))
	b := List(Int(1), String("x"))
	c := List(Int(1), String("y"))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestEqualObjectsIndependentOfInsertOrder(t *testing.T) {
	a := Object()
	require.NoError(t, a.AddMember("x", Int(1)))
	require.NoError(t, a.AddMember("y", Int(2)))

	b := Object()
	require.NoError(t, b.AddMember("y", Int(2)))
	require.NoError(t, b.AddMember("x", Int(1)))

	assert.True(t, a.Equal(b))
}

func TestEqualNullOnlyEqualsNull(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.False(t, Null().Equal(Int(0)))
	assert.False(t, Int(0).Equal(Null()))
}

func TestNegativeIndexing(t *testing.T) {
	l := List(Int(10), Int(20), Int(30))
	v, err := l.ItemAt(-1)
	require.NoError(t, err)
	assert.Equal(t, int64(30), v.AsInteger())
}

func TestFunctionItemZeroIsName(t *testing.T) {
	fn := Function("add", Int(1), Int(2))
	name, err := fn.ItemAt(0)
	require.NoError(t, err)
	assert.Equal(t, "add", name.GetString())
	assert.Equal(t, 3, fn.ItemCount())
}

func TestWriteJSONRoundTripShape(t *testing.T) {
	obj := Object()
	require.NoError(t, obj.AddMember("b", Bool(true)))
	require.NoError(t, obj.AddMember("a", String("hi\n")))
	require.NoError(t, obj.AddMember("n", Null()))

	assert.Equal(t, `{"a": "hi\n", "b": true, "n": null}`, obj.String())
}

func TestResizeFillsWithCopies(t *testing.T) {
	l := List(Int(1))
	fill := List(Int(0))
	require.NoError(t, l.Resize(3, fill))
	assert.Equal(t, 3, l.ItemCount())
	second, err := l.ItemAt(1)
	require.NoError(t, err)
	assert.True(t, second.Equal(fill))
	assert.NotSame(t, fill, mustItem(t, l, 1))
}

func TestCmpDiffReportsObjectMismatch(t *testing.T) {
	a := Object()
	require.NoError(t, a.AddMember("x", Int(1)))
	b := Object()
	require.NoError(t, b.AddMember("x", Int(2)))

	if diff := cmp.Diff(a, b, valueCmp); diff == "" {
		t.Fatal("expected a non-empty diff for mismatched objects")
	}

	c := Object()
	require.NoError(t, c.AddMember("x", Int(1)))
	assert.Empty(t, cmp.Diff(a, c, valueCmp))
}

func mustItem(t *testing.T, l *Value, i int) *Value {
	t.Helper()
	v, err := l.ItemAt(i)
	require.NoError(t, err)
	return v
}
