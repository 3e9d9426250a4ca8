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

package psmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maurerpe-go/psconf/internal/psval"
)

func TestIntegerOverflowFallsBackToFloat(t *testing.T) {
	r, err := Expt(psval.Int(2), psval.Int(70))
	require.NoError(t, err)
	assert.Equal(t, psval.KindFloat, r.Kind())
	assert.InEpsilon(t, 1.1805916207174113e21, r.AsFloat(), 1e-9)
}

func TestDivisionIsTrueDivisionNotBuggyProduct(t *testing.T) {
	r, err := Div(psval.Int(7), psval.Int(2))
	require.NoError(t, err)
	assert.Equal(t, psval.KindFloat, r.Kind())
	assert.InEpsilon(t, 3.5, r.AsFloat(), 1e-12)
}

func TestExactDivisionStaysInteger(t *testing.T) {
	r, err := Div(psval.Int(6), psval.Int(3))
	require.NoError(t, err)
	assert.Equal(t, psval.KindInt, r.Kind())
	assert.Equal(t, int64(2), r.AsInteger())
}

func TestStringConcatRendersNonStringAsJSON(t *testing.T) {
	r, err := Add(psval.String("v"), psval.Int(3))
	require.NoError(t, err)
	assert.Equal(t, psval.KindString, r.Kind())
	assert.Equal(t, "v3", r.GetString())
}

func TestAndOrDoNotShortCircuitButDoRequireBooleans(t *testing.T) {
	r, err := And(psval.Bool(true), psval.Bool(false))
	require.NoError(t, err)
	assert.False(t, r.AsBoolean())

	_, err = And(psval.Bool(true), psval.Int(1))
	assert.Error(t, err)
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	r, err := fnRound([]*psval.Value{psval.Float(2.5)})
	require.NoError(t, err)
	assert.Equal(t, 3.0, r.AsFloat())

	r, err = fnRound([]*psval.Value{psval.Float(-2.5)})
	require.NoError(t, err)
	assert.Equal(t, -3.0, r.AsFloat())
}

func TestMaxOverList(t *testing.T) {
	r, err := reduce("max", []*psval.Value{psval.List(psval.Int(1), psval.Int(9), psval.Int(4))}, Gt)
	require.NoError(t, err)
	assert.Equal(t, int64(9), r.AsInteger())
}

func TestSumOverList(t *testing.T) {
	r, err := fnSum([]*psval.Value{psval.List(psval.Int(1), psval.Int(2), psval.Int(3))})
	require.NoError(t, err)
	assert.Equal(t, int64(6), r.AsInteger())
}

func TestComparisonRejectsMixedStringNonString(t *testing.T) {
	_, err := Lt(psval.String("a"), psval.Int(1))
	assert.Error(t, err)
}
