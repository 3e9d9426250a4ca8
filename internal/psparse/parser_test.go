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

package psparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/psval"
)

func TestOperatorPrecedence(t *testing.T) {
	r, err := Parse("5 + 3*4**test+2*3", []string{"#global"}, "#global", "s1")
	require.NoError(t, err)
	// 5 + (3 * (4**test)) + (2*3) == ((5 + (3*(4**test))) + (2*3))
	add2 := r.Expr
	assert.Equal(t, "+", add2.GetString())
	right := add2.Items()[1]
	assert.Equal(t, "*", right.GetString())
}

func TestTernaryShortCircuitShape(t *testing.T) {
	r, err := Parse("1/0 if false else 42", nil, "#global", "s1")
	require.NoError(t, err)
	assert.Equal(t, "if", r.Expr.GetString())
	items := r.Expr.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "/", items[0].GetString())
	assert.Equal(t, psval.KindBool, items[1].Kind())
	assert.Equal(t, int64(42), items[2].AsInteger())
}

func TestStringConcatParsesAsAddFunction(t *testing.T) {
	r, err := Parse("'v' + 3", nil, "#global", "s1")
	require.NoError(t, err)
	assert.Equal(t, "+", r.Expr.GetString())
	assert.Equal(t, "v", r.Expr.Items()[0].GetString())
}

func TestFunctionCallDoesNotRecordDependency(t *testing.T) {
	r, err := Parse("math.sqrt(test)", []string{"#global", "0", "1"}, "0", "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, len(r.Deps))
	assert.True(t, r.Deps["0"]["test"])
}

func TestUnknownNameIsRejected(t *testing.T) {
	_, err := Parse("bogusFunc(1)", nil, "#global", "s1")
	assert.Error(t, err)
}

func TestArityMismatchIsRejected(t *testing.T) {
	_, err := Parse("sum(1, 2)", nil, "#global", "s1")
	assert.Error(t, err)
}

func TestGlobalScopeDefaultVarRecordsAcrossExtruders(t *testing.T) {
	r, err := Parse("test + 1", []string{"#global", "0", "1"}, "#global", "s1")
	require.NoError(t, err)
	assert.True(t, r.Deps["0"]["test"])
	assert.True(t, r.Deps["1"]["test"])
	_, hasGlobal := r.Deps["#global"]
	assert.False(t, hasGlobal)
}

func TestExtruderValuesRecordsAcrossAllExtruders(t *testing.T) {
	r, err := Parse("extruderValues('test')", []string{"#global", "0", "1"}, "#global", "s1")
	require.NoError(t, err)
	assert.True(t, r.Deps["0"]["test"])
	assert.True(t, r.Deps["1"]["test"])
}

func TestResolveOrValueRecordsUnderCurrentScopeOnly(t *testing.T) {
	r, err := Parse("resolveOrValue('test')", []string{"#global", "0", "1"}, "0", "s1")
	require.NoError(t, err)
	assert.True(t, r.Deps["0"]["test"])
	assert.Equal(t, 1, len(r.Deps))
}

func TestUnaryMinusVsBinaryMinus(t *testing.T) {
	r, err := Parse("-test", nil, "#global", "s1")
	require.NoError(t, err)
	assert.Equal(t, "neg", r.Expr.GetString())
}

func TestStringEscapes(t *testing.T) {
	r, err := Parse(`"a\nb"`, nil, "#global", "s1")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", r.Expr.GetString())
}

// TestParseErrorCarriesSourcePosition grounds the claim that parse errors
// carry a real position: the column reported must point at the offending
// token within the raw expression, and the setting name must be the one
// passed to Parse, not the zero value.
func TestParseErrorCarriesSourcePosition(t *testing.T) {
	_, err := Parse("1 + @", nil, "#global", "nozzle_diameter")
	require.Error(t, err)
	perr, ok := err.(pserrors.Error)
	require.True(t, ok)
	assert.Equal(t, pserrors.ParseError, perr.Kind())
	pos := perr.Position()
	assert.Equal(t, "nozzle_diameter", pos.Setting)
	assert.Equal(t, 4, pos.Column)
}

func TestUnknownFunctionErrorCarriesCallSitePosition(t *testing.T) {
	_, err := Parse("1 + bogusFunc(1)", nil, "#global", "layer_height")
	require.Error(t, err)
	perr, ok := err.(pserrors.Error)
	require.True(t, ok)
	assert.Equal(t, pserrors.UnknownName, perr.Kind())
	assert.Equal(t, "layer_height", perr.Position().Setting)
	assert.Equal(t, 4, perr.Position().Column)
}
