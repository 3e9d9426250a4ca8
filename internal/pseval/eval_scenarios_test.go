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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maurerpe-go/psconf/internal/psparse"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// testContext builds a minimal Context directly (white-box, same package)
// for expression-level scenarios that don't need a full loaded printer:
// a #global scope holding the given variables as defaults, and no
// extruders beyond a single placeholder.
func testContext(globalVars map[string]*psval.Value) *Context {
	dflt := psval.Object()
	globalScopeObj := psval.Object()
	for k, v := range globalVars {
		globalScopeObj.AddMember(k, v)
	}
	dflt.AddMember("#global", globalScopeObj)

	consts := psval.Object()
	consts.AddMember("math.pi", psval.Float(3.141592653589793))

	return &Context{
		hard:     psval.Object(),
		over:     psval.Object(),
		dflt:     dflt,
		consts:   consts,
		extStack: []string{globalScope},
	}
}

func evalStr(t *testing.T, ctx *Context, expr string) *psval.Value {
	t.Helper()
	res, err := psparse.Parse(expr, []string{"#global"}, "#global", "test")
	require.NoError(t, err)
	v, err := evalExpr(ctx, res.Expr)
	require.NoError(t, err)
	return v
}

func TestScenarioConstantMath(t *testing.T) {
	ctx := testContext(map[string]*psval.Value{"test": psval.Int(3)})
	v := evalStr(t, ctx, "test + math.pi")
	assert.Equal(t, psval.KindFloat, v.Kind())
	assert.InDelta(t, 6.141592653589793, v.AsFloat(), 1e-12)
}

func TestScenarioOperatorPrecedence(t *testing.T) {
	ctx := testContext(map[string]*psval.Value{"test": psval.Int(2)})
	v := evalStr(t, ctx, "5 + 3*4**test+2*3")
	assert.Equal(t, psval.KindInt, v.Kind())
	assert.Equal(t, int64(59), v.AsInteger())

	ctx2 := testContext(map[string]*psval.Value{"test": psval.Int(-1)})
	v2 := evalStr(t, ctx2, "5 + 3*4**test+2*3")
	assert.Equal(t, psval.KindFloat, v2.Kind())
	assert.InDelta(t, 11.75, v2.AsFloat(), 1e-12)
}

func TestScenarioIntegerOverflowFallback(t *testing.T) {
	ctx := testContext(nil)
	v := evalStr(t, ctx, "2 ** 70")
	assert.Equal(t, psval.KindFloat, v.Kind())
	assert.InEpsilon(t, 1.1805916207174113e21, v.AsFloat(), 1e-9)
}

func TestScenarioStringConcatWithInt(t *testing.T) {
	ctx := testContext(nil)
	v := evalStr(t, ctx, "'v' + 3")
	assert.Equal(t, psval.KindString, v.Kind())
	assert.Equal(t, "v3", v.GetString())
}

func TestScenarioTernaryShortCircuit(t *testing.T) {
	ctx := testContext(nil)
	v := evalStr(t, ctx, "1/0 if false else 42")
	assert.Equal(t, psval.KindInt, v.Kind())
	assert.Equal(t, int64(42), v.AsInteger())
}
