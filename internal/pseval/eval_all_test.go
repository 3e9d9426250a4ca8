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

	"github.com/maurerpe-go/psconf/internal/psload"
	"github.com/maurerpe-go/psconf/internal/psval"
)

const fixtureDir = "../../testdata/printers/fixture"
const fixture2Dir = "../../testdata/printers/fixture2"

func loadFixturePrinter(t *testing.T) *psload.Printer {
	t.Helper()
	p, err := psload.Load("fixture", []string{fixtureDir}, nil)
	require.NoError(t, err)
	return p
}

func TestEvalAllExtruderScoping(t *testing.T) {
	p := loadFixturePrinter(t)
	result, err := EvalAll(p, nil, nil)
	require.NoError(t, err)

	globalScope, ok := result.GetMember("#global")
	require.True(t, ok)
	allTests, ok := globalScope.GetMember("all_tests")
	require.True(t, ok, "all_tests should differ from its empty default")

	items := allTests.Items()
	require.Len(t, items, 2)
	assert.InDelta(t, 3.14, items[0].AsFloat(), 1e-9)
	assert.Equal(t, "hi", items[1].GetString())
}

func TestEvalAllDefaultElision(t *testing.T) {
	p := loadFixturePrinter(t)
	result, err := EvalAll(p, nil, nil)
	require.NoError(t, err)

	globalScope, _ := result.GetMember("#global")
	_, ok := globalScope.GetMember("layer_height")
	assert.False(t, ok, "layer_height evaluates to its own default and must be elided")
}

func TestEvalAllHardPinSurvives(t *testing.T) {
	p := loadFixturePrinter(t)
	overrides := psval.Object()
	require.NoError(t, psload.AddSetting(overrides, "#global", "layer_height", psval.Float(0.2)))

	result, err := EvalAll(p, overrides, nil)
	require.NoError(t, err)

	globalScope, _ := result.GetMember("#global")
	v, ok := globalScope.GetMember("layer_height")
	require.True(t, ok)
	assert.Equal(t, 0.2, v.AsFloat())
}

func TestEvalAllComputedUsesGlobalTest(t *testing.T) {
	p := loadFixturePrinter(t)
	result, err := EvalAll(p, nil, nil)
	require.NoError(t, err)

	globalScope, _ := result.GetMember("#global")
	v, ok := globalScope.GetMember("computed")
	require.True(t, ok)
	assert.InDelta(t, 3+3.141592653589793, v.AsFloat(), 1e-12)
}

func TestEvalAllCycleIsDetected(t *testing.T) {
	p, err := psload.Load("cycle", []string{fixture2Dir}, nil)
	require.NoError(t, err)

	_, err = EvalAll(p, nil, nil)
	require.Error(t, err)
}

func TestEvalAllIdempotentModuloDefaults(t *testing.T) {
	p := loadFixturePrinter(t)
	first, err := EvalAll(p, nil, nil)
	require.NoError(t, err)

	second, err := EvalAll(p, first, nil)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}
