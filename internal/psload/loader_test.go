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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maurerpe-go/psconf/internal/psval"
)

const fixtureDir = "../../testdata/printers/fixture"
const fixture2Dir = "../../testdata/printers/fixture2"

func mustLoadFixture(t *testing.T) *Printer {
	t.Helper()
	p, err := Load("fixture", []string{fixtureDir}, nil)
	require.NoError(t, err)
	return p
}

func TestLoadBuildsScopesInOrder(t *testing.T) {
	p := mustLoadFixture(t)
	assert.Equal(t, []string{"#global", "0", "1"}, p.ScopeOrder())
}

func TestInheritanceMergesBaseIntoChild(t *testing.T) {
	p := mustLoadFixture(t)
	props, ok := p.SettingProperties("#global", "layer_height")
	require.True(t, ok)
	dv, ok := props.GetMember("default_value")
	require.True(t, ok)
	assert.Equal(t, 0.1, dv.AsFloat())
}

func TestExtruderScopeOverridesTest(t *testing.T) {
	p := mustLoadFixture(t)
	props0, ok := p.SettingProperties("0", "test")
	require.True(t, ok)
	dv0, _ := props0.GetMember("default_value")
	assert.InDelta(t, 3.14, dv0.AsFloat(), 1e-9)

	props1, ok := p.SettingProperties("1", "test")
	require.True(t, ok)
	dv1, _ := props1.GetMember("default_value")
	assert.Equal(t, "hi", dv1.GetString())
}

func TestDependencySoundnessAndTriggerInversion(t *testing.T) {
	p := mustLoadFixture(t)
	computed, ok := p.SettingProperties("#global", "computed")
	require.True(t, ok)
	dep, ok := computed.GetMember("#dep")
	require.True(t, ok)
	_, ok = dep.GetMember("#global")
	require.False(t, ok, "default dep recording from #global must not target #global itself")

	for _, ext := range []string{"0", "1"} {
		extDep, ok := dep.GetMember(ext)
		require.True(t, ok)
		_, ok = extDep.GetMember("test")
		assert.True(t, ok)
	}

	testProps0, ok := p.SettingProperties("0", "test")
	require.True(t, ok)
	trig, ok := testProps0.GetMember("#trigger")
	require.True(t, ok)
	globalTrig, ok := trig.GetMember("#global")
	require.True(t, ok)
	_, ok = globalTrig.GetMember("computed")
	assert.True(t, ok)
}

func TestDefaultsAndBlankMirrorScopes(t *testing.T) {
	p := mustLoadFixture(t)
	blank := Blank(p)
	assert.Equal(t, []string{"#global", "0", "1"}, blank.Keys())

	defaults := Defaults(p)
	globalDefaults, ok := defaults.GetMember("#global")
	require.True(t, ok)
	lh, ok := globalDefaults.GetMember("layer_height")
	require.True(t, ok)
	assert.Equal(t, 0.1, lh.AsFloat())
}

func TestAddSettingDefaultsToGlobalScope(t *testing.T) {
	bundle := psval.Object()
	require.NoError(t, AddSetting(bundle, "", "layer_height", psval.Float(0.2)))
	scope, ok := bundle.GetMember("#global")
	require.True(t, ok)
	v, ok := scope.GetMember("layer_height")
	require.True(t, ok)
	assert.Equal(t, 0.2, v.AsFloat())
}

func TestMergeSettingsSrcWins(t *testing.T) {
	dest := psval.Object()
	require.NoError(t, AddSetting(dest, "#global", "layer_height", psval.Float(0.1)))
	src := psval.Object()
	require.NoError(t, AddSetting(src, "#global", "layer_height", psval.Float(0.3)))
	require.NoError(t, MergeSettings(dest, src))
	scope, _ := dest.GetMember("#global")
	v, _ := scope.GetMember("layer_height")
	assert.Equal(t, 0.3, v.AsFloat())
}

func TestLoadDeterminism(t *testing.T) {
	p1 := mustLoadFixture(t)
	p2 := mustLoadFixture(t)
	d1, ok := p1.SettingProperties("#global", "computed")
	require.True(t, ok)
	d2, ok := p2.SettingProperties("#global", "computed")
	require.True(t, ok)
	v1, _ := d1.GetMember("default_value")
	v2, _ := d2.GetMember("default_value")
	assert.True(t, v1.Equal(v2))
}

func TestLoadCycleFixtureParsesWithoutError(t *testing.T) {
	p, err := Load("cycle", []string{fixture2Dir}, nil)
	require.NoError(t, err)
	props, ok := p.SettingProperties("#global", "a")
	require.True(t, ok)
	_, ok = props.GetMember("#eval")
	assert.True(t, ok)
}
