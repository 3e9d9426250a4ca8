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
	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// ListScopes returns the extruder positions (and #global) in loader-
// defined order, per spec §6.
func ListScopes(p *Printer) []string {
	out := make([]string, len(p.scopeOrder))
	copy(out, p.scopeOrder)
	return out
}

// Blank returns a settings bundle mirroring the printer's scope set with
// an empty object per scope.
func Blank(p *Printer) *psval.Value {
	bundle := psval.Object()
	for _, scope := range p.scopeOrder {
		bundle.AddMember(scope, psval.Object())
	}
	return bundle
}

// Defaults returns a settings bundle holding each setting's declared
// default_value, per scope.
func Defaults(p *Printer) *psval.Value {
	bundle := psval.Object()
	for _, scope := range p.scopeOrder {
		scopeObj, _ := p.root.GetMember(scope)
		set, _ := scopeObj.GetMember("#set")
		inner := psval.Object()
		set.Members(func(name string, props *psval.Value) bool {
			if dv, ok := props.GetMember("default_value"); ok {
				inner.AddMember(name, dv.Copy())
			}
			return true
		})
		bundle.AddMember(scope, inner)
	}
	return bundle
}

// SettingProperties looks up a (scope, name) setting's properties via the
// package-level convenience form mirroring spec §6's signature.
func SettingProperties(p *Printer, scope, name string) (*psval.Value, bool) {
	return p.SettingProperties(scope, name)
}

// AddSetting writes value under bundle[scope][name], creating the scope
// object if absent. An empty scope defaults to "#global".
func AddSetting(bundle *psval.Value, scope, name string, value *psval.Value) error {
	if scope == "" {
		scope = globalScope
	}
	scopeObj, ok := bundle.GetMember(scope)
	if !ok {
		scopeObj = psval.Object()
		if err := bundle.AddMember(scope, scopeObj); err != nil {
			return err
		}
	}
	if scopeObj.Kind() != psval.KindObject {
		return pserrors.New(pserrors.TypeMismatch, []string{scope}, "bundle scope %q is not an object", scope)
	}
	return scopeObj.AddMember(name, value)
}

// MergeSettings merges src into dest scope by scope, src winning every
// scope/setting conflict — the bundle-layering operation for stacking one
// settings bundle over another.
func MergeSettings(dest, src *psval.Value) error {
	if dest.Kind() != psval.KindObject || src.Kind() != psval.KindObject {
		return pserrors.New(pserrors.TypeMismatch, nil, "mergeSettings requires two objects")
	}
	var outerErr error
	src.Members(func(scope string, srcScope *psval.Value) bool {
		destScope, ok := dest.GetMember(scope)
		if !ok {
			if err := dest.AddMember(scope, srcScope.Copy()); err != nil {
				outerErr = err
				return false
			}
			return true
		}
		if destScope.Kind() != psval.KindObject || srcScope.Kind() != psval.KindObject {
			outerErr = pserrors.New(pserrors.TypeMismatch, []string{scope}, "mergeSettings scope is not an object")
			return false
		}
		srcScope.Members(func(name string, v *psval.Value) bool {
			if err := destScope.AddMember(name, v.Copy()); err != nil {
				outerErr = err
				return false
			}
			return true
		})
		return true
	})
	return outerErr
}
