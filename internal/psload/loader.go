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

// Package psload resolves a root printer name to its fully-merged,
// per-extruder-scoped definition tree: following .def.json inheritance
// chains, flattening the settings tree into a per-scope #set index, and
// building the #dep/#trigger graph every setting's parsed expression
// needs. Grounded on _examples/original_source/src/printer_settings.c.
package psload

import (
	"os"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/pslog"
	"github.com/maurerpe-go/psconf/internal/psparse"
	"github.com/maurerpe-go/psconf/internal/psval"
)

const globalScope = "#global"

// Printer is a fully-loaded, indexed definition tree: an object with one
// member per scope (#global plus one per extruder), each holding the
// merged .def.json content, a #set index, and (on #global) #filename and
// #search.
type Printer struct {
	root       *psval.Value
	scopeOrder []string // "#global" first, then extruders in machine_extruder_trains order
}

// Load implements spec §4.2 in full: resolves name, follows inherits
// chains, builds the #set index (consulting overrides), attaches one
// scope per configured extruder, and builds the cross-scope #dep/#trigger
// graph. logger receives a Warn for every non-fatal parse failure
// encountered while building the expression graph; nil is treated as a
// no-op logger.
func Load(name string, searchPath []string, logger pslog.Logger) (*Printer, error) {
	logger = nilToZapNop(logger)

	globalObj, filename, err := loadChain(name, searchPath)
	if err != nil {
		return nil, err
	}
	if err := buildSet(globalObj); err != nil {
		return nil, err
	}

	root := psval.Object()
	if err := root.AddMember(globalScope, globalObj); err != nil {
		return nil, err
	}

	metadataObj, ok := globalObj.GetMember("metadata")
	if !ok || metadataObj.Kind() != psval.KindObject {
		return nil, pserrors.New(pserrors.BadMetadata, nil, "missing metadata object")
	}
	trainsObj, ok := metadataObj.GetMember("machine_extruder_trains")
	if !ok || trainsObj.Kind() != psval.KindObject {
		return nil, pserrors.New(pserrors.BadMetadata, nil, "metadata.machine_extruder_trains is missing or not an object")
	}
	if len(trainsObj.Keys()) == 0 {
		return nil, pserrors.New(pserrors.NoExtruders, nil, "metadata.machine_extruder_trains is empty")
	}

	scopeOrder := []string{globalScope}
	for _, pos := range trainsObj.Keys() {
		fileVal, _ := trainsObj.GetMember(pos)
		if fileVal.Kind() != psval.KindString {
			return nil, pserrors.New(pserrors.BadMetadata, []string{pos}, "machine_extruder_trains entry is not a string")
		}
		extObj, _, err := loadChain(fileVal.GetString(), searchPath)
		if err != nil {
			return nil, err
		}
		if err := buildSet(extObj); err != nil {
			return nil, err
		}
		if err := root.AddMember(pos, extObj); err != nil {
			return nil, err
		}
		scopeOrder = append(scopeOrder, pos)
	}

	if err := globalObj.AddMember("#filename", psval.String(filename)); err != nil {
		return nil, err
	}
	searchList := make([]*psval.Value, len(searchPath))
	for i, s := range searchPath {
		searchList[i] = psval.String(s)
	}
	if err := globalObj.AddMember("#search", psval.List(searchList...)); err != nil {
		return nil, err
	}

	p := &Printer{root: root, scopeOrder: scopeOrder}
	if perrs := buildDeps(root, scopeOrder, logger); perrs.Len() > 0 {
		for _, e := range perrs.Errs() {
			logger.Warn(e.Error())
		}
	}
	return p, nil
}

func nilToZapNop(l pslog.Logger) pslog.Logger {
	if l == nil {
		return pslog.NoOp()
	}
	return l
}

// loadChain implements steps 1–4: resolve, parse, and fold an inherits
// chain into a single accumulator object, returning that object and the
// resolved path of the chain's root file (for #filename bookkeeping).
func loadChain(name string, searchPath []string) (*psval.Value, string, error) {
	var acc *psval.Value
	rootPath := ""
	current := name
	for {
		path, err := resolve(current, searchPath)
		if err != nil {
			return nil, "", err
		}
		if rootPath == "" {
			rootPath = path
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, "", pserrors.New(pserrors.FileNotFound, []string{current}, "%v", err)
		}
		doc, err := decodeJSON(f)
		f.Close()
		if err != nil {
			return nil, "", err
		}
		if doc.Kind() != psval.KindObject {
			return nil, "", pserrors.New(pserrors.ParseError, []string{current}, "definition file is not a JSON object")
		}
		if acc == nil {
			acc = doc
		} else {
			mergeInherit(acc, doc)
		}
		parent, ok := doc.GetMember("inherits")
		if !ok || parent.Kind() != psval.KindString {
			break
		}
		current = parent.GetString()
	}
	if acc == nil {
		acc = psval.Object()
	}
	return acc, rootPath, nil
}

// buildSet implements step 5: flatten the settings tree into #set,
// recursing through each node's "children" subtree, then fold any
// `overrides` entries into the corresponding setting's properties.
func buildSet(scopeObj *psval.Value) error {
	set := psval.Object()
	settings, ok := scopeObj.GetMember("settings")
	if !ok || settings.Kind() != psval.KindObject {
		return pserrors.New(pserrors.MissingSettings, nil, "definition has no settings object after merge")
	}
	flattenSettings(set, settings)

	if overrides, ok := scopeObj.GetMember("overrides"); ok && overrides.Kind() == psval.KindObject {
		overrides.Members(func(name string, overrideProps *psval.Value) bool {
			if target, ok := set.GetMember(name); ok {
				mergeOverride(target, overrideProps)
			}
			return true
		})
	}

	return scopeObj.AddMember("#set", set)
}

func flattenSettings(set, node *psval.Value) {
	node.Members(func(name string, props *psval.Value) bool {
		if props.Kind() != psval.KindObject {
			return true
		}
		set.AddMember(name, props)
		if children, ok := props.GetMember("children"); ok && children.Kind() == psval.KindObject {
			flattenSettings(set, children)
		}
		return true
	})
}

// buildDeps implements expression parsing and #dep/#trigger construction
// across every scope. Parse failures are recorded in the returned List
// (and the offending setting's #eval/#dep are simply left unset, per spec
// §7: "its default stands") rather than aborting the load.
func buildDeps(root *psval.Value, scopeOrder []string, logger pslog.Logger) pserrors.List {
	var errs pserrors.List
	sets := make(map[string]*psval.Value, len(scopeOrder))
	for _, scope := range scopeOrder {
		scopeObj, _ := root.GetMember(scope)
		setObj, _ := scopeObj.GetMember("#set")
		sets[scope] = setObj
	}

	for _, scope := range scopeOrder {
		setObj := sets[scope]
		setObj.Members(func(name string, props *psval.Value) bool {
			rawVal, ok := props.GetMember("value")
			if !ok {
				return true
			}
			if rawVal.Kind() != psval.KindString {
				props.AddMember("#eval", rawVal)
				return true
			}
			res, err := psparse.Parse(rawVal.GetString(), scopeOrder, scope, name)
			if err != nil {
				errs.Add(pserrors.New(pserrors.ParseError, []string{scope, name}, "%v", err))
				return true
			}
			props.AddMember("#eval", res.Expr)
			props.AddMember("#dep", depsToValue(res.Deps))
			return true
		})
	}

	for _, scope := range scopeOrder {
		setObj := sets[scope]
		setObj.Members(func(name string, props *psval.Value) bool {
			depObj, ok := props.GetMember("#dep")
			if !ok {
				return true
			}
			depObj.Members(func(depScope string, inner *psval.Value) bool {
				targetSet := sets[depScope]
				if targetSet == nil {
					return true
				}
				inner.Members(func(depName string, _ *psval.Value) bool {
					// A dependency recorded against an extruder scope may
					// actually resolve there only via the one-level
					// #global fallback (spec §4.5 step 3) when that
					// scope's own #set has no such setting; attach the
					// trigger to wherever the read will really land.
					if _, ok := targetSet.GetMember(depName); !ok && depScope != globalScope {
						if globalSet := sets[globalScope]; globalSet != nil {
							addTrigger(globalSet, depName, scope, name)
							return true
						}
					}
					addTrigger(targetSet, depName, scope, name)
					return true
				})
				return true
			})
			return true
		})
	}

	return errs
}

func addTrigger(targetSet *psval.Value, depName, scope, name string) {
	targetProps, ok := targetSet.GetMember(depName)
	if !ok {
		return
	}
	trig, ok := targetProps.GetMember("#trigger")
	if !ok {
		trig = psval.Object()
		targetProps.AddMember("#trigger", trig)
	}
	scopeTrig, ok := trig.GetMember(scope)
	if !ok {
		scopeTrig = psval.Object()
		trig.AddMember(scope, scopeTrig)
	}
	scopeTrig.AddMember(name, psval.Bool(true))
}

func depsToValue(deps psparse.Deps) *psval.Value {
	out := psval.Object()
	for scope, settings := range deps {
		inner := psval.Object()
		for name := range settings {
			inner.AddMember(name, psval.Bool(true))
		}
		out.AddMember(scope, inner)
	}
	return out
}

// Root exposes the underlying scope-keyed object, for the evaluation
// engine and for tests that want to inspect #set/#eval/#dep directly.
func (p *Printer) Root() *psval.Value { return p.root }

// ScopeOrder returns "#global" followed by extruder scopes in the order
// metadata.machine_extruder_trains enumerated them.
func (p *Printer) ScopeOrder() []string { return p.scopeOrder }

// Filename returns the resolved path of the root definition file.
func (p *Printer) Filename() string {
	global, _ := p.root.GetMember(globalScope)
	f, _ := global.GetMember("#filename")
	return f.GetString()
}

// SearchPath returns the search directory list used to load this printer.
func (p *Printer) SearchPath() []string {
	global, _ := p.root.GetMember(globalScope)
	list, ok := global.GetMember("#search")
	if !ok {
		return nil
	}
	out := make([]string, 0, list.ItemCount())
	for _, item := range list.Items() {
		out = append(out, item.GetString())
	}
	return out
}

// SettingProperties looks up a (scope, name) setting's flattened
// properties object.
func (p *Printer) SettingProperties(scope, name string) (*psval.Value, bool) {
	scopeObj, ok := p.root.GetMember(scope)
	if !ok {
		return nil, false
	}
	set, ok := scopeObj.GetMember("#set")
	if !ok {
		return nil, false
	}
	return set.GetMember(name)
}
