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

// Package pseval implements the dependency-ordered, fixed-point evaluation
// engine: given a loaded printer and a settings bundle of user overrides,
// it produces the fully resolved settings bundle, honoring extruder
// scoping, hard pins, default elision, and the post-eval type check.
// Grounded on _examples/original_source/src/ps_context.c (the evaluation
// context and variable lookup) and printer_settings.c's EvalCtx/PS_EvalAll
// (the work-queue loop itself).
package pseval

import (
	"math"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/psload"
	"github.com/maurerpe-go/psconf/internal/psval"
)

const globalScope = "#global"

// Context is the per-evaluation state: hard pins, the mutable resolved
// map, the default-value snapshot, the constants table, and the extruder
// stack. Exactly one evaluation owns a Context; it is not safe to share
// across concurrent evalAll calls (use EvalAllBatch for independent
// concurrent evaluations against one printer).
type Context struct {
	printer *psload.Printer
	hard    *psval.Value // scope -> setting -> true (presence marker only)
	over    *psval.Value // scope -> setting -> value (mutated monotonically)
	dflt    *psval.Value // scope -> setting -> default_value snapshot
	consts  *psval.Value // name -> value, e.g. "math.pi"

	extStack []string
}

// newContext builds the initial evaluation context for one evalAll call.
// hard's values are presence markers (`true`), not the actual override
// values — the override values themselves are copied straight into over.
// The extruder stack starts with the first non-#global scope on it,
// mirroring PS_NewCtx in the original (grounded on ps_context.c).
func newContext(printer *psload.Printer, overrides *psval.Value) (*Context, error) {
	hard := psval.Object()
	over := psval.Object()
	if overrides != nil {
		overrides.Members(func(scope string, inner *psval.Value) bool {
			hardScope := psval.Object()
			overScope := psval.Object()
			if inner.Kind() == psval.KindObject {
				inner.Members(func(name string, v *psval.Value) bool {
					hardScope.AddMember(name, psval.Bool(true))
					overScope.AddMember(name, v.Copy())
					return true
				})
			}
			hard.AddMember(scope, hardScope)
			over.AddMember(scope, overScope)
			return true
		})
	}
	for _, scope := range printer.ScopeOrder() {
		if _, ok := over.GetMember(scope); !ok {
			over.AddMember(scope, psval.Object())
		}
		if _, ok := hard.GetMember(scope); !ok {
			hard.AddMember(scope, psval.Object())
		}
	}

	consts := psval.Object()
	consts.AddMember("math.pi", psval.Float(math.Pi))

	scopeOrder := printer.ScopeOrder()
	initialScope := globalScope
	if len(scopeOrder) > 1 {
		initialScope = scopeOrder[1]
	}

	return &Context{
		printer:  printer,
		hard:     hard,
		over:     over,
		dflt:     psload.Defaults(printer),
		consts:   consts,
		extStack: []string{initialScope},
	}, nil
}

// currentScope returns the scope at the top of the extruder stack.
func (c *Context) currentScope() string {
	return c.extStack[len(c.extStack)-1]
}

// push enters a new current scope; pop must be called exactly once for
// every push, even on the error path (the evaluator pops right after the
// call made under the pushed scope returns, before checking its error).
func (c *Context) push(scope string) {
	c.extStack = append(c.extStack, scope)
}

func (c *Context) pop() {
	c.extStack = c.extStack[:len(c.extStack)-1]
}

func (c *Context) isHardPinned(scope, name string) bool {
	scopeObj, ok := c.hard.GetMember(scope)
	if !ok {
		return false
	}
	_, ok = scopeObj.GetMember(name)
	return ok
}

// resolve implements spec §4.5's five-step variable lookup for the scope
// currently on top of the extruder stack.
func (c *Context) resolve(name string) (*psval.Value, error) {
	return c.resolveInScope(c.currentScope(), name)
}

func (c *Context) resolveInScope(scope, name string) (*psval.Value, error) {
	if overScope, ok := c.over.GetMember(scope); ok {
		if v, ok := overScope.GetMember(name); ok {
			return v, nil
		}
	}
	if dfltScope, ok := c.dflt.GetMember(scope); ok {
		if v, ok := dfltScope.GetMember(name); ok {
			return v, nil
		}
	}
	if scope != globalScope {
		if overScope, ok := c.over.GetMember(globalScope); ok {
			if v, ok := overScope.GetMember(name); ok {
				return v, nil
			}
		}
		if dfltScope, ok := c.dflt.GetMember(globalScope); ok {
			if v, ok := dfltScope.GetMember(name); ok {
				return v, nil
			}
		}
	}
	if v, ok := c.consts.GetMember(name); ok {
		return v, nil
	}
	return nil, pserrors.New(pserrors.UnknownName, []string{scope, name}, "no such setting or constant")
}

// defaultExtruderPosition resolves the zero-arg catalogue function of the
// same name: the integer position of the extruder frame nearest the
// bottom of the current extruder stack, or 0 when the stack holds no
// extruder frame. The original's func_prop table declares this function
// but ships no body in the retrieved sources; this definition is the
// documented resolution of that open question.
func (c *Context) defaultExtruderPosition() *psval.Value {
	for _, s := range c.extStack {
		if s != globalScope {
			return psval.Int(parseScopeInt(s))
		}
	}
	return psval.Int(0)
}

func parseScopeInt(s string) int64 {
	var out int64
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
		out = out*10 + int64(s[i]-'0')
	}
	return out
}
