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
	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/psmath"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// evalExpr evaluates an expression tree (as produced by psparse.Parse) in
// the context's current scope. Literals reduce to themselves; variables
// resolve; everything else is either one of the four context-aware macros
// (handled here, since they need the extruder stack) or a context-free
// operator/function dispatched to psmath after its arguments are reduced.
func evalExpr(ctx *Context, expr *psval.Value) (*psval.Value, error) {
	if expr.IsNull() {
		return psval.Null(), nil
	}
	switch expr.Kind() {
	case psval.KindVariable:
		return ctx.resolve(expr.GetString())
	case psval.KindFunction:
		return evalCall(ctx, expr.GetString(), expr.Items())
	default:
		return expr, nil
	}
}

func evalCall(ctx *Context, name string, args []*psval.Value) (*psval.Value, error) {
	switch name {
	case "if":
		return evalIf(ctx, args)
	case "extruderValue":
		return evalExtruderValue(ctx, args)
	case "extruderValues":
		return evalExtruderValues(ctx, args)
	case "resolveOrValue":
		return evalResolveOrValue(ctx, args)
	case "defaultExtruderPosition":
		if len(args) != 0 {
			return nil, pserrors.New(pserrors.ArityMismatch, []string{name}, "expected 0 arguments, got %d", len(args))
		}
		return ctx.defaultExtruderPosition(), nil
	}

	switch name {
	case "+":
		return binOp(ctx, args, psmath.Add)
	case "-":
		return binOp(ctx, args, psmath.Sub)
	case "*":
		return binOp(ctx, args, psmath.Mul)
	case "/":
		return binOp(ctx, args, psmath.Div)
	case "**":
		return binOp(ctx, args, psmath.Expt)
	case "<":
		return binOp(ctx, args, psmath.Lt)
	case ">":
		return binOp(ctx, args, psmath.Gt)
	case "<=":
		return binOp(ctx, args, psmath.Le)
	case ">=":
		return binOp(ctx, args, psmath.Ge)
	case "==":
		return binOp(ctx, args, psmath.Eq)
	case "!=":
		return binOp(ctx, args, psmath.Neq)
	case "or":
		return binOp(ctx, args, psmath.Or)
	case "and":
		return binOp(ctx, args, psmath.And)
	case "not":
		return unOp(ctx, args, psmath.Not)
	case "neg":
		return unOp(ctx, args, psmath.Neg)
	case "pos":
		return unOp(ctx, args, psmath.Pos)
	}

	if psmath.ContextFreeNames[name] {
		reduced, err := evalAllArgs(ctx, args)
		if err != nil {
			return nil, err
		}
		return psmath.CallFunction(name, reduced)
	}

	return nil, pserrors.New(pserrors.UnknownName, []string{name}, "not in the function catalogue")
}

func evalAllArgs(ctx *Context, args []*psval.Value) ([]*psval.Value, error) {
	out := make([]*psval.Value, len(args))
	for i, a := range args {
		v, err := evalExpr(ctx, a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func binOp(ctx *Context, args []*psval.Value, fn func(a, b *psval.Value) (*psval.Value, error)) (*psval.Value, error) {
	if len(args) != 2 {
		return nil, pserrors.New(pserrors.ArityMismatch, nil, "expected 2 arguments, got %d", len(args))
	}
	a, err := evalExpr(ctx, args[0])
	if err != nil {
		return nil, err
	}
	b, err := evalExpr(ctx, args[1])
	if err != nil {
		return nil, err
	}
	return fn(a, b)
}

func unOp(ctx *Context, args []*psval.Value, fn func(a *psval.Value) (*psval.Value, error)) (*psval.Value, error) {
	if len(args) != 1 {
		return nil, pserrors.New(pserrors.ArityMismatch, nil, "expected 1 argument, got %d", len(args))
	}
	a, err := evalExpr(ctx, args[0])
	if err != nil {
		return nil, err
	}
	return fn(a)
}

// evalIf is the only macro that short-circuits (spec §4.6/§9): the branch
// not taken is never evaluated, so e.g. `1/0 if false else 42` never
// raises a division error.
func evalIf(ctx *Context, args []*psval.Value) (*psval.Value, error) {
	if len(args) != 3 {
		return nil, pserrors.New(pserrors.ArityMismatch, []string{"if"}, "expected 3 arguments, got %d", len(args))
	}
	then, cond, elseExpr := args[0], args[1], args[2]
	cv, err := evalExpr(ctx, cond)
	if err != nil {
		return nil, err
	}
	if cv.Kind() != psval.KindBool {
		return nil, pserrors.New(pserrors.TypeMismatch, []string{"if"}, "condition is not boolean (%s)", cv.Kind())
	}
	if cv.AsBoolean() {
		return evalExpr(ctx, then)
	}
	return evalExpr(ctx, elseExpr)
}

// evalExtruderValue reads settingName in the named extruder scope. The
// setting-name argument is never itself evaluated as an expression — its
// literal text (string or bareword) names the setting to read, per
// spec §4.4.
func evalExtruderValue(ctx *Context, args []*psval.Value) (*psval.Value, error) {
	if len(args) != 2 {
		return nil, pserrors.New(pserrors.ArityMismatch, []string{"extruderValue"}, "expected 2 arguments, got %d", len(args))
	}
	extVal, err := evalExpr(ctx, args[0])
	if err != nil {
		return nil, err
	}
	scope := scopeNameOf(extVal)
	setting := args[1].GetString()
	ctx.push(scope)
	v, err := ctx.resolve(setting)
	ctx.pop()
	return v, err
}

// scopeNameOf renders an extruder-name argument (int position or string)
// into the scope key used throughout the printer object.
func scopeNameOf(v *psval.Value) string {
	if v.Kind() == psval.KindString {
		return v.GetString()
	}
	return psval.Int(v.AsInteger()).String()
}

// evalExtruderValues returns settingName's value across every extruder
// scope in loader order, excluding #global.
func evalExtruderValues(ctx *Context, args []*psval.Value) (*psval.Value, error) {
	if len(args) != 1 {
		return nil, pserrors.New(pserrors.ArityMismatch, []string{"extruderValues"}, "expected 1 argument, got %d", len(args))
	}
	setting := args[0].GetString()
	var out []*psval.Value
	for _, scope := range ctx.printer.ScopeOrder() {
		if scope == globalScope {
			continue
		}
		ctx.push(scope)
		v, err := ctx.resolve(setting)
		ctx.pop()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return psval.List(out...), nil
}

// evalResolveOrValue reads settingName in the enclosing (current) scope.
func evalResolveOrValue(ctx *Context, args []*psval.Value) (*psval.Value, error) {
	if len(args) != 1 {
		return nil, pserrors.New(pserrors.ArityMismatch, []string{"resolveOrValue"}, "expected 1 argument, got %d", len(args))
	}
	setting := args[0].GetString()
	return ctx.resolve(setting)
}
