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

// Package psmath implements the closed, context-free half of the
// expression language's function/operator catalogue: arithmetic,
// comparison, boolean logic, string concatenation, and the math/reduction
// functions (`int`, `math.*`, `max`, `min`, `round`, `sum`). Context-aware
// entries (`if`, `extruderValue`, `extruderValues`, `resolveOrValue`,
// `defaultExtruderPosition`) live in package pseval, since they need the
// evaluation context's scope and extruder stack rather than pre-reduced
// arguments. Grounded on _examples/original_source/src/ps_math.c.
package psmath

import (
	"math"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/psval"
)

func typeMismatch(format string, args ...any) error {
	return pserrors.New(pserrors.TypeMismatch, nil, format, args...)
}

// promoteNumeric checks that a and b are both on the boolean/integer/float
// chain (never null, never string) and reports which of int/float the op
// should be carried out in — float if either operand is float, else int.
func promoteNumeric(a, b *psval.Value) (psval.Kind, error) {
	if a.IsNull() || b.IsNull() {
		return 0, typeMismatch("arithmetic operand is null")
	}
	ka, kb := a.Kind(), b.Kind()
	if !isNumericKind(ka) || !isNumericKind(kb) {
		return 0, typeMismatch("non-numeric operand (%s, %s)", ka, kb)
	}
	if ka == psval.KindFloat || kb == psval.KindFloat {
		return psval.KindFloat, nil
	}
	return psval.KindInt, nil
}

func isNumericKind(k psval.Kind) bool {
	return k == psval.KindBool || k == psval.KindInt || k == psval.KindFloat
}

// Add implements `+`: numeric addition with overflow-to-float fallback, or
// string concatenation when either operand is a string (the other operand
// rendered as JSON text).
func Add(a, b *psval.Value) (*psval.Value, error) {
	if a.IsNull() || b.IsNull() {
		return nil, typeMismatch("+ operand is null")
	}
	if a.Kind() == psval.KindString || b.Kind() == psval.KindString {
		return psval.String(concatText(a) + concatText(b)), nil
	}
	kind, err := promoteNumeric(a, b)
	if err != nil {
		return nil, err
	}
	if kind == psval.KindFloat {
		return psval.Float(a.AsFloat() + b.AsFloat()), nil
	}
	ai, bi := a.AsInteger(), b.AsInteger()
	sum := ai + bi
	if addOverflows(ai, bi, sum) {
		return psval.Float(float64(ai) + float64(bi)), nil
	}
	return psval.Int(sum), nil
}

// concatText renders v as the text to splice into a `+` string
// concatenation: raw for strings, JSON for everything else.
func concatText(v *psval.Value) string {
	if v.Kind() == psval.KindString {
		return v.GetString()
	}
	return v.String()
}

func addOverflows(a, b, sum int64) bool {
	return (a > 0 && b > 0 && sum < 0) || (a < 0 && b < 0 && sum > 0)
}

// Sub implements binary `-`.
func Sub(a, b *psval.Value) (*psval.Value, error) {
	kind, err := promoteNumeric(a, b)
	if err != nil {
		return nil, err
	}
	if kind == psval.KindFloat {
		return psval.Float(a.AsFloat() - b.AsFloat()), nil
	}
	ai, bi := a.AsInteger(), b.AsInteger()
	diff := ai - bi
	if subOverflows(ai, bi, diff) {
		return psval.Float(float64(ai) - float64(bi)), nil
	}
	return psval.Int(diff), nil
}

func subOverflows(a, b, diff int64) bool {
	return (b < 0 && diff < a) || (b > 0 && diff > a)
}

// Neg implements unary `-`.
func Neg(a *psval.Value) (*psval.Value, error) {
	return Sub(zeroLike(a), a)
}

// Pos implements unary `+`: numeric identity, still type-checked.
func Pos(a *psval.Value) (*psval.Value, error) {
	if a.IsNull() || !isNumericKind(a.Kind()) {
		return nil, typeMismatch("unary + operand is not numeric (%s)", a.Kind())
	}
	if a.Kind() == psval.KindFloat {
		return psval.Float(a.AsFloat()), nil
	}
	return psval.Int(a.AsInteger()), nil
}

func zeroLike(a *psval.Value) *psval.Value {
	if a.Kind() == psval.KindFloat {
		return psval.Float(0)
	}
	return psval.Int(0)
}

// Mul implements `*`, with overflow-to-float fallback.
func Mul(a, b *psval.Value) (*psval.Value, error) {
	kind, err := promoteNumeric(a, b)
	if err != nil {
		return nil, err
	}
	if kind == psval.KindFloat {
		return psval.Float(a.AsFloat() * b.AsFloat()), nil
	}
	ai, bi := a.AsInteger(), b.AsInteger()
	prod, ok := mulOverflows(ai, bi)
	if !ok {
		return psval.Float(float64(ai) * float64(bi)), nil
	}
	return psval.Int(prod), nil
}

// mulOverflows returns the int64 product and whether it is exact.
func mulOverflows(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	prod := a * b
	if prod/b != a {
		return 0, false
	}
	return prod, true
}

// Div implements `/`: exact integer division stays integer; an inexact
// integer quotient falls back to true float division (spec §9 treats the
// original library's `a*b`-as-float behavior on that branch as a bug and
// directs us not to reproduce it).
func Div(a, b *psval.Value) (*psval.Value, error) {
	kind, err := promoteNumeric(a, b)
	if err != nil {
		return nil, err
	}
	if kind == psval.KindFloat {
		return psval.Float(a.AsFloat() / b.AsFloat()), nil
	}
	ai, bi := a.AsInteger(), b.AsInteger()
	if bi == 0 {
		return nil, pserrors.New(pserrors.TypeMismatch, nil, "division by zero")
	}
	if ai%bi == 0 {
		return psval.Int(ai / bi), nil
	}
	return psval.Float(float64(ai) / float64(bi)), nil
}

// sqrtInt64Max bounds the base magnitude intExpt will attempt before
// giving up and falling back to float, mirroring the original's
// SQRT_INT64_MAX guard against multiplying out of range mid-computation.
var sqrtInt64Max = int64(math.Sqrt(float64(math.MaxInt64)))

// Expt implements `**`. Negative exponents, a base beyond sqrtInt64Max, or
// any intermediate overflow fall back to float.
func Expt(a, b *psval.Value) (*psval.Value, error) {
	kind, err := promoteNumeric(a, b)
	if err != nil {
		return nil, err
	}
	if kind == psval.KindFloat {
		return psval.Float(math.Pow(a.AsFloat(), b.AsFloat())), nil
	}
	base, exp := a.AsInteger(), b.AsInteger()
	if exp < 0 {
		return psval.Float(math.Pow(float64(base), float64(exp))), nil
	}
	result, ok := intExpt(base, exp)
	if !ok {
		return psval.Float(math.Pow(float64(base), float64(exp))), nil
	}
	return psval.Int(result), nil
}

func intExpt(base, exp int64) (int64, bool) {
	if exp == 0 {
		return 1, true
	}
	if base > sqrtInt64Max || base < -sqrtInt64Max {
		return 0, false
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		next, ok := mulOverflows(result, base)
		if !ok {
			return 0, false
		}
		result = next
	}
	return result, true
}

// cmpValues compares two operands, returning -1, 0 or 1: as strings (byte
// order) if either is a string, else in the promoted numeric kind.
func cmpValues(a, b *psval.Value) (int, error) {
	if a.IsNull() || b.IsNull() {
		return 0, typeMismatch("comparison operand is null")
	}
	if a.Kind() == psval.KindString || b.Kind() == psval.KindString {
		if a.Kind() != psval.KindString || b.Kind() != psval.KindString {
			return 0, typeMismatch("cannot compare string to non-string")
		}
		sa, sb := a.GetString(), b.GetString()
		switch {
		case sa < sb:
			return -1, nil
		case sa > sb:
			return 1, nil
		default:
			return 0, nil
		}
	}
	kind, err := promoteNumeric(a, b)
	if err != nil {
		return 0, err
	}
	if kind == psval.KindFloat {
		fa, fb := a.AsFloat(), b.AsFloat()
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		default:
			return 0, nil
		}
	}
	ia, ib := a.AsInteger(), b.AsInteger()
	switch {
	case ia < ib:
		return -1, nil
	case ia > ib:
		return 1, nil
	default:
		return 0, nil
	}
}

func Lt(a, b *psval.Value) (*psval.Value, error) {
	c, err := cmpValues(a, b)
	if err != nil {
		return nil, err
	}
	return psval.Bool(c < 0), nil
}

func Gt(a, b *psval.Value) (*psval.Value, error) {
	c, err := cmpValues(a, b)
	if err != nil {
		return nil, err
	}
	return psval.Bool(c > 0), nil
}

func Le(a, b *psval.Value) (*psval.Value, error) {
	c, err := cmpValues(a, b)
	if err != nil {
		return nil, err
	}
	return psval.Bool(c <= 0), nil
}

func Ge(a, b *psval.Value) (*psval.Value, error) {
	c, err := cmpValues(a, b)
	if err != nil {
		return nil, err
	}
	return psval.Bool(c >= 0), nil
}

// Eq implements `==`: structural equality via psval.Value.Equal.
func Eq(a, b *psval.Value) (*psval.Value, error) {
	return psval.Bool(a.Equal(b)), nil
}

// Neq implements `!=`.
func Neq(a, b *psval.Value) (*psval.Value, error) {
	return psval.Bool(!a.Equal(b)), nil
}

func asBool(v *psval.Value, op string) (bool, error) {
	if v.IsNull() || v.Kind() != psval.KindBool {
		return false, typeMismatch("%s operand is not boolean (%s)", op, v.Kind())
	}
	return v.AsBoolean(), nil
}

// Not implements unary `not`.
func Not(a *psval.Value) (*psval.Value, error) {
	b, err := asBool(a, "not")
	if err != nil {
		return nil, err
	}
	return psval.Bool(!b), nil
}

// And implements `and`. Both operands are fully evaluated by the caller
// before this runs (no short-circuit), matching spec §4.6.
func And(a, b *psval.Value) (*psval.Value, error) {
	ab, err := asBool(a, "and")
	if err != nil {
		return nil, err
	}
	bb, err := asBool(b, "and")
	if err != nil {
		return nil, err
	}
	return psval.Bool(ab && bb), nil
}

// Or implements `or`, also without short-circuit.
func Or(a, b *psval.Value) (*psval.Value, error) {
	ab, err := asBool(a, "or")
	if err != nil {
		return nil, err
	}
	bb, err := asBool(b, "or")
	if err != nil {
		return nil, err
	}
	return psval.Bool(ab || bb), nil
}
