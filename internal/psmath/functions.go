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
	"math"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/psval"
)

func arityMismatch(name string, got, want int) error {
	return pserrors.New(pserrors.ArityMismatch, []string{name}, "expected %d argument(s), got %d", want, got)
}

// ContextFreeNames lists the function catalogue entries this package
// implements directly (pre-reduced arguments, no context access needed).
// pseval checks its own macros and operators first and dispatches here
// only for names it has not already handled.
var ContextFreeNames = map[string]bool{
	"int":          true,
	"math.ceil":    true,
	"math.floor":   true,
	"math.log":     true,
	"math.radians": true,
	"math.sqrt":    true,
	"math.tan":     true,
	"max":          true,
	"min":          true,
	"round":        true,
	"sum":          true,
}

// CallFunction dispatches a reduced-argument call to one of the
// context-free catalogue entries.
func CallFunction(name string, args []*psval.Value) (*psval.Value, error) {
	switch name {
	case "int":
		return fnInt(args)
	case "math.ceil":
		return float1(name, args, math.Ceil)
	case "math.floor":
		return float1(name, args, math.Floor)
	case "math.log":
		return float1(name, args, math.Log)
	case "math.radians":
		return float1(name, args, func(x float64) float64 { return x * math.Pi / 180 })
	case "math.sqrt":
		return float1(name, args, math.Sqrt)
	case "math.tan":
		return float1(name, args, math.Tan)
	case "max":
		return reduce(name, args, Gt)
	case "min":
		return reduce(name, args, Lt)
	case "round":
		return fnRound(args)
	case "sum":
		return fnSum(args)
	default:
		return nil, pserrors.New(pserrors.UnknownName, []string{name}, "not in the function catalogue")
	}
}

func fnInt(args []*psval.Value) (*psval.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch("int", len(args), 1)
	}
	a := args[0]
	if a.IsNull() || !isNumericKind(a.Kind()) {
		return nil, typeMismatch("int() operand is not numeric (%s)", a.Kind())
	}
	return psval.Int(a.AsInteger()), nil
}

func float1(name string, args []*psval.Value, fn func(float64) float64) (*psval.Value, error) {
	if len(args) != 1 {
		return nil, arityMismatch(name, len(args), 1)
	}
	a := args[0]
	if a.IsNull() || !isNumericKind(a.Kind()) {
		return nil, typeMismatch("%s operand is not numeric (%s)", name, a.Kind())
	}
	return psval.Float(fn(a.AsFloat())), nil
}

// reduce implements max/min: 1 arg (a list) or 2 args (scalars), reducing
// pairwise with keepIfGreater deciding which of the running
// accumulator/candidate to keep (Gt for max, Lt for min).
func reduce(name string, args []*psval.Value, keepIfGreater func(a, b *psval.Value) (*psval.Value, error)) (*psval.Value, error) {
	items, err := reduceOperands(name, args)
	if err != nil {
		return nil, err
	}
	acc := items[0]
	for _, v := range items[1:] {
		keep, err := keepIfGreater(v, acc)
		if err != nil {
			return nil, err
		}
		if keep.AsBoolean() {
			acc = v
		}
	}
	return acc, nil
}

func reduceOperands(name string, args []*psval.Value) ([]*psval.Value, error) {
	switch len(args) {
	case 1:
		if args[0].Kind() != psval.KindList {
			return nil, typeMismatch("%s() single argument must be a list", name)
		}
		items := args[0].Items()
		if len(items) == 0 {
			return nil, typeMismatch("%s() list argument is empty", name)
		}
		return items, nil
	case 2:
		return args, nil
	default:
		return nil, arityMismatch(name, len(args), 2)
	}
}

func fnSum(args []*psval.Value) (*psval.Value, error) {
	if len(args) != 1 || args[0].Kind() != psval.KindList {
		return nil, typeMismatch("sum() requires a single list argument")
	}
	items := args[0].Items()
	if len(items) == 0 {
		return psval.Int(0), nil
	}
	acc := items[0]
	for _, v := range items[1:] {
		var err error
		acc, err = Add(acc, v)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func fnRound(args []*psval.Value) (*psval.Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, arityMismatch("round", len(args), 1)
	}
	a := args[0]
	if a.IsNull() || !isNumericKind(a.Kind()) {
		return nil, typeMismatch("round() operand is not numeric (%s)", a.Kind())
	}
	digits := int64(0)
	if len(args) == 2 {
		if args[1].IsNull() || !isNumericKind(args[1].Kind()) {
			return nil, typeMismatch("round() digit count is not numeric")
		}
		digits = args[1].AsInteger()
	}
	mult := math.Pow(10, float64(digits))
	x := a.AsFloat() * mult
	var rounded float64
	if x >= 0 {
		rounded = math.Floor(x + 0.5)
	} else {
		rounded = math.Ceil(x - 0.5)
	}
	result := rounded / mult
	if a.Kind() == psval.KindInt && digits <= 0 {
		return psval.Int(int64(result)), nil
	}
	return psval.Float(result), nil
}
