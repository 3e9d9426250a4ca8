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

// Package psval implements the tagged-union value model shared by the
// definition loader, the expression parser, and the evaluation engine: a
// nine-kind Value with ordered-map object semantics and indexable list
// semantics, as described by the printer settings data model.
package psval

import "fmt"

// Kind identifies which of the nine Value variants a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindVariable
	KindList
	KindFunction
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindVariable:
		return "variable"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// rank orders kinds for the numeric-promotion rule of §4.6: boolean < integer
// < float < string. Kinds outside that chain rank below boolean and are
// rejected by callers that require a promotable type.
func (k Kind) rank() int {
	switch k {
	case KindBool:
		return 0
	case KindInt:
		return 1
	case KindFloat:
		return 2
	case KindString:
		return 3
	default:
		return -1
	}
}
