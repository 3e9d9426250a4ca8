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

package psparse

// arity describes the accepted argument-count range [min, max] for a
// catalogue entry invoked via call syntax `name(...)`. Binary/unary
// operators and the `if...else` ternary are parsed through dedicated
// grammar productions and never consult this table; it exists for named
// function/macro calls only, where spec §4.3 requires the arity check to
// happen at parse time.
type arity struct{ min, max int }

// functionCatalog covers both the context-free functions (psmath) and the
// context-aware macros (pseval); psparse only needs their arities to
// validate call syntax — dispatch happens downstream.
var functionCatalog = map[string]arity{
	"defaultExtruderPosition": {0, 0},
	"int":                     {1, 1},
	"math.ceil":               {1, 1},
	"math.floor":              {1, 1},
	"math.log":                {1, 1},
	"math.radians":            {1, 1},
	"math.sqrt":               {1, 1},
	"math.tan":                {1, 1},
	"max":                     {1, 2},
	"min":                     {1, 2},
	"round":                   {1, 2},
	"sum":                     {1, 1},
	"extruderValue":           {2, 2},
	"extruderValues":          {1, 1},
	"resolveOrValue":          {1, 1},
	"if":                      {3, 3},
}

// scopeCrossingMacros record their last argument's string content as a
// dependency under a scope rule different from "the enclosing scope" — see
// §4.4. The argument is not re-parsed as an expression.
var scopeCrossingMacros = map[string]bool{
	"extruderValue":  true,
	"extruderValues": true,
}

var currentScopeMacros = map[string]bool{
	"resolveOrValue": true,
}
