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

// Package pstoken tracks source positions within a single setting's raw
// expression string, the way cue/token tracks positions within a CUE file —
// scaled down to the one-line granularity an expression string needs.
package pstoken

import "fmt"

// Pos is a zero-based byte offset into an expression string.
type Pos int

const NoPos Pos = 0

// Position is the human-facing rendering of a Pos: which setting's
// expression it came from, and the column within it (expressions are
// always a single line, so there is no line number).
type Position struct {
	Setting string
	Column  int
}

func (p Position) String() string {
	if p.Setting == "" {
		return fmt.Sprintf("col %d", p.Column)
	}
	return fmt.Sprintf("%s:%d", p.Setting, p.Column)
}

// File associates raw Pos offsets within one setting's expression text
// with Position values for error reporting.
type File struct {
	setting string
}

func NewFile(setting string) *File {
	return &File{setting: setting}
}

func (f *File) Position(p Pos) Position {
	return Position{Setting: f.setting, Column: int(p)}
}
