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

// Package pserrors defines the closed error taxonomy of the printer
// settings resolver: one Kind enum covering every failure mode the loader,
// parser, and evaluator can raise, plus a List aggregator for the
// non-fatal, per-setting parse errors the loader collects and keeps going
// past. Grounded on cuelang.org/go/cue/errors' Error interface and List
// type.
package pserrors

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/maurerpe-go/psconf/internal/pstoken"
)

// Kind is the closed set of error categories the resolver raises.
type Kind int

const (
	_ Kind = iota
	FileNotFound
	ParseError
	MissingSettings
	BadMetadata
	NoExtruders
	UnknownName
	ArityMismatch
	TypeMismatch
	OutOfRange
	CycleSuspected
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case ParseError:
		return "parse error"
	case MissingSettings:
		return "missing settings"
	case BadMetadata:
		return "bad metadata"
	case NoExtruders:
		return "no extruders"
	case UnknownName:
		return "unknown name"
	case ArityMismatch:
		return "arity mismatch"
	case TypeMismatch:
		return "type mismatch"
	case OutOfRange:
		return "out of range"
	case CycleSuspected:
		return "cycle suspected"
	default:
		return "unknown error"
	}
}

// Error is the common interface every resolver error satisfies: a Kind for
// programmatic dispatch, an optional Path identifying which setting/scope
// it applies to, an optional source Position, and a human-readable message.
type Error interface {
	error
	Kind() Kind
	Path() []string
	Position() pstoken.Position
}

type baseError struct {
	kind Kind
	path []string
	pos  pstoken.Position
	msg  string
}

func (e *baseError) Kind() Kind               { return e.kind }
func (e *baseError) Path() []string            { return e.path }
func (e *baseError) Position() pstoken.Position { return e.pos }

func (e *baseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.kind.String())
	if len(e.path) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.path, "."))
	}
	if e.msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.msg)
	}
	if e.pos.Setting != "" {
		sb.WriteString(" (")
		sb.WriteString(e.pos.String())
		sb.WriteByte(')')
	}
	return sb.String()
}

// New builds a plain Error with no source position.
func New(kind Kind, path []string, format string, args ...any) Error {
	return &baseError{kind: kind, path: path, msg: fmt.Sprintf(format, args...)}
}

// Newf is an alias for New kept for call-site readability where the
// message is clearly a format string.
func Newf(kind Kind, path []string, format string, args ...any) Error {
	return New(kind, path, format, args...)
}

// WithPos attaches a source position to an Error produced by New.
func WithPos(err Error, pos pstoken.Position) Error {
	if b, ok := err.(*baseError); ok {
		cp := *b
		cp.pos = pos
		return &cp
	}
	return err
}

// List aggregates zero or more non-fatal Errors collected while loading or
// evaluating a printer — mirroring cue/errors.List, which lets a caller
// keep processing after a recoverable failure and report everything found
// at the end.
type List struct {
	errs []Error
}

func (l *List) Add(err Error) {
	if err == nil {
		return
	}
	l.errs = append(l.errs, err)
}

func (l *List) Len() int { return len(l.errs) }

func (l *List) Errs() []Error { return l.errs }

// Err returns the List itself as an error if non-empty, else nil — the
// common "accumulate, then return err" pattern.
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

// Error renders every collected error via go.uber.org/multierr (messages
// joined with "; "), the combinator zap's own dependency tree already
// pulls in — rather than hand-rolling the join here.
func (l *List) Error() string {
	plain := make([]error, len(l.errs))
	for i, e := range l.errs {
		plain[i] = e
	}
	return multierr.Combine(plain...).Error()
}
