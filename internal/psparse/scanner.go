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

// Package psparse tokenizes and parses a setting's raw `value` expression
// string into a psval.Value expression tree, extracting the scope-qualified
// dependency set as it goes. Grounded on the shunting-yard-style parser in
// _examples/original_source/src/ps_eval.c (ParseStr/NextAtom/ParseAtom),
// reworked here as Go recursive descent over the same nine-level
// precedence table; the scanner's rune-stepping shape follows
// cuelang.org/go/cue/scanner.
package psparse

import (
	"strconv"
	"strings"

	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/pstoken"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokStr
	tokBareword
	tokOp
	tokComma
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  pstoken.Pos
}

// scanner steps a byte at a time over an expression string, the way
// cue/scanner's Scanner does over a source file. file converts the byte
// offsets it stamps onto tokens into reportable Positions.
type scanner struct {
	src  string
	off  int
	ch   byte
	file *pstoken.File
}

func newScanner(src string, file *pstoken.File) *scanner {
	s := &scanner{src: src, file: file}
	if len(src) > 0 {
		s.ch = src[0]
	} else {
		s.ch = 0
	}
	return s
}

func (s *scanner) next() {
	s.off++
	if s.off >= len(s.src) {
		s.ch = 0
		return
	}
	s.ch = s.src[s.off]
}

func (s *scanner) peek() byte {
	if s.off+1 >= len(s.src) {
		return 0
	}
	return s.src[s.off+1]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isWordCont(c byte) bool { return isLetter(c) || isDigit(c) || c == '.' }

func (s *scanner) skipSpace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

// scan returns the next token, advancing past it.
func (s *scanner) scan() (token, error) {
	s.skipSpace()
	pos := pstoken.Pos(s.off)
	if s.off >= len(s.src) {
		return token{kind: tokEOF, pos: pos}, nil
	}
	c := s.ch
	switch {
	case isDigit(c):
		return s.scanNumber(pos), nil
	case c == '"' || c == '\'':
		return s.scanString(pos)
	case isLetter(c):
		return s.scanBareword(pos), nil
	}
	switch c {
	case '(':
		s.next()
		return token{kind: tokLParen, text: "(", pos: pos}, nil
	case ')':
		s.next()
		return token{kind: tokRParen, text: ")", pos: pos}, nil
	case ',':
		s.next()
		return token{kind: tokComma, text: ",", pos: pos}, nil
	case '*':
		if s.peek() == '*' {
			s.next()
			s.next()
			return token{kind: tokOp, text: "**", pos: pos}, nil
		}
		s.next()
		return token{kind: tokOp, text: "*", pos: pos}, nil
	case '/', '+', '-':
		s.next()
		return token{kind: tokOp, text: string(c), pos: pos}, nil
	case '<':
		if s.peek() == '=' {
			s.next()
			s.next()
			return token{kind: tokOp, text: "<=", pos: pos}, nil
		}
		s.next()
		return token{kind: tokOp, text: "<", pos: pos}, nil
	case '>':
		if s.peek() == '=' {
			s.next()
			s.next()
			return token{kind: tokOp, text: ">=", pos: pos}, nil
		}
		s.next()
		return token{kind: tokOp, text: ">", pos: pos}, nil
	case '=':
		if s.peek() == '=' {
			s.next()
			s.next()
			return token{kind: tokOp, text: "==", pos: pos}, nil
		}
		return token{}, s.errf(pos, "unexpected '='")
	case '!':
		if s.peek() == '=' {
			s.next()
			s.next()
			return token{kind: tokOp, text: "!=", pos: pos}, nil
		}
		return token{}, s.errf(pos, "unexpected '!'")
	default:
		return token{}, s.errf(pos, "unexpected character %q", c)
	}
}

func (s *scanner) scanNumber(pos pstoken.Pos) token {
	start := s.off
	for s.off < len(s.src) && isWordCont(s.ch) {
		s.next()
	}
	return token{kind: tokNum, text: s.src[start:s.off], pos: pos}
}

func (s *scanner) scanBareword(pos pstoken.Pos) token {
	start := s.off
	for s.off < len(s.src) && isWordCont(s.ch) {
		s.next()
	}
	return token{kind: tokBareword, text: s.src[start:s.off], pos: pos}
}

func (s *scanner) scanString(pos pstoken.Pos) (token, error) {
	quote := s.ch
	s.next()
	var sb strings.Builder
	for {
		if s.off >= len(s.src) {
			return token{}, s.errf(pos, "unterminated string literal")
		}
		c := s.ch
		if c == quote {
			s.next()
			break
		}
		if c == '\\' {
			s.next()
			if s.off >= len(s.src) {
				return token{}, s.errf(pos, "unterminated string literal")
			}
			sb.WriteByte(unescape(s.ch))
			s.next()
			continue
		}
		sb.WriteByte(c)
		s.next()
	}
	return token{kind: tokStr, text: sb.String(), pos: pos}, nil
}

// unescape maps the five recognized backslash escapes; any other escaped
// character is kept verbatim, matching the original parser's permissive
// handling of unknown escapes (spec §9).
func unescape(c byte) byte {
	switch c {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return c
	}
}

func (s *scanner) errf(pos pstoken.Pos, format string, args ...any) error {
	return pserrors.WithPos(pserrors.New(pserrors.ParseError, nil, format, args...), s.file.Position(pos))
}

// parseNumberLiteral parses a numeric token text: signed int64 first,
// falling back to float64 when that fails or a '.', 'e', 'E' is present.
func parseNumberLiteral(text string) (isFloat bool, i int64, f float64, err error) {
	if strings.ContainsAny(text, ".eE") {
		f, err = strconv.ParseFloat(text, 64)
		return true, 0, f, err
	}
	i, err = strconv.ParseInt(text, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil {
			return false, 0, 0, err
		}
		return true, 0, f, nil
	}
	return false, i, 0, nil
}
