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

import (
	"github.com/maurerpe-go/psconf/internal/pserrors"
	"github.com/maurerpe-go/psconf/internal/pstoken"
	"github.com/maurerpe-go/psconf/internal/psval"
)

// Deps is the scope-qualified dependency set a parse populates:
// scopeName -> settingName -> true.
type Deps map[string]map[string]bool

func (d Deps) add(scope, setting string) {
	m, ok := d[scope]
	if !ok {
		m = make(map[string]bool)
		d[scope] = m
	}
	m[setting] = true
}

// Result is the output of parsing one setting's raw expression string.
type Result struct {
	Expr *psval.Value
	Deps Deps
}

type parser struct {
	sc             *scanner
	tok            token
	deps           Deps
	extruderScopes []string
	currentScope   string
	suppress       int
	file           *pstoken.File
}

// Parse tokenizes and parses raw as an expression, returning its tree and
// the scope-qualified dependency set it reads. allScopes is the printer's
// full scope list (e.g. ["#global", "0", "1"]); currentScope is the scope
// the expression belongs to and decides where its dependencies are
// recorded; name is the setting it belongs to, used only to label
// positions in any error this parse raises.
func Parse(raw string, allScopes []string, currentScope, name string) (*Result, error) {
	var extruders []string
	for _, s := range allScopes {
		if s != "#global" {
			extruders = append(extruders, s)
		}
	}
	file := pstoken.NewFile(name)
	p := &parser{
		sc:             newScanner(raw, file),
		deps:           make(Deps),
		extruderScopes: extruders,
		currentScope:   currentScope,
		file:           file,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errf(p.tok.pos, pserrors.ParseError, nil, "unexpected trailing token %q", p.tok.text)
	}
	return &Result{Expr: expr, Deps: p.deps}, nil
}

// errf builds an Error carrying the Position pos converts to via the
// parser's shared file, the way scanner.errf attaches position to
// tokenizer-level errors.
func (p *parser) errf(pos pstoken.Pos, kind pserrors.Kind, path []string, format string, args ...any) error {
	return pserrors.WithPos(pserrors.New(kind, path, format, args...), p.file.Position(pos))
}

func (p *parser) advance() error {
	t, err := p.sc.scan()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) isOp(texts ...string) bool {
	if p.tok.kind != tokOp && p.tok.kind != tokBareword {
		return false
	}
	for _, t := range texts {
		if p.tok.text == t {
			return true
		}
	}
	return false
}

// parseTernary implements IFE: `a if c else b` is right-associative and
// lowers to the three-argument function if(a, c, b).
func (p *parser) parseTernary() (*psval.Value, error) {
	then, err := p.parseLogic()
	if err != nil {
		return nil, err
	}
	if !p.isOp("if") {
		return then, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseLogic()
	if err != nil {
		return nil, err
	}
	if !p.isOp("else") {
		return nil, p.errf(p.tok.pos, pserrors.ParseError, nil, "expected 'else' in ternary expression")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return psval.Function("if", then, cond, elseExpr), nil
}

// parseLogic implements LOG: `or`/`and`, left-associative.
func (p *parser) parseLogic() (*psval.Value, error) {
	left, err := p.parseUnaryLogic()
	if err != nil {
		return nil, err
	}
	for p.isOp("or", "and") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnaryLogic()
		if err != nil {
			return nil, err
		}
		left = psval.Function(op, left, right)
	}
	return left, nil
}

// parseUnaryLogic implements ULG: prefix `not`.
func (p *parser) parseUnaryLogic() (*psval.Value, error) {
	if p.isOp("not") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseUnaryLogic()
		if err != nil {
			return nil, err
		}
		return psval.Function("not", v), nil
	}
	return p.parseCompare()
}

// parseCompare implements CMP: `< > <= >= == !=`, left-associative.
func (p *parser) parseCompare() (*psval.Value, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for p.isOp("<", ">", "<=", ">=", "==", "!=") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		left = psval.Function(op, left, right)
	}
	return left, nil
}

// parseAdd implements ADD: binary `+ -`, left-associative.
func (p *parser) parseAdd() (*psval.Value, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = psval.Function(op, left, right)
	}
	return left, nil
}

// parseMul implements MUL: `* /`, left-associative.
func (p *parser) parseMul() (*psval.Value, error) {
	left, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		left = psval.Function(op, left, right)
	}
	return left, nil
}

// parseExp implements EXP: `**`, right-associative.
func (p *parser) parseExp() (*psval.Value, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.isOp("**") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		return psval.Function("**", left, right), nil
	}
	return left, nil
}

// parseUnary implements UNA: prefix `+ -`.
func (p *parser) parseUnary() (*psval.Value, error) {
	if p.isOp("+", "-") {
		op := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			return psval.Function("neg", v), nil
		}
		return psval.Function("pos", v), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (*psval.Value, error) {
	switch p.tok.kind {
	case tokNum:
		text := p.tok.text
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		isFloat, i, f, err := parseNumberLiteral(text)
		if err != nil {
			return nil, p.errf(pos, pserrors.ParseError, nil, "invalid numeric literal %q", text)
		}
		if isFloat {
			return psval.Float(f), nil
		}
		return psval.Int(i), nil
	case tokStr:
		text := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return psval.String(text), nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		v, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errf(p.tok.pos, pserrors.ParseError, nil, "expected ')'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return v, nil
	case tokBareword:
		return p.parseBareword()
	default:
		return nil, p.errf(p.tok.pos, pserrors.ParseError, nil, "unexpected token %q", p.tok.text)
	}
}

func (p *parser) parseBareword() (*psval.Value, error) {
	name := p.tok.text
	pos := p.tok.pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch name {
	case "null":
		return psval.Null(), nil
	case "true":
		return psval.Bool(true), nil
	case "false":
		return psval.Bool(false), nil
	}
	if p.tok.kind == tokLParen {
		return p.parseCall(name, pos)
	}
	p.recordDefaultVar(name)
	return psval.Variable(name), nil
}

func (p *parser) parseCall(name string, pos pstoken.Pos) (*psval.Value, error) {
	ar, ok := functionCatalog[name]
	if !ok {
		return nil, p.errf(pos, pserrors.UnknownName, []string{name}, "unknown function or macro")
	}
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []*psval.Value
	if p.tok.kind != tokRParen {
		for {
			suppress := scopeCrossingMacros[name] || currentScopeMacros[name]
			if suppress {
				p.suppress++
			}
			arg, err := p.parseTernary()
			if suppress {
				p.suppress--
			}
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok.kind != tokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if p.tok.kind != tokRParen {
		return nil, p.errf(p.tok.pos, pserrors.ParseError, nil, "expected ')' closing call to %q", name)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if len(args) < ar.min || len(args) > ar.max {
		return nil, p.errf(pos, pserrors.ArityMismatch, []string{name}, "expected %d-%d argument(s), got %d", ar.min, ar.max, len(args))
	}
	if len(args) > 0 {
		last := args[len(args)-1]
		if scopeCrossingMacros[name] {
			p.recordCrossScopeVar(last.GetString())
		} else if currentScopeMacros[name] {
			p.recordCurrentScopeVar(last.GetString())
		}
	}
	return psval.Function(name, args...), nil
}

// recordDefaultVar implements §4.3's default (outside-any-macro) rule:
// parsing in #global records the read against every extruder scope
// (conservative, since an extruder's lookup can fall back to #global);
// parsing within an extruder scope records the read against that scope
// alone.
func (p *parser) recordDefaultVar(name string) {
	if p.suppress > 0 {
		return
	}
	if p.currentScope == "#global" {
		for _, s := range p.extruderScopes {
			p.deps.add(s, name)
		}
		return
	}
	p.deps.add(p.currentScope, name)
}

// recordCrossScopeVar implements extruderValue/extruderValues' rule: the
// setting name becomes a dependent in every extruder scope, unconditional
// on the enclosing scope.
func (p *parser) recordCrossScopeVar(name string) {
	if name == "" {
		return
	}
	for _, s := range p.extruderScopes {
		p.deps.add(s, name)
	}
}

// recordCurrentScopeVar implements resolveOrValue's rule: the setting name
// is a dependent only in the enclosing scope, even if that is #global.
func (p *parser) recordCurrentScopeVar(name string) {
	if name == "" {
		return
	}
	p.deps.add(p.currentScope, name)
}
