// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"math/big"

	"lispkit/pkg/meta"
	"lispkit/pkg/source"
)

// reservedNames cannot be bound by def, defrec, or lambda (spec.md §6). Note
// that this list is narrower than the full keyword set: e.g. "car", "eq",
// "cons", and "list" are absent and are accepted as bound names, but a
// reference to one of them still parses as the primitive atom or reserved
// form, not as the bound name.
var reservedNames = map[string]bool{
	"if": true, "+": true, "-": true, "eval": true, "quote": true,
	"lambda": true, "import": true, "export": true, "assert": true,
	"print": true, "println": true, "for": true, "loop": true,
	"do": true, "while": true,
}

// Parser parses one source file's statement stream.
type Parser struct {
	file *source.File
	lex  *lexer
}

// New constructs a Parser over the given file path and UTF-8 contents.
func New(path, contents string) *Parser {
	file := source.NewFile(path, contents)
	return &Parser{file: file, lex: newLexer(file)}
}

// File returns the source.File backing this parser's positions.
func (p *Parser) File() *source.File {
	return p.file
}

func (p *Parser) pos(span source.Span) source.Pos {
	return source.NewPos(p.file, span)
}

func (p *Parser) errorf(span source.Span, format string, args ...any) error {
	return source.NewErrorf(source.ErrParse, p.pos(span), format, args...)
}

// ParseProgram parses every statement in the file.
func (p *Parser) ParseProgram() ([]meta.Statement, error) {
	var stmts []meta.Statement
	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return stmts, nil
		}
		stmts = append(stmts, stmt)
	}
}

// parseStatement parses one top-level statement, or returns (nil, nil) at
// end of file.
func (p *Parser) parseStatement() (meta.Statement, error) {
	t, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch t.kind {
	case tokEOF:
		return nil, nil
	case tokRParen:
		return nil, p.errorf(t.span, "unexpected end-of-list")
	case tokLParen:
		nt, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if nt.kind == tokSymbol {
			switch nt.text {
			case "def":
				p.lex.next()
				return p.parseDef(t.span)
			case "defrec":
				p.lex.next()
				return p.parseDefRec(t.span)
			case "import":
				p.lex.next()
				return p.parseImport(t.span)
			case "export":
				p.lex.next()
				return p.parseExport(t.span)
			case "assert":
				p.lex.next()
				return p.parseAssert(t.span)
			}
		}
		term, err := p.parseParenForm(t.span)
		if err != nil {
			return nil, err
		}
		return &meta.TermStmt{Expr: term, Pos: term.Position()}, nil
	case tokString:
		return nil, p.errorf(t.span, "unexpected string literal")
	default:
		term, err := p.atomTerm(t)
		if err != nil {
			return nil, err
		}
		return &meta.TermStmt{Expr: term, Pos: term.Position()}, nil
	}
}

func (p *Parser) expectRParen(openSpan source.Span) (source.Span, error) {
	t, err := p.lex.next()
	if err != nil {
		return source.Span{}, err
	}
	if t.kind == tokEOF {
		return source.Span{}, p.errorf(openSpan, "unexpected end-of-file: unmatched '('")
	}
	if t.kind != tokRParen {
		return source.Span{}, p.errorf(t.span, "expected ')'")
	}
	return t.span, nil
}

func (p *Parser) expectName(context string) (string, source.Span, error) {
	t, err := p.lex.next()
	if err != nil {
		return "", source.Span{}, err
	}
	if t.kind != tokSymbol {
		return "", source.Span{}, p.errorf(t.span, "expected a name in %s", context)
	}
	return t.text, t.span, nil
}

func (p *Parser) checkNotReserved(name string, span source.Span) error {
	if reservedNames[name] {
		return p.errorf(span, "reserved name in define position: %s", name)
	}
	return nil
}

// parseDef parses the body of (def name term) after "def" has been
// consumed.
func (p *Parser) parseDef(openSpan source.Span) (meta.Statement, error) {
	name, nameSpan, err := p.expectName("def")
	if err != nil {
		return nil, err
	}
	if err := p.checkNotReserved(name, nameSpan); err != nil {
		return nil, err
	}
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Def{Name: name, Term: term, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

// parseDefRec parses (defrec name (args...) body ...) -- one or more
// unparenthesized name/argument-list/body triples -- after "defrec" has been
// consumed.
func (p *Parser) parseDefRec(openSpan source.Span) (meta.Statement, error) {
	var funcs []meta.RecFunc
	for {
		nt, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if nt.kind == tokRParen {
			break
		}
		f, err := p.parseRecFunc()
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, f)
	}
	if len(funcs) == 0 {
		return nil, p.errorf(openSpan, "defrec requires at least one function")
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.DefRec{Funcs: funcs, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseRecFunc() (meta.RecFunc, error) {
	fstart, err := p.lex.next()
	if err != nil {
		return meta.RecFunc{}, err
	}
	if fstart.kind != tokSymbol {
		return meta.RecFunc{}, p.errorf(fstart.span, "expected a function name in defrec")
	}
	if err := p.checkNotReserved(fstart.text, fstart.span); err != nil {
		return meta.RecFunc{}, err
	}
	argNames, err := p.parseArgNameList()
	if err != nil {
		return meta.RecFunc{}, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return meta.RecFunc{}, err
	}
	return meta.RecFunc{Name: fstart.text, ArgNames: argNames, Body: body, Pos: p.pos(fstart.span)}, nil
}

// parseArgNameList parses "(" name* ")", validating each name is not
// reserved.
func (p *Parser) parseArgNameList() ([]string, error) {
	open, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokLParen {
		return nil, p.errorf(open.span, "expected '(' to begin an argument list")
	}
	var names []string
	for {
		t, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if t.kind == tokRParen {
			return names, nil
		}
		if t.kind != tokSymbol {
			return nil, p.errorf(t.span, "expected an argument name")
		}
		if err := p.checkNotReserved(t.text, t.span); err != nil {
			return nil, err
		}
		names = append(names, t.text)
	}
}

func (p *Parser) parseImport(openSpan source.Span) (meta.Statement, error) {
	var paths []string
	for {
		nt, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if nt.kind == tokRParen {
			break
		}
		t, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		if t.kind != tokString {
			return nil, p.errorf(t.span, "import expects a string path")
		}
		paths = append(paths, t.text)
	}
	if len(paths) == 0 {
		return nil, p.errorf(openSpan, "import requires at least one path")
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Import{Paths: paths, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseExport(openSpan source.Span) (meta.Statement, error) {
	var items []meta.ExportItem
	for {
		nt, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if nt.kind == tokRParen {
			break
		}
		t, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		switch t.kind {
		case tokString:
			items = append(items, meta.ExportItem{Path: t.text, IsPath: true})
		case tokSymbol:
			items = append(items, meta.ExportItem{Name: t.text})
		default:
			return nil, p.errorf(t.span, "export expects a name or a string path")
		}
	}
	if len(items) == 0 {
		return nil, p.errorf(openSpan, "export requires at least one item")
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Export{Items: items, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseAssert(openSpan source.Span) (meta.Statement, error) {
	term, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Assert{Expr: term, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

// parseTerm parses one term, reading its own leading token.
func (p *Parser) parseTerm() (meta.Term, error) {
	t, err := p.lex.next()
	if err != nil {
		return nil, err
	}
	switch t.kind {
	case tokLParen:
		return p.parseParenForm(t.span)
	case tokRParen:
		return nil, p.errorf(t.span, "unexpected end-of-list")
	case tokEOF:
		return nil, p.errorf(t.span, "unexpected end-of-file: missing operand")
	case tokString:
		return nil, p.errorf(t.span, "unexpected string literal")
	default:
		return p.atomTerm(t)
	}
}

// parseParenForm parses whatever follows an already-consumed "(": one of
// the reserved term forms (lambda, cons, list, quote, if), or a generic
// application.
func (p *Parser) parseParenForm(openSpan source.Span) (meta.Term, error) {
	nt, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if nt.kind == tokSymbol {
		switch nt.text {
		case "lambda":
			p.lex.next()
			return p.parseLambda(openSpan)
		case "cons":
			p.lex.next()
			return p.parseCons(openSpan)
		case "list":
			p.lex.next()
			return p.parseList(openSpan)
		case "quote":
			p.lex.next()
			return p.parseQuote(openSpan)
		case "if":
			p.lex.next()
			return p.parseIf(openSpan)
		}
	}
	return p.parseApply(openSpan)
}

func (p *Parser) parseLambda(openSpan source.Span) (meta.Term, error) {
	argNames, err := p.parseArgNameList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Lambda{ArgNames: argNames, Body: body, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseCons(openSpan source.Span) (meta.Term, error) {
	head, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	tail, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Cons{Head: head, Tail: tail, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseList(openSpan source.Span) (meta.Term, error) {
	var items []meta.Term
	for {
		nt, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if nt.kind == tokRParen {
			break
		}
		item, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.List{Items: items, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseQuote(openSpan source.Span) (meta.Term, error) {
	inner, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Quote{Term: inner, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseIf(openSpan source.Span) (meta.Term, error) {
	cond, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	then, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	els, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.If{Cond: cond, Then: then, Else: els, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) parseApply(openSpan source.Span) (meta.Term, error) {
	head, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	var args []meta.Term
	for {
		nt, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if nt.kind == tokRParen {
			break
		}
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	closeSpan, err := p.expectRParen(openSpan)
	if err != nil {
		return nil, err
	}
	return &meta.Apply{Op: head, Args: args, Pos: p.spanPos(openSpan, closeSpan)}, nil
}

func (p *Parser) spanPos(openSpan, closeSpan source.Span) source.Pos {
	return p.pos(openSpan.Cover(closeSpan))
}

// atomTerm classifies an already-consumed symbol token as the atom
// production of spec.md §6.
func (p *Parser) atomTerm(t token) (meta.Term, error) {
	pos := p.pos(t.span)
	switch t.text {
	case "nil":
		return &meta.Nil{Pos: pos}, nil
	case "true":
		return &meta.Bool{Value: true, Pos: pos}, nil
	case "false":
		return &meta.Bool{Value: false, Pos: pos}, nil
	case "car":
		return &meta.Car{Pos: pos}, nil
	case "cdr":
		return &meta.Cdr{Pos: pos}, nil
	case "eval":
		return &meta.Eval{Pos: pos}, nil
	case "eq":
		return &meta.Eq{Pos: pos}, nil
	case "+":
		return &meta.Add{Pos: pos}, nil
	case "-":
		return &meta.Sub{Pos: pos}, nil
	case "*":
		return &meta.Mul{Pos: pos}, nil
	case "/":
		return &meta.Div{Pos: pos}, nil
	case "%":
		return &meta.Rem{Pos: pos}, nil
	}
	if isAllDigits(t.text) {
		n := new(big.Int)
		n.SetString(t.text, 10)
		return &meta.Number{N: n, Pos: pos}, nil
	}
	if len(t.text) > 0 && t.text[0] >= '0' && t.text[0] <= '9' {
		return nil, p.errorf(t.span, "identifiers may not start with a digit: %s", t.text)
	}
	return &meta.Variable{Name: t.text, Pos: pos}, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
