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
	"testing"

	"lispkit/pkg/source"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	lex := newLexer(source.NewFile("<test>", src))
	var toks []token
	for {
		tok, err := lex.next()
		if err != nil {
			t.Fatalf("unexpected lex error: %v", err)
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks
		}
	}
}

func TestLexer_ParensAndSymbols(t *testing.T) {
	toks := lexAll(t, "(foo bar)")
	kinds := []tokenKind{tokLParen, tokSymbol, tokSymbol, tokRParen, tokEOF}
	if len(toks) != len(kinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(kinds))
	}
	for i, k := range kinds {
		if toks[i].kind != k {
			t.Errorf("token %d: got kind %v, want %v", i, toks[i].kind, k)
		}
	}
	if toks[1].text != "foo" || toks[2].text != "bar" {
		t.Errorf("got symbols %q, %q", toks[1].text, toks[2].text)
	}
}

func TestLexer_LineCommentsAreSkipped(t *testing.T) {
	toks := lexAll(t, "foo ; this is a comment\nbar")
	if len(toks) != 3 || toks[0].text != "foo" || toks[1].text != "bar" || toks[2].kind != tokEOF {
		t.Errorf("got %#v", toks)
	}
}

func TestLexer_StringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nb\tc\\d\"e"`)
	if len(toks) != 2 || toks[0].kind != tokString {
		t.Fatalf("got %#v", toks)
	}
	want := "a\nb\tc\\d\"e"
	if toks[0].text != want {
		t.Errorf("got %q, want %q", toks[0].text, want)
	}
}

func TestLexer_UnterminatedStringIsAnError(t *testing.T) {
	lex := newLexer(source.NewFile("<test>", `"abc`))
	if _, err := lex.next(); err == nil {
		t.Fatal("expected an error for an unterminated string")
	}
}

func TestLexer_UnknownEscapeIsAnError(t *testing.T) {
	lex := newLexer(source.NewFile("<test>", `"a\qb"`))
	if _, err := lex.next(); err == nil {
		t.Fatal("expected an error for an unknown escape sequence")
	}
}

func TestLexer_SymbolsStopAtDelimiters(t *testing.T) {
	toks := lexAll(t, "(+ -)")
	if toks[1].text != "+" || toks[2].text != "-" {
		t.Errorf("got %#v", toks)
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lex := newLexer(source.NewFile("<test>", "foo bar"))
	p1, err := lex.peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := lex.peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1.text != p2.text || p1.text != "foo" {
		t.Errorf("peek should be idempotent, got %q then %q", p1.text, p2.text)
	}
	n, err := lex.next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.text != "foo" {
		t.Errorf("next after peek should still return \"foo\", got %q", n.text)
	}
}
