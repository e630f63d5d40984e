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
package core

import (
	"testing"

	"lispkit/pkg/source"
)

func num(n int64) Term {
	return NewNumber(n, source.NonePos)
}

func TestEval_SaturatingSub(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{2, 4, 0},
		{4, 2, 2},
		{5, 5, 0},
		{0, 0, 0},
	}
	for _, c := range cases {
		got, err := Eval(&Apply{Op: &Sub{}, Args: []Term{num(c.a), num(c.b)}})
		if err != nil {
			t.Fatalf("(- %d %d): unexpected error: %v", c.a, c.b, err)
		}
		n, ok := got.(*Number)
		if !ok {
			t.Fatalf("(- %d %d): expected Number, got %T", c.a, c.b, got)
		}
		if n.N.Int64() != c.want {
			t.Errorf("(- %d %d) = %s, want %d", c.a, c.b, n.N, c.want)
		}
	}
}

func TestEval_DivRem(t *testing.T) {
	div, err := Eval(&Apply{Op: &Div{}, Args: []Term{num(111), num(23)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if div.(*Number).N.Int64() != 4 {
		t.Errorf("(/ 111 23) = %s, want 4", div.(*Number).N)
	}

	rem, err := Eval(&Apply{Op: &Rem{}, Args: []Term{num(111), num(23)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rem.(*Number).N.Int64() != 19 {
		t.Errorf("(%% 111 23) = %s, want 19", rem.(*Number).N)
	}
}

func TestEval_DivByZero(t *testing.T) {
	if _, err := Eval(&Apply{Op: &Div{}, Args: []Term{num(1), num(0)}}); err == nil {
		t.Fatal("expected an error dividing by zero")
	}
	if _, err := Eval(&Apply{Op: &Rem{}, Args: []Term{num(1), num(0)}}); err == nil {
		t.Fatal("expected an error taking remainder of zero")
	}
}

func TestEval_CarConsAdd(t *testing.T) {
	// (+ 2 (car (cons 8 3))) -> 10
	expr := &Apply{
		Op: &Add{},
		Args: []Term{
			num(2),
			&Apply{Op: &Car{}, Args: []Term{&Cons{Head: num(8), Tail: num(3)}}},
		},
	}
	got, err := Eval(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(*Number).N.Int64() != 10 {
		t.Errorf("got %s, want 10", got.(*Number).N)
	}
}

func TestEval_SubstitutionUnderQuote(t *testing.T) {
	// ((lambda (n) (quote (+ 1 n))) 4) -- reduces the lambda application
	// (substituting under the returned Quote) but must not eval the quoted
	// body.
	lam := &Lambda{
		Arity: 1,
		Body:  &Quote{Term: &Apply{Op: &Add{}, Args: []Term{num(1), &Variable{Depth: 0, Slot: 0}}}},
	}
	got, err := Eval(&Apply{Op: lam, Args: []Term{num(4)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, ok := got.(*Quote)
	if !ok {
		t.Fatalf("expected a Quote, got %T", got)
	}
	want := &Apply{Op: &Add{}, Args: []Term{num(1), num(4)}}
	if !Equiv(q.Term, want) {
		t.Errorf("got %s, want %s", Print(q.Term), Print(want))
	}
}

func TestEval_EvalOfQuote(t *testing.T) {
	// (eval ((lambda (n) (quote (+ 1 n))) 4)) -> 5
	lam := &Lambda{
		Arity: 1,
		Body:  &Quote{Term: &Apply{Op: &Add{}, Args: []Term{num(1), &Variable{Depth: 0, Slot: 0}}}},
	}
	inner := &Apply{Op: lam, Args: []Term{num(4)}}
	got, err := Eval(&Apply{Op: &Eval{}, Args: []Term{inner}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(*Number).N.Int64() != 5 {
		t.Errorf("got %s, want 5", got.(*Number).N)
	}
}

func TestEval_AlphaEquivalenceViaDeBruijn(t *testing.T) {
	// (eq (lambda (n) (lambda (n) n)) (lambda (m) (lambda (a) a))) -> true
	a := &Lambda{Arity: 1, Body: &Lambda{Arity: 1, Body: &Variable{Depth: 0, Slot: 0}}}
	b := &Lambda{Arity: 1, Body: &Lambda{Arity: 1, Body: &Variable{Depth: 0, Slot: 0}}}
	got, err := Eval(&Apply{Op: &Eq{}, Args: []Term{a, b}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.(*Bool).Value {
		t.Error("expected alpha-equivalent lambdas to be eq")
	}
}

func TestEval_NonStrictIf(t *testing.T) {
	// The untaken branch of If must not be evaluated: a division by zero in
	// the untaken branch must not surface as an error.
	expr := &If{
		Cond: &Bool{Value: true},
		Then: num(1),
		Else: &Apply{Op: &Div{}, Args: []Term{num(1), num(0)}},
	}
	got, err := Eval(expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(*Number).N.Int64() != 1 {
		t.Errorf("got %s, want 1", got.(*Number).N)
	}
}

func TestEval_ArityMismatch(t *testing.T) {
	lam := &Lambda{Arity: 2, Body: &Variable{Depth: 0, Slot: 0}}
	if _, err := Eval(&Apply{Op: lam, Args: []Term{num(1)}}); err == nil {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestEval_CarOfNonCons(t *testing.T) {
	if _, err := Eval(&Apply{Op: &Car{}, Args: []Term{num(1)}}); err == nil {
		t.Fatal("expected a type error for car of a non-cons")
	}
}

func TestEval_IfConditionNotBoolean(t *testing.T) {
	if _, err := Eval(&If{Cond: num(1), Then: num(1), Else: num(2)}); err == nil {
		t.Fatal("expected a type error for a non-boolean if condition")
	}
}
