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

// Package core implements the untyped lambda calculus the meta language is
// lowered to: De Bruijn variables, quotation, eval, primitive arithmetic on
// arbitrary-precision naturals, cons cells and booleans, plus the reducer
// that evaluates it.
package core

import (
	"math/big"

	"lispkit/pkg/source"
)

// Term is the closed sum type of the core language. Every variant carries an
// optional source position. Terms produced by desugaring during lowering
// carry the position of the surface form they were generated from; values
// returned by Eval, and terms built without any source, report
// source.NonePos.
type Term interface {
	// Position returns this node's source position, or source.NonePos if
	// it has none.
	Position() source.Pos
	// core is a marker method restricting Term implementations to this
	// package.
	core()
}

// Apply represents an operator applied to an ordered sequence of operands.
type Apply struct {
	Op   Term
	Args []Term
	Pos  source.Pos
}

// Lambda is an anonymous n-ary abstraction. Its body refers to the n
// positional slots bound by this lambda via Variable{Depth: 0, Slot: i}.
type Lambda struct {
	Arity int
	Body  Term
	Pos   source.Pos
}

// Variable is a two-dimensional De Bruijn reference. Depth counts enclosing
// Lambdas crossed to reach the binder (0 = innermost); Slot selects one of
// that binder's Arity positional arguments.
type Variable struct {
	Depth int
	Slot  int
	Pos   source.Pos
}

// Quote suspends a term as an opaque value; its content is never reduced
// until (eval <quote>) is applied to it.
type Quote struct {
	Term Term
	Pos  source.Pos
}

// Cons is a list cell.
type Cons struct {
	Head Term
	Tail Term
	Pos  source.Pos
}

// Nil is the empty list.
type Nil struct {
	Pos source.Pos
}

// Number is an arbitrary-precision non-negative integer. N is never nil and
// never negative; Sub saturates at zero rather than going negative.
type Number struct {
	N   *big.Int
	Pos source.Pos
}

// NewNumber constructs a Number from an int64, which must be non-negative.
func NewNumber(n int64, pos source.Pos) *Number {
	return &Number{N: big.NewInt(n), Pos: pos}
}

// Bool is a boolean value.
type Bool struct {
	Value bool
	Pos   source.Pos
}

// If is the non-strict conditional: Cond is always reduced, but only the
// taken branch (Then or Else) is ever reduced or returned.
type If struct {
	Cond, Then, Else Term
	Pos              source.Pos
}

// Operator atoms. Each is a nullary value until applied via Apply; none
// carries data beyond its source position.
type (
	// Eq tests two reduced values for structural equivalence.
	Eq struct{ Pos source.Pos }
	// Eval reduces a Quote's suspended content.
	Eval struct{ Pos source.Pos }
	// Add is saturating-free addition of two Numbers.
	Add struct{ Pos source.Pos }
	// Sub is saturating subtraction of two Numbers (floors at zero).
	Sub struct{ Pos source.Pos }
	// Mul is multiplication of two Numbers.
	Mul struct{ Pos source.Pos }
	// Div is truncating division of two Numbers.
	Div struct{ Pos source.Pos }
	// Rem is the remainder of truncating division of two Numbers.
	Rem struct{ Pos source.Pos }
	// Car extracts the head of a Cons.
	Car struct{ Pos source.Pos }
	// Cdr extracts the tail of a Cons.
	Cdr struct{ Pos source.Pos }
)

func (t *Apply) core()    {}
func (t *Lambda) core()   {}
func (t *Variable) core() {}
func (t *Quote) core()    {}
func (t *Cons) core()     {}
func (t *Nil) core()      {}
func (t *Number) core()   {}
func (t *Bool) core()     {}
func (t *If) core()       {}
func (t *Eq) core()       {}
func (t *Eval) core()     {}
func (t *Add) core()      {}
func (t *Sub) core()      {}
func (t *Mul) core()      {}
func (t *Div) core()      {}
func (t *Rem) core()      {}
func (t *Car) core()      {}
func (t *Cdr) core()      {}

func (t *Apply) Position() source.Pos    { return t.Pos }
func (t *Lambda) Position() source.Pos   { return t.Pos }
func (t *Variable) Position() source.Pos { return t.Pos }
func (t *Quote) Position() source.Pos    { return t.Pos }
func (t *Cons) Position() source.Pos     { return t.Pos }
func (t *Nil) Position() source.Pos      { return t.Pos }
func (t *Number) Position() source.Pos   { return t.Pos }
func (t *Bool) Position() source.Pos     { return t.Pos }
func (t *If) Position() source.Pos       { return t.Pos }
func (t *Eq) Position() source.Pos       { return t.Pos }
func (t *Eval) Position() source.Pos     { return t.Pos }
func (t *Add) Position() source.Pos      { return t.Pos }
func (t *Sub) Position() source.Pos      { return t.Pos }
func (t *Mul) Position() source.Pos      { return t.Pos }
func (t *Div) Position() source.Pos      { return t.Pos }
func (t *Rem) Position() source.Pos      { return t.Pos }
func (t *Car) Position() source.Pos      { return t.Pos }
func (t *Cdr) Position() source.Pos      { return t.Pos }
