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

// Equiv reports whether a and b are structurally equal, ignoring source
// position metadata. Because variables are De Bruijn-indexed, this check is
// alpha-equivalence for Lambda terms without any extra bookkeeping: two
// lambdas that differ only in their bound names were already identical after
// lowering.
func Equiv(a, b Term) bool {
	switch x := a.(type) {
	case *Apply:
		y, ok := b.(*Apply)
		if !ok || len(x.Args) != len(y.Args) || !Equiv(x.Op, y.Op) {
			return false
		}
		for i := range x.Args {
			if !Equiv(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x.Arity == y.Arity && Equiv(x.Body, y.Body)
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Depth == y.Depth && x.Slot == y.Slot
	case *Quote:
		y, ok := b.(*Quote)
		return ok && Equiv(x.Term, y.Term)
	case *Cons:
		y, ok := b.(*Cons)
		return ok && Equiv(x.Head, y.Head) && Equiv(x.Tail, y.Tail)
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Number:
		y, ok := b.(*Number)
		return ok && x.N.Cmp(y.N) == 0
	case *Bool:
		y, ok := b.(*Bool)
		return ok && x.Value == y.Value
	case *If:
		y, ok := b.(*If)
		return ok && Equiv(x.Cond, y.Cond) && Equiv(x.Then, y.Then) && Equiv(x.Else, y.Else)
	case *Eq:
		_, ok := b.(*Eq)
		return ok
	case *Eval:
		_, ok := b.(*Eval)
		return ok
	case *Add:
		_, ok := b.(*Add)
		return ok
	case *Sub:
		_, ok := b.(*Sub)
		return ok
	case *Mul:
		_, ok := b.(*Mul)
		return ok
	case *Div:
		_, ok := b.(*Div)
		return ok
	case *Rem:
		_, ok := b.(*Rem)
		return ok
	case *Car:
		_, ok := b.(*Car)
		return ok
	case *Cdr:
		_, ok := b.(*Cdr)
		return ok
	default:
		return false
	}
}
