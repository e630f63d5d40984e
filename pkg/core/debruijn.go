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

// mapSubterm rewrites every immediate child of t by applying f to it,
// leaving Variable and the childless atoms untouched. Lambda is deliberately
// excluded: its body must be rewritten under a one-greater cutoff/level, so
// ShiftIndex and Substitute handle Lambda themselves before falling back to
// mapSubterm for every other variant.
func mapSubterm(t Term, f func(Term) Term) Term {
	switch n := t.(type) {
	case *Apply:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = f(a)
		}
		return &Apply{Op: f(n.Op), Args: args, Pos: n.Pos}
	case *Quote:
		return &Quote{Term: f(n.Term), Pos: n.Pos}
	case *Cons:
		return &Cons{Head: f(n.Head), Tail: f(n.Tail), Pos: n.Pos}
	case *If:
		return &If{Cond: f(n.Cond), Then: f(n.Then), Else: f(n.Else), Pos: n.Pos}
	default:
		// Variable, Lambda (handled by callers), Nil, Number, Bool, and
		// the operator atoms have no rewritable children.
		return t
	}
}

// ShiftIndex increases the depth of every Variable(d, s) with d >= cutoff by
// delta, leaving every other Variable and every non-variable node unchanged
// except for structural recursion. Descending into a Lambda increments
// cutoff by one. Slot is never touched.
func ShiftIndex(t Term, cutoff, delta int) Term {
	switch n := t.(type) {
	case *Variable:
		if n.Depth >= cutoff {
			return &Variable{Depth: n.Depth + delta, Slot: n.Slot, Pos: n.Pos}
		}
		return n
	case *Lambda:
		return &Lambda{Arity: n.Arity, Body: ShiftIndex(n.Body, cutoff+1, delta), Pos: n.Pos}
	default:
		return mapSubterm(t, func(c Term) Term { return ShiftIndex(c, cutoff, delta) })
	}
}

// Substitute replaces every Variable(d, s) with d == level by values[s].
// Descending into a Lambda increments level by one and shifts every element
// of values by (cutoff=0, delta=1) so that free variables inside the
// replacement values still refer to their original binders once they are
// relocated one lambda deeper.
func Substitute(t Term, level int, values []Term) Term {
	switch n := t.(type) {
	case *Variable:
		if n.Depth == level {
			return values[n.Slot]
		}
		return n
	case *Lambda:
		shifted := make([]Term, len(values))
		for i, v := range values {
			shifted[i] = ShiftIndex(v, 0, 1)
		}
		return &Lambda{Arity: n.Arity, Body: Substitute(n.Body, level+1, shifted), Pos: n.Pos}
	default:
		return mapSubterm(t, func(c Term) Term { return Substitute(c, level, values) })
	}
}
