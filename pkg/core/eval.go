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
	"math/big"

	log "github.com/sirupsen/logrus"

	"lispkit/pkg/source"
)

// Eval reduces t to a value under call-by-value, left-to-right argument
// evaluation, except for If (non-strict in its non-taken branch) and Quote
// (opaque until eval'd). It returns a typed *source.Error on failure.
func Eval(t Term) (Term, error) {
	log.WithField("term", Print(t)).Trace("core: reducing term")

	switch n := t.(type) {
	case *If:
		return evalIf(n)
	case *Apply:
		return evalApply(n)
	default:
		// Atomic values, Lambda, Quote, a surviving Variable (a program
		// bug, per spec.md -- never produced by well-formed lowering),
		// and operator atoms all self-evaluate.
		return stripPos(t), nil
	}
}

func stripPos(t Term) Term {
	switch n := t.(type) {
	case *Apply:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Lambda:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Variable:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Quote:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Cons:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Nil:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Number:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Bool:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *If:
		c := *n
		c.Pos = source.NonePos
		return &c
	case *Eq:
		return &Eq{}
	case *Eval:
		return &Eval{}
	case *Add:
		return &Add{}
	case *Sub:
		return &Sub{}
	case *Mul:
		return &Mul{}
	case *Div:
		return &Div{}
	case *Rem:
		return &Rem{}
	case *Car:
		return &Car{}
	case *Cdr:
		return &Cdr{}
	default:
		return t
	}
}

func evalErr(t Term, format string, args ...any) error {
	return source.NewErrorf(source.ErrEval, t.Position(), format, args...)
}

func evalIf(n *If) (Term, error) {
	cond, err := Eval(n.Cond)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*Bool)
	if !ok {
		return nil, evalErr(n, "expect bool for if condition")
	}
	if b.Value {
		return Eval(n.Then)
	}
	return Eval(n.Else)
}

func evalApply(n *Apply) (Term, error) {
	op, err := Eval(n.Op)
	if err != nil {
		return nil, err
	}
	switch o := op.(type) {
	case *Lambda:
		return evalLambdaApply(n, o)
	case *Eq:
		args, err := evalArgsN(n, 2)
		if err != nil {
			return nil, err
		}
		return &Bool{Value: Equiv(args[0], args[1])}, nil
	case *Eval:
		args, err := evalArgsN(n, 1)
		if err != nil {
			return nil, err
		}
		q, ok := args[0].(*Quote)
		if !ok {
			return nil, evalErr(n, "eval expects a quote operand")
		}
		return Eval(q.Term)
	case *Add:
		return evalArith(n, o, func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
	case *Mul:
		return evalArith(n, o, func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) })
	case *Sub:
		return evalArith(n, o, func(a, b *big.Int) *big.Int {
			if a.Cmp(b) < 0 {
				return big.NewInt(0)
			}
			return new(big.Int).Sub(a, b)
		})
	case *Div:
		return evalDivRem(n, o, true)
	case *Rem:
		return evalDivRem(n, o, false)
	case *Car:
		args, err := evalArgsN(n, 1)
		if err != nil {
			return nil, err
		}
		c, ok := args[0].(*Cons)
		if !ok {
			return nil, evalErr(n, "car expects a cons")
		}
		return Eval(c.Head)
	case *Cdr:
		args, err := evalArgsN(n, 1)
		if err != nil {
			return nil, err
		}
		c, ok := args[0].(*Cons)
		if !ok {
			return nil, evalErr(n, "cdr expects a cons")
		}
		return Eval(c.Tail)
	default:
		return nil, evalErr(n, "operator expected")
	}
}

func evalLambdaApply(n *Apply, lam *Lambda) (Term, error) {
	if len(n.Args) != lam.Arity {
		return nil, evalErr(n, "arity mismatch: lambda expects %d argument(s), got %d", lam.Arity, len(n.Args))
	}
	args, err := evalArgs(n.Args)
	if err != nil {
		return nil, err
	}
	return Eval(Substitute(lam.Body, 0, args))
}

func evalArgsN(n *Apply, arity int) ([]Term, error) {
	if len(n.Args) != arity {
		return nil, evalErr(n, "arity mismatch: expected %d argument(s), got %d", arity, len(n.Args))
	}
	return evalArgs(n.Args)
}

func evalArgs(exprs []Term) ([]Term, error) {
	values := make([]Term, len(exprs))
	for i, e := range exprs {
		v, err := Eval(e)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func evalArith(n *Apply, op Term, f func(a, b *big.Int) *big.Int) (Term, error) {
	args, err := evalArgsN(n, 2)
	if err != nil {
		return nil, err
	}
	a, ok1 := args[0].(*Number)
	b, ok2 := args[1].(*Number)
	if !ok1 || !ok2 {
		return nil, evalErr(n, "expected numbers as operands of %s", opSymbol(op))
	}
	return &Number{N: f(a.N, b.N)}, nil
}

func evalDivRem(n *Apply, op Term, quotient bool) (Term, error) {
	args, err := evalArgsN(n, 2)
	if err != nil {
		return nil, err
	}
	a, ok1 := args[0].(*Number)
	b, ok2 := args[1].(*Number)
	if !ok1 || !ok2 {
		return nil, evalErr(n, "expected numbers as operands of %s", opSymbol(op))
	}
	if b.N.Sign() == 0 {
		return nil, evalErr(n, "division by zero")
	}
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(a.N, b.N, r)
	if quotient {
		return &Number{N: q}, nil
	}
	return &Number{N: r}, nil
}

func opSymbol(op Term) string {
	switch op.(type) {
	case *Add:
		return "+"
	case *Sub:
		return "-"
	case *Mul:
		return "*"
	case *Div:
		return "/"
	case *Rem:
		return "%"
	default:
		return "?"
	}
}
