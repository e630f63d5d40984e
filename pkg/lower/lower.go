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
package lower

import (
	log "github.com/sirupsen/logrus"

	"lispkit/pkg/core"
	"lispkit/pkg/meta"
	"lispkit/pkg/source"
)

// Lower translates a meta term into a core term against env (consulted for
// free variables) and args (consulted for lexically-bound argument names).
// It is purely syntactic and deterministic: lexical scope always wins over
// the definition environment, and inner Lambda bindings shadow outer ones.
func Lower(env *DefinitionEnv, t meta.Term, args ArgNameMap) (core.Term, error) {
	switch n := t.(type) {
	case *meta.Variable:
		return lowerVariable(env, n, args)
	case *meta.Lambda:
		return lowerLambda(env, n, args)
	case *meta.Apply:
		return lowerApply(env, n, args)
	case *meta.Quote:
		inner, err := Lower(env, n.Term, args)
		if err != nil {
			return nil, err
		}
		return &core.Quote{Term: inner, Pos: n.Pos}, nil
	case *meta.If:
		cond, err := Lower(env, n.Cond, args)
		if err != nil {
			return nil, err
		}
		then, err := Lower(env, n.Then, args)
		if err != nil {
			return nil, err
		}
		els, err := Lower(env, n.Else, args)
		if err != nil {
			return nil, err
		}
		return &core.If{Cond: cond, Then: then, Else: els, Pos: n.Pos}, nil
	case *meta.Cons:
		head, err := Lower(env, n.Head, args)
		if err != nil {
			return nil, err
		}
		tail, err := Lower(env, n.Tail, args)
		if err != nil {
			return nil, err
		}
		return &core.Cons{Head: head, Tail: tail, Pos: n.Pos}, nil
	case *meta.List:
		return lowerList(env, n, args)
	case *meta.Nil:
		return &core.Nil{Pos: n.Pos}, nil
	case *meta.Number:
		return &core.Number{N: n.N, Pos: n.Pos}, nil
	case *meta.Bool:
		return &core.Bool{Value: n.Value, Pos: n.Pos}, nil
	case *meta.Eq:
		return &core.Eq{Pos: n.Pos}, nil
	case *meta.Eval:
		return &core.Eval{Pos: n.Pos}, nil
	case *meta.Add:
		return &core.Add{Pos: n.Pos}, nil
	case *meta.Sub:
		return &core.Sub{Pos: n.Pos}, nil
	case *meta.Mul:
		return &core.Mul{Pos: n.Pos}, nil
	case *meta.Div:
		return &core.Div{Pos: n.Pos}, nil
	case *meta.Rem:
		return &core.Rem{Pos: n.Pos}, nil
	case *meta.Car:
		return &core.Car{Pos: n.Pos}, nil
	case *meta.Cdr:
		return &core.Cdr{Pos: n.Pos}, nil
	default:
		return nil, source.NewErrorf(source.ErrLowering, t.Position(), "unsupported meta term")
	}
}

func lowerVariable(env *DefinitionEnv, n *meta.Variable, args ArgNameMap) (core.Term, error) {
	if s, ok := args[n.Name]; ok {
		return &core.Variable{Depth: s.Depth, Slot: s.Slot, Pos: n.Pos}, nil
	}
	if t, ok := env.Lookup(n.Name); ok {
		// The stored term is immutable once constructed, so no clone is
		// needed -- handing back the same pointer is observably
		// identical to a deep copy.
		return t, nil
	}
	return nil, source.NewErrorf(source.ErrLowering, n.Pos, "variable not defined: %s", n.Name)
}

func lowerLambda(env *DefinitionEnv, n *meta.Lambda, args ArgNameMap) (core.Term, error) {
	seen := make(map[string]bool, len(n.ArgNames))
	for _, name := range n.ArgNames {
		if seen[name] {
			return nil, source.NewErrorf(source.ErrLowering, n.Pos, "duplicate argument name: %s", name)
		}
		seen[name] = true
	}
	body, err := Lower(env, n.Body, args.withLambdaArgs(n.ArgNames))
	if err != nil {
		return nil, err
	}
	return &core.Lambda{Arity: len(n.ArgNames), Body: body, Pos: n.Pos}, nil
}

func lowerApply(env *DefinitionEnv, n *meta.Apply, args ArgNameMap) (core.Term, error) {
	op, err := Lower(env, n.Op, args)
	if err != nil {
		return nil, err
	}
	lowered := make([]core.Term, len(n.Args))
	for i, a := range n.Args {
		lowered[i], err = Lower(env, a, args)
		if err != nil {
			return nil, err
		}
	}
	return &core.Apply{Op: op, Args: lowered, Pos: n.Pos}, nil
}

func lowerList(env *DefinitionEnv, n *meta.List, args ArgNameMap) (core.Term, error) {
	var tail core.Term = &core.Nil{Pos: n.Pos}
	items := make([]core.Term, len(n.Items))
	for i, it := range n.Items {
		lowered, err := Lower(env, it, args)
		if err != nil {
			return nil, err
		}
		items[i] = lowered
	}
	for i := len(items) - 1; i >= 0; i-- {
		tail = &core.Cons{Head: items[i], Tail: tail, Pos: n.Pos}
	}
	log.WithField("len", len(items)).Trace("lower: desugared list literal")
	return tail, nil
}
