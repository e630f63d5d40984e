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

	"lispkit/pkg/meta"
)

// LowerDefRec desugars a DefRec group into non-recursive lowered terms bound
// in env, using an n-ary Turing-style fixed point (spec.md §4.4): every
// function's final bound value is a closed lambda built from a
// self-abstracted form that takes the whole group as extra leading
// parameters, applied to itself and its siblings.
//
// Free (non-applied) references to a sibling name within a body are
// deliberately left untouched by the rewrite below, reproducing the
// specification's documented quirk: only call sites (an Apply whose
// operator is a bare, unshadowed reference to a sibling) are rewritten.
func LowerDefRec(env *DefinitionEnv, group []meta.RecFunc) error {
	names := make([]string, len(group))
	for i, f := range group {
		names[i] = f.Name
	}

	selfAbstracted := make([]*meta.Lambda, len(group))
	for i, f := range group {
		rewritten := rewriteGroupCalls(f.Body, names, map[string]bool{})
		argNames := make([]string, 0, len(names)+len(f.ArgNames))
		argNames = append(argNames, names...)
		argNames = append(argNames, f.ArgNames...)
		selfAbstracted[i] = &meta.Lambda{ArgNames: argNames, Body: rewritten, Pos: f.Pos}
	}

	selfArgs := make([]meta.Term, len(selfAbstracted))
	for i, l := range selfAbstracted {
		selfArgs[i] = l
	}

	for i, f := range group {
		callArgs := make([]meta.Term, 0, len(selfArgs)+len(f.ArgNames))
		callArgs = append(callArgs, selfArgs...)
		for _, a := range f.ArgNames {
			callArgs = append(callArgs, &meta.Variable{Name: a, Pos: f.Pos})
		}
		finalValue := &meta.Lambda{
			ArgNames: f.ArgNames,
			Body:     &meta.Apply{Op: selfAbstracted[i], Args: callArgs, Pos: f.Pos},
			Pos:      f.Pos,
		}
		lowered, err := Lower(env, finalValue, ArgNameMap{})
		if err != nil {
			return err
		}
		log.WithField("name", f.Name).Trace("lower: desugared defrec binding")
		env.Define(f.Name, lowered)
	}
	return nil
}

// rewriteGroupCalls rewrites every Apply whose operator is a free
// (unshadowed) reference to one of names so that its operand list is
// prefixed with a reference to every name in the group, in order. Bare,
// non-applied references are never touched.
func rewriteGroupCalls(t meta.Term, names []string, shadowed map[string]bool) meta.Term {
	switch n := t.(type) {
	case *meta.Apply:
		newArgs := make([]meta.Term, 0, len(n.Args))
		for _, a := range n.Args {
			newArgs = append(newArgs, rewriteGroupCalls(a, names, shadowed))
		}
		newOp := rewriteGroupCalls(n.Op, names, shadowed)
		if v, ok := n.Op.(*meta.Variable); ok && isGroupName(v.Name, names) && !shadowed[v.Name] {
			prefixed := make([]meta.Term, 0, len(names)+len(newArgs))
			for _, name := range names {
				prefixed = append(prefixed, &meta.Variable{Name: name, Pos: n.Pos})
			}
			prefixed = append(prefixed, newArgs...)
			newArgs = prefixed
		}
		return &meta.Apply{Op: newOp, Args: newArgs, Pos: n.Pos}
	case *meta.Lambda:
		inner := shadowWith(shadowed, n.ArgNames)
		return &meta.Lambda{ArgNames: n.ArgNames, Body: rewriteGroupCalls(n.Body, names, inner), Pos: n.Pos}
	case *meta.Quote:
		return &meta.Quote{Term: rewriteGroupCalls(n.Term, names, shadowed), Pos: n.Pos}
	case *meta.If:
		return &meta.If{
			Cond: rewriteGroupCalls(n.Cond, names, shadowed),
			Then: rewriteGroupCalls(n.Then, names, shadowed),
			Else: rewriteGroupCalls(n.Else, names, shadowed),
			Pos:  n.Pos,
		}
	case *meta.Cons:
		return &meta.Cons{
			Head: rewriteGroupCalls(n.Head, names, shadowed),
			Tail: rewriteGroupCalls(n.Tail, names, shadowed),
			Pos:  n.Pos,
		}
	case *meta.List:
		items := make([]meta.Term, len(n.Items))
		for i, it := range n.Items {
			items[i] = rewriteGroupCalls(it, names, shadowed)
		}
		return &meta.List{Items: items, Pos: n.Pos}
	default:
		// Variable (bare references are left untouched), Nil, Number,
		// Bool, and the operator atoms have nothing to rewrite.
		return t
	}
}

func isGroupName(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func shadowWith(shadowed map[string]bool, argNames []string) map[string]bool {
	next := make(map[string]bool, len(shadowed)+len(argNames))
	for k, v := range shadowed {
		next[k] = v
	}
	for _, a := range argNames {
		next[a] = true
	}
	return next
}
