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
	"math/big"
	"testing"

	"lispkit/pkg/core"
	"lispkit/pkg/meta"
)

func TestLower_VariableResolvesLexicalArgBeforeEnv(t *testing.T) {
	env := NewDefinitionEnv()
	env.Define("x", &core.Number{N: big.NewInt(99)})

	// (lambda (x) x): the argument shadows the top-level definition.
	lam := &meta.Lambda{ArgNames: []string{"x"}, Body: &meta.Variable{Name: "x"}}
	got, err := Lower(env, lam, ArgNameMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	core_lam := got.(*core.Lambda)
	v, ok := core_lam.Body.(*core.Variable)
	if !ok || v.Depth != 0 || v.Slot != 0 {
		t.Errorf("expected the lambda's own argument to shadow env, got %#v", core_lam.Body)
	}
}

func TestLower_UndefinedVariableIsAnError(t *testing.T) {
	env := NewDefinitionEnv()
	if _, err := Lower(env, &meta.Variable{Name: "nope"}, ArgNameMap{}); err == nil {
		t.Fatal("expected an error for an undefined free variable")
	}
}

func TestLower_DuplicateArgNameIsAnError(t *testing.T) {
	env := NewDefinitionEnv()
	lam := &meta.Lambda{ArgNames: []string{"x", "x"}, Body: &meta.Variable{Name: "x"}}
	if _, err := Lower(env, lam, ArgNameMap{}); err == nil {
		t.Fatal("expected an error for a duplicate argument name")
	}
}

func TestLower_ListDesugarsToConsChain(t *testing.T) {
	env := NewDefinitionEnv()
	list := &meta.List{Items: []meta.Term{&meta.Number{N: big.NewInt(1)}, &meta.Number{N: big.NewInt(2)}}}
	got, err := Lower(env, list, ArgNameMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cons1, ok := got.(*core.Cons)
	if !ok {
		t.Fatalf("expected a Cons chain, got %T", got)
	}
	if cons1.Head.(*core.Number).N.Int64() != 1 {
		t.Errorf("first item = %v, want 1", cons1.Head)
	}
	cons2, ok := cons1.Tail.(*core.Cons)
	if !ok {
		t.Fatalf("expected a nested Cons, got %T", cons1.Tail)
	}
	if cons2.Head.(*core.Number).N.Int64() != 2 {
		t.Errorf("second item = %v, want 2", cons2.Head)
	}
	if _, ok := cons2.Tail.(*core.Nil); !ok {
		t.Errorf("expected the list to terminate in Nil, got %T", cons2.Tail)
	}
}

func TestLower_DefRebindingSeesOldValueAtDefinitionTime(t *testing.T) {
	// (def a 1) (def a a) a -> 1: each Def captures the current binding of
	// free variables at lowering time, so the second (def a a) still lowers
	// its RHS against the first binding.
	env := NewDefinitionEnv()

	first, err := Lower(env, &meta.Number{N: big.NewInt(1)}, ArgNameMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.Define("a", first)

	second, err := Lower(env, &meta.Variable{Name: "a"}, ArgNameMap{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env.Define("a", second)

	value, err := core.Eval(second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.(*core.Number).N.Int64() != 1 {
		t.Errorf("got %v, want 1", value)
	}
}
