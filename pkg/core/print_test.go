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

import "testing"

func TestPrint(t *testing.T) {
	cases := []struct {
		name string
		term Term
		want string
	}{
		{"lambda", &Lambda{Arity: 2, Body: &Variable{Depth: 0, Slot: 1}}, "(lambda<2-ary> ARG<0-up 1-th>)"},
		{"number", num(42), "42"},
		{"nil", &Nil{}, "nil"},
		{"true", &Bool{Value: true}, "true"},
		{"false", &Bool{Value: false}, "false"},
		{"quote", &Quote{Term: num(1)}, "(quote 1)"},
		{"cons", &Cons{Head: num(1), Tail: &Nil{}}, "(cons 1 nil)"},
		{"if", &If{Cond: &Bool{Value: true}, Then: num(1), Else: num(2)}, "(if true 1 2)"},
		{"add symbol", &Apply{Op: &Add{}, Args: []Term{num(1), num(2)}}, "(+ 1 2)"},
		{"sub symbol", &Apply{Op: &Sub{}, Args: []Term{num(1), num(2)}}, "(- 1 2)"},
		{"car symbol", &Car{}, "car"},
		{"cdr symbol", &Cdr{}, "cdr"},
		{"eq symbol", &Eq{}, "eq"},
		{"eval symbol", &Eval{}, "eval"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Print(c.term); got != c.want {
				t.Errorf("Print() = %q, want %q", got, c.want)
			}
		})
	}
}
