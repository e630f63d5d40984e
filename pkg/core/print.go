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
	"fmt"
	"strings"
)

// Print renders a core term as an S-expression for debugging. Positional
// metadata is always ignored. Operator atoms always print their canonical
// symbol (+ - * / %), never the historical add/sub spellings.
func Print(t Term) string {
	switch n := t.(type) {
	case *Apply:
		parts := make([]string, 0, len(n.Args)+1)
		parts = append(parts, Print(n.Op))
		for _, a := range n.Args {
			parts = append(parts, Print(a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *Lambda:
		return fmt.Sprintf("(lambda<%d-ary> %s)", n.Arity, Print(n.Body))
	case *Variable:
		return fmt.Sprintf("ARG<%d-up %d-th>", n.Depth, n.Slot)
	case *Quote:
		return "(quote " + Print(n.Term) + ")"
	case *Cons:
		return "(cons " + Print(n.Head) + " " + Print(n.Tail) + ")"
	case *Nil:
		return "nil"
	case *Number:
		return n.N.String()
	case *Bool:
		if n.Value {
			return "true"
		}
		return "false"
	case *If:
		return "(if " + Print(n.Cond) + " " + Print(n.Then) + " " + Print(n.Else) + ")"
	case *Eq:
		return "eq"
	case *Eval:
		return "eval"
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
	case *Car:
		return "car"
	case *Cdr:
		return "cdr"
	default:
		return "<?>"
	}
}
