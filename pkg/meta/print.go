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
package meta

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a meta term, recovering its surface form: named variables,
// (if c t e), (list ...), (lambda (args...) body), and so on. Positional
// metadata is ignored.
func Print(t Term) string {
	switch n := t.(type) {
	case *Variable:
		return n.Name
	case *Lambda:
		return fmt.Sprintf("(lambda (%s) %s)", strings.Join(n.ArgNames, " "), Print(n.Body))
	case *Apply:
		parts := make([]string, 0, len(n.Args)+1)
		parts = append(parts, Print(n.Op))
		for _, a := range n.Args {
			parts = append(parts, Print(a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *Quote:
		return "(quote " + Print(n.Term) + ")"
	case *If:
		return "(if " + Print(n.Cond) + " " + Print(n.Then) + " " + Print(n.Else) + ")"
	case *Cons:
		return "(cons " + Print(n.Head) + " " + Print(n.Tail) + ")"
	case *List:
		parts := make([]string, len(n.Items))
		for i, it := range n.Items {
			parts[i] = Print(it)
		}
		return "(list " + strings.Join(parts, " ") + ")"
	case *Nil:
		return "nil"
	case *Number:
		return n.N.String()
	case *Bool:
		if n.Value {
			return "true"
		}
		return "false"
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

// PrintStatement renders a top-level statement for the -v "In[i] = ..."
// echo, recovering the reserved-form surface syntax.
func PrintStatement(s Statement) string {
	switch n := s.(type) {
	case *Def:
		return "(def " + n.Name + " " + Print(n.Term) + ")"
	case *DefRec:
		parts := make([]string, len(n.Funcs))
		for i, f := range n.Funcs {
			parts[i] = fmt.Sprintf("%s (%s) %s", f.Name, strings.Join(f.ArgNames, " "), Print(f.Body))
		}
		return "(defrec " + strings.Join(parts, " ") + ")"
	case *TermStmt:
		return Print(n.Expr)
	case *Assert:
		return "(assert " + Print(n.Expr) + ")"
	case *Import:
		parts := make([]string, len(n.Paths))
		for i, p := range n.Paths {
			parts[i] = strconv.Quote(p)
		}
		return "(import " + strings.Join(parts, " ") + ")"
	case *Export:
		parts := make([]string, len(n.Items))
		for i, it := range n.Items {
			if it.IsPath {
				parts[i] = strconv.Quote(it.Path)
			} else {
				parts[i] = it.Name
			}
		}
		return "(export " + strings.Join(parts, " ") + ")"
	default:
		return "<?>"
	}
}
