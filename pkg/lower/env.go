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

// Package lower implements the meta-to-core lowering pass: name resolution
// over a definition environment, conversion of named binders to De Bruijn
// form, and desugaring of recursive definition groups into non-recursive
// lambda terms.
package lower

import "lispkit/pkg/core"

// slot identifies where a lexically-bound argument name resolves to: Depth
// lambdas out, at position Slot within that lambda's arguments.
type slot struct {
	Depth, Slot int
}

// ArgNameMap resolves argument names to their (depth, slot) De Bruijn
// coordinates during lowering of one top-level term. It is never mutated in
// place: entering a Lambda produces a fresh map (see withLambdaArgs) so that
// sibling branches of the AST never observe each other's bindings.
type ArgNameMap map[string]slot

// withLambdaArgs returns the ArgNameMap to use inside a Lambda binding
// argNames: every existing entry is pushed one level deeper, then each
// argument name is bound at (depth=0, slot=i), shadowing any existing entry
// (or an earlier argument of the same name, for later entries, though
// lowering rejects duplicate argument names before this matters).
func (m ArgNameMap) withLambdaArgs(argNames []string) ArgNameMap {
	next := make(ArgNameMap, len(m)+len(argNames))
	for name, s := range m {
		next[name] = slot{Depth: s.Depth + 1, Slot: s.Slot}
	}
	for i, name := range argNames {
		next[name] = slot{Depth: 0, Slot: i}
	}
	return next
}

// DefinitionEnv maps names to already-lowered core terms. It is populated by
// Def, DefRec, and Import, and consulted whenever lowering encounters a free
// variable reference.
type DefinitionEnv struct {
	defs map[string]core.Term
}

// NewDefinitionEnv constructs an empty definition environment.
func NewDefinitionEnv() *DefinitionEnv {
	return &DefinitionEnv{defs: make(map[string]core.Term)}
}

// Define binds name to an already-lowered term, overwriting any previous
// binding. Because earlier lowerings have already been inlined into whatever
// referenced them, rebinding a name never affects statements evaluated
// before it: each Variable reference captured a lowered copy of the
// definition at the time it was resolved (spec.md §8 "(def a 1) (def a a) a"
// evaluates to 1).
func (e *DefinitionEnv) Define(name string, t core.Term) {
	e.defs[name] = t
}

// Lookup returns the lowered term bound to name, if any.
func (e *DefinitionEnv) Lookup(name string) (core.Term, bool) {
	t, ok := e.defs[name]
	return t, ok
}

// ExportedEnv maps names to core terms exposed by a module to its importer.
// It is mutated only by Export and starts out empty.
type ExportedEnv struct {
	defs map[string]core.Term
}

// NewExportedEnv constructs an empty exported environment.
func NewExportedEnv() *ExportedEnv {
	return &ExportedEnv{defs: make(map[string]core.Term)}
}

// Define records an exported name.
func (e *ExportedEnv) Define(name string, t core.Term) {
	e.defs[name] = t
}

// All iterates every exported (name, term) pair.
func (e *ExportedEnv) All(f func(name string, t core.Term)) {
	for name, t := range e.defs {
		f(name, t)
	}
}
