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

// Package driver implements the statement-stream evaluator of spec.md §4.5:
// one statement at a time over a definition environment, with import/export
// module resolution delegated to child driver instances.
package driver

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"lispkit/pkg/core"
	"lispkit/pkg/lower"
	"lispkit/pkg/meta"
	"lispkit/pkg/parser"
	"lispkit/pkg/resolver"
	"lispkit/pkg/source"
)

// Driver holds the state of one statement stream: its own definition and
// exported environments, the base path used to resolve relative imports,
// whether assertions are enforced, and the resolver shared with every
// driver spawned transitively from it.
type Driver struct {
	defEnv      *lower.DefinitionEnv
	exportedEnv *lower.ExportedEnv
	filePath    string
	doAssert    bool
	resolver    *resolver.Resolver
	verbose     bool
	out         io.Writer
}

// New constructs a Driver. filePath is the resolver base for relative
// imports ("" for a top-level program with no backing file); doAssert
// enables assert enforcement (true under `test`, false under `run`);
// verbose enables the `In[i] =`/`Out[i] =` echo protocol; out receives the
// spec-mandated stdout protocol.
func New(filePath string, doAssert bool, res *resolver.Resolver, verbose bool, out io.Writer) *Driver {
	return &Driver{
		defEnv:      lower.NewDefinitionEnv(),
		exportedEnv: lower.NewExportedEnv(),
		filePath:    filePath,
		doAssert:    doAssert,
		resolver:    res,
		verbose:     verbose,
		out:         out,
	}
}

// ExportedEnv exposes the driver's exported environment, consulted by a
// parent driver after running this one as a child for import/export.
func (d *Driver) ExportedEnv() *lower.ExportedEnv {
	return d.exportedEnv
}

// Run processes every statement in source order, aborting with the first
// error (spec.md §7: "the driver propagates the first error and aborts").
func (d *Driver) Run(stmts []meta.Statement) error {
	for i, stmt := range stmts {
		if d.verbose {
			fmt.Fprintf(d.out, "In[%d] = %s\n", i, meta.PrintStatement(stmt))
		}
		if err := d.exec(i, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) exec(i int, stmt meta.Statement) error {
	switch n := stmt.(type) {
	case *meta.Def:
		lowered, err := lower.Lower(d.defEnv, n.Term, lower.ArgNameMap{})
		if err != nil {
			return err
		}
		d.defEnv.Define(n.Name, lowered)
		return nil
	case *meta.DefRec:
		return lower.LowerDefRec(d.defEnv, n.Funcs)
	case *meta.TermStmt:
		return d.execTerm(i, n)
	case *meta.Assert:
		return d.execAssert(n)
	case *meta.Import:
		return d.execImport(n)
	case *meta.Export:
		return d.execExport(n)
	default:
		return source.NewErrorf(source.ErrLowering, stmt.Position(), "unsupported statement")
	}
}

func (d *Driver) execTerm(i int, n *meta.TermStmt) error {
	lowered, err := lower.Lower(d.defEnv, n.Expr, lower.ArgNameMap{})
	if err != nil {
		return err
	}
	value, err := core.Eval(lowered)
	if err != nil {
		return err
	}
	if d.verbose {
		fmt.Fprintf(d.out, "Out[%d] = %s\n", i, core.Print(value))
	} else {
		fmt.Fprintln(d.out, core.Print(value))
	}
	return nil
}

func (d *Driver) execAssert(n *meta.Assert) error {
	if !d.doAssert {
		return nil
	}
	lowered, err := lower.Lower(d.defEnv, n.Expr, lower.ArgNameMap{})
	if err != nil {
		return err
	}
	value, err := core.Eval(lowered)
	if err != nil {
		return err
	}
	b, ok := value.(*core.Bool)
	if !ok || !b.Value {
		return source.NewErrorf(source.ErrAssertion, n.Pos, "assertion failed")
	}
	return nil
}

func (d *Driver) execImport(n *meta.Import) error {
	for _, path := range n.Paths {
		child, err := d.runModule(path)
		if err != nil {
			return err
		}
		child.ExportedEnv().All(func(name string, t core.Term) {
			d.defEnv.Define(name, t)
		})
	}
	return nil
}

func (d *Driver) execExport(n *meta.Export) error {
	for _, item := range n.Items {
		if !item.IsPath {
			t, ok := d.defEnv.Lookup(item.Name)
			if !ok {
				return source.NewErrorf(source.ErrLowering, n.Pos, "cannot export undefined name: %s", item.Name)
			}
			d.exportedEnv.Define(item.Name, t)
			continue
		}
		child, err := d.runModule(item.Path)
		if err != nil {
			return err
		}
		child.ExportedEnv().All(func(name string, t core.Term) {
			d.exportedEnv.Define(name, t)
		})
	}
	return nil
}

// runModule resolves and runs path as a child statement stream, sharing
// this driver's resolver (spec.md §4.5: "the same resolver instance"). The
// child gets a fresh definition/exported environment, the resolved path as
// its own resolver base, and this driver's do_assert flag; it never echoes
// the verbose protocol, which is a top-level-program concern only.
func (d *Driver) runModule(path string) (*Driver, error) {
	content, resolvedPath, err := d.resolver.Resolve(d.filePath, path)
	if err != nil {
		return nil, err
	}
	stmts, err := parser.New(resolvedPath, content).ParseProgram()
	if err != nil {
		return nil, err
	}
	log.WithField("path", resolvedPath).Debug("driver: running imported module")
	child := New(resolvedPath, d.doAssert, d.resolver, false, io.Discard)
	if err := child.Run(stmts); err != nil {
		return nil, err
	}
	return child, nil
}
