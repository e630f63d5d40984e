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
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"lispkit/pkg/driver"
	"lispkit/pkg/parser"
	"lispkit/pkg/resolver"
)

// runFile evaluates the program at path with the given assertion mode,
// implementing the shared body of the "run" and "test" subcommands
// (spec.md §6). On any read, compile or evaluation error it exits the
// process with status 1; on success it returns normally.
func runFile(path string, doAssert, verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		reportFailure(err)
	}

	stmts, err := parser.New(path, string(raw)).ParseProgram()
	if err != nil {
		reportFailure(err)
	}

	res := resolver.New()
	d := driver.New(path, doAssert, res, verbose, os.Stdout)

	if err := d.Run(stmts); err != nil {
		reportFailure(err)
	}
}

// reportFailure prints "EVAL ERROR: <message>" to standard output, coloured
// red when standard output is a real terminal, and exits nonzero.
func reportFailure(err error) {
	msg := fmt.Sprintf("EVAL ERROR: %s", err)

	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println("\x1b[31m" + msg + "\x1b[0m")
	} else {
		fmt.Println(msg)
	}

	os.Exit(1)
}
