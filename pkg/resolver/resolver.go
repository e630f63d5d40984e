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

// Package resolver implements the content resolver abstraction of spec.md
// §4.6: resolving an import/export path string to UTF-8 source content,
// either from the filesystem or from the embedded standard library.
package resolver

import (
	"embed"
	"os"
	"path/filepath"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"lispkit/pkg/source"
)

//go:embed lib
var embeddedLib embed.FS

// Resolver maps an import/export request string to source content. A single
// instance is shared by reference across a driver and every child driver it
// spawns for `import`/`export`, per spec.md §4.5's "same resolver instance".
type Resolver struct{}

// New constructs a Resolver. There is no configuration surface: the
// filesystem side reads relative to whatever base path it is given, and the
// embedded side always addresses the same compiled-in library set.
func New() *Resolver {
	return &Resolver{}
}

// Resolve resolves request relative to basePath (the importing file's path,
// or "" for the initial top-level program), returning the resolved content
// and the path to use as the base for anything *that* content imports.
//
// Requests beginning with "." are filesystem paths, resolved relative to
// basePath's directory (or the current working directory if basePath is
// empty) and canonicalized. Anything else is a logical name resolved against
// the embedded library.
func (r *Resolver) Resolve(basePath, request string) (content, resolvedPath string, err error) {
	if len(request) > 0 && request[0] == '.' {
		return r.resolveFilesystem(basePath, request)
	}
	return r.resolveEmbedded(request)
}

func (r *Resolver) resolveFilesystem(basePath, request string) (string, string, error) {
	dir := "."
	if basePath != "" {
		dir = filepath.Dir(basePath)
	}
	joined := filepath.Join(dir, request)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", "", source.NewErrorf(source.ErrResolver, source.NonePos, "cannot canonicalize path %q: %v", request, err)
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return "", "", source.NewErrorf(source.ErrResolver, source.NonePos, "cannot read %q: %v", abs, err)
	}
	if !utf8.Valid(raw) {
		return "", "", source.NewErrorf(source.ErrResolver, source.NonePos, "%q is not valid UTF-8", abs)
	}
	log.WithField("path", abs).Debug("resolver: read filesystem module")
	return string(raw), abs, nil
}

func (r *Resolver) resolveEmbedded(request string) (string, string, error) {
	name := "lib/" + request + ".lisp"
	raw, err := embeddedLib.ReadFile(name)
	if err != nil {
		return "", "", source.NewErrorf(source.ErrResolver, source.NonePos, "unknown embedded library: %s", request)
	}
	if !utf8.Valid(raw) {
		return "", "", source.NewErrorf(source.ErrResolver, source.NonePos, "embedded library %q is not valid UTF-8", request)
	}
	log.WithField("name", request).Debug("resolver: read embedded module")
	// The resolved path for an embedded module is its logical name: it has
	// no filesystem directory, so resolveFilesystem treats the name as a
	// path under the current working directory. A "." import inside "std"
	// resolves against the working directory itself; one inside "std/arith"
	// resolves against its "std" subdirectory.
	return string(raw), request, nil
}
