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
package resolver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolver_EmbeddedStandardLibrary(t *testing.T) {
	r := New()
	content, resolvedPath, err := r.Resolve("", "std")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolvedPath != "std" {
		t.Errorf("resolvedPath = %q, want \"std\"", resolvedPath)
	}
	if !strings.Contains(content, "length") {
		t.Errorf("expected the embedded std library to define length, got:\n%s", content)
	}
}

func TestResolver_EmbeddedNestedArithModule(t *testing.T) {
	r := New()
	content, resolvedPath, err := r.Resolve("", "std/arith")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolvedPath != "std/arith" {
		t.Errorf("resolvedPath = %q, want \"std/arith\"", resolvedPath)
	}
	if !strings.Contains(content, "<") {
		t.Errorf("expected the embedded std/arith library to define \"<\", got:\n%s", content)
	}
}

func TestResolver_UnknownEmbeddedLibraryIsAnError(t *testing.T) {
	r := New()
	if _, _, err := r.Resolve("", "does-not-exist"); err == nil {
		t.Fatal("expected an error resolving an unknown embedded library")
	}
}

func TestResolver_FilesystemRequestRelativeToBasePath(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "helper.lisp"), []byte("(def x 1)"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	basePath := filepath.Join(dir, "main.lisp")

	r := New()
	content, resolvedPath, err := r.Resolve(basePath, "./helper.lisp")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "(def x 1)" {
		t.Errorf("content = %q", content)
	}
	if !filepath.IsAbs(resolvedPath) {
		t.Errorf("resolvedPath should be canonicalized absolute, got %q", resolvedPath)
	}
}

func TestResolver_FilesystemRequestMissingFileIsAnError(t *testing.T) {
	r := New()
	if _, _, err := r.Resolve("", "./nope.lisp"); err == nil {
		t.Fatal("expected an error for a missing filesystem module")
	}
}
