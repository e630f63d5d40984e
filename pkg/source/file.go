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

// Package source holds the position metadata attached to every parsed AST
// node: a file path together with the inclusive (line, col) range a node
// spans within it.
package source

// File represents one source unit (a filesystem path, an embedded-library
// module, or a synthetic name such as "<stdin>"). Contents are kept as runes
// so byte offsets used by Span always land on rune boundaries even for
// multi-byte UTF-8 input: the offsets used by Span are rune indices.
type File struct {
	path     string
	contents []rune
	// lineStarts[i] is the rune offset of the first character of line i+2
	// (line 1 always starts at offset 0). Built once at construction.
	lineStarts []int
}

// NewFile constructs a File from its path and UTF-8 decoded contents.
func NewFile(path string, contents string) *File {
	runes := []rune(contents)
	return &File{
		path:       path,
		contents:   runes,
		lineStarts: buildLineStarts(runes),
	}
}

func buildLineStarts(runes []rune) []int {
	var starts []int
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Path returns the file's path or logical name.
func (f *File) Path() string {
	return f.path
}

// Contents returns the decoded file contents.
func (f *File) Contents() []rune {
	return f.contents
}

// Resolve converts a rune offset into a one-based (line, col) pair.
func (f *File) Resolve(offset int) LineCol {
	// Linear scan for the line containing offset: the greatest
	// lineStarts[i] <= offset determines the line number (lineStarts[i]
	// begins line i+2).
	line := 1
	lineStart := 0
	for _, start := range f.lineStarts {
		if start > offset {
			break
		}
		line++
		lineStart = start
	}
	return LineCol{Line: line, Col: offset - lineStart + 1}
}

// ResolveSpan resolves both ends of a span to (line, col) pairs.
func (f *File) ResolveSpan(span Span) (start, end LineCol) {
	return f.Resolve(span.Start), f.Resolve(span.End)
}
