/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify it
under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful, but
WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public
License along with this program. If not, see
<http://www.gnu.org/licenses/>.
*/
// Package compiler implements the scanner, dictionary, control-flow
// backpatching engine and literal/number parsers that turn sabr
// source into a flat bytecode image, following imports as they're
// encountered.
package compiler

import (
	"errors"
	"os"

	"github.com/mhcoma/sabr/internal/diag"
)

// Compiler holds everything one source-to-bytecode compilation needs:
// the keyword dictionary, the registry of every file read so far (so
// a repeated import is a no-op), the emitted bytecode buffer, the open
// control-flow frames, the pending preprocessor-token stack, and the
// scanner's line/column position.
type Compiler struct {
	dict     *dictionary
	registry *sourceRegistry

	textIndexStack []int
	preproc        []string

	bytecode []byte
	ctrl     controlStack

	nextKeyword int

	line   int
	column int
}

// New returns a Compiler with its dictionary preloaded with the
// control words and built-in operators every source file can use
// without declaring.
func New() *Compiler {
	return &Compiler{
		dict:        newDictionary(),
		registry:    newSourceRegistry(),
		line:        1,
		column:      0,
		nextKeyword: 1,
	}
}

// Close releases any resources held across a Compile call. The loader
// reads each file to completion rather than keeping a handle open, so
// there is nothing to release today; Close exists for symmetry with
// callers that defer it unconditionally.
func (c *Compiler) Close() error {
	return nil
}

// currentPath returns the canonical path of the file currently being
// scanned, or "" if none is (e.g. before the first Load).
func (c *Compiler) currentPath() string {
	if len(c.textIndexStack) == 0 {
		return ""
	}
	idx := c.textIndexStack[len(c.textIndexStack)-1]
	return c.registry.filenames[idx]
}

// Compile reads inputPath, compiles it (following every import it
// reaches) into a single bytecode image, and writes that image to
// outputPath. On failure it reports a diagnostic to stderr and
// returns the error.
func (c *Compiler) Compile(inputPath, outputPath string) error {
	if err := c.compileSource(inputPath); err != nil {
		c.report(err)
		return err
	}
	if err := os.WriteFile(outputPath, c.bytecode, 0o644); err != nil {
		diag.Fatal(outputPath, 0, 0, "file saving failure: "+err.Error())
		return err
	}
	return nil
}

// compileSource loads path, pushes it onto the file stack, and
// tokenizes it to completion. It recurses synchronously: an IMPORT
// control word encountered mid-scan calls this again before the
// enclosing tokenize resumes, which is how imports are inlined in
// source order.
func (c *Compiler) compileSource(path string) error {
	idx, err := c.registry.load(path)
	if err != nil {
		return c.errfAt(path, "cannot open source file: %v", err)
	}

	c.textIndexStack = append(c.textIndexStack, idx)
	err = c.tokenize()
	c.textIndexStack = c.textIndexStack[:len(c.textIndexStack)-1]
	return err
}

// report prints the one diagnostic a failed compile produces: the
// file path and message, with a line/column when the failing token
// carried one.
func (c *Compiler) report(err error) {
	var ce *compileError
	if errors.As(err, &ce) {
		path := ce.path
		if path == "" {
			path = c.currentPath()
		}
		diag.Fatal(path, ce.line, ce.col, ce.msg)
		return
	}
	diag.Fatal(c.currentPath(), 0, 0, err.Error())
}
