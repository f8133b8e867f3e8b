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
package compiler

import "fmt"

// compileError carries the file/line/column context spec.md §7 requires
// every diagnostic to report when a token position is available. The
// zero value of line means "no token position applies" (e.g. an I/O
// failure opening the initial source file).
type compileError struct {
	path      string
	line, col int
	msg       string
}

func (e *compileError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("%s (line %d, column %d)", e.msg, e.line, e.col)
	}
	return e.msg
}

// errf builds a compileError stamped with the compiler's current file
// and scan position, the way every diagnostic in the original raises
// one message carrying the offending token's location.
func (c *Compiler) errf(format string, args ...any) error {
	return &compileError{
		path: c.currentPath(),
		line: c.line,
		col:  c.column,
		msg:  fmt.Sprintf(format, args...),
	}
}

// errfAt is like errf but without a token position, for failures that
// precede any scanning of the named file (e.g. it can't be opened).
func (c *Compiler) errfAt(path, format string, args ...any) error {
	return &compileError{path: path, msg: fmt.Sprintf(format, args...)}
}
