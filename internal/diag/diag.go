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
// Package diag formats the compiler's one-shot, fatal-on-sight
// diagnostics. Every compile error is reported exactly once, to
// stderr, in a fixed two-line form:
//
//	<canonical-path-in-yellow-bold>
//	error : <message>
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var pathColor = color.New(color.FgYellow, color.Bold)

// Report writes the standard two-line diagnostic for a failure while
// compiling path. line and column are 1-based; pass 0 for either when
// no token position applies (e.g. a file-open failure).
func Report(w io.Writer, path string, line, column int, msg string) {
	pathColor.Fprintln(w, path)
	if line > 0 {
		fmt.Fprintf(w, "error : %s in line %d, column %d\n", msg, line, column)
		return
	}
	fmt.Fprintf(w, "error : %s\n", msg)
}

// Fatal is a convenience wrapper for Report(os.Stderr, ...).
func Fatal(path string, line, column int, msg string) {
	Report(os.Stderr, path, line, column, msg)
}
