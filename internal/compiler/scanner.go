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

// quoteState tracks whether the scanner is inside a quoted literal,
// and which quote character opened it.
type quoteState int

const (
	quoteNone quoteState = iota
	quoteSingle
	quoteDouble
)

// commentState tracks whether the scanner is skipping a comment, and
// which form: a line comment started by a bare backslash (runs to end
// of line) or a stack comment started by '(' (runs only to the first
// following ')').
type commentState int

const (
	commentNone commentState = iota
	commentLine
	commentStack
)

// tokenize scans the text buffer on top of the compiler's file stack
// one byte at a time, dispatching each complete token to parseToken as
// soon as trailing whitespace closes it. Quote and comment state are
// local to this call so a nested import (recursed into from inside
// parseToken, via the IMPORT control word) always starts scanning its
// own file fresh; line and column counters live on the compiler and
// keep advancing across that recursion, matching how position
// tracking is not reset by entering an imported file.
func (c *Compiler) tokenize() error {
	idx := c.textIndexStack[len(c.textIndexStack)-1]
	text := c.registry.texts[idx]

	space := true
	begin := 0
	quote := quoteNone
	escaped := false
	comment := commentNone

	i := 0
	for i < len(text) && text[i] != 0 {
		b := text[i]
		switch b {
		case '\n':
			c.line++
			fallthrough
		case '\r':
			c.column = 0
			if comment == commentLine {
				space = true
				comment = commentNone
			}
			fallthrough
		case '\t', ' ':
			if comment == commentNone {
				if !space {
					if quote != quoteNone {
						if escaped {
							escaped = false
						}
					} else {
						if err := c.parseToken(text[begin:i]); err != nil {
							return err
						}
						space = true
					}
				}
			}

		case '\'':
			if comment == commentNone {
				if quote != quoteNone {
					if escaped {
						escaped = false
					} else if quote == quoteSingle {
						quote = quoteNone
					}
				} else if space {
					space = false
					begin = i
					quote = quoteSingle
					escaped = false
				}
			}

		case '"':
			if comment == commentNone {
				if quote != quoteNone {
					if escaped {
						escaped = false
					} else if quote == quoteDouble {
						quote = quoteNone
					}
				} else if space {
					space = false
					begin = i
					quote = quoteDouble
					escaped = false
				}
			}

		case '\\':
			if comment == commentNone {
				if quote != quoteNone {
					escaped = !escaped
				} else if space {
					space = false
					comment = commentLine
				}
			}

		case '(':
			if comment == commentNone {
				if quote != quoteNone {
					if escaped {
						escaped = false
					}
				} else if space {
					space = false
					comment = commentStack
				}
			}

		case ')':
			if comment == commentNone {
				if quote != quoteNone {
					if escaped {
						escaped = false
					}
				}
			}
			if comment == commentStack {
				space = true
				comment = commentNone
			}

		default:
			if comment == commentNone {
				if quote != quoteNone {
					if escaped {
						escaped = false
					}
				}
				if space {
					space = false
					begin = i
				}
			}
		}

		i++
		if i < len(text) && int8(text[i]) >= -64 {
			c.column++
		}
	}

	if len(c.ctrl) > 0 {
		return c.errf("control level does not match at end of file")
	}
	return nil
}
