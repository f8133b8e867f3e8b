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

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/mhcoma/sabr/internal/bytecode"
)

var simpleEscapes = map[byte]int64{
	'a':  0x07,
	'b':  0x08,
	'e':  0x1B,
	'f':  0x0C,
	'n':  0x0A,
	'r':  0x0D,
	't':  0x09,
	'v':  0x0B,
	'\\': 0x5C,
	'\'': 0x27,
	'"':  0x22,
}

// decodeLiteral walks the content between a literal's delimiters,
// decoding one character or escape sequence at a time into a sequence
// of code points in source order. A plain character that happens to
// be a multi-byte UTF-8 rune decodes to a single code point, the same
// as a \u or \U escape would.
func decodeLiteral(content string) ([]int64, error) {
	var units []int64
	i := 0
	for i < len(content) {
		if content[i] != '\\' {
			if content[i] == '\'' || content[i] == '"' {
				return nil, fmt.Errorf("unquoted %c inside literal content", content[i])
			}
			r, size := utf8.DecodeRuneInString(content[i:])
			if r == utf8.RuneError && size <= 1 {
				return nil, fmt.Errorf("invalid UTF-8 in literal content")
			}
			units = append(units, int64(r))
			i += size
			continue
		}

		i++
		if i >= len(content) {
			return nil, fmt.Errorf("literal ends with a dangling backslash")
		}
		esc := content[i]
		if v, ok := simpleEscapes[esc]; ok {
			units = append(units, v)
			i++
			continue
		}

		switch {
		case esc >= '0' && esc <= '7':
			v := int64(0)
			n := 0
			for n < 3 && i < len(content) && content[i] >= '0' && content[i] <= '7' {
				v = v*8 + int64(content[i]-'0')
				i++
				n++
			}
			units = append(units, v)
		case esc == 'x':
			v, err := readHex(content, i+1, 2)
			if err != nil {
				return nil, err
			}
			units = append(units, v)
			i += 3
		case esc == 'u':
			v, err := readHex(content, i+1, 4)
			if err != nil {
				return nil, err
			}
			units = append(units, v)
			i += 5
		case esc == 'U':
			v, err := readHex(content, i+1, 8)
			if err != nil {
				return nil, err
			}
			units = append(units, v)
			i += 9
		default:
			return nil, fmt.Errorf("unknown escape sequence \\%c", esc)
		}
	}
	return units, nil
}

func readHex(s string, start, n int) (int64, error) {
	if start+n > len(s) {
		return 0, fmt.Errorf("truncated escape sequence")
	}
	v, err := strconv.ParseInt(s[start:start+n], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid escape sequence: %w", err)
	}
	return v, nil
}

// literalValues decodes a quoted token (tok[0] and tok[len(tok)-1]
// are the matching quote characters) into the Values the parser
// emits. Units decode in source order but emit in reverse, and a
// double-quoted string gets one extra trailing Value holding its
// length — the last thing emitted, so it ends up on top of the stack.
func literalValues(tok string) ([]bytecode.Value, error) {
	if len(tok) < 2 {
		return nil, fmt.Errorf("malformed literal %q", tok)
	}
	quote := tok[0]
	content := tok[1 : len(tok)-1]
	units, err := decodeLiteral(content)
	if err != nil {
		return nil, err
	}

	values := make([]bytecode.Value, 0, len(units)+1)
	for i := len(units) - 1; i >= 0; i-- {
		values = append(values, bytecode.Int(units[i]))
	}
	if quote == '"' {
		values = append(values, bytecode.Int(int64(len(units))))
	}
	return values, nil
}
