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
	"strings"

	"github.com/mhcoma/sabr/internal/bytecode"
)

// parseNumber decodes a numeric token: an optional +/- sign, an
// optional 0x/0o/0b base prefix, and either an integer or (if the
// token contains a '.') a float. An integer that overflows int64 is
// retried as uint64 before being reported as invalid.
func parseNumber(tok string) (bytecode.Value, error) {
	if strings.ContainsRune(tok, '.') {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return bytecode.Value{}, fmt.Errorf("invalid number %q: %w", tok, err)
		}
		return bytecode.Float(f), nil
	}

	negative := false
	rest := tok
	switch {
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	case strings.HasPrefix(rest, "-"):
		negative = true
		rest = rest[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(rest, "0x"), strings.HasPrefix(rest, "0X"):
		base, rest = 16, rest[2:]
	case strings.HasPrefix(rest, "0o"), strings.HasPrefix(rest, "0O"):
		base, rest = 8, rest[2:]
	case strings.HasPrefix(rest, "0b"), strings.HasPrefix(rest, "0B"):
		base, rest = 2, rest[2:]
	}
	if rest == "" {
		return bytecode.Value{}, fmt.Errorf("invalid number %q", tok)
	}

	if i, err := strconv.ParseInt(rest, base, 64); err == nil {
		if negative {
			i = -i
		}
		return bytecode.Int(i), nil
	}

	u, err := strconv.ParseUint(rest, base, 64)
	if err != nil {
		return bytecode.Value{}, fmt.Errorf("invalid number %q: %w", tok, err)
	}
	if negative {
		return bytecode.Int(-int64(u)), nil
	}
	return bytecode.Uint(u), nil
}
