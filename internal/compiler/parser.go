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
	"strings"

	"github.com/mhcoma/sabr/internal/bytecode"
)

// parseToken classifies and compiles one scanned token: a dictionary
// hit dispatches by category (control word, built-in operator, or
// $name user keyword); a miss dispatches on the token's first byte.
func (c *Compiler) parseToken(tok string) error {
	if entry, ok := c.dict.find(tok); ok {
		switch entry.category {
		case catControl:
			return c.handleControlWord(entry.control)
		case catOp:
			c.emit(entry.op)
			return nil
		case catUserKeyword:
			c.emitValue(bytecode.OpCall, entry.keyword)
			return nil
		}
	}

	switch tok[0] {
	case '+', '-', '.':
		return c.parseNumberToken(tok)
	case '#':
		return c.parsePreprocToken(tok)
	case '\'', '"':
		return c.parseLiteralToken(tok)
	case '$':
		return c.parseKeywordToken(tok)
	default:
		if tok[0] >= '0' && tok[0] <= '9' {
			return c.parseNumberToken(tok)
		}
		return c.errf("unknown keyword %q", tok)
	}
}

func (c *Compiler) parseNumberToken(tok string) error {
	v, err := parseNumber(tok)
	if err != nil {
		return c.errf("%v", err)
	}
	c.emitValue(bytecode.OpValue, v)
	return nil
}

func (c *Compiler) parseLiteralToken(tok string) error {
	values, err := literalValues(tok)
	if err != nil {
		return c.errf("%v", err)
	}
	for _, v := range values {
		c.emitValue(bytecode.OpValue, v)
	}
	return nil
}

// parsePreprocToken registers #name as a preprocessor token, consumed
// by the next import.
func (c *Compiler) parsePreprocToken(tok string) error {
	name := strings.TrimPrefix(tok, "#")
	if name == "" {
		return c.errf("empty preprocessor token")
	}
	c.preproc = append(c.preproc, name)
	return nil
}

// parseKeywordToken implements the $name user-keyword rule: a fresh
// name is assigned the next sequential keyword id and registered as a
// USER_KEYWORD; reusing an existing $name reuses its id; colliding
// with a control word or built-in operator is an error.
func (c *Compiler) parseKeywordToken(tok string) error {
	name := tok[1:]
	if err := validateKeywordName(name); err != nil {
		return c.errf("%v", err)
	}
	if existing, ok := c.dict.find(name); ok {
		if existing.category != catUserKeyword {
			return c.errf("%q collides with a control word or operator", name)
		}
		c.emitValue(bytecode.OpCall, existing.keyword)
		return nil
	}
	id := bytecode.Uint(uint64(c.nextKeyword))
	c.nextKeyword++
	c.dict.insert(name, &dictEntry{category: catUserKeyword, keyword: id})
	c.emitValue(bytecode.OpCall, id)
	return nil
}

// validateKeywordName rejects names that would be ambiguous with a
// number or literal if scanned on their own: empty, a bare digit
// start, a sign-then-digit start, or a quote/preprocessor/keyword
// marker start.
func validateKeywordName(name string) error {
	if name == "" {
		return fmt.Errorf("empty $ keyword name")
	}
	b := name[0]
	switch {
	case b >= '0' && b <= '9':
		return fmt.Errorf("$ keyword %q cannot start with a digit", name)
	case b == '@' || b == '#' || b == '$' || b == '\'' || b == '"':
		return fmt.Errorf("$ keyword %q cannot start with %q", name, b)
	case (b == '+' || b == '-') && len(name) > 1 && name[1] >= '0' && name[1] <= '9':
		return fmt.Errorf("$ keyword %q looks like a number", name)
	}
	return nil
}
