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
	radix "github.com/armon/go-radix"

	"github.com/mhcoma/sabr/internal/bytecode"
)

// wordCategory classifies a dictionary entry the way compiler_parse's
// token dispatch does: a control word drives the backpatch engine, an
// op is a built-in stack operator emitted verbatim, and a user keyword
// is a $name binding created with the $ prefix rule.
type wordCategory int

const (
	catControl wordCategory = iota
	catOp
	catUserKeyword
)

type dictEntry struct {
	category wordCategory
	control  controlKind    // valid when category == catControl
	op       bytecode.Opcode // valid when category == catOp
	keyword  bytecode.Value  // valid when category == catUserKeyword: its CALL operand
}

// dictionary is the token -> entry lookup table. A radix tree is the
// natural fit: tokens share long common prefixes ("if"/"import",
// "case"/"continue") and the compiler never needs anything but exact
// lookup and insert.
type dictionary struct {
	tree *radix.Tree
}

func newDictionary() *dictionary {
	d := &dictionary{tree: radix.New()}
	d.insertBuiltins()
	return d
}

func (d *dictionary) find(key string) (*dictEntry, bool) {
	v, ok := d.tree.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*dictEntry), true
}

// insert registers key if it is not already present and returns the
// resulting entry; an existing entry is returned unchanged. Builtins
// are inserted exactly once at startup, so collisions there would be a
// programming error, but user keywords insert through this same path
// and collision-with-existing-keyword is a normal, non-error case (the
// $name already exists: reuse its CALL operand).
func (d *dictionary) insert(key string, e *dictEntry) *dictEntry {
	if existing, ok := d.find(key); ok {
		return existing
	}
	d.tree.Insert(key, e)
	return e
}

var controlWords = map[string]controlKind{
	"if":       ctrlIf,
	"else":     ctrlElse,
	"loop":     ctrlLoop,
	"while":    ctrlWhile,
	"break":    ctrlBreak,
	"continue": ctrlContinue,
	"switch":   ctrlSwitch,
	"case":     ctrlCase,
	"pass":     ctrlPass,
	"func":     ctrlFunc,
	"macro":    ctrlMacro,
	"return":   ctrlReturn,
	"end":      ctrlEnd,
	"import":   ctrlImport,
}

// builtinOps is the stack machine's fixed operator vocabulary. See
// internal/bytecode/opcode.go for why this set is a judgment call
// rather than a recovered table.
var builtinOps = map[string]bytecode.Opcode{
	"+":    bytecode.OpAdd,
	"-":    bytecode.OpSub,
	"*":    bytecode.OpMul,
	"/":    bytecode.OpDiv,
	"%":    bytecode.OpMod,
	"&":    bytecode.OpAnd,
	"|":    bytecode.OpOr,
	"^":    bytecode.OpXor,
	"~":    bytecode.OpNot,
	"<<":   bytecode.OpShl,
	">>":   bytecode.OpShr,
	"dup":  bytecode.OpDup,
	"drop": bytecode.OpDrop,
	"swap": bytecode.OpSwap,
	"over": bytecode.OpOver,
	"<":    bytecode.OpLt,
	">":    bytecode.OpGt,
	"@":    bytecode.OpLoad,
	"!":    bytecode.OpStore,
}

func (d *dictionary) insertBuiltins() {
	for name, kind := range controlWords {
		d.tree.Insert(name, &dictEntry{category: catControl, control: kind})
	}
	for name, op := range builtinOps {
		d.tree.Insert(name, &dictEntry{category: catOp, op: op})
	}
}
