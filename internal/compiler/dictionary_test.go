/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

package compiler

import (
	"testing"

	"github.com/mhcoma/sabr/internal/bytecode"
)

func TestDictionaryBuiltinControlWords(t *testing.T) {
	d := newDictionary()
	e, ok := d.find("if")
	check(t, true, ok)
	check(t, catControl, e.category)
	check(t, ctrlIf, e.control)
}

func TestDictionaryBuiltinOps(t *testing.T) {
	d := newDictionary()
	e, ok := d.find("dup")
	check(t, true, ok)
	check(t, catOp, e.category)
	check(t, bytecode.OpDup, e.op)
}

func TestDictionaryInsertIsIdempotent(t *testing.T) {
	d := newDictionary()
	first := d.insert("foo", &dictEntry{category: catUserKeyword, keyword: bytecode.Uint(0)})
	second := d.insert("foo", &dictEntry{category: catUserKeyword, keyword: bytecode.Uint(99)})
	if first != second {
		t.Fatalf("insert on an existing key returned a different entry")
	}
	check(t, uint64(0), second.keyword.Uint())
}

func TestDictionaryMissingKey(t *testing.T) {
	d := newDictionary()
	_, ok := d.find("not-a-real-word")
	check(t, false, ok)
}
