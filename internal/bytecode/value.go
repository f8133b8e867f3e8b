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
// Package bytecode defines the wire format shared with the (out-of-scope)
// interpreter: the 8-byte Value cell and the Opcode enumeration.
package bytecode

import (
	"encoding/binary"
	"math"
)

// Size is the width in bytes of every operand emitted after an
// opcode that takes one. Backpatching depends on this never changing:
// a placeholder written at emission time is always exactly Size bytes.
const Size = 8

// Value is a tagged-free 64-bit cell, reinterpretable as a signed
// integer, unsigned integer, IEEE-754 double, or eight raw bytes. It is
// always stored and emitted in little-endian byte order.
type Value [Size]byte

// Int builds a Value from a signed integer.
func Int(i int64) Value {
	return fromUint(uint64(i))
}

// Uint builds a Value from an unsigned integer.
func Uint(u uint64) Value {
	return fromUint(u)
}

// Float builds a Value from a float64.
func Float(f float64) Value {
	return fromUint(math.Float64bits(f))
}

func fromUint(u uint64) Value {
	var v Value
	binary.LittleEndian.PutUint64(v[:], u)
	return v
}

// Int reads the Value back as a signed integer.
func (v Value) Int() int64 {
	return int64(binary.LittleEndian.Uint64(v[:]))
}

// Uint reads the Value back as an unsigned integer.
func (v Value) Uint() uint64 {
	return binary.LittleEndian.Uint64(v[:])
}

// Float reads the Value back as a float64.
func (v Value) Float() float64 {
	return math.Float64frombits(v.Uint())
}

// Bytes returns the little-endian byte image of the Value.
func (v Value) Bytes() []byte {
	return v[:]
}

// FromBytes reconstructs a Value from its little-endian byte image.
// Panics if b is shorter than Size, mirroring an out-of-bounds slice
// access — callers own validating operand width before calling this.
func FromBytes(b []byte) Value {
	var v Value
	copy(v[:], b[:Size])
	return v
}
