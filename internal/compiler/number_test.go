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

	"github.com/stretchr/testify/require"

	"github.com/mhcoma/sabr/internal/bytecode"
)

func TestParseNumberDecimal(t *testing.T) {
	v, err := parseNumber("42")
	require.NoError(t, err)
	check(t, int64(42), v.Int())
}

func TestParseNumberNegativeHex(t *testing.T) {
	v, err := parseNumber("-0x10")
	require.NoError(t, err)
	check(t, int64(-16), v.Int())
}

func TestParseNumberOctalAndBinary(t *testing.T) {
	v, err := parseNumber("0o17")
	require.NoError(t, err)
	check(t, int64(15), v.Int())

	v, err = parseNumber("0b101")
	require.NoError(t, err)
	check(t, int64(5), v.Int())
}

func TestParseNumberFloat(t *testing.T) {
	v, err := parseNumber("3.5")
	require.NoError(t, err)
	check(t, 3.5, v.Float())
}

func TestParseNumberSignedOverflowRetriedAsUnsigned(t *testing.T) {
	// 2^64 - 1 overflows int64 but fits uint64.
	v, err := parseNumber("18446744073709551615")
	require.NoError(t, err)
	check(t, uint64(18446744073709551615), v.Uint())
	_ = bytecode.Value{}
}

func TestParseNumberInvalid(t *testing.T) {
	_, err := parseNumber("0xZZ")
	require.Error(t, err)
}
