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
)

func TestDecodeLiteralPlainChars(t *testing.T) {
	units, err := decodeLiteral("AB")
	require.NoError(t, err)
	require.Equal(t, []int64{'A', 'B'}, units)
}

func TestDecodeLiteralSimpleEscapes(t *testing.T) {
	units, err := decodeLiteral(`\n\t\\`)
	require.NoError(t, err)
	require.Equal(t, []int64{0x0A, 0x09, 0x5C}, units)
}

func TestDecodeLiteralOctalEscape(t *testing.T) {
	units, err := decodeLiteral(`\101`)
	require.NoError(t, err)
	require.Equal(t, []int64{'A'}, units)
}

func TestDecodeLiteralHexEscape(t *testing.T) {
	units, err := decodeLiteral(`\x41`)
	require.NoError(t, err)
	require.Equal(t, []int64{'A'}, units)
}

func TestDecodeLiteralUnicodeEscapes(t *testing.T) {
	units, err := decodeLiteral("\\u0041")
	require.NoError(t, err)
	require.Equal(t, []int64{'A'}, units)

	units, err = decodeLiteral(`\U00000041`)
	require.NoError(t, err)
	require.Equal(t, []int64{'A'}, units)
}

func TestDecodeLiteralMultiByteUTF8(t *testing.T) {
	units, err := decodeLiteral("é") // é, 2 UTF-8 bytes, 1 code point
	require.NoError(t, err)
	require.Equal(t, []int64{0xe9}, units)
}

func TestDecodeLiteralDanglingBackslashIsAnError(t *testing.T) {
	_, err := decodeLiteral(`\`)
	require.Error(t, err)
}

func TestDecodeLiteralUnescapedQuoteIsAnError(t *testing.T) {
	_, err := decodeLiteral(`"`)
	require.Error(t, err)

	_, err = decodeLiteral(`'`)
	require.Error(t, err)
}

func TestDecodeLiteralInvalidUTF8IsAnError(t *testing.T) {
	_, err := decodeLiteral(string([]byte{0xFF}))
	require.Error(t, err)
}

func TestLiteralValuesDoubleQuotedReversesAndAppendsLength(t *testing.T) {
	values, err := literalValues(`"AB"`)
	require.NoError(t, err)
	require.Len(t, values, 3)
	check(t, int64('B'), values[0].Int())
	check(t, int64('A'), values[1].Int())
	check(t, int64(2), values[2].Int())
}

func TestLiteralValuesSingleQuotedHasNoTrailingLength(t *testing.T) {
	values, err := literalValues(`'x'`)
	require.NoError(t, err)
	require.Len(t, values, 1)
	check(t, int64('x'), values[0].Int())
}
