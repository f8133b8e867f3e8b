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
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mhcoma/sabr/internal/bytecode"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		usage()
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fatal(fmt.Sprintf("dis: opening %q: %s", args[0], err))
	}

	if err := disassemble(data); err != nil {
		fatal(fmt.Sprintf("dis: %s", err))
	}
}

// disassemble walks a bytecode image and prints one line per
// instruction: its offset, mnemonic, and operand when it has one.
// CASE is a 3-byte unit (CASE, EQU or NEQ, IF) followed by an 8-byte
// jump target, printed as a single logical instruction.
func disassemble(data []byte) error {
	at := 0
	for at < len(data) {
		op := bytecode.Opcode(data[at])

		if op == bytecode.OpCase {
			if at+bytecode.CaseUnitLen > len(data) {
				return fmt.Errorf("truncated CASE unit at offset %d", at)
			}
			cmp := bytecode.Opcode(data[at+1])
			v := bytecode.FromBytes(data[at+3 : at+bytecode.CaseUnitLen])
			fmt.Printf("%06d  CASE %s -> %d\n", at, cmp, v.Int())
			at += bytecode.CaseUnitLen
			continue
		}

		if op.HasOperand() {
			if at+1+bytecode.Size > len(data) {
				return fmt.Errorf("truncated operand for %s at offset %d", op, at)
			}
			v := bytecode.FromBytes(data[at+1 : at+1+bytecode.Size])
			fmt.Printf("%06d  %s %d\n", at, op, v.Int())
			at += 1 + bytecode.Size
			continue
		}

		fmt.Printf("%06d  %s\n", at, op)
		at++
	}
	return nil
}

func fatal(s string) {
	fmt.Fprintln(os.Stderr, s)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sabrdis binary-file")
	flag.PrintDefaults()
	os.Exit(1)
}
