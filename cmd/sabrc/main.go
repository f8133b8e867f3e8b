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

	"github.com/mhcoma/sabr/internal/compiler"
)

var outFlag = flag.String("o", "", "output bytecode file (default: input file with .sab extension)")

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		usage()
	}
	input := args[0]
	output := *outFlag
	if output == "" {
		output = defaultOutput(input)
	}

	c := compiler.New()
	defer c.Close()

	if err := c.Compile(input, output); err != nil {
		os.Exit(1)
	}
}

func defaultOutput(input string) string {
	for i := len(input) - 1; i >= 0 && input[i] != '/'; i-- {
		if input[i] == '.' {
			return input[:i] + ".sab"
		}
	}
	return input + ".sab"
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sabrc [options] source-file\nOptions:")
	flag.PrintDefaults()
	os.Exit(2)
}
