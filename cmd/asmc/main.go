// This file is part of nibblecomputer.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command asmc compiles nibble-computer assembly source into a flat
// binary image executable by cmd/vmc.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dionysus/nibblecomputer/asm"
	"github.com/spf13/pflag"
)

var (
	outFileName   string
	skipSizeCheck bool
)

func atExit(err error) {
	if err == nil {
		return
	}
	if e, ok := asm.AsError(err); ok {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		if e.Line > 0 {
			fmt.Fprintf(os.Stderr, "line %d: %s\n", e.Line, strings.Join(e.Tokens, " "))
		}
		if e.Dump != "" {
			fmt.Fprintln(os.Stderr, e.Dump)
		}
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

func defaultOutFileName(in string) string {
	if strings.HasSuffix(in, ".asm") {
		return strings.TrimSuffix(in, ".asm") + ".bin"
	}
	return in + ".bin"
}

func main() {
	pflag.StringVarP(&outFileName, "outfile", "o", "", "output `file` (default: infile with .asm replaced by .bin)")
	pflag.BoolVarP(&skipSizeCheck, "skip-rom-size-check", "w", false, "allow a compiled image larger than the default ROM budget")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: asmc [-o outfile] [-w] infile.asm")
		os.Exit(1)
	}
	inFileName := pflag.Arg(0)

	in, err := os.Open(inFileName)
	if err != nil {
		atExit(err)
	}
	defer in.Close()

	img, err := asm.Assemble(inFileName, in, os.Stderr, skipSizeCheck)
	if err != nil {
		atExit(err)
	}

	if outFileName == "" {
		outFileName = defaultOutFileName(inFileName)
	}
	if err := os.WriteFile(outFileName, img, 0666); err != nil {
		atExit(err)
	}

	fmt.Printf("Compiled size: %d bytes\n", len(img))
}
