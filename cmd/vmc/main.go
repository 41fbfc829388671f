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

// Command vmc loads a flat binary image and runs it on the nibble computer
// virtual machine.
package main

import (
	"fmt"
	"os"

	"github.com/dionysus/nibblecomputer/internal/ngi"
	"github.com/dionysus/nibblecomputer/vm"
	"github.com/spf13/pflag"
)

var (
	debug         bool
	skipSizeCheck bool
)

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "PC: 0x%02X, Register: 0x%02X\n", i.PC, i.Register)
	}
	os.Exit(1)
}

// debugStep dumps machine state after every instruction and blocks for a
// keypress before the VM continues, per the -d/--debug flag.
func debugStep(i *vm.Instance, line int, op vm.Opcode, data byte) error {
	if err := vm.DumpState(i, os.Stdout); err != nil {
		return err
	}
	if err := vm.DumpStep(os.Stdout, line, op, data); err != nil {
		return err
	}
	return ngi.WaitKeypress()
}

func main() {
	pflag.BoolVarP(&debug, "debug", "d", false, "dump machine state and wait for a keypress after every instruction")
	pflag.BoolVarP(&skipSizeCheck, "skip-rom-size-check", "w", false, "allow an image larger than the default ROM capacity")
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vmc [-d] [-w] file.bin")
		os.Exit(1)
	}

	rom, err := vm.Load(pflag.Arg(0), skipSizeCheck)
	if err != nil {
		atExit(nil, err)
	}

	var opts []vm.Option
	if debug {
		opts = append(opts, vm.OnStep(debugStep))
	}
	i := vm.New(rom, opts...)

	err = i.Run()
	atExit(i, err)
}
