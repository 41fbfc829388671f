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

package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dionysus/nibblecomputer/machine"
	"github.com/pkg/errors"
)

// sto implements the sto opcode's memory-mapped read: INPUT prompts for a
// decimal number, OUTPUT draws a random byte, any other address reads RAM
// as usual.
func (i *Instance) sto(addr int) error {
	switch addr {
	case machine.InputAddr:
		v, err := i.readInput()
		if err != nil {
			return err
		}
		i.Register = v
	case machine.OutputAddr:
		i.Register = i.rnd()
	default:
		i.Register = i.RAM[addr]
	}
	return nil
}

// pop implements the pop opcode's memory-mapped write: OUTPUT prints the
// register as decimal, any other address writes RAM as usual.
func (i *Instance) pop(addr int) error {
	if addr == machine.OutputAddr {
		_, err := fmt.Fprintf(i.output, "%d\n", i.Register)
		return errors.Wrap(err, "write to OUTPUT failed")
	}
	i.RAM[addr] = i.Register
	return nil
}

// readInput prompts for and reads one line of decimal input, masked to 8
// bits. A malformed line is a fatal error: this implementation does not
// re-prompt (see DESIGN.md's Open Question decision).
func (i *Instance) readInput() (byte, error) {
	if i.prompt != nil {
		fmt.Fprint(i.prompt, "input 8-bit number >")
	}
	line, err := i.in.ReadString('\n')
	if err != nil && line == "" {
		return 0, errors.Wrap(err, "read from INPUT failed")
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errors.Wrapf(err, "malformed input %q", strings.TrimSpace(line))
	}
	return machine.Mask8(n), nil
}
