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

import "github.com/dionysus/nibblecomputer/machine"

// wrapPC reduces pc modulo the current ROM length, per the unconditional
// PC wrap-around rule: every PC assignment, including arithmetic overflow
// off either end of ROM, is taken modulo len(ROM).
func (i *Instance) wrapPC(pc int) int {
	n := len(i.ROM)
	pc %= n
	if pc < 0 {
		pc += n
	}
	return pc
}

// fetchImmediate advances PC past the instruction's immediate byte and
// returns it. set, jmp and jmc all use this to consume their second byte
// in the same pass that decodes the first.
func (i *Instance) fetchImmediate() byte {
	i.PC = i.wrapPC(i.PC + 1)
	return i.ROM[i.PC]
}

// Run steps the VM until it halts. Halted is set false on entry. Run
// returns the first error an instruction handler or the step hook reports
// (a failed or malformed sto &INPUT read, or a failed pop &OUTPUT write).
func (i *Instance) Run() error {
	i.Halted = false
	for !i.Halted {
		line := i.PC
		instr := i.ROM[i.PC]
		op := Opcode(instr >> 4)
		data := int(instr & 0xF)

		if err := i.exec(op, data); err != nil {
			return err
		}

		if i.onStep != nil {
			if err := i.onStep(i, line, op, byte(data)); err != nil {
				return err
			}
		}

		if !i.Halted {
			i.PC = i.wrapPC(i.PC + 1)
		}
	}
	return nil
}

// exec dispatches a single decoded instruction. Branch and two-byte
// instructions mutate PC directly; every other instruction leaves PC
// untouched for Run's trailing wrap-and-increment.
func (i *Instance) exec(op Opcode, data int) error {
	switch op {
	case OpNop:
		// no effect
	case OpHlt:
		i.Halted = true
	case OpSto:
		return i.sto(data)
	case OpPop:
		return i.pop(data)
	case OpSet:
		v := i.fetchImmediate()
		if data == machine.InputAddr {
			i.Register = v
		} else {
			i.RAM[data] = v
		}
	case OpAdd:
		i.Register = machine.Mask8(int(i.Register) + int(i.RAM[data]))
	case OpJmp:
		t := i.fetchImmediate()
		i.PC = i.wrapPC(int(t) - 1)
	case OpJmc:
		t := i.fetchImmediate()
		if i.Register == 0xFF {
			i.PC = i.wrapPC(int(t) - 1)
		}
	case OpNeg:
		// Operates on the immediate nibble itself, not on RAM[data]. This
		// is a preserved quirk of the original ISA, not a bug.
		i.RAM[data] = machine.Mask8(-data)
	case OpRgt:
		i.Register = boolByte(i.Register > i.RAM[data])
	case OpRlt:
		i.Register = boolByte(i.Register < i.RAM[data])
	case OpReq:
		i.Register = boolByte(i.Register == i.RAM[data])
	case OpNot:
		i.Register = ^i.Register
	case OpAnd:
		i.Register &= i.RAM[data]
	case OpXor:
		i.Register ^= i.RAM[data]
	case OpOrr:
		i.Register |= i.RAM[data]
	}
	return nil
}

// boolByte renders a comparison result as the machine's canonical boolean
// bytes: 0xFF for true, 0x00 for false.
func boolByte(b bool) byte {
	if b {
		return 0xFF
	}
	return 0x00
}
