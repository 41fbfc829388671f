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

// Package asm assembles nibble-computer assembly source into a flat binary
// image.
//
// Supported verbs:
//
//	verb	opcode	operands	emitted bytes
//	nop	0x0	-		opcode<<4
//	hlt	0x1	-		opcode<<4
//	sto	0x2	data		opcode<<4 | addr
//	pop	0x3	data		opcode<<4 | addr
//	set	0x4	addr, value	opcode<<4 | addr, value
//	add	0x5	data		opcode<<4 | addr
//	jmp	0x6	label/line	opcode<<4, resolved line
//	jmc	0x7	label/line	opcode<<4, resolved line
//	neg	0x8	data		opcode<<4 | addr
//	rgt	0x9	data		opcode<<4 | addr
//	rlt	0xA	data		opcode<<4 | addr
//	req	0xB	data		opcode<<4 | addr
//	not	0xC	-		opcode<<4
//	and	0xD	data		opcode<<4 | addr
//	xor	0xE	data		opcode<<4 | addr
//	orr	0xF	data		opcode<<4 | addr
//
// rnd is an alias for "sto &OUTPUT" and compiles directly to the byte 0x2F.
//
// Assembler-only verbs def, fre, lbl and cmt emit nothing: they allocate or
// free a variable, bind a label to the current output length, or discard
// the rest of the line respectively.
//
// Operands:
//
// An operand prefixed with '&' is a variable reference, resolved to the RAM
// address bound to the name by a previous "def". An operand prefixed with
// '.' is a label reference, valid only after jmp/jmc, resolved to the ROM
// line number the label was declared at. Any other operand is parsed as an
// integer literal with base auto-detection (decimal, 0x hex, 0o octal, 0b
// binary), exactly as accepted by strconv.ParseInt with base 0.
package asm

import (
	"io"

	"github.com/dionysus/nibblecomputer/machine"
	"github.com/dionysus/nibblecomputer/vm"
)

// runtimeVerbs lists the 16 runtime verbs in opcode order. Index i is the
// mnemonic for vm.Opcode(i).
var runtimeVerbs = vm.Mnemonics

// opcodeOf maps a runtime verb mnemonic to its opcode.
var opcodeOf = func() map[string]vm.Opcode {
	m := make(map[string]vm.Opcode, len(runtimeVerbs))
	for i, v := range runtimeVerbs {
		m[v] = vm.Opcode(i)
	}
	return m
}()

// niladicVerbs take no operand and emit a single byte: opcode<<4.
var niladicVerbs = map[string]bool{"nop": true, "hlt": true, "not": true}

// monadicVerbs take a single data operand and emit a single byte:
// opcode<<4 | (addr & 0xF).
var monadicVerbs = map[string]bool{
	"sto": true, "pop": true, "add": true, "neg": true,
	"rgt": true, "rlt": true, "req": true, "and": true, "xor": true, "orr": true,
}

// branchVerbs take a label or literal line operand and emit two bytes:
// opcode<<4, then the resolved line number.
var branchVerbs = map[string]bool{"jmp": true, "jmc": true}

// rndOpcodeByte is the literal encoding of the "rnd" alias: sto reading
// from OUTPUT_ADDR, which the VM treats as a random byte source.
const rndOpcodeByte = byte(vm.OpSto)<<4 | machine.OutputAddr // 0x2F

// Assemble compiles assembly source read from r into a flat byte image.
// name is used only to prefix the warnings written to warn. On any fatal
// assembly error, Assemble returns the first one encountered (per the
// assembler's fail-fast policy) as an *Error carrying the 1-indexed line.
// Non-fatal warnings (unconsumed trailing operands) are written to warn;
// pass nil to discard them. Unless skipSizeCheck is set, Assemble fails
// with a capacity error when the compiled image exceeds machine.ROMSize
// bytes.
func Assemble(name string, r io.Reader, warn io.Writer, skipSizeCheck bool) ([]byte, error) {
	p := newParser(name, warn)
	img, err := p.parse(r)
	if err != nil {
		return nil, err
	}
	if !skipSizeCheck && len(img) > machine.ROMSize {
		return nil, p.fail(errCapacityf(
			"no program space available - ran out of usable ROM space: usable ROM is %d bytes, compiled binary is %d",
			machine.ROMSize, len(img)), p.line)
	}
	return img, nil
}
