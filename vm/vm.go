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

// Package vm simulates the nibble computer: a fixed-size RAM, a padded ROM
// image, an 8-bit accumulator register, a program counter, and a
// fetch-decode-execute core with memory-mapped I/O on two reserved RAM
// addresses.
package vm

import (
	"bufio"
	"io"
	"math/rand/v2"
	"os"

	"github.com/dionysus/nibblecomputer/machine"
)

// StepFunc is invoked after each instruction has executed, before the
// program counter advances. It is the hook the VM CLI's debug mode uses to
// dump machine state and block for a keypress; Run returns whatever error
// it returns.
type StepFunc func(i *Instance, line int, op Opcode, data byte) error

// Instance represents one run of the virtual machine: its registers, RAM,
// and the ROM image it executes.
type Instance struct {
	// PC is the program counter: an index into ROM, always kept in
	// [0, len(ROM)).
	PC int
	// Register is the 8-bit accumulator.
	Register byte
	// Halted reports whether the VM has stopped executing. It starts true;
	// Run sets it false, and the hlt instruction sets it true again.
	Halted bool
	// RAM is the machine's 16 general-purpose and reserved cells.
	RAM [machine.RAMSize]byte
	// ROM is the padded program image. Its length is the modulus for every
	// PC wrap-around.
	ROM []byte

	in     *bufio.Reader
	prompt io.Writer
	output io.Writer
	rnd    func() byte
	onStep StepFunc
}

// Option configures an Instance at construction time.
type Option func(*Instance)

// Input sets the reader sto &INPUT consumes lines from. Defaults to
// os.Stdin.
func Input(r io.Reader) Option {
	return func(i *Instance) { i.in = bufio.NewReader(r) }
}

// Output sets the writer pop &OUTPUT prints to, and (unless a Prompt option
// is given after it) the writer the INPUT prompt is written to. Defaults to
// os.Stdout.
func Output(w io.Writer) Option {
	return func(i *Instance) { i.output = w; i.prompt = w }
}

// Prompt overrides the writer the "input 8-bit number >" prompt is written
// to, independently of Output.
func Prompt(w io.Writer) Option {
	return func(i *Instance) { i.prompt = w }
}

// OnStep registers a hook called after every instruction, before the
// program counter advances. Used by the VM CLI's -d/--debug mode.
func OnStep(f StepFunc) Option {
	return func(i *Instance) { i.onStep = f }
}

// RandSource overrides the byte source used by rnd and sto &OUTPUT. The
// default draws from math/rand/v2's auto-seeded global source; this option
// exists for deterministic tests, not for CLI-exposed seeding (the machine
// deliberately has no seed flag).
func RandSource(f func() byte) Option {
	return func(i *Instance) { i.rnd = f }
}

// New creates a VM instance over the given (already padded) ROM image.
// Halted starts true, per the data model; call Run to begin execution.
func New(rom []byte, opts ...Option) *Instance {
	i := &Instance{
		Halted: true,
		ROM:    rom,
		in:     bufio.NewReader(os.Stdin),
		output: os.Stdout,
		prompt: os.Stdout,
		rnd:    func() byte { return byte(rand.IntN(256)) },
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}
