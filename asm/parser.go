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

package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dionysus/nibblecomputer/machine"
	"github.com/dionysus/nibblecomputer/vm"
	"github.com/pkg/errors"
)

// item is one unit of the output stream: either a resolved byte, or a
// pending label reference awaiting the fixup pass.
type item struct {
	value   byte
	label   string
	pending bool
	srcLine int
}

// parser holds the state of a single Assemble call: the symbol tables, the
// emitted (possibly still-pending) output stream, and bookkeeping needed to
// report errors with source context.
type parser struct {
	name string
	warn io.Writer

	vars *variables
	lbls *labels
	out  []item
	line int
	text []string // source lines read so far, 1-indexed via text[line-1]
}

func newParser(name string, warn io.Writer) *parser {
	return &parser{name: name, warn: warn, vars: newVariables(), lbls: newLabels()}
}

func (p *parser) emit(v byte) {
	p.out = append(p.out, item{value: v, srcLine: p.line})
}

func (p *parser) emitLabelRef(name string) {
	p.out = append(p.out, item{label: name, pending: true, srcLine: p.line})
}

// fail enriches a syntax/logic/capacity error with the offending line
// number, its raw tokens, and a snapshot of the symbol tables, per the
// assembler's fail-fast-with-context error policy.
func (p *parser) fail(err error, line int) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	e.Line = line
	if line >= 1 && line <= len(p.text) {
		e.Tokens = strings.Fields(p.text[line-1])
	}
	e.Dump = p.vars.dump() + "\n" + p.lbls.dump()
	return e
}

// parse tokenizes and compiles the assembly read from r, then runs the
// label fixup pass. The ROM size check is left to Assemble.
func (p *parser) parse(r io.Reader) ([]byte, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		text := scanner.Text()
		p.text = append(p.text, text)
		tokens := strings.Fields(text)
		if err := p.parseLine(tokens); err != nil {
			return nil, p.fail(err, p.line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}

	out := make([]byte, len(p.out))
	for idx, it := range p.out {
		if !it.pending {
			out[idx] = it.value
			continue
		}
		line, err := p.lbls.get(it.label)
		if err != nil {
			return nil, p.fail(err, it.srcLine)
		}
		out[idx] = machine.Mask8(line)
	}
	return out, nil
}

// parseLine dispatches a single tokenized, non-empty source line to the
// handler for its verb.
func (p *parser) parseLine(tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	verb := tokens[0]
	switch {
	case verb == "cmt":
		return nil
	case niladicVerbs[verb]:
		p.warnExtra(verb, tokens, 1)
		p.emit(byte(opcodeOf[verb]) << 4)
		return nil
	case verb == "rnd":
		p.warnExtra(verb, tokens, 1)
		p.emit(rndOpcodeByte)
		return nil
	case monadicVerbs[verb]:
		return p.parseMonadic(verb, tokens)
	case verb == "set":
		return p.parseSet(tokens)
	case branchVerbs[verb]:
		return p.parseBranch(verb, tokens)
	case verb == "def":
		return p.parseDef(tokens)
	case verb == "fre":
		return p.parseFre(tokens)
	case verb == "lbl":
		return p.parseLbl(tokens)
	default:
		return errSyntaxf("verb '%s' not found", verb)
	}
}

func (p *parser) parseMonadic(verb string, tokens []string) error {
	if len(tokens) < 2 {
		return errSyntaxf("incomplete data for verb '%s'", verb)
	}
	p.warnExtra(verb, tokens, 2)
	data, err := p.evalData(tokens[1])
	if err != nil {
		return err
	}
	p.emit(byte(opcodeOf[verb])<<4 | byte(machine.Mask4(data)))
	return nil
}

func (p *parser) parseSet(tokens []string) error {
	if len(tokens) < 3 {
		return errSyntaxf("incomplete data for verb 'set'")
	}
	p.warnExtra("set", tokens, 3)
	addr, err := p.evalData(tokens[1])
	if err != nil {
		return err
	}
	val, err := p.evalData(tokens[2])
	if err != nil {
		return err
	}
	p.emit(byte(vm.OpSet)<<4 | byte(machine.Mask4(addr)))
	p.emit(machine.Mask8(val))
	return nil
}

func (p *parser) parseBranch(verb string, tokens []string) error {
	if len(tokens) < 2 {
		return errSyntaxf("incomplete data for verb '%s'", verb)
	}
	p.warnExtra(verb, tokens, 2)
	p.emit(byte(opcodeOf[verb]) << 4)
	operand := tokens[1]
	if strings.HasPrefix(operand, ".") {
		name := operand[1:]
		if name == "" {
			return errSyntaxf("empty label name")
		}
		p.emitLabelRef(name)
		return nil
	}
	v, err := parseLiteral(operand)
	if err != nil {
		return errSyntaxf("could not parse jump target '%s'", operand)
	}
	p.emit(machine.Mask8(v))
	return nil
}

func (p *parser) parseDef(tokens []string) error {
	if len(tokens) < 2 {
		return errSyntaxf("incomplete data for verb 'def'")
	}
	p.warnExtra("def", tokens, 2)
	operand := tokens[1]
	if !strings.HasPrefix(operand, "&") {
		return errSyntaxf("expected variable declaration, got '%s'", operand)
	}
	_, err := p.vars.alloc(operand[1:])
	return err
}

func (p *parser) parseFre(tokens []string) error {
	if len(tokens) < 2 {
		return errSyntaxf("incomplete data for verb 'fre'")
	}
	p.warnExtra("fre", tokens, 2)
	operand := tokens[1]
	if !strings.HasPrefix(operand, "&") {
		return errSyntaxf("expected variable declaration, got '%s'", operand)
	}
	_, err := p.vars.free(operand[1:])
	return err
}

func (p *parser) parseLbl(tokens []string) error {
	if len(tokens) < 2 {
		return errSyntaxf("incomplete data for verb 'lbl'")
	}
	p.warnExtra("lbl", tokens, 2)
	operand := tokens[1]
	if !strings.HasPrefix(operand, ".") {
		return errSyntaxf("expected jump label declaration, got '%s'", operand)
	}
	return p.lbls.define(operand[1:], len(p.out))
}

// warnExtra prints a non-fatal warning to p.warn when tokens carries more
// entries than the verb consumes.
func (p *parser) warnExtra(verb string, tokens []string, expected int) {
	if len(tokens) > expected && p.warn != nil {
		fmt.Fprintf(p.warn, "%s:%d: warning: extra data '%s' on verb '%s' ignored\n",
			p.name, p.line, strings.Join(tokens[expected:], " "), verb)
	}
}

// evalData evaluates an operand as either a variable reference ("&name")
// or a numeric literal. Per the spec's preserved permissiveness, numeric
// literals are also accepted where a variable reference is expected.
func (p *parser) evalData(token string) (int, error) {
	if strings.HasPrefix(token, "&") {
		return p.vars.get(token[1:])
	}
	v, err := parseLiteral(token)
	if err != nil {
		return 0, errSyntaxf("could not parse variable or value '%s'", token)
	}
	return v, nil
}

// parseLiteral parses an integer literal with base auto-detection:
// decimal, 0x hex, 0o octal, 0b binary.
func parseLiteral(token string) (int, error) {
	n, err := strconv.ParseInt(token, 0, 64)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
