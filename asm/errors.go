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

import "github.com/pkg/errors"

// errKind classifies a fatal assembler error per the spec's error taxonomy:
// syntax, logic, or capacity.
type errKind int

const (
	kindSyntax errKind = iota
	kindLogic
	kindCapacity
)

// Error wraps a fatal assembler error with its kind and the 1-indexed
// source line it occurred on. Line, Tokens and Dump are filled in by
// parser.fail once the current line number is known; errSyntaxf/errLogicf/
// errCapacityf leave them zero and parse patches them in before returning.
type Error struct {
	Kind   errKind
	Line   int
	Msg    string
	Tokens []string
	Dump   string
}

func (e *Error) Error() string {
	switch e.Kind {
	case kindLogic:
		return "logic error: " + e.Msg
	case kindCapacity:
		return "capacity error: " + e.Msg
	default:
		return "syntax error: " + e.Msg
	}
}

func errSyntaxf(format string, args ...interface{}) error {
	return &Error{Kind: kindSyntax, Msg: errors.Errorf(format, args...).Error()}
}

func errLogicf(format string, args ...interface{}) error {
	return &Error{Kind: kindLogic, Msg: errors.Errorf(format, args...).Error()}
}

func errCapacityf(format string, args ...interface{}) error {
	return &Error{Kind: kindCapacity, Msg: errors.Errorf(format, args...).Error()}
}

// AsError reports whether err is (or wraps) an *Error from this package,
// per errors.As semantics.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
