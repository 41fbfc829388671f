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

package asm_test

import (
	"fmt"
	"strings"

	"github.com/dionysus/nibblecomputer/asm"
)

// Assembles a small program that stores a literal in a variable, loads it
// into the register, and prints it to OUTPUT.
func ExampleAssemble() {
	code := `
def &counter
set &counter 3
sto &counter
pop &OUTPUT
hlt
`
	img, err := asm.Assemble("countdown", strings.NewReader(code), nil, false)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(img)
	// Output:
	// [64 3 32 63 16]
}
