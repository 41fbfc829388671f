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
	"bytes"
	"strings"
	"testing"
)

func TestDumpState_containsAddrHeaderAndRegister(t *testing.T) {
	i := New(make([]byte, 4))
	i.Register = 0xFF
	var buf bytes.Buffer
	if err := DumpState(i, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "addr | hex   bin") {
		t.Errorf("expected header line, got:\n%s", out)
	}
	if !strings.Contains(out, "rr | FF    11111111") {
		t.Errorf("expected register line, got:\n%s", out)
	}
}

func TestDumpStep_rendersMnemonicAndNibble(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpStep(&buf, 3, OpSto, 0xE); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "executed:  sto E") {
		t.Errorf("expected step trailer, got:\n%s", out)
	}
}
