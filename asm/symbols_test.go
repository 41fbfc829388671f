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
	"strings"
	"testing"

	"github.com/dionysus/nibblecomputer/machine"
)

func TestVariables_reservedSlots(t *testing.T) {
	v := newVariables()
	if addr, err := v.get("INPUT"); err != nil || addr != machine.InputAddr {
		t.Fatalf("expected INPUT at %d, got %d, err %v", machine.InputAddr, addr, err)
	}
	if addr, err := v.get("OUTPUT"); err != nil || addr != machine.OutputAddr {
		t.Fatalf("expected OUTPUT at %d, got %d, err %v", machine.OutputAddr, addr, err)
	}
	if _, err := v.free("INPUT"); err == nil {
		t.Fatal("expected error freeing reserved address INPUT")
	}
}

func TestVariables_allocFillsLowestFreeSlot(t *testing.T) {
	v := newVariables()
	a, err := v.alloc("a")
	if err != nil || a != 0 {
		t.Fatalf("expected a at 0, got %d, err %v", a, err)
	}
	b, err := v.alloc("b")
	if err != nil || b != 1 {
		t.Fatalf("expected b at 1, got %d, err %v", b, err)
	}
	if _, err := v.free("a"); err != nil {
		t.Fatalf("unexpected error freeing a: %v", err)
	}
	c, err := v.alloc("c")
	if err != nil || c != 0 {
		t.Fatalf("expected c to reuse freed slot 0, got %d, err %v", c, err)
	}
}

func TestVariables_exhaustion(t *testing.T) {
	v := newVariables()
	// 14 free slots (16 - 2 reserved)
	for i := 0; i < 14; i++ {
		if _, err := v.alloc(string(rune('a' + i))); err != nil {
			t.Fatalf("unexpected error on alloc %d: %v", i, err)
		}
	}
	if _, err := v.alloc("overflow"); err == nil {
		t.Fatal("expected capacity error, got nil")
	}
}

func TestVariables_nonAlnumRejected(t *testing.T) {
	v := newVariables()
	if _, err := v.alloc("not alnum"); err == nil {
		t.Fatal("expected error for non-alphanumeric name")
	}
}

func TestLabels_defineAndGet(t *testing.T) {
	l := newLabels()
	if err := l.define("start", 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	line, err := l.get("start")
	if err != nil || line != 4 {
		t.Fatalf("expected 4, got %d, err %v", line, err)
	}
	if err := l.define("start", 8); err == nil {
		t.Fatal("expected redefinition error")
	}
}

func TestLabels_dumpEmpty(t *testing.T) {
	l := newLabels()
	if got := l.dump(); !strings.Contains(got, "None") {
		t.Fatalf("expected dump to report no labels, got %q", got)
	}
}
