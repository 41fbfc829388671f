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

//+build !windows

package ngi

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
)

// WaitKeypress blocks until stdin receives a single byte. Unlike a
// session-wide raw terminal, it switches stdin to raw mode only for the
// duration of this one read and restores the previous settings before
// returning, so debug stepping does not disturb the surrounding shell's
// line editing between steps.
func WaitKeypress() error {
	var tios syscall.Termios
	if err := termios.Tcgetattr(0, &tios); err != nil {
		return errors.Wrap(err, "Tcgetattr failed")
	}
	raw := tios
	raw.Lflag &^= syscall.ICANON | syscall.ECHO
	raw.Cc[syscall.VMIN] = 1
	raw.Cc[syscall.VTIME] = 0
	if err := termios.Tcsetattr(0, termios.TCSANOW, &raw); err != nil {
		return errors.Wrap(err, "Tcsetattr failed")
	}
	defer termios.Tcsetattr(0, termios.TCSANOW, &tios)

	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return errors.Wrap(err, "read keypress failed")
}
