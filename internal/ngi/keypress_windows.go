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

package ngi

import "os"

// WaitKeypress blocks until stdin receives a single byte. termios raw mode
// is unavailable on this platform, so debug stepping falls back to reading
// (and requiring) a full line.
func WaitKeypress() error {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return err
}
