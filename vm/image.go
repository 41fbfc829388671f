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
	"os"

	"github.com/dionysus/nibblecomputer/machine"
	"github.com/pkg/errors"
)

// Load reads a flat binary image from fileName and zero-pads it up to ROM
// length, per the binary format's "VM zero-pads the image up to ROM length
// after loading" rule. Unless skipSizeCheck is set, ROM length is fixed at
// machine.VMROMCap and a file larger than that is an error. When
// skipSizeCheck is set (the VM CLI's -w flag), ROM length becomes
// max(file size, machine.VMROMCap) instead, so larger binaries load as-is.
func Load(fileName string, skipSizeCheck bool) ([]byte, error) {
	raw, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "load %v", fileName)
	}

	romLen := machine.VMROMCap
	if len(raw) > romLen {
		if !skipSizeCheck {
			return nil, errors.Errorf(
				"load %v: image is %d bytes, exceeds ROM capacity of %d bytes (use -w to allow)",
				fileName, len(raw), romLen)
		}
		romLen = len(raw)
	}

	rom := make([]byte, romLen)
	copy(rom, raw)
	return rom, nil
}
