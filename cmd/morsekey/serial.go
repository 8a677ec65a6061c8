// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"io"
	"time"

	"github.com/tarm/serial"

	"github.com/lassandro/morsekey/pkg/ps2"
)

const DEFAULT_BRIDGE_BAUD = 115200

// openBridge opens a serial link to a keyboard bridge that forwards each
// scan code received from a physical keyboard as one raw byte.
func openBridge(name string, baud int) (*serial.Port, error) {
	return serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: 100 * time.Millisecond,
	})
}

// forwardCodes sends every byte read from input to the keyboard unchanged,
// break codes included. Empty reads and io.EOF are treated as timeouts.
func forwardCodes(ctx context.Context, input io.Reader, kb *ps2.Keyboard) error {
	buf := make([]byte, 64)

	for ctx.Err() == nil && !shouldexit.Load() {
		n, err := input.Read(buf)

		for _, value := range buf[:n] {
			kb.Send(ps2.ScanCode(value))
		}

		if err != nil && err != io.EOF {
			return err
		}
	}

	return nil
}
