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

package ps2

import (
	"fmt"
	"sync"

	"github.com/lassandro/morsekey/pkg/encoding"
)

// ScanCode is a set 2 keyboard scan code byte.
type ScanCode uint8

func (code ScanCode) String() string {
	return fmt.Sprintf("%#02x", uint8(code))
}

type DecoderState uint8

func (state DecoderState) String() string {
	switch state {
	case DECODER_IDLE:
		return "Idle"
	case DECODER_DATA:
		return "DataBits"
	case DECODER_PARITY:
		return "Parity"
	case DECODER_STOP:
		return "Stop"
	}

	return "<invalid>"
}

// Decoder is the device-to-host frame receiver. Its zero value is the reset
// state.
type Decoder struct {
	state DecoderState
	bit   uint8
	shift uint8
	code  ScanCode
	ready bool

	clockSync [2]bool
	dataSync  [2]bool
	clockPrev bool
}

// Keyboard is the device side of the link: it serializes queued scan codes
// onto the clock and data lines, one system tick per call to Lines.
type Keyboard struct {
	HalfPeriod uint32
	FrameGap   uint32

	mutex sync.Mutex
	queue []ScanCode

	frame   [encoding.FrameBits]bool
	bit     int
	count   uint32
	idle    uint32
	sending bool
}
