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
	"github.com/lassandro/morsekey/pkg/encoding"
)

// NewKeyboard creates a keyboard whose clock line spends halfPeriod ticks low
// and halfPeriod ticks high per bit, idling gap ticks between frames.
func NewKeyboard(halfPeriod, gap uint32) *Keyboard {
	if halfPeriod < MIN_HALF_PERIOD {
		halfPeriod = MIN_HALF_PERIOD
	}

	return &Keyboard{HalfPeriod: halfPeriod, FrameGap: gap}
}

// Send queues raw scan codes for transmission.
func (kb *Keyboard) Send(codes ...ScanCode) {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	kb.queue = append(kb.queue, codes...)
}

// Tap queues a make code followed by its break sequence.
func (kb *Keyboard) Tap(code ScanCode) {
	kb.Send(code, CODE_BREAK, code)
}

// Press taps the key mapped to char. It reports false for unmapped
// characters, which are not sent.
func (kb *Keyboard) Press(char rune) bool {
	code, ok := Lookup(char)

	if !ok {
		return false
	}

	kb.Tap(code)
	return true
}

// Busy reports whether any frame is queued, in flight, or in its trailing
// idle gap.
func (kb *Keyboard) Busy() bool {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	return kb.sending || kb.idle > 0 || len(kb.queue) > 0
}

// Clear drops queued codes. A frame already on the wire completes.
func (kb *Keyboard) Clear() {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	kb.queue = nil
}

// Sending returns the code whose frame is currently on the wire.
func (kb *Keyboard) Sending() (ScanCode, bool) {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	if !kb.sending {
		return CODE_NONE, false
	}

	return ScanCode(encoding.DecodeFrame(kb.frame)), true
}

// Lines advances the keyboard by one system tick and returns the clock and
// data levels. Both lines idle high. Data changes while clock is low and is
// stable across the rising edge.
func (kb *Keyboard) Lines() (clock, data bool) {
	kb.mutex.Lock()
	defer kb.mutex.Unlock()

	half := kb.HalfPeriod
	if half < MIN_HALF_PERIOD {
		half = MIN_HALF_PERIOD
	}

	if !kb.sending {
		if kb.idle > 0 {
			kb.idle--
			return true, true
		}

		if len(kb.queue) == 0 {
			return true, true
		}

		kb.frame = encoding.EncodeFrame(uint8(kb.queue[0]))
		kb.queue = kb.queue[1:]
		kb.bit = 0
		kb.count = 0
		kb.sending = true
	}

	data = kb.frame[kb.bit]
	clock = kb.count >= half

	kb.count++

	if kb.count == 2*half {
		kb.count = 0
		kb.bit++

		if kb.bit == encoding.FrameBits {
			kb.sending = false
			kb.idle = kb.FrameGap
		}
	}

	return clock, data
}

// FrameTicks is the number of system ticks one frame occupies on the wire,
// including the trailing idle gap.
func (kb *Keyboard) FrameTicks() uint32 {
	half := kb.HalfPeriod
	if half < MIN_HALF_PERIOD {
		half = MIN_HALF_PERIOD
	}

	return encoding.FrameBits*2*half + kb.FrameGap
}
