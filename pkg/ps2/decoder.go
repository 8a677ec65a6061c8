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

// Step advances the decoder by one system tick given the raw line levels and
// returns the next state. Both lines pass through two synchronizer stages and
// bits are only taken on a rising edge of the synchronized clock.
func (dec Decoder) Step(clock, data bool) Decoder {
	next := dec
	next.ready = false

	next.clockSync = [2]bool{clock, dec.clockSync[0]}
	next.dataSync = [2]bool{data, dec.dataSync[0]}

	sampled := dec.clockSync[1]
	next.clockPrev = sampled

	if !sampled || dec.clockPrev {
		return next
	}

	bit := dec.dataSync[1]

	switch dec.state {
	case DECODER_IDLE:
		// A ready pulse still high means this edge belongs to the frame
		// that just completed.
		if !bit && !dec.ready {
			next.state = DECODER_DATA
			next.bit = 0
			next.shift = 0
		}

	case DECODER_DATA:
		if bit {
			next.shift |= 1 << dec.bit
		}

		next.bit++

		if next.bit == 8 {
			next.state = DECODER_PARITY
		}

	case DECODER_PARITY:
		next.state = DECODER_STOP

	case DECODER_STOP:
		next.code = ScanCode(dec.shift)
		next.ready = true
		next.state = DECODER_IDLE
	}

	return next
}

// Reset returns the decoder to its power-on state.
func (dec Decoder) Reset() Decoder {
	return Decoder{}
}

// Code is the most recently completed scan code. It stays latched until the
// next frame completes.
func (dec Decoder) Code() ScanCode {
	return dec.code
}

// Ready is high for exactly one tick after a frame's stop bit.
func (dec Decoder) Ready() bool {
	return dec.ready
}

func (dec Decoder) State() DecoderState {
	return dec.state
}
