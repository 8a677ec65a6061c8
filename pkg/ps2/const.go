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

const (
	CODE_NONE  ScanCode = 0x00
	CODE_BREAK ScanCode = 0xF0
	CODE_ENTER ScanCode = 0x5A
	CODE_SPACE ScanCode = 0x29
	CODE_F1    ScanCode = 0x05
	CODE_F4    ScanCode = 0x0C
)

const (
	DECODER_IDLE DecoderState = iota
	DECODER_DATA
	DECODER_PARITY
	DECODER_STOP
)

const (
	// Clock half-periods are counted in system ticks. Two synchronizer
	// stages plus edge detection need at least this many per level.
	MIN_HALF_PERIOD uint32 = 2

	DEFAULT_HALF_PERIOD uint32 = 4
	DEFAULT_FRAME_GAP   uint32 = 16
)
