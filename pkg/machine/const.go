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

package machine

import (
	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/ps2"
)

// Line levels presented when no keyboard is attached.
const (
	LINE_IDLE_CLOCK = true
	LINE_IDLE_DATA  = true
)

const (
	DEFAULT_CLOCK_HZ = morse.DEFAULT_CLOCK_HZ

	// Sample rate used when the machine clock drives an audio device.
	AUDIO_CLOCK_HZ uint32 = 48000

	DEFAULT_KEYBOARD_HALF_PERIOD = ps2.DEFAULT_HALF_PERIOD
	DEFAULT_KEYBOARD_FRAME_GAP   = ps2.DEFAULT_FRAME_GAP
)
