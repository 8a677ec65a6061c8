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

package keyer

import (
	"github.com/lassandro/morsekey/pkg/ps2"
)

const BUFFER_SIZE = 12

const (
	STATE_IDLE State = iota
	STATE_RECEIVED
	STATE_BREAK_WAIT
	STATE_BUFFERING
	STATE_REPLAYING
)

const (
	MODE_TRIGGER_ENTER Mode = iota
	MODE_TRIGGER_SPACE
)

const (
	KEY_MODE_ENTER = ps2.CODE_F1
	KEY_MODE_SPACE = ps2.CODE_F4
)

// Alphanumeric codes lie in this range, minus the exclusions below.
const (
	ALNUM_FIRST ps2.ScanCode = 0x15
	ALNUM_LAST  ps2.ScanCode = 0x4D
)
