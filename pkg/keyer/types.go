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
	"strings"

	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/ps2"
)

type State uint8

func (state State) String() string {
	switch state {
	case STATE_IDLE:
		return "Idle"
	case STATE_RECEIVED:
		return "Received"
	case STATE_BREAK_WAIT:
		return "BreakWait"
	case STATE_BUFFERING:
		return "Buffering"
	case STATE_REPLAYING:
		return "Replaying"
	}

	return "<invalid>"
}

// ParseState accepts the names printed by State.String, ignoring case.
func ParseState(name string) (State, bool) {
	for state := STATE_IDLE; state <= STATE_REPLAYING; state++ {
		if strings.EqualFold(name, state.String()) {
			return state, true
		}
	}

	return STATE_IDLE, false
}

// Mode selects which key starts a replay.
type Mode uint8

func (mode Mode) String() string {
	switch mode {
	case MODE_TRIGGER_ENTER:
		return "TriggerOnEnter"
	case MODE_TRIGGER_SPACE:
		return "TriggerOnSpace"
	}

	return "<invalid>"
}

// Buffer holds captured codes oldest first. Unwritten slots are CODE_NONE.
type Buffer [BUFFER_SIZE]ps2.ScanCode

// GlyphTable maps scan codes to their Morse glyphs.
type GlyphTable struct {
	glyphs  [256]morse.Glyph
	defined [256]bool
}

type session struct {
	cursor    uint8
	glyph     morse.Glyph
	step      uint8
	steps     uint8
	remaining uint32
	mark      morse.Symbol
}

// Engine captures keystrokes and replays them as timed Dit/Dah assertions.
// Create one with NewEngine; the zero value has no timing.
type Engine struct {
	ticks morse.Ticks

	state   State
	mode    Mode
	code    ps2.ScanCode
	buffer  Buffer
	session session
}
