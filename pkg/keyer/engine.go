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
	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/ps2"
)

// NewEngine returns an engine in its reset state using ticks for replay.
func NewEngine(ticks morse.Ticks) Engine {
	return Engine{ticks: ticks}
}

// Reset clears the buffer, the mode and any replay in progress.
func (e Engine) Reset() Engine {
	return Engine{ticks: e.ticks}
}

// Step advances the engine by one tick. code is only read when ready is
// high.
func (e Engine) Step(code ps2.ScanCode, ready bool) Engine {
	next := e

	switch e.state {
	case STATE_IDLE:
		if ready {
			next.code = code
			next.state = STATE_RECEIVED
		}

	case STATE_RECEIVED:
		if e.code == ps2.CODE_BREAK {
			next.state = STATE_BREAK_WAIT
		} else {
			next.state = STATE_BUFFERING
		}

	case STATE_BREAK_WAIT:
		// The released key's code is dropped.
		if ready {
			next.state = STATE_IDLE
		}

	case STATE_BUFFERING:
		next.state = STATE_IDLE

		switch {
		case e.code == e.mode.Trigger():
			next.state = STATE_REPLAYING
			next.session = session{}
		case Eligible(e.code, e.mode):
			next.buffer = e.buffer.push(e.code)
		case e.code == KEY_MODE_ENTER:
			next.mode = MODE_TRIGGER_ENTER
		case e.code == KEY_MODE_SPACE:
			next.mode = MODE_TRIGGER_SPACE
		}

	case STATE_REPLAYING:
		next.replay()
	}

	return next
}

func (e *Engine) replay() {
	if e.session.remaining == 0 && !e.advance() {
		e.buffer = Buffer{}
		e.session = session{}
		e.state = STATE_IDLE
		return
	}

	e.session.remaining--
}

// Loads the next timed segment, moving the cursor past finished characters.
// Slots without a glyph, including unwritten ones, take no time.
func (e *Engine) advance() bool {
	s := &e.session

	for s.step >= s.steps {
		if s.cursor >= BUFFER_SIZE {
			return false
		}

		glyph, ok := Glyphs.Lookup(e.buffer[s.cursor])
		s.cursor++

		if !ok {
			continue
		}

		s.glyph = glyph
		s.step = 0
		s.steps = uint8(glyph.Steps())
	}

	s.mark, s.remaining = s.glyph.Segment(int(s.step), e.ticks)
	s.step++

	if s.remaining == 0 {
		s.remaining = 1
	}

	return true
}

func (e Engine) State() State {
	return e.state
}

func (e Engine) Mode() Mode {
	return e.mode
}

func (e Engine) Buffer() Buffer {
	return e.buffer
}

func (e Engine) Ticks() morse.Ticks {
	return e.ticks
}

// Cursor is the index of the next buffer slot the replay will load.
func (e Engine) Cursor() int {
	return int(e.session.cursor)
}

func (e Engine) Dit() bool {
	return e.state == STATE_REPLAYING && e.session.mark == morse.SYMBOL_DIT
}

func (e Engine) Dah() bool {
	return e.state == STATE_REPLAYING && e.session.mark == morse.SYMBOL_DAH
}
