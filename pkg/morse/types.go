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

package morse

// Symbol is one signal element. The zero value is silence.
type Symbol uint8

func (sym Symbol) String() string {
	switch sym {
	case SYMBOL_DIT:
		return "."
	case SYMBOL_DAH:
		return "-"
	}

	return " "
}

// Glyph is the signal pattern of one character. A word glyph has no symbols
// and renders as silence only.
type Glyph struct {
	Symbols []Symbol
	Word    bool
}

// Timing holds element durations in milliseconds and the sidetone pitch.
type Timing struct {
	Dit           uint32
	Dah           uint32
	BetweenSymbol uint32
	BetweenChar   uint32
	Space         uint32
	ToneHz        uint32
}

// Ticks is a Timing scaled to a system clock. Every count is at least one.
type Ticks struct {
	ClockHz        uint32
	Dit            uint32
	Dah            uint32
	BetweenSymbol  uint32
	BetweenChar    uint32
	Space          uint32
	ToneHalfPeriod uint32
}
