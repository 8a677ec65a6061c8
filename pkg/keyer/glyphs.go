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

// Glyphs is the process-wide table for every key with a Morse glyph.
var Glyphs = newGlyphTable()

func newGlyphTable() *GlyphTable {
	var table GlyphTable

	ps2.Characters(func(char rune, code ps2.ScanCode) {
		if glyph, ok := morse.Lookup(char); ok {
			table.glyphs[code] = glyph
			table.defined[code] = true
		}
	})

	return &table
}

// Lookup returns the glyph for code. CODE_NONE and keys without a glyph are
// undefined.
func (table *GlyphTable) Lookup(code ps2.ScanCode) (morse.Glyph, bool) {
	return table.glyphs[code], table.defined[code]
}

func (buffer Buffer) String() string {
	runes := make([]rune, 0, BUFFER_SIZE)

	for _, code := range buffer {
		if code == ps2.CODE_NONE {
			continue
		}

		if char, ok := ps2.Char(code); ok {
			runes = append(runes, char)
		} else {
			runes = append(runes, '?')
		}
	}

	return string(runes)
}

// Codes returns the written slots, oldest first.
func (buffer Buffer) Codes() []ps2.ScanCode {
	codes := make([]ps2.ScanCode, 0, BUFFER_SIZE)

	for _, code := range buffer {
		if code != ps2.CODE_NONE {
			codes = append(codes, code)
		}
	}

	return codes
}

func (buffer Buffer) push(code ps2.ScanCode) Buffer {
	copy(buffer[:], buffer[1:])
	buffer[BUFFER_SIZE-1] = code
	return buffer
}

// Eligible reports whether code is buffered as a character in mode.
func Eligible(code ps2.ScanCode, mode Mode) bool {
	if code < ALNUM_FIRST || code > ALNUM_LAST {
		return false
	}

	switch code {
	case 0x1F, 0x27, 0x2F, 0x41, 0x49, 0x4A, 0x4C:
		return false
	case ps2.CODE_SPACE:
		// With Enter as trigger, Space is buffered and replays as a word gap.
		return mode != MODE_TRIGGER_SPACE
	}

	return true
}

// Trigger is the key that starts a replay in mode.
func (mode Mode) Trigger() ps2.ScanCode {
	if mode == MODE_TRIGGER_SPACE {
		return ps2.CODE_SPACE
	}

	return ps2.CODE_ENTER
}
