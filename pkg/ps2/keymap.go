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
	"strings"
	"unicode"
)

// Set 2 make codes for the keys the keyer understands.
var keymap = map[rune]ScanCode{
	'A': 0x1C, 'B': 0x32, 'C': 0x21, 'D': 0x23, 'E': 0x24, 'F': 0x2B,
	'G': 0x34, 'H': 0x33, 'I': 0x43, 'J': 0x3B, 'K': 0x42, 'L': 0x4B,
	'M': 0x3A, 'N': 0x31, 'O': 0x44, 'P': 0x4D, 'Q': 0x15, 'R': 0x2D,
	'S': 0x1B, 'T': 0x2C, 'U': 0x3C, 'V': 0x2A, 'W': 0x1D, 'X': 0x22,
	'Y': 0x35, 'Z': 0x1A,
	'0': 0x45, '1': 0x16, '2': 0x1E, '3': 0x26, '4': 0x25,
	'5': 0x2E, '6': 0x36, '7': 0x3D, '8': 0x3E, '9': 0x46,
	' ':  CODE_SPACE,
	'\n': CODE_ENTER,
	'\r': CODE_ENTER,
}

var keynames = map[string]ScanCode{
	"enter": CODE_ENTER,
	"space": CODE_SPACE,
	"f1":    CODE_F1,
	"f4":    CODE_F4,
	"break": CODE_BREAK,
}

var charmap = func() map[ScanCode]rune {
	chars := make(map[ScanCode]rune, len(keymap))

	for char, code := range keymap {
		if char == '\r' {
			continue
		}
		chars[code] = char
	}

	return chars
}()

// Lookup returns the make code for a character, folding lower case letters.
func Lookup(char rune) (ScanCode, bool) {
	code, ok := keymap[unicode.ToUpper(char)]
	return code, ok
}

// LookupName resolves a key name (enter, space, f1, f4, break) or a single
// mapped character.
func LookupName(name string) (ScanCode, bool) {
	if code, ok := keynames[strings.ToLower(name)]; ok {
		return code, true
	}

	if runes := []rune(name); len(runes) == 1 {
		return Lookup(runes[0])
	}

	return CODE_NONE, false
}

// Char is the reverse of Lookup. ENTER maps to '\n'.
func Char(code ScanCode) (rune, bool) {
	char, ok := charmap[code]
	return char, ok
}

// Characters calls fn for every mapped character and its make code.
func Characters(fn func(char rune, code ScanCode)) {
	for char, code := range keymap {
		fn(char, code)
	}
}
