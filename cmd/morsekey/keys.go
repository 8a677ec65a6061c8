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

package main

import (
	"bytes"
	"unicode/utf8"

	"github.com/lassandro/morsekey/pkg/ps2"
)

const (
	KEY_EOT = 0x04
	KEY_ESC = 0x1B
)

// Function key sequences sent by common terminals.
var escapes = map[string]ps2.ScanCode{
	"\x1bOP":   ps2.CODE_F1,
	"\x1bOS":   ps2.CODE_F4,
	"\x1b[11~": ps2.CODE_F1,
	"\x1b[14~": ps2.CODE_F4,
	"\x1b[[A":  ps2.CODE_F1,
	"\x1b[[D":  ps2.CODE_F4,
}

// escapeLength returns the length of the escape sequence at the start of
// input, or 0 if it is incomplete.
func escapeLength(input []byte) int {
	if len(input) < 2 {
		return 0
	}

	switch input[1] {
	case 'O':
		if len(input) < 3 {
			return 0
		}
		return 3

	case '[':
		for i := 2; i < len(input); i++ {
			if input[i] >= 0x40 && input[i] <= 0x7E && input[i] != '[' {
				return i + 1
			}
		}
		return 0
	}

	return 1
}

// translateKeys taps the scan code for each key in input. An incomplete
// escape sequence at the end is returned so the caller can prepend it to the
// next read. Ctrl-D reports quit.
func translateKeys(input []byte, tap func(ps2.ScanCode)) ([]byte, bool) {
	for len(input) > 0 {
		switch input[0] {
		case KEY_EOT:
			return nil, true

		case KEY_ESC:
			length := escapeLength(input)

			if length == 0 {
				return input, false
			}

			if code, ok := escapes[string(input[:length])]; ok {
				tap(code)
			}

			input = input[length:]
			continue
		}

		if !utf8.FullRune(input) {
			return input, false
		}

		char, size := utf8.DecodeRune(input)
		input = input[size:]

		if code, ok := ps2.Lookup(char); ok {
			tap(code)
		}
	}

	return nil, false
}

// pendingKeys accumulates terminal input across reads.
type pendingKeys struct {
	buffer bytes.Buffer
}

func (pending *pendingKeys) feed(input []byte, tap func(ps2.ScanCode)) bool {
	pending.buffer.Write(input)

	rest, quit := translateKeys(pending.buffer.Bytes(), tap)

	remaining := append([]byte(nil), rest...)
	pending.buffer.Reset()
	pending.buffer.Write(remaining)

	return quit
}
