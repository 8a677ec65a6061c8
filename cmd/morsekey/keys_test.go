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
	"context"
	"io"
	"testing"

	"github.com/lassandro/morsekey/pkg/ps2"
)

func TestTranslateKeys(t *testing.T) {
	type testCase struct {
		Name  string
		Input string
		Want  []ps2.ScanCode
		Rest  string
		Quit  bool
	}

	tests := []testCase{
		{
			Name:  "Letters",
			Input: "sOs\r",
			Want:  []ps2.ScanCode{0x1B, 0x44, 0x1B, ps2.CODE_ENTER},
		},
		{
			Name:  "FunctionKeys",
			Input: "\x1bOPa\x1b[14~",
			Want:  []ps2.ScanCode{ps2.CODE_F1, 0x1C, ps2.CODE_F4},
		},
		{
			Name:  "ArrowIgnored",
			Input: "\x1b[Ab",
			Want:  []ps2.ScanCode{0x32},
		},
		{
			Name:  "Unmapped",
			Input: "?!é 1",
			Want:  []ps2.ScanCode{ps2.CODE_SPACE, 0x16},
		},
		{
			Name:  "PartialEscape",
			Input: "e\x1b[1",
			Want:  []ps2.ScanCode{0x24},
			Rest:  "\x1b[1",
		},
		{
			Name:  "PartialRune",
			Input: "t\xc3",
			Want:  []ps2.ScanCode{0x2C},
			Rest:  "\xc3",
		},
		{
			Name:  "Quit",
			Input: "a\x04b",
			Want:  []ps2.ScanCode{0x1C},
			Quit:  true,
		},
	}

	for _, test := range tests {
		var have []ps2.ScanCode

		rest, quit := translateKeys([]byte(test.Input), func(code ps2.ScanCode) {
			have = append(have, code)
		})

		if len(have) != len(test.Want) {
			t.Errorf(
				"%s: codes mismatch\nwant:%v\nhave:%v",
				test.Name,
				test.Want,
				have,
			)
			continue
		}

		for i := range have {
			if have[i] != test.Want[i] {
				t.Errorf(
					"%s: code %d mismatch\nwant:%s\nhave:%s",
					test.Name,
					i,
					test.Want[i],
					have[i],
				)
			}
		}

		if string(rest) != test.Rest {
			t.Errorf(
				"%s: rest mismatch\nwant:%q\nhave:%q",
				test.Name,
				test.Rest,
				rest,
			)
		}

		if quit != test.Quit {
			t.Errorf("%s: quit mismatch\nwant:%v\nhave:%v", test.Name, test.Quit, quit)
		}
	}
}

func TestPendingKeys(t *testing.T) {
	var pending pendingKeys
	var have []ps2.ScanCode

	tap := func(code ps2.ScanCode) {
		have = append(have, code)
	}

	for _, chunk := range []string{"\x1b", "O", "S", "x"} {
		if pending.feed([]byte(chunk), tap) {
			t.Fatal("Unexpected quit")
		}
	}

	want := []ps2.ScanCode{ps2.CODE_F4, 0x22}

	if len(have) != len(want) || have[0] != want[0] || have[1] != want[1] {
		t.Errorf("Codes mismatch\nwant:%v\nhave:%v", want, have)
	}
}

func TestForwardCodes(t *testing.T) {
	kb := ps2.NewKeyboard(2, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := &cancelReader{
		data:   []byte{0x1B, 0xF0, 0x1B},
		cancel: cancel,
	}

	if err := forwardCodes(ctx, input, kb); err != nil {
		t.Fatal(err)
	}

	var dec ps2.Decoder
	var have []ps2.ScanCode

	for i := 0; i < 3*int(kb.FrameTicks())+8; i++ {
		dec = dec.Step(kb.Lines())

		if dec.Ready() {
			have = append(have, dec.Code())
		}
	}

	want := []ps2.ScanCode{0x1B, ps2.CODE_BREAK, 0x1B}

	if len(have) != len(want) {
		t.Fatalf("Codes mismatch\nwant:%v\nhave:%v", want, have)
	}

	for i := range want {
		if have[i] != want[i] {
			t.Errorf("Code %d mismatch\nwant:%s\nhave:%s", i, want[i], have[i])
		}
	}
}

// cancelReader returns its data once, then cancels on the next read.
type cancelReader struct {
	data   []byte
	cancel context.CancelFunc
}

func (r *cancelReader) Read(b []byte) (int, error) {
	if len(r.data) == 0 {
		r.cancel()
		return 0, io.EOF
	}

	n := copy(b, r.data)
	r.data = r.data[n:]
	return n, nil
}
