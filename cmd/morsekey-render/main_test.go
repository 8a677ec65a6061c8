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
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/lassandro/morsekey/pkg/keyscript"
	"github.com/lassandro/morsekey/pkg/machine"
)

func TestFlagDefaults(t *testing.T) {
	type testCase struct {
		Name string
		Want string
	}

	tests := []testCase{
		{Name: "lua", Want: "false"},
		{Name: "timeline", Want: "false"},
		{Name: "out", Want: ""},
		{Name: "clock", Want: "48000"},
		{Name: "wpm", Want: "0"},
	}

	for _, test := range tests {
		f := flag.Lookup(test.Name)

		if f == nil {
			t.Errorf("%s: flag not registered", test.Name)
			continue
		}

		if f.DefValue != test.Want {
			t.Errorf(
				"%s: default mismatch\nwant:%q\nhave:%q",
				test.Name,
				test.Want,
				f.DefValue,
			)
		}
	}

	if clockvar != uint(machine.AUDIO_CLOCK_HZ) {
		t.Errorf(
			"Clock mismatch\nwant:%d\nhave:%d",
			machine.AUDIO_CLOCK_HZ,
			clockvar,
		)
	}
}

func TestPrintErrors(t *testing.T) {
	var out strings.Builder

	log.SetOutput(&out)
	defer log.SetOutput(os.Stderr)

	input := strings.NewReader("tap a\n  foo\n")

	errs := []error{
		errors.New("read failed"),
		&keyscript.UnknownIdentifierError{
			Position: keyscript.Cursor{
				Line: 2, Column: 3, Byte: 8, Size: 3, LineByte: 6,
			},
			Received: "foo",
		},
	}

	printErrors(errs, input)

	want := "read failed\n" +
		"02:03: Unknown identifier 'foo'\n" +
		"  foo\n" +
		"\033[31m  ^~~\033[0m\n"

	if out.String() != want {
		t.Errorf("Output mismatch\nwant:%q\nhave:%q", want, out.String())
	}
}
