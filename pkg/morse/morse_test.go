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

package morse_test

import (
	"testing"

	"github.com/lassandro/morsekey/pkg/morse"
)

func TestAlphabet(t *testing.T) {
	type testCase struct {
		Char    rune
		Pattern string
	}

	tests := []testCase{
		{'A', ".-"},
		{'e', "."},
		{'S', "..."},
		{'O', "---"},
		{'q', "--.-"},
		{'Z', "--.."},
		{'0', "-----"},
		{'5', "....."},
		{'9', "----."},
		{' ', "/"},
	}

	for _, test := range tests {
		glyph, ok := morse.Lookup(test.Char)

		if !ok {
			t.Errorf("Character %q not in alphabet", test.Char)
			continue
		}

		if have := glyph.String(); have != test.Pattern {
			t.Errorf(
				"Pattern mismatch for %q\nwant:%s\nhave:%s",
				test.Char,
				test.Pattern,
				have,
			)
		}
	}

	for _, char := range ".,?!\n" {
		if _, ok := morse.Lookup(char); ok {
			t.Errorf("Unexpected glyph for %q", char)
		}
	}
}

func TestAlphabetComplete(t *testing.T) {
	for _, char := range "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" {
		glyph, ok := morse.Lookup(char)

		if !ok || glyph.Word || len(glyph.Symbols) == 0 || len(glyph.Symbols) > 5 {
			t.Errorf("Invalid glyph for %q: %v", char, glyph)
		}
	}
}

func TestTicks(t *testing.T) {
	type testCase struct {
		Name    string
		ClockHz uint32
		Output  morse.Ticks
	}

	tests := []testCase{
		{
			Name:    "Reference",
			ClockHz: morse.DEFAULT_CLOCK_HZ,
			Output: morse.Ticks{
				ClockHz:        morse.DEFAULT_CLOCK_HZ,
				Dit:            4000000,
				Dah:            12000000,
				BetweenSymbol:  4000000,
				BetweenChar:    12000000,
				Space:          28000000,
				ToneHalfPeriod: 41667,
			},
		},
		{
			Name:    "Audio",
			ClockHz: 48000,
			Output: morse.Ticks{
				ClockHz:        48000,
				Dit:            3840,
				Dah:            11520,
				BetweenSymbol:  3840,
				BetweenChar:    11520,
				Space:          26880,
				ToneHalfPeriod: 40,
			},
		},
		{
			Name:    "Slow",
			ClockHz: 12000,
			Output: morse.Ticks{
				ClockHz:        12000,
				Dit:            960,
				Dah:            2880,
				BetweenSymbol:  960,
				BetweenChar:    2880,
				Space:          6720,
				ToneHalfPeriod: 10,
			},
		},
		{
			Name:    "Tiny",
			ClockHz: 1,
			Output: morse.Ticks{
				ClockHz:        1,
				Dit:            1,
				Dah:            1,
				BetweenSymbol:  1,
				BetweenChar:    1,
				Space:          1,
				ToneHalfPeriod: 1,
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			have := morse.DefaultTiming.Ticks(test.ClockHz)

			if have != test.Output {
				t.Errorf("Tick scaling mismatch\nwant:%+v\nhave:%+v", test.Output, have)
			}
		})
	}
}

func TestGlyphDuration(t *testing.T) {
	ticks := morse.DefaultTiming.Ticks(1000)

	type testCase struct {
		Char   rune
		Millis uint64
	}

	tests := []testCase{
		// dit + char gap
		{'E', 80 + 240},
		// dah + char gap
		{'T', 240 + 240},
		// three dits, two symbol gaps, char gap
		{'S', 3*80 + 2*80 + 240},
		{'O', 3*240 + 2*80 + 240},
		{'0', 5*240 + 4*80 + 240},
		{' ', 560},
	}

	for _, test := range tests {
		glyph, _ := morse.Lookup(test.Char)

		if have := glyph.Duration(ticks); have != test.Millis {
			t.Errorf(
				"Duration mismatch for %q\nwant:%d\nhave:%d",
				test.Char,
				test.Millis,
				have,
			)
		}
	}
}

func TestGlyphSegments(t *testing.T) {
	ticks := morse.DefaultTiming.Ticks(1000)
	glyph, _ := morse.Lookup('A')

	type segment struct {
		Symbol morse.Symbol
		Length uint32
	}

	want := []segment{
		{morse.SYMBOL_DIT, 80},
		{0, 80},
		{morse.SYMBOL_DAH, 240},
		{0, 240},
	}

	if glyph.Steps() != len(want) {
		t.Fatalf("Step count mismatch\nwant:%d\nhave:%d", len(want), glyph.Steps())
	}

	for step, seg := range want {
		sym, length := glyph.Segment(step, ticks)

		if sym != seg.Symbol || length != seg.Length {
			t.Errorf(
				"Segment %d mismatch\nwant:%s %d\nhave:%s %d",
				step,
				seg.Symbol,
				seg.Length,
				sym,
				length,
			)
		}
	}
}

func TestTimingForWPM(t *testing.T) {
	timing := morse.TimingForWPM(15)

	if timing != morse.DefaultTiming {
		t.Errorf("15 WPM mismatch\nwant:%+v\nhave:%+v", morse.DefaultTiming, timing)
	}

	if wpm := morse.DefaultTiming.WPM(); wpm != 15 {
		t.Errorf("WPM mismatch\nwant:%d\nhave:%d", 15, wpm)
	}

	if fast := morse.TimingForWPM(20); fast.Dit != 60 || fast.Space != 420 {
		t.Errorf("20 WPM mismatch\nhave:%+v", fast)
	}
}

func TestParsePattern(t *testing.T) {
	symbols, ok := morse.ParsePattern(".-.")

	if !ok || len(symbols) != 3 || symbols[1] != morse.SYMBOL_DAH {
		t.Errorf("Pattern parse mismatch\nwant:.-.\nhave:%v", symbols)
	}

	if _, ok := morse.ParsePattern(".x"); ok {
		t.Error("Invalid pattern accepted")
	}
}
