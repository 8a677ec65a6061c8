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

import (
	"strings"
	"unicode"
)

var alphabet = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	' ': "",
}

// DefaultTiming is the 15 WPM reference: an 80 ms dit and a 600 Hz tone.
var DefaultTiming = Timing{
	Dit:           DIT_MS,
	Dah:           DAH_MS,
	BetweenSymbol: BETWEEN_SYMBOL_MS,
	BetweenChar:   BETWEEN_CHAR_MS,
	Space:         SPACE_MS,
	ToneHz:        TONE_HZ,
}

// ParsePattern converts a dot/dash string into symbols.
func ParsePattern(pattern string) ([]Symbol, bool) {
	symbols := make([]Symbol, 0, len(pattern))

	for _, char := range pattern {
		switch char {
		case '.':
			symbols = append(symbols, SYMBOL_DIT)
		case '-':
			symbols = append(symbols, SYMBOL_DAH)
		default:
			return nil, false
		}
	}

	return symbols, true
}

// Lookup returns the glyph for A-Z, 0-9 and the word space.
func Lookup(char rune) (Glyph, bool) {
	pattern, ok := alphabet[unicode.ToUpper(char)]

	if !ok {
		return Glyph{}, false
	}

	if pattern == "" {
		return Glyph{Word: true}, true
	}

	symbols, _ := ParsePattern(pattern)
	return Glyph{Symbols: symbols}, true
}

func (g Glyph) String() string {
	if g.Word {
		return "/"
	}

	var builder strings.Builder

	for _, sym := range g.Symbols {
		builder.WriteString(sym.String())
	}

	return builder.String()
}

// Steps is the number of timed segments the glyph renders as: each symbol and
// the gap following it, or a single silence for a word space.
func (g Glyph) Steps() int {
	if g.Word {
		return 1
	}

	return 2 * len(g.Symbols)
}

// Segment returns the symbol asserted during step and its length in ticks.
// Odd steps are gaps; the gap after the final symbol is the character gap.
func (g Glyph) Segment(step int, ticks Ticks) (Symbol, uint32) {
	if g.Word {
		return 0, ticks.Space
	}

	if step%2 == 1 {
		if step == 2*len(g.Symbols)-1 {
			return 0, ticks.BetweenChar
		}
		return 0, ticks.BetweenSymbol
	}

	if g.Symbols[step/2] == SYMBOL_DAH {
		return SYMBOL_DAH, ticks.Dah
	}

	return SYMBOL_DIT, ticks.Dit
}

// Duration is the total number of ticks the glyph occupies, trailing gap
// included.
func (g Glyph) Duration(ticks Ticks) uint64 {
	var total uint64

	for step := 0; step < g.Steps(); step++ {
		_, length := g.Segment(step, ticks)
		total += uint64(length)
	}

	return total
}

// TimingForWPM scales the reference timing to a PARIS words-per-minute rate.
func TimingForWPM(wpm uint32) Timing {
	if wpm == 0 {
		wpm = 1
	}

	dit := 1200 / wpm
	if dit == 0 {
		dit = 1
	}

	return Timing{
		Dit:           dit,
		Dah:           3 * dit,
		BetweenSymbol: dit,
		BetweenChar:   3 * dit,
		Space:         7 * dit,
		ToneHz:        TONE_HZ,
	}
}

// WPM reports the PARIS rate implied by the dit length.
func (timing Timing) WPM() uint32 {
	if timing.Dit == 0 {
		return 0
	}

	return 1200 / timing.Dit
}

func scale(ms, clockHz uint32) uint32 {
	ticks := (uint64(ms)*uint64(clockHz) + 500) / 1000

	if ticks == 0 {
		return 1
	}

	if ticks > uint64(^uint32(0)) {
		return ^uint32(0)
	}

	return uint32(ticks)
}

// Ticks scales the timing to clockHz, rounding to the nearest tick.
func (timing Timing) Ticks(clockHz uint32) Ticks {
	ticks := Ticks{
		ClockHz:       clockHz,
		Dit:           scale(timing.Dit, clockHz),
		Dah:           scale(timing.Dah, clockHz),
		BetweenSymbol: scale(timing.BetweenSymbol, clockHz),
		BetweenChar:   scale(timing.BetweenChar, clockHz),
		Space:         scale(timing.Space, clockHz),
	}

	if timing.ToneHz > 0 {
		half := (uint64(clockHz) + uint64(timing.ToneHz)) /
			(2 * uint64(timing.ToneHz))
		if half == 0 {
			half = 1
		}
		ticks.ToneHalfPeriod = uint32(half)
	} else {
		ticks.ToneHalfPeriod = 1
	}

	return ticks
}

// Millis converts a tick count back to milliseconds at the ticks' clock.
func (ticks Ticks) Millis(count uint64) float64 {
	if ticks.ClockHz == 0 {
		return 0
	}

	return float64(count) * 1000 / float64(ticks.ClockHz)
}
