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

// Package tone derives a square wave from the keyer's Dit and Dah outputs.
package tone

// Synth toggles its output every halfPeriod ticks while keyed. Releasing the
// key returns the counter and output to zero, so every burst starts with a
// rising edge.
type Synth struct {
	halfPeriod uint32
	count      uint32
	out        bool
}

func NewSynth(halfPeriod uint32) Synth {
	if halfPeriod == 0 {
		halfPeriod = 1
	}

	return Synth{halfPeriod: halfPeriod}
}

func (s Synth) Step(dit, dah bool) Synth {
	if !dit && !dah {
		s.count = 0
		s.out = false
		return s
	}

	s.count++

	if s.count >= s.halfPeriod {
		s.count = 0
		s.out = !s.out
	}

	return s
}

func (s Synth) Reset() Synth {
	return NewSynth(s.halfPeriod)
}

func (s Synth) Out() bool {
	return s.out
}

func (s Synth) HalfPeriod() uint32 {
	return s.halfPeriod
}

// Frequency is the tone pitch in Hz at clockHz.
func (s Synth) Frequency(clockHz uint32) float64 {
	return float64(clockHz) / float64(2*s.halfPeriod)
}
