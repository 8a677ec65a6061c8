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

// Package speaker turns the machine's tone line into sound, either live
// through the host audio device or as a WAV file.
package speaker

const (
	// Peak level of the tone relative to full scale.
	AMPLITUDE = 0.3

	// AMPLITUDE as a 16-bit PCM level.
	PCM_HIGH int16 = 9830
)

// Source yields the tone level for the next audio sample.
type Source interface {
	NextSample() (bool, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (bool, error)

func (fn SourceFunc) NextSample() (bool, error) {
	return fn()
}
