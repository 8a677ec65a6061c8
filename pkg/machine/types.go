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

package machine

import (
	"github.com/lassandro/morsekey/pkg/keyer"
	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/ps2"
	"github.com/lassandro/morsekey/pkg/tone"
)

// Inputs are the lines sampled on one tick.
type Inputs struct {
	Clock  bool
	Data   bool
	Reset  bool
	Enable bool
}

// Outputs are the lines driven after one tick. Mark is Dit or Dah.
type Outputs struct {
	Dit  bool
	Dah  bool
	Mark bool
	Tone bool
}

// LineSource supplies the keyboard clock and data levels for one tick.
type LineSource interface {
	Lines() (clock, data bool)
}

// SampleSink receives the tone level once per tick.
type SampleSink interface {
	WriteSample(high bool) error
}

type DeviceHandler struct {
	Keyboard LineSource
	Speaker  SampleSink
}

type MachineState struct {
	Decoder ps2.Decoder
	Engine  keyer.Engine
	Synth   tone.Synth
	Outputs Outputs
}

type MachineDebugger interface {
	Step(mc *Machine)
}

type Machine struct {
	Devices  *DeviceHandler
	State    MachineState
	Debugger MachineDebugger

	// Disabled holds every component and output while set.
	Disabled bool

	ticks        morse.Ticks
	cycle        uint64
	resetPending bool
}
