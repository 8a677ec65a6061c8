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
	"context"

	"github.com/lassandro/morsekey/pkg/keyer"
	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/tone"
)

func (mc *MachineState) Reset() {
	mc.Decoder = mc.Decoder.Reset()
	mc.Engine = mc.Engine.Reset()
	mc.Synth = mc.Synth.Reset()
	mc.Outputs = Outputs{}
}

// Configure builds the components for ticks and resets them.
func (mc *Machine) Configure(ticks morse.Ticks) {
	mc.ticks = ticks
	mc.cycle = 0
	mc.resetPending = false

	mc.State.Engine = keyer.NewEngine(ticks)
	mc.State.Synth = tone.NewSynth(ticks.ToneHalfPeriod)
	mc.State.Reset()
}

func (mc *Machine) Ticks() morse.Ticks {
	return mc.ticks
}

// Cycle counts every tick presented to Step, including reset and disabled
// ones.
func (mc *Machine) Cycle() uint64 {
	return mc.cycle
}

// PulseReset asserts the reset input on the next Tick.
func (mc *Machine) PulseReset() {
	mc.resetPending = true
}

// Step advances all components by one tick. Reset wins over Enable; a
// disabled machine holds its state and outputs. Within a tick the decoder
// feeds the engine and the engine feeds the synth.
func (mc *Machine) Step(in Inputs) Outputs {
	state := &mc.State

	if in.Reset {
		state.Reset()
	} else if in.Enable {
		state.Decoder = state.Decoder.Step(in.Clock, in.Data)
		state.Engine = state.Engine.Step(
			state.Decoder.Code(), state.Decoder.Ready(),
		)
		state.Synth = state.Synth.Step(state.Engine.Dit(), state.Engine.Dah())

		dit := state.Engine.Dit()
		dah := state.Engine.Dah()

		state.Outputs = Outputs{
			Dit:  dit,
			Dah:  dah,
			Mark: dit || dah,
			Tone: state.Synth.Out(),
		}
	}

	mc.cycle++

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return state.Outputs
}

// Tick samples the attached keyboard, steps the machine and hands the tone
// level to the attached speaker.
func (mc *Machine) Tick() (Outputs, error) {
	in := Inputs{
		Clock:  LINE_IDLE_CLOCK,
		Data:   LINE_IDLE_DATA,
		Reset:  mc.resetPending,
		Enable: !mc.Disabled,
	}

	mc.resetPending = false

	if mc.Devices != nil && mc.Devices.Keyboard != nil {
		in.Clock, in.Data = mc.Devices.Keyboard.Lines()
	}

	out := mc.Step(in)

	if mc.Devices != nil && mc.Devices.Speaker != nil {
		if err := mc.Devices.Speaker.WriteSample(out.Tone); err != nil {
			return out, err
		}
	}

	return out, nil
}

// Run ticks count times, stopping early if ctx is cancelled or a device
// fails.
func (mc *Machine) Run(ctx context.Context, count uint64) error {
	for i := uint64(0); i < count; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if _, err := mc.Tick(); err != nil {
			return err
		}
	}

	return nil
}
