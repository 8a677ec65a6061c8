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

package keyscript

import (
	"context"

	"github.com/lassandro/morsekey/pkg/keyer"
	"github.com/lassandro/morsekey/pkg/machine"
	"github.com/lassandro/morsekey/pkg/ps2"
)

// Player drives a machine through a script. Keyboard must be the machine's
// keyboard device.
type Player struct {
	Machine  *machine.Machine
	Keyboard *ps2.Keyboard
}

func (p *Player) tickWhile(ctx context.Context, cond func() bool) error {
	for i := 0; cond(); i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		if _, err := p.Machine.Tick(); err != nil {
			return err
		}
	}

	return nil
}

func (p *Player) keyboardIdle(ctx context.Context) error {
	return p.tickWhile(ctx, p.Keyboard.Busy)
}

// Play queues codes on the keyboard and ticks the machine through waits and
// resets. Codes queued before a wait or reset are fully transmitted first.
// Play returns once the keyboard is idle and any replay has finished.
func (p *Player) Play(ctx context.Context, events []Event) error {
	ticks := p.Machine.Ticks()

	for _, event := range events {
		switch event.Type {
		case EVENT_CODE:
			p.Keyboard.Send(event.Code)

		case EVENT_WAIT:
			if err := p.keyboardIdle(ctx); err != nil {
				return err
			}

			count := uint64(event.Millis) * uint64(ticks.ClockHz) / 1000

			if err := p.Machine.Run(ctx, count); err != nil {
				return err
			}

		case EVENT_RESET:
			if err := p.keyboardIdle(ctx); err != nil {
				return err
			}

			p.Machine.PulseReset()

			if _, err := p.Machine.Tick(); err != nil {
				return err
			}
		}
	}

	return p.Settle(ctx)
}

// Settle ticks until the keyboard has nothing left to send and the engine is
// waiting for input. A dangling break code leaves the engine in BreakWait,
// which counts as waiting.
func (p *Player) Settle(ctx context.Context) error {
	return p.tickWhile(ctx, func() bool {
		if p.Keyboard.Busy() {
			return true
		}

		state := p.Machine.State.Engine.State()
		return state != keyer.STATE_IDLE && state != keyer.STATE_BREAK_WAIT
	})
}
