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

package debugger

import (
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/morsekey/pkg/keyer"
	"github.com/lassandro/morsekey/pkg/machine"
	"github.com/lassandro/morsekey/pkg/morse"
)

var lineNames = [...]string{
	LINE_DIT:  "dit",
	LINE_DAH:  "dah",
	LINE_MARK: "mark",
	LINE_TONE: "tone",
}

func (line Line) String() string {
	if int(line) < len(lineNames) {
		return lineNames[line]
	}

	return "<invalid>"
}

// ParseLine accepts the names printed by Line.String.
func ParseLine(name string) (Line, bool) {
	for i, lineName := range lineNames {
		if strings.EqualFold(name, lineName) {
			return Line(i), true
		}
	}

	return 0, false
}

func (edge EdgeType) String() string {
	switch edge {
	case RiseEdge:
		return "rise"
	case FallEdge:
		return "fall"
	case BothEdges:
		return "both"
	}

	return "<invalid>"
}

func level(out machine.Outputs, line Line) bool {
	switch line {
	case LINE_DIT:
		return out.Dit
	case LINE_DAH:
		return out.Dah
	case LINE_MARK:
		return out.Mark
	case LINE_TONE:
		return out.Tone
	}

	return false
}

func (dbg *Debugger) Step(mc *machine.Machine) {
	out := mc.State.Outputs
	state := mc.State.Engine.State()
	cycle := mc.Cycle()

	for _, line := range dbg.TraceLines {
		if have := level(out, line); have != level(dbg.last, line) {
			dbg.Trace = append(dbg.Trace, Edge{cycle, line, have})
		}
	}

	for _, watchpoint := range dbg.Watchpoints {
		prev := level(dbg.last, watchpoint.Line)
		have := level(out, watchpoint.Line)

		if prev == have {
			continue
		}

		if watchpoint.Type == RiseEdge && !have {
			continue
		}

		if watchpoint.Type == FallEdge && have {
			continue
		}

		if dbg.HandleWatch != nil {
			dbg.HandleWatch(watchpoint, Edge{cycle, watchpoint.Line, have}, dbg, mc)
		}
	}

	entered := state != dbg.lastState

	if entered && dbg.lastState == keyer.STATE_REPLAYING {
		dbg.replayEnd = cycle
	}

	dbg.last = out
	dbg.lastState = state

	if dbg.Break.Load() {
		if dbg.HandleBreak != nil {
			dbg.HandleBreak(dbg, mc)
		}
		return
	}

	if !entered {
		return
	}

	for _, breakpoint := range dbg.Breakpoints {
		if breakpoint.State == state {
			if dbg.HandleBreak != nil {
				dbg.HandleBreak(dbg, mc)
			}
			break
		}
	}
}

// Timeline renders the Dit/Dah edges of Trace as runs of symbols and gaps with
// their lengths in milliseconds. The run after the last edge ends when the
// replay did, so the final character gap is included.
func (dbg *Debugger) Timeline(w io.Writer, ticks morse.Ticks) error {
	var start uint64
	var mark morse.Symbol
	var open bool

	for _, edge := range dbg.Trace {
		if edge.Line != LINE_DIT && edge.Line != LINE_DAH {
			continue
		}

		if open {
			if _, err := fmt.Fprintf(
				w, "%s %8.1fms\n", runName(mark), ticks.Millis(edge.Cycle-start),
			); err != nil {
				return err
			}
		}

		if edge.Level {
			mark = morse.SYMBOL_DIT
			if edge.Line == LINE_DAH {
				mark = morse.SYMBOL_DAH
			}
		} else {
			mark = 0
		}

		start = edge.Cycle
		open = true
	}

	if open && dbg.replayEnd > start {
		if _, err := fmt.Fprintf(
			w, "%s %8.1fms\n", runName(mark), ticks.Millis(dbg.replayEnd-start),
		); err != nil {
			return err
		}
	}

	return nil
}

func runName(mark morse.Symbol) string {
	switch mark {
	case morse.SYMBOL_DIT:
		return "dit"
	case morse.SYMBOL_DAH:
		return "dah"
	}

	return "gap"
}

func (dbg *Debugger) PrintState(w io.Writer, mc *machine.Machine) {
	engine := mc.State.Engine
	out := mc.State.Outputs

	fmt.Fprintf(w, "\033[1mcycle:\033[0m %d\t\033[1mdecoder:\033[0m %s\n",
		mc.Cycle(), mc.State.Decoder.State())
	fmt.Fprintf(w, "\033[1mengine:\033[0m %s\t\033[1mmode:\033[0m %s\n",
		engine.State(), engine.Mode())

	if engine.State() == keyer.STATE_REPLAYING {
		fmt.Fprintf(w, "\033[1mcursor:\033[0m %d\n", engine.Cursor())
	}

	synth := mc.State.Synth
	fmt.Fprintf(w, "\033[1mpitch:\033[0m %.1fHz (%d ticks/half)\n",
		synth.Frequency(mc.Ticks().ClockHz), synth.HalfPeriod())

	fmt.Fprintf(w, "\033[1mdit:\033[0m %v\t\033[1mdah:\033[0m %v\t"+
		"\033[1mmark:\033[0m %v\t\033[1mtone:\033[0m %v\n",
		out.Dit, out.Dah, out.Mark, out.Tone)
}

func (dbg *Debugger) PrintBuffer(w io.Writer, mc *machine.Machine) {
	buffer := mc.State.Engine.Buffer()

	for i, code := range buffer {
		if code == 0 {
			fmt.Fprintf(w, "\033[1;30m%#04x\033[0m ", uint8(code))
		} else {
			fmt.Fprintf(w, "%#04x ", uint8(code))
		}

		if i == len(buffer)/2-1 {
			fmt.Fprintln(w)
		}
	}

	var length uint64
	for _, code := range buffer {
		if glyph, ok := keyer.Glyphs.Lookup(code); ok {
			length += glyph.Duration(mc.Ticks())
		}
	}

	fmt.Fprintf(w, "\n%q \033[1;30m(%.1fms)\033[0m\n",
		buffer.String(), mc.Ticks().Millis(length))
}
