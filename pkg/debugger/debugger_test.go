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

package debugger_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lassandro/morsekey/pkg/debugger"
	"github.com/lassandro/morsekey/pkg/keyer"
	"github.com/lassandro/morsekey/pkg/machine"
	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/ps2"
)

func runText(t *testing.T, dbg *debugger.Debugger, text string) *machine.Machine {
	t.Helper()

	var mc machine.Machine
	kb := ps2.NewKeyboard(2, 4)

	mc.Configure(morse.DefaultTiming.Ticks(1000))
	mc.Devices = &machine.DeviceHandler{Keyboard: kb}
	mc.Debugger = dbg

	for _, char := range text {
		kb.Press(char)
	}

	for i := 0; i == 0 || kb.Busy() || mc.State.Engine.State() != keyer.STATE_IDLE; i++ {
		if i > 1000000 {
			t.Fatal("Machine never settled")
		}
		mc.Tick()
	}

	return &mc
}

func TestTrace(t *testing.T) {
	dbg := debugger.Debugger{
		TraceLines: []debugger.Line{debugger.LINE_DIT, debugger.LINE_DAH},
	}

	runText(t, &dbg, "ET\n")

	if len(dbg.Trace) != 4 {
		t.Fatalf("Edge count mismatch\nwant:%d\nhave:%v", 4, dbg.Trace)
	}

	want := []struct {
		Line  debugger.Line
		Level bool
	}{
		{debugger.LINE_DIT, true},
		{debugger.LINE_DIT, false},
		{debugger.LINE_DAH, true},
		{debugger.LINE_DAH, false},
	}

	for i, edge := range dbg.Trace {
		if edge.Line != want[i].Line || edge.Level != want[i].Level {
			t.Errorf("Edge %d mismatch\nwant:%v\nhave:%+v", i, want[i], edge)
		}
	}

	if have := dbg.Trace[1].Cycle - dbg.Trace[0].Cycle; have != 80 {
		t.Errorf("Dit length mismatch\nwant:%d\nhave:%d", 80, have)
	}

	if have := dbg.Trace[2].Cycle - dbg.Trace[1].Cycle; have != 240 {
		t.Errorf("Character gap mismatch\nwant:%d\nhave:%d", 240, have)
	}

	var out bytes.Buffer
	if err := dbg.Timeline(&out, morse.DefaultTiming.Ticks(1000)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	wantLines := []string{
		"dit     80.0ms",
		"gap    240.0ms",
		"dah    240.0ms",
		"gap    240.0ms",
	}

	if len(lines) != len(wantLines) {
		t.Fatalf("Timeline mismatch\nwant:%q\nhave:%q", wantLines, lines)
	}

	for i := range lines {
		if lines[i] != wantLines[i] {
			t.Errorf("Timeline line %d mismatch\nwant:%q\nhave:%q", i, wantLines[i], lines[i])
		}
	}
}

func TestWatchpoints(t *testing.T) {
	type testCase struct {
		Name  string
		Watch debugger.Watchpoint
		Count int
	}

	tests := []testCase{
		{"MarkRise", debugger.Watchpoint{debugger.LINE_MARK, debugger.RiseEdge}, 3},
		{"MarkFall", debugger.Watchpoint{debugger.LINE_MARK, debugger.FallEdge}, 3},
		{"DahBoth", debugger.Watchpoint{debugger.LINE_DAH, debugger.BothEdges}, 4},
		{"DitRise", debugger.Watchpoint{debugger.LINE_DIT, debugger.RiseEdge}, 1},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			count := 0
			dbg := debugger.Debugger{
				Watchpoints: []debugger.Watchpoint{test.Watch},
				HandleWatch: func(
					wp debugger.Watchpoint,
					edge debugger.Edge,
					dbg *debugger.Debugger,
					mc *machine.Machine,
				) {
					count++
				},
			}

			// A is dit-dah, T is dah: three marks.
			runText(t, &dbg, "AT\n")

			if count != test.Count {
				t.Errorf("Watch count mismatch\nwant:%d\nhave:%d", test.Count, count)
			}
		})
	}
}

func TestBreakpoints(t *testing.T) {
	breaks := 0
	var states []keyer.State

	dbg := debugger.Debugger{
		Breakpoints: []debugger.Breakpoint{{keyer.STATE_REPLAYING}},
		HandleBreak: func(dbg *debugger.Debugger, mc *machine.Machine) {
			breaks++
			states = append(states, mc.State.Engine.State())
		},
	}

	runText(t, &dbg, "E\n")

	if breaks != 1 {
		t.Errorf("Break count mismatch\nwant:%d\nhave:%d", 1, breaks)
	}

	if len(states) == 1 && states[0] != keyer.STATE_REPLAYING {
		t.Errorf("Break state mismatch\nwant:%s\nhave:%s", keyer.STATE_REPLAYING, states[0])
	}
}

func TestBreakFlag(t *testing.T) {
	calls := 0

	dbg := debugger.Debugger{
		HandleBreak: func(dbg *debugger.Debugger, mc *machine.Machine) {
			calls++
			dbg.Break.Store(false)
		},
	}
	dbg.Break.Store(true)

	runText(t, &dbg, "")

	if calls != 1 {
		t.Errorf("Break handler calls mismatch\nwant:%d\nhave:%d", 1, calls)
	}
}

func TestBreakFromGoroutine(t *testing.T) {
	stopped := make(chan struct{})

	dbg := debugger.Debugger{
		HandleBreak: func(dbg *debugger.Debugger, mc *machine.Machine) {
			dbg.Break.Store(false)
			close(stopped)
		},
	}

	var mc machine.Machine
	mc.Configure(morse.DefaultTiming.Ticks(1000))
	mc.Debugger = &dbg

	go dbg.Break.Store(true)

	deadline := time.Now().Add(5 * time.Second)
	idle := machine.Inputs{Clock: true, Data: true, Enable: true}

	for {
		select {
		case <-stopped:
			return
		default:
		}

		if time.Now().After(deadline) {
			t.Fatal("Break set from another goroutine was never handled")
		}

		mc.Step(idle)
	}
}

func TestPrintBuffer(t *testing.T) {
	var dbg debugger.Debugger
	var mc machine.Machine
	kb := ps2.NewKeyboard(2, 4)

	mc.Configure(morse.DefaultTiming.Ticks(12000))
	mc.Devices = &machine.DeviceHandler{Keyboard: kb}
	mc.Debugger = &dbg

	for _, char := range "SOS" {
		kb.Press(char)
	}

	for i := 0; kb.Busy() || mc.State.Engine.State() != keyer.STATE_IDLE; i++ {
		if i > 1000000 {
			t.Fatal("Machine never settled")
		}
		mc.Tick()
	}

	var out bytes.Buffer
	dbg.PrintBuffer(&out, &mc)

	// S and O with their trailing character gaps: 640ms + 1120ms + 640ms.
	if want := `"SOS" \033[1;30m(2400.0ms)`; !strings.Contains(out.String(), want) {
		t.Errorf("Buffer line mismatch\nwant:%q\nhave:%q", want, out.String())
	}

	out.Reset()
	dbg.PrintState(&out, &mc)

	if want := "600.0Hz (10 ticks/half)"; !strings.Contains(out.String(), want) {
		t.Errorf("Pitch mismatch\nwant:%q\nhave:%q", want, out.String())
	}
}

func TestParseLine(t *testing.T) {
	for _, name := range []string{"dit", "DAH", "Mark", "tone"} {
		line, ok := debugger.ParseLine(name)

		if !ok || !strings.EqualFold(line.String(), name) {
			t.Errorf("Line parse mismatch\nwant:%s\nhave:%s", name, line)
		}
	}

	if _, ok := debugger.ParseLine("buzz"); ok {
		t.Error("Unknown line accepted")
	}
}
