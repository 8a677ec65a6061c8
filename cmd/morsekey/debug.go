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
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/lassandro/morsekey/pkg/debugger"
	"github.com/lassandro/morsekey/pkg/encoding"
	"github.com/lassandro/morsekey/pkg/keyer"
	"github.com/lassandro/morsekey/pkg/machine"
	"github.com/lassandro/morsekey/pkg/ps2"
)

var lastcmd []string

func indexFormat(count int, rest string) string {
	digits := math.Floor(math.Log10(float64(count + 1)))
	return fmt.Sprintf("#%%0%dd: %s\n", int64(digits)+1, rest)
}

func debugBreak(dbg *debugger.Debugger, args []string) {
	const usage = "break [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "break add [idle|received|breakwait|buffering|replaying]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		state, ok := keyer.ParseState(args[0])

		if !ok {
			log.Println(usage)
			return
		}

		for _, breakpoint := range dbg.Breakpoints {
			if breakpoint.State == state {
				return
			}
		}

		dbg.Breakpoints = append(
			dbg.Breakpoints,
			debugger.Breakpoint{State: state},
		)
		fmt.Printf("Breakpoint added [%s]\n", state)

	case "l", "ls", "list":
		fmtstring := indexFormat(len(dbg.Breakpoints), "%s")

		for i, breakpoint := range dbg.Breakpoints {
			log.Printf(fmtstring, i, breakpoint.State)
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.ParseInt(args[0], 10, 64)

		if err != nil {
			log.Println(err)
			return
		}

		if i < 0 || i >= int64(len(dbg.Breakpoints)) {
			log.Println("Invalid breakpoint number")
			return
		}

		dbg.Breakpoints[i] = dbg.Breakpoints[len(dbg.Breakpoints)-1]
		dbg.Breakpoints = dbg.Breakpoints[:len(dbg.Breakpoints)-1]
		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = make([]debugger.Breakpoint, 0)
		fmt.Println("Breakpoints reset")

	default:
		log.Printf("break: '%s' is not a valid command\n", cmd)
	}
}

func parseEdge(name string) (debugger.EdgeType, bool) {
	switch name {
	case "r", "rise":
		return debugger.RiseEdge, true
	case "f", "fall":
		return debugger.FallEdge, true
	case "b", "both":
		return debugger.BothEdges, true
	}

	return debugger.RiseEdge, false
}

func debugWatch(dbg *debugger.Debugger, args []string) {
	const usage = "watch [add|list|remove|clear]"

	if len(args) == 0 {
		log.Println(usage)
		return
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [dit|dah|mark|tone] [rise|fall|both]"

		if len(args) != 2 {
			log.Println(usage)
			return
		}

		line, ok := debugger.ParseLine(args[0])

		if !ok {
			log.Println(usage)
			return
		}

		wtype, ok := parseEdge(args[1])

		if !ok {
			log.Println(usage)
			return
		}

		for _, watchpoint := range dbg.Watchpoints {
			if watchpoint.Line == line && watchpoint.Type == wtype {
				return
			}
		}

		dbg.Watchpoints = append(
			dbg.Watchpoints,
			debugger.Watchpoint{Line: line, Type: wtype},
		)

		fmt.Printf("Watchpoint added [%s] (%s)\n", line, wtype)

	case "l", "ls", "list":
		fmtstring := indexFormat(len(dbg.Watchpoints), "%s %s")

		for i, watchpoint := range dbg.Watchpoints {
			log.Printf(fmtstring, i, watchpoint.Line, watchpoint.Type)
		}

	case "r", "rm", "remove":
		const usage = "watch remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.ParseInt(args[0], 10, 64)

		if err != nil {
			log.Println(err)
			return
		}

		if i < 0 || i >= int64(len(dbg.Watchpoints)) {
			log.Println("Invalid watchpoint number")
			return
		}

		dbg.Watchpoints[i] = dbg.Watchpoints[len(dbg.Watchpoints)-1]
		dbg.Watchpoints = dbg.Watchpoints[:len(dbg.Watchpoints)-1]
		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		dbg.Watchpoints = make([]debugger.Watchpoint, 0)
		fmt.Println("Watchpoints reset")

	default:
		log.Printf("watch: '%s' is not a valid command\n", cmd)
	}
}

func debugTrace(dbg *debugger.Debugger, mc *machine.Machine, args []string) {
	const usage = "trace [on|off|print|clear]"

	if len(args) == 0 {
		args = append(args, "print")
	}

	switch args[0] {
	case "on":
		dbg.TraceLines = []debugger.Line{debugger.LINE_DIT, debugger.LINE_DAH}
		fmt.Println("Tracing dit and dah")

	case "off":
		dbg.TraceLines = nil
		fmt.Println("Tracing stopped")

	case "p", "print":
		if err := dbg.Timeline(os.Stdout, mc.Ticks()); err != nil {
			log.Println(err)
		}

	case "clear":
		dbg.Trace = nil
		fmt.Println("Trace cleared")

	default:
		log.Println(usage)
	}
}

func debugKey(kb *ps2.Keyboard, args []string) {
	const usage = "key [name|0x##]..."

	if len(args) == 0 {
		log.Println(usage)
		return
	}

	for _, arg := range args {
		if code, ok := ps2.LookupName(arg); ok {
			kb.Tap(code)
		} else if value, err := encoding.DecodeHex(arg); err == nil {
			kb.Send(ps2.ScanCode(value))
		} else {
			log.Printf("Unknown key '%s'\n", arg)
			return
		}
	}
}

func debugType(kb *ps2.Keyboard, args []string) {
	text := strings.Join(args, " ")

	for _, char := range text {
		if !kb.Press(char) {
			log.Printf("No key for %q\n", char)
		}
	}
}

func debugREPL(
	dbg *debugger.Debugger, mc *machine.Machine, kb *ps2.Keyboard, keys *keyRouter,
) {
	keys.prompt.Store(true)
	defer keys.prompt.Store(false)

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		text, ok := keys.readLine(os.Stdout)

		if !ok {
			shouldexit.Store(true)
			return
		}

		args := strings.Fields(text)

		if len(args) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, args)

		case "w", "wp", "watch", "watchpoint":
			debugWatch(dbg, args)

		case "s", "state":
			dbg.PrintState(os.Stdout, mc)

			if code, ok := kb.Sending(); ok {
				fmt.Printf("\033[1mkeyboard:\033[0m sending %s\n", code)
			}

		case "buf", "buffer":
			dbg.PrintBuffer(os.Stdout, mc)

		case "t", "trace":
			debugTrace(dbg, mc, args)

		case "k", "key":
			debugKey(kb, args)

		case "type":
			debugType(kb, args)

		case "c", "continue":
			dbg.Break.Store(false)
			return

		case "n", "next":
			dbg.Break.Store(true)
			return

		case "q", "quit", "exit":
			shouldexit.Store(true)
			return

		case "clear":
			fmt.Print("\033[H\033[2J")

		case "reset":
			kb.Clear()
			mc.PulseReset()
			fmt.Println("Reset pending, queued keys dropped")

		default:
			fmt.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}

func handleBreak(
	kb *ps2.Keyboard, keys *keyRouter,
) func(*debugger.Debugger, *machine.Machine) {
	return func(dbg *debugger.Debugger, mc *machine.Machine) {
		if !dbg.Break.Load() {
			fmt.Println()
			fmt.Println("Machine stopped")
			dbg.PrintState(os.Stdout, mc)
		}
		debugREPL(dbg, mc, kb, keys)
	}
}

func handleWatch(
	w debugger.Watchpoint, e debugger.Edge, dbg *debugger.Debugger, mc *machine.Machine,
) {
	level := "fall"
	if e.Level {
		level = "rise"
	}

	fmt.Printf(
		"\033[1m[%d]\033[0m %s %s \033[1;30m(%.1fms)\033[0m\n",
		e.Cycle,
		e.Line,
		level,
		mc.Ticks().Millis(e.Cycle),
	)
}
