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
	"sync/atomic"

	"github.com/lassandro/morsekey/pkg/keyer"
	"github.com/lassandro/morsekey/pkg/machine"
)

type Line uint

const (
	LINE_DIT Line = iota
	LINE_DAH
	LINE_MARK
	LINE_TONE
)

type EdgeType uint

const (
	RiseEdge EdgeType = iota
	FallEdge
	BothEdges
)

type Watchpoint struct {
	Line Line
	Type EdgeType
}

// Breakpoint fires on the tick the engine enters State.
type Breakpoint struct {
	State keyer.State
}

// Edge is one recorded level change on an output line.
type Edge struct {
	Cycle uint64
	Line  Line
	Level bool
}

type Debugger struct {
	// Break stops the machine on the next tick. It may be set from another
	// goroutine.
	Break atomic.Bool

	Breakpoints []Breakpoint
	Watchpoints []Watchpoint

	// Lines whose edges are appended to Trace.
	TraceLines []Line
	Trace      []Edge

	HandleBreak func(*Debugger, *machine.Machine)
	HandleWatch func(Watchpoint, Edge, *Debugger, *machine.Machine)

	last      machine.Outputs
	lastState keyer.State

	// Cycle at which the engine last left Replaying.
	replayEnd uint64
}
