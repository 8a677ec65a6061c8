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
	"io"

	lua "github.com/yuin/gopher-lua"

	"github.com/lassandro/morsekey/pkg/ps2"
)

type luaScript struct {
	events []Event
}

func (script *luaScript) position(L *lua.LState) Cursor {
	var cursor Cursor

	if debug, ok := L.GetStack(1); ok {
		if _, err := L.GetInfo("l", debug, lua.LNil); err == nil {
			cursor.Line = debug.CurrentLine
		}
	}

	return cursor
}

func (script *luaScript) code(L *lua.LState, n int) ps2.ScanCode {
	switch value := L.Get(n).(type) {
	case lua.LNumber:
		if value < 0 || value > 0xFF || value != lua.LNumber(int(value)) {
			L.ArgError(n, "scan code out of range")
		}
		return ps2.ScanCode(int(value))

	case lua.LString:
		code, ok := ps2.LookupName(string(value))
		if !ok {
			L.ArgError(n, "no key mapped for '"+string(value)+"'")
		}
		return code
	}

	L.TypeError(n, lua.LTNumber)
	return ps2.CODE_NONE
}

func (script *luaScript) emit(L *lua.LState, codes ...ps2.ScanCode) {
	position := script.position(L)

	for _, code := range codes {
		script.events = append(
			script.events,
			Event{Type: EVENT_CODE, Code: code, Position: position},
		)
	}
}

func (script *luaScript) text(L *lua.LState) int {
	for _, char := range L.CheckString(1) {
		code, ok := ps2.Lookup(char)

		if !ok {
			L.ArgError(1, "no key mapped for '"+string(char)+"'")
		}

		script.emit(L, code, ps2.CODE_BREAK, code)
	}

	return 0
}

func (script *luaScript) key(L *lua.LState) int {
	code := script.code(L, 1)
	script.emit(L, code, ps2.CODE_BREAK, code)
	return 0
}

func (script *luaScript) make(L *lua.LState) int {
	script.emit(L, script.code(L, 1))
	return 0
}

func (script *luaScript) release(L *lua.LState) int {
	script.emit(L, ps2.CODE_BREAK, script.code(L, 1))
	return 0
}

func (script *luaScript) wait(L *lua.LState) int {
	millis := L.CheckInt(1)

	if millis < 0 {
		L.ArgError(1, "negative duration")
	}

	script.events = append(
		script.events,
		Event{
			Type:     EVENT_WAIT,
			Millis:   uint32(millis),
			Position: script.position(L),
		},
	)

	return 0
}

func (script *luaScript) reset(L *lua.LState) int {
	script.events = append(
		script.events,
		Event{Type: EVENT_RESET, Position: script.position(L)},
	)

	return 0
}

// LoadLua runs a Lua keystroke script and collects the events it emits
// through text, key, make, release, wait and reset.
func LoadLua(input io.Reader, name string) ([]Event, error) {
	var script luaScript

	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("text", L.NewFunction(script.text))
	L.SetGlobal("key", L.NewFunction(script.key))
	L.SetGlobal("make", L.NewFunction(script.make))
	L.SetGlobal("release", L.NewFunction(script.release))
	L.SetGlobal("wait", L.NewFunction(script.wait))
	L.SetGlobal("reset", L.NewFunction(script.reset))

	fn, err := L.Load(input, name)

	if err != nil {
		return nil, err
	}

	L.Push(fn)

	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, err
	}

	return script.events, nil
}
