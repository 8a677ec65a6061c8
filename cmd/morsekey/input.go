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
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/lassandro/morsekey/pkg/ps2"
)

const (
	KEY_BS  = 0x08
	KEY_DEL = 0x7F
)

// keyRouter owns stdin. One goroutine reads it and hands every chunk either
// to the emulated keyboard or, while the debug prompt is open, to the prompt.
// No lock is held across a read, so the prompt can open at any time.
type keyRouter struct {
	prompt atomic.Bool
	lines  chan []byte

	// Prompt side only.
	rest   []byte
	skipLF bool
}

func newKeyRouter() *keyRouter {
	return &keyRouter{lines: make(chan []byte, 16)}
}

// run reads input until ctx is done, Ctrl-D is typed outside the prompt, or
// input ends. With raw set an empty read is a timeout rather than the end of
// input. The prompt sees end of input once run returns.
func (r *keyRouter) run(
	ctx context.Context, input io.Reader, raw bool, kb *ps2.Keyboard,
) error {
	defer close(r.lines)

	var pending pendingKeys

	for ctx.Err() == nil && !shouldexit.Load() {
		buf := make([]byte, 64)
		n, err := input.Read(buf)

		if n > 0 {
			if r.prompt.Load() {
				select {
				case r.lines <- buf[:n]:
				case <-ctx.Done():
					return nil
				}
			} else if pending.feed(buf[:n], kb.Tap) {
				return errQuit
			}
		}

		if err == io.EOF {
			if raw {
				continue
			}
			// Piped input: playback carries on until interrupted.
			return nil
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// readLine collects one prompt line, echoing it to echo. Backspace edits the
// line and escape sequences are dropped. It reports false at the end of input
// or on Ctrl-D at the start of a line.
func (r *keyRouter) readLine(echo io.Writer) (string, bool) {
	var line []rune

	for {
	scan:
		for len(r.rest) > 0 {
			b := r.rest[0]

			if r.skipLF {
				r.skipLF = false

				if b == '\n' {
					r.rest = r.rest[1:]
					continue
				}
			}

			switch b {
			case '\r', '\n':
				r.rest = r.rest[1:]
				r.skipLF = b == '\r'
				fmt.Fprint(echo, "\n")
				return string(line), true

			case KEY_EOT:
				r.rest = r.rest[1:]

				if len(line) == 0 {
					fmt.Fprint(echo, "\n")
					return "", false
				}

			case KEY_BS, KEY_DEL:
				r.rest = r.rest[1:]

				if len(line) > 0 {
					line = line[:len(line)-1]
					fmt.Fprint(echo, "\b \b")
				}

			case KEY_ESC:
				length := escapeLength(r.rest)

				if length == 0 {
					break scan
				}

				r.rest = r.rest[length:]

			default:
				if !utf8.FullRune(r.rest) {
					break scan
				}

				char, size := utf8.DecodeRune(r.rest)
				r.rest = r.rest[size:]

				if unicode.IsPrint(char) {
					line = append(line, char)
					fmt.Fprint(echo, string(char))
				}
			}
		}

		chunk, ok := <-r.lines

		if !ok {
			fmt.Fprint(echo, "\n")
			return "", false
		}

		r.rest = append(r.rest, chunk...)
	}
}
