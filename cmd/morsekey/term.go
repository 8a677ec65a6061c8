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
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var termRestore unix.Termios
var termRaw bool

// enterRawTerm disables line buffering and echo on stdin. Reads return after
// at most a tenth of a second so the key reader can notice cancellation. It
// does nothing when stdin is not a terminal.
func enterRawTerm() error {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil
	}

	termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios)

	if err != nil {
		return err
	}

	termRestore = *termios
	termstate := *termios

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &termstate); err != nil {
		return err
	}

	termRaw = true
	return nil
}

func exitRawTerm() {
	if !termRaw {
		return
	}

	if err := unix.IoctlSetTermios(
		int(os.Stdin.Fd()), ioctlWriteTermios, &termRestore,
	); err != nil {
		panic(err)
	}

	termRaw = false
}
