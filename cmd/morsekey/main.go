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
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lassandro/morsekey/pkg/debugger"
	"github.com/lassandro/morsekey/pkg/machine"
	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/ps2"
	"github.com/lassandro/morsekey/pkg/speaker"
)

var helpvar bool
var debugvar bool
var clockvar uint
var wpmvar uint
var halfvar uint
var serialvar string
var baudvar int

var shouldexit atomic.Bool

var errQuit = errors.New("quit")

const usage = "morsekey [-debug] [-clock hz] [-wpm n] [-serial port]"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.UintVar(
		&clockvar, "clock", uint(machine.AUDIO_CLOCK_HZ),
		"Machine clock in Hz, also used as the audio sample rate",
	)
	flag.UintVar(
		&wpmvar, "wpm", 0,
		"Keying speed in PARIS words per minute (0 keeps the 80ms dit)",
	)
	flag.UintVar(
		&halfvar, "halfperiod", uint(machine.DEFAULT_KEYBOARD_HALF_PERIOD),
		"Keyboard clock half period in machine ticks",
	)
	flag.StringVar(
		&serialvar, "serial", "",
		"Also forwards raw scan codes from a keyboard bridge on this "+
			"serial port",
	)
	flag.IntVar(
		&baudvar, "baud", DEFAULT_BRIDGE_BAUD, "Keyboard bridge baud rate",
	)
}

// watchPlayer ends the session when the audio source fails or the debugger
// asks to quit.
func watchPlayer(ctx context.Context, player *speaker.Player) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := player.Err(); err != nil {
			return err
		}

		if shouldexit.Load() {
			return errQuit
		}
	}
}

func handleSymbol(
	w debugger.Watchpoint, _ debugger.Edge, _ *debugger.Debugger, _ *machine.Machine,
) {
	switch w.Line {
	case debugger.LINE_DIT:
		fmt.Print(".")
	case debugger.LINE_DAH:
		fmt.Print("-")
	}
}

func morsekey() int {
	flag.Parse()

	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	if len(flag.Args()) != 0 || clockvar == 0 {
		log.Println(usage)
		return 1
	}

	timing := morse.DefaultTiming
	if wpmvar != 0 {
		timing = morse.TimingForWPM(uint32(wpmvar))
	}

	kb := ps2.NewKeyboard(uint32(halfvar), machine.DEFAULT_KEYBOARD_FRAME_GAP)

	var mc machine.Machine
	mc.Devices = &machine.DeviceHandler{Keyboard: kb}
	mc.Configure(timing.Ticks(uint32(clockvar)))

	var dbg debugger.Debugger
	mc.Debugger = &dbg

	keys := newKeyRouter()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	if debugvar {
		dbg.HandleBreak = handleBreak(kb, keys)
		dbg.HandleWatch = handleWatch

		go func() {
			for range sigs {
				fmt.Println()
				dbg.Break.Store(true)
			}
		}()
	} else {
		dbg.Watchpoints = []debugger.Watchpoint{
			{Line: debugger.LINE_DIT, Type: debugger.RiseEdge},
			{Line: debugger.LINE_DAH, Type: debugger.RiseEdge},
		}
		dbg.HandleWatch = handleSymbol

		go func() {
			for range sigs {
				stop()
			}
		}()
	}

	var bridge io.ReadCloser

	if serialvar != "" {
		port, err := openBridge(serialvar, baudvar)

		if err != nil {
			log.Println("Error opening keyboard bridge")
			log.Println(err)
			return 1
		}

		bridge = port
		defer bridge.Close()
	}

	player, err := speaker.NewPlayer(int(clockvar))

	if err != nil {
		log.Println("Error opening audio device")
		log.Println(err)
		return 1
	}

	defer player.Close()

	player.Setup(speaker.SourceFunc(func() (bool, error) {
		if shouldexit.Load() {
			return false, nil
		}

		out, err := mc.Tick()
		return out.Tone, err
	}))

	if err := enterRawTerm(); err != nil {
		log.Println(err)
		return 1
	}

	defer exitRawTerm()

	log.Printf("keying at %d wpm, %d Hz\n", timing.WPM(), clockvar)

	group, ctx := errgroup.WithContext(ctx)
	raw := termRaw

	group.Go(func() error {
		return keys.run(ctx, os.Stdin, raw, kb)
	})

	group.Go(func() error {
		return watchPlayer(ctx, player)
	})

	if bridge != nil {
		group.Go(func() error {
			return forwardCodes(ctx, bridge, kb)
		})
	}

	if debugvar {
		debugREPL(&dbg, &mc, kb, keys)
	}

	if !shouldexit.Load() {
		player.Start()
	}

	if err := group.Wait(); err != nil && !errors.Is(err, errQuit) {
		exitRawTerm()
		log.Println(err)
		return 1
	}

	fmt.Println()
	return 0
}

func main() {
	os.Exit(morsekey())
}
