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
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/lassandro/morsekey/pkg/debugger"
	"github.com/lassandro/morsekey/pkg/keyscript"
	"github.com/lassandro/morsekey/pkg/machine"
	"github.com/lassandro/morsekey/pkg/morse"
	"github.com/lassandro/morsekey/pkg/ps2"
	"github.com/lassandro/morsekey/pkg/speaker"
)

var helpvar bool
var luavar bool
var timelinevar bool
var outvar string
var clockvar uint
var wpmvar uint
var halfvar uint

const usage = "morsekey-render [-lua] [-timeline] [-out file.wav] filename"

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&luavar, "lua", false,
		"Treats the input as a Lua script. Implied by a '.lua' extension",
	)
	flag.BoolVar(
		&timelinevar, "timeline", false,
		"Prints the dit, dah and gap lengths. No WAV file is written "+
			"unless -out is also given",
	)
	flag.StringVar(
		&outvar, "out", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)
	flag.UintVar(
		&clockvar, "clock", uint(machine.AUDIO_CLOCK_HZ),
		"Machine clock in Hz, also used as the WAV sample rate",
	)
	flag.UintVar(
		&wpmvar, "wpm", 0,
		"Keying speed in PARIS words per minute (0 keeps the 80ms dit)",
	)
	flag.UintVar(
		&halfvar, "halfperiod", uint(machine.DEFAULT_KEYBOARD_HALF_PERIOD),
		"Keyboard clock half period in machine ticks",
	)
}

func printErrors(errs []error, input io.ReadSeeker) {
	for _, err := range errs {
		tokenErr, ok := err.(keyscript.TokenError)

		if !ok || input == nil {
			log.Println(err)
			continue
		}

		cursor := tokenErr.GetPosition()

		if _, err := input.Seek(cursor.LineByte, io.SeekStart); err != nil {
			log.Println(err)
			continue
		}

		line, _ := bufio.NewReader(input).ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		size := int(cursor.Size)
		if size < 1 {
			size = 1
		}

		underlinefmt := fmt.Sprintf(
			"%% %ds%s",
			int(cursor.Byte-cursor.LineByte)+1,
			strings.Repeat("~", size-1),
		)

		log.Printf(
			"%s\n%s\n\033[31m%s\033[0m",
			err,
			line,
			fmt.Sprintf(underlinefmt, "^"),
		)
	}
}

func render() int {
	flag.Parse()

	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	if clockvar == 0 {
		log.Println(usage)
		return 1
	}

	args := flag.Args()

	var name string
	var input io.ReadSeeker

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		name = "<stdin>"
		log.SetPrefix("\033[1m<stdin>:\033[0m")

		if outvar == "" && !timelinevar {
			outvar = "out.wav"
		}

		// Stdin cannot seek back for error display.
		data, err := io.ReadAll(os.Stdin)

		if err != nil {
			log.Println(err)
			return 1
		}

		input = strings.NewReader(string(data))
	} else {
		if len(args) != 1 {
			log.Println(usage)
			return 1
		}

		file, err := os.Open(args[0])

		if err != nil {
			log.Println(err)
			return 1
		}

		defer file.Close()

		name = filepath.Base(file.Name())

		if stat, err := file.Stat(); err != nil {
			log.Println(err)
			return 1
		} else {
			if stat.IsDir() {
				log.Printf("%s is not a valid keystroke script", name)
				return 1
			}
		}

		input = file
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m", name))

		if strings.EqualFold(filepath.Ext(name), ".lua") {
			luavar = true
		}

		if outvar == "" && !timelinevar {
			outvar = strings.TrimSuffix(name, filepath.Ext(name)) + ".wav"
		}
	}

	var events []keyscript.Event

	if luavar {
		var err error

		if events, err = keyscript.LoadLua(input, name); err != nil {
			log.Println(err)
			return 1
		}
	} else {
		var errs []error

		if events, errs = keyscript.AssembleScript(input); len(errs) > 0 {
			printErrors(errs, input)
			return 1
		}
	}

	timing := morse.DefaultTiming
	if wpmvar != 0 {
		timing = morse.TimingForWPM(uint32(wpmvar))
	}

	kb := ps2.NewKeyboard(uint32(halfvar), machine.DEFAULT_KEYBOARD_FRAME_GAP)

	var mc machine.Machine
	var dh machine.DeviceHandler
	dh.Keyboard = kb
	mc.Devices = &dh
	mc.Configure(timing.Ticks(uint32(clockvar)))

	var dbg debugger.Debugger
	dbg.TraceLines = []debugger.Line{debugger.LINE_DIT, debugger.LINE_DAH}
	mc.Debugger = &dbg

	var wav *speaker.WAVWriter

	if outvar != "" {
		file, err := os.Create(outvar)

		if err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}

		defer file.Close()

		if wav, err = speaker.NewWAVWriter(file, uint32(clockvar)); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}

		dh.Speaker = wav
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	player := keyscript.Player{Machine: &mc, Keyboard: kb}

	if err := player.Play(ctx, events); err != nil {
		log.Println(err)
		return 1
	}

	if wav != nil {
		if err := wav.Close(); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}

		log.Printf(
			"wrote %s (%.2fs at %d wpm)\n",
			outvar,
			float64(wav.Samples())/float64(clockvar),
			timing.WPM(),
		)
	}

	if timelinevar {
		if err := dbg.Timeline(os.Stdout, mc.Ticks()); err != nil {
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	os.Exit(render())
}
