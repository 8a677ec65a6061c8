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

package speaker_test

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lassandro/morsekey/pkg/speaker"
)

func TestWAVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	wav, err := speaker.NewWAVWriter(file, 8000)
	if err != nil {
		t.Fatal(err)
	}

	levels := []bool{false, true, true, false, true}

	for _, level := range levels {
		if err := wav.WriteSample(level); err != nil {
			t.Fatal(err)
		}
	}

	if err := wav.Close(); err != nil {
		t.Fatal(err)
	}

	if err := wav.WriteSample(true); !errors.Is(err, speaker.ErrClosed) {
		t.Errorf(
			"Error mismatch\nwant:%v\nhave:%v",
			speaker.ErrClosed,
			err,
		)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := speaker.WAV_HEADER_SIZE + 2*len(levels); len(data) != want {
		t.Fatalf("Size mismatch\nwant:%d\nhave:%d", want, len(data))
	}

	type testCase struct {
		Name  string
		Start int
		Want  string
	}

	for _, test := range []testCase{
		{Name: "RIFF", Start: 0, Want: "RIFF"},
		{Name: "WAVE", Start: 8, Want: "WAVE"},
		{Name: "fmt", Start: 12, Want: "fmt "},
		{Name: "data", Start: 36, Want: "data"},
	} {
		have := string(data[test.Start : test.Start+4])

		if have != test.Want {
			t.Errorf(
				"%s tag mismatch\nwant:%q\nhave:%q",
				test.Name,
				test.Want,
				have,
			)
		}
	}

	if have := binary.LittleEndian.Uint32(data[4:]); have != 36+10 {
		t.Errorf("RIFF size mismatch\nwant:%d\nhave:%d", 46, have)
	}

	if have := binary.LittleEndian.Uint32(data[24:]); have != 8000 {
		t.Errorf("Sample rate mismatch\nwant:%d\nhave:%d", 8000, have)
	}

	if have := binary.LittleEndian.Uint32(data[40:]); have != 10 {
		t.Errorf("Data size mismatch\nwant:%d\nhave:%d", 10, have)
	}

	for i, level := range levels {
		var want int16
		if level {
			want = speaker.PCM_HIGH
		}

		offset := speaker.WAV_HEADER_SIZE + 2*i
		have := int16(binary.LittleEndian.Uint16(data[offset:]))

		if have != want {
			t.Errorf("Sample %d mismatch\nwant:%d\nhave:%d", i, want, have)
		}
	}
}

type failingSeeker struct {
	writes int
}

func (f *failingSeeker) Write(b []byte) (int, error) {
	f.writes++
	return len(b), nil
}

func (f *failingSeeker) Seek(int64, int) (int64, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestWAVWriterSeekError(t *testing.T) {
	wav, err := speaker.NewWAVWriter(&failingSeeker{}, 8000)
	if err != nil {
		t.Fatal(err)
	}

	if err := wav.WriteSample(true); err != nil {
		t.Fatal(err)
	}

	if err := wav.Close(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf(
			"Error mismatch\nwant:%v\nhave:%v",
			io.ErrUnexpectedEOF,
			err,
		)
	}

	if have := wav.Samples(); have != 1 {
		t.Errorf("Samples mismatch\nwant:%d\nhave:%d", 1, have)
	}
}

func TestSourceFunc(t *testing.T) {
	count := 0
	source := speaker.SourceFunc(func() (bool, error) {
		count++
		return count%2 == 0, nil
	})

	for i, want := range []bool{false, true, false, true} {
		have, err := source.NextSample()
		if err != nil {
			t.Fatal(err)
		}

		if have != want {
			t.Errorf("Sample %d mismatch\nwant:%t\nhave:%t", i, want, have)
		}
	}
}
