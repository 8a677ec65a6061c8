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

package speaker

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

const (
	WAV_HEADER_SIZE = 44
	WAV_RIFF_OFFSET = 4
	WAV_DATA_OFFSET = 40
)

var ErrClosed = errors.New("wav writer closed")

// WAVWriter records one 16-bit mono PCM sample per WriteSample call. The
// chunk sizes are patched into the header on Close.
type WAVWriter struct {
	out        io.WriteSeeker
	buf        *bufio.Writer
	sampleRate uint32
	samples    uint32
	closed     bool
}

func NewWAVWriter(out io.WriteSeeker, sampleRate uint32) (*WAVWriter, error) {
	wav := &WAVWriter{
		out:        out,
		buf:        bufio.NewWriter(out),
		sampleRate: sampleRate,
	}

	if err := wav.writeHeader(); err != nil {
		return nil, err
	}

	return wav, nil
}

func (wav *WAVWriter) writeHeader() error {
	var header [WAV_HEADER_SIZE]byte

	dataSize := wav.samples * 2

	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], 36+dataSize)
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:], 1) // mono
	binary.LittleEndian.PutUint32(header[24:], wav.sampleRate)
	binary.LittleEndian.PutUint32(header[28:], wav.sampleRate*2)
	binary.LittleEndian.PutUint16(header[32:], 2)
	binary.LittleEndian.PutUint16(header[34:], 16)
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], dataSize)

	_, err := wav.buf.Write(header[:])
	return err
}

func (wav *WAVWriter) WriteSample(high bool) error {
	if wav.closed {
		return ErrClosed
	}

	var level int16
	if high {
		level = PCM_HIGH
	}

	var sample [2]byte
	binary.LittleEndian.PutUint16(sample[:], uint16(level))

	if _, err := wav.buf.Write(sample[:]); err != nil {
		return err
	}

	wav.samples++
	return nil
}

func (wav *WAVWriter) Samples() uint32 {
	return wav.samples
}

// Close flushes buffered samples and finalizes the header. It does not
// close the underlying writer.
func (wav *WAVWriter) Close() error {
	if wav.closed {
		return nil
	}
	wav.closed = true

	if err := wav.buf.Flush(); err != nil {
		return err
	}

	dataSize := wav.samples * 2
	var size [4]byte

	binary.LittleEndian.PutUint32(size[:], 36+dataSize)
	if _, err := wav.out.Seek(WAV_RIFF_OFFSET, io.SeekStart); err != nil {
		return err
	}
	if _, err := wav.out.Write(size[:]); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(size[:], dataSize)
	if _, err := wav.out.Seek(WAV_DATA_OFFSET, io.SeekStart); err != nil {
		return err
	}
	if _, err := wav.out.Write(size[:]); err != nil {
		return err
	}

	_, err := wav.out.Seek(0, io.SeekEnd)
	return err
}
