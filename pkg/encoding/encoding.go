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

package encoding

import (
	"errors"
	"math/bits"
	"strconv"
	"strings"
)

// Number of line bits in one keyboard frame: start, 8 data, parity, stop.
const FrameBits = 11

// Decodes a hexidecimal byte in the formats: 0xFF, xFF
func DecodeHex(s string) (uint8, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 8)

	if err != nil {
		return 0, err
	}

	return uint8(result), nil
}

// Decodes an unsigned base-10 string in the formats: #123, 123
func DecodeInt(s string) (uint32, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseUint(s, 10, 32)

	if err != nil {
		return 0, err
	}

	return uint32(result), nil
}

// OddParity returns the parity bit that makes the count of set bits in value
// plus the parity bit odd.
func OddParity(value uint8) bool {
	return bits.OnesCount8(value)%2 == 0
}

// EncodeFrame lays out value as it appears on the data line, first bit first:
// start (0), data bits LSB first, odd parity, stop (1).
func EncodeFrame(value uint8) [FrameBits]bool {
	var frame [FrameBits]bool

	for i := 0; i < 8; i++ {
		frame[1+i] = (value>>i)&0x1 == 1
	}

	frame[9] = OddParity(value)
	frame[10] = true

	return frame
}

// DecodeFrame extracts the data byte from a frame without checking start,
// parity or stop bits.
func DecodeFrame(frame [FrameBits]bool) uint8 {
	var value uint8

	for i := 0; i < 8; i++ {
		if frame[1+i] {
			value |= 1 << i
		}
	}

	return value
}
