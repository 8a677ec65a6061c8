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

package morse

const (
	SYMBOL_DIT Symbol = iota + 1
	SYMBOL_DAH
)

// Reference timing for 15 words per minute, in milliseconds.
const (
	DIT_MS            uint32 = 80
	DAH_MS            uint32 = 240
	BETWEEN_SYMBOL_MS uint32 = 80
	BETWEEN_CHAR_MS   uint32 = 240
	SPACE_MS          uint32 = 560

	TONE_HZ uint32 = 600

	// Reference system clock the millisecond constants are scaled against.
	DEFAULT_CLOCK_HZ uint32 = 50000000
)
