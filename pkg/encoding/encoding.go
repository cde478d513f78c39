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
	"strconv"
	"strings"
)

var ErrEmpty = errors.New("Empty numeric literal")

// Decodes a hexidecimal string in the formats: $FFFF, $FF, FFFF
func DecodeHex(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "$")

	if s == "" {
		return 0, ErrEmpty
	}

	result, err := strconv.ParseUint(s, 16, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: #123, 123, #-1. Negative values
// are returned as their 16-bit two's complement.
func DecodeInt(s string) (uint16, error) {
	s = strings.TrimPrefix(s, "#")

	if s == "" {
		return 0, ErrEmpty
	}

	result, err := strconv.ParseInt(s, 10, 32)

	if err != nil {
		return 0, err
	}

	if result < -(1<<15) || result > (1<<16)-1 {
		return 0, strconv.ErrRange
	}

	return uint16(result), nil
}

// Appends value to buf as a little-endian word
func PutWord(buf []byte, value uint16) []byte {
	return append(buf, byte(value&0xFF), byte(value>>8))
}

// Reads the little-endian word at buf[0:2]
func Word(buf []byte) uint16 {
	return uint16(buf[0]) | uint16(buf[1])<<8
}
