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

package disasm

import (
	"fmt"

	"github.com/lassandro/gosvm/pkg/opcode"
)

// Field is one decoded operand with the kind its layout slot gives it.
type Field struct {
	Kind  opcode.Field
	Value uint16
}

type Decoded struct {
	Address  uint16
	Opcode   opcode.Opcode
	Mnemonic string
	Operands []Field
	Bytes    []byte
}

// Size returns the encoded length of the instruction.
func (d *Decoded) Size() int {
	return len(d.Bytes)
}

type UnknownOpcodeError struct {
	Address uint16
	Value   byte
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("[%#06x]: Unknown opcode %#02x", err.Address, err.Value)
}

type TruncatedError struct {
	Address  uint16
	Opcode   opcode.Opcode
	Required int
	Received int
}

func (err *TruncatedError) Error() string {
	return fmt.Sprintf(
		"[%#06x]: Truncated %s instruction\n\twant:%d bytes\n\thave:%d bytes",
		err.Address,
		err.Opcode,
		err.Required,
		err.Received,
	)
}

type ImageTooLargeError struct {
	Received int
}

func (err *ImageTooLargeError) Error() string {
	return fmt.Sprintf(
		"Image exceeds address space\n\twant:%d\n\thave:%d",
		MAX_IMAGE,
		err.Received,
	)
}
