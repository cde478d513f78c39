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

package opcode

const (
	OP_NOP Opcode = 0x00
	OP_HLT Opcode = 0x01

	// Data movement
	OP_MOVE_LIT     Opcode = 0x10
	OP_MOVE_REG     Opcode = 0x11
	OP_MOVE_REG_MEM Opcode = 0x12
	OP_MOVE_MEM_REG Opcode = 0x13

	// Arithmetic, result in the accumulator (R8)
	OP_ADD Opcode = 0x14
	OP_SUB Opcode = 0x15
	OP_MUL Opcode = 0x16

	// Stack and I/O
	OP_PUSH_LIT Opcode = 0x1A
	OP_PUSH_REG Opcode = 0x1B
	OP_POP      Opcode = 0x1C
	OP_PRINT    Opcode = 0x1D

	// Comparison, sets the zero flag
	OP_CMP     Opcode = 0x1E
	OP_CMP_NOT Opcode = 0x1F
	OP_LT      Opcode = 0x20
	OP_GT      Opcode = 0x21

	// Control transfer
	OP_JMP    Opcode = 0x30
	OP_JMP_Z  Opcode = 0x31
	OP_JMP_NZ Opcode = 0x32
)

const (
	FIELD_REGISTER Field = iota + 1
	FIELD_IMMEDIATE
	FIELD_ADDRESS
	FIELD_TARGET
)

// Highest register index, R8 is the accumulator
const MAX_REGISTER = 8
