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

// Package opcode holds the instruction set table shared by the assembler and
// the disassembler.
package opcode

import (
	"fmt"
	"strings"
)

type Opcode uint8

// Field is the kind of a single encoded operand.
type Field uint8

type entry struct {
	name     string
	mnemonic string
	layout   []Field
}

var table = map[Opcode]entry{
	OP_NOP: {"NOP", "NOP", nil},
	OP_HLT: {"HLT", "HLT", nil},

	OP_MOVE_LIT:     {"MoveLit", "MOV", []Field{FIELD_REGISTER, FIELD_IMMEDIATE}},
	OP_MOVE_REG:     {"MoveReg", "MOV", []Field{FIELD_REGISTER, FIELD_REGISTER}},
	OP_MOVE_REG_MEM: {"MoveRegMem", "MOV", []Field{FIELD_REGISTER, FIELD_ADDRESS}},
	OP_MOVE_MEM_REG: {"MoveMemReg", "MOV", []Field{FIELD_ADDRESS, FIELD_REGISTER}},

	OP_ADD: {"Add", "ADD", []Field{FIELD_REGISTER, FIELD_REGISTER}},
	OP_SUB: {"Sub", "SUB", []Field{FIELD_REGISTER, FIELD_REGISTER}},
	OP_MUL: {"Mul", "MUL", []Field{FIELD_REGISTER, FIELD_REGISTER}},

	OP_PUSH_LIT: {"PushLit", "PUSH", []Field{FIELD_IMMEDIATE}},
	OP_PUSH_REG: {"PushReg", "PUSH", []Field{FIELD_REGISTER}},
	OP_POP:      {"Pop", "POP", []Field{FIELD_REGISTER}},
	OP_PRINT:    {"Print", "PRINT", []Field{FIELD_REGISTER}},

	OP_CMP:     {"Cmp", "CMP", []Field{FIELD_REGISTER, FIELD_REGISTER}},
	OP_CMP_NOT: {"CmpNot", "CMPNOT", []Field{FIELD_REGISTER, FIELD_REGISTER}},
	OP_LT:      {"Lt", "LT", []Field{FIELD_REGISTER, FIELD_REGISTER}},
	OP_GT:      {"Gt", "GT", []Field{FIELD_REGISTER, FIELD_REGISTER}},

	OP_JMP:    {"Jmp", "JMP", []Field{FIELD_TARGET}},
	OP_JMP_Z:  {"JmpZ", "JMPZ", []Field{FIELD_TARGET}},
	OP_JMP_NZ: {"JmpNZ", "JMPNZ", []Field{FIELD_TARGET}},
}

var simple = []string{"NOP", "HLT"}

type UnknownOpcodeError struct {
	Name  string
	Value byte
}

func (err *UnknownOpcodeError) Error() string {
	if err.Name != "" {
		return fmt.Sprintf("Unknown opcode name '%s'", err.Name)
	}

	return fmt.Sprintf("Unknown opcode value %#02x", err.Value)
}

// ByName finds the opcode whose table name matches, ignoring case.
func ByName(name string) (Opcode, error) {
	for op, e := range table {
		if strings.EqualFold(e.name, name) {
			return op, nil
		}
	}

	return 0, &UnknownOpcodeError{Name: name}
}

func ByValue(value byte) (Opcode, error) {
	if _, exists := table[Opcode(value)]; !exists {
		return 0, &UnknownOpcodeError{Value: value}
	}

	return Opcode(value), nil
}

// IsSimple reports whether the named opcode takes no operands.
func IsSimple(name string) bool {
	for _, s := range simple {
		if strings.EqualFold(s, name) {
			return true
		}
	}

	return false
}

func (op Opcode) String() string {
	if e, exists := table[op]; exists {
		return e.name
	}

	return fmt.Sprintf("Opcode(%#02x)", uint8(op))
}

func (op Opcode) MarshalYAML() (interface{}, error) {
	return op.String(), nil
}

// Mnemonic returns the source mnemonic a variant is written with, so
// MoveLit and MoveReg both give MOV.
func Mnemonic(op Opcode) string {
	return table[op].mnemonic
}

// Layout returns the operand fields of op in encoding order.
func Layout(op Opcode) []Field {
	return table[op].layout
}

// Size returns the number of bytes a field occupies in the image.
func (f Field) Size() int {
	if f == FIELD_REGISTER {
		return 1
	}

	return 2
}

func (f Field) String() string {
	switch f {
	case FIELD_REGISTER:
		return "register"
	case FIELD_IMMEDIATE:
		return "immediate"
	case FIELD_ADDRESS:
		return "address"
	case FIELD_TARGET:
		return "target"
	default:
		return "<invalid>"
	}
}

// Length returns the encoded length of op, opcode byte included.
func Length(op Opcode) int {
	length := 1

	for _, field := range Layout(op) {
		length += field.Size()
	}

	return length
}
