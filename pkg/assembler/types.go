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

package assembler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lassandro/gosvm/pkg/opcode"
)

type TokenType uint
type OperandType uint

type Cursor struct {
	Line   int
	Column int
	Size   int
}

type Token struct {
	Type     TokenType
	Position Cursor
	Value    string
}

// Operand is one of a register index, a raw memory address, an immediate
// or an unresolved label reference, selected by Type.
type Operand struct {
	Type  OperandType
	Value uint16
	Label string

	// Source position, kept for label resolution errors
	pos Cursor
}

func Register(index uint8) Operand {
	return Operand{Type: OPERAND_REGISTER, Value: uint16(index)}
}

func Memory(addr uint16) Operand {
	return Operand{Type: OPERAND_MEMORY, Value: addr}
}

func Immediate(value uint16) Operand {
	return Operand{Type: OPERAND_IMMEDIATE, Value: value}
}

func LabelRef(name string) Operand {
	return Operand{Type: OPERAND_LABEL, Label: name}
}

// Size returns the number of bytes the operand occupies once encoded.
func (op Operand) Size() int {
	if op.Type == OPERAND_REGISTER {
		return 1
	}

	return 2
}

func (op Operand) String() string {
	switch op.Type {
	case OPERAND_REGISTER:
		return fmt.Sprintf("R%d", op.Value)
	case OPERAND_MEMORY:
		return fmt.Sprintf("[$%04X]", op.Value)
	case OPERAND_IMMEDIATE:
		return fmt.Sprintf("#%d", op.Value)
	case OPERAND_LABEL:
		return op.Label
	default:
		return "<invalid>"
	}
}

func (op Operand) MarshalYAML() (interface{}, error) {
	switch op.Type {
	case OPERAND_REGISTER:
		return map[string]interface{}{"register": op.Value}, nil
	case OPERAND_MEMORY:
		return map[string]interface{}{"memory": op.Value}, nil
	case OPERAND_IMMEDIATE:
		return map[string]interface{}{"immediate": op.Value}, nil
	case OPERAND_LABEL:
		return map[string]interface{}{"label": op.Label}, nil
	default:
		return nil, fmt.Errorf("invalid operand type %d", op.Type)
	}
}

type Instruction struct {
	Mnemonic string        `yaml:"mnemonic"`
	Opcode   opcode.Opcode `yaml:"opcode"`
	Operands []Operand     `yaml:"operands,omitempty"`
	Line     int           `yaml:"line"`
	Label    string        `yaml:"label,omitempty"`
	Address  uint16        `yaml:"address"`
}

// Size returns the encoded length of the instruction, opcode byte included.
func (inst *Instruction) Size() int {
	size := 1

	for _, op := range inst.Operands {
		size += op.Size()
	}

	return size
}

func (inst *Instruction) String() string {
	var b strings.Builder

	b.WriteString(inst.Mnemonic)

	for i, op := range inst.Operands {
		if i == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(op.String())
	}

	return b.String()
}

type Program struct {
	Instructions []Instruction
	Labels       map[string]uint16
	Length       int
	Image        []byte
}

type SymTable struct {
	Source  string
	Symbols map[uint16]int
	Labels  map[uint16]string
}

type Options struct {
	StartAddress uint16
	ImageSize    int
	Logger       *slog.Logger
}

func DefaultOptions() Options {
	return Options{StartAddress: 0, ImageSize: IMAGE_SIZE_DEFAULT}
}

type TokenError interface {
	GetPosition() Cursor
}

func tokenTypeString(tokenType TokenType) string {
	switch tokenType {
	case TOKEN_IDENT:
		return "Identifier"
	case TOKEN_REGISTER:
		return "Register"
	case TOKEN_LITERAL:
		return "Literal"
	case TOKEN_MEMORY:
		return "Memory"
	default:
		return "<invalid>"
	}
}

type UnknownOpcodeError struct {
	Position Cursor
	Received string
}

func (err *UnknownOpcodeError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownOpcodeError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown opcode '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type UnknownMnemonicError struct {
	Position Cursor
	Received string
}

func (err *UnknownMnemonicError) GetPosition() Cursor {
	return err.Position
}

func (err *UnknownMnemonicError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown mnemonic '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type WrongOperandCountError struct {
	Position Cursor
	Mnemonic string
	Required int
	Received int
}

func (err *WrongOperandCountError) GetPosition() Cursor {
	return err.Position
}

func (err *WrongOperandCountError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid number of operands for %s\n\twant:%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		err.Mnemonic,
		err.Required,
		err.Received,
	)
}

type InvalidOperandError struct {
	Position Cursor
	Mnemonic string
	Required []TokenType
	Received Token
}

func (err *InvalidOperandError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidOperandError) Error() string {
	if len(err.Required) == 0 {
		return fmt.Sprintf(
			"%02d:%02d: Invalid operand '%s' for %s",
			err.Position.Line,
			err.Position.Column,
			err.Received.Value,
			err.Mnemonic,
		)
	}

	requiredStrings := make([]string, 0, len(err.Required))

	for _, tokenType := range err.Required {
		requiredStrings = append(requiredStrings, tokenTypeString(tokenType))
	}

	return fmt.Sprintf(
		"%02d:%02d: Invalid operand '%s' for %s\n\twant:%s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		err.Received.Value,
		err.Mnemonic,
		strings.Join(requiredStrings, " or "),
		tokenTypeString(err.Received.Type),
	)
}

type InvalidOperandsError struct {
	Position Cursor
	Mnemonic string
	Received []Token
}

func (err *InvalidOperandsError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidOperandsError) Error() string {
	values := make([]string, 0, len(err.Received))
	types := make([]string, 0, len(err.Received))

	for _, token := range err.Received {
		values = append(values, token.Value)
		types = append(types, tokenTypeString(token.Type))
	}

	return fmt.Sprintf(
		"%02d:%02d: Invalid operands '%s' for %s\n\thave:%s",
		err.Position.Line,
		err.Position.Column,
		strings.Join(values, ", "),
		err.Mnemonic,
		strings.Join(types, ", "),
	)
}

type InvalidRegisterError struct {
	Position Cursor
	Received string
}

func (err *InvalidRegisterError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidRegisterError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid register identifier '%s'\n\twant:R0-R%d",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		opcode.MAX_REGISTER,
	)
}

type InvalidLabelError struct {
	Position Cursor
	Received string
}

func (err *InvalidLabelError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidLabelError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid label name '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type LabelNotClosedError struct {
	Position Cursor
	Label    string
	Opened   Cursor
}

func (err *LabelNotClosedError) GetPosition() Cursor {
	return err.Position
}

func (err *LabelNotClosedError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Label '%s' opened on line %d is not closed by an instruction",
		err.Position.Line,
		err.Position.Column,
		err.Label,
		err.Opened.Line,
	)
}

type LabelNotFoundError struct {
	Position Cursor
	Received string
}

func (err *LabelNotFoundError) GetPosition() Cursor {
	return err.Position
}

func (err *LabelNotFoundError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Unknown label '%s'",
		err.Position.Line,
		err.Position.Column,
		err.Received,
	)
}

type ImageTooLargeError struct {
	Required int
	Received int
}

func (err *ImageTooLargeError) Error() string {
	return fmt.Sprintf(
		"Binary exceeds allowed size\n\twant:%d\n\thave:%d",
		err.Required,
		err.Received,
	)
}
