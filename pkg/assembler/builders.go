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
	"github.com/lassandro/gosvm/pkg/opcode"
)

type builder func(stmt *statement) (*Instruction, error)

var builders = map[string]builder{
	"MOV":   buildMove,
	"ADD":   buildArithmetic,
	"SUB":   buildArithmetic,
	"MUL":   buildArithmetic,
	"PUSH":  buildPush,
	"POP":   buildRegisterOnly("Pop"),
	"PRINT": buildRegisterOnly("Print"),
	"JMP":   buildJump,
}

func buildInstruction(stmt *statement) (*Instruction, error) {
	mnemonic := stmt.Keyword.Value

	if opcode.IsSimple(mnemonic) {
		return buildSimple(stmt)
	}

	if build, exists := builders[mnemonic]; exists {
		return build(stmt)
	}

	return nil, &UnknownMnemonicError{stmt.Keyword.Position, mnemonic}
}

func newInstruction(stmt *statement, name string, operands ...Operand) (*Instruction, error) {
	op, err := opcode.ByName(name)

	if err != nil {
		return nil, &UnknownOpcodeError{stmt.Keyword.Position, name}
	}

	return &Instruction{
		Mnemonic: stmt.Keyword.Value,
		Opcode:   op,
		Operands: operands,
		Line:     stmt.Keyword.Position.Line,
		Label:    stmt.Label,
		Address:  0,
	}, nil
}

func checkCount(stmt *statement, required int) error {
	if count := len(stmt.Operands); count != required {
		return &WrongOperandCountError{
			stmt.Keyword.Position, stmt.Keyword.Value, required, count,
		}
	}

	return nil
}

func parseAll(stmt *statement) ([]Operand, error) {
	operands := make([]Operand, 0, len(stmt.Operands))

	for _, token := range stmt.Operands {
		op, err := parseOperand(token, stmt.Keyword.Value)

		if err != nil {
			return nil, err
		}

		operands = append(operands, op)
	}

	return operands, nil
}

func invalidOperands(stmt *statement) error {
	return &InvalidOperandsError{
		stmt.Operands[0].Position, stmt.Keyword.Value, stmt.Operands,
	}
}

// NOP, HLT
func buildSimple(stmt *statement) (*Instruction, error) {
	if err := checkCount(stmt, 0); err != nil {
		return nil, err
	}

	return newInstruction(stmt, stmt.Keyword.Value)
}

// MOV R, $/#   MoveLit
// MOV R, R     MoveReg
// MOV R, [m]   MoveRegMem
// MOV [m], R   MoveMemReg
func buildMove(stmt *statement) (*Instruction, error) {
	if err := checkCount(stmt, 2); err != nil {
		return nil, err
	}

	var name string

	left, right := stmt.Operands[0].Type, stmt.Operands[1].Type

	switch {
	case left == TOKEN_REGISTER && right == TOKEN_LITERAL:
		name = "MoveLit"
	case left == TOKEN_REGISTER && right == TOKEN_REGISTER:
		name = "MoveReg"
	case left == TOKEN_REGISTER && right == TOKEN_MEMORY:
		name = "MoveRegMem"
	case left == TOKEN_MEMORY && right == TOKEN_REGISTER:
		name = "MoveMemReg"
	default:
		return nil, invalidOperands(stmt)
	}

	operands, err := parseAll(stmt)

	if err != nil {
		return nil, err
	}

	return newInstruction(stmt, name, operands...)
}

// ADD, SUB, MUL R, R
func buildArithmetic(stmt *statement) (*Instruction, error) {
	if err := checkCount(stmt, 2); err != nil {
		return nil, err
	}

	for _, token := range stmt.Operands {
		if token.Type != TOKEN_REGISTER {
			return nil, invalidOperands(stmt)
		}
	}

	operands, err := parseAll(stmt)

	if err != nil {
		return nil, err
	}

	return newInstruction(stmt, stmt.Keyword.Value, operands...)
}

// PUSH R     PushReg
// PUSH $/#   PushLit
func buildPush(stmt *statement) (*Instruction, error) {
	if err := checkCount(stmt, 1); err != nil {
		return nil, err
	}

	var name string

	switch token := stmt.Operands[0]; token.Type {
	case TOKEN_REGISTER:
		name = "PushReg"
	case TOKEN_LITERAL:
		name = "PushLit"
	default:
		return nil, &InvalidOperandError{
			token.Position,
			stmt.Keyword.Value,
			[]TokenType{TOKEN_REGISTER, TOKEN_LITERAL},
			token,
		}
	}

	operands, err := parseAll(stmt)

	if err != nil {
		return nil, err
	}

	return newInstruction(stmt, name, operands...)
}

// POP R, PRINT R
func buildRegisterOnly(name string) builder {
	return func(stmt *statement) (*Instruction, error) {
		if err := checkCount(stmt, 1); err != nil {
			return nil, err
		}

		if token := stmt.Operands[0]; token.Type != TOKEN_REGISTER {
			return nil, &InvalidOperandError{
				token.Position,
				stmt.Keyword.Value,
				[]TokenType{TOKEN_REGISTER},
				token,
			}
		}

		operands, err := parseAll(stmt)

		if err != nil {
			return nil, err
		}

		return newInstruction(stmt, name, operands...)
	}
}

// JMP LABEL
func buildJump(stmt *statement) (*Instruction, error) {
	if err := checkCount(stmt, 1); err != nil {
		return nil, err
	}

	target, err := parseLabelRef(stmt.Operands[0], stmt.Keyword.Value)

	if err != nil {
		return nil, err
	}

	return newInstruction(stmt, "Jmp", target)
}
