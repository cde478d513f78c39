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
	"errors"
	"strconv"
	"strings"

	"github.com/lassandro/gosvm/pkg/encoding"
	"github.com/lassandro/gosvm/pkg/opcode"
)

func parseRegister(token Token, mnemonic string) (Operand, error) {
	body := strings.TrimPrefix(token.Value, "R")

	index, err := strconv.ParseUint(body, 10, 16)

	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Operand{}, &InvalidRegisterError{token.Position, token.Value}
		}

		return Operand{}, &InvalidOperandError{
			token.Position, mnemonic, nil, token,
		}
	}

	if index > opcode.MAX_REGISTER {
		return Operand{}, &InvalidRegisterError{token.Position, token.Value}
	}

	op := Register(uint8(index))
	op.pos = token.Position

	return op, nil
}

// parseNumber decodes a $hex or #decimal body. Bare decimal digits are only
// accepted inside brackets.
func parseNumber(value string, bare bool) (uint16, bool) {
	var result uint16
	var err error

	switch {
	case strings.HasPrefix(value, "$"):
		result, err = encoding.DecodeHex(value)
	case strings.HasPrefix(value, "#"):
		result, err = encoding.DecodeInt(value)
	case bare && value != "" && value[0] >= '0' && value[0] <= '9':
		result, err = encoding.DecodeInt(value)
	default:
		return 0, false
	}

	return result, err == nil
}

func parseLiteral(token Token, mnemonic string) (Operand, error) {
	value, ok := parseNumber(token.Value, false)

	if !ok {
		return Operand{}, &InvalidOperandError{
			token.Position, mnemonic, nil, token,
		}
	}

	op := Immediate(value)
	op.pos = token.Position

	return op, nil
}

func parseMemory(token Token, mnemonic string) (Operand, error) {
	inner := token.Value

	if len(inner) < 2 || inner[0] != '[' || inner[len(inner)-1] != ']' {
		return Operand{}, &InvalidOperandError{
			token.Position, mnemonic, nil, token,
		}
	}

	addr, ok := parseNumber(inner[1:len(inner)-1], true)

	if !ok {
		return Operand{}, &InvalidOperandError{
			token.Position, mnemonic, nil, token,
		}
	}

	op := Memory(addr)
	op.pos = token.Position

	return op, nil
}

// parseOperand interprets a token by its leading character.
func parseOperand(token Token, mnemonic string) (Operand, error) {
	switch token.Type {
	case TOKEN_REGISTER:
		return parseRegister(token, mnemonic)
	case TOKEN_LITERAL:
		return parseLiteral(token, mnemonic)
	case TOKEN_MEMORY:
		return parseMemory(token, mnemonic)
	default:
		return Operand{}, &InvalidOperandError{
			token.Position, mnemonic, nil, token,
		}
	}
}

func parseLabelRef(token Token, mnemonic string) (Operand, error) {
	if token.Type == TOKEN_LITERAL || token.Type == TOKEN_MEMORY {
		return Operand{}, &InvalidOperandError{
			token.Position, mnemonic, []TokenType{TOKEN_IDENT}, token,
		}
	}

	op := LabelRef(token.Value)
	op.pos = token.Position

	return op, nil
}
