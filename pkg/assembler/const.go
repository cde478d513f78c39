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

const (
	TOKEN_NONE TokenType = iota
	TOKEN_IDENT
	TOKEN_REGISTER
	TOKEN_LITERAL
	TOKEN_MEMORY
)

const (
	OPERAND_REGISTER OperandType = iota + 1
	OPERAND_MEMORY
	OPERAND_IMMEDIATE
	OPERAND_LABEL
)

const (
	IMAGE_SIZE_DEFAULT = 1024
	IMAGE_SIZE_MAX     = 1 << 16
)

const (
	COMMENT_MARKER = ";"
	LABEL_MARKER   = ":"
)
