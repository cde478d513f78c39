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

package opcode_test

import (
	"errors"
	"testing"

	"github.com/lassandro/gosvm/pkg/opcode"
)

func TestByName(t *testing.T) {
	tests := []struct {
		Name string
		Want opcode.Opcode
	}{
		{"NOP", 0x00},
		{"hlt", 0x01},
		{"MoveLit", 0x10},
		{"MOVEREG", 0x11},
		{"moveregmem", 0x12},
		{"MoveMemReg", 0x13},
		{"Add", 0x14},
		{"Sub", 0x15},
		{"Mul", 0x16},
		{"PushLit", 0x1A},
		{"PushReg", 0x1B},
		{"Pop", 0x1C},
		{"PRINT", 0x1D},
		{"Cmp", 0x1E},
		{"CmpNot", 0x1F},
		{"Lt", 0x20},
		{"Gt", 0x21},
		{"Jmp", 0x30},
		{"JMPZ", 0x31},
		{"JmpNZ", 0x32},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			have, err := opcode.ByName(test.Name)

			if err != nil {
				t.Fatal(err)
			}

			if have != test.Want {
				t.Fatalf(
					"Opcode mismatch\nwant:%#02x\nhave:%#02x",
					uint8(test.Want),
					uint8(have),
				)
			}
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := opcode.ByName("MOV")

	var unknown *opcode.UnknownOpcodeError
	if !errors.As(err, &unknown) {
		t.Fatalf("want:%T\nhave:%T", unknown, err)
	}

	if unknown.Name != "MOV" {
		t.Fatalf("want:MOV\nhave:%s", unknown.Name)
	}
}

func TestByValue(t *testing.T) {
	if op, err := opcode.ByValue(0x1B); err != nil || op != opcode.OP_PUSH_REG {
		t.Fatalf("want:%v\nhave:%v (%v)", opcode.OP_PUSH_REG, op, err)
	}

	for _, value := range []byte{0x02, 0x17, 0x33, 0xFF} {
		if _, err := opcode.ByValue(value); err == nil {
			t.Fatalf("%#02x should not decode", value)
		}
	}
}

func TestUniqueValues(t *testing.T) {
	seen := make(map[string]bool)

	for value := 0; value <= 0xFF; value++ {
		op, err := opcode.ByValue(byte(value))

		if err != nil {
			continue
		}

		if seen[op.String()] {
			t.Fatalf("Duplicate opcode name %s", op)
		}

		seen[op.String()] = true
	}

	if len(seen) != 20 {
		t.Fatalf("Opcode count mismatch\nwant:20\nhave:%d", len(seen))
	}
}

func TestIsSimple(t *testing.T) {
	for _, name := range []string{"NOP", "HLT", "nop"} {
		if !opcode.IsSimple(name) {
			t.Errorf("%s should be simple", name)
		}
	}

	for _, name := range []string{"MOV", "PUSH", "JMP", "MoveLit"} {
		if opcode.IsSimple(name) {
			t.Errorf("%s should not be simple", name)
		}
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		Op   opcode.Opcode
		Want int
	}{
		{opcode.OP_NOP, 1},
		{opcode.OP_MOVE_LIT, 4},
		{opcode.OP_MOVE_REG, 3},
		{opcode.OP_MOVE_REG_MEM, 4},
		{opcode.OP_MOVE_MEM_REG, 4},
		{opcode.OP_PUSH_LIT, 3},
		{opcode.OP_PUSH_REG, 2},
		{opcode.OP_JMP, 3},
	}

	for _, test := range tests {
		if have := opcode.Length(test.Op); have != test.Want {
			t.Errorf("%s length\nwant:%d\nhave:%d", test.Op, test.Want, have)
		}
	}
}

func TestMnemonic(t *testing.T) {
	if have := opcode.Mnemonic(opcode.OP_MOVE_MEM_REG); have != "MOV" {
		t.Fatalf("want:MOV\nhave:%s", have)
	}

	if have := opcode.Mnemonic(opcode.OP_PUSH_LIT); have != "PUSH" {
		t.Fatalf("want:PUSH\nhave:%s", have)
	}
}
