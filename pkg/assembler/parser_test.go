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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		Input  string
		Text   string
		Offset int
	}{
		{"", "", 0},
		{"   ", "", 3},
		{"mov r0, #1", "MOV R0, #1", 0},
		{"  hlt  ; done", "HLT", 2},
		{"\tpush r1\r", "PUSH R1", 1},
		{"; only a comment", "", 0},
		{"loop: jmp loop ; back: again", "LOOP: JMP LOOP", 0},
	}

	for _, test := range tests {
		text, offset := normalize(test.Input)

		if text != test.Text || offset != test.Offset {
			t.Fatalf(
				"normalize(%q)\nwant:%q %d\nhave:%q %d",
				test.Input,
				test.Text,
				test.Offset,
				text,
				offset,
			)
		}
	}
}

func TestTokenize(t *testing.T) {
	text, offset := normalize("  MOV R1,[$10]  , #5")
	tokens := tokenize(text, offset, 7)

	want := []Token{
		{TOKEN_IDENT, Cursor{Line: 7, Column: 3, Size: 3}, "MOV"},
		{TOKEN_REGISTER, Cursor{Line: 7, Column: 7, Size: 2}, "R1"},
		{TOKEN_MEMORY, Cursor{Line: 7, Column: 10, Size: 5}, "[$10]"},
		{TOKEN_LITERAL, Cursor{Line: 7, Column: 19, Size: 2}, "#5"},
	}

	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("Token mismatch (-want +have):\n%s", diff)
	}

	if tokens := tokenize("", 0, 1); len(tokens) != 0 {
		t.Fatalf("Expected no tokens\nhave:%v", tokens)
	}
}

func TestLineParser(t *testing.T) {
	var p lineParser

	stmt, err := p.parseLine("START:", 1)

	if err != nil || stmt != nil {
		t.Fatalf("Standalone label produced %v, %v", stmt, err)
	}

	if !p.labelOpen || p.pendingLabel.Value != "START" {
		t.Fatalf("Label not pending\nhave:%+v", p)
	}

	stmt, err = p.parseLine("", 2)

	if err != nil || stmt != nil || !p.labelOpen {
		t.Fatalf("Blank line disturbed pending label: %v, %v", stmt, err)
	}

	stmt, err = p.parseLine("print r0", 3)

	if err != nil {
		t.Fatal(err)
	}

	if stmt.Label != "START" || stmt.Keyword.Value != "PRINT" || p.labelOpen {
		t.Fatalf("Pending label not consumed\nhave:%+v", stmt)
	}

	stmt, err = p.parseLine("X: HLT", 4)

	if err != nil {
		t.Fatal(err)
	}

	if stmt.Label != "X" || stmt.Keyword.Value != "HLT" || len(stmt.Operands) != 0 {
		t.Fatalf("Inline label not parsed\nhave:%+v", stmt)
	}

	if err := p.finish(); err != nil {
		t.Fatal(err)
	}
}

func TestLineParserShortTail(t *testing.T) {
	var p lineParser

	// a tail of a single character is not an instruction
	stmt, err := p.parseLine("A: X", 1)

	if err != nil || stmt != nil || !p.labelOpen {
		t.Fatalf("Short tail not treated as standalone: %v, %v", stmt, err)
	}

	if err := p.finish(); err == nil {
		t.Fatal("Pending label at end of input produced no error")
	}
}
