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

// Package listing renders assembled programs for people: an address table,
// a YAML dump of the instruction list, source views and hexdumps.
package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lassandro/gosvm/pkg/assembler"
)

func instructionBytes(program *assembler.Program, inst *assembler.Instruction) string {
	base := program.Instructions[0].Address
	start := int(inst.Address - base)
	end := start + inst.Size()

	if end > len(program.Image) {
		end = len(program.Image)
	}

	parts := make([]string, 0, end-start)

	for _, b := range program.Image[start:end] {
		parts = append(parts, fmt.Sprintf("%02X", b))
	}

	return strings.Join(parts, " ")
}

func operandList(inst *assembler.Instruction) string {
	parts := make([]string, 0, len(inst.Operands))

	for _, op := range inst.Operands {
		parts = append(parts, op.String())
	}

	return strings.Join(parts, ", ")
}

// WriteListing prints one table row per instruction with its address and
// encoded bytes.
func WriteListing(w io.Writer, program *assembler.Program, title string) {
	listing := table.NewWriter()
	listing.SetOutputMirror(w)
	listing.SetStyle(table.StyleLight)

	if title != "" {
		listing.SetTitle(title)
	}

	listing.AppendHeader(table.Row{
		"Address", "Line", "Label", "Opcode", "Instruction", "Bytes",
	})

	for i := range program.Instructions {
		inst := &program.Instructions[i]

		listing.AppendRow(table.Row{
			fmt.Sprintf("%04X", inst.Address),
			inst.Line,
			inst.Label,
			inst.Opcode.String(),
			strings.TrimSpace(inst.Mnemonic + " " + operandList(inst)),
			instructionBytes(program, inst),
		})
	}

	listing.AppendFooter(table.Row{
		"", "", "", "", "Total", fmt.Sprintf("%d / %d", program.Length, len(program.Image)),
	})

	listing.Render()
}

// WriteAST dumps the parsed instruction list as YAML.
func WriteAST(w io.Writer, instructions []assembler.Instruction) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(instructions); err != nil {
		return errors.Wrap(err, "encoding instructions")
	}

	return errors.Wrap(encoder.Close(), "encoding instructions")
}
