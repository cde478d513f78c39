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

// Package disasm decodes memory images back into instructions.
package disasm

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/lassandro/gosvm/pkg/assembler"
	"github.com/lassandro/gosvm/pkg/encoding"
	"github.com/lassandro/gosvm/pkg/opcode"
)

// LoadImage reads a whole image. Images larger than the address space are
// rejected.
func LoadImage(reader io.Reader) ([]byte, error) {
	image, err := io.ReadAll(io.LimitReader(reader, MAX_IMAGE+1))

	if err != nil {
		return nil, errors.Wrap(err, "reading image")
	}

	if len(image) > MAX_IMAGE {
		return nil, &ImageTooLargeError{len(image)}
	}

	return image, nil
}

// Decode reads the instruction starting at image[offset]. base is the
// address image[0] was assembled for.
func Decode(image []byte, offset int, base uint16) (*Decoded, error) {
	if offset < 0 || offset >= len(image) {
		return nil, errors.Errorf("offset %d outside image of %d bytes", offset, len(image))
	}

	addr := base + uint16(offset)
	raw := image[offset]

	op, err := opcode.ByValue(raw)

	if err != nil {
		return nil, &UnknownOpcodeError{addr, raw}
	}

	length := opcode.Length(op)

	if offset+length > len(image) {
		return nil, &TruncatedError{addr, op, length, len(image) - offset}
	}

	result := &Decoded{
		Address:  addr,
		Opcode:   op,
		Mnemonic: opcode.Mnemonic(op),
		Bytes:    image[offset : offset+length],
	}

	cursor := offset + 1

	for _, field := range opcode.Layout(op) {
		var value uint16

		if field.Size() == 1 {
			value = uint16(image[cursor])
		} else {
			value = encoding.Word(image[cursor:])
		}

		result.Operands = append(result.Operands, Field{field, value})
		cursor += field.Size()
	}

	return result, nil
}

func zeroFrom(image []byte, offset int) bool {
	for _, b := range image[offset:] {
		if b != 0 {
			return false
		}
	}

	return true
}

// Disassemble decodes image from the start until only zero padding is left.
// A NOP at the very end is indistinguishable from padding and is dropped.
func Disassemble(image []byte, base uint16) ([]Decoded, error) {
	var result []Decoded

	for offset := 0; offset < len(image) && !zeroFrom(image, offset); {
		decoded, err := Decode(image, offset, base)

		if err != nil {
			return nil, err
		}

		result = append(result, *decoded)
		offset += decoded.Size()
	}

	return result, nil
}

// Labels names every jump target. Names from symtable win over synthetic
// ones, and symtable labels on non-target addresses are kept too.
func Labels(decoded []Decoded, symtable *assembler.SymTable) map[uint16]string {
	labels := make(map[uint16]string)

	if symtable != nil {
		for addr, name := range symtable.Labels {
			labels[addr] = name
		}
	}

	for _, d := range decoded {
		for _, field := range d.Operands {
			if field.Kind != opcode.FIELD_TARGET {
				continue
			}

			if _, exists := labels[field.Value]; !exists {
				labels[field.Value] = fmt.Sprintf(LABEL_FORMAT, field.Value)
			}
		}
	}

	return labels
}

// Instruction converts d into the assembler's instruction model so it can be
// printed as source text.
func (d *Decoded) Instruction(labels map[uint16]string) assembler.Instruction {
	inst := assembler.Instruction{
		Mnemonic: d.Mnemonic,
		Opcode:   d.Opcode,
		Address:  d.Address,
		Label:    labels[d.Address],
	}

	for _, field := range d.Operands {
		var operand assembler.Operand

		switch field.Kind {
		case opcode.FIELD_REGISTER:
			operand = assembler.Register(uint8(field.Value))
		case opcode.FIELD_IMMEDIATE:
			operand = assembler.Immediate(field.Value)
		case opcode.FIELD_ADDRESS:
			operand = assembler.Memory(field.Value)
		case opcode.FIELD_TARGET:
			operand = assembler.LabelRef(labels[field.Value])
		}

		inst.Operands = append(inst.Operands, operand)
	}

	return inst
}

// Write prints decoded as source text that assembles back to the same bytes.
// Labels pointing outside the decoded range are listed as comments.
func Write(w io.Writer, decoded []Decoded, symtable *assembler.SymTable) error {
	labels := Labels(decoded, symtable)
	placed := make(map[uint16]bool, len(decoded))

	out := bufio.NewWriter(w)

	for i := range decoded {
		inst := decoded[i].Instruction(labels)
		placed[inst.Address] = true

		if inst.Label != "" {
			fmt.Fprintf(out, "%s:\n", inst.Label)
		}

		fmt.Fprintf(out, "    %-24s; %04X\n", inst.String(), inst.Address)
	}

	var dangling []uint16

	for addr := range labels {
		if !placed[addr] {
			dangling = append(dangling, addr)
		}
	}

	sort.Slice(dangling, func(i, j int) bool {
		return dangling[i] < dangling[j]
	})

	for _, addr := range dangling {
		fmt.Fprintf(out, "; %s = $%04X\n", labels[addr], addr)
	}

	return errors.Wrap(out.Flush(), "writing disassembly")
}
