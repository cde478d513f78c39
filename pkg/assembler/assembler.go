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

// Package assembler turns source text into a fixed-size memory image in
// three passes: parsing lines into instructions, assigning addresses, and
// encoding with label resolution.
package assembler

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/lassandro/gosvm/pkg/fsio"
)

type assembly struct {
	opts         Options
	log          *slog.Logger
	parser       lineParser
	instructions []Instruction
	labels       map[string]uint16
	mem          memory
}

func newAssembly(opts Options) *assembly {
	if opts.ImageSize == 0 {
		opts.ImageSize = IMAGE_SIZE_DEFAULT
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &assembly{opts: opts, log: logger}
}

// Pass 1: build the ordered instruction list.
func (a *assembly) parse(input io.Reader) error {
	scanner := bufio.NewScanner(input)
	line := 0

	for scanner.Scan() {
		line++

		stmt, err := a.parser.parseLine(scanner.Text(), line)

		if err != nil {
			return err
		}

		if stmt == nil {
			continue
		}

		inst, err := buildInstruction(stmt)

		if err != nil {
			return err
		}

		a.instructions = append(a.instructions, *inst)
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading source")
	}

	if err := a.parser.finish(); err != nil {
		return err
	}

	a.log.Debug(
		"parsed source",
		"lines", line,
		"instructions", len(a.instructions),
	)

	return nil
}

// Address pass: lay instructions out back to back from the start address.
// Labels are collected afterwards so the first declaration of a name wins.
func (a *assembly) assignAddresses() error {
	cursor := int(a.opts.StartAddress)

	for i := range a.instructions {
		inst := &a.instructions[i]
		size := inst.Size()

		if cursor+size > IMAGE_SIZE_MAX {
			return &ImageTooLargeError{
				IMAGE_SIZE_MAX - int(a.opts.StartAddress),
				cursor + size - int(a.opts.StartAddress),
			}
		}

		inst.Address = uint16(cursor)
		cursor += size
	}

	a.labels = make(map[string]uint16)

	for _, inst := range a.instructions {
		if inst.Label == "" {
			continue
		}

		if _, exists := a.labels[inst.Label]; !exists {
			a.labels[inst.Label] = inst.Address
		}
	}

	a.log.Debug(
		"assigned addresses",
		"start", a.opts.StartAddress,
		"end", cursor,
		"labels", len(a.labels),
	)

	return nil
}

func (a *assembly) resolve(ref Operand) (uint16, error) {
	addr, exists := a.labels[ref.Label]

	if !exists {
		return 0, &LabelNotFoundError{ref.pos, ref.Label}
	}

	a.log.Debug("resolved label", "label", ref.Label, "address", addr)

	return addr, nil
}

// Pass 2: write every instruction into the output buffer.
func (a *assembly) encode() error {
	for _, inst := range a.instructions {
		a.mem.writeByte(byte(inst.Opcode))

		for _, op := range inst.Operands {
			switch op.Type {
			case OPERAND_REGISTER:
				a.mem.writeByte(byte(op.Value))
			case OPERAND_MEMORY, OPERAND_IMMEDIATE:
				a.mem.writeWord(op.Value)
			case OPERAND_LABEL:
				addr, err := a.resolve(op)

				if err != nil {
					return err
				}

				a.mem.writeWord(addr)
			}
		}
	}

	return nil
}

func (a *assembly) fillSymbols(symtable *SymTable) {
	if symtable.Symbols == nil {
		symtable.Symbols = make(map[uint16]int)
	}

	if symtable.Labels == nil {
		symtable.Labels = make(map[uint16]string)
	}

	for _, inst := range a.instructions {
		symtable.Symbols[inst.Address] = inst.Line
	}

	for label, addr := range a.labels {
		symtable.Labels[addr] = label
	}
}

// AssembleSource assembles a whole source text. The first error aborts the
// run and no image is returned. If symtable is non-nil it receives the
// address to line and address to label mappings.
func AssembleSource(input io.Reader, opts Options, symtable *SymTable) (*Program, error) {
	if opts.ImageSize < 0 || opts.ImageSize > IMAGE_SIZE_MAX {
		return nil, errors.Errorf("invalid image size %d", opts.ImageSize)
	}

	a := newAssembly(opts)

	if err := a.parse(input); err != nil {
		return nil, err
	}

	if err := a.assignAddresses(); err != nil {
		return nil, err
	}

	if err := a.encode(); err != nil {
		return nil, err
	}

	image, err := a.mem.image(a.opts.ImageSize)

	if err != nil {
		return nil, err
	}

	if symtable != nil {
		a.fillSymbols(symtable)
	}

	a.log.Info(
		"assembled program",
		"instructions", len(a.instructions),
		"bytes", a.mem.len(),
		"image", a.opts.ImageSize,
	)

	return &Program{
		Instructions: a.instructions,
		Labels:       a.labels,
		Length:       a.mem.len(),
		Image:        image,
	}, nil
}

// AssembleFile reads src through fs, assembles it and writes the padded
// image to dst. Nothing is written when assembly fails.
func AssembleFile(fs fsio.FileSystem, src, dst string, opts Options, symtable *SymTable) (*Program, error) {
	text, err := fs.ReadText(src)

	if err != nil {
		return nil, err
	}

	program, err := AssembleSource(strings.NewReader(text), opts, symtable)

	if err != nil {
		return nil, err
	}

	if err := fs.WriteBytes(dst, program.Image); err != nil {
		return nil, err
	}

	return program, nil
}
