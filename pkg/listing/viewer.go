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

package listing

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gosvm/pkg/assembler"
)

type NoSourceError struct{}

func (err *NoSourceError) Error() string {
	return "No source file loaded"
}

type NoSymbolsError struct{}

func (err *NoSymbolsError) Error() string {
	return "No symbol table loaded"
}

type NoInstructionError struct {
	Addr uint16
}

func (err *NoInstructionError) Error() string {
	return fmt.Sprintf("No instruction found at %#06x", err.Addr)
}

// Viewer prints source lines and memory next to the addresses they were
// assembled to.
type Viewer struct {
	Source   []string
	SymTable *assembler.SymTable
	Color    bool

	// line -> address, built lazily from SymTable
	addrs map[int]uint16
}

func NewViewer(source string, symtable *assembler.SymTable, color bool) *Viewer {
	viewer := &Viewer{SymTable: symtable, Color: color}

	if source != "" {
		scanner := bufio.NewScanner(strings.NewReader(source))
		scanner.Split(bufio.ScanLines)

		for scanner.Scan() {
			viewer.Source = append(viewer.Source, scanner.Text())
		}
	}

	return viewer
}

func (v *Viewer) style(code, text string) string {
	if !v.Color {
		return text
	}

	return "\033[" + code + "m" + text + "\033[0m"
}

func (v *Viewer) lineAddr(line int) (uint16, bool) {
	if v.addrs == nil {
		v.addrs = make(map[int]uint16, len(v.SymTable.Symbols))

		for addr, l := range v.SymTable.Symbols {
			v.addrs[l] = addr
		}
	}

	addr, exists := v.addrs[line]
	return addr, exists
}

// WriteSource prints count source lines starting at the line that produced
// the instruction at addr.
func (v *Viewer) WriteSource(w io.Writer, addr uint16, count int) error {
	if v.Source == nil {
		return &NoSourceError{}
	}

	if v.SymTable == nil {
		return &NoSymbolsError{}
	}

	line, exists := v.SymTable.Symbols[addr]

	if !exists {
		return &NoInstructionError{addr}
	}

	for i := line; i < line+count && i <= len(v.Source); i++ {
		if lineaddr, found := v.lineAddr(i); found {
			if label, labeled := v.SymTable.Labels[lineaddr]; labeled {
				fmt.Fprintf(w, "%s:\n", v.style("1;34", label))
			}

			fmt.Fprintf(w, "%s ", v.style("1", fmt.Sprintf("[%#06x]", lineaddr)))
		} else {
			fmt.Fprintf(w, "%s ", v.style("1;30", "~~~~~~~~"))
		}

		fmt.Fprintln(w, v.Source[i-1])
	}

	return nil
}

// WriteMem hexdumps count bytes of image starting at addr, eight per row.
// base is the address of image[0].
func (v *Viewer) WriteMem(w io.Writer, image []byte, base, addr uint16, count int) {
	for i := 0; i < count; i++ {
		current := int(addr) + i
		index := current - int(base)

		if index < 0 || index >= len(image) {
			break
		}

		if i == 0 {
			fmt.Fprintf(w, "%s ", v.style("1", fmt.Sprintf("[%#06x]", current)))
		} else if i%8 == 0 {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "%s ", v.style("1", fmt.Sprintf("[%#06x]", current)))
		}

		result := image[index]

		if result == 0 {
			fmt.Fprintf(w, "%s ", v.style("1;30", fmt.Sprintf("%02x", result)))
		} else {
			fmt.Fprintf(w, "%02x ", result)
		}
	}

	fmt.Fprintln(w)
}
