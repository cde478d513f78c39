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

package main

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/lassandro/gosvm/pkg/assembler"
	"github.com/lassandro/gosvm/pkg/disasm"
	"github.com/lassandro/gosvm/pkg/encoding"
	"github.com/lassandro/gosvm/pkg/fsio"
	"github.com/lassandro/gosvm/pkg/listing"
)

var (
	basevar    string
	symbolsvar string
	hexdumpvar bool
	sourcevar  int
	rawvar     bool
	verbosevar bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gosvm-dis [flags] image",
		Short: "Disassembles a gosvm memory image",
		Long: `Gosvm-dis decodes a binary memory image back into assembly source.
Jump targets are named from the symbol table written by 'gosvm-asm --debug'
when one is found next to the image, and get synthetic names otherwise.`,

		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := cmd.Flags()
	flags.StringVar(&basevar, "base", "", "Address of the first image byte in hex")
	flags.StringVar(&symbolsvar, "symbols", "", "Symbol table, defaults to <image>.svmdb")
	flags.BoolVar(&hexdumpvar, "hexdump", false, "Print the program bytes")
	flags.IntVar(&sourcevar, "source", 0, "Print this many source lines")
	flags.BoolVar(&rawvar, "raw", false, "Print decoded instructions as structs")
	flags.BoolVarP(&verbosevar, "verbose", "v", false, "Log progress")

	return cmd
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn

	if verbosevar {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: level},
	))
}

func loadSymbols(path string) (*assembler.SymTable, error) {
	file, err := os.Open(path)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	var symtable assembler.SymTable

	if err := gob.NewDecoder(file).Decode(&symtable); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	return &symtable, nil
}

// lowestAddress is the address the first instruction was assembled to.
func lowestAddress(symtable *assembler.SymTable) (uint16, bool) {
	var lowest uint16
	found := false

	for addr := range symtable.Symbols {
		if !found || addr < lowest {
			lowest, found = addr, true
		}
	}

	return lowest, found
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	path := args[0]

	file, err := os.Open(path)

	if err != nil {
		return err
	}

	defer file.Close()

	image, err := disasm.LoadImage(file)

	if err != nil {
		return err
	}

	var symtable *assembler.SymTable

	if symbolsvar != "" {
		if symtable, err = loadSymbols(symbolsvar); err != nil {
			return err
		}
	} else {
		guess := strings.TrimSuffix(path, filepath.Ext(path)) + ".svmdb"

		if symtable, err = loadSymbols(guess); err != nil {
			logger.Debug("no symbol table", "path", guess, "error", err)
			symtable = nil
		}
	}

	var base uint16

	if cmd.Flags().Changed("base") {
		if base, err = encoding.DecodeHex(basevar); err != nil {
			return errors.Wrapf(err, "invalid base address '%s'", basevar)
		}
	} else if symtable != nil {
		if lowest, found := lowestAddress(symtable); found {
			base = lowest
		}
	}

	decoded, err := disasm.Disassemble(image, base)

	if err != nil {
		return err
	}

	logger.Info(
		"decoded image",
		"path", path,
		"base", base,
		"instructions", len(decoded),
	)

	color := term.IsTerminal(int(os.Stdout.Fd()))

	if rawvar {
		printer := pp.New()
		printer.SetOutput(os.Stdout)
		printer.SetColoringEnabled(color)
		printer.Println(decoded)
	} else if err := disasm.Write(os.Stdout, decoded, symtable); err != nil {
		return err
	}

	var source string

	if sourcevar > 0 {
		if symtable == nil || symtable.Source == "" {
			return errors.New("--source needs a symbol table with a source path")
		}

		if source, err = (fsio.OS{}).ReadText(symtable.Source); err != nil {
			return err
		}
	}

	viewer := listing.NewViewer(source, symtable, color)

	if hexdumpvar {
		length := 0

		if len(decoded) > 0 {
			last := decoded[len(decoded)-1]
			length = int(last.Address-base) + last.Size()
		}

		fmt.Println()
		viewer.WriteMem(os.Stdout, image, base, base, length)
	}

	if sourcevar > 0 && len(decoded) > 0 {
		fmt.Println()

		if err := viewer.WriteSource(os.Stdout, decoded[0].Address, sourcevar); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gosvm-dis: %s\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
