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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"golang.org/x/term"

	"github.com/lassandro/gosvm/pkg/assembler"
	"github.com/lassandro/gosvm/pkg/config"
	"github.com/lassandro/gosvm/pkg/encoding"
	"github.com/lassandro/gosvm/pkg/fsio"
	"github.com/lassandro/gosvm/pkg/listing"
)

var (
	outvar     string
	configvar  string
	startvar   string
	sizevar    int
	listingvar bool
	astvar     string
	debugvar   bool
	verbosevar bool
	logvar     string
)

// errReported marks failures whose diagnostics were already printed.
var errReported = errors.New("assembly failed")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gosvm-asm [flags] [file]",
		Short: "Assembles source for the gosvm machine into a memory image",
		Long: `Gosvm-asm translates one assembly source file into a fixed-size
binary memory image. Source is read from stdin when it is piped and no file
is given. The image is written next to the source with the extension '.bin',
or to 'out.bin' for stdin, unless --out names another file.`,

		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := cmd.Flags()
	flags.StringVarP(&outvar, "out", "o", "", "Output image path, '-' for stdout")
	flags.StringVarP(&configvar, "config", "c", "", "YAML configuration file")
	flags.StringVar(&startvar, "start", "", "Start address in hex, e.g. $0100")
	flags.IntVar(&sizevar, "size", assembler.IMAGE_SIZE_DEFAULT, "Image size in bytes")
	flags.BoolVar(&listingvar, "listing", false, "Print an address listing")
	flags.StringVar(&astvar, "ast", "", "Write the parsed instruction list as YAML")
	flags.BoolVar(
		&debugvar, "debug", false,
		"Write a symbol table next to the output with extension '.svmdb'",
	)
	flags.BoolVarP(&verbosevar, "verbose", "v", false, "Log assembler passes")
	flags.StringVar(&logvar, "log-file", "", "Write JSON logs to this file")

	return cmd
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if configvar != "" {
		var err error

		if cfg, err = config.Load(configvar); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()

	if flags.Changed("out") {
		cfg.Output = outvar
	}

	if flags.Changed("start") {
		start, err := encoding.DecodeHex(startvar)

		if err != nil {
			return cfg, errors.Wrapf(err, "invalid start address '%s'", startvar)
		}

		cfg.StartAddress = start
	}

	if flags.Changed("size") {
		cfg.ImageSize = sizevar
	}

	if flags.Changed("listing") {
		cfg.Listing = listingvar
	}

	if flags.Changed("ast") {
		cfg.AST = astvar
	}

	if flags.Changed("debug") {
		cfg.Symbols = debugvar
	}

	if verbosevar {
		cfg.LogLevel = "debug"
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Level()

	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if logvar == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	}

	file, err := os.Create(logvar)

	if err != nil {
		return nil, errors.Wrap(err, "creating log file")
	}

	atexit.Register(func() {
		file.Sync()
		file.Close()
	})

	return slog.New(slog.NewJSONHandler(file, opts)), nil
}

// outputPath replaces the extension of the source name with ext.
func outputPath(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

func stdinPiped() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice == 0
}

func writeSymbols(path string, symtable *assembler.SymTable) error {
	file, err := os.Create(path)

	if err != nil {
		return errors.Wrap(err, "creating symbol table")
	}

	defer file.Close()

	if err := gob.NewEncoder(file).Encode(symtable); err != nil {
		return errors.Wrap(err, "writing symbol table")
	}

	return nil
}

func writeAST(path string, program *assembler.Program) error {
	file, err := os.Create(path)

	if err != nil {
		return errors.Wrap(err, "creating AST file")
	}

	defer file.Close()

	return listing.WriteAST(file, program.Instructions)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)

	if err != nil {
		return err
	}

	logger, err := newLogger(&cfg)

	if err != nil {
		return err
	}

	var src, name string

	if len(args) == 0 {
		if !stdinPiped() {
			cmd.Usage()
			return errors.New("no source file given")
		}

		src, name = "-", "<stdin>"

		if cfg.Output == "" {
			cfg.Output = "out.bin"
		}
	} else {
		src, name = args[0], filepath.Base(args[0])

		stat, err := os.Stat(src)

		if err != nil {
			return err
		}

		if stat.IsDir() {
			return errors.Errorf("%s is not a valid assembly file", name)
		}

		if cfg.Output == "" {
			cfg.Output = outputPath(src, ".bin")
		}
	}

	var symtable assembler.SymTable
	var symtarget *assembler.SymTable = nil

	if cfg.Symbols {
		if src != "-" {
			if symtable.Source, err = filepath.Abs(src); err != nil {
				logger.Warn("source path unavailable", "error", err)
				symtable.Source = ""
			}
		}

		symtarget = &symtable
	}

	fs := &recordingFS{FileSystem: fsio.OS{}}
	color := term.IsTerminal(int(os.Stderr.Fd()))

	program, err := assembler.AssembleFile(
		fs, src, cfg.Output, cfg.Options(logger), symtarget,
	)

	if err != nil {
		logger.Debug("assembly failed", "file", name, "error", err)

		r := reporter{out: os.Stderr, name: name, color: color}
		r.report(err, fs.text)

		return errReported
	}

	logger.Info("wrote image", "path", cfg.Output, "bytes", len(program.Image))

	if cfg.Listing {
		out := os.Stdout

		if cfg.Output == "-" {
			out = os.Stderr
		}

		listing.WriteListing(out, program, name)
	}

	if cfg.AST != "" {
		if err := writeAST(cfg.AST, program); err != nil {
			return err
		}
	}

	if cfg.Symbols {
		if cfg.Output == "-" {
			logger.Warn("symbol table skipped for stdout output")
		} else {
			path := outputPath(cfg.Output, ".svmdb")

			if err := writeSymbols(path, &symtable); err != nil {
				return err
			}

			logger.Info("wrote symbol table", "path", path)
		}
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if err != errReported {
			fmt.Fprintf(os.Stderr, "gosvm-asm: %s\n", err)
		}

		atexit.Exit(1)
	}

	atexit.Exit(0)
}
