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

// Package config loads assembler settings from a YAML file.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lassandro/gosvm/pkg/assembler"
)

type Config struct {
	StartAddress uint16 `yaml:"start_address"`
	ImageSize    int    `yaml:"image_size"`
	Output       string `yaml:"output"`
	Listing      bool   `yaml:"listing"`
	AST          string `yaml:"ast"`
	Symbols      bool   `yaml:"symbols"`
	LogLevel     string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		StartAddress: 0,
		ImageSize:    assembler.IMAGE_SIZE_DEFAULT,
		LogLevel:     "warn",
	}
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	file, err := os.Open(path)

	if err != nil {
		return Config{}, errors.Wrap(err, "opening config")
	}

	defer file.Close()

	cfg, err := Decode(file)

	if err != nil {
		return Config{}, errors.Wrapf(err, "loading %s", path)
	}

	return cfg, nil
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.ImageSize < 1 || cfg.ImageSize > assembler.IMAGE_SIZE_MAX {
		return errors.Errorf(
			"image_size %d out of range 1..%d",
			cfg.ImageSize,
			assembler.IMAGE_SIZE_MAX,
		)
	}

	if _, err := cfg.Level(); err != nil {
		return err
	}

	return nil
}

// Level parses LogLevel. An empty value means warn.
func (cfg *Config) Level() (slog.Level, error) {
	var level slog.Level

	if cfg.LogLevel == "" {
		return slog.LevelWarn, nil
	}

	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		return 0, errors.Errorf("unknown log_level '%s'", cfg.LogLevel)
	}

	return level, nil
}

func (cfg *Config) Options(logger *slog.Logger) assembler.Options {
	return assembler.Options{
		StartAddress: cfg.StartAddress,
		ImageSize:    cfg.ImageSize,
		Logger:       logger,
	}
}

func (cfg *Config) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding config")
	}

	return errors.Wrap(encoder.Close(), "encoding config")
}
