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

// Package fsio is the file boundary of the toolchain: reading source text and
// writing finished images.
package fsio

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

type FileSystem interface {
	ReadText(path string) (string, error)
	WriteBytes(path string, data []byte) error
}

// OS reads and writes the real filesystem. The path "-" means stdin for
// reads and stdout for writes.
type OS struct {
	Perm os.FileMode
}

func (fs OS) ReadText(path string) (string, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}

	return string(data), nil
}

func (fs OS) WriteBytes(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return errors.Wrap(err, "writing stdout")
	}

	perm := fs.Perm
	if perm == 0 {
		perm = 0666
	}

	return errors.Wrapf(os.WriteFile(path, data, perm), "writing %s", path)
}
