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
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gosvm/pkg/assembler"
	"github.com/lassandro/gosvm/pkg/fsio"
)

// recordingFS keeps the last source text read so diagnostics can quote it,
// including text that came from stdin.
type recordingFS struct {
	fsio.FileSystem
	text string
}

func (fs *recordingFS) ReadText(path string) (string, error) {
	text, err := fs.FileSystem.ReadText(path)
	fs.text = text
	return text, err
}

type reporter struct {
	out   io.Writer
	name  string
	color bool
}

func (r *reporter) style(code, text string) string {
	if !r.color {
		return text
	}

	return "\033[" + code + "m" + text + "\033[0m"
}

// underline marks size columns starting at column, reusing the tabs of the
// quoted line so the caret lines up.
func underline(line string, column, size int) string {
	var b strings.Builder

	for i := 0; i < column-1; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}

	b.WriteString("^")

	if size > 1 {
		b.WriteString(strings.Repeat("~", size-1))
	}

	return b.String()
}

func (r *reporter) report(err error, source string) {
	prefix := r.style("1", r.name+":")

	tokenErr, ok := err.(assembler.TokenError)

	if !ok {
		fmt.Fprintf(r.out, "%s %s\n", prefix, err)
		return
	}

	cursor := tokenErr.GetPosition()
	lines := strings.Split(source, "\n")

	if cursor.Line < 1 || cursor.Line > len(lines) {
		fmt.Fprintf(r.out, "%s %s\n", prefix, err)
		return
	}

	line := strings.TrimRight(lines[cursor.Line-1], "\r")

	fmt.Fprintf(
		r.out,
		"%s %s\n%s\n%s\n",
		prefix,
		err,
		line,
		r.style("31", underline(line, cursor.Column, cursor.Size)),
	)
}
