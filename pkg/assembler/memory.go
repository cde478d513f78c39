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
	"github.com/lassandro/gosvm/pkg/encoding"
)

// memory is the append-only output buffer filled by the encode pass.
type memory struct {
	buffer []byte
}

func (m *memory) writeByte(value byte) {
	m.buffer = append(m.buffer, value)
}

func (m *memory) writeWord(value uint16) {
	m.buffer = encoding.PutWord(m.buffer, value)
}

func (m *memory) len() int {
	return len(m.buffer)
}

// image returns the buffer zero-padded to size bytes.
func (m *memory) image(size int) ([]byte, error) {
	if len(m.buffer) > size {
		return nil, &ImageTooLargeError{size, len(m.buffer)}
	}

	result := make([]byte, size)
	copy(result, m.buffer)

	return result, nil
}
