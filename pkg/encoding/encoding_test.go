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

package encoding_test

import (
	"bytes"
	"testing"

	"github.com/lassandro/gosvm/pkg/encoding"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		Input string
		Want  uint16
		Fail  bool
	}{
		{"$0", 0x0000, false},
		{"$FF", 0x00FF, false},
		{"$ff", 0x00FF, false},
		{"$FFFF", 0xFFFF, false},
		{"1A", 0x001A, false},
		{"$", 0, true},
		{"$10000", 0, true},
		{"$XYZ", 0, true},
	}

	for _, test := range tests {
		have, err := encoding.DecodeHex(test.Input)

		if test.Fail {
			if err == nil {
				t.Errorf("%q should fail, have:%#04x", test.Input, have)
			}
			continue
		}

		if err != nil {
			t.Errorf("%q: %v", test.Input, err)
		} else if have != test.Want {
			t.Errorf("%q\nwant:%#04x\nhave:%#04x", test.Input, test.Want, have)
		}
	}
}

func TestDecodeInt(t *testing.T) {
	tests := []struct {
		Input string
		Want  uint16
		Fail  bool
	}{
		{"#0", 0, false},
		{"#10", 10, false},
		{"42", 42, false},
		{"#65535", 0xFFFF, false},
		{"#-1", 0xFFFF, false},
		{"#-32768", 0x8000, false},
		{"#65536", 0, true},
		{"#-32769", 0, true},
		{"#", 0, true},
		{"#1F", 0, true},
	}

	for _, test := range tests {
		have, err := encoding.DecodeInt(test.Input)

		if test.Fail {
			if err == nil {
				t.Errorf("%q should fail, have:%d", test.Input, have)
			}
			continue
		}

		if err != nil {
			t.Errorf("%q: %v", test.Input, err)
		} else if have != test.Want {
			t.Errorf("%q\nwant:%d\nhave:%d", test.Input, test.Want, have)
		}
	}
}

func TestWord(t *testing.T) {
	buf := encoding.PutWord(nil, 0x1234)

	if !bytes.Equal(buf, []byte{0x34, 0x12}) {
		t.Fatalf("want:[34 12]\nhave:% x", buf)
	}

	if have := encoding.Word(buf); have != 0x1234 {
		t.Fatalf("want:0x1234\nhave:%#04x", have)
	}
}
