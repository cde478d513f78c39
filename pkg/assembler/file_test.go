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

package assembler_test

import (
	"bytes"
	"log/slog"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/lassandro/gosvm/pkg/assembler"
)

var _ = Describe("AssembleFile", func() {
	var (
		mockCtrl *gomock.Controller
		mockFS   *MockFileSystem
		opts     assembler.Options
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		mockFS = NewMockFileSystem(mockCtrl)
		opts = assembler.Options{ImageSize: 16}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should write the padded image", func() {
		want := make([]byte, 16)
		copy(want, []byte{0x10, 0x00, 0x0A, 0x00, 0x01})

		mockFS.EXPECT().
			ReadText("prog.asm").
			Return("MOV R0, #10\nHLT\n", nil)
		mockFS.EXPECT().
			WriteBytes("prog.bin", want).
			Return(nil)

		program, err := assembler.AssembleFile(
			mockFS, "prog.asm", "prog.bin", opts, nil,
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(program.Length).To(Equal(5))
		Expect(program.Instructions).To(HaveLen(2))
	})

	It("should fill the symbol table", func() {
		var symtable assembler.SymTable

		mockFS.EXPECT().
			ReadText("loop.asm").
			Return("LOOP: PRINT R0\nJMP LOOP\n", nil)
		mockFS.EXPECT().
			WriteBytes("loop.bin", gomock.Any()).
			Return(nil)

		_, err := assembler.AssembleFile(
			mockFS, "loop.asm", "loop.bin", opts, &symtable,
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(symtable.Labels).To(Equal(map[uint16]string{0: "LOOP"}))
		Expect(symtable.Symbols).To(Equal(map[uint16]int{0: 1, 2: 2}))
	})

	It("should not write anything when assembly fails", func() {
		mockFS.EXPECT().
			ReadText("bad.asm").
			Return("MOV R9, #1\n", nil)
		mockFS.EXPECT().WriteBytes(gomock.Any(), gomock.Any()).Times(0)

		program, err := assembler.AssembleFile(
			mockFS, "bad.asm", "bad.bin", opts, nil,
		)

		Expect(program).To(BeNil())
		Expect(err).To(BeAssignableToTypeOf(&assembler.InvalidRegisterError{}))
	})

	It("should not write an oversized image", func() {
		mockFS.EXPECT().
			ReadText("big.asm").
			Return("MOV R0, #1\nMOV R1, #2\nMOV R2, #3\nMOV R3, #4\nHLT\n", nil)

		_, err := assembler.AssembleFile(
			mockFS, "big.asm", "big.bin", opts, nil,
		)

		Expect(err).To(BeAssignableToTypeOf(&assembler.ImageTooLargeError{}))
	})

	It("should pass read errors through", func() {
		readErr := errors.New("no such file")

		mockFS.EXPECT().
			ReadText("missing.asm").
			Return("", readErr)

		_, err := assembler.AssembleFile(
			mockFS, "missing.asm", "missing.bin", opts, nil,
		)

		Expect(err).To(MatchError(readErr))
	})

	It("should pass write errors through", func() {
		writeErr := errors.New("disk full")

		mockFS.EXPECT().
			ReadText("prog.asm").
			Return("HLT\n", nil)
		mockFS.EXPECT().
			WriteBytes("prog.bin", gomock.Any()).
			Return(writeErr)

		program, err := assembler.AssembleFile(
			mockFS, "prog.asm", "prog.bin", opts, nil,
		)

		Expect(program).To(BeNil())
		Expect(err).To(MatchError(writeErr))
	})

	It("should log the assembled program", func() {
		var buf bytes.Buffer

		opts.Logger = slog.New(slog.NewJSONHandler(&buf, nil))

		mockFS.EXPECT().ReadText("prog.asm").Return("HLT\n", nil)
		mockFS.EXPECT().WriteBytes("prog.bin", gomock.Any()).Return(nil)

		_, err := assembler.AssembleFile(
			mockFS, "prog.asm", "prog.bin", opts, nil,
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring(`"msg":"assembled program"`))
		Expect(buf.String()).NotTo(ContainSubstring("resolved label"))
	})
})
