package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// maxDataBytesPerLine limits the number of bytes of a single .byte directive.
const maxDataBytesPerLine = 8

// write writes the CHIP-8 assembly listing.
func (dis *Disasm) write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}

	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}

	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	endIndex := dis.endIndex()
	for i := 0; i < endIndex; {
		offsetInfo := &dis.offsets[i]

		if offsetInfo.label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", offsetInfo.label); err != nil {
				return fmt.Errorf("writing label %s: %w", offsetInfo.label, err)
			}
		}

		if offsetInfo.code {
			if err := dis.writeCode(w, i); err != nil {
				return err
			}
			i += 2
			continue
		}

		count := dis.dataLength(i, endIndex)
		if err := dis.writeData(w, i, count); err != nil {
			return err
		}
		i += count
	}

	return nil
}

// writeCode writes the instruction that starts at the index.
func (dis *Disasm) writeCode(w io.Writer, index int) error {
	offsetInfo := &dis.offsets[index]
	line := "    " + dis.code(offsetInfo)
	comment := dis.comment(index, dis.rom[index:index+2], "")
	return writeLine(w, line, comment)
}

// writeData writes count bytes starting at the index as .byte directive.
func (dis *Disasm) writeData(w io.Writer, index, count int) error {
	data := dis.rom[index : index+count]

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("    .byte $%02X", data[0]))
	for _, b := range data[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}

	comment := dis.comment(index, nil, dis.offsets[index].comment)
	return writeLine(w, buf.String(), comment)
}

// dataLength returns the number of data bytes starting at the index that can
// be written as a single directive.
func (dis *Disasm) dataLength(index, endIndex int) int {
	count := 1
	for i := index + 1; i < endIndex && count < maxDataBytesPerLine; i++ {
		offsetInfo := &dis.offsets[i]
		if offsetInfo.code || offsetInfo.label != "" || offsetInfo.comment != "" {
			break
		}
		count++
	}
	return count
}

// comment returns the line comment with address and opcode bytes as enabled
// by the options.
func (dis *Disasm) comment(index int, opcodeBytes []byte, note string) string {
	var parts []string
	if note != "" {
		parts = append(parts, note)
	}
	if dis.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%03X", index+chip8.ProgramStart))
	}
	if dis.options.HexComments && len(opcodeBytes) > 0 {
		parts = append(parts, fmt.Sprintf("%02X %02X", opcodeBytes[0], opcodeBytes[1]))
	}
	return strings.Join(parts, " ")
}

func writeLine(w io.Writer, line, comment string) error {
	if comment == "" {
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", line, comment); err != nil {
		return fmt.Errorf("writing line with comment: %w", err)
	}
	return nil
}

// endIndex finds the end of the last meaningful byte in the ROM.
func (dis *Disasm) endIndex() int {
	if dis.options.ZeroBytes {
		return len(dis.offsets)
	}

	for i := len(dis.offsets) - 1; i >= 0; i-- {
		offsetInfo := &dis.offsets[i]
		switch {
		case offsetInfo.code:
			return i + 2
		case offsetInfo.inside, offsetInfo.label != "", dis.rom[i] != 0:
			return i + 1
		}
	}
	return 0
}
