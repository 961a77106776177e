// Package statedump writes a human readable dump of a CHIP-8 machine state.
package statedump

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

const bytesPerRow = 16

// Options controls the sections of the dump.
type Options struct {
	Memory bool // include a hexdump of the full memory
}

// Write writes the machine state to the writer.
func Write(w io.Writer, snap chip8.Snapshot, opts Options) error {
	var buf strings.Builder

	buf.WriteString("=== Machine state ===\n")
	if opts.Memory {
		buf.WriteString("Memory:\n")
		writeMemory(&buf, snap.Memory[:])
		buf.WriteString("\n")
	}

	buf.WriteString("Registers:")
	for i, value := range snap.Registers {
		fmt.Fprintf(&buf, " V%X=%02X", i, value)
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "Index: $%04X\n", snap.Index)
	fmt.Fprintf(&buf, "Program counter: $%04X\n", snap.PC)
	fmt.Fprintf(&buf, "Opcode: $%04X\n", snap.Opcode)

	buf.WriteString("Stack: [")
	for i := range int(snap.StackPointer) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "$%04X", snap.Stack[i])
	}
	buf.WriteString("]\n")
	fmt.Fprintf(&buf, "Stack pointer: %d\n", snap.StackPointer)

	fmt.Fprintf(&buf, "Delay timer: %d\n", snap.Timers.Delay)
	fmt.Fprintf(&buf, "Sound timer: %d\n", snap.Timers.Sound)

	buf.WriteString("Keypad: [")
	for _, down := range snap.Keypad {
		if down {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	}
	buf.WriteString("]\n")
	fmt.Fprintf(&buf, "Cycles: %d\n", snap.Cycles)

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("writing state dump: %w", err)
	}
	return nil
}

func writeMemory(buf *strings.Builder, memory []byte) {
	for address := 0; address < len(memory); address += bytesPerRow {
		fmt.Fprintf(buf, "$%04X:", address)
		for _, b := range memory[address:min(address+bytesPerRow, len(memory))] {
			fmt.Fprintf(buf, " %02X", b)
		}
		buf.WriteString("\n")
	}
}
