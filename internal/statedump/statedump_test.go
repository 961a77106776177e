package statedump

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestWrite(t *testing.T) {
	m, err := chip8.New([]byte{0x6A, 0x42, 0xA3, 0x21, 0x22, 0x08, 0x00, 0x00, 0x6F, 0x0A, 0xFF, 0x15})
	assert.NoError(t, err)
	for range 5 {
		assert.NoError(t, m.Cycle())
	}
	m.SetKey(0x3, true)

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, m.Snapshot(), Options{}))
	out := buf.String()

	assert.Contains(t, out, "=== Machine state ===\n")
	assert.Contains(t, out, " VA=42 ")
	assert.Contains(t, out, " VF=0A\n")
	assert.Contains(t, out, "Index: $0321\n")
	assert.Contains(t, out, "Program counter: $020C\n")
	assert.Contains(t, out, "Opcode: $FF15\n")
	assert.Contains(t, out, "Stack: [$0206]\n")
	assert.Contains(t, out, "Stack pointer: 1\n")
	assert.Contains(t, out, "Delay timer: 9\n")
	assert.Contains(t, out, "Sound timer: 0\n")
	assert.Contains(t, out, "Keypad: [0001000000000000]\n")
	assert.Contains(t, out, "Cycles: 5\n")
	assert.False(t, strings.Contains(out, "Memory:"))
}

func TestWrite_Memory(t *testing.T) {
	m, err := chip8.New([]byte{0x12, 0x00})
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, m.Snapshot(), Options{Memory: true}))
	out := buf.String()

	assert.Contains(t, out, "Memory:\n$0000: 00 00")
	assert.Contains(t, out, "$0050: F0 90 90 90 F0 20 60 20 20 70 F0 10 F0 80 F0 F0\n")
	assert.Contains(t, out, "$0200: 12 00 00")
	assert.Contains(t, out, "$0FF0:")
	assert.Equal(t, chip8.MemorySize/bytesPerRow, strings.Count(out, "\n$"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite_Error(t *testing.T) {
	err := Write(failingWriter{}, chip8.Snapshot{}, Options{})
	assert.ErrorContains(t, err, "disk full")
}
