package chip8

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMachine_SaveLoadState(t *testing.T) {
	program := []uint16{
		0x6A05, 0xFA15, 0x2208, 0x0000,
		0xA050, 0xD005, 0x7A01, 0x1208, // $208: draw loop
	}
	m := newTestMachine(t, program...)
	runCycles(t, m, 5)

	var buf bytes.Buffer
	assert.NoError(t, m.SaveState(&buf))
	snap := m.Snapshot()

	runCycles(t, m, 7)
	after := m.Snapshot()

	restored := newTestMachine(t)
	assert.NoError(t, restored.LoadState(&buf))
	assert.Equal(t, snap, restored.Snapshot())

	runCycles(t, restored, 7)
	assert.Equal(t, after, restored.Snapshot())
}

func TestMachine_LoadStateInvalidData(t *testing.T) {
	m := newTestMachine(t)
	err := m.LoadState(bytes.NewReader([]byte("not a state")))
	assert.ErrorContains(t, err, "decoding state")
}

func TestMachine_RestoreRejectsStackPointer(t *testing.T) {
	m := newTestMachine(t, 0x6A01)
	snap := m.Snapshot()
	snap.StackPointer = StackSize + 1

	err := m.Restore(snap)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestMachine_RestoreKeepsFont(t *testing.T) {
	m := newTestMachine(t)
	snap := m.Snapshot()
	for i := FontStart; i < FontStart+len(fontSet); i++ {
		snap.Memory[i] = 0xAA
	}

	assert.NoError(t, m.Restore(snap))
	for i, b := range Font() {
		assert.Equal(t, b, m.ReadMemory(uint16(FontStart+i)))
	}
}

func TestMachine_RestoreClearsHalt(t *testing.T) {
	m := newTestMachine(t, 0x6A01, 0x00EE)
	snap := m.Snapshot()

	runCycles(t, m, 1)
	assert.Error(t, m.Cycle())

	assert.NoError(t, m.Restore(snap))
	assert.NoError(t, m.Err())
	assert.NoError(t, m.Cycle())
	assert.Equal(t, uint8(1), m.Register(0xA))
}
