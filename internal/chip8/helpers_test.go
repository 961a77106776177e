package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// romOf encodes instruction words as a big-endian ROM image.
func romOf(words ...uint16) []byte {
	rom := make([]byte, 0, 2*len(words))
	for _, w := range words {
		rom = append(rom, byte(w>>8), byte(w))
	}
	return rom
}

func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()

	m, err := New(romOf(words...), WithRandom(func() uint8 { return 0xA5 }))
	assert.NoError(t, err)
	return m
}

func runCycles(t *testing.T, m *Machine, count int) {
	t.Helper()

	for range count {
		assert.NoError(t, m.Cycle())
	}
}
