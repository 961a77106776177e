package frontend

import (
	"context"
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

type nopFrontend struct {
	name string
}

func (f nopFrontend) Name() string                        { return f.name }
func (f nopFrontend) Run(context.Context, Emulator) error { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("terminal", func(Config) (Frontend, error) { return nopFrontend{name: "terminal"}, nil })
	r.Register("Desktop", func(Config) (Frontend, error) { return nopFrontend{name: "desktop"}, nil })
	r.Register("broken", func(Config) (Frontend, error) { return nil, errors.New("no display") })

	assert.Equal(t, []string{"broken", "desktop", "terminal"}, r.Names())

	f, err := r.Create("DESKTOP", Config{})
	assert.NoError(t, err)
	assert.Equal(t, "desktop", f.Name())

	_, err = r.Create("web", Config{})
	assert.ErrorContains(t, err, "unsupported frontend 'web'")

	_, err = r.Create("broken", Config{})
	assert.ErrorContains(t, err, "creating frontend broken: no display")
}

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		key  uint8
		isOK bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'R', 0xD, true},
		{'a', 0x7, true},
		{'f', 0xE, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'p', 0, false},
		{'5', 0, false},
	}

	for _, tt := range tests {
		key, ok := KeyForRune(tt.r)
		assert.Equal(t, tt.isOK, ok)
		assert.Equal(t, tt.key, key)
	}
}

func TestKeymapCoversKeypad(t *testing.T) {
	seen := map[uint8]bool{}
	for _, key := range Keymap {
		seen[key] = true
	}
	assert.Equal(t, chip8.KeyCount, len(seen))
}

type countingEmulator struct {
	Emulator
	cycles         uint64
	cyclesPerFrame int
	frames         int
}

func (e *countingEmulator) Frame() error {
	e.frames++
	e.cycles += uint64(e.cyclesPerFrame)
	return nil
}

func (e *countingEmulator) Step() error {
	e.cycles++
	return nil
}

func (e *countingEmulator) CyclesPerFrame() int { return e.cyclesPerFrame }
func (e *countingEmulator) Cycles() uint64      { return e.cycles }

func TestAdvanceFrame(t *testing.T) {
	emu := &countingEmulator{cyclesPerFrame: 10}

	assert.NoError(t, AdvanceFrame(emu, 25))
	assert.NoError(t, AdvanceFrame(emu, 25))
	assert.Equal(t, 2, emu.frames)

	assert.NoError(t, AdvanceFrame(emu, 25))
	assert.Equal(t, 2, emu.frames)
	assert.Equal(t, uint64(25), emu.cycles)

	assert.NoError(t, AdvanceFrame(emu, 25))
	assert.Equal(t, uint64(25), emu.cycles)

	assert.NoError(t, AdvanceFrame(emu, 0))
	assert.Equal(t, uint64(35), emu.cycles)
}
