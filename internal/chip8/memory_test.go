package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew_LoadsROM(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty rom", 0},
		{"single byte", 1},
		{"small rom", 246},
		{"maximum size", MaxROMSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = byte(i*7 + 3)
			}

			m, err := New(rom)
			assert.NoError(t, err)

			for i, b := range rom {
				assert.Equal(t, b, m.ReadMemory(uint16(ProgramStart+i)))
			}
			assert.Equal(t, uint16(ProgramStart), m.PC())
			assert.Equal(t, uint16(0), m.Index())
			assert.Equal(t, 0, m.Stack().Depth())
			assert.Equal(t, Keypad{}, m.Keys())
			fb := m.Framebuffer()
			assert.Equal(t, 0, fb.Lit())
		})
	}
}

func TestNew_RomTooLarge(t *testing.T) {
	m, err := New(make([]byte, MaxROMSize+1))
	assert.Nil(t, m)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrRomTooLarge))
	assert.ErrorContains(t, err, "3585")
}

func TestNew_FontLoaded(t *testing.T) {
	m := newTestMachine(t)

	font := Font()
	assert.Len(t, font, 80)
	for i, b := range font {
		assert.Equal(t, b, m.ReadMemory(uint16(FontStart+i)))
	}
	// glyph 0 and glyph F boundaries
	assert.Equal(t, byte(0xF0), m.ReadMemory(0x050))
	assert.Equal(t, byte(0x80), m.ReadMemory(0x09F))
	assert.Equal(t, byte(0x00), m.ReadMemory(0x0A0))
}

func TestMemory_Wraps(t *testing.T) {
	var mem Memory
	mem.Write(0x1000, 0x12)
	assert.Equal(t, byte(0x12), mem[0x000])
	assert.Equal(t, byte(0x12), mem.Read(0x2000))

	mem.Write(0xFFF, 0xAB)
	mem.Write(0x000, 0xCD)
	assert.Equal(t, uint16(0xABCD), mem.ReadWord(0xFFF))
}

func TestMachine_FontSurvivesStores(t *testing.T) {
	m := newTestMachine(t,
		0x60FF, // V0 = FF
		0x61EE, // V1 = EE
		0xA050, // I = font start
		0xF155, // store V0..V1 at I
		0xA09E, // I = last two font bytes
		0xF033, // BCD of V0
	)
	runCycles(t, m, 6)

	for i, b := range Font() {
		assert.Equal(t, b, m.ReadMemory(uint16(FontStart+i)))
	}
	// the byte after the font area is writable
	assert.Equal(t, byte(5), m.ReadMemory(0x0A0))
}
