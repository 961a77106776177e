package runner

import (
	"errors"
	"sync"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestSession(t *testing.T, rom []byte, cyclesPerFrame int) *Session {
	t.Helper()
	machine, err := chip8.New(rom)
	assert.NoError(t, err)
	return NewSession(log.NewTestLogger(t), machine, cyclesPerFrame, true)
}

func TestSession_Frame(t *testing.T) {
	s := newTestSession(t, romOf(0x7A01, 0x1200), 6)

	assert.NoError(t, s.Frame())
	assert.Equal(t, uint64(6), s.Cycles())
	assert.Equal(t, uint8(3), s.Snapshot().Registers[0xA])

	assert.NoError(t, s.Step())
	assert.Equal(t, uint64(7), s.Cycles())
}

func TestSession_FrameStopsAtError(t *testing.T) {
	s := newTestSession(t, romOf(0x6001, 0x00EE, 0x6002), 10)

	err := s.Frame()
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.ErrorContains(t, err, "executing cycle 2")
	assert.Equal(t, uint64(1), s.Cycles())
	assert.NotNil(t, s.Err())

	// a halted machine keeps returning the error
	assert.True(t, errors.Is(s.Frame(), chip8.ErrStackUnderflow))
	assert.Equal(t, uint64(1), s.Cycles())
}

func TestSession_MinimumCyclesPerFrame(t *testing.T) {
	s := newTestSession(t, romOf(0x1200), 0)
	assert.Equal(t, 1, s.CyclesPerFrame())

	assert.NoError(t, s.Frame())
	assert.Equal(t, uint64(1), s.Cycles())
}

func TestSession_Keys(t *testing.T) {
	// skp V0 / jp $200 / ld V1, $01
	s := newTestSession(t, romOf(0xE09E, 0x1200, 0x6101), 1)

	var keys chip8.Keypad
	keys[0] = true
	s.SetKeys(keys)

	assert.NoError(t, s.Frame())
	assert.NoError(t, s.Frame())
	assert.Equal(t, uint8(1), s.Snapshot().Registers[1])
}

func TestSession_Concurrent(t *testing.T) {
	s := newTestSession(t, romOf(0x00E0, 0xD015, 0x1200), 3)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = s.Frame()
				fb := s.Framebuffer()
				_ = fb.Lit()
				_ = s.SoundTimer()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(600), s.Cycles())
}
