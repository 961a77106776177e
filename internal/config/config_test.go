package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

// rnd V0, $0F / jp $202
var randomROM = []byte{0xC0, 0x0F, 0x12, 0x02}

func randomValue(t *testing.T, opts options.Program) uint8 {
	t.Helper()
	m, err := chip8.New(randomROM, MachineOptions(opts)...)
	assert.NoError(t, err)
	assert.NoError(t, m.Cycle())
	return m.Register(0)
}

func TestMachineOptions_Seed(t *testing.T) {
	var opts options.Program
	opts.Seed = 42

	assert.Equal(t, randomValue(t, opts), randomValue(t, opts))
}

func TestMachineOptions_MaskRandom(t *testing.T) {
	var opts options.Program
	opts.MaskRandom = true

	for seed := range uint64(32) {
		opts.Seed = seed + 1
		assert.True(t, randomValue(t, opts) <= 0x0F)
	}
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
	assert.NotNil(t, CreateLogger(false, false))
}
