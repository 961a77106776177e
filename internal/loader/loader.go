// Package loader handles ROM file loading operations.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM image of the input file for the given system.
func (l *Loader) Load(opts options.Program, system arch.System) ([]byte, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	rom, err := l.LoadFromBytes(data, system)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", opts.Input, err)
	}
	return rom, nil
}

// LoadFromBytes validates a ROM image that is already in memory.
// CHIP-8 images have no header and are used as is.
func (l *Loader) LoadFromBytes(data []byte, system arch.System) ([]byte, error) {
	if system != arch.CHIP8System {
		return nil, fmt.Errorf("unsupported system '%s'", system)
	}

	if len(data) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", chip8.ErrRomTooLarge, len(data), chip8.MaxROMSize)
	}
	return data, nil
}
