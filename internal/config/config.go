// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the machine options selected by the program options.
func MachineOptions(opts options.Program) []chip8.Option {
	return []chip8.Option{
		chip8.WithRandom(chip8.SeededRandom(opts.Seed)),
		chip8.WithQuirks(chip8.Quirks{
			MaskRandom: opts.MaskRandom,
		}),
	}
}
