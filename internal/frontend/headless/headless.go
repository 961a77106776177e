// Package headless implements a frontend without any output that runs the
// emulation as fast as possible.
package headless

import (
	"context"
	"fmt"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// Name of the frontend.
const Name = "headless"

// Headless runs frames until the cycle limit is reached.
type Headless struct {
	logger    *log.Logger
	maxCycles uint64
}

// New returns a new headless frontend.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	return &Headless{
		logger:    cfg.Logger,
		maxCycles: cfg.MaxCycles,
	}, nil
}

// Name returns the name of the frontend.
func (h *Headless) Name() string {
	return Name
}

// Run executes frames until the context is cancelled, the machine halts or
// the cycle limit is reached.
func (h *Headless) Run(ctx context.Context, emu frontend.Emulator) error {
	for h.maxCycles == 0 || emu.Cycles() < h.maxCycles {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("running emulation: %w", err)
		}

		if err := frontend.AdvanceFrame(emu, h.maxCycles); err != nil {
			return fmt.Errorf("running frame: %w", err)
		}
	}

	if h.logger != nil {
		h.logger.Debug("Cycle limit reached", log.Int("cycles", int(emu.Cycles())))
	}
	return nil
}
