// Package frontend defines the interface between the emulation session and
// the user facing presentations of a running machine.
package frontend

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate at which frontends advance the emulation.
const FrameRate = 60

// Emulator is the machine surface that a frontend drives. All methods are
// safe for concurrent use.
type Emulator interface {
	// Frame executes the instructions of one frame. It returns the error that
	// halted the machine.
	Frame() error
	// Step executes a single instruction.
	Step() error
	// Err returns the error that halted the machine, nil while it is running.
	Err() error
	CyclesPerFrame() int
	SetKeys(keys chip8.Keypad)
	Framebuffer() chip8.Framebuffer
	SoundTimer() uint8
	Snapshot() chip8.Snapshot
	Cycles() uint64
}

// Frontend presents a running emulator to the user.
type Frontend interface {
	Name() string
	// Run drives the emulator until the context is cancelled, the user quits
	// or the machine halts.
	Run(ctx context.Context, emu Emulator) error
}

// AdvanceFrame executes one frame of the emulator. With a cycle limit set,
// the last frame is shortened so that exactly maxCycles instructions run.
func AdvanceFrame(emu Emulator, maxCycles uint64) error {
	if maxCycles == 0 {
		return emu.Frame()
	}

	cycles := emu.Cycles()
	if cycles >= maxCycles {
		return nil
	}
	left := maxCycles - cycles
	if left >= uint64(emu.CyclesPerFrame()) {
		return emu.Frame()
	}

	for range left {
		if err := emu.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Config contains the settings shared by all frontends.
type Config struct {
	Logger    *log.Logger
	Title     string
	Scale     int    // window scale factor
	MaxCycles uint64 // cycle limit of non interactive frontends, 0 for no limit
}

// Constructor creates a frontend.
type Constructor func(cfg Config) (Frontend, error)

// Registry contains the frontend constructors by name.
type Registry struct {
	constructors map[string]Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: map[string]Constructor{},
	}
}

// Register adds a frontend constructor.
func (r *Registry) Register(name string, constructor Constructor) {
	r.constructors[strings.ToLower(name)] = constructor
}

// Names returns the sorted names of all registered frontends.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Create creates the frontend with the given name.
func (r *Registry) Create(name string, cfg Config) (Frontend, error) {
	constructor, ok := r.constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}

	f, err := constructor(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating frontend %s: %w", name, err)
	}
	return f, nil
}
