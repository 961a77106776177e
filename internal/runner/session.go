package runner

import (
	"fmt"
	"io"
	"sync"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// Session drives a machine for a frontend. All methods are safe for
// concurrent use.
type Session struct {
	logger         *log.Logger
	cyclesPerFrame int
	trace          bool

	mu      sync.Mutex
	machine *chip8.Machine
}

// NewSession returns a session that executes cyclesPerFrame instructions for
// every frame.
func NewSession(logger *log.Logger, machine *chip8.Machine, cyclesPerFrame int, trace bool) *Session {
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}
	return &Session{
		logger:         logger,
		cyclesPerFrame: cyclesPerFrame,
		trace:          trace,
		machine:        machine,
	}
}

// Frame executes the instructions of one frame. It stops at the first error.
func (s *Session) Frame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for range s.cyclesPerFrame {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction.
func (s *Session) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step()
}

func (s *Session) step() error {
	if s.trace {
		opcode := s.machine.NextOpcode()
		s.logger.Debug("Executing",
			log.Hex("address", s.machine.PC()),
			log.Hex("opcode", opcode),
			log.String("instruction", disasm.Format(opcode)),
		)
	}

	if err := s.machine.Cycle(); err != nil {
		return fmt.Errorf("executing cycle %d: %w", s.machine.Cycles()+1, err)
	}
	return nil
}

// CyclesPerFrame returns the number of instructions executed by Frame.
func (s *Session) CyclesPerFrame() int {
	return s.cyclesPerFrame
}

// SetKeys replaces the keypad state.
func (s *Session) SetKeys(keys chip8.Keypad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.SetKeys(keys)
}

// Framebuffer returns a copy of the display.
func (s *Session) Framebuffer() chip8.Framebuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Framebuffer()
}

// SoundTimer returns the sound timer value.
func (s *Session) SoundTimer() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.SoundTimer()
}

// Snapshot returns a copy of the machine state.
func (s *Session) Snapshot() chip8.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Snapshot()
}

// Cycles returns the number of executed instructions.
func (s *Session) Cycles() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Cycles()
}

// Err returns the error that halted the machine.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Err()
}

// SaveState writes the machine state to the writer.
func (s *Session) SaveState(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.machine.SaveState(w); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}
