package chip8

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Snapshot is a serializable copy of the complete machine state.
type Snapshot struct {
	Memory       Memory
	Registers    [RegisterCount]uint8
	Index        uint16
	PC           uint16
	Opcode       uint16
	Stack        [StackSize]uint16
	StackPointer uint8
	Timers       Timers
	Keypad       Keypad
	Display      Framebuffer
	Cycles       uint64
}

// Snapshot returns a copy of the current machine state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Memory:       m.memory,
		Registers:    m.registers,
		Index:        m.index,
		PC:           m.pc,
		Opcode:       m.opcode,
		Stack:        m.stack.entries,
		StackPointer: m.stack.pointer,
		Timers:       m.timers,
		Keypad:       m.keypad,
		Display:      m.display,
		Cycles:       m.cycles,
	}
}

// Restore replaces the machine state with the snapshot and clears a halt
// error. The font area is rewritten from the built-in font.
func (m *Machine) Restore(snap Snapshot) error {
	if snap.StackPointer > StackSize {
		return fmt.Errorf("%w: stack pointer %d", ErrStackOverflow, snap.StackPointer)
	}

	m.memory = snap.Memory
	copy(m.memory[FontStart:], fontSet[:])
	m.registers = snap.Registers
	m.index = snap.Index
	m.pc = snap.PC
	m.opcode = snap.Opcode
	m.stack = Stack{entries: snap.Stack, pointer: snap.StackPointer}
	m.timers = snap.Timers
	m.keypad = snap.Keypad
	m.display = snap.Display
	m.cycles = snap.Cycles
	m.err = nil
	return nil
}

// SaveState writes the machine state to w.
func (m *Machine) SaveState(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(m.Snapshot()); err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return nil
}

// LoadState reads a machine state written by SaveState from r.
func (m *Machine) LoadState(r io.Reader) error {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("decoding state: %w", err)
	}
	return m.Restore(snap)
}
