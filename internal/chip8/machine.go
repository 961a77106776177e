package chip8

import (
	"math/rand/v2"
	"time"
)

// RegisterCount is the number of general purpose registers.
const RegisterCount = 16

// Quirks selects behavior variants of instructions that differ between
// interpreters.
type Quirks struct {
	// MaskRandom applies the KK mask to the random byte of CXKK.
	// By default CXKK stores the unmasked random byte.
	MaskRandom bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithRandom sets the random byte source used by CXKK.
func WithRandom(source func() uint8) Option {
	return func(m *Machine) {
		m.random = source
	}
}

// WithQuirks sets the instruction behavior variants.
func WithQuirks(quirks Quirks) Option {
	return func(m *Machine) {
		m.quirks = quirks
	}
}

// SeededRandom returns a deterministic random byte source for the given seed.
// A seed of 0 seeds the source from the current time.
func SeededRandom(seed uint64) func() uint8 {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return func() uint8 {
		return uint8(rng.Uint32())
	}
}

// Machine is the complete state of a CHIP-8 virtual machine.
type Machine struct {
	memory    Memory
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16
	opcode    uint16
	stack     Stack
	timers    Timers
	keypad    Keypad
	display   Framebuffer

	rom    []byte
	random func() uint8
	quirks Quirks

	cycles uint64
	err    error // fatal execution error, set once the machine halts
}

// New returns a machine with the font and the given ROM image loaded and the
// program counter set to ProgramStart. It fails with ErrRomTooLarge if the ROM
// does not fit into memory.
func New(rom []byte, opts ...Option) (*Machine, error) {
	m := &Machine{
		rom:    append([]byte(nil), rom...),
		random: SeededRandom(0),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.Reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset restores the initial state of the machine and reloads the ROM.
func (m *Machine) Reset() error {
	var memory Memory
	if err := memory.load(m.rom); err != nil {
		return err
	}

	m.memory = memory
	m.registers = [RegisterCount]uint8{}
	m.index = 0
	m.pc = ProgramStart
	m.opcode = 0
	m.stack = Stack{}
	m.timers = Timers{}
	m.keypad = Keypad{}
	m.display = Framebuffer{}
	m.cycles = 0
	m.err = nil
	return nil
}

// Cycle executes one instruction and ticks the timers afterwards.
// A fatal error halts the machine, all following calls return the same
// *ExecError without executing anything.
func (m *Machine) Cycle() error {
	if m.err != nil {
		return m.err
	}

	address := m.pc
	m.opcode = m.memory.ReadWord(address)
	m.pc += 2

	ins, err := Decode(m.opcode)
	if err != nil {
		err = ErrIllegalOpcode
	} else {
		err = handlers[ins.Kind](m, ins)
	}
	if err != nil {
		m.err = &ExecError{
			Address: address,
			Opcode:  m.opcode,
			Err:     err,
		}
		return m.err
	}

	m.timers.tick()
	m.cycles++
	return nil
}

// Err returns the error that halted the machine, or nil while it is running.
func (m *Machine) Err() error {
	return m.err
}

// Cycles returns the number of successfully executed cycles since the last reset.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Index returns the index register I.
func (m *Machine) Index() uint16 {
	return m.index
}

// Opcode returns the instruction word fetched by the last cycle.
func (m *Machine) Opcode() uint16 {
	return m.opcode
}

// NextOpcode returns the instruction word the next cycle will execute.
func (m *Machine) NextOpcode() uint16 {
	return m.memory.ReadWord(m.pc)
}

// Register returns the value of a general purpose register.
func (m *Machine) Register(r Register) uint8 {
	return m.registers[r&0x0F]
}

// Registers returns the values of all general purpose registers.
func (m *Machine) Registers() [RegisterCount]uint8 {
	return m.registers
}

// ReadMemory returns the memory byte at the given address.
func (m *Machine) ReadMemory(address uint16) byte {
	return m.memory.Read(address)
}

// Stack returns a copy of the call stack.
func (m *Machine) Stack() Stack {
	return m.stack
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() uint8 {
	return m.timers.Delay
}

// SoundTimer returns the current sound timer value. A tone should be audible
// while it is non-zero.
func (m *Machine) SoundTimer() uint8 {
	return m.timers.Sound
}

// Framebuffer returns a copy of the display.
func (m *Machine) Framebuffer() Framebuffer {
	return m.display
}

// Keys returns the current keypad snapshot.
func (m *Machine) Keys() Keypad {
	return m.keypad
}

// SetKeys replaces the keypad snapshot. It must not be called while a cycle
// is executing.
func (m *Machine) SetKeys(keys Keypad) {
	m.keypad = keys
}

// SetKey sets the state of a single key. Only the low nibble of key is used.
func (m *Machine) SetKey(key uint8, down bool) {
	m.keypad[key&0x0F] = down
}

// store writes a byte through an instruction. Writes to the font area are
// dropped so that the font sprites stay intact.
func (m *Machine) store(address uint16, value byte) {
	address &= addressMask
	if address >= FontStart && address < FontStart+uint16(len(fontSet)) {
		return
	}
	m.memory.Write(address, value)
}
