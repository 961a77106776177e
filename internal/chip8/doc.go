// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Memory Layout
//
// The machine has 4KB of memory (0x000-MaxAddress):
//   - 0x000-0x04F: unused interpreter area
//   - FontStart-0x09F: built-in hex digit sprites (16 glyphs of 5 bytes)
//   - ProgramStart-MaxAddress: ROM image and program data
//
// The display buffer, call stack, registers and timers are kept outside of
// the addressable memory.
//
// # Execution Model
//
// A driver repeatedly calls Machine.Cycle. One cycle fetches the instruction
// at PC, advances PC by 2, decodes the instruction through a two level table
// (family nibble, then a secondary selector for the 0x0, 0x8, 0xE and 0xF
// families), executes its handler and ticks the delay and sound timers.
//
// The key wait instruction FX0A does not block, it rewinds PC so that the same
// instruction executes again on the next cycle until a key is down. The driver
// refreshes the keypad snapshot between cycles.
//
// # Errors
//
// Fatal conditions are returned as errors instead of terminating the process:
//   - ErrRomTooLarge from New
//   - ErrIllegalOpcode, ErrStackOverflow and ErrStackUnderflow from Cycle,
//     wrapped in an *ExecError carrying the address and instruction word
//
// After a fatal execution error the machine is halted and every further
// Cycle call returns the same error.
//
// # Address Wrapping
//
// All memory accesses, including instruction fetches and accesses through the
// index register I, wrap modulo 4096. The index register itself is stored
// unmasked as a 16 bit value.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. Callers that drive it from
// multiple goroutines need to serialize Cycle calls and keypad writes.
package chip8
