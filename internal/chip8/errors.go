package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrRomTooLarge is returned when a ROM image does not fit into memory.
	ErrRomTooLarge = errors.New("rom too large")
	// ErrIllegalOpcode is returned for instruction words that match no handler.
	ErrIllegalOpcode = errors.New("illegal opcode")
	// ErrStackOverflow is returned by a call with a full call stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a return with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// ExecError describes a fatal error that occurred while executing the
// instruction at Address.
type ExecError struct {
	Address uint16 // address the instruction was fetched from
	Opcode  uint16 // instruction word
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing $%04X at $%03X: %s", e.Opcode, e.Address, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ExecError) Unwrap() error {
	return e.Err
}
