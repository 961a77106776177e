package chip8

// StackSize is the maximum number of nested subroutine calls.
const StackSize = 16

// Stack is the subroutine call stack holding return addresses.
type Stack struct {
	entries [StackSize]uint16
	pointer uint8
}

// Depth returns the number of return addresses on the stack.
func (s Stack) Depth() int {
	return int(s.pointer)
}

// Entries returns the return addresses currently on the stack, oldest first.
func (s Stack) Entries() []uint16 {
	entries := make([]uint16, s.pointer)
	copy(entries, s.entries[:s.pointer])
	return entries
}

func (s *Stack) push(address uint16) error {
	if s.pointer >= StackSize {
		return ErrStackOverflow
	}
	s.entries[s.pointer] = address
	s.pointer++
	return nil
}

func (s *Stack) pop() (uint16, error) {
	if s.pointer == 0 {
		return 0, ErrStackUnderflow
	}
	s.pointer--
	return s.entries[s.pointer], nil
}
