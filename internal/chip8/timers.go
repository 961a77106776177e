package chip8

// Timers holds the delay and sound countdown timers.
type Timers struct {
	Delay uint8
	Sound uint8
}

// tick decrements both timers by one, stopping at zero.
func (t *Timers) tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}
