package chip8

// KeyCount is the number of keys of the hex keypad.
const KeyCount = 16

// Keypad is a snapshot of the hex keypad, indexed by key value 0x0-0xF.
// True means the key is down.
type Keypad [KeyCount]bool

// Pressed returns whether the given key is down. Only the low nibble of the
// key value is used.
func (k *Keypad) Pressed(key uint8) bool {
	return k[key&0x0F]
}

// FirstPressed returns the lowest key value that is down.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for key, down := range k {
		if down {
			return uint8(key), true
		}
	}
	return 0, false
}
