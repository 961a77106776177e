package chip8

import "fmt"

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// MaxAddress is the highest valid memory address.
	MaxAddress = MemorySize - 1

	// ProgramStart is the address the ROM image is loaded to and where
	// execution begins.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM image that fits into memory.
	MaxROMSize = MemorySize - ProgramStart

	// FontStart is the address of the built-in font sprites.
	FontStart = 0x050

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5
)

const addressMask = MaxAddress

// fontSet contains the sprites for the hex digits 0-F, 5 rows each.
var fontSet = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Font returns a copy of the built-in font sprites.
func Font() []byte {
	font := make([]byte, len(fontSet))
	copy(font, fontSet[:])
	return font
}

// Memory is the 4KB address space of the machine.
type Memory [MemorySize]byte

// Read returns the byte at the given address, wrapping modulo MemorySize.
func (m *Memory) Read(address uint16) byte {
	return m[address&addressMask]
}

// Write sets the byte at the given address, wrapping modulo MemorySize.
func (m *Memory) Write(address uint16, value byte) {
	m[address&addressMask] = value
}

// ReadWord returns the big-endian 16 bit word at the given address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// load zeroes the memory, writes the font and copies the ROM image to
// ProgramStart. The memory is not modified if the ROM does not fit.
func (m *Memory) load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrRomTooLarge, len(rom), MaxROMSize)
	}

	*m = Memory{}
	copy(m[FontStart:], fontSet[:])
	copy(m[ProgramStart:], rom)
	return nil
}
