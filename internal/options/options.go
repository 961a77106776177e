// Package options contains the program options.
package options

import (
	"github.com/retroenv/retrogolib/arch"
)

// Default values of the numeric flags.
const (
	DefaultFrontend       = "desktop"
	DefaultCyclesPerFrame = 10
	DefaultMaxCycles      = 1000
	DefaultScale          = 10
)

// Parameters contains file path options.
type Parameters struct {
	Input      string
	Disasm     string
	Screenshot string
	SaveState  string
	LoadState  string
}

// Flags contains behavior options.
type Flags struct {
	System         string
	Frontend       string
	CyclesPerFrame int
	MaxCycles      uint64
	Scale          int
	Seed           uint64
	MaskRandom     bool
	Trace          bool
	Dump           bool
	Debug          bool
	Quiet          bool
}

// OutputFlags contains disassembly listing options.
type OutputFlags struct {
	NoHexComments bool
	NoOffsets     bool
	DumpMemory    bool
	ZeroBytes     bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Disassembler defines options to control the disassembly listing.
type Disassembler struct {
	System arch.System // system type

	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool
}

// NewDisassembler returns the listing options for the given program options.
func NewDisassembler(opts Program) Disassembler {
	return Disassembler{
		System: arch.System(opts.System),

		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
		ZeroBytes:      opts.ZeroBytes,
	}
}
