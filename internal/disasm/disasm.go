// Package disasm implements a CHIP-8 disassembler that traces the execution
// flow of a ROM image from the program start and writes an assembly listing.
// Bytes that are not reached by the trace are output as data.
package disasm

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"
)

// offset contains the disassembly information of a single ROM byte.
type offset struct {
	ins    chip8.Instruction
	name   string // mnemonic, set for instruction start bytes
	code   bool   // first byte of an instruction
	inside bool   // second byte of an instruction

	label   string
	comment string
}

// Disasm implements a CHIP-8 disassembler.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler

	rom     []byte
	offsets []offset

	branchDestinations set.Set[uint16] // set of all addresses that are branched to
	callDestinations   set.Set[uint16]
	dataReferences     set.Set[uint16] // addresses loaded into I

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the ROM image.
func New(logger *log.Logger, rom []byte, options options.Disassembler) *Disasm {
	return &Disasm{
		logger:              logger,
		options:             options,
		rom:                 rom,
		offsets:             make([]offset, len(rom)),
		branchDestinations:  set.New[uint16](),
		callDestinations:    set.New[uint16](),
		dataReferences:      set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
}

// Process disassembles the ROM and writes the listing to the writer.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) error {
	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}
	dis.processJumpDestinations()
	dis.processDataReferences()

	if err := dis.write(w); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// followExecutionFlow parses all code paths reachable from the program start.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	dis.addAddressToParse(chip8.ProgramStart)

	for len(dis.offsetsToParse) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("tracing execution flow: %w", err)
		}

		address := dis.offsetsToParse[0]
		dis.offsetsToParse = dis.offsetsToParse[1:]
		dis.processOffset(address)
	}
	return nil
}

// processOffset decodes the instruction at the address and queues its successors.
func (dis *Disasm) processOffset(address uint16) {
	index := int(address) - chip8.ProgramStart
	if index+1 >= len(dis.rom) {
		return // a single trailing byte can not hold an instruction
	}
	if dis.offsets[index].inside || dis.offsets[index+1].code {
		return // overlaps an already parsed instruction
	}

	opcode := uint16(dis.rom[index])<<8 | uint16(dis.rom[index+1])
	ins, err := chip8.Decode(opcode)
	if err != nil || ins.Kind == chip8.KindNop {
		return // consider an unknown instruction as start of data
	}
	def, ok := Lookup(opcode)
	if !ok {
		return
	}

	dis.offsets[index] = offset{
		ins:   ins,
		name:  def.Name,
		code:  true,
		label: dis.offsets[index].label,
	}
	dis.offsets[index+1].inside = true

	next := address + 2
	switch {
	case ins.Kind == chip8.KindJp:
		dis.addBranchDestination(ins.NNN, false)

	case ins.Kind == chip8.KindCall:
		dis.addBranchDestination(ins.NNN, true)
		dis.addAddressToParse(next)

	case ins.Kind == chip8.KindRet, ins.Kind == chip8.KindJpV0:
		// return address and computed jump target are unknown

	case cpu.SkipInstructions.Contains(def.Name):
		dis.addAddressToParse(next)
		dis.addAddressToParse(next + 2)

	case ins.Kind == chip8.KindLdI:
		if dis.inROM(ins.NNN) {
			dis.dataReferences.Add(ins.NNN)
		}
		dis.addAddressToParse(next)

	default:
		dis.addAddressToParse(next)
	}
}

func (dis *Disasm) addBranchDestination(address uint16, call bool) {
	if !dis.inROM(address) {
		dis.logger.Debug("Branch target outside of ROM", log.Hex("address", address))
		return
	}

	dis.branchDestinations.Add(address)
	if call {
		dis.callDestinations.Add(address)
	}
	dis.addAddressToParse(address)
}

func (dis *Disasm) addAddressToParse(address uint16) {
	if !dis.inROM(address) || dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

func (dis *Disasm) inROM(address uint16) bool {
	return address >= chip8.ProgramStart && int(address)-chip8.ProgramStart < len(dis.rom)
}

// processJumpDestinations names all jump destinations.
func (dis *Disasm) processJumpDestinations() {
	if len(dis.offsets) > 0 {
		dis.offsets[0].label = startLabel
	}

	for _, address := range sorted(dis.branchDestinations) {
		index := int(address) - chip8.ProgramStart
		offsetInfo := &dis.offsets[index]

		// a destination inside the second byte of an instruction turns the
		// instruction into data
		if offsetInfo.inside {
			dis.handleJumpIntoInstruction(index)
		}

		if offsetInfo.label != "" {
			continue
		}
		if dis.callDestinations.Contains(address) {
			offsetInfo.label = fmt.Sprintf(funcNaming, address)
		} else {
			offsetInfo.label = fmt.Sprintf(labelNaming, address)
		}
	}
}

// handleJumpIntoInstruction converts the instruction that contains the byte at
// the index into data.
func (dis *Disasm) handleJumpIntoInstruction(index int) {
	start := &dis.offsets[index-1]
	start.comment = "branch into instruction detected: " + dis.code(start)
	start.code = false
	dis.offsets[index].inside = false

	dis.logger.Debug("Branch into instruction detected",
		log.Hex("address", index+chip8.ProgramStart))
}

// processDataReferences names the addresses that are loaded into I and do not
// have a label yet.
func (dis *Disasm) processDataReferences() {
	for _, address := range sorted(dis.dataReferences) {
		offsetInfo := &dis.offsets[int(address)-chip8.ProgramStart]
		if offsetInfo.label != "" || offsetInfo.inside {
			continue
		}
		offsetInfo.label = fmt.Sprintf(dataNaming, address)
	}
}

// code returns the assembly of the instruction, using label names for
// address operands that point to a labeled byte.
func (dis *Disasm) code(offsetInfo *offset) string {
	address := fmt.Sprintf("$%03X", offsetInfo.ins.NNN)
	if dis.inROM(offsetInfo.ins.NNN) {
		target := dis.offsets[int(offsetInfo.ins.NNN)-chip8.ProgramStart]
		if target.label != "" && !target.inside {
			address = target.label
		}
	}
	return formatInstruction(offsetInfo.name, offsetInfo.ins, address)
}

func sorted(s set.Set[uint16]) []uint16 {
	addresses := make([]uint16, 0, len(s))
	for address := range s {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)
	return addresses
}
