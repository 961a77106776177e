package chip8

import "fmt"

// Kind identifies one of the CHIP-8 instruction forms.
type Kind uint8

// Instruction kinds, named after their encoding.
const (
	KindInvalid Kind = iota
	KindNop          // 0000
	KindCls          // 00E0
	KindRet          // 00EE
	KindJp           // 1NNN
	KindCall         // 2NNN
	KindSeByte       // 3XKK
	KindSneByte      // 4XKK
	KindSeReg        // 5XY0
	KindLdByte       // 6XKK
	KindAddByte      // 7XKK
	KindLdReg        // 8XY0
	KindOr           // 8XY1
	KindAnd          // 8XY2
	KindXor          // 8XY3
	KindAddReg       // 8XY4
	KindSub          // 8XY5
	KindShr          // 8XY6
	KindSubn         // 8XY7
	KindShl          // 8XYE
	KindSneReg       // 9XY0
	KindLdI          // ANNN
	KindJpV0         // BNNN
	KindRnd          // CXKK
	KindDrw          // DXYN
	KindSkp          // EX9E
	KindSknp         // EXA1
	KindLdVxDT       // FX07
	KindLdVxK        // FX0A
	KindLdDTVx       // FX15
	KindLdSTVx       // FX18
	KindAddI         // FX1E
	KindLdF          // FX29
	KindLdB          // FX33
	KindStore        // FX55
	KindLoad         // FX65

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid: "invalid",
	KindNop:     "0000",
	KindCls:     "00E0",
	KindRet:     "00EE",
	KindJp:      "1NNN",
	KindCall:    "2NNN",
	KindSeByte:  "3XKK",
	KindSneByte: "4XKK",
	KindSeReg:   "5XY0",
	KindLdByte:  "6XKK",
	KindAddByte: "7XKK",
	KindLdReg:   "8XY0",
	KindOr:      "8XY1",
	KindAnd:     "8XY2",
	KindXor:     "8XY3",
	KindAddReg:  "8XY4",
	KindSub:     "8XY5",
	KindShr:     "8XY6",
	KindSubn:    "8XY7",
	KindShl:     "8XYE",
	KindSneReg:  "9XY0",
	KindLdI:     "ANNN",
	KindJpV0:    "BNNN",
	KindRnd:     "CXKK",
	KindDrw:     "DXYN",
	KindSkp:     "EX9E",
	KindSknp:    "EXA1",
	KindLdVxDT:  "FX07",
	KindLdVxK:   "FX0A",
	KindLdDTVx:  "FX15",
	KindLdSTVx:  "FX18",
	KindAddI:    "FX1E",
	KindLdF:     "FX29",
	KindLdB:     "FX33",
	KindStore:   "FX55",
	KindLoad:    "FX65",
}

// String returns the encoding pattern of the instruction kind, for example 8XY4.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Register is the index of a general purpose register V0-VF.
type Register uint8

// VF is the flag register.
const VF Register = 0xF

// String returns the register name, for example VA.
func (r Register) String() string {
	return fmt.Sprintf("V%X", uint8(r))
}

// Instruction is a decoded CHIP-8 instruction word.
type Instruction struct {
	Kind   Kind
	Opcode uint16

	X   Register // bits 8-11
	Y   Register // bits 4-7
	N   uint8    // bits 0-3
	KK  uint8    // bits 0-7
	NNN uint16   // bits 0-11
}

// primaryKinds maps the families that have a single instruction form.
// The families 0x0, 0x8, 0xE and 0xF are resolved through secondaryKinds.
var primaryKinds = [16]Kind{
	0x1: KindJp,
	0x2: KindCall,
	0x3: KindSeByte,
	0x4: KindSneByte,
	0x5: KindSeReg,
	0x6: KindLdByte,
	0x7: KindAddByte,
	0x9: KindSneReg,
	0xA: KindLdI,
	0xB: KindJpV0,
	0xC: KindRnd,
	0xD: KindDrw,
}

type secondaryTable struct {
	selector func(opcode uint16) uint16
	kinds    map[uint16]Kind
}

func lowByte(opcode uint16) uint16   { return opcode & 0x00FF }
func lowNibble(opcode uint16) uint16 { return opcode & 0x000F }

var secondaryKinds = [16]*secondaryTable{
	0x0: {
		selector: lowByte,
		kinds: map[uint16]Kind{
			0x00: KindNop,
			0xE0: KindCls,
			0xEE: KindRet,
		},
	},
	0x8: {
		selector: lowNibble,
		kinds: map[uint16]Kind{
			0x0: KindLdReg,
			0x1: KindOr,
			0x2: KindAnd,
			0x3: KindXor,
			0x4: KindAddReg,
			0x5: KindSub,
			0x6: KindShr,
			0x7: KindSubn,
			0xE: KindShl,
		},
	},
	0xE: {
		selector: lowByte,
		kinds: map[uint16]Kind{
			0x9E: KindSkp,
			0xA1: KindSknp,
		},
	},
	0xF: {
		selector: lowByte,
		kinds: map[uint16]Kind{
			0x07: KindLdVxDT,
			0x0A: KindLdVxK,
			0x15: KindLdDTVx,
			0x18: KindLdSTVx,
			0x1E: KindAddI,
			0x29: KindLdF,
			0x33: KindLdB,
			0x55: KindStore,
			0x65: KindLoad,
		},
	},
}

// Decode classifies an instruction word and extracts its operands.
// Words that match no instruction form return ErrIllegalOpcode, the word
// 0x0000 decodes to the no-op KindNop.
func Decode(opcode uint16) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      Register((opcode & 0x0F00) >> 8),
		Y:      Register((opcode & 0x00F0) >> 4),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}

	family := opcode >> 12
	ins.Kind = primaryKinds[family]
	if table := secondaryKinds[family]; table != nil {
		ins.Kind = table.kinds[table.selector(opcode)]
	}

	if ins.Kind == KindInvalid {
		return ins, fmt.Errorf("%w: $%04X", ErrIllegalOpcode, opcode)
	}
	return ins, nil
}
