package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup returns the instruction definition that matches the opcode.
func Lookup(opcode uint16) (*cpu.Instruction, bool) {
	nibble := (opcode & 0xF000) >> 12
	for _, op := range cpu.Opcodes[int(nibble)] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction, op.Instruction != nil
		}
	}
	return nil, false
}

// Format returns the assembly representation of an instruction word.
// Words that do not encode an instruction are returned as a .word directive.
func Format(opcode uint16) string {
	ins, err := chip8.Decode(opcode)
	if err != nil || ins.Kind == chip8.KindNop {
		return formatWord(opcode)
	}
	def, ok := Lookup(opcode)
	if !ok {
		return formatWord(opcode)
	}
	return formatInstruction(def.Name, ins, fmt.Sprintf("$%03X", ins.NNN))
}

func formatWord(opcode uint16) string {
	return fmt.Sprintf(".word $%04X", opcode)
}

// formatInstruction joins the mnemonic with the operands. The address operand
// of NNN instructions is passed in to allow label names.
func formatInstruction(name string, ins chip8.Instruction, address string) string {
	if params := operands(ins, address); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

//nolint:cyclop // one case per operand layout
func operands(ins chip8.Instruction, address string) string {
	x, y := ins.X, ins.Y

	switch ins.Kind {
	case chip8.KindJp, chip8.KindCall:
		return address
	case chip8.KindJpV0:
		return "V0, " + address
	case chip8.KindLdI:
		return "I, " + address

	case chip8.KindSeByte, chip8.KindSneByte, chip8.KindLdByte, chip8.KindAddByte, chip8.KindRnd:
		return fmt.Sprintf("%s, $%02X", x, ins.KK)

	case chip8.KindSeReg, chip8.KindSneReg, chip8.KindLdReg, chip8.KindOr, chip8.KindAnd,
		chip8.KindXor, chip8.KindAddReg, chip8.KindSub, chip8.KindSubn:
		return fmt.Sprintf("%s, %s", x, y)

	case chip8.KindShr, chip8.KindShl, chip8.KindSkp, chip8.KindSknp:
		return x.String()

	case chip8.KindDrw:
		return fmt.Sprintf("%s, %s, $%X", x, y, ins.N)

	case chip8.KindLdVxDT:
		return fmt.Sprintf("%s, DT", x)
	case chip8.KindLdVxK:
		return fmt.Sprintf("%s, K", x)
	case chip8.KindLdDTVx:
		return fmt.Sprintf("DT, %s", x)
	case chip8.KindLdSTVx:
		return fmt.Sprintf("ST, %s", x)
	case chip8.KindAddI:
		return fmt.Sprintf("I, %s", x)
	case chip8.KindLdF:
		return fmt.Sprintf("F, %s", x)
	case chip8.KindLdB:
		return fmt.Sprintf("B, %s", x)
	case chip8.KindStore:
		return fmt.Sprintf("[I], %s", x)
	case chip8.KindLoad:
		return fmt.Sprintf("%s, [I]", x)

	default: // cls, ret
		return ""
	}
}
