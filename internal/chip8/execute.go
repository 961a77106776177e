package chip8

type handler func(m *Machine, ins Instruction) error

// handlers maps every valid instruction kind to its implementation.
var handlers = [kindCount]handler{
	KindNop:     func(*Machine, Instruction) error { return nil },
	KindCls:     (*Machine).opCls,
	KindRet:     (*Machine).opRet,
	KindJp:      (*Machine).opJp,
	KindCall:    (*Machine).opCall,
	KindSeByte:  (*Machine).opSeByte,
	KindSneByte: (*Machine).opSneByte,
	KindSeReg:   (*Machine).opSeReg,
	KindLdByte:  (*Machine).opLdByte,
	KindAddByte: (*Machine).opAddByte,
	KindLdReg:   (*Machine).opLdReg,
	KindOr:      (*Machine).opOr,
	KindAnd:     (*Machine).opAnd,
	KindXor:     (*Machine).opXor,
	KindAddReg:  (*Machine).opAddReg,
	KindSub:     (*Machine).opSub,
	KindShr:     (*Machine).opShr,
	KindSubn:    (*Machine).opSubn,
	KindShl:     (*Machine).opShl,
	KindSneReg:  (*Machine).opSneReg,
	KindLdI:     (*Machine).opLdI,
	KindJpV0:    (*Machine).opJpV0,
	KindRnd:     (*Machine).opRnd,
	KindDrw:     (*Machine).opDrw,
	KindSkp:     (*Machine).opSkp,
	KindSknp:    (*Machine).opSknp,
	KindLdVxDT:  (*Machine).opLdVxDT,
	KindLdVxK:   (*Machine).opLdVxK,
	KindLdDTVx:  (*Machine).opLdDTVx,
	KindLdSTVx:  (*Machine).opLdSTVx,
	KindAddI:    (*Machine).opAddI,
	KindLdF:     (*Machine).opLdF,
	KindLdB:     (*Machine).opLdB,
	KindStore:   (*Machine).opStore,
	KindLoad:    (*Machine).opLoad,
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

// setFlag writes VF. The ALU handlers call it before storing their result,
// so the result wins when the instruction targets VF itself.
func (m *Machine) setFlag(set bool) {
	if set {
		m.registers[VF] = 1
	} else {
		m.registers[VF] = 0
	}
}

// 00E0
func (m *Machine) opCls(Instruction) error {
	m.display.Clear()
	return nil
}

// 00EE
func (m *Machine) opRet(Instruction) error {
	address, err := m.stack.pop()
	if err != nil {
		return err
	}
	m.pc = address
	return nil
}

// 1NNN
func (m *Machine) opJp(ins Instruction) error {
	m.pc = ins.NNN
	return nil
}

// 2NNN
func (m *Machine) opCall(ins Instruction) error {
	if err := m.stack.push(m.pc); err != nil {
		return err
	}
	m.pc = ins.NNN
	return nil
}

// 3XKK
func (m *Machine) opSeByte(ins Instruction) error {
	m.skipIf(m.registers[ins.X] == ins.KK)
	return nil
}

// 4XKK
func (m *Machine) opSneByte(ins Instruction) error {
	m.skipIf(m.registers[ins.X] != ins.KK)
	return nil
}

// 5XY0
func (m *Machine) opSeReg(ins Instruction) error {
	m.skipIf(m.registers[ins.X] == m.registers[ins.Y])
	return nil
}

// 9XY0
func (m *Machine) opSneReg(ins Instruction) error {
	m.skipIf(m.registers[ins.X] != m.registers[ins.Y])
	return nil
}

// 6XKK
func (m *Machine) opLdByte(ins Instruction) error {
	m.registers[ins.X] = ins.KK
	return nil
}

// 7XKK
func (m *Machine) opAddByte(ins Instruction) error {
	m.registers[ins.X] += ins.KK
	return nil
}

// 8XY0
func (m *Machine) opLdReg(ins Instruction) error {
	m.registers[ins.X] = m.registers[ins.Y]
	return nil
}

// 8XY1
func (m *Machine) opOr(ins Instruction) error {
	m.registers[ins.X] |= m.registers[ins.Y]
	return nil
}

// 8XY2
func (m *Machine) opAnd(ins Instruction) error {
	m.registers[ins.X] &= m.registers[ins.Y]
	return nil
}

// 8XY3
func (m *Machine) opXor(ins Instruction) error {
	m.registers[ins.X] ^= m.registers[ins.Y]
	return nil
}

// 8XY4
func (m *Machine) opAddReg(ins Instruction) error {
	sum := uint16(m.registers[ins.X]) + uint16(m.registers[ins.Y])
	m.setFlag(sum > 0xFF)
	m.registers[ins.X] = uint8(sum)
	return nil
}

// 8XY5
func (m *Machine) opSub(ins Instruction) error {
	x, y := m.registers[ins.X], m.registers[ins.Y]
	m.setFlag(x > y)
	m.registers[ins.X] = x - y
	return nil
}

// 8XY7
func (m *Machine) opSubn(ins Instruction) error {
	x, y := m.registers[ins.X], m.registers[ins.Y]
	m.setFlag(y > x)
	m.registers[ins.X] = y - x
	return nil
}

// 8XY6
func (m *Machine) opShr(ins Instruction) error {
	x := m.registers[ins.X]
	m.setFlag(x&0x01 != 0)
	m.registers[ins.X] = x >> 1
	return nil
}

// 8XYE
func (m *Machine) opShl(ins Instruction) error {
	x := m.registers[ins.X]
	m.setFlag(x&0x80 != 0)
	m.registers[ins.X] = x << 1
	return nil
}

// ANNN
func (m *Machine) opLdI(ins Instruction) error {
	m.index = ins.NNN
	return nil
}

// BNNN
func (m *Machine) opJpV0(ins Instruction) error {
	m.pc = uint16(m.registers[0]) + ins.NNN
	return nil
}

// CXKK
func (m *Machine) opRnd(ins Instruction) error {
	value := m.random()
	if m.quirks.MaskRandom {
		value &= ins.KK
	}
	m.registers[ins.X] = value
	return nil
}

// DXYN
func (m *Machine) opDrw(ins Instruction) error {
	sprite := make([]byte, ins.N)
	for row := range sprite {
		sprite[row] = m.memory.Read(m.index + uint16(row))
	}

	collision := m.display.DrawSprite(m.registers[ins.X], m.registers[ins.Y], sprite)
	m.setFlag(collision)
	return nil
}

// EX9E
func (m *Machine) opSkp(ins Instruction) error {
	m.skipIf(m.keypad.Pressed(m.registers[ins.X]))
	return nil
}

// EXA1
func (m *Machine) opSknp(ins Instruction) error {
	m.skipIf(!m.keypad.Pressed(m.registers[ins.X]))
	return nil
}

// FX07
func (m *Machine) opLdVxDT(ins Instruction) error {
	m.registers[ins.X] = m.timers.Delay
	return nil
}

// FX0A
func (m *Machine) opLdVxK(ins Instruction) error {
	key, ok := m.keypad.FirstPressed()
	if !ok {
		m.pc -= 2
		return nil
	}
	m.registers[ins.X] = key
	return nil
}

// FX15
func (m *Machine) opLdDTVx(ins Instruction) error {
	m.timers.Delay = m.registers[ins.X]
	return nil
}

// FX18
func (m *Machine) opLdSTVx(ins Instruction) error {
	m.timers.Sound = m.registers[ins.X]
	return nil
}

// FX1E
func (m *Machine) opAddI(ins Instruction) error {
	m.index += uint16(m.registers[ins.X])
	return nil
}

// FX29
func (m *Machine) opLdF(ins Instruction) error {
	m.index = FontStart + GlyphSize*uint16(m.registers[ins.X])
	return nil
}

// FX33
func (m *Machine) opLdB(ins Instruction) error {
	value := m.registers[ins.X]
	m.store(m.index, value/100)
	m.store(m.index+1, value/10%10)
	m.store(m.index+2, value%10)
	return nil
}

// FX55
func (m *Machine) opStore(ins Instruction) error {
	for r := range uint16(ins.X) + 1 {
		m.store(m.index+r, m.registers[r])
	}
	return nil
}

// FX65
func (m *Machine) opLoad(ins Instruction) error {
	for r := range uint16(ins.X) + 1 {
		m.registers[r] = m.memory.Read(m.index + r)
	}
	return nil
}
