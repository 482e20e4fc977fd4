package chip8

import "fmt"

// execute applies the instruction to the machine state. Instructions that
// can fail check their preconditions before modifying any state.
func (c *Chip8) execute(ins Instruction) error {
	vx := c.registers[ins.X]
	vy := c.registers[ins.Y]

	switch ins.Kind {
	case Cls:
		c.clearScreen()
		c.advance()

	case Ret:
		if c.sp == 0 {
			return ErrStackUnderflow
		}
		c.sp--
		c.pc = c.stack[c.sp]

	case Jp:
		c.pc = ins.Address

	case Call:
		if int(c.sp) == StackSize {
			return ErrStackOverflow
		}
		c.stack[c.sp] = wrapAddress(c.pc + opcodeSize)
		c.sp++
		c.pc = ins.Address

	case SeImm:
		c.skipIf(vx == ins.Value)
	case SneImm:
		c.skipIf(vx != ins.Value)
	case SeReg:
		c.skipIf(vx == vy)
	case SneReg:
		c.skipIf(vx != vy)

	case LdImm:
		c.registers[ins.X] = ins.Value
		c.advance()
	case AddImm:
		c.registers[ins.X] = vx + ins.Value
		c.advance()

	case LdReg:
		c.registers[ins.X] = vy
		c.advance()
	case Or:
		c.registers[ins.X] = vx | vy
		c.advance()
	case And:
		c.registers[ins.X] = vx & vy
		c.advance()
	case Xor:
		c.registers[ins.X] = vx ^ vy
		c.advance()
	case AddReg:
		c.setWithFlag(ins.X, vx+vy, uint16(vx)+uint16(vy) > 0xFF)
	case Sub:
		c.setWithFlag(ins.X, vx-vy, vx >= vy)
	case Subn:
		c.setWithFlag(ins.X, vy-vx, vy >= vx)
	case Shr:
		c.setWithFlag(ins.X, vx>>1, vx&0x01 != 0)
	case Shl:
		c.setWithFlag(ins.X, vx<<1, vx&0x80 != 0)

	case LdI:
		c.index = ins.Address
		c.advance()
	case JpV0:
		c.pc = wrapAddress(ins.Address + uint16(c.registers[0]))

	case Rnd:
		c.registers[ins.X] = byte(c.random.Intn(256)) & ins.Value
		c.advance()

	case Drw:
		collision := c.drawSprite(vx, vy, ins.N)
		c.registers[FlagRegister] = boolToFlag(collision)
		c.advance()

	case Skp:
		c.skipIf(c.inputPins[vx&0x0F])
	case Sknp:
		c.skipIf(!c.inputPins[vx&0x0F])

	case LdVxDT:
		c.registers[ins.X] = c.delayTimer
		c.advance()
	case LdVxK:
		for pin, set := range c.inputPins {
			if set {
				c.registers[ins.X] = byte(pin)
				c.advance()
				break
			}
		}
	case LdDTVx:
		c.delayTimer = vx
		c.advance()
	case LdSTVx:
		c.soundTimer = vx
		c.advance()
	case AddIVx:
		c.index += uint16(vx)
		c.advance()
	case LdFVx:
		if vx > 0xF {
			return &InvalidCharacterError{Character: vx}
		}
		c.index = FontOffset + uint16(vx)*fontCharacterSize
		c.advance()
	case LdBVx:
		c.writeMemory(0, vx/100)
		c.writeMemory(1, vx/10%10)
		c.writeMemory(2, vx%10)
		c.advance()
	case LdIVx:
		for reg := 0; reg <= int(ins.X); reg++ {
			c.writeMemory(reg, c.registers[reg])
		}
		c.advance()
	case LdVxI:
		for reg := 0; reg <= int(ins.X); reg++ {
			c.registers[reg] = c.readMemory(reg)
		}
		c.advance()

	default:
		return fmt.Errorf("unsupported instruction kind %d", ins.Kind)
	}

	return nil
}

// advance moves the program counter to the next instruction.
func (c *Chip8) advance() {
	c.pc = wrapAddress(c.pc + opcodeSize)
}

// skipIf advances to the next instruction, or skips it if the condition is true.
func (c *Chip8) skipIf(condition bool) {
	if condition {
		c.advance()
	}
	c.advance()
}

// setWithFlag stores the result in Vx and the flag in VF, the flag wins
// when Vx is VF.
func (c *Chip8) setWithFlag(x byte, result byte, flag bool) {
	c.registers[x] = result
	c.registers[FlagRegister] = boolToFlag(flag)
	c.advance()
}

// readMemory reads the byte at the index register plus offset, wrapped to the memory size.
func (c *Chip8) readMemory(offset int) byte {
	return c.memory[(int(c.index)+offset)%MemorySize]
}

// writeMemory writes the byte at the index register plus offset, wrapped to the memory size.
func (c *Chip8) writeMemory(offset int, value byte) {
	c.memory[(int(c.index)+offset)%MemorySize] = value
}

func wrapAddress(address uint16) uint16 {
	return address % MemorySize
}

func boolToFlag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
