package cpu

// baseTable maps each of the 256 base opcodes to a handler that
// executes the instruction (including any operand fetches) and returns
// the number of T-cycles it took. Apart from 0xCB, the prefix byte that
// execute() handles before consulting this table, a nil entry is one of
// the eleven opcodes the SM83 never defines; execute() traps those as
// IllegalInstruction.
var baseTable [256]func(c *Core) int

// cbTable maps each of the 256 CB-prefixed opcodes the same way.
var cbTable [256]func(c *Core) int

func init() {
	baseTable[0x00] = opNop
	baseTable[0x10] = opStop
	baseTable[0x76] = opHalt

	buildLoadGrid()
	buildImmediateLoads()
	buildALUGrid()
	buildALUImmediates()
	buildIncDec8()
	build16BitGroup()
	buildIndirectLoads()
	buildJumpsAndCalls()
	buildStackOps()
	buildRotatesOnA()
	buildMiscControl()

	buildCBTable()
}

func opNop(c *Core) int { return 4 }

// STOP is treated as a no-op at the core level; entering a genuine
// low-power state is outside the core's scope.
func opStop(c *Core) int { return 4 }

// HALT either parks the CPU until an interrupt wakes it, or, if IME is
// false and an interrupt is already pending, triggers the documented
// HALT bug instead of halting at all.
func opHalt(c *Core) int {
	if !c.Regs.IME && c.Interrupts.AnyPending() {
		c.logger.Debug("halt bug triggered", "pc", c.Regs.PC)
		c.haltBug = true
	} else {
		c.logger.Debug("cpu halted", "pc", c.Regs.PC)
		c.Regs.Halted = true
	}
	return 4
}

// buildLoadGrid wires the 0x40-0x7F LD r,r' block (minus 0x76, HALT).
func buildLoadGrid() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			d, s := dst, src
			cycles := 4
			if isIndirect(d) || isIndirect(s) {
				cycles = 8
			}
			baseTable[opcode] = func(c *Core) int {
				c.set8(d, c.get8(s))
				return cycles
			}
		}
	}
}

// buildImmediateLoads wires LD r,n for all eight destinations.
func buildImmediateLoads() {
	for dst := uint8(0); dst < 8; dst++ {
		opcode := 0x06 + dst*8
		d := dst
		cycles := 8
		if isIndirect(d) {
			cycles = 12
		}
		baseTable[opcode] = func(c *Core) int {
			n := c.fetch8()
			c.set8(d, n)
			return cycles
		}
	}
}

// buildALUGrid wires the 0x80-0xBF ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r block.
func buildALUGrid() {
	ops := []func(c *Core, v uint8){
		(*Core).add, (*Core).adc, (*Core).sub, (*Core).sbc,
		(*Core).and, (*Core).xor, (*Core).or, (*Core).cp,
	}
	for opIdx := uint8(0); opIdx < 8; opIdx++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 + opIdx*8 + src
			op := ops[opIdx]
			s := src
			cycles := 4
			if isIndirect(s) {
				cycles = 8
			}
			baseTable[opcode] = func(c *Core) int {
				op(c, c.get8(s))
				return cycles
			}
		}
	}
}

// buildALUImmediates wires the immediate-operand forms: ADD A,n ... CP A,n.
func buildALUImmediates() {
	opcodes := [8]uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	ops := []func(c *Core, v uint8){
		(*Core).add, (*Core).adc, (*Core).sub, (*Core).sbc,
		(*Core).and, (*Core).xor, (*Core).or, (*Core).cp,
	}
	for i, opcode := range opcodes {
		op := ops[i]
		baseTable[opcode] = func(c *Core) int {
			n := c.fetch8()
			op(c, n)
			return 8
		}
	}
}

// buildIncDec8 wires INC r / DEC r for all eight targets.
func buildIncDec8() {
	for idx := uint8(0); idx < 8; idx++ {
		i := idx
		cycles := 4
		if isIndirect(i) {
			cycles = 12
		}

		incOpcode := 0x04 + i*8
		baseTable[incOpcode] = func(c *Core) int {
			c.set8(i, c.inc8(c.get8(i)))
			return cycles
		}

		decOpcode := 0x05 + i*8
		baseTable[decOpcode] = func(c *Core) int {
			c.set8(i, c.dec8(c.get8(i)))
			return cycles
		}
	}
}

// build16BitGroup wires LD rr,nn / INC rr / DEC rr / ADD HL,rr.
func build16BitGroup() {
	for idx := uint8(0); idx < 4; idx++ {
		i := idx

		ldOpcode := 0x01 + i*0x10
		baseTable[ldOpcode] = func(c *Core) int {
			c.setPair16(i, c.fetch16())
			return 12
		}

		incOpcode := 0x03 + i*0x10
		baseTable[incOpcode] = func(c *Core) int {
			c.setPair16(i, c.getPair16(i)+1)
			return 8
		}

		decOpcode := 0x0B + i*0x10
		baseTable[decOpcode] = func(c *Core) int {
			c.setPair16(i, c.getPair16(i)-1)
			return 8
		}

		addOpcode := 0x09 + i*0x10
		baseTable[addOpcode] = func(c *Core) int {
			c.addHL(c.getPair16(i))
			return 8
		}
	}
}

// buildIndirectLoads wires the (BC)/(DE)/(HL+)/(HL-) <-> A forms and
// LD (nn),SP.
func buildIndirectLoads() {
	baseTable[0x02] = func(c *Core) int { c.Bus.WriteU8(c.Regs.BC(), c.Regs.A); return 8 }
	baseTable[0x12] = func(c *Core) int { c.Bus.WriteU8(c.Regs.DE(), c.Regs.A); return 8 }
	baseTable[0x0A] = func(c *Core) int { c.Regs.A = c.Bus.Read(c.Regs.BC()); return 8 }
	baseTable[0x1A] = func(c *Core) int { c.Regs.A = c.Bus.Read(c.Regs.DE()); return 8 }

	baseTable[0x22] = func(c *Core) int {
		hl := c.Regs.HL()
		c.Bus.WriteU8(hl, c.Regs.A)
		c.Regs.SetHL(hl + 1)
		return 8
	}
	baseTable[0x32] = func(c *Core) int {
		hl := c.Regs.HL()
		c.Bus.WriteU8(hl, c.Regs.A)
		c.Regs.SetHL(hl - 1)
		return 8
	}
	baseTable[0x2A] = func(c *Core) int {
		hl := c.Regs.HL()
		c.Regs.A = c.Bus.Read(hl)
		c.Regs.SetHL(hl + 1)
		return 8
	}
	baseTable[0x3A] = func(c *Core) int {
		hl := c.Regs.HL()
		c.Regs.A = c.Bus.Read(hl)
		c.Regs.SetHL(hl - 1)
		return 8
	}

	baseTable[0x08] = func(c *Core) int {
		addr := c.fetch16()
		c.Bus.WriteU16(addr, c.Regs.SP)
		return 20
	}

	baseTable[0xEA] = func(c *Core) int { c.Bus.WriteU8(c.fetch16(), c.Regs.A); return 16 }
	baseTable[0xFA] = func(c *Core) int { c.Regs.A = c.Bus.Read(c.fetch16()); return 16 }

	baseTable[0xE0] = func(c *Core) int {
		offset := c.fetch8()
		c.Bus.WriteU8(0xFF00+uint16(offset), c.Regs.A)
		return 12
	}
	baseTable[0xF0] = func(c *Core) int {
		offset := c.fetch8()
		c.Regs.A = c.Bus.Read(0xFF00 + uint16(offset))
		return 12
	}
	baseTable[0xE2] = func(c *Core) int { c.Bus.WriteU8(0xFF00+uint16(c.Regs.C), c.Regs.A); return 8 }
	baseTable[0xF2] = func(c *Core) int { c.Regs.A = c.Bus.Read(0xFF00 + uint16(c.Regs.C)); return 8 }

	baseTable[0xE8] = func(c *Core) int {
		offset := c.fetchSigned8()
		c.Regs.SP = c.addSPSigned(offset)
		return 16
	}
	baseTable[0xF8] = func(c *Core) int {
		offset := c.fetchSigned8()
		c.Regs.SetHL(c.addSPSigned(offset))
		return 12
	}
	baseTable[0xF9] = func(c *Core) int { c.Regs.SP = c.Regs.HL(); return 8 }
}

// buildJumpsAndCalls wires JP/JR/CALL/RET/RETI/RST.
func buildJumpsAndCalls() {
	baseTable[0x18] = func(c *Core) int {
		offset := c.fetchSigned8()
		c.Regs.PC = uint16(int32(c.Regs.PC) + int32(offset))
		return 12
	}
	for cc := uint8(0); cc < 4; cc++ {
		condCode := cc
		opcode := 0x20 + condCode*8
		baseTable[opcode] = func(c *Core) int {
			offset := c.fetchSigned8()
			if !c.condition(condCode) {
				return 8
			}
			c.Regs.PC = uint16(int32(c.Regs.PC) + int32(offset))
			return 12
		}
	}

	baseTable[0xC3] = func(c *Core) int { c.Regs.PC = c.fetch16(); return 16 }
	for cc := uint8(0); cc < 4; cc++ {
		condCode := cc
		opcode := 0xC2 + condCode*8
		baseTable[opcode] = func(c *Core) int {
			target := c.fetch16()
			if !c.condition(condCode) {
				return 12
			}
			c.Regs.PC = target
			return 16
		}
	}
	baseTable[0xE9] = func(c *Core) int { c.Regs.PC = c.Regs.HL(); return 4 }

	baseTable[0xCD] = func(c *Core) int {
		target := c.fetch16()
		c.pushStack(c.Regs.PC)
		c.Regs.PC = target
		return 24
	}
	for cc := uint8(0); cc < 4; cc++ {
		condCode := cc
		opcode := 0xC4 + condCode*8
		baseTable[opcode] = func(c *Core) int {
			target := c.fetch16()
			if !c.condition(condCode) {
				return 12
			}
			c.pushStack(c.Regs.PC)
			c.Regs.PC = target
			return 24
		}
	}

	baseTable[0xC9] = func(c *Core) int { c.Regs.PC = c.popStack(); return 16 }
	for cc := uint8(0); cc < 4; cc++ {
		condCode := cc
		opcode := 0xC0 + condCode*8
		baseTable[opcode] = func(c *Core) int {
			if !c.condition(condCode) {
				return 8
			}
			c.Regs.PC = c.popStack()
			return 20
		}
	}
	baseTable[0xD9] = func(c *Core) int {
		c.Regs.PC = c.popStack()
		c.Regs.IME = true
		return 16
	}

	for idx := uint8(0); idx < 8; idx++ {
		i := idx
		opcode := 0xC7 + i*8
		baseTable[opcode] = func(c *Core) int {
			c.pushStack(c.Regs.PC)
			c.Regs.PC = uint16(i) * 8
			return 16
		}
	}
}

// buildStackOps wires PUSH rr / POP rr.
func buildStackOps() {
	for idx := uint8(0); idx < 4; idx++ {
		i := idx

		pushOpcode := 0xC5 + i*0x10
		baseTable[pushOpcode] = func(c *Core) int {
			c.pushStack(c.getPairStack(i))
			return 16
		}

		popOpcode := 0xC1 + i*0x10
		baseTable[popOpcode] = func(c *Core) int {
			c.setPairStack(i, c.popStack())
			return 12
		}
	}
}

// buildRotatesOnA wires RLCA/RRCA/RLA/RRA, which always clear Z unlike
// their CB-prefixed counterparts operating on arbitrary registers.
func buildRotatesOnA() {
	baseTable[0x07] = func(c *Core) int {
		c.Regs.A = c.rlc(c.Regs.A)
		c.Regs.SetFlagZ(false)
		return 4
	}
	baseTable[0x0F] = func(c *Core) int {
		c.Regs.A = c.rrc(c.Regs.A)
		c.Regs.SetFlagZ(false)
		return 4
	}
	baseTable[0x17] = func(c *Core) int {
		c.Regs.A = c.rl(c.Regs.A)
		c.Regs.SetFlagZ(false)
		return 4
	}
	baseTable[0x1F] = func(c *Core) int {
		c.Regs.A = c.rr(c.Regs.A)
		c.Regs.SetFlagZ(false)
		return 4
	}
}

// buildMiscControl wires DAA/CPL/SCF/CCF/DI/EI.
func buildMiscControl() {
	baseTable[0x27] = func(c *Core) int { c.daa(); return 4 }
	baseTable[0x2F] = func(c *Core) int {
		c.Regs.A = ^c.Regs.A
		c.Regs.SetFlagN(true)
		c.Regs.SetFlagH(true)
		return 4
	}
	baseTable[0x37] = func(c *Core) int {
		c.Regs.SetFlagC(true)
		c.Regs.SetFlagN(false)
		c.Regs.SetFlagH(false)
		return 4
	}
	baseTable[0x3F] = func(c *Core) int {
		c.Regs.SetFlagC(!c.Regs.FlagC())
		c.Regs.SetFlagN(false)
		c.Regs.SetFlagH(false)
		return 4
	}

	baseTable[0xF3] = func(c *Core) int {
		c.Regs.IME = false
		c.imePending = false
		return 4
	}
	baseTable[0xFB] = func(c *Core) int {
		c.imePending = true
		return 4
	}
}
