package cpu

// The SM83 encodes an 8-bit operand register in a 3-bit field with a
// fixed meaning: 0=B, 1=C, 2=D, 3=E, 4=H, 5=L, 6=(HL), 7=A. get8/set8
// implement that single mapping once so every instruction family that
// shares the encoding (LD r,r', the ALU grid, INC/DEC, the CB table)
// can decode its operand the same way instead of repeating a switch.

func (c *Core) get8(idx uint8) uint8 {
	switch idx {
	case 0:
		return c.Regs.B
	case 1:
		return c.Regs.C
	case 2:
		return c.Regs.D
	case 3:
		return c.Regs.E
	case 4:
		return c.Regs.H
	case 5:
		return c.Regs.L
	case 6:
		return c.Bus.Read(c.Regs.HL())
	default:
		return c.Regs.A
	}
}

func (c *Core) set8(idx uint8, v uint8) {
	switch idx {
	case 0:
		c.Regs.B = v
	case 1:
		c.Regs.C = v
	case 2:
		c.Regs.D = v
	case 3:
		c.Regs.E = v
	case 4:
		c.Regs.H = v
	case 5:
		c.Regs.L = v
	case 6:
		c.Bus.WriteU8(c.Regs.HL(), v)
	default:
		c.Regs.A = v
	}
}

// isIndirect reports whether the 3-bit register index refers to (HL),
// which several instruction families charge extra cycles for.
func isIndirect(idx uint8) bool { return idx == 6 }

// The 2-bit dd field used by LD rr,nn / INC rr / DEC rr / ADD HL,rr
// selects BC, DE, HL or SP.

func (c *Core) getPair16(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.Regs.BC()
	case 1:
		return c.Regs.DE()
	case 2:
		return c.Regs.HL()
	default:
		return c.Regs.SP
	}
}

func (c *Core) setPair16(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.Regs.SetBC(v)
	case 1:
		c.Regs.SetDE(v)
	case 2:
		c.Regs.SetHL(v)
	default:
		c.Regs.SP = v
	}
}

// The 2-bit qq field used by PUSH/POP selects BC, DE, HL or AF.

func (c *Core) getPairStack(idx uint8) uint16 {
	switch idx {
	case 0:
		return c.Regs.BC()
	case 1:
		return c.Regs.DE()
	case 2:
		return c.Regs.HL()
	default:
		return c.Regs.AF()
	}
}

func (c *Core) setPairStack(idx uint8, v uint16) {
	switch idx {
	case 0:
		c.Regs.SetBC(v)
	case 1:
		c.Regs.SetDE(v)
	case 2:
		c.Regs.SetHL(v)
	default:
		c.Regs.SetAF(v)
	}
}

// condition evaluates the 2-bit cc field used by conditional JP/JR/
// CALL/RET: 0=NZ, 1=Z, 2=NC, 3=C.
func (c *Core) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.Regs.FlagZ()
	case 1:
		return c.Regs.FlagZ()
	case 2:
		return !c.Regs.FlagC()
	default:
		return c.Regs.FlagC()
	}
}

func (c *Core) pushStack(v uint16) {
	c.Regs.SP--
	c.Bus.WriteU8(c.Regs.SP, uint8(v>>8))
	c.Regs.SP--
	c.Bus.WriteU8(c.Regs.SP, uint8(v))
}

func (c *Core) popStack() uint16 {
	low := c.Bus.Read(c.Regs.SP)
	c.Regs.SP++
	high := c.Bus.Read(c.Regs.SP)
	c.Regs.SP++
	return uint16(high)<<8 | uint16(low)
}
