package cpu

// buildCBTable wires all 256 CB-prefixed opcodes from their regular
// bit-pattern encoding: bits 6-7 select the group (rotate/shift, BIT,
// RES, SET), bits 3-5 select the shift operation or bit index, and
// bits 0-2 select the operand register (6 = (HL)).
func buildCBTable() {
	shiftOps := []func(c *Core, v uint8) uint8{
		(*Core).rlc, (*Core).rrc, (*Core).rl, (*Core).rr,
		(*Core).sla, (*Core).sra, (*Core).swap, (*Core).srl,
	}

	for group := uint8(0); group < 4; group++ {
		for y := uint8(0); y < 8; y++ {
			for reg := uint8(0); reg < 8; reg++ {
				opcode := group<<6 | y<<3 | reg
				r := reg
				bitN := y

				cycles := 8
				if isIndirect(r) {
					cycles = 16
				}

				switch group {
				case 0:
					op := shiftOps[y]
					cbTable[opcode] = func(c *Core) int {
						c.set8(r, op(c, c.get8(r)))
						return cycles
					}
				case 1:
					readCycles := 8
					if isIndirect(r) {
						readCycles = 12
					}
					cbTable[opcode] = func(c *Core) int {
						c.bit(bitN, c.get8(r))
						return readCycles
					}
				case 2:
					cbTable[opcode] = func(c *Core) int {
						c.set8(r, c.get8(r)&^(1<<bitN))
						return cycles
					}
				default: // case 3
					cbTable[opcode] = func(c *Core) int {
						c.set8(r, c.get8(r)|(1<<bitN))
						return cycles
					}
				}
			}
		}
	}
}
