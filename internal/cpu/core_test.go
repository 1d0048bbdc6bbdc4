package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkrause/dmgboy/internal/addr"
	"github.com/mkrause/dmgboy/internal/bus"
)

// newTestCore builds a core with a zeroed register file (no post-boot
// seeding) and PC set to 0x0100, so scenarios can place a program at
// the cartridge entry point without fighting seeded register values.
func newTestCore() *Core {
	var b *bus.Bus
	b = bus.New(func(i addr.Interrupt) {
		flags := b.Read(addr.IF)
		b.WriteU8(addr.IF, flags|(1<<i.Bit()))
	})
	core := New(b)
	core.Regs.PC = 0x0100
	return core
}

func TestAddAC(t *testing.T) {
	c := newTestCore()
	c.Regs.A = 0x3A
	c.Regs.C = 0x0F
	c.Bus.WriteU8(0x0100, 0x81) // ADD A,C

	assert.NoError(t, c.Step())

	assert.Equal(t, uint8(0x49), c.Regs.A)
	assert.False(t, c.Regs.FlagZ())
	assert.False(t, c.Regs.FlagN())
	assert.True(t, c.Regs.FlagH())
	assert.False(t, c.Regs.FlagC())
}

func TestXorASelf(t *testing.T) {
	c := newTestCore()
	c.Regs.A = 0x00
	c.Bus.WriteU8(0x0100, 0xAF) // XOR A,A

	assert.NoError(t, c.Step())

	assert.Equal(t, uint8(0), c.Regs.A)
	assert.True(t, c.Regs.FlagZ())
	assert.False(t, c.Regs.FlagN())
	assert.False(t, c.Regs.FlagH())
	assert.False(t, c.Regs.FlagC())
}

func TestPushPopBC(t *testing.T) {
	c := newTestCore()
	c.Regs.SP = 0xFFFE
	c.Regs.SetBC(0x1234)
	c.Bus.WriteU8(0x0100, 0xC5) // PUSH BC
	c.Bus.WriteU8(0x0101, 0xC1) // POP BC

	assert.NoError(t, c.Step())
	assert.NoError(t, c.Step())

	assert.Equal(t, uint16(0x1234), c.Regs.BC())
	assert.Equal(t, uint16(0xFFFE), c.Regs.SP)
	assert.Equal(t, uint8(0x34), c.Bus.Read(0xFFFC))
	assert.Equal(t, uint8(0x12), c.Bus.Read(0xFFFD))
}

func TestJRNegativeTwoSelfLoop(t *testing.T) {
	c := newTestCore()
	c.Bus.WriteU8(0x0100, 0x18) // JR -2
	c.Bus.WriteU8(0x0101, 0xFE)

	assert.NoError(t, c.Step())

	assert.Equal(t, uint16(0x0100), c.Regs.PC, "JR -2 must loop back to itself")
}

func TestCallThenRetRestoresPCAndSP(t *testing.T) {
	c := newTestCore()
	c.Regs.SP = 0xFFFE
	c.Bus.WriteU8(0x0100, 0xCD) // CALL 0x0200
	c.Bus.WriteU8(0x0101, 0x00)
	c.Bus.WriteU8(0x0102, 0x02)
	c.Bus.WriteU8(0x0200, 0xC9) // RET

	assert.NoError(t, c.Step()) // CALL
	assert.Equal(t, uint16(0x0200), c.Regs.PC)

	assert.NoError(t, c.Step()) // RET
	assert.Equal(t, uint16(0x0103), c.Regs.PC)
	assert.Equal(t, uint16(0xFFFE), c.Regs.SP)
}

func TestDiEiReti(t *testing.T) {
	c := newTestCore()
	c.Regs.IME = true
	c.Bus.WriteU8(0x0100, 0xF3) // DI
	assert.NoError(t, c.Step())
	assert.False(t, c.Regs.IME, "expected IME false after DI")

	c.Bus.WriteU8(0x0101, 0xFB) // EI
	c.Bus.WriteU8(0x0102, 0x00) // NOP (the delayed instruction)
	assert.NoError(t, c.Step())
	assert.False(t, c.Regs.IME, "EI must not take effect until after the following instruction")

	assert.NoError(t, c.Step()) // NOP; IME becomes true at the start of this step
	assert.True(t, c.Regs.IME, "expected IME true after the instruction following EI")

	c.Regs.SP = 0xFFFE
	c.pushStack(0x1234)
	c.Bus.WriteU8(0x0103, 0xD9) // RETI
	assert.NoError(t, c.Step())
	assert.True(t, c.Regs.IME, "expected IME true after RETI")
	assert.Equal(t, uint16(0x1234), c.Regs.PC)
}

func TestHandleInterruptsDispatch(t *testing.T) {
	c := newTestCore()
	c.Regs.IME = true
	c.Regs.PC = 0x0200
	c.Regs.SP = 0xFFFE
	c.Bus.WriteU8(addr.IE, 1<<addr.Timer.Bit())
	c.Interrupts.SetInterrupt(addr.Timer)

	dispatched := c.Interrupts.HandleInterrupts()

	assert.True(t, dispatched, "expected an interrupt to dispatch")
	assert.False(t, c.Regs.IME, "expected IME false after dispatch")
	assert.Zero(t, c.Bus.Read(addr.IF)&(1<<addr.Timer.Bit()), "expected TIMER IF bit cleared")
	assert.Equal(t, uint16(0x0050), c.Regs.PC)
	assert.Equal(t, uint16(0xFFFC), c.Regs.SP)
	assert.Equal(t, uint8(0x00), c.Bus.Read(0xFFFC))
	assert.Equal(t, uint8(0x02), c.Bus.Read(0xFFFD))
}

func TestHaltBugReexecutesFollowingByte(t *testing.T) {
	c := newTestCore()
	c.Regs.IME = false
	c.Bus.WriteU8(addr.IE, 1<<addr.VBlank.Bit())
	c.Interrupts.SetInterrupt(addr.VBlank) // pending before HALT runs

	c.Bus.WriteU8(0x0100, 0x76) // HALT
	c.Bus.WriteU8(0x0101, 0x3C) // INC A

	assert.NoError(t, c.Step()) // HALT: bug triggers, does not actually halt
	assert.False(t, c.Regs.Halted, "HALT bug means the CPU must not actually halt")

	assert.NoError(t, c.Step()) // first read of INC A: A=1, PC doesn't advance
	assert.Equal(t, uint8(1), c.Regs.A)

	assert.NoError(t, c.Step()) // the same byte is fetched again
	assert.Equal(t, uint8(2), c.Regs.A, "HALT bug must re-execute the following byte")
}

func TestIllegalOpcodeTraps(t *testing.T) {
	c := newTestCore()
	c.Bus.WriteU8(0x0100, 0xD3)

	err := c.Step()
	assert.Error(t, err)
	assert.IsType(t, &IllegalInstruction{}, err)
}
