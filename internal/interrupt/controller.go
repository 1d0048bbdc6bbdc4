// Package interrupt implements the DMG interrupt controller: the IF/IE
// latches, fixed-priority arbitration among the five interrupt
// sources, and the dispatch handshake that pushes PC and jumps to the
// serviced source's vector.
package interrupt

import (
	"github.com/mkrause/dmgboy/internal/addr"
	"github.com/mkrause/dmgboy/internal/bus"
	"github.com/mkrause/dmgboy/internal/register"
)

// dispatchCycles is the T-cycle cost of servicing an interrupt: two
// internal delay cycles, a two-byte stack push, and the jump to the
// vector. Charged through the bus's timer so the timer observes it
// like any other elapsed time.
const dispatchCycles = 20

// Controller coordinates the IF/IE latches against the register file's
// IME/HALT state and a bus to read/write those latches and the stack.
type Controller struct {
	bus  *bus.Bus
	regs *register.File
}

// New creates a controller wired to the given bus and register file.
func New(b *bus.Bus, regs *register.File) *Controller {
	return &Controller{bus: b, regs: regs}
}

// SetInterrupt sets the IF bit for the given source.
func (c *Controller) SetInterrupt(i addr.Interrupt) {
	flags := c.bus.Read(addr.IF)
	c.bus.WriteU8(addr.IF, flags|(1<<i.Bit()))
}

// ResetInterrupt clears the IF bit for the given source.
func (c *Controller) ResetInterrupt(i addr.Interrupt) {
	flags := c.bus.Read(addr.IF)
	c.bus.WriteU8(addr.IF, flags&^(1<<i.Bit()))
}

// pendingMask returns the bits set in both IE and IF, masked to the
// five real interrupt sources.
func (c *Controller) pendingMask() uint8 {
	ie := c.bus.Read(addr.IE)
	iflags := c.bus.Read(addr.IF)
	return ie & iflags & 0x1F
}

// AnyPending reports whether any enabled interrupt is flagged,
// regardless of IME. This is what wakes a halted CPU.
func (c *Controller) AnyPending() bool {
	return c.pendingMask() != 0
}

// HandleInterrupts runs the dispatch handshake. If IME is set and an
// interrupt is pending, it services the highest-priority one: clears
// IME and the source's IF bit, pushes PC, jumps to the vector, and
// charges the fixed dispatch cost. It un-halts the CPU whenever an
// interrupt is pending, whether or not IME permits dispatch. It
// returns true iff an interrupt was actually dispatched.
func (c *Controller) HandleInterrupts() bool {
	pending := c.pendingMask()

	if c.regs.Halted && pending != 0 {
		c.regs.Halted = false
	}

	if !c.regs.IME || pending == 0 {
		return false
	}

	var source addr.Interrupt
	for bitPos := uint8(0); bitPos < 5; bitPos++ {
		if pending&(1<<bitPos) != 0 {
			source = addr.Interrupt(bitPos)
			break
		}
	}

	c.regs.IME = false
	c.ResetInterrupt(source)

	c.regs.SP -= 2
	c.bus.WriteU16(c.regs.SP, c.regs.PC)
	c.regs.PC = source.VectorAddress()

	c.bus.Tick(dispatchCycles)

	return true
}
