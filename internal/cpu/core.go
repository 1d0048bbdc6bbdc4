// Package cpu implements the SM83 instruction engine: the fetch-decode-
// execute loop, all 256 base opcodes plus the 256 CB-prefixed opcodes,
// and the HALT/EI interrupt-handshake edge cases that sit between the
// instruction engine and the interrupt controller.
package cpu

import (
	"log/slog"

	"github.com/mkrause/dmgboy/internal/bus"
	"github.com/mkrause/dmgboy/internal/interrupt"
	"github.com/mkrause/dmgboy/internal/register"
)

// Core bundles the register file, bus and interrupt controller into the
// single owning value instruction semantics operate on. Every opcode
// handler takes a *Core and mutates it directly rather than threading
// the register file and bus as separate parameters.
type Core struct {
	Regs       *register.File
	Bus        *bus.Bus
	Interrupts *interrupt.Controller

	// imePending implements EI's one-instruction delay: EI sets this
	// instead of IME directly, and IME is set true at the start of the
	// next Step, so no interrupt is dispatched until the instruction
	// following EI has finished executing.
	imePending bool

	// haltBug reproduces the documented HALT bug: if HALT executes
	// while IME is false and an interrupt is already pending, the CPU
	// does not actually halt, and the byte after HALT is fetched
	// without PC advancing, causing it to be executed twice.
	haltBug bool

	logger *slog.Logger
}

// New creates a core wired to the given bus, with a fresh register file
// and interrupt controller. PC is left at zero; callers should call
// Reset to bring the register file to its post-boot-ROM state.
func New(b *bus.Bus) *Core {
	regs := &register.File{}
	return &Core{
		Regs:       regs,
		Bus:        b,
		Interrupts: interrupt.New(b, regs),
		logger:     slog.Default(),
	}
}

// Reset zeroes the register file and sets PC to the cartridge entry
// point (0x0100), optionally seeding the documented DMG post-boot
// register values so ROMs that skip the boot ROM still see a sane
// hardware state.
func (c *Core) Reset(seedPostBootValues bool) {
	*c.Regs = register.File{}
	c.Regs.PC = 0x0100
	c.imePending = false
	c.haltBug = false

	if !seedPostBootValues {
		return
	}

	c.Regs.A = 0x11
	c.Regs.F = 0x80
	c.Regs.SetDE(0xFF56)
	c.Regs.L = 0x0D
	c.Regs.SP = 0xFFFE
}

// Step runs one iteration of the fetch-decode-execute loop, matching
// the engine's state machine: while HALTed it only advances the timer
// and checks for wake-up, otherwise it fetches, decodes, executes one
// instruction and advances the timer by that instruction's cycle cost.
// Interrupts are checked and possibly dispatched at the end of every
// iteration either way.
func (c *Core) Step() error {
	// EI's effect is delayed by exactly one instruction: apply a
	// pending request before fetching the instruction after EI, so
	// IME is already true by the time that instruction's
	// handle_interrupts runs, but was still false for EI's own.
	if c.imePending {
		c.Regs.IME = true
		c.imePending = false
	}

	if c.Regs.Halted {
		wasHalted := c.Regs.Halted
		c.Bus.Tick(4)
		c.Interrupts.HandleInterrupts()
		if wasHalted && !c.Regs.Halted {
			c.logger.Debug("cpu un-halted", "pc", c.Regs.PC)
		}
		return nil
	}

	if err := c.execute(); err != nil {
		return err
	}

	c.Interrupts.HandleInterrupts()
	return nil
}

func (c *Core) execute() error {
	op := c.fetchOpcode()

	if op == 0x00CB {
		cb := c.fetchOpcode()
		handler := cbTable[uint8(cb)]
		cycles := handler(c)
		c.Bus.Tick(cycles)
		return nil
	}

	handler := baseTable[uint8(op)]
	if handler == nil {
		c.logger.Error("illegal opcode trapped", "opcode", op, "pc", c.Regs.PC)
		return &IllegalInstruction{Opcode: op}
	}

	cycles := handler(c)
	c.Bus.Tick(cycles)
	return nil
}

// fetchOpcode reads the byte at PC. PC normally advances by one, except
// for the single byte immediately following a HALT-bug-triggering HALT,
// which is read twice because PC does not advance that one time.
func (c *Core) fetchOpcode() uint16 {
	b := c.Bus.Read(c.Regs.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.Regs.PC++
	}
	return uint16(b)
}

// fetch8 reads the byte at PC and advances PC by one.
func (c *Core) fetch8() uint8 {
	return c.Bus.Read(c.Regs.IncPC(1))
}

// fetchSigned8 reads the byte at PC as a signed offset and advances PC
// by one.
func (c *Core) fetchSigned8() int8 {
	return int8(c.fetch8())
}

// fetch16 reads a little-endian word at PC and advances PC by two.
func (c *Core) fetch16() uint16 {
	low := c.fetch8()
	high := c.fetch8()
	return uint16(high)<<8 | uint16(low)
}
