// Package bus implements the flat 64KiB address space the core reads
// and writes through. Region decoding beyond the two documented side
// effects (serial transfer, DIV reset) is out of scope for the core;
// everything else is treated as plain memory.
package bus

import (
	"github.com/mkrause/dmgboy/internal/addr"
	"github.com/mkrause/dmgboy/internal/serial"
	"github.com/mkrause/dmgboy/internal/timer"
)

// memSize is the full 16-bit address space.
const memSize = 0x10000

// Bus is the flat memory the core operates on. It owns the timer and
// serial sink so the two documented address side effects (DIV always
// resetting, SB/SC serial transfer) live with the state they affect.
type Bus struct {
	memory []byte
	timer  *timer.Timer
	serial *serial.Sink
}

// New creates a bus with every byte zeroed, a fresh timer, and a serial
// sink that requests the SERIAL interrupt through requestInterrupt.
func New(requestInterrupt func(addr.Interrupt)) *Bus {
	b := &Bus{
		memory: make([]byte, memSize),
		timer:  timer.New(),
	}
	b.serial = serial.New(func() { requestInterrupt(addr.Serial) })
	b.timer.RequestInterrupt = func() { requestInterrupt(addr.Timer) }
	return b
}

// Tick advances the owned timer by cycles; the serial sink does not
// track elapsed time. The core calls this once per instruction step.
func (b *Bus) Tick(cycles int) {
	b.timer.Tick(cycles)
}

// LoadROM copies data into the bottom of the address space, starting
// at 0x0000. Loading ROM banking, headers, and MBC behaviour are
// outside the core's scope; this is a direct byte copy for test ROMs
// and hand-assembled programs.
func (b *Bus) LoadROM(data []byte) {
	copy(b.memory, data)
}

// Read returns the byte at address. Every address is readable; there
// is no concept of an unmapped region in this flat address space.
func (b *Bus) Read(address uint16) byte {
	switch address {
	case addr.SB, addr.SC:
		return b.serial.Read(address)
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		return b.timer.Read(address)
	default:
		// IF's top three bits don't exist in hardware and read as 1
		// there; this core reads them as 0, a documented deviation.
		return b.memory[address]
	}
}

// WriteU8 writes value at address, applying the two documented side
// effects: writing 0x81 to SC (0xFF02) emits SB to the serial sink and
// resets SC to 0, and writing DIV (0xFF04) always resets it to 0
// regardless of the value written.
func (b *Bus) WriteU8(address uint16, value byte) {
	switch address {
	case addr.SB, addr.SC:
		b.serial.Write(address, value)
	case addr.DIV, addr.TIMA, addr.TMA, addr.TAC:
		b.timer.Write(address, value)
	default:
		b.memory[address] = value
	}
}

// WriteU16 writes a little-endian 16-bit value at address and address+1.
func (b *Bus) WriteU16(address uint16, value uint16) {
	b.WriteU8(address, byte(value))
	b.WriteU8(address+1, byte(value>>8))
}

// ReadU16 reads a little-endian 16-bit value from address and address+1.
func (b *Bus) ReadU16(address uint16) uint16 {
	low := b.Read(address)
	high := b.Read(address + 1)
	return uint16(high)<<8 | uint16(low)
}

// IncU8 increments the byte at address and returns true iff it wrapped
// from 0xFF to 0x00.
func (b *Bus) IncU8(address uint16) bool {
	old := b.Read(address)
	b.WriteU8(address, old+1)
	return old == 0xFF
}
