// Package register implements the SM83 register file: the eight 8-bit
// registers, their paired 16-bit views, the flag bits packed into F,
// and the IME/HALT latches that drive interrupt and power-state
// behaviour.
package register

import "github.com/mkrause/dmgboy/internal/bit"

const (
	flagZ uint8 = 1 << 7
	flagN uint8 = 1 << 6
	flagH uint8 = 1 << 5
	flagC uint8 = 1 << 4
)

// File is the complete SM83 register state. The zero value is a CPU
// powered on with every register cleared; callers that need the DMG
// post-boot-ROM values should set them explicitly.
type File struct {
	A, B, C, D, E, F, H, L uint8
	SP, PC                 uint16

	// IME is the interrupt master enable latch.
	IME bool
	// Halted is true while the CPU is stopped on a HALT instruction
	// waiting for an interrupt to wake it.
	Halted bool
}

// AF returns the combined A/F register pair. The low nibble of F is
// always zero, since the lower four bits of the flag register do not
// exist on real hardware.
func (f *File) AF() uint16 {
	return bit.Combine(f.A, f.F)
}

// SetAF sets A and F from a combined 16-bit value, masking F's low
// nibble to zero.
func (f *File) SetAF(v uint16) {
	f.A = bit.High(v)
	f.F = bit.Low(v) & 0xF0
}

func (f *File) BC() uint16 { return bit.Combine(f.B, f.C) }
func (f *File) SetBC(v uint16) {
	f.B = bit.High(v)
	f.C = bit.Low(v)
}

func (f *File) DE() uint16 { return bit.Combine(f.D, f.E) }
func (f *File) SetDE(v uint16) {
	f.D = bit.High(v)
	f.E = bit.Low(v)
}

func (f *File) HL() uint16 { return bit.Combine(f.H, f.L) }
func (f *File) SetHL(v uint16) {
	f.H = bit.High(v)
	f.L = bit.Low(v)
}

// Flag accessors. Z: zero, N: subtract, H: half-carry, C: carry.

func (f *File) FlagZ() bool { return f.F&flagZ != 0 }
func (f *File) FlagN() bool { return f.F&flagN != 0 }
func (f *File) FlagH() bool { return f.F&flagH != 0 }
func (f *File) FlagC() bool { return f.F&flagC != 0 }

func (f *File) SetFlagZ(v bool) { f.setFlag(flagZ, v) }
func (f *File) SetFlagN(v bool) { f.setFlag(flagN, v) }
func (f *File) SetFlagH(v bool) { f.setFlag(flagH, v) }
func (f *File) SetFlagC(v bool) { f.setFlag(flagC, v) }

func (f *File) setFlag(mask uint8, v bool) {
	if v {
		f.F |= mask
	} else {
		f.F &^= mask
	}
}

// IncPC advances PC by n and returns the pre-increment value, which is
// the common "fetch and advance" pattern used when decoding.
func (f *File) IncPC(n uint16) uint16 {
	pc := f.PC
	f.PC += n
	return pc
}
