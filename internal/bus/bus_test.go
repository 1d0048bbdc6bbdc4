package bus

import (
	"testing"

	"github.com/mkrause/dmgboy/internal/addr"
)

func TestPlainReadWrite(t *testing.T) {
	b := New(func(addr.Interrupt) {})
	b.WriteU8(0xC000, 0x42)
	if got := b.Read(0xC000); got != 0x42 {
		t.Fatalf("Read(0xC000) = 0x%02X, want 0x42", got)
	}
}

func TestSerialTransferSideEffect(t *testing.T) {
	var requested addr.Interrupt
	fired := false
	b := New(func(i addr.Interrupt) { requested = i; fired = true })

	b.WriteU8(addr.SB, 'X')
	b.WriteU8(addr.SC, 0x81)

	if !fired || requested != addr.Serial {
		t.Fatal("expected SERIAL interrupt to be requested")
	}
	if b.Read(addr.SC) != 0 {
		t.Fatalf("SC after transfer = 0x%02X, want 0x00", b.Read(addr.SC))
	}
}

func TestDivWriteAlwaysResets(t *testing.T) {
	b := New(func(addr.Interrupt) {})
	b.Tick(300)
	if b.Read(addr.DIV) == 0 {
		t.Fatal("expected DIV to have advanced")
	}
	b.WriteU8(addr.DIV, 0x99)
	if b.Read(addr.DIV) != 0 {
		t.Fatalf("DIV after write = %d, want 0", b.Read(addr.DIV))
	}
}

func TestIFReadsBackExactlyWhatWasWritten(t *testing.T) {
	b := New(func(addr.Interrupt) {})
	b.WriteU8(addr.IF, 0x05)
	if b.Read(addr.IF) != 0x05 {
		t.Fatalf("IF = 0x%02X, want 0x05 (top bits read as 0)", b.Read(addr.IF))
	}
}

func TestReadWriteU16(t *testing.T) {
	b := New(func(addr.Interrupt) {})
	b.WriteU16(0xC000, 0xBEEF)
	if got := b.ReadU16(0xC000); got != 0xBEEF {
		t.Fatalf("ReadU16 = 0x%04X, want 0xBEEF", got)
	}
}

func TestIncU8Overflow(t *testing.T) {
	b := New(func(addr.Interrupt) {})
	b.WriteU8(0xC000, 0xFF)
	if !b.IncU8(0xC000) {
		t.Fatal("expected IncU8 to report overflow from 0xFF")
	}
	if b.Read(0xC000) != 0 {
		t.Fatalf("byte after overflow = 0x%02X, want 0", b.Read(0xC000))
	}
	if b.IncU8(0xC000) {
		t.Fatal("did not expect overflow incrementing from 0")
	}
}

func TestLoadROM(t *testing.T) {
	b := New(func(addr.Interrupt) {})
	b.LoadROM([]byte{0x00, 0xC3, 0x50, 0x01})
	if b.Read(0) != 0x00 || b.Read(1) != 0xC3 {
		t.Fatal("expected ROM bytes loaded at address 0")
	}
}
