package serial

import "testing"

func TestTransferFiresInterrupt(t *testing.T) {
	fired := false
	s := New(func() { fired = true })

	s.Write(0xFF01, 'A')
	s.Write(0xFF02, 0x81)

	if !fired {
		t.Fatal("expected interrupt handler to fire on transfer")
	}
	if s.Read(0xFF01) != 0xFF {
		t.Fatalf("SB after transfer = 0x%02X, want 0xFF", s.Read(0xFF01))
	}
	if s.Read(0xFF02) != 0 {
		t.Fatalf("SC after transfer = 0x%02X, want 0x00", s.Read(0xFF02))
	}
}

func TestNoTransferWithoutStartBit(t *testing.T) {
	fired := false
	s := New(func() { fired = true })

	s.Write(0xFF01, 'A')
	s.Write(0xFF02, 0x01)

	if fired {
		t.Fatal("did not expect a transfer without the start bit set")
	}
}
