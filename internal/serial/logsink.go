// Package serial implements the DMG serial port (SB/SC) as a link-cable
// stub: instead of talking to a second Game Boy it logs outgoing bytes
// as text, which is exactly what test ROMs (Blargg's suite among them)
// use the port for.
package serial

import (
	"log/slog"

	"github.com/mkrause/dmgboy/internal/bit"
)

// Sink implements the transfer side effects documented for 0xFF01/0xFF02:
// writing a byte with the start and clock bits set emits SB and resets
// SC to 0, firing the serial interrupt.
type Sink struct {
	irqHandler func()
	sb, sc     byte
	logger     *slog.Logger

	line []byte
}

// New creates a logging serial sink. irq is invoked whenever a transfer
// completes and should request the serial interrupt.
func New(irq func()) *Sink {
	return &Sink{
		irqHandler: irq,
		logger:     slog.Default(),
	}
}

// defaultRXValue is the value SB reads back as once a transfer completes,
// since this sink never has a second device to receive from.
const defaultRXValue byte = 0xFF

// Write handles a write to SB (0xFF01) or SC (0xFF02).
func (s *Sink) Write(address uint16, value byte) {
	switch address {
	case 0xFF01:
		s.sb = value
	case 0xFF02:
		s.sc = value
		s.maybeTransfer()
	}
}

// Read handles a read from SB (0xFF01) or SC (0xFF02).
func (s *Sink) Read(address uint16) byte {
	switch address {
	case 0xFF01:
		return s.sb
	case 0xFF02:
		return s.sc
	default:
		return 0xFF
	}
}

func (s *Sink) maybeTransfer() {
	// A transfer fires when bit 7 (start) and bit 0 (internal clock) of
	// SC are both set. Only the internal-clock case is modeled; this
	// core never has a real link partner.
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.sb = defaultRXValue
	s.sc = 0
	if s.irqHandler != nil {
		s.irqHandler()
	}
}
