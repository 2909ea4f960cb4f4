// Package pia implements the keyboard/display PIA of an Apple-1 style
// machine (a MOS 6821 reduced to what WOZMON and BASIC actually use):
// Port A is keyboard input at $D010 with its control register at
// $D011, Port B is display output at $D012 with its control register
// at $D013.
package pia

import (
	"strings"
	"sync"

	"github.com/emu65/emu65/bus"
)

var _ = bus.Device(&Chip{})

const (
	KBD   = uint16(0xD010) // Keyboard input
	KBDCR = uint16(0xD011) // Keyboard control register
	DSP   = uint16(0xD012) // Display output
	DSPCR = uint16(0xD013) // Display control register

	kMASK_KEY_READY = uint8(0x80) // KBDCR bit 7: key waiting
	kMASK_HIGH      = uint8(0x80) // Keyboard bytes carry bit 7 set
)

// Chip holds the PIA state. Keystroke injection may come from another
// goroutine (a GUI or socket pump), so the key queue is guarded; the
// bus facing side stays single threaded per the core's contract.
type Chip struct {
	mu      sync.Mutex
	keys    []uint8
	display strings.Builder
	kbdcr   uint8
	dspcr   uint8
}

// New returns a PIA with an empty key queue and display.
func New() *Chip {
	return &Chip{}
}

// HandlesRead implements the interface for bus.Device.
func (p *Chip) HandlesRead(addr uint16) bool {
	return addr >= KBD && addr <= DSPCR
}

// HandlesWrite implements the interface for bus.Device.
func (p *Chip) HandlesWrite(addr uint16) bool {
	return addr >= KBD && addr <= DSPCR
}

// Read implements the interface for bus.Device. Reading KBD pops the
// key queue (a side effecting read, as on hardware where reading the
// port drops the strobe).
func (p *Chip) Read(addr uint16) uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch addr {
	case KBD:
		if len(p.keys) == 0 {
			return 0x00
		}
		c := p.keys[0]
		p.keys = p.keys[1:]
		return c
	case KBDCR:
		v := p.kbdcr
		if len(p.keys) > 0 {
			v |= kMASK_KEY_READY
		}
		return v
	case DSP:
		// Bit 7 high would mean the display is busy; this model is
		// always ready.
		return p.dspcr &^ 0x80
	case DSPCR:
		return p.dspcr
	}
	return 0x00
}

// Write implements the interface for bus.Device. Writing DSP with bit
// 7 clear prints the low 7 bits.
func (p *Chip) Write(addr uint16, val uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch addr {
	case KBD:
		// Not writable.
	case KBDCR:
		p.kbdcr = val
	case DSP:
		if val&0x80 == 0 {
			p.display.WriteByte(val & 0x7F)
		}
	case DSPCR:
		p.dspcr = val
	}
}

// PushKey queues one keyboard character. Bit 7 is forced high the way
// the Apple-1 keyboard presents ASCII.
func (p *Chip) PushKey(c byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, c|kMASK_HIGH)
}

// PushLine queues a string followed by carriage return.
func (p *Chip) PushLine(s string) {
	for i := 0; i < len(s); i++ {
		p.PushKey(s[i])
	}
	p.PushKey('\r')
}

// HasKey reports whether the key queue is non empty.
func (p *Chip) HasKey() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys) > 0
}

// Display returns everything written to the display port so far.
func (p *Chip) Display() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.display.String()
}

// ClearDisplay drops the captured display output.
func (p *Chip) ClearDisplay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.display.Reset()
}
