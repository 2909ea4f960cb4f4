// Package via implements a simplified 6522 VIA reduced to the port
// registers firmware uses for flow control: PORTA at $6001 and its
// data direction register DDRA at $6003.
package via

import (
	"github.com/emu65/emu65/bus"
)

var _ = bus.Device(&Chip{})

const (
	PORTA = uint16(0x6001)
	DDRA  = uint16(0x6003)
)

// Chip latches the port and direction registers. A DDR bit of 1 marks
// the pin as output; reads see input pins from the externally supplied
// value and output pins from the latch.
type Chip struct {
	portA uint8 // Port A output latch
	ddrA  uint8 // Data Direction Register A (0=input, 1=output)
	pins  uint8 // External value presented on the input pins
}

// New returns a VIA with all pins configured as inputs.
func New() *Chip {
	return &Chip{}
}

// HandlesRead implements the interface for bus.Device.
func (v *Chip) HandlesRead(addr uint16) bool {
	return addr == PORTA || addr == DDRA
}

// HandlesWrite implements the interface for bus.Device.
func (v *Chip) HandlesWrite(addr uint16) bool {
	return addr == PORTA || addr == DDRA
}

// Read implements the interface for bus.Device.
func (v *Chip) Read(addr uint16) uint8 {
	switch addr {
	case PORTA:
		return v.portA&v.ddrA | v.pins&^v.ddrA
	case DDRA:
		return v.ddrA
	}
	return 0x00
}

// Write implements the interface for bus.Device. Writes to PORTA only
// affect pins configured as outputs.
func (v *Chip) Write(addr uint16, val uint8) {
	switch addr {
	case PORTA:
		v.portA = val
	case DDRA:
		v.ddrA = val
	}
}

// SetInput presents an external value on the input pins.
func (v *Chip) SetInput(val uint8) {
	v.pins = val
}

// Output returns the current state of the output pins.
func (v *Chip) Output() uint8 {
	return v.portA & v.ddrA
}
