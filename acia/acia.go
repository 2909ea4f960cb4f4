// Package acia implements a 6551 ACIA (Asynchronous Communications
// Interface Adapter) reduced to the register behavior serial firmware
// relies on, mapped the way Ben Eater style 6502 machines wire it:
// DATA at $5000, STATUS at $5001, CMD at $5002, CTRL at $5003.
package acia

import (
	"strings"

	"github.com/emu65/emu65/bus"
)

var _ = bus.Device(&Chip{})

const (
	DATA   = uint16(0x5000) // Data register (read/write)
	STATUS = uint16(0x5001) // Status register (read only)
	CMD    = uint16(0x5002) // Command register
	CTRL   = uint16(0x5003) // Control register

	STATUS_PARITY_ERROR  = uint8(0x01)
	STATUS_FRAMING_ERROR = uint8(0x02)
	STATUS_OVERRUN       = uint8(0x04)
	STATUS_RX_DATA_READY = uint8(0x08) // Data available to read
	STATUS_TX_DATA_EMPTY = uint8(0x10) // Ready to transmit
	STATUS_DCD           = uint8(0x20)
	STATUS_DSR           = uint8(0x40)
	STATUS_IRQ           = uint8(0x80)
)

// Chip holds the ACIA state. The transmitter is always ready in this
// model; transmitted bytes are captured for the host side to drain.
type Chip struct {
	rx   []uint8
	tx   strings.Builder
	cmd  uint8
	ctrl uint8
}

// New returns an idle ACIA.
func New() *Chip {
	return &Chip{}
}

// HandlesRead implements the interface for bus.Device.
func (a *Chip) HandlesRead(addr uint16) bool {
	return addr >= DATA && addr <= CTRL
}

// HandlesWrite implements the interface for bus.Device.
func (a *Chip) HandlesWrite(addr uint16) bool {
	return addr >= DATA && addr <= CTRL
}

// Read implements the interface for bus.Device. Reading DATA pops the
// receive queue.
func (a *Chip) Read(addr uint16) uint8 {
	switch addr {
	case DATA:
		if len(a.rx) == 0 {
			return 0x00
		}
		c := a.rx[0]
		a.rx = a.rx[1:]
		return c
	case STATUS:
		v := STATUS_TX_DATA_EMPTY
		if len(a.rx) > 0 {
			v |= STATUS_RX_DATA_READY
		}
		return v
	case CMD:
		return a.cmd
	case CTRL:
		return a.ctrl
	}
	return 0x00
}

// Write implements the interface for bus.Device.
func (a *Chip) Write(addr uint16, val uint8) {
	switch addr {
	case DATA:
		a.tx.WriteByte(val)
	case CMD:
		a.cmd = val
	case CTRL:
		a.ctrl = val
	}
}

// PushInput queues bytes for the CPU to receive.
func (a *Chip) PushInput(s string) {
	for i := 0; i < len(s); i++ {
		a.rx = append(a.rx, s[i])
	}
}

// Output returns everything the CPU transmitted so far.
func (a *Chip) Output() string {
	return a.tx.String()
}

// ClearOutput drops the captured transmit data.
func (a *Chip) ClearOutput() {
	a.tx.Reset()
}
