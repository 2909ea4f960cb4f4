// Package bus arbitrates the 16 bit address space between RAM and
// memory mapped devices. Registered devices are consulted in insertion
// order on every access; the first device claiming the address serves
// it, otherwise the transfer falls through to flat memory.
package bus

import (
	"github.com/emu65/emu65/memory"
)

// Device is the contract peripherals implement to claim addresses.
// A device may claim contiguous or disjoint ranges; HandlesRead and
// HandlesWrite are the authoritative test per access. Reads may have
// side effects (popping a FIFO is typical), so the bus never probes a
// device it isn't about to use.
type Device interface {
	HandlesRead(addr uint16) bool
	HandlesWrite(addr uint16) bool
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// Bus owns the device registry and the backing memory. It is stateless
// apart from the two.
type Bus struct {
	mem     *memory.Memory
	devices []Device
}

// New returns a Bus backed by mem with no devices registered.
func New(mem *memory.Memory) *Bus {
	return &Bus{mem: mem}
}

// Memory exposes the backing store for loaders and DMA style devices.
func (b *Bus) Memory() *memory.Memory {
	return b.mem
}

// RegisterDevice appends a device to the registry. First match wins on
// overlapping claims, so registration order is significant.
func (b *Bus) RegisterDevice(d Device) {
	b.devices = append(b.devices, d)
}

// UnregisterDevice removes the first registration of d. Removing a
// device that was never registered is a no-op.
func (b *Bus) UnregisterDevice(d Device) {
	for i, have := range b.devices {
		if have == d {
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			return
		}
	}
}

// DeviceCount returns the number of registered devices.
func (b *Bus) DeviceCount() int {
	return len(b.devices)
}

// Read returns the byte at addr, from the first device claiming the
// address or from memory.
func (b *Bus) Read(addr uint16) uint8 {
	for _, d := range b.devices {
		if d.HandlesRead(addr) {
			return d.Read(addr)
		}
	}
	return b.mem.Read(addr)
}

// Write stores val at addr, into the first device claiming the address
// or into memory. Writes that land in the ROM region are permitted;
// the CPU never distinguishes.
func (b *Bus) Write(addr uint16, val uint8) {
	for _, d := range b.devices {
		if d.HandlesWrite(addr) {
			d.Write(addr, val)
			return
		}
	}
	b.mem.Write(addr, val)
}

// ReadWord returns the little endian word at addr/addr+1 via Read, so
// device claims apply per byte.
func (b *Bus) ReadWord(addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

// WriteWord stores val little endian at addr/addr+1 via Write.
func (b *Bus) WriteWord(addr uint16, val uint16) {
	b.Write(addr, uint8(val&0xFF))
	b.Write(addr+1, uint8(val>>8))
}
