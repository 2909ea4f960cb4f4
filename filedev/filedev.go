// Package filedev implements a host file storage device. Firmware
// programs a start address, a length and a filename, then pokes the
// control register to move bytes between emulated memory and a file
// on the host.
//
// Register map:
//
//	$FE00        control: writing 1 loads, 2 saves
//	$FE01-$FE02  start address, little endian
//	$FE03-$FE04  length, little endian
//	$FE05        status of the last operation (read only): 0 ok, 1 error
//	$FE10-$FE4F  filename window, null terminated
package filedev

import (
	"os"

	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/logger"
	"github.com/emu65/emu65/memory"
)

var _ = bus.Device(&Chip{})

const (
	CONTROL        = uint16(0xFE00)
	START_LO       = uint16(0xFE01)
	START_HI       = uint16(0xFE02)
	LENGTH_LO      = uint16(0xFE03)
	LENGTH_HI      = uint16(0xFE04)
	STATUS         = uint16(0xFE05)
	FILENAME_START = uint16(0xFE10)
	FILENAME_END   = uint16(0xFE4F)

	OP_NONE = uint8(0)
	OP_LOAD = uint8(1)
	OP_SAVE = uint8(2)

	STATUS_OK    = uint8(0)
	STATUS_ERROR = uint8(1)
)

// Chip is the device state. It performs DMA style transfers directly
// against backing memory, not through the bus, so device windows are
// never clobbered by a stray load.
type Chip struct {
	mem      *memory.Memory
	start    uint16
	length   uint16
	status   uint8
	filename [FILENAME_END - FILENAME_START + 1]uint8
	lastName string
}

// New returns a file device wired to mem.
func New(mem *memory.Memory) *Chip {
	return &Chip{mem: mem}
}

// HandlesRead implements the interface for bus.Device.
func (f *Chip) HandlesRead(addr uint16) bool {
	return addr >= CONTROL && addr <= STATUS || addr >= FILENAME_START && addr <= FILENAME_END
}

// HandlesWrite implements the interface for bus.Device.
func (f *Chip) HandlesWrite(addr uint16) bool {
	return f.HandlesRead(addr)
}

// Read implements the interface for bus.Device.
func (f *Chip) Read(addr uint16) uint8 {
	switch addr {
	case CONTROL:
		return OP_NONE
	case START_LO:
		return uint8(f.start & 0xFF)
	case START_HI:
		return uint8(f.start >> 8)
	case LENGTH_LO:
		return uint8(f.length & 0xFF)
	case LENGTH_HI:
		return uint8(f.length >> 8)
	case STATUS:
		return f.status
	}
	if addr >= FILENAME_START && addr <= FILENAME_END {
		return f.filename[addr-FILENAME_START]
	}
	return 0x00
}

// Write implements the interface for bus.Device. Writing the control
// register executes the requested operation synchronously.
func (f *Chip) Write(addr uint16, val uint8) {
	switch addr {
	case CONTROL:
		f.execute(val)
	case START_LO:
		f.start = f.start&0xFF00 | uint16(val)
	case START_HI:
		f.start = f.start&0x00FF | uint16(val)<<8
	case LENGTH_LO:
		f.length = f.length&0xFF00 | uint16(val)
	case LENGTH_HI:
		f.length = f.length&0x00FF | uint16(val)<<8
	}
	if addr >= FILENAME_START && addr <= FILENAME_END {
		f.filename[addr-FILENAME_START] = val
	}
}

func (f *Chip) execute(op uint8) {
	name := f.filenameString()
	f.lastName = name
	switch op {
	case OP_LOAD:
		if name == "" || !f.Load(name, f.start) {
			f.status = STATUS_ERROR
			return
		}
		f.status = STATUS_OK
	case OP_SAVE:
		if name == "" || !f.Save(name, f.start, f.length) {
			f.status = STATUS_ERROR
			return
		}
		f.status = STATUS_OK
	}
}

// Load copies a host file into memory at start. Returns false and
// logs on failure.
func (f *Chip) Load(name string, start uint16) bool {
	data, err := os.ReadFile(name)
	if err != nil {
		logger.Warnf("filedev load %q: %v", name, err)
		return false
	}
	if err := f.mem.Load(data, start); err != nil {
		logger.Warnf("filedev load %q: %v", name, err)
		return false
	}
	return true
}

// Save copies length bytes of memory starting at start into a host
// file.
func (f *Chip) Save(name string, start uint16, length uint16) bool {
	if int(start)+int(length) > memory.Size {
		logger.Warnf("filedev save %q: %d bytes at 0x%.4X overflows memory", name, length, start)
		return false
	}
	data := make([]byte, length)
	for i := range data {
		data[i] = f.mem.Read(start + uint16(i))
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		logger.Warnf("filedev save %q: %v", name, err)
		return false
	}
	return true
}

// Status returns the result of the last operation.
func (f *Chip) Status() uint8 {
	return f.status
}

// LastFilename returns the filename of the last executed operation.
func (f *Chip) LastFilename() string {
	return f.lastName
}

func (f *Chip) filenameString() string {
	for i, c := range f.filename {
		if c == 0 {
			return string(f.filename[:i])
		}
	}
	return string(f.filename[:])
}
