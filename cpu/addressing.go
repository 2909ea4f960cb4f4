package cpu

import (
	"fmt"

	"github.com/emu65/emu65/bus"
)

// AddressMode identifies how an instruction resolves its operand.
type AddressMode int

const (
	MODE_IMPLIED AddressMode = iota
	MODE_ACCUMULATOR
	MODE_IMMEDIATE
	MODE_ZP
	MODE_ZPX
	MODE_ZPY
	MODE_RELATIVE
	MODE_ABSOLUTE
	MODE_ABSOLUTEX
	MODE_ABSOLUTEY
	MODE_INDIRECT
	MODE_INDIRECTX
	MODE_INDIRECTY
	MODE_ZPINDIRECT // 65C02 (zp)
)

// String renders the mode the way datasheets spell it.
func (m AddressMode) String() string {
	switch m {
	case MODE_IMPLIED:
		return "Implied"
	case MODE_ACCUMULATOR:
		return "Accumulator"
	case MODE_IMMEDIATE:
		return "Immediate"
	case MODE_ZP:
		return "Zero Page"
	case MODE_ZPX:
		return "Zero Page,X"
	case MODE_ZPY:
		return "Zero Page,Y"
	case MODE_RELATIVE:
		return "Relative"
	case MODE_ABSOLUTE:
		return "Absolute"
	case MODE_ABSOLUTEX:
		return "Absolute,X"
	case MODE_ABSOLUTEY:
		return "Absolute,Y"
	case MODE_INDIRECT:
		return "(Indirect)"
	case MODE_INDIRECTX:
		return "(Indirect,X)"
	case MODE_INDIRECTY:
		return "(Indirect),Y"
	case MODE_ZPINDIRECT:
		return "(Zero Page)"
	}
	return fmt.Sprintf("AddressMode(%d)", int(m))
}

// pagesCross reports whether two addresses sit on different 256 byte
// pages.
func pagesCross(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// operandAddr resolves the effective address for mode, consuming
// operand bytes from the instruction stream. Base cycle counts are
// charged at dispatch; the only charges made here are the conditional
// page cross penalties for indexed reads. Store and read-modify-write
// opcodes pass pageCrossPenalty false because their fixed indexing
// cost is already part of their base cycles.
func (c *Chip) operandAddr(b *bus.Bus, mode AddressMode, pageCrossPenalty bool) uint16 {
	switch mode {
	case MODE_IMMEDIATE:
		addr := c.PC
		c.PC++
		return addr
	case MODE_ZP:
		return uint16(c.fetchByte(b))
	case MODE_ZPX:
		// Wraps within page zero.
		return uint16(c.fetchByte(b) + c.X)
	case MODE_ZPY:
		return uint16(c.fetchByte(b) + c.Y)
	case MODE_ABSOLUTE:
		return c.fetchWord(b)
	case MODE_ABSOLUTEX:
		base := c.fetchWord(b)
		addr := base + uint16(c.X)
		if pageCrossPenalty && pagesCross(base, addr) {
			c.cycles--
		}
		return addr
	case MODE_ABSOLUTEY:
		base := c.fetchWord(b)
		addr := base + uint16(c.Y)
		if pageCrossPenalty && pagesCross(base, addr) {
			c.cycles--
		}
		return addr
	case MODE_INDIRECTX:
		zp := c.fetchByte(b) + c.X
		lo := c.readByte(b, uint16(zp))
		hi := c.readByte(b, uint16(zp+1)) // wraps in zero page
		return uint16(hi)<<8 | uint16(lo)
	case MODE_INDIRECTY:
		zp := c.fetchByte(b)
		lo := c.readByte(b, uint16(zp))
		hi := c.readByte(b, uint16(zp+1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.Y)
		if pageCrossPenalty && pagesCross(base, addr) {
			c.cycles--
		}
		return addr
	case MODE_ZPINDIRECT:
		zp := c.fetchByte(b)
		lo := c.readByte(b, uint16(zp))
		hi := c.readByte(b, uint16(zp+1))
		return uint16(hi)<<8 | uint16(lo)
	case MODE_INDIRECT:
		// JMP only. Faithfully reproduce the NMOS bug: a pointer
		// whose low byte is 0xFF reads its high byte from the same
		// page, not the next one.
		ptr := c.fetchWord(b)
		lo := c.readByte(b, ptr)
		var hi uint8
		if ptr&0x00FF == 0x00FF {
			hi = c.readByte(b, ptr&0xFF00)
		} else {
			hi = c.readByte(b, ptr+1)
		}
		return uint16(hi)<<8 | uint16(lo)
	}
	// Implied/Accumulator/Relative have no effective address; handlers
	// for those modes never ask for one.
	panic(fmt.Sprintf("operandAddr called with mode %s", mode))
}
