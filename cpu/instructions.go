package cpu

import (
	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/logger"
)

// Handlers take the bus and the addressing mode from the opcode table.
// Operand bytes are consumed through the addressing helpers; flag
// semantics follow the WDC datasheet except where noted (decimal mode
// is ignored by ADC/SBC).

// setZN updates Z and N from a result byte.
func (c *Chip) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

// Loads

func (c *Chip) opLDA(b *bus.Bus, mode AddressMode) {
	c.A = c.readByte(b, c.operandAddr(b, mode, true))
	c.setZN(c.A)
}

func (c *Chip) opLDX(b *bus.Bus, mode AddressMode) {
	c.X = c.readByte(b, c.operandAddr(b, mode, true))
	c.setZN(c.X)
}

func (c *Chip) opLDY(b *bus.Bus, mode AddressMode) {
	c.Y = c.readByte(b, c.operandAddr(b, mode, true))
	c.setZN(c.Y)
}

// Stores. No flag changes. The fixed indexing cost of indexed stores
// is part of their base cycles, hence no page cross penalty.

func (c *Chip) opSTA(b *bus.Bus, mode AddressMode) {
	c.writeByte(b, c.operandAddr(b, mode, false), c.A)
}

func (c *Chip) opSTX(b *bus.Bus, mode AddressMode) {
	c.writeByte(b, c.operandAddr(b, mode, false), c.X)
}

func (c *Chip) opSTY(b *bus.Bus, mode AddressMode) {
	c.writeByte(b, c.operandAddr(b, mode, false), c.Y)
}

func (c *Chip) opSTZ(b *bus.Bus, mode AddressMode) {
	c.writeByte(b, c.operandAddr(b, mode, false), 0x00)
}

// Transfers

func (c *Chip) opTAX(b *bus.Bus, mode AddressMode) {
	c.X = c.A
	c.setZN(c.X)
}

func (c *Chip) opTAY(b *bus.Bus, mode AddressMode) {
	c.Y = c.A
	c.setZN(c.Y)
}

func (c *Chip) opTXA(b *bus.Bus, mode AddressMode) {
	c.A = c.X
	c.setZN(c.A)
}

func (c *Chip) opTYA(b *bus.Bus, mode AddressMode) {
	c.A = c.Y
	c.setZN(c.A)
}

func (c *Chip) opTSX(b *bus.Bus, mode AddressMode) {
	c.X = c.SP
	c.setZN(c.X)
}

func (c *Chip) opTXS(b *bus.Bus, mode AddressMode) {
	// TXS does not affect flags.
	c.SP = c.X
}

// Stack

func (c *Chip) opPHA(b *bus.Bus, mode AddressMode) {
	c.push(b, c.A)
}

func (c *Chip) opPHP(b *bus.Bus, mode AddressMode) {
	// PHP pushes with both B and bit 5 set.
	c.push(b, c.status(true))
}

func (c *Chip) opPLA(b *bus.Bus, mode AddressMode) {
	c.A = c.pull(b)
	c.setZN(c.A)
}

func (c *Chip) opPLP(b *bus.Bus, mode AddressMode) {
	c.setStatus(c.pull(b))
}

func (c *Chip) opPHX(b *bus.Bus, mode AddressMode) {
	c.push(b, c.X)
}

func (c *Chip) opPHY(b *bus.Bus, mode AddressMode) {
	c.push(b, c.Y)
}

func (c *Chip) opPLX(b *bus.Bus, mode AddressMode) {
	c.X = c.pull(b)
	c.setZN(c.X)
}

func (c *Chip) opPLY(b *bus.Bus, mode AddressMode) {
	c.Y = c.pull(b)
	c.setZN(c.Y)
}

// Logic

func (c *Chip) opAND(b *bus.Bus, mode AddressMode) {
	c.A &= c.readByte(b, c.operandAddr(b, mode, true))
	c.setZN(c.A)
}

func (c *Chip) opORA(b *bus.Bus, mode AddressMode) {
	c.A |= c.readByte(b, c.operandAddr(b, mode, true))
	c.setZN(c.A)
}

func (c *Chip) opEOR(b *bus.Bus, mode AddressMode) {
	c.A ^= c.readByte(b, c.operandAddr(b, mode, true))
	c.setZN(c.A)
}

func (c *Chip) opBIT(b *bus.Bus, mode AddressMode) {
	v := c.readByte(b, c.operandAddr(b, mode, true))
	c.Z = c.A&v == 0
	if mode == MODE_IMMEDIATE {
		// BIT #imm only sets Z.
		return
	}
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
}

// Arithmetic. Binary mode only: the D flag is set and cleared by
// SED/CLD but never consulted here.

func (c *Chip) opADC(b *bus.Bus, mode AddressMode) {
	v := c.readByte(b, c.operandAddr(b, mode, true))
	carry := uint16(0)
	if c.C {
		carry = 1
	}
	sum := uint16(c.A) + uint16(v) + carry
	res := uint8(sum)
	c.C = sum > 0xFF
	c.V = (c.A^res)&(v^res)&0x80 != 0
	c.A = res
	c.setZN(c.A)
}

func (c *Chip) opSBC(b *bus.Bus, mode AddressMode) {
	v := c.readByte(b, c.operandAddr(b, mode, true))
	borrow := uint16(1)
	if c.C {
		borrow = 0
	}
	diff := uint16(c.A) - uint16(v) - borrow
	res := uint8(diff)
	// Carry set means no borrow occurred.
	c.C = diff <= 0xFF
	c.V = (c.A^v)&(c.A^res)&0x80 != 0
	c.A = res
	c.setZN(c.A)
}

// Compares. No register or memory mutation.

func (c *Chip) compare(b *bus.Bus, mode AddressMode, reg uint8) {
	v := c.readByte(b, c.operandAddr(b, mode, true))
	c.C = reg >= v
	c.setZN(reg - v)
}

func (c *Chip) opCMP(b *bus.Bus, mode AddressMode) {
	c.compare(b, mode, c.A)
}

func (c *Chip) opCPX(b *bus.Bus, mode AddressMode) {
	c.compare(b, mode, c.X)
}

func (c *Chip) opCPY(b *bus.Bus, mode AddressMode) {
	c.compare(b, mode, c.Y)
}

// Increment/decrement

func (c *Chip) opINC(b *bus.Bus, mode AddressMode) {
	if mode == MODE_ACCUMULATOR {
		c.A++
		c.setZN(c.A)
		return
	}
	addr := c.operandAddr(b, mode, false)
	v := c.readByte(b, addr) + 1
	c.writeByte(b, addr, v)
	c.setZN(v)
}

func (c *Chip) opDEC(b *bus.Bus, mode AddressMode) {
	if mode == MODE_ACCUMULATOR {
		c.A--
		c.setZN(c.A)
		return
	}
	addr := c.operandAddr(b, mode, false)
	v := c.readByte(b, addr) - 1
	c.writeByte(b, addr, v)
	c.setZN(v)
}

func (c *Chip) opINX(b *bus.Bus, mode AddressMode) {
	c.X++
	c.setZN(c.X)
}

func (c *Chip) opINY(b *bus.Bus, mode AddressMode) {
	c.Y++
	c.setZN(c.Y)
}

func (c *Chip) opDEX(b *bus.Bus, mode AddressMode) {
	c.X--
	c.setZN(c.X)
}

func (c *Chip) opDEY(b *bus.Bus, mode AddressMode) {
	c.Y--
	c.setZN(c.Y)
}

// Shifts and rotates. The operand is A in accumulator mode, memory
// otherwise.

func (c *Chip) modify(b *bus.Bus, mode AddressMode, f func(uint8) uint8) {
	if mode == MODE_ACCUMULATOR {
		c.A = f(c.A)
		c.setZN(c.A)
		return
	}
	addr := c.operandAddr(b, mode, false)
	v := f(c.readByte(b, addr))
	c.writeByte(b, addr, v)
	c.setZN(v)
}

func (c *Chip) opASL(b *bus.Bus, mode AddressMode) {
	c.modify(b, mode, func(v uint8) uint8 {
		c.C = v&0x80 != 0
		return v << 1
	})
}

func (c *Chip) opLSR(b *bus.Bus, mode AddressMode) {
	c.modify(b, mode, func(v uint8) uint8 {
		c.C = v&0x01 != 0
		return v >> 1
	})
}

func (c *Chip) opROL(b *bus.Bus, mode AddressMode) {
	c.modify(b, mode, func(v uint8) uint8 {
		oldCarry := c.C
		c.C = v&0x80 != 0
		v <<= 1
		if oldCarry {
			v |= 0x01
		}
		return v
	})
}

func (c *Chip) opROR(b *bus.Bus, mode AddressMode) {
	c.modify(b, mode, func(v uint8) uint8 {
		oldCarry := c.C
		c.C = v&0x01 != 0
		v >>= 1
		if oldCarry {
			v |= 0x80
		}
		return v
	})
}

// Jumps and calls

func (c *Chip) opJMP(b *bus.Bus, mode AddressMode) {
	switch mode {
	case MODE_ABSOLUTE:
		c.PC = c.fetchWord(b)
	case MODE_INDIRECT:
		c.PC = c.operandAddr(b, MODE_INDIRECT, false)
	case MODE_ABSOLUTEX:
		// 65C02 JMP (abs,X): the pointer itself is indexed.
		ptr := c.fetchWord(b) + uint16(c.X)
		c.PC = c.readWord(b, ptr)
	}
}

func (c *Chip) opJSR(b *bus.Bus, mode AddressMode) {
	target := c.fetchWord(b)
	ret := c.PC - 1
	c.push(b, uint8(ret>>8))
	c.push(b, uint8(ret&0xFF))
	c.PC = target
}

func (c *Chip) opRTS(b *bus.Bus, mode AddressMode) {
	lo := c.pull(b)
	hi := c.pull(b)
	c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
}

// Branches. The offset byte is always fetched; a taken branch charges
// one extra cycle plus one more if it crosses a page.

func (c *Chip) branch(b *bus.Bus, condition bool) {
	offset := int8(c.fetchByte(b))
	if !condition {
		return
	}
	oldPC := c.PC
	c.PC += uint16(int16(offset))
	c.cycles--
	if pagesCross(oldPC, c.PC) {
		c.cycles--
	}
}

func (c *Chip) opBPL(b *bus.Bus, mode AddressMode) { c.branch(b, !c.N) }
func (c *Chip) opBMI(b *bus.Bus, mode AddressMode) { c.branch(b, c.N) }
func (c *Chip) opBVC(b *bus.Bus, mode AddressMode) { c.branch(b, !c.V) }
func (c *Chip) opBVS(b *bus.Bus, mode AddressMode) { c.branch(b, c.V) }
func (c *Chip) opBCC(b *bus.Bus, mode AddressMode) { c.branch(b, !c.C) }
func (c *Chip) opBCS(b *bus.Bus, mode AddressMode) { c.branch(b, c.C) }
func (c *Chip) opBNE(b *bus.Bus, mode AddressMode) { c.branch(b, !c.Z) }
func (c *Chip) opBEQ(b *bus.Bus, mode AddressMode) { c.branch(b, c.Z) }

// BRA (65C02) branches always. Its base cycles already include the
// taken cycle, so only the page cross penalty applies here.
func (c *Chip) opBRA(b *bus.Bus, mode AddressMode) {
	offset := int8(c.fetchByte(b))
	oldPC := c.PC
	c.PC += uint16(int16(offset))
	if pagesCross(oldPC, c.PC) {
		c.cycles--
	}
}

// Flag control

func (c *Chip) opCLC(b *bus.Bus, mode AddressMode) { c.C = false }
func (c *Chip) opSEC(b *bus.Bus, mode AddressMode) { c.C = true }
func (c *Chip) opCLI(b *bus.Bus, mode AddressMode) { c.I = false }
func (c *Chip) opSEI(b *bus.Bus, mode AddressMode) { c.I = true }
func (c *Chip) opCLV(b *bus.Bus, mode AddressMode) { c.V = false }
func (c *Chip) opCLD(b *bus.Bus, mode AddressMode) { c.D = false }
func (c *Chip) opSED(b *bus.Bus, mode AddressMode) { c.D = true }

// System

// BRK pushes the address past the signature byte, then P with B and
// bit 5 set, masks IRQs and vectors through 0xFFFE.
func (c *Chip) opBRK(b *bus.Bus, mode AddressMode) {
	c.PC++
	c.push(b, uint8(c.PC>>8))
	c.push(b, uint8(c.PC&0xFF))
	c.push(b, c.status(true))
	c.I = true
	c.PC = c.readWord(b, IRQ_VECTOR)
}

// RTI pulls P (B and bit 5 ignored) then PC. Unlike RTS the PC is not
// incremented.
func (c *Chip) opRTI(b *bus.Bus, mode AddressMode) {
	c.setStatus(c.pull(b))
	lo := c.pull(b)
	hi := c.pull(b)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) opNOP(b *bus.Bus, mode AddressMode) {}

// 65C02 bit set/test instructions

func (c *Chip) opTSB(b *bus.Bus, mode AddressMode) {
	addr := c.operandAddr(b, mode, false)
	v := c.readByte(b, addr)
	c.Z = c.A&v == 0
	c.writeByte(b, addr, v|c.A)
}

func (c *Chip) opTRB(b *bus.Bus, mode AddressMode) {
	addr := c.operandAddr(b, mode, false)
	v := c.readByte(b, addr)
	c.Z = c.A&v == 0
	c.writeByte(b, addr, v&^c.A)
}

// rmb/smb return handlers clearing/setting a single bit in a zero page
// byte. No flag changes.
func rmb(bit uint8) func(*Chip, *bus.Bus, AddressMode) {
	mask := ^(uint8(1) << bit)
	return func(c *Chip, b *bus.Bus, mode AddressMode) {
		addr := c.operandAddr(b, MODE_ZP, false)
		c.writeByte(b, addr, c.readByte(b, addr)&mask)
	}
}

func smb(bit uint8) func(*Chip, *bus.Bus, AddressMode) {
	mask := uint8(1) << bit
	return func(c *Chip, b *bus.Bus, mode AddressMode) {
		addr := c.operandAddr(b, MODE_ZP, false)
		c.writeByte(b, addr, c.readByte(b, addr)|mask)
	}
}

// bbr/bbs return handlers branching on a single zero page bit. The
// taken cycle is part of the base count; only a page cross charges
// extra.
func bitBranch(bit uint8, set bool) func(*Chip, *bus.Bus, AddressMode) {
	mask := uint8(1) << bit
	return func(c *Chip, b *bus.Bus, mode AddressMode) {
		zp := c.operandAddr(b, MODE_ZP, false)
		v := c.readByte(b, zp)
		offset := int8(c.fetchByte(b))
		if (v&mask != 0) != set {
			return
		}
		oldPC := c.PC
		c.PC += uint16(int16(offset))
		if pagesCross(oldPC, c.PC) {
			c.cycles--
		}
	}
}

func bbr(bit uint8) func(*Chip, *bus.Bus, AddressMode) { return bitBranch(bit, false) }
func bbs(bit uint8) func(*Chip, *bus.Bus, AddressMode) { return bitBranch(bit, true) }

// WAI parks the chip until an interrupt line rises. A masked IRQ
// resumes execution without being serviced.
func (c *Chip) opWAI(b *bus.Bus, mode AddressMode) {
	c.waiting = true
}

// STP halts the chip until the next Reset.
func (c *Chip) opSTP(b *bus.Bus, mode AddressMode) {
	logger.Warnf("STP executed at PC=0x%.4X", c.opPC)
	c.halted = true
}

// opIllegal is the shared handler for the unimplemented slots (and for
// 65C02-only opcodes on an NMOS chip): a logged NOP. The base cycles
// were already charged at dispatch: two for an unimplemented slot, the
// table's count for a 65C02-only opcode run on an NMOS chip.
func (c *Chip) opIllegal(b *bus.Bus, mode AddressMode) {
	logger.Warnf("unimplemented opcode 0x%.2X at PC=0x%.4X", c.op, c.opPC)
}
