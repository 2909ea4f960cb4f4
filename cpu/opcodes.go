package cpu

import (
	"github.com/emu65/emu65/bus"
)

type handlerFunc func(*Chip, *bus.Bus, AddressMode)

// Opcode carries the static metadata and the handler for one slot of
// the dispatch table. The table is the single source of truth for
// timing: dispatch charges Cycles, handlers only add conditional
// penalties.
type Opcode struct {
	Mnemonic    string
	Mode        AddressMode
	Cycles      uint8
	CMOSOnly    bool
	Description string
	handler     handlerFunc
}

// Implemented reports whether the slot holds a real instruction.
// Unimplemented slots share a warn-and-NOP handler.
func (o *Opcode) Implemented() bool {
	return o.Mnemonic != "---"
}

// Handler returns the dispatch closure for this slot. Never nil.
func (o *Opcode) Handler() func(*Chip, *bus.Bus) {
	h, mode := o.handler, o.Mode
	return func(c *Chip, b *bus.Bus) { h(c, b, mode) }
}

// Opcodes is the complete dispatch and metadata table, one entry per
// opcode. Timings are 65C02 per the WDC datasheet, with the NMOS
// indirect JMP bug preserved (see operandAddr).
var Opcodes = [256]Opcode{
	0x00: {"BRK", MODE_IMPLIED, 7, false, "Break (software interrupt)", (*Chip).opBRK},
	0x01: {"ORA", MODE_INDIRECTX, 6, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x02: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x03: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x04: {"TSB", MODE_ZP, 5, true, "Test and Set Bits", (*Chip).opTSB},
	0x05: {"ORA", MODE_ZP, 3, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x06: {"ASL", MODE_ZP, 5, false, "Arithmetic Shift Left", (*Chip).opASL},
	0x07: {"RMB0", MODE_ZP, 5, true, "Reset Memory Bit 0", rmb(0)},
	0x08: {"PHP", MODE_IMPLIED, 3, false, "Push Processor Status", (*Chip).opPHP},
	0x09: {"ORA", MODE_IMMEDIATE, 2, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x0A: {"ASL", MODE_ACCUMULATOR, 2, false, "Arithmetic Shift Left", (*Chip).opASL},
	0x0B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x0C: {"TSB", MODE_ABSOLUTE, 6, true, "Test and Set Bits", (*Chip).opTSB},
	0x0D: {"ORA", MODE_ABSOLUTE, 4, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x0E: {"ASL", MODE_ABSOLUTE, 6, false, "Arithmetic Shift Left", (*Chip).opASL},
	0x0F: {"BBR0", MODE_RELATIVE, 5, true, "Branch on Bit Reset 0", bbr(0)},

	0x10: {"BPL", MODE_RELATIVE, 2, false, "Branch if Plus", (*Chip).opBPL},
	0x11: {"ORA", MODE_INDIRECTY, 5, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x12: {"ORA", MODE_ZPINDIRECT, 5, true, "Bitwise OR with accumulator", (*Chip).opORA},
	0x13: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x14: {"TRB", MODE_ZP, 5, true, "Test and Reset Bits", (*Chip).opTRB},
	0x15: {"ORA", MODE_ZPX, 4, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x16: {"ASL", MODE_ZPX, 6, false, "Arithmetic Shift Left", (*Chip).opASL},
	0x17: {"RMB1", MODE_ZP, 5, true, "Reset Memory Bit 1", rmb(1)},
	0x18: {"CLC", MODE_IMPLIED, 2, false, "Clear Carry", (*Chip).opCLC},
	0x19: {"ORA", MODE_ABSOLUTEY, 4, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x1A: {"INC", MODE_ACCUMULATOR, 2, true, "Increment Accumulator", (*Chip).opINC},
	0x1B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x1C: {"TRB", MODE_ABSOLUTE, 6, true, "Test and Reset Bits", (*Chip).opTRB},
	0x1D: {"ORA", MODE_ABSOLUTEX, 4, false, "Bitwise OR with accumulator", (*Chip).opORA},
	0x1E: {"ASL", MODE_ABSOLUTEX, 7, false, "Arithmetic Shift Left", (*Chip).opASL},
	0x1F: {"BBR1", MODE_RELATIVE, 5, true, "Branch on Bit Reset 1", bbr(1)},

	0x20: {"JSR", MODE_ABSOLUTE, 6, false, "Jump to Subroutine", (*Chip).opJSR},
	0x21: {"AND", MODE_INDIRECTX, 6, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x22: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x23: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x24: {"BIT", MODE_ZP, 3, false, "Bit Test", (*Chip).opBIT},
	0x25: {"AND", MODE_ZP, 3, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x26: {"ROL", MODE_ZP, 5, false, "Rotate Left", (*Chip).opROL},
	0x27: {"RMB2", MODE_ZP, 5, true, "Reset Memory Bit 2", rmb(2)},
	0x28: {"PLP", MODE_IMPLIED, 4, false, "Pull Processor Status", (*Chip).opPLP},
	0x29: {"AND", MODE_IMMEDIATE, 2, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x2A: {"ROL", MODE_ACCUMULATOR, 2, false, "Rotate Left", (*Chip).opROL},
	0x2B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x2C: {"BIT", MODE_ABSOLUTE, 4, false, "Bit Test", (*Chip).opBIT},
	0x2D: {"AND", MODE_ABSOLUTE, 4, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x2E: {"ROL", MODE_ABSOLUTE, 6, false, "Rotate Left", (*Chip).opROL},
	0x2F: {"BBR2", MODE_RELATIVE, 5, true, "Branch on Bit Reset 2", bbr(2)},

	0x30: {"BMI", MODE_RELATIVE, 2, false, "Branch if Minus", (*Chip).opBMI},
	0x31: {"AND", MODE_INDIRECTY, 5, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x32: {"AND", MODE_ZPINDIRECT, 5, true, "Bitwise AND with accumulator", (*Chip).opAND},
	0x33: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x34: {"BIT", MODE_ZPX, 4, true, "Bit Test", (*Chip).opBIT},
	0x35: {"AND", MODE_ZPX, 4, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x36: {"ROL", MODE_ZPX, 6, false, "Rotate Left", (*Chip).opROL},
	0x37: {"RMB3", MODE_ZP, 5, true, "Reset Memory Bit 3", rmb(3)},
	0x38: {"SEC", MODE_IMPLIED, 2, false, "Set Carry", (*Chip).opSEC},
	0x39: {"AND", MODE_ABSOLUTEY, 4, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x3A: {"DEC", MODE_ACCUMULATOR, 2, true, "Decrement Accumulator", (*Chip).opDEC},
	0x3B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x3C: {"BIT", MODE_ABSOLUTEX, 4, true, "Bit Test", (*Chip).opBIT},
	0x3D: {"AND", MODE_ABSOLUTEX, 4, false, "Bitwise AND with accumulator", (*Chip).opAND},
	0x3E: {"ROL", MODE_ABSOLUTEX, 7, false, "Rotate Left", (*Chip).opROL},
	0x3F: {"BBR3", MODE_RELATIVE, 5, true, "Branch on Bit Reset 3", bbr(3)},

	0x40: {"RTI", MODE_IMPLIED, 6, false, "Return from Interrupt", (*Chip).opRTI},
	0x41: {"EOR", MODE_INDIRECTX, 6, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x42: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x43: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x44: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x45: {"EOR", MODE_ZP, 3, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x46: {"LSR", MODE_ZP, 5, false, "Logical Shift Right", (*Chip).opLSR},
	0x47: {"RMB4", MODE_ZP, 5, true, "Reset Memory Bit 4", rmb(4)},
	0x48: {"PHA", MODE_IMPLIED, 3, false, "Push Accumulator", (*Chip).opPHA},
	0x49: {"EOR", MODE_IMMEDIATE, 2, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x4A: {"LSR", MODE_ACCUMULATOR, 2, false, "Logical Shift Right", (*Chip).opLSR},
	0x4B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x4C: {"JMP", MODE_ABSOLUTE, 3, false, "Jump", (*Chip).opJMP},
	0x4D: {"EOR", MODE_ABSOLUTE, 4, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x4E: {"LSR", MODE_ABSOLUTE, 6, false, "Logical Shift Right", (*Chip).opLSR},
	0x4F: {"BBR4", MODE_RELATIVE, 5, true, "Branch on Bit Reset 4", bbr(4)},

	0x50: {"BVC", MODE_RELATIVE, 2, false, "Branch if Overflow Clear", (*Chip).opBVC},
	0x51: {"EOR", MODE_INDIRECTY, 5, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x52: {"EOR", MODE_ZPINDIRECT, 5, true, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x53: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x54: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x55: {"EOR", MODE_ZPX, 4, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x56: {"LSR", MODE_ZPX, 6, false, "Logical Shift Right", (*Chip).opLSR},
	0x57: {"RMB5", MODE_ZP, 5, true, "Reset Memory Bit 5", rmb(5)},
	0x58: {"CLI", MODE_IMPLIED, 2, false, "Clear Interrupt Disable", (*Chip).opCLI},
	0x59: {"EOR", MODE_ABSOLUTEY, 4, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x5A: {"PHY", MODE_IMPLIED, 3, true, "Push Y", (*Chip).opPHY},
	0x5B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x5C: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x5D: {"EOR", MODE_ABSOLUTEX, 4, false, "Bitwise XOR with accumulator", (*Chip).opEOR},
	0x5E: {"LSR", MODE_ABSOLUTEX, 7, false, "Logical Shift Right", (*Chip).opLSR},
	0x5F: {"BBR5", MODE_RELATIVE, 5, true, "Branch on Bit Reset 5", bbr(5)},

	0x60: {"RTS", MODE_IMPLIED, 6, false, "Return from Subroutine", (*Chip).opRTS},
	0x61: {"ADC", MODE_INDIRECTX, 6, false, "Add with Carry", (*Chip).opADC},
	0x62: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x63: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x64: {"STZ", MODE_ZP, 3, true, "Store Zero", (*Chip).opSTZ},
	0x65: {"ADC", MODE_ZP, 3, false, "Add with Carry", (*Chip).opADC},
	0x66: {"ROR", MODE_ZP, 5, false, "Rotate Right", (*Chip).opROR},
	0x67: {"RMB6", MODE_ZP, 5, true, "Reset Memory Bit 6", rmb(6)},
	0x68: {"PLA", MODE_IMPLIED, 4, false, "Pull Accumulator", (*Chip).opPLA},
	0x69: {"ADC", MODE_IMMEDIATE, 2, false, "Add with Carry", (*Chip).opADC},
	0x6A: {"ROR", MODE_ACCUMULATOR, 2, false, "Rotate Right", (*Chip).opROR},
	0x6B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x6C: {"JMP", MODE_INDIRECT, 5, false, "Jump Indirect", (*Chip).opJMP},
	0x6D: {"ADC", MODE_ABSOLUTE, 4, false, "Add with Carry", (*Chip).opADC},
	0x6E: {"ROR", MODE_ABSOLUTE, 6, false, "Rotate Right", (*Chip).opROR},
	0x6F: {"BBR6", MODE_RELATIVE, 5, true, "Branch on Bit Reset 6", bbr(6)},

	0x70: {"BVS", MODE_RELATIVE, 2, false, "Branch if Overflow Set", (*Chip).opBVS},
	0x71: {"ADC", MODE_INDIRECTY, 5, false, "Add with Carry", (*Chip).opADC},
	0x72: {"ADC", MODE_ZPINDIRECT, 5, true, "Add with Carry", (*Chip).opADC},
	0x73: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x74: {"STZ", MODE_ZPX, 4, true, "Store Zero", (*Chip).opSTZ},
	0x75: {"ADC", MODE_ZPX, 4, false, "Add with Carry", (*Chip).opADC},
	0x76: {"ROR", MODE_ZPX, 6, false, "Rotate Right", (*Chip).opROR},
	0x77: {"RMB7", MODE_ZP, 5, true, "Reset Memory Bit 7", rmb(7)},
	0x78: {"SEI", MODE_IMPLIED, 2, false, "Set Interrupt Disable", (*Chip).opSEI},
	0x79: {"ADC", MODE_ABSOLUTEY, 4, false, "Add with Carry", (*Chip).opADC},
	0x7A: {"PLY", MODE_IMPLIED, 4, true, "Pull Y", (*Chip).opPLY},
	0x7B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x7C: {"JMP", MODE_ABSOLUTEX, 6, true, "Jump Indirect X", (*Chip).opJMP},
	0x7D: {"ADC", MODE_ABSOLUTEX, 4, false, "Add with Carry", (*Chip).opADC},
	0x7E: {"ROR", MODE_ABSOLUTEX, 7, false, "Rotate Right", (*Chip).opROR},
	0x7F: {"BBR7", MODE_RELATIVE, 5, true, "Branch on Bit Reset 7", bbr(7)},

	0x80: {"BRA", MODE_RELATIVE, 3, true, "Branch Always", (*Chip).opBRA},
	0x81: {"STA", MODE_INDIRECTX, 6, false, "Store Accumulator", (*Chip).opSTA},
	0x82: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x83: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x84: {"STY", MODE_ZP, 3, false, "Store Y Register", (*Chip).opSTY},
	0x85: {"STA", MODE_ZP, 3, false, "Store Accumulator", (*Chip).opSTA},
	0x86: {"STX", MODE_ZP, 3, false, "Store X Register", (*Chip).opSTX},
	0x87: {"SMB0", MODE_ZP, 5, true, "Set Memory Bit 0", smb(0)},
	0x88: {"DEY", MODE_IMPLIED, 2, false, "Decrement Y", (*Chip).opDEY},
	0x89: {"BIT", MODE_IMMEDIATE, 2, true, "Bit Test", (*Chip).opBIT},
	0x8A: {"TXA", MODE_IMPLIED, 2, false, "Transfer X to Accumulator", (*Chip).opTXA},
	0x8B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x8C: {"STY", MODE_ABSOLUTE, 4, false, "Store Y Register", (*Chip).opSTY},
	0x8D: {"STA", MODE_ABSOLUTE, 4, false, "Store Accumulator", (*Chip).opSTA},
	0x8E: {"STX", MODE_ABSOLUTE, 4, false, "Store X Register", (*Chip).opSTX},
	0x8F: {"BBS0", MODE_RELATIVE, 5, true, "Branch on Bit Set 0", bbs(0)},

	0x90: {"BCC", MODE_RELATIVE, 2, false, "Branch if Carry Clear", (*Chip).opBCC},
	0x91: {"STA", MODE_INDIRECTY, 6, false, "Store Accumulator", (*Chip).opSTA},
	0x92: {"STA", MODE_ZPINDIRECT, 5, true, "Store Accumulator", (*Chip).opSTA},
	0x93: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x94: {"STY", MODE_ZPX, 4, false, "Store Y Register", (*Chip).opSTY},
	0x95: {"STA", MODE_ZPX, 4, false, "Store Accumulator", (*Chip).opSTA},
	0x96: {"STX", MODE_ZPY, 4, false, "Store X Register", (*Chip).opSTX},
	0x97: {"SMB1", MODE_ZP, 5, true, "Set Memory Bit 1", smb(1)},
	0x98: {"TYA", MODE_IMPLIED, 2, false, "Transfer Y to Accumulator", (*Chip).opTYA},
	0x99: {"STA", MODE_ABSOLUTEY, 5, false, "Store Accumulator", (*Chip).opSTA},
	0x9A: {"TXS", MODE_IMPLIED, 2, false, "Transfer X to Stack Pointer", (*Chip).opTXS},
	0x9B: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0x9C: {"STZ", MODE_ABSOLUTE, 4, true, "Store Zero", (*Chip).opSTZ},
	0x9D: {"STA", MODE_ABSOLUTEX, 5, false, "Store Accumulator", (*Chip).opSTA},
	0x9E: {"STZ", MODE_ABSOLUTEX, 5, true, "Store Zero", (*Chip).opSTZ},
	0x9F: {"BBS1", MODE_RELATIVE, 5, true, "Branch on Bit Set 1", bbs(1)},

	0xA0: {"LDY", MODE_IMMEDIATE, 2, false, "Load Y Register", (*Chip).opLDY},
	0xA1: {"LDA", MODE_INDIRECTX, 6, false, "Load Accumulator", (*Chip).opLDA},
	0xA2: {"LDX", MODE_IMMEDIATE, 2, false, "Load X Register", (*Chip).opLDX},
	0xA3: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xA4: {"LDY", MODE_ZP, 3, false, "Load Y Register", (*Chip).opLDY},
	0xA5: {"LDA", MODE_ZP, 3, false, "Load Accumulator", (*Chip).opLDA},
	0xA6: {"LDX", MODE_ZP, 3, false, "Load X Register", (*Chip).opLDX},
	0xA7: {"SMB2", MODE_ZP, 5, true, "Set Memory Bit 2", smb(2)},
	0xA8: {"TAY", MODE_IMPLIED, 2, false, "Transfer Accumulator to Y", (*Chip).opTAY},
	0xA9: {"LDA", MODE_IMMEDIATE, 2, false, "Load Accumulator", (*Chip).opLDA},
	0xAA: {"TAX", MODE_IMPLIED, 2, false, "Transfer Accumulator to X", (*Chip).opTAX},
	0xAB: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xAC: {"LDY", MODE_ABSOLUTE, 4, false, "Load Y Register", (*Chip).opLDY},
	0xAD: {"LDA", MODE_ABSOLUTE, 4, false, "Load Accumulator", (*Chip).opLDA},
	0xAE: {"LDX", MODE_ABSOLUTE, 4, false, "Load X Register", (*Chip).opLDX},
	0xAF: {"BBS2", MODE_RELATIVE, 5, true, "Branch on Bit Set 2", bbs(2)},

	0xB0: {"BCS", MODE_RELATIVE, 2, false, "Branch if Carry Set", (*Chip).opBCS},
	0xB1: {"LDA", MODE_INDIRECTY, 5, false, "Load Accumulator", (*Chip).opLDA},
	0xB2: {"LDA", MODE_ZPINDIRECT, 5, true, "Load Accumulator", (*Chip).opLDA},
	0xB3: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xB4: {"LDY", MODE_ZPX, 4, false, "Load Y Register", (*Chip).opLDY},
	0xB5: {"LDA", MODE_ZPX, 4, false, "Load Accumulator", (*Chip).opLDA},
	0xB6: {"LDX", MODE_ZPY, 4, false, "Load X Register", (*Chip).opLDX},
	0xB7: {"SMB3", MODE_ZP, 5, true, "Set Memory Bit 3", smb(3)},
	0xB8: {"CLV", MODE_IMPLIED, 2, false, "Clear Overflow", (*Chip).opCLV},
	0xB9: {"LDA", MODE_ABSOLUTEY, 4, false, "Load Accumulator", (*Chip).opLDA},
	0xBA: {"TSX", MODE_IMPLIED, 2, false, "Transfer Stack Pointer to X", (*Chip).opTSX},
	0xBB: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xBC: {"LDY", MODE_ABSOLUTEX, 4, false, "Load Y Register", (*Chip).opLDY},
	0xBD: {"LDA", MODE_ABSOLUTEX, 4, false, "Load Accumulator", (*Chip).opLDA},
	0xBE: {"LDX", MODE_ABSOLUTEY, 4, false, "Load X Register", (*Chip).opLDX},
	0xBF: {"BBS3", MODE_RELATIVE, 5, true, "Branch on Bit Set 3", bbs(3)},

	0xC0: {"CPY", MODE_IMMEDIATE, 2, false, "Compare Y Register", (*Chip).opCPY},
	0xC1: {"CMP", MODE_INDIRECTX, 6, false, "Compare Accumulator", (*Chip).opCMP},
	0xC2: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xC3: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xC4: {"CPY", MODE_ZP, 3, false, "Compare Y Register", (*Chip).opCPY},
	0xC5: {"CMP", MODE_ZP, 3, false, "Compare Accumulator", (*Chip).opCMP},
	0xC6: {"DEC", MODE_ZP, 5, false, "Decrement", (*Chip).opDEC},
	0xC7: {"SMB4", MODE_ZP, 5, true, "Set Memory Bit 4", smb(4)},
	0xC8: {"INY", MODE_IMPLIED, 2, false, "Increment Y", (*Chip).opINY},
	0xC9: {"CMP", MODE_IMMEDIATE, 2, false, "Compare Accumulator", (*Chip).opCMP},
	0xCA: {"DEX", MODE_IMPLIED, 2, false, "Decrement X", (*Chip).opDEX},
	0xCB: {"WAI", MODE_IMPLIED, 3, true, "Wait for Interrupt", (*Chip).opWAI},
	0xCC: {"CPY", MODE_ABSOLUTE, 4, false, "Compare Y Register", (*Chip).opCPY},
	0xCD: {"CMP", MODE_ABSOLUTE, 4, false, "Compare Accumulator", (*Chip).opCMP},
	0xCE: {"DEC", MODE_ABSOLUTE, 6, false, "Decrement", (*Chip).opDEC},
	0xCF: {"BBS4", MODE_RELATIVE, 5, true, "Branch on Bit Set 4", bbs(4)},

	0xD0: {"BNE", MODE_RELATIVE, 2, false, "Branch if Not Equal", (*Chip).opBNE},
	0xD1: {"CMP", MODE_INDIRECTY, 5, false, "Compare Accumulator", (*Chip).opCMP},
	0xD2: {"CMP", MODE_ZPINDIRECT, 5, true, "Compare Accumulator", (*Chip).opCMP},
	0xD3: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xD4: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xD5: {"CMP", MODE_ZPX, 4, false, "Compare Accumulator", (*Chip).opCMP},
	0xD6: {"DEC", MODE_ZPX, 6, false, "Decrement", (*Chip).opDEC},
	0xD7: {"SMB5", MODE_ZP, 5, true, "Set Memory Bit 5", smb(5)},
	0xD8: {"CLD", MODE_IMPLIED, 2, false, "Clear Decimal", (*Chip).opCLD},
	0xD9: {"CMP", MODE_ABSOLUTEY, 4, false, "Compare Accumulator", (*Chip).opCMP},
	0xDA: {"PHX", MODE_IMPLIED, 3, true, "Push X", (*Chip).opPHX},
	0xDB: {"STP", MODE_IMPLIED, 3, true, "Stop (Halt)", (*Chip).opSTP},
	0xDC: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xDD: {"CMP", MODE_ABSOLUTEX, 4, false, "Compare Accumulator", (*Chip).opCMP},
	0xDE: {"DEC", MODE_ABSOLUTEX, 7, false, "Decrement", (*Chip).opDEC},
	0xDF: {"BBS5", MODE_RELATIVE, 5, true, "Branch on Bit Set 5", bbs(5)},

	0xE0: {"CPX", MODE_IMMEDIATE, 2, false, "Compare X Register", (*Chip).opCPX},
	0xE1: {"SBC", MODE_INDIRECTX, 6, false, "Subtract with Carry", (*Chip).opSBC},
	0xE2: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xE3: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xE4: {"CPX", MODE_ZP, 3, false, "Compare X Register", (*Chip).opCPX},
	0xE5: {"SBC", MODE_ZP, 3, false, "Subtract with Carry", (*Chip).opSBC},
	0xE6: {"INC", MODE_ZP, 5, false, "Increment", (*Chip).opINC},
	0xE7: {"SMB6", MODE_ZP, 5, true, "Set Memory Bit 6", smb(6)},
	0xE8: {"INX", MODE_IMPLIED, 2, false, "Increment X", (*Chip).opINX},
	0xE9: {"SBC", MODE_IMMEDIATE, 2, false, "Subtract with Carry", (*Chip).opSBC},
	0xEA: {"NOP", MODE_IMPLIED, 2, false, "No Operation", (*Chip).opNOP},
	0xEB: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xEC: {"CPX", MODE_ABSOLUTE, 4, false, "Compare X Register", (*Chip).opCPX},
	0xED: {"SBC", MODE_ABSOLUTE, 4, false, "Subtract with Carry", (*Chip).opSBC},
	0xEE: {"INC", MODE_ABSOLUTE, 6, false, "Increment", (*Chip).opINC},
	0xEF: {"BBS6", MODE_RELATIVE, 5, true, "Branch on Bit Set 6", bbs(6)},

	0xF0: {"BEQ", MODE_RELATIVE, 2, false, "Branch if Equal", (*Chip).opBEQ},
	0xF1: {"SBC", MODE_INDIRECTY, 5, false, "Subtract with Carry", (*Chip).opSBC},
	0xF2: {"SBC", MODE_ZPINDIRECT, 5, true, "Subtract with Carry", (*Chip).opSBC},
	0xF3: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xF4: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xF5: {"SBC", MODE_ZPX, 4, false, "Subtract with Carry", (*Chip).opSBC},
	0xF6: {"INC", MODE_ZPX, 6, false, "Increment", (*Chip).opINC},
	0xF7: {"SMB7", MODE_ZP, 5, true, "Set Memory Bit 7", smb(7)},
	0xF8: {"SED", MODE_IMPLIED, 2, false, "Set Decimal", (*Chip).opSED},
	0xF9: {"SBC", MODE_ABSOLUTEY, 4, false, "Subtract with Carry", (*Chip).opSBC},
	0xFA: {"PLX", MODE_IMPLIED, 4, true, "Pull X", (*Chip).opPLX},
	0xFB: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xFC: {"---", MODE_IMPLIED, 2, false, "Unimplemented", (*Chip).opIllegal},
	0xFD: {"SBC", MODE_ABSOLUTEX, 4, false, "Subtract with Carry", (*Chip).opSBC},
	0xFE: {"INC", MODE_ABSOLUTEX, 7, false, "Increment", (*Chip).opINC},
	0xFF: {"BBS7", MODE_RELATIVE, 5, true, "Branch on Bit Set 7", bbs(7)},
}
