// Package disassemble implements a disassembler for 6502/65C02
// opcodes, driven by the CPU's metadata table so the two can never
// disagree about mnemonics or addressing modes.
package disassemble

import (
	"fmt"
	"strings"

	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/cpu"
)

// Step will take the given PC value and disassemble the instruction at
// that location, returning a string for the disassembly and the bytes
// forward the PC should move to get to the next instruction. This does
// not interpret the instructions so LDA, JMP, LDA in memory will
// disassemble as that sequence and not follow the JMP. It always reads
// up to two bytes past the current PC so make sure those addresses are
// valid.
func Step(pc uint16, b *bus.Bus) (string, int) {
	o := b.Read(pc)
	entry := &cpu.Opcodes[o]
	op := entry.Mnemonic

	// All instructions potentially use the next two bytes, so read
	// them now. Sign extend the first for branch targets.
	pc1 := b.Read(pc + 1)
	pc2 := b.Read(pc + 2)
	pc116 := uint16(int16(int8(pc1)))

	count := 2 // Default byte count, adjusted below.
	out := fmt.Sprintf("%.4X %.2X ", pc, o)

	// The zero page bit branches take a zero page operand and a
	// relative one; they are the only three byte instructions tagged
	// Relative in the table.
	if strings.HasPrefix(op, "BBR") || strings.HasPrefix(op, "BBS") {
		pc216 := uint16(int16(int8(pc2)))
		out += fmt.Sprintf("%.2X %.2X   %s %.2X,%.2X (%.4X) ", pc1, pc2, op, pc1, pc2, pc+pc216+3)
		return out, 3
	}

	switch entry.Mode {
	case cpu.MODE_IMMEDIATE:
		out += fmt.Sprintf("%.2X      %s #%.2X       ", pc1, op, pc1)
	case cpu.MODE_ZP:
		out += fmt.Sprintf("%.2X      %s %.2X        ", pc1, op, pc1)
	case cpu.MODE_ZPX:
		out += fmt.Sprintf("%.2X      %s %.2X,X      ", pc1, op, pc1)
	case cpu.MODE_ZPY:
		out += fmt.Sprintf("%.2X      %s %.2X,Y      ", pc1, op, pc1)
	case cpu.MODE_INDIRECTX:
		out += fmt.Sprintf("%.2X      %s (%.2X,X)    ", pc1, op, pc1)
	case cpu.MODE_INDIRECTY:
		out += fmt.Sprintf("%.2X      %s (%.2X),Y    ", pc1, op, pc1)
	case cpu.MODE_ZPINDIRECT:
		out += fmt.Sprintf("%.2X      %s (%.2X)      ", pc1, op, pc1)
	case cpu.MODE_ABSOLUTE:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X      ", pc1, pc2, op, pc2, pc1)
		count++
	case cpu.MODE_ABSOLUTEX:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,X    ", pc1, pc2, op, pc2, pc1)
		count++
	case cpu.MODE_ABSOLUTEY:
		out += fmt.Sprintf("%.2X %.2X   %s %.2X%.2X,Y    ", pc1, pc2, op, pc2, pc1)
		count++
	case cpu.MODE_INDIRECT:
		out += fmt.Sprintf("%.2X %.2X   %s (%.2X%.2X)    ", pc1, pc2, op, pc2, pc1)
		count++
	case cpu.MODE_RELATIVE:
		out += fmt.Sprintf("%.2X      %s %.2X (%.4X) ", pc1, op, pc1, pc+pc116+2)
	default:
		// Implied and Accumulator, plus the unimplemented slots.
		out += fmt.Sprintf("        %s           ", op)
		count--
		if o == 0x00 {
			// BRK skips its signature byte.
			count++
		}
	}
	return out, count
}
