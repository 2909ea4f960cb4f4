// Package textscreen implements a 40 column by 24 row memory mapped
// text framebuffer in the spirit of classic 8 bit machines. There is
// no rendering here: the cell buffer and cursor are bus visible state,
// and hosts read the screen back as text.
//
// Register map:
//
//	$F000-$F3BF  cell buffer, row major (40x24 = 960 bytes)
//	$F3FC        cursor column (0-39)
//	$F3FD        cursor row (0-23)
//	$F3FE        control (see bit constants)
//	$F3FF        character out port: writing prints at the cursor
package textscreen

import (
	"strings"

	"github.com/emu65/emu65/bus"
)

var _ = bus.Device(&Chip{})

const (
	Width  = 40
	Height = 24

	VRAM_START = uint16(0xF000)
	VRAM_END   = VRAM_START + Width*Height - 1
	CURSOR_COL = uint16(0xF3FC)
	CURSOR_ROW = uint16(0xF3FD)
	CONTROL    = uint16(0xF3FE)
	CHAR_OUT   = uint16(0xF3FF)

	CTRL_AUTO_SCROLL    = uint8(0x01) // Scroll up when printing past the last row
	CTRL_CLEAR_SCREEN   = uint8(0x02) // Write 1 to clear
	CTRL_CURSOR_VISIBLE = uint8(0x80)
)

// Chip is the screen state.
type Chip struct {
	cells   [Width * Height]uint8
	col     uint8
	row     uint8
	control uint8
}

// New returns a cleared screen with auto scroll on and the cursor
// visible.
func New() *Chip {
	s := &Chip{control: CTRL_AUTO_SCROLL | CTRL_CURSOR_VISIBLE}
	s.clear()
	return s
}

func (s *Chip) clear() {
	for i := range s.cells {
		s.cells[i] = ' '
	}
	s.col, s.row = 0, 0
}

// HandlesRead implements the interface for bus.Device.
func (s *Chip) HandlesRead(addr uint16) bool {
	return addr >= VRAM_START && addr <= VRAM_END || addr >= CURSOR_COL && addr <= CHAR_OUT
}

// HandlesWrite implements the interface for bus.Device.
func (s *Chip) HandlesWrite(addr uint16) bool {
	return s.HandlesRead(addr)
}

// Read implements the interface for bus.Device.
func (s *Chip) Read(addr uint16) uint8 {
	switch {
	case addr >= VRAM_START && addr <= VRAM_END:
		return s.cells[addr-VRAM_START]
	case addr == CURSOR_COL:
		return s.col
	case addr == CURSOR_ROW:
		return s.row
	case addr == CONTROL:
		return s.control
	}
	return 0x00
}

// Write implements the interface for bus.Device.
func (s *Chip) Write(addr uint16, val uint8) {
	switch {
	case addr >= VRAM_START && addr <= VRAM_END:
		s.cells[addr-VRAM_START] = val
	case addr == CURSOR_COL:
		if val < Width {
			s.col = val
		}
	case addr == CURSOR_ROW:
		if val < Height {
			s.row = val
		}
	case addr == CONTROL:
		if val&CTRL_CLEAR_SCREEN != 0 {
			s.clear()
		}
		s.control = val &^ CTRL_CLEAR_SCREEN
	case addr == CHAR_OUT:
		s.print(val)
	}
}

// print handles one character including CR/LF and scrolling.
func (s *Chip) print(c uint8) {
	switch c {
	case '\r':
		s.col = 0
		return
	case '\n':
		s.col = 0
		s.lineFeed()
		return
	}
	if c < 0x20 || c > 0x7E {
		return
	}
	s.cells[int(s.row)*Width+int(s.col)] = c
	s.col++
	if s.col >= Width {
		s.col = 0
		s.lineFeed()
	}
}

func (s *Chip) lineFeed() {
	if s.row < Height-1 {
		s.row++
		return
	}
	if s.control&CTRL_AUTO_SCROLL == 0 {
		// Stay on the last row; output overwrites in place.
		return
	}
	copy(s.cells[:], s.cells[Width:])
	for i := (Height - 1) * Width; i < Height*Width; i++ {
		s.cells[i] = ' '
	}
}

// SetCursor positions the cursor. A coordinate outside the screen is
// ignored and that axis keeps its current value.
func (s *Chip) SetCursor(col, row uint8) {
	if col < Width {
		s.col = col
	}
	if row < Height {
		s.row = row
	}
}

// Cursor returns the current cursor position.
func (s *Chip) Cursor() (col, row uint8) {
	return s.col, s.row
}

// Buffer returns the screen contents as Height newline separated
// lines.
func (s *Chip) Buffer() string {
	var sb strings.Builder
	for r := 0; r < Height; r++ {
		sb.Write(s.cells[r*Width : (r+1)*Width])
		if r < Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
