// Package monitor implements an interactive machine monitor: a
// terminal UI that single steps the CPU, showing registers, flags, the
// disassembly at PC and memory around the interesting pages.
package monitor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/cpu"
	"github.com/emu65/emu65/disassemble"
)

var (
	paneStyle  = lipgloss.NewStyle().Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Bold(true)
)

type model struct {
	chip *cpu.Chip
	bus  *bus.Bus

	prevPC uint16
	steps  int
}

// Init implements the interface for tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements the interface for tea.Model. Space or j steps one
// instruction, r resets, q quits.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.chip.PC
			m.chip.ExecuteSingleInstruction(m.bus)
			m.steps++
		case "r":
			m.chip.Reset(m.bus)
			m.steps = 0
		}
	}
	return m, nil
}

// hexLine renders 16 bytes starting at addr, bracketing the byte at
// the current PC.
func (m model) hexLine(addr uint16) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%04X | ", addr)
	for i := uint16(0); i < 16; i++ {
		b := m.bus.Memory().Read(addr + i)
		if addr+i == m.chip.PC {
			fmt.Fprintf(&sb, "[%02X]", b)
		} else {
			fmt.Fprintf(&sb, " %02X ", b)
		}
	}
	return sb.String()
}

func (m model) memoryPane() string {
	lines := []string{labelStyle.Render("memory")}
	// Zero page head, the stack top and the code around PC.
	for _, base := range []uint16{0x0000, 0x0010, 0x01F0} {
		lines = append(lines, m.hexLine(base))
	}
	pc := m.chip.PC &^ 0x000F
	for i := uint16(0); i < 4; i++ {
		lines = append(lines, m.hexLine(pc+16*i))
	}
	return strings.Join(lines, "\n")
}

func (m model) statusPane() string {
	c := m.chip
	flags := ""
	for _, f := range []struct {
		sym string
		on  bool
	}{{"N", c.N}, {"V", c.V}, {"-", true}, {"B", c.B}, {"D", c.D}, {"I", c.I}, {"Z", c.Z}, {"C", c.C}} {
		if f.on {
			flags += f.sym + " "
		} else {
			flags += ". "
		}
	}
	return fmt.Sprintf(`%s
PC: %04X (%04X)
SP: %02X
 A: %02X
 X: %02X
 Y: %02X
N V - B D I Z C
%s
steps: %d`,
		labelStyle.Render("cpu"),
		c.PC, m.prevPC, c.SP, c.A, c.X, c.Y, flags, m.steps)
}

func (m model) codePane() string {
	lines := []string{labelStyle.Render("code")}
	pc := m.chip.PC
	for i := 0; i < 6; i++ {
		text, n := disassemble.Step(pc, m.bus)
		lines = append(lines, text)
		pc += uint16(n)
	}
	entry := &cpu.Opcodes[m.bus.Memory().Read(m.chip.PC)]
	lines = append(lines, "", spew.Sprintf("%v %v cycles=%d", entry.Mnemonic, entry.Mode, entry.Cycles))
	return strings.Join(lines, "\n")
}

// View implements the interface for tea.Model.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			paneStyle.Render(m.memoryPane()),
			paneStyle.Render(m.statusPane()),
		),
		paneStyle.Render(m.codePane()),
		paneStyle.Render("space/j step  r reset  q quit"),
	)
}

// Run starts the interactive monitor over an already reset chip and
// bus. It returns when the user quits.
func Run(c *cpu.Chip, b *bus.Bus) error {
	_, err := tea.NewProgram(model{chip: c, bus: b}).Run()
	return err
}
