package cpu

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"

	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/irq"
	"github.com/emu65/emu65/logger"
	"github.com/emu65/emu65/memory"
)

const testBase = uint16(0x8000)

// testSource is a settable interrupt source.
type testSource struct {
	irqLine bool
	nmiLine bool
}

func (s *testSource) HasIRQ() bool { return s.irqLine }
func (s *testSource) HasNMI() bool { return s.nmiLine }
func (s *testSource) ClearIRQ()    { s.irqLine = false }
func (s *testSource) ClearNMI()    { s.nmiLine = false }

// setup builds a CMOS chip on a plain bus with the reset vector
// pointing at testBase and the given program loaded there.
func setup(t *testing.T, program []byte) (*Chip, *bus.Bus, *memory.Memory) {
	t.Helper()
	mem := memory.New()
	if err := mem.Load(program, testBase); err != nil {
		t.Fatalf("can't load program - %v", err)
	}
	mem.SetResetVector(testBase)
	b := bus.New(mem)
	c, err := Init(&ChipDef{Chip: CHIP_CMOS})
	if err != nil {
		t.Fatalf("can't initialize chip - %v", err)
	}
	c.Reset(b)
	return c, b, mem
}

// stepCycles single steps and returns the cycles the instruction (or
// interrupt) consumed.
func stepCycles(c *Chip, b *bus.Bus) int {
	c.ExecuteSingleInstruction(b)
	return int(singleStepCycles - c.cycles)
}

func TestInitValidation(t *testing.T) {
	for _, chip := range []ChipType{CHIP_UNIMPLEMENTED, CHIP_MAX, ChipType(99)} {
		if _, err := Init(&ChipDef{Chip: chip}); err == nil {
			t.Errorf("Init with chip type %d should error", chip)
		}
	}
	for _, chip := range []ChipType{CHIP_NMOS, CHIP_CMOS} {
		c, err := Init(&ChipDef{Chip: chip})
		if err != nil {
			t.Fatalf("Init with chip type %d - %v", chip, err)
		}
		if got, want := c.Type(), chip; got != want {
			t.Errorf("Type: got %d want %d", got, want)
		}
	}
}

func TestReset(t *testing.T) {
	c, b, _ := setup(t, []byte{0xEA})
	// Disturb everything then reset.
	c.A, c.X, c.Y, c.SP = 0x12, 0x34, 0x56, 0x20
	c.C, c.Z, c.I, c.D, c.V, c.N = true, true, true, true, true, true
	c.Reset(b)
	want := CpuState{PC: testBase, SP: 0xFF}
	d := NewDebugger()
	d.Attach(c, b)
	if diff := deep.Equal(d.InspectCPU(), want); diff != nil {
		t.Errorf("state after reset differs: %v\n%s", diff, spew.Sdump(d.InspectCPU()))
	}
}

func TestLoadStore(t *testing.T) {
	// LDA #$42 / STA $40, exactly 5 cycles.
	c, b, mem := setup(t, []byte{0xA9, 0x42, 0x85, 0x40})
	c.Execute(5, b)
	if got, want := c.A, uint8(0x42); got != want {
		t.Errorf("A: got %.2X want %.2X", got, want)
	}
	if got, want := mem.Read(0x0040), uint8(0x42); got != want {
		t.Errorf("mem[0x40]: got %.2X want %.2X", got, want)
	}
	if got, want := c.PC, testBase+4; got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
}

func TestJSRRTS(t *testing.T) {
	// JSR $8100 at 0x8000, RTS at 0x8100. 12 cycles round trip.
	c, b, mem := setup(t, []byte{0x20, 0x00, 0x81})
	mem.Write(0x8100, 0x60)
	sp := c.SP
	c.Execute(12, b)
	if got, want := c.PC, testBase+3; got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
	if got, want := c.SP, sp; got != want {
		t.Errorf("SP: got %.2X want %.2X", got, want)
	}
}

func TestIndirectJMPBug(t *testing.T) {
	// JMP ($12FF) with the pointer low byte at the end of the page:
	// the high byte must come from 0x1200, not 0x1300.
	c, b, mem := setup(t, []byte{0x6C, 0xFF, 0x12})
	mem.Write(0x12FF, 0x34)
	mem.Write(0x1200, 0x56)
	mem.Write(0x1300, 0x99)
	c.ExecuteSingleInstruction(b)
	if got, want := c.PC, uint16(0x5634); got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
}

func TestZeroPageWrapIndirectX(t *testing.T) {
	// LDA ($FF,X) with X=1 wraps to the pointer at 0x00/0x01.
	c, b, mem := setup(t, []byte{0xA1, 0xFF})
	c.X = 1
	mem.Write(0x0000, 0x34)
	mem.Write(0x0001, 0x12)
	mem.Write(0x1234, 0x77)
	// Poison the non wrapped locations.
	mem.Write(0x0100, 0x99)
	mem.Write(0x0101, 0x99)
	c.ExecuteSingleInstruction(b)
	if got, want := c.A, uint8(0x77); got != want {
		t.Errorf("A: got %.2X want %.2X", got, want)
	}
}

func TestZeroPageIndexedWrap(t *testing.T) {
	// LDA $F0,X with X=0x20 reads 0x0010, not 0x0110.
	c, b, mem := setup(t, []byte{0xB5, 0xF0})
	c.X = 0x20
	mem.Write(0x0010, 0x55)
	mem.Write(0x0110, 0x99)
	c.ExecuteSingleInstruction(b)
	if got, want := c.A, uint8(0x55); got != want {
		t.Errorf("A: got %.2X want %.2X", got, want)
	}
}

func TestStackPushPullLIFO(t *testing.T) {
	c, b, _ := setup(t, nil)
	// Start near the bottom so the pushes wrap through 0x00.
	c.SP = 0x01
	vals := []uint8{0x11, 0x22, 0x33, 0x44}
	for _, v := range vals {
		c.push(b, v)
	}
	if got, want := c.SP, uint8(0xFD); got != want {
		t.Errorf("SP after pushes: got %.2X want %.2X", got, want)
	}
	for i := len(vals) - 1; i >= 0; i-- {
		if got, want := c.pull(b), vals[i]; got != want {
			t.Errorf("pull %d: got %.2X want %.2X", i, got, want)
		}
	}
	if got, want := c.SP, uint8(0x01); got != want {
		t.Errorf("SP after pulls: got %.2X want %.2X", got, want)
	}
}

func TestADCSBCBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		opcode       uint8
		a, m         uint8
		carry        bool
		wantA        uint8
		wantC, wantV bool
		wantN, wantZ bool
	}{
		{"ADC overflow 0x7F+1", 0x69, 0x7F, 0x01, false, 0x80, false, true, true, false},
		{"ADC carry out", 0x69, 0xFF, 0x01, false, 0x00, true, false, false, true},
		{"ADC with carry in", 0x69, 0x10, 0x10, true, 0x21, false, false, false, false},
		{"SBC overflow 0x80-1", 0xE9, 0x80, 0x01, true, 0x7F, true, true, false, false},
		{"SBC borrow", 0xE9, 0x00, 0x01, true, 0xFF, false, false, true, false},
		{"SBC no borrow", 0xE9, 0x10, 0x01, true, 0x0F, true, false, false, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, b, _ := setup(t, []byte{test.opcode, test.m})
			c.A = test.a
			c.C = test.carry
			c.ExecuteSingleInstruction(b)
			if got, want := c.A, test.wantA; got != want {
				t.Errorf("A: got %.2X want %.2X", got, want)
			}
			if got, want := c.C, test.wantC; got != want {
				t.Errorf("C: got %t want %t", got, want)
			}
			if got, want := c.V, test.wantV; got != want {
				t.Errorf("V: got %t want %t", got, want)
			}
			if got, want := c.N, test.wantN; got != want {
				t.Errorf("N: got %t want %t", got, want)
			}
			if got, want := c.Z, test.wantZ; got != want {
				t.Errorf("Z: got %t want %t", got, want)
			}
		})
	}
}

func TestDecimalFlagIgnored(t *testing.T) {
	// SED then ADC: the result must stay binary.
	c, b, _ := setup(t, []byte{0xF8, 0x69, 0x09})
	c.A = 0x09
	c.Execute(4, b)
	if got, want := c.A, uint8(0x12); got != want {
		t.Errorf("A: got %.2X want %.2X (binary, not BCD)", got, want)
	}
	if !c.D {
		t.Error("D should be set by SED")
	}
}

func TestFlagConservationPHPPLP(t *testing.T) {
	// PHP / LDA #$00 (touches Z,N) / PLP must restore the flags.
	c, b, _ := setup(t, []byte{0x08, 0xA9, 0x00, 0x28})
	c.C, c.V, c.N = true, true, true
	c.Z, c.I, c.D = false, false, false
	before := []bool{c.C, c.Z, c.I, c.D, c.V, c.N}
	c.Execute(9, b)
	after := []bool{c.C, c.Z, c.I, c.D, c.V, c.N}
	if diff := deep.Equal(before, after); diff != nil {
		t.Errorf("flags not conserved: %v", diff)
	}
}

func TestBranchTiming(t *testing.T) {
	tests := []struct {
		name       string
		start      uint16
		program    []byte
		zero       bool
		wantPC     uint16
		wantCycles int
	}{
		{"not taken", 0x8000, []byte{0xF0, 0x10}, false, 0x8002, 2},
		{"taken same page", 0x8000, []byte{0xF0, 0x10}, true, 0x8012, 3},
		{"taken cross page", 0x8080, []byte{0xF0, 0x7F}, true, 0x8101, 4},
		{"taken backward cross", 0x8000, []byte{0xF0, 0xFB}, true, 0x7FFD, 4},
		{"end of page target", 0x80FE, []byte{0xF0, 0x03}, true, 0x8103, 3},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mem := memory.New()
			if err := mem.Load(test.program, test.start); err != nil {
				t.Fatalf("load - %v", err)
			}
			mem.SetResetVector(test.start)
			b := bus.New(mem)
			c, err := Init(&ChipDef{Chip: CHIP_CMOS})
			if err != nil {
				t.Fatalf("init - %v", err)
			}
			c.Reset(b)
			c.Z = test.zero
			cycles := stepCycles(c, b)
			if got, want := c.PC, test.wantPC; got != want {
				t.Errorf("PC: got %.4X want %.4X", got, want)
			}
			if got, want := cycles, test.wantCycles; got != want {
				t.Errorf("cycles: got %d want %d", got, want)
			}
		})
	}
}

func TestPageCrossPenalty(t *testing.T) {
	tests := []struct {
		name       string
		program    []byte
		x          uint8
		wantCycles int
	}{
		{"LDA abs,X no cross", []byte{0xBD, 0x00, 0x20}, 0x10, 4},
		{"LDA abs,X cross", []byte{0xBD, 0xF0, 0x20}, 0x20, 5},
		{"STA abs,X always 5", []byte{0x9D, 0xF0, 0x20}, 0x20, 5},
		{"STA abs,X no cross still 5", []byte{0x9D, 0x00, 0x20}, 0x10, 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, b, _ := setup(t, test.program)
			c.X = test.x
			if got, want := stepCycles(c, b), test.wantCycles; got != want {
				t.Errorf("cycles: got %d want %d", got, want)
			}
		})
	}
}

func TestIndirectYPageCross(t *testing.T) {
	c, b, mem := setup(t, []byte{0xB1, 0x40})
	mem.Write(0x0040, 0xF0)
	mem.Write(0x0041, 0x20)
	c.Y = 0x20
	if got, want := stepCycles(c, b), 6; got != want {
		t.Errorf("cycles: got %d want %d", got, want)
	}
}

func TestIRQMasked(t *testing.T) {
	src := &testSource{irqLine: true}
	intr := irq.NewController()
	intr.RegisterSource(src)
	c, b, _ := setup(t, []byte{0xEA})
	c.SetController(intr)
	c.I = true
	c.ExecuteSingleInstruction(b)
	// The NOP must retire; the IRQ stays pending.
	if got, want := c.PC, testBase+1; got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
	if !src.irqLine {
		t.Error("masked IRQ should not be acknowledged")
	}
}

func TestIRQTaken(t *testing.T) {
	src := &testSource{irqLine: true}
	intr := irq.NewController()
	intr.RegisterSource(src)
	c, b, mem := setup(t, []byte{0xEA})
	mem.SetIRQVector(0x9000)
	c.SetController(intr)
	c.I = false
	sp := c.SP
	c.ExecuteSingleInstruction(b)
	if got, want := c.PC, uint16(0x9000); got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
	if !c.I {
		t.Error("I must be set after servicing")
	}
	if src.irqLine {
		t.Error("IRQ line should be acknowledged")
	}
	// Stack holds PC high, PC low, P with bit 5 set and B clear.
	if got, want := mem.Read(0x0100|uint16(sp)), uint8(testBase>>8); got != want {
		t.Errorf("pushed PCH: got %.2X want %.2X", got, want)
	}
	if got, want := mem.Read(0x0100|uint16(sp-1)), uint8(testBase&0xFF); got != want {
		t.Errorf("pushed PCL: got %.2X want %.2X", got, want)
	}
	p := mem.Read(0x0100 | uint16(sp-2))
	if p&P_S1 == 0 {
		t.Errorf("pushed P must have bit 5 set: %.2X", p)
	}
	if p&P_B != 0 {
		t.Errorf("pushed P must have B clear on hardware IRQ: %.2X", p)
	}
}

func TestNMIOverridesMask(t *testing.T) {
	src := &testSource{nmiLine: true}
	intr := irq.NewController()
	intr.RegisterSource(src)
	c, b, mem := setup(t, []byte{0xEA})
	mem.SetNMIVector(0x9500)
	c.SetController(intr)
	c.I = true
	c.ExecuteSingleInstruction(b)
	if got, want := c.PC, uint16(0x9500); got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
	if src.nmiLine {
		t.Error("NMI line should be acknowledged")
	}
}

func TestNMIPriorityOverIRQ(t *testing.T) {
	src := &testSource{irqLine: true, nmiLine: true}
	intr := irq.NewController()
	intr.RegisterSource(src)
	c, b, mem := setup(t, []byte{0xEA})
	mem.SetNMIVector(0x9500)
	mem.SetIRQVector(0x9000)
	c.SetController(intr)
	c.ExecuteSingleInstruction(b)
	if got, want := c.PC, uint16(0x9500); got != want {
		t.Errorf("PC: got %.4X want %.4X (NMI wins)", got, want)
	}
	if !src.irqLine {
		t.Error("IRQ must remain pending after NMI wins")
	}
}

func TestBRKRTI(t *testing.T) {
	// BRK vectors through 0xFFFE; the handler returns with RTI.
	c, b, mem := setup(t, []byte{0x00, 0xFF, 0xA9, 0x42})
	mem.SetIRQVector(0x9000)
	mem.Write(0x9000, 0x40) // RTI
	c.C = true
	sp := c.SP
	c.ExecuteSingleInstruction(b)
	if got, want := c.PC, uint16(0x9000); got != want {
		t.Fatalf("PC after BRK: got %.4X want %.4X", got, want)
	}
	if !c.I {
		t.Error("I must be set after BRK")
	}
	p := mem.Read(0x0100 | uint16(sp-2))
	if p&P_B == 0 || p&P_S1 == 0 {
		t.Errorf("BRK must push P with B and bit 5 set: %.2X", p)
	}
	// The pushed return address skips the signature byte.
	ret := uint16(mem.Read(0x0100|uint16(sp)))<<8 | uint16(mem.Read(0x0100|uint16(sp-1)))
	if got, want := ret, testBase+2; got != want {
		t.Errorf("pushed return: got %.4X want %.4X", got, want)
	}
	c.ExecuteSingleInstruction(b)
	if got, want := c.PC, testBase+2; got != want {
		t.Errorf("PC after RTI: got %.4X want %.4X", got, want)
	}
	if !c.C {
		t.Error("RTI must restore C")
	}
	if got, want := c.SP, sp; got != want {
		t.Errorf("SP after RTI: got %.2X want %.2X", got, want)
	}
}

func TestUnimplementedOpcode(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	c, b, _ := setup(t, []byte{0x02})
	cycles := stepCycles(c, b)
	if got, want := c.PC, testBase+1; got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
	if got, want := cycles, 2; got != want {
		t.Errorf("cycles: got %d want %d", got, want)
	}
	if !strings.Contains(buf.String(), "unimplemented opcode") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestCMOSOpcodeOnNMOS(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	mem := memory.New()
	mem.SetResetVector(testBase)
	mem.Write(testBase, 0xDA) // PHX, 65C02 only
	b := bus.New(mem)
	c, err := Init(&ChipDef{Chip: CHIP_NMOS})
	if err != nil {
		t.Fatalf("init - %v", err)
	}
	c.Reset(b)
	c.X = 0x42
	sp := c.SP
	c.ExecuteSingleInstruction(b)
	if got, want := c.SP, sp; got != want {
		t.Errorf("SP must not move on NMOS: got %.2X want %.2X", got, want)
	}
	if !strings.Contains(buf.String(), "unimplemented opcode") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func Test65C02Additions(t *testing.T) {
	t.Run("PHX PLY", func(t *testing.T) {
		c, b, _ := setup(t, []byte{0xDA, 0x7A})
		c.X = 0x42
		c.Execute(7, b)
		if got, want := c.Y, uint8(0x42); got != want {
			t.Errorf("Y: got %.2X want %.2X", got, want)
		}
	})
	t.Run("STZ", func(t *testing.T) {
		c, b, mem := setup(t, []byte{0x64, 0x40})
		mem.Write(0x0040, 0xFF)
		c.ExecuteSingleInstruction(b)
		if got, want := mem.Read(0x0040), uint8(0x00); got != want {
			t.Errorf("mem[0x40]: got %.2X want %.2X", got, want)
		}
	})
	t.Run("BRA", func(t *testing.T) {
		c, b, _ := setup(t, []byte{0x80, 0x10})
		if got, want := stepCycles(c, b), 3; got != want {
			t.Errorf("cycles: got %d want %d", got, want)
		}
		if got, want := c.PC, testBase+0x12; got != want {
			t.Errorf("PC: got %.4X want %.4X", got, want)
		}
	})
	t.Run("INC A", func(t *testing.T) {
		c, b, _ := setup(t, []byte{0x1A})
		c.A = 0xFF
		c.ExecuteSingleInstruction(b)
		if got, want := c.A, uint8(0x00); got != want {
			t.Errorf("A: got %.2X want %.2X", got, want)
		}
		if !c.Z {
			t.Error("Z must be set")
		}
	})
	t.Run("BIT imm only sets Z", func(t *testing.T) {
		c, b, _ := setup(t, []byte{0x89, 0xC0})
		c.A = 0x00
		c.N, c.V = false, false
		c.ExecuteSingleInstruction(b)
		if !c.Z {
			t.Error("Z must be set")
		}
		if c.N || c.V {
			t.Error("BIT #imm must not touch N or V")
		}
	})
	t.Run("TSB TRB", func(t *testing.T) {
		c, b, mem := setup(t, []byte{0x04, 0x40, 0x14, 0x40})
		mem.Write(0x0040, 0x0F)
		c.A = 0x03
		c.ExecuteSingleInstruction(b)
		if got, want := mem.Read(0x0040), uint8(0x0F); got != want {
			t.Errorf("TSB result: got %.2X want %.2X", got, want)
		}
		if c.Z {
			t.Error("TSB: Z must be clear, A&M was non zero")
		}
		c.ExecuteSingleInstruction(b)
		if got, want := mem.Read(0x0040), uint8(0x0C); got != want {
			t.Errorf("TRB result: got %.2X want %.2X", got, want)
		}
	})
	t.Run("RMB SMB", func(t *testing.T) {
		c, b, mem := setup(t, []byte{0x07, 0x40, 0x87, 0x41})
		mem.Write(0x0040, 0xFF)
		mem.Write(0x0041, 0x00)
		c.Execute(10, b)
		if got, want := mem.Read(0x0040), uint8(0xFE); got != want {
			t.Errorf("RMB0: got %.2X want %.2X", got, want)
		}
		if got, want := mem.Read(0x0041), uint8(0x01); got != want {
			t.Errorf("SMB0: got %.2X want %.2X", got, want)
		}
	})
	t.Run("BBR BBS", func(t *testing.T) {
		c, b, mem := setup(t, []byte{0x0F, 0x40, 0x10})
		mem.Write(0x0040, 0xFE) // bit 0 clear, branch taken
		c.ExecuteSingleInstruction(b)
		if got, want := c.PC, testBase+3+0x10; got != want {
			t.Errorf("BBR0 PC: got %.4X want %.4X", got, want)
		}
	})
	t.Run("LDA (zp)", func(t *testing.T) {
		c, b, mem := setup(t, []byte{0xB2, 0x40})
		mem.Write(0x0040, 0x34)
		mem.Write(0x0041, 0x12)
		mem.Write(0x1234, 0x77)
		c.ExecuteSingleInstruction(b)
		if got, want := c.A, uint8(0x77); got != want {
			t.Errorf("A: got %.2X want %.2X", got, want)
		}
	})
	t.Run("JMP (abs,X)", func(t *testing.T) {
		c, b, mem := setup(t, []byte{0x7C, 0x00, 0x90})
		c.X = 0x04
		mem.Write(0x9004, 0x34)
		mem.Write(0x9005, 0x12)
		c.ExecuteSingleInstruction(b)
		if got, want := c.PC, uint16(0x1234); got != want {
			t.Errorf("PC: got %.4X want %.4X", got, want)
		}
	})
}

func TestWAI(t *testing.T) {
	src := &testSource{}
	intr := irq.NewController()
	intr.RegisterSource(src)
	c, b, mem := setup(t, []byte{0xCB, 0xEA})
	mem.SetIRQVector(0x9000)
	c.SetController(intr)
	c.I = true
	c.ExecuteSingleInstruction(b)
	if !c.Waiting() {
		t.Fatal("WAI must park the chip")
	}
	// Nothing pending: the budget drains without executing.
	c.Execute(100, b)
	if got, want := c.PC, testBase+1; got != want {
		t.Errorf("PC while parked: got %.4X want %.4X", got, want)
	}
	// A masked IRQ resumes execution without vectoring.
	src.irqLine = true
	c.ExecuteSingleInstruction(b)
	if c.Waiting() {
		t.Error("interrupt line must clear the wait")
	}
	if got, want := c.PC, testBase+2; got != want {
		t.Errorf("PC after resume: got %.4X want %.4X (NOP, not the IRQ vector)", got, want)
	}
}

func TestSTP(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	c, b, _ := setup(t, []byte{0xDB, 0xEA})
	c.Execute(100, b)
	if !c.Halted() {
		t.Fatal("STP must halt the chip")
	}
	if got, want := c.PC, testBase+1; got != want {
		t.Errorf("PC: got %.4X want %.4X", got, want)
	}
	// Still halted: further execution is refused.
	c.Execute(100, b)
	if got, want := c.PC, testBase+1; got != want {
		t.Errorf("PC after second Execute: got %.4X want %.4X", got, want)
	}
	c.Reset(b)
	if c.Halted() {
		t.Error("Reset must clear the halt")
	}
}

func TestInstructionGuard(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	mem := memory.New()
	mem.SetResetVector(testBase)
	// JMP $8000: spins forever.
	mem.Write(testBase, 0x4C)
	mem.Write(testBase+1, 0x00)
	mem.Write(testBase+2, 0x80)
	b := bus.New(mem)
	c, err := Init(&ChipDef{Chip: CHIP_CMOS, GuardLimit: 10})
	if err != nil {
		t.Fatalf("init - %v", err)
	}
	c.Reset(b)
	c.Execute(1000000, b)
	if !strings.Contains(buf.String(), "execution limit reached") {
		t.Errorf("expected guard warning, got %q", buf.String())
	}

	// With the guard disabled the budget is the only bound.
	buf.Reset()
	c2, err := Init(&ChipDef{Chip: CHIP_CMOS, DisableGuard: true})
	if err != nil {
		t.Fatalf("init - %v", err)
	}
	c2.Reset(b)
	c2.Execute(3000, b)
	if strings.Contains(buf.String(), "execution limit reached") {
		t.Errorf("guard fired while disabled: %q", buf.String())
	}
}

func TestShiftsAndRotates(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		a      uint8
		carry  bool
		wantA  uint8
		wantC  bool
	}{
		{"ASL", 0x0A, 0x81, false, 0x02, true},
		{"LSR", 0x4A, 0x01, false, 0x00, true},
		{"ROL carry in", 0x2A, 0x80, true, 0x01, true},
		{"ROR carry in", 0x6A, 0x01, true, 0x80, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, b, _ := setup(t, []byte{test.opcode})
			c.A = test.a
			c.C = test.carry
			c.ExecuteSingleInstruction(b)
			if got, want := c.A, test.wantA; got != want {
				t.Errorf("A: got %.2X want %.2X", got, want)
			}
			if got, want := c.C, test.wantC; got != want {
				t.Errorf("C: got %t want %t", got, want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		a, m  uint8
		wantC bool
		wantZ bool
		wantN bool
	}{
		{"equal", 0x42, 0x42, true, true, false},
		{"greater", 0x43, 0x42, true, false, false},
		{"less", 0x41, 0x42, false, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, b, _ := setup(t, []byte{0xC9, test.m})
			c.A = test.a
			c.ExecuteSingleInstruction(b)
			if c.C != test.wantC || c.Z != test.wantZ || c.N != test.wantN {
				t.Errorf("flags: got C=%t Z=%t N=%t want C=%t Z=%t N=%t",
					c.C, c.Z, c.N, test.wantC, test.wantZ, test.wantN)
			}
			if got, want := c.A, test.a; got != want {
				t.Errorf("A must not change: got %.2X want %.2X", got, want)
			}
		})
	}
}

func TestTXSNoFlags(t *testing.T) {
	c, b, _ := setup(t, []byte{0x9A})
	c.X = 0x00
	c.Z, c.N = false, false
	c.ExecuteSingleInstruction(b)
	if got, want := c.SP, uint8(0x00); got != want {
		t.Errorf("SP: got %.2X want %.2X", got, want)
	}
	if c.Z || c.N {
		t.Error("TXS must not touch flags")
	}
}

func TestBITMemory(t *testing.T) {
	c, b, mem := setup(t, []byte{0x24, 0x40})
	mem.Write(0x0040, 0xC0)
	c.A = 0x00
	c.ExecuteSingleInstruction(b)
	if !c.Z || !c.N || !c.V {
		t.Errorf("BIT zp: got Z=%t N=%t V=%t want all true", c.Z, c.N, c.V)
	}
}
