// emu65 is the command line driver: it loads a flat binary into
// memory, wires up the standard peripherals and runs the CPU, either
// freely or under the interactive monitor.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/urfave/cli.v2"

	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/cpu"
	"github.com/emu65/emu65/disassemble"
	"github.com/emu65/emu65/irq"
	"github.com/emu65/emu65/logger"
	"github.com/emu65/emu65/memory"
	"github.com/emu65/emu65/monitor"
	"github.com/emu65/emu65/pia"
	"github.com/emu65/emu65/timer"
)

// runQuantum is how many cycles each Execute slice covers before
// devices get a chance to tick.
const runQuantum = uint32(10000)

func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func main() {
	app := &cli.App{
		Name:  "emu65",
		Usage: "Run 6502/65C02 object code against the emulated machine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rom",
				Aliases: []string{"r"},
				Usage:   "flat binary image to load",
			},
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "load address for the image",
				Value:   "0x8000",
			},
			&cli.StringFlag{
				Name:  "reset",
				Usage: "reset vector target (defaults to the base address)",
			},
			&cli.UintFlag{
				Name:    "cycles",
				Aliases: []string{"c"},
				Usage:   "cycle budget to run (0 runs until the CPU halts)",
				Value:   1000000,
			},
			&cli.BoolFlag{
				Name:  "nmos",
				Usage: "emulate a strict NMOS 6502 (65C02 opcodes become NOPs)",
			},
			&cli.BoolFlag{
				Name:  "step",
				Usage: "start the interactive monitor instead of running",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "disassemble every retired instruction to stderr once the run ends",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "log level: none, error, warn, info, debug",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "input",
				Usage: "text to feed the keyboard PIA before running",
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if lvl := os.Getenv("EMU65_LOG_LEVEL"); lvl != "" {
		l, err := logger.ParseLevel(lvl)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		logger.SetLevel(l)
	} else {
		l, err := logger.ParseLevel(c.String("log"))
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		logger.SetLevel(l)
	}

	rom := c.String("rom")
	if rom == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("--rom is required", 2)
	}
	base, err := parseAddr(c.String("base"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	mem := memory.New()
	if err := mem.LoadFile(rom, base); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	reset := base
	if s := c.String("reset"); s != "" {
		if reset, err = parseAddr(s); err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}
	if mem.ReadWord(memory.RESET_VECTOR) == 0 {
		mem.SetResetVector(reset)
	}

	b := bus.New(mem)
	keyboard := pia.New()
	b.RegisterDevice(keyboard)
	tmr := timer.New()
	b.RegisterDevice(tmr)
	intr := irq.NewController()
	intr.RegisterSource(tmr)

	chipType := cpu.CHIP_CMOS
	if c.Bool("nmos") {
		chipType = cpu.CHIP_NMOS
	}
	chip, err := cpu.Init(&cpu.ChipDef{Chip: chipType, Controller: intr})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	chip.Reset(b)

	if in := c.String("input"); in != "" {
		keyboard.PushLine(in)
	}

	if c.Bool("step") {
		if err := monitor.Run(chip, b); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		fmt.Print(keyboard.Display())
		return nil
	}

	var dbg *cpu.Debugger
	if c.Bool("trace") {
		dbg = cpu.NewDebugger()
		dbg.Attach(chip, b)
	}

	budget := uint32(c.Uint("cycles"))
	for remaining := budget; budget == 0 || remaining > 0; {
		quantum := runQuantum
		if budget != 0 && remaining < quantum {
			quantum = remaining
		}
		chip.Execute(quantum, b)
		tmr.Tick(quantum)
		if budget != 0 {
			remaining -= quantum
		}
		if chip.Halted() {
			break
		}
	}

	if dbg != nil {
		for _, ev := range dbg.TraceEvents() {
			text, _ := disassemble.Step(ev.PC, b)
			fmt.Fprintln(os.Stderr, text)
		}
	}
	fmt.Print(keyboard.Display())
	return nil
}
