// disasm65 takes a filename, loads it and disassembles it to stdout
// starting at the first instruction. If the filename ends in .prg
// (case insensitive) the first two bytes are taken as the load
// address; otherwise the image is placed at --offset.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/disassemble"
	"github.com/emu65/emu65/memory"
)

var (
	startPC = flag.Int("start_pc", -1, "PC value to start disassembling (defaults to the load address)")
	offset  = flag.Int("offset", 0x8000, "Offset into RAM to start loading data. Ignored for PRG files.")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-start_pc <PC> -offset <offset>] <filename>", os.Args[0])
	}
	fn := flag.Args()[0]

	data, err := os.ReadFile(fn)
	if err != nil {
		log.Fatalf("Can't open %s - %v", fn, err)
	}

	load := uint16(*offset)
	if strings.HasSuffix(strings.ToLower(fn), ".prg") {
		if len(data) < 2 {
			log.Fatalf("PRG file %s too short", fn)
		}
		load = uint16(data[1])<<8 | uint16(data[0])
		data = data[2:]
	}

	mem := memory.New()
	if err := mem.Load(data, load); err != nil {
		log.Fatalf("Can't load %s - %v", fn, err)
	}
	b := bus.New(mem)

	pc := load
	if *startPC >= 0 {
		pc = uint16(*startPC)
	}
	end := uint32(load) + uint32(len(data))
	for uint32(pc) < end {
		text, count := disassemble.Step(pc, b)
		fmt.Println(text)
		pc += uint16(count)
		if pc < load {
			// Wrapped the address space.
			break
		}
	}
}
