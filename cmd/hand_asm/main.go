// hand_asm takes a filename and produces a bin file from parsing the
// input as a hand assembled listing of the form:
//
//	XXXX OP A1 A2 ...
//
// where XXXX is the address field and OP is the opcode with optional
// operand bytes. Anything after a tab is treated as commentary. Lines
// not leading with an address are skipped.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

var (
	offset = flag.Int("offset", 0x0000, "Offset to start writing assembled data. Everything prior is zero filled.")
)

func isAddrLine(s string) bool {
	if len(s) < 4 {
		return false
	}
	for _, c := range s[:4] {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			return false
		}
	}
	return true
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	f, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	defer f.Close()

	output := make([]byte, *offset)
	scanner := bufio.NewScanner(f)
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		if !isAddrLine(t) {
			continue
		}
		// Strip commentary: everything from the first tab or a
		// marker like (*).
		if i := strings.IndexByte(t, '\t'); i >= 0 {
			t = t[:i]
		}
		if i := strings.Index(t, "(*)"); i >= 0 {
			t = t[:i]
		}
		toks := strings.Fields(t)
		if len(toks) < 2 || len(toks) > 4 {
			log.Fatalf("Invalid line %d - %q", l, t)
		}
		// Drop the address field, keep the bytes.
		for _, v := range toks[1:] {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				log.Fatalf("Can't process input line %d %q - %v", l, t, err)
			}
			output = append(output, byte(b))
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading %q - %v", fn, err)
	}

	if err := os.WriteFile(out, output, 0644); err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
	fmt.Printf("Wrote %d bytes to %q\n", len(output), out)
}
