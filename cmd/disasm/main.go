// Command disasm disassembles a raw binary image loaded flat at address
// 0x0000, printing one line per instruction. Packaging around the disasm
// library only; the core CPU model has no CLI of its own.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/msherman-go/sixtwoh502/disasm"
	"github.com/msherman-go/sixtwoh502/memory"
)

func main() {
	path := flag.String("f", "", "path to a raw binary image to disassemble")
	count := flag.Int("n", 64, "number of instructions to print")
	flag.Parse()

	if *path == "" {
		log.Fatal("disasm: -f is required")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("disasm: %v", err)
	}

	size := 1
	for size < len(data) {
		size <<= 1
	}
	if size == 0 {
		size = 1
	}

	bus, err := memory.NewRAM(size, nil)
	if err != nil {
		log.Fatalf("disasm: %v", err)
	}
	for i, b := range data {
		bus.Write(uint16(i), b)
	}

	for _, line := range disasm.All(0, *count, bus) {
		fmt.Println(line)
	}
}
