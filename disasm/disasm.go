// Package disasm formats 6502 machine code as human-readable assembly. It
// is a pure text-formatting utility over the shared cpu.Table — not an
// interactive debugger — so it can disassemble without touching any
// interrupt or cycle-accounting state.
package disasm

import (
	"fmt"

	"github.com/msherman-go/sixtwoh502/addressing"
	"github.com/msherman-go/sixtwoh502/cpu"
	"github.com/msherman-go/sixtwoh502/memory"
)

// Step disassembles the instruction at pc and returns its formatted text
// plus its byte length (so a caller can advance pc by that much). It is
// driven entirely by cpu.Table instead of a parallel opcode-to-mnemonic
// switch, so adding an opcode to the table is enough to disassemble it.
func Step(pc uint16, bus memory.Bus) (string, int) {
	opcode := bus.Read(pc)
	inst := cpu.Table[opcode]

	operand := ""
	switch inst.Mode {
	case addressing.Implied, addressing.Accumulator:
		// no operand text
	case addressing.Immediate:
		operand = fmt.Sprintf(" #$%02X", bus.Read(pc+1))
	case addressing.ZeroPage:
		operand = fmt.Sprintf(" $%02X", bus.Read(pc+1))
	case addressing.ZeroPageX:
		operand = fmt.Sprintf(" $%02X,X", bus.Read(pc+1))
	case addressing.ZeroPageY:
		operand = fmt.Sprintf(" $%02X,Y", bus.Read(pc+1))
	case addressing.Relative:
		rel := int8(bus.Read(pc + 1))
		target := uint16(int32(pc) + 2 + int32(rel))
		operand = fmt.Sprintf(" $%04X", target)
	case addressing.Absolute:
		operand = fmt.Sprintf(" $%04X", memory.Read16(bus, pc+1))
	case addressing.AbsoluteX:
		operand = fmt.Sprintf(" $%04X,X", memory.Read16(bus, pc+1))
	case addressing.AbsoluteY:
		operand = fmt.Sprintf(" $%04X,Y", memory.Read16(bus, pc+1))
	case addressing.Indirect:
		operand = fmt.Sprintf(" ($%04X)", memory.Read16(bus, pc+1))
	case addressing.IndirectZeroPageX:
		operand = fmt.Sprintf(" ($%02X,X)", bus.Read(pc+1))
	case addressing.IndirectZeroPageY:
		operand = fmt.Sprintf(" ($%02X),Y", bus.Read(pc+1))
	}

	text := fmt.Sprintf("$%04X: %02X %s%s", pc, opcode, inst.Mnemonic, operand)
	length := int(inst.Bytes)
	if length == 0 {
		length = 1
	}
	return text, length
}

// All disassembles count instructions starting at pc, stopping early if it
// would read past the end of a 64 KiB address space.
func All(pc uint16, count int, bus memory.Bus) []string {
	lines := make([]string, 0, count)
	addr := pc
	for i := 0; i < count; i++ {
		text, length := Step(addr, bus)
		lines = append(lines, text)
		next := uint32(addr) + uint32(length)
		if next > 0xFFFF {
			break
		}
		addr = uint16(next)
	}
	return lines
}
