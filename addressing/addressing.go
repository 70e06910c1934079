// Package addressing implements the 13 MOS 6502 addressing modes: given a
// register file and a bus, each mode resolves an Operand (effective
// address, fetched value, and any page-cross cycle penalty) and advances
// the program counter past the operand bytes it consumes.
package addressing

import (
	"fmt"

	"github.com/msherman-go/sixtwoh502/memory"
	"github.com/msherman-go/sixtwoh502/register"
)

// Mode is a tagged variant identifying one of the 13 addressing modes. It
// is a plain enum rather than a closure so the instruction table can be a
// dense array of value records and dispatch can switch on Mode directly.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectZeroPageX
	IndirectZeroPageY
)

// names is used by String and by the disassembler.
var names = [...]string{
	Implied:           "IMPLIED",
	Accumulator:       "ACCUMULATOR",
	Immediate:         "IMMEDIATE",
	ZeroPage:          "ZERO_PAGE",
	ZeroPageX:         "ZERO_PAGE_X",
	ZeroPageY:         "ZERO_PAGE_Y",
	Relative:          "RELATIVE",
	Absolute:          "ABSOLUTE",
	AbsoluteX:         "ABSOLUTE_X",
	AbsoluteY:         "ABSOLUTE_Y",
	Indirect:          "INDIRECT",
	IndirectZeroPageX: "INDIRECT_ZERO_PAGE_X",
	IndirectZeroPageY: "INDIRECT_ZERO_PAGE_Y",
}

func (m Mode) String() string {
	if int(m) < len(names) {
		return names[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// bytesToRead is how many operand bytes each mode consumes from the
// instruction stream. Informational only — Fetch itself advances PC.
var bytesToRead = [...]uint8{
	Implied:           0,
	Accumulator:       0,
	Immediate:         1,
	ZeroPage:          1,
	ZeroPageX:         1,
	ZeroPageY:         1,
	Relative:          1,
	Absolute:          2,
	AbsoluteX:         2,
	AbsoluteY:         2,
	Indirect:          2,
	IndirectZeroPageX: 1,
	IndirectZeroPageY: 1,
}

// BytesToRead returns how many operand bytes m consumes from the
// instruction stream (0, 1 or 2).
func (m Mode) BytesToRead() uint8 {
	return bytesToRead[m]
}

// NoAddress is the sentinel Operand.Address for IMPLIED and ACCUMULATOR
// modes, which have no effective memory address.
const NoAddress = 0xFFFF

// Operand is the small value type an addressing mode resolves to: the
// effective address (or NoAddress), the byte value already fetched there
// for reading modes, and any page-crossing cycle penalty.
type Operand struct {
	Address     uint16
	Value       uint8
	ExtraCycles uint8
}

// samePage reports whether a and b lie in the same 256-byte page.
func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// Fetch resolves the Operand for mode m, reading register.PC-relative
// operand bytes from bus and advancing reg.PC past them. variantCMOS
// selects the 6502 hardware family in effect, which only affects the
// INDIRECT mode's page-wrap behaviour (the documented indirect-JMP bug is
// NMOS-only).
func Fetch(m Mode, reg *register.File, bus memory.Bus, variantCMOS bool) Operand {
	switch m {
	case Implied:
		return Operand{Address: NoAddress}

	case Accumulator:
		return Operand{Address: NoAddress, Value: reg.A}

	case Immediate:
		addr := reg.GetAndIncrementPC()
		return Operand{Address: addr, Value: bus.Read(addr)}

	case ZeroPage:
		zp := bus.Read(reg.GetAndIncrementPC())
		addr := uint16(zp)
		return Operand{Address: addr, Value: bus.Read(addr)}

	case ZeroPageX:
		zp := bus.Read(reg.GetAndIncrementPC())
		addr := uint16(zp+reg.X) & 0xFF
		return Operand{Address: addr, Value: bus.Read(addr)}

	case ZeroPageY:
		zp := bus.Read(reg.GetAndIncrementPC())
		addr := uint16(zp+reg.Y) & 0xFF
		return Operand{Address: addr, Value: bus.Read(addr)}

	case Relative:
		rel := int8(bus.Read(reg.GetAndIncrementPC()))
		addr := uint16(int32(reg.PC) + int32(rel))
		return Operand{Address: addr}

	case Absolute:
		lo := uint16(bus.Read(reg.GetAndIncrementPC()))
		hi := uint16(bus.Read(reg.GetAndIncrementPC()))
		addr := lo | hi<<8
		return Operand{Address: addr, Value: bus.Read(addr)}

	case AbsoluteX:
		lo := uint16(bus.Read(reg.GetAndIncrementPC()))
		hi := uint16(bus.Read(reg.GetAndIncrementPC()))
		base := lo | hi<<8
		addr := base + uint16(reg.X)
		var extra uint8
		if !samePage(base, addr) {
			extra = 1
		}
		return Operand{Address: addr, Value: bus.Read(addr), ExtraCycles: extra}

	case AbsoluteY:
		lo := uint16(bus.Read(reg.GetAndIncrementPC()))
		hi := uint16(bus.Read(reg.GetAndIncrementPC()))
		base := lo | hi<<8
		addr := base + uint16(reg.Y)
		var extra uint8
		if !samePage(base, addr) {
			extra = 1
		}
		return Operand{Address: addr, Value: bus.Read(addr), ExtraCycles: extra}

	case Indirect:
		lo := uint16(bus.Read(reg.GetAndIncrementPC()))
		hi := uint16(bus.Read(reg.GetAndIncrementPC()))
		ptr := lo | hi<<8
		var hiAddr uint16
		if variantCMOS {
			hiAddr = ptr + 1
		} else {
			// Reproduces the documented hardware bug: the high byte wraps
			// within the same page instead of crossing when ptr's low
			// byte is 0xFF.
			hiAddr = (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		}
		addrLo := uint16(bus.Read(ptr))
		addrHi := uint16(bus.Read(hiAddr))
		addr := addrLo | addrHi<<8
		return Operand{Address: addr}

	case IndirectZeroPageX:
		zp := bus.Read(reg.GetAndIncrementPC())
		base := uint16(zp+reg.X) & 0xFF
		lo := uint16(bus.Read(base))
		hi := uint16(bus.Read((base + 1) & 0xFF))
		addr := lo | hi<<8
		return Operand{Address: addr, Value: bus.Read(addr)}

	case IndirectZeroPageY:
		zp := uint16(bus.Read(reg.GetAndIncrementPC()))
		lo := uint16(bus.Read(zp))
		hi := uint16(bus.Read((zp + 1) & 0xFF))
		base := lo | hi<<8
		addr := base + uint16(reg.Y)
		var extra uint8
		if !samePage(base, addr) {
			extra = 1
		}
		return Operand{Address: addr, Value: bus.Read(addr), ExtraCycles: extra}
	}

	panic(fmt.Sprintf("addressing: unknown mode %d", m))
}
