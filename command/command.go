// Package command implements the 56 documented MOS 6502 instruction
// semantics (plus the Unknown placeholder) as pure functions over a
// register file, a bus, the addressing mode in effect, and the Operand the
// addressing mode resolved. Each commits its register/memory side effects
// directly and returns any branch-taken cycle penalty.
package command

import (
	"github.com/msherman-go/sixtwoh502/addressing"
	"github.com/msherman-go/sixtwoh502/memory"
	"github.com/msherman-go/sixtwoh502/register"
)

// Func is the shape of every command: given the register file, bus,
// addressing mode in effect and its resolved Operand, mutate register/bus
// state and return extra cycles charged for a taken branch.
type Func func(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand) (branchExtraCycles uint8)

// samePage reports whether a and b lie in the same 256-byte page.
func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// --- Load / store ---

func LDA(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.A = op.Value
	reg.SetNZ(reg.A)
	return 0
}

func LDX(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.X = op.Value
	reg.SetNZ(reg.X)
	return 0
}

func LDY(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.Y = op.Value
	reg.SetNZ(reg.Y)
	return 0
}

func STA(reg *register.File, bus memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	bus.Write(op.Address, reg.A)
	return 0
}

func STX(reg *register.File, bus memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	bus.Write(op.Address, reg.X)
	return 0
}

func STY(reg *register.File, bus memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	bus.Write(op.Address, reg.Y)
	return 0
}

// --- Register transfers ---

func TAX(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.X = reg.A
	reg.SetNZ(reg.X)
	return 0
}

func TAY(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.Y = reg.A
	reg.SetNZ(reg.Y)
	return 0
}

func TXA(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.A = reg.X
	reg.SetNZ(reg.A)
	return 0
}

func TYA(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.A = reg.Y
	reg.SetNZ(reg.A)
	return 0
}

func TSX(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.X = reg.S
	reg.SetNZ(reg.X)
	return 0
}

func TXS(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.S = reg.X
	return 0
}

// --- Stack ---

func PHA(reg *register.File, bus memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	bus.Write(reg.PushByte(), reg.A)
	return 0
}

// PHP pushes status with bits 4 (B) and 5 forced to 1.
func PHP(reg *register.File, bus memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	bus.Write(reg.PushByte(), reg.Status()|register.FlagB)
	return 0
}

func PLA(reg *register.File, bus memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.A = bus.Read(reg.PopByte())
	reg.SetNZ(reg.A)
	return 0
}

// PLP unpacks status from the stack; bits 4 and 5 are ignored on load.
func PLP(reg *register.File, bus memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	v := bus.Read(reg.PopByte())
	reg.SetStatus(v)
	return 0
}

// --- Arithmetic ---

func ADC(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	a := reg.A
	v := op.Value
	c := uint16(0)
	if reg.TestFlag(register.FlagC) {
		c = 1
	}
	if reg.TestFlag(register.FlagD) {
		adcDecimal(reg, a, v, uint8(c))
		return 0
	}
	sum := uint16(a) + uint16(v) + c
	result := uint8(sum)
	reg.SetFlag(register.FlagC, sum > 0xFF)
	reg.SetFlag(register.FlagV, (a^result)&(v^result)&0x80 != 0)
	reg.A = result
	reg.SetNZ(reg.A)
	return 0
}

// adcDecimal implements the documented NMOS BCD ADC nibble-adjust rules:
// low nibble adjusted by +6 when it overflows decimal, high nibble by +6
// when the whole result overflows decimal, carry taken from the high
// nibble adjustment.
func adcDecimal(reg *register.File, a, v, c uint8) {
	lo := int(a&0x0F) + int(v&0x0F) + int(c)
	hi := int(a>>4) + int(v>>4)
	if lo > 9 {
		lo += 6
		hi++
	}
	// N, V, Z computed the same as binary mode would on the unadjusted
	// sum, matching the documented NMOS quirk that these flags are not
	// BCD-corrected.
	binSum := uint16(a) + uint16(v) + uint16(c)
	binResult := uint8(binSum)
	reg.SetFlag(register.FlagV, (a^binResult)&(v^binResult)&0x80 != 0)
	if hi > 9 {
		hi += 6
	}
	carry := hi > 15
	result := uint8((hi&0x0F)<<4 | (lo & 0x0F))
	reg.SetFlag(register.FlagC, carry)
	reg.A = result
	reg.SetFlag(register.FlagZ, binResult == 0)
	reg.SetFlag(register.FlagN, binResult&0x80 != 0)
}

func SBC(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	a := reg.A
	v := op.Value
	c := uint16(0)
	if reg.TestFlag(register.FlagC) {
		c = 1
	}
	if reg.TestFlag(register.FlagD) {
		sbcDecimal(reg, a, v, uint8(c))
		return 0
	}
	inv := ^v
	sum := uint16(a) + uint16(inv) + c
	result := uint8(sum)
	reg.SetFlag(register.FlagC, sum > 0xFF)
	reg.SetFlag(register.FlagV, (a^result)&(inv^result)&0x80 != 0)
	reg.A = result
	reg.SetNZ(reg.A)
	return 0
}

// sbcDecimal implements the documented NMOS BCD SBC nibble-adjust rules:
// the binary subtraction determines N/V/Z/C exactly as in binary mode; the
// BCD-corrected nibbles are only used to form A.
func sbcDecimal(reg *register.File, a, v, c uint8) {
	inv := ^v
	binSum := uint16(a) + uint16(inv) + uint16(c)
	binResult := uint8(binSum)
	reg.SetFlag(register.FlagC, binSum > 0xFF)
	reg.SetFlag(register.FlagV, (a^binResult)&(inv^binResult)&0x80 != 0)
	reg.SetNZ(binResult)

	lo := int(a&0x0F) - int(v&0x0F) - (1 - int(c))
	hi := int(a>>4) - int(v>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	reg.A = uint8((hi&0x0F)<<4 | (lo & 0x0F))
}

// --- Logic ---

func AND(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.A &= op.Value
	reg.SetNZ(reg.A)
	return 0
}

func ORA(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.A |= op.Value
	reg.SetNZ(reg.A)
	return 0
}

func EOR(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.A ^= op.Value
	reg.SetNZ(reg.A)
	return 0
}

func BIT(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.SetFlag(register.FlagZ, reg.A&op.Value == 0)
	reg.SetFlag(register.FlagN, op.Value&0x80 != 0)
	reg.SetFlag(register.FlagV, op.Value&0x40 != 0)
	return 0
}

// --- Shifts / rotates ---

func ASL(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand) uint8 {
	v := readRMW(reg, bus, mode, op)
	c := v&0x80 != 0
	result := v << 1
	writeRMW(reg, bus, mode, op, result)
	reg.SetFlag(register.FlagC, c)
	reg.SetNZ(result)
	return 0
}

func LSR(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand) uint8 {
	v := readRMW(reg, bus, mode, op)
	c := v&0x01 != 0
	result := v >> 1
	writeRMW(reg, bus, mode, op, result)
	reg.SetFlag(register.FlagC, c)
	reg.SetNZ(result)
	return 0
}

func ROL(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand) uint8 {
	v := readRMW(reg, bus, mode, op)
	var carryIn uint8
	if reg.TestFlag(register.FlagC) {
		carryIn = 1
	}
	c := v&0x80 != 0
	result := (v << 1) | carryIn
	writeRMW(reg, bus, mode, op, result)
	reg.SetFlag(register.FlagC, c)
	reg.SetNZ(result)
	return 0
}

func ROR(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand) uint8 {
	v := readRMW(reg, bus, mode, op)
	var carryIn uint8
	if reg.TestFlag(register.FlagC) {
		carryIn = 0x80
	}
	c := v&0x01 != 0
	result := (v >> 1) | carryIn
	writeRMW(reg, bus, mode, op, result)
	reg.SetFlag(register.FlagC, c)
	reg.SetNZ(result)
	return 0
}

// readRMW reads the current value for a shift/rotate/inc/dec target: the
// accumulator when mode is Accumulator, otherwise the already-fetched
// operand value (re-reading memory is unnecessary — the contract is cycle
// accounting, not bus timing).
func readRMW(reg *register.File, _ memory.Bus, mode addressing.Mode, op addressing.Operand) uint8 {
	if mode == addressing.Accumulator {
		return reg.A
	}
	return op.Value
}

func writeRMW(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand, v uint8) {
	if mode == addressing.Accumulator {
		reg.A = v
		return
	}
	bus.Write(op.Address, v)
}

// --- Compare ---

func compare(reg *register.File, regVal, operand uint8) {
	result := uint16(regVal) - uint16(operand)
	reg.SetFlag(register.FlagC, regVal >= operand)
	reg.SetNZ(uint8(result))
}

func CMP(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	compare(reg, reg.A, op.Value)
	return 0
}

func CPX(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	compare(reg, reg.X, op.Value)
	return 0
}

func CPY(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	compare(reg, reg.Y, op.Value)
	return 0
}

// --- Increment / decrement ---

func INC(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand) uint8 {
	v := readRMW(reg, bus, mode, op) + 1
	writeRMW(reg, bus, mode, op, v)
	reg.SetNZ(v)
	return 0
}

func DEC(reg *register.File, bus memory.Bus, mode addressing.Mode, op addressing.Operand) uint8 {
	v := readRMW(reg, bus, mode, op) - 1
	writeRMW(reg, bus, mode, op, v)
	reg.SetNZ(v)
	return 0
}

func INX(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.X++
	reg.SetNZ(reg.X)
	return 0
}

func INY(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.Y++
	reg.SetNZ(reg.Y)
	return 0
}

func DEX(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.X--
	reg.SetNZ(reg.X)
	return 0
}

func DEY(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.Y--
	reg.SetNZ(reg.Y)
	return 0
}

// --- Branches ---

// branch implements the shared logic for all eight conditional branches:
// if taken, jump and charge 1 cycle, plus 1 more if the target is on a
// different page than the instruction following the branch.
func branch(reg *register.File, op addressing.Operand, taken bool) uint8 {
	if !taken {
		return 0
	}
	from := reg.PC
	reg.PC = op.Address
	extra := uint8(1)
	if !samePage(from, op.Address) {
		extra = 2
	}
	return extra
}

func BCC(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, !reg.TestFlag(register.FlagC))
}

func BCS(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, reg.TestFlag(register.FlagC))
}

func BEQ(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, reg.TestFlag(register.FlagZ))
}

func BNE(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, !reg.TestFlag(register.FlagZ))
}

func BMI(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, reg.TestFlag(register.FlagN))
}

func BPL(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, !reg.TestFlag(register.FlagN))
}

func BVC(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, !reg.TestFlag(register.FlagV))
}

func BVS(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	return branch(reg, op, reg.TestFlag(register.FlagV))
}

// --- Jumps & calls ---

func JMP(reg *register.File, _ memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	reg.PC = op.Address
	return 0
}

// JSR pushes (PC-1) high then low, then jumps. By the time this runs, the
// addressing mode has already advanced PC past the two operand bytes, so
// PC-1 points at the high byte of the target address, as real hardware
// pushes.
func JSR(reg *register.File, bus memory.Bus, _ addressing.Mode, op addressing.Operand) uint8 {
	retAddr := reg.PC - 1
	bus.Write(reg.PushByte(), uint8(retAddr>>8))
	bus.Write(reg.PushByte(), uint8(retAddr))
	reg.PC = op.Address
	return 0
}

func RTS(reg *register.File, bus memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	lo := uint16(bus.Read(reg.PopByte()))
	hi := uint16(bus.Read(reg.PopByte()))
	reg.PC = (hi<<8 | lo) + 1
	return 0
}

// RTI pulls status (ignoring B and bit 5), then PC low, high, with no +1.
func RTI(reg *register.File, bus memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	status := bus.Read(reg.PopByte())
	reg.SetStatus(status)
	lo := uint16(bus.Read(reg.PopByte()))
	hi := uint16(bus.Read(reg.PopByte()))
	reg.PC = hi<<8 | lo
	return 0
}

// --- Flag ops ---

func CLC(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.SetFlag(register.FlagC, false)
	return 0
}

func SEC(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.SetFlag(register.FlagC, true)
	return 0
}

func CLD(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.SetFlag(register.FlagD, false)
	return 0
}

func SED(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.SetFlag(register.FlagD, true)
	return 0
}

func CLI(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.SetFlag(register.FlagI, false)
	return 0
}

func SEI(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.SetFlag(register.FlagI, true)
	return 0
}

func CLV(reg *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.SetFlag(register.FlagV, false)
	return 0
}

// --- System ---

// IRQVector and NMIVector are the fixed memory locations holding the
// address the CPU loads into PC in response to BRK/IRQ, and NMI
// respectively. Reset has its own vector at 0xFFFC, handled by cpu.CPU
// directly rather than through a Command.
const (
	IRQVector = 0xFFFE
	NMIVector = 0xFFFA
)

// BRK increments PC once more (so the byte after the BRK opcode is
// skipped, traditionally used for a signature byte), pushes PC high, PC
// low, then status with B=1 and bit 5=1, sets I, and loads PC from the
// IRQ/BRK vector.
func BRK(reg *register.File, bus memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	reg.PC++
	bus.Write(reg.PushByte(), uint8(reg.PC>>8))
	bus.Write(reg.PushByte(), uint8(reg.PC))
	bus.Write(reg.PushByte(), reg.Status()|register.FlagB)
	reg.SetFlag(register.FlagI, true)
	reg.PC = memory.Read16(bus, IRQVector)
	return 0
}

// NOP does nothing.
func NOP(_ *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	return 0
}

// Unknown is the placeholder for the 105 opcodes MOS never documented; it
// behaves exactly like NOP and consumes one cycle (charged by the
// instruction table entry, not here).
func Unknown(_ *register.File, _ memory.Bus, _ addressing.Mode, _ addressing.Operand) uint8 {
	return 0
}
