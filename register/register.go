// Package register implements the MOS 6502 register file: the accumulator,
// index registers, stack pointer, program counter and status flags, plus
// the small set of mutators every addressing mode and command needs.
package register

import "fmt"

// Flag bits of the status register P, in on-wire bit order (bit 7 -> bit 0:
// N V 1 B D I Z C).
const (
	FlagC uint8 = 1 << 0 // carry
	FlagZ uint8 = 1 << 1 // zero
	FlagI uint8 = 1 << 2 // interrupt disable
	FlagD uint8 = 1 << 3 // decimal mode
	FlagB uint8 = 1 << 4 // break (only meaningful on the pushed byte)
	Flag5 uint8 = 1 << 5 // unused, always 1 on the wire
	FlagV uint8 = 1 << 6 // overflow
	FlagN uint8 = 1 << 7 // negative
)

// File is the 6502 register file: A, X, Y, S, PC and the status flags
// packed as individual bits in P. Zero value is not a valid reset state;
// use Reset.
type File struct {
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	PC uint16
	P  uint8
}

// Reset initializes the register file per the documented power-on/reset
// sequence: S = 0xFD, I set, all other flags clear, PC loaded from the
// given reset vector value (caller reads $FFFC/$FFFD via the bus).
func (f *File) Reset(pc uint16) {
	f.A = 0
	f.X = 0
	f.Y = 0
	f.S = 0xFD
	f.PC = pc
	f.P = FlagI | Flag5
}

// SetFlag sets or clears the given flag bit.
func (f *File) SetFlag(mask uint8, set bool) {
	if set {
		f.P |= mask
	} else {
		f.P &^= mask
	}
}

// TestFlag reports whether the given flag bit is set.
func (f *File) TestFlag(mask uint8) bool {
	return f.P&mask != 0
}

// SetNZ updates N and Z from an 8-bit result, as required after every
// arithmetic/logic operation that writes a register or memory byte.
func (f *File) SetNZ(value uint8) {
	f.SetFlag(FlagZ, value == 0)
	f.SetFlag(FlagN, value&0x80 != 0)
}

// Status packs the flags into the on-wire byte. Bit 5 always reads 1;
// bit 4 (B) reflects whatever was last explicitly set via SetFlag(FlagB, ...)
// and is the caller's responsibility to set correctly before pushing.
func (f *File) Status() uint8 {
	return f.P | Flag5
}

// SetStatus unpacks an on-wire status byte into P. Bits 4 and 5 are not
// meaningfully restored from memory (the MOS 6502 ignores bit 5 on pull and
// B is not a real flip-flop); callers that need exact round-trip behaviour
// of bits 0,1,2,3,6,7 get it, the other two are implementation detail.
func (f *File) SetStatus(v uint8) {
	f.P = v&^FlagB | f.P&FlagB | Flag5
}

// GetAndIncrementPC returns the current PC and advances it by one,
// wrapping at 65536.
func (f *File) GetAndIncrementPC() uint16 {
	pc := f.PC
	f.PC++
	return pc
}

// StackAddr returns the current stack address ($0100 + S).
func (f *File) StackAddr() uint16 {
	return 0x0100 + uint16(f.S)
}

// PushByte returns the address to write for a stack push and decrements S
// (wrapping). The caller performs the actual bus write at the returned
// address.
func (f *File) PushByte() uint16 {
	addr := f.StackAddr()
	f.S--
	return addr
}

// PopByte increments S (wrapping) and returns the address to read.
func (f *File) PopByte() uint16 {
	f.S++
	return f.StackAddr()
}

func (f File) String() string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X S=%02X PC=%04X P=%02X", f.A, f.X, f.Y, f.S, f.PC, f.Status())
}
