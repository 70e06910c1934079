package cpu

import (
	"github.com/msherman-go/sixtwoh502/addressing"
	"github.com/msherman-go/sixtwoh502/command"
)

// Kind distinguishes how an instruction's addressing-mode page-cross
// penalty interacts with its base cycle count, per the documented 6502
// timing quirks: loads charge the page-cross cycle only when it actually
// crosses; stores and read-modify-write instructions always charge it as
// part of their (higher) base count.
type Kind uint8

const (
	KindOther Kind = iota
	KindStore
	KindRMW
)

// Instruction is the immutable per-opcode record the CPU dispatches
// through: which Command to run, which AddressingMode resolves its
// operand, the base cycle count and byte length, and the Kind that governs
// whether addressing-mode extra cycles are conditional.
type Instruction struct {
	Opcode   uint8
	Mnemonic string
	Command  command.Func
	Mode     addressing.Mode
	Cycles   uint8
	Bytes    uint8
	Kind     Kind
}

// unknownInstruction is the record every undocumented opcode maps to: a
// NOP-like placeholder consuming a single cycle.
var unknownInstruction = Instruction{
	Mnemonic: "UNK",
	Command:  command.Unknown,
	Mode:     addressing.Implied,
	Cycles:   1,
	Bytes:    1,
	Kind:     KindOther,
}

type tableEntry struct {
	opcode   uint8
	mnemonic string
	fn       command.Func
	mode     addressing.Mode
	cycles   uint8
	bytes    uint8
	kind     Kind
}

// Table is the dense 256-entry opcode -> Instruction mapping, populated at
// package init time from the documented MOS 6502 opcode matrix. Unassigned
// opcodes hold unknownInstruction.
var Table [256]Instruction

func init() {
	for i := range Table {
		Table[i] = unknownInstruction
		Table[i].Opcode = uint8(i)
	}
	for _, e := range officialOpcodes {
		Table[e.opcode] = Instruction{
			Opcode:   e.opcode,
			Mnemonic: e.mnemonic,
			Command:  e.fn,
			Mode:     e.mode,
			Cycles:   e.cycles,
			Bytes:    e.bytes,
			Kind:     e.kind,
		}
	}
}

// officialOpcodes lists the 151 documented MOS 6502 opcode assignments.
// Cycle counts and byte lengths follow the public 6502 opcode matrix (see
// DESIGN.md Open Question 1).
var officialOpcodes = []tableEntry{
	// LDA
	{0xA9, "LDA", command.LDA, addressing.Immediate, 2, 2, KindOther},
	{0xA5, "LDA", command.LDA, addressing.ZeroPage, 3, 2, KindOther},
	{0xB5, "LDA", command.LDA, addressing.ZeroPageX, 4, 2, KindOther},
	{0xAD, "LDA", command.LDA, addressing.Absolute, 4, 3, KindOther},
	{0xBD, "LDA", command.LDA, addressing.AbsoluteX, 4, 3, KindOther},
	{0xB9, "LDA", command.LDA, addressing.AbsoluteY, 4, 3, KindOther},
	{0xA1, "LDA", command.LDA, addressing.IndirectZeroPageX, 6, 2, KindOther},
	{0xB1, "LDA", command.LDA, addressing.IndirectZeroPageY, 5, 2, KindOther},

	// LDX
	{0xA2, "LDX", command.LDX, addressing.Immediate, 2, 2, KindOther},
	{0xA6, "LDX", command.LDX, addressing.ZeroPage, 3, 2, KindOther},
	{0xB6, "LDX", command.LDX, addressing.ZeroPageY, 4, 2, KindOther},
	{0xAE, "LDX", command.LDX, addressing.Absolute, 4, 3, KindOther},
	{0xBE, "LDX", command.LDX, addressing.AbsoluteY, 4, 3, KindOther},

	// LDY
	{0xA0, "LDY", command.LDY, addressing.Immediate, 2, 2, KindOther},
	{0xA4, "LDY", command.LDY, addressing.ZeroPage, 3, 2, KindOther},
	{0xB4, "LDY", command.LDY, addressing.ZeroPageX, 4, 2, KindOther},
	{0xAC, "LDY", command.LDY, addressing.Absolute, 4, 3, KindOther},
	{0xBC, "LDY", command.LDY, addressing.AbsoluteX, 4, 3, KindOther},

	// STA
	{0x85, "STA", command.STA, addressing.ZeroPage, 3, 2, KindStore},
	{0x95, "STA", command.STA, addressing.ZeroPageX, 4, 2, KindStore},
	{0x8D, "STA", command.STA, addressing.Absolute, 4, 3, KindStore},
	{0x9D, "STA", command.STA, addressing.AbsoluteX, 5, 3, KindStore},
	{0x99, "STA", command.STA, addressing.AbsoluteY, 5, 3, KindStore},
	{0x81, "STA", command.STA, addressing.IndirectZeroPageX, 6, 2, KindStore},
	{0x91, "STA", command.STA, addressing.IndirectZeroPageY, 6, 2, KindStore},

	// STX
	{0x86, "STX", command.STX, addressing.ZeroPage, 3, 2, KindStore},
	{0x96, "STX", command.STX, addressing.ZeroPageY, 4, 2, KindStore},
	{0x8E, "STX", command.STX, addressing.Absolute, 4, 3, KindStore},

	// STY
	{0x84, "STY", command.STY, addressing.ZeroPage, 3, 2, KindStore},
	{0x94, "STY", command.STY, addressing.ZeroPageX, 4, 2, KindStore},
	{0x8C, "STY", command.STY, addressing.Absolute, 4, 3, KindStore},

	// Register transfers
	{0xAA, "TAX", command.TAX, addressing.Implied, 2, 1, KindOther},
	{0xA8, "TAY", command.TAY, addressing.Implied, 2, 1, KindOther},
	{0x8A, "TXA", command.TXA, addressing.Implied, 2, 1, KindOther},
	{0x98, "TYA", command.TYA, addressing.Implied, 2, 1, KindOther},
	{0xBA, "TSX", command.TSX, addressing.Implied, 2, 1, KindOther},
	{0x9A, "TXS", command.TXS, addressing.Implied, 2, 1, KindOther},

	// Stack
	{0x48, "PHA", command.PHA, addressing.Implied, 3, 1, KindOther},
	{0x08, "PHP", command.PHP, addressing.Implied, 3, 1, KindOther},
	{0x68, "PLA", command.PLA, addressing.Implied, 4, 1, KindOther},
	{0x28, "PLP", command.PLP, addressing.Implied, 4, 1, KindOther},

	// ADC
	{0x69, "ADC", command.ADC, addressing.Immediate, 2, 2, KindOther},
	{0x65, "ADC", command.ADC, addressing.ZeroPage, 3, 2, KindOther},
	{0x75, "ADC", command.ADC, addressing.ZeroPageX, 4, 2, KindOther},
	{0x6D, "ADC", command.ADC, addressing.Absolute, 4, 3, KindOther},
	{0x7D, "ADC", command.ADC, addressing.AbsoluteX, 4, 3, KindOther},
	{0x79, "ADC", command.ADC, addressing.AbsoluteY, 4, 3, KindOther},
	{0x61, "ADC", command.ADC, addressing.IndirectZeroPageX, 6, 2, KindOther},
	{0x71, "ADC", command.ADC, addressing.IndirectZeroPageY, 5, 2, KindOther},

	// SBC
	{0xE9, "SBC", command.SBC, addressing.Immediate, 2, 2, KindOther},
	{0xE5, "SBC", command.SBC, addressing.ZeroPage, 3, 2, KindOther},
	{0xF5, "SBC", command.SBC, addressing.ZeroPageX, 4, 2, KindOther},
	{0xED, "SBC", command.SBC, addressing.Absolute, 4, 3, KindOther},
	{0xFD, "SBC", command.SBC, addressing.AbsoluteX, 4, 3, KindOther},
	{0xF9, "SBC", command.SBC, addressing.AbsoluteY, 4, 3, KindOther},
	{0xE1, "SBC", command.SBC, addressing.IndirectZeroPageX, 6, 2, KindOther},
	{0xF1, "SBC", command.SBC, addressing.IndirectZeroPageY, 5, 2, KindOther},

	// AND
	{0x29, "AND", command.AND, addressing.Immediate, 2, 2, KindOther},
	{0x25, "AND", command.AND, addressing.ZeroPage, 3, 2, KindOther},
	{0x35, "AND", command.AND, addressing.ZeroPageX, 4, 2, KindOther},
	{0x2D, "AND", command.AND, addressing.Absolute, 4, 3, KindOther},
	{0x3D, "AND", command.AND, addressing.AbsoluteX, 4, 3, KindOther},
	{0x39, "AND", command.AND, addressing.AbsoluteY, 4, 3, KindOther},
	{0x21, "AND", command.AND, addressing.IndirectZeroPageX, 6, 2, KindOther},
	{0x31, "AND", command.AND, addressing.IndirectZeroPageY, 5, 2, KindOther},

	// ORA
	{0x09, "ORA", command.ORA, addressing.Immediate, 2, 2, KindOther},
	{0x05, "ORA", command.ORA, addressing.ZeroPage, 3, 2, KindOther},
	{0x15, "ORA", command.ORA, addressing.ZeroPageX, 4, 2, KindOther},
	{0x0D, "ORA", command.ORA, addressing.Absolute, 4, 3, KindOther},
	{0x1D, "ORA", command.ORA, addressing.AbsoluteX, 4, 3, KindOther},
	{0x19, "ORA", command.ORA, addressing.AbsoluteY, 4, 3, KindOther},
	{0x01, "ORA", command.ORA, addressing.IndirectZeroPageX, 6, 2, KindOther},
	{0x11, "ORA", command.ORA, addressing.IndirectZeroPageY, 5, 2, KindOther},

	// EOR
	{0x49, "EOR", command.EOR, addressing.Immediate, 2, 2, KindOther},
	{0x45, "EOR", command.EOR, addressing.ZeroPage, 3, 2, KindOther},
	{0x55, "EOR", command.EOR, addressing.ZeroPageX, 4, 2, KindOther},
	{0x4D, "EOR", command.EOR, addressing.Absolute, 4, 3, KindOther},
	{0x5D, "EOR", command.EOR, addressing.AbsoluteX, 4, 3, KindOther},
	{0x59, "EOR", command.EOR, addressing.AbsoluteY, 4, 3, KindOther},
	{0x41, "EOR", command.EOR, addressing.IndirectZeroPageX, 6, 2, KindOther},
	{0x51, "EOR", command.EOR, addressing.IndirectZeroPageY, 5, 2, KindOther},

	// BIT
	{0x24, "BIT", command.BIT, addressing.ZeroPage, 3, 2, KindOther},
	{0x2C, "BIT", command.BIT, addressing.Absolute, 4, 3, KindOther},

	// ASL
	{0x0A, "ASL", command.ASL, addressing.Accumulator, 2, 1, KindOther},
	{0x06, "ASL", command.ASL, addressing.ZeroPage, 5, 2, KindRMW},
	{0x16, "ASL", command.ASL, addressing.ZeroPageX, 6, 2, KindRMW},
	{0x0E, "ASL", command.ASL, addressing.Absolute, 6, 3, KindRMW},
	{0x1E, "ASL", command.ASL, addressing.AbsoluteX, 7, 3, KindRMW},

	// LSR
	{0x4A, "LSR", command.LSR, addressing.Accumulator, 2, 1, KindOther},
	{0x46, "LSR", command.LSR, addressing.ZeroPage, 5, 2, KindRMW},
	{0x56, "LSR", command.LSR, addressing.ZeroPageX, 6, 2, KindRMW},
	{0x4E, "LSR", command.LSR, addressing.Absolute, 6, 3, KindRMW},
	{0x5E, "LSR", command.LSR, addressing.AbsoluteX, 7, 3, KindRMW},

	// ROL
	{0x2A, "ROL", command.ROL, addressing.Accumulator, 2, 1, KindOther},
	{0x26, "ROL", command.ROL, addressing.ZeroPage, 5, 2, KindRMW},
	{0x36, "ROL", command.ROL, addressing.ZeroPageX, 6, 2, KindRMW},
	{0x2E, "ROL", command.ROL, addressing.Absolute, 6, 3, KindRMW},
	{0x3E, "ROL", command.ROL, addressing.AbsoluteX, 7, 3, KindRMW},

	// ROR
	{0x6A, "ROR", command.ROR, addressing.Accumulator, 2, 1, KindOther},
	{0x66, "ROR", command.ROR, addressing.ZeroPage, 5, 2, KindRMW},
	{0x76, "ROR", command.ROR, addressing.ZeroPageX, 6, 2, KindRMW},
	{0x6E, "ROR", command.ROR, addressing.Absolute, 6, 3, KindRMW},
	{0x7E, "ROR", command.ROR, addressing.AbsoluteX, 7, 3, KindRMW},

	// CMP
	{0xC9, "CMP", command.CMP, addressing.Immediate, 2, 2, KindOther},
	{0xC5, "CMP", command.CMP, addressing.ZeroPage, 3, 2, KindOther},
	{0xD5, "CMP", command.CMP, addressing.ZeroPageX, 4, 2, KindOther},
	{0xCD, "CMP", command.CMP, addressing.Absolute, 4, 3, KindOther},
	{0xDD, "CMP", command.CMP, addressing.AbsoluteX, 4, 3, KindOther},
	{0xD9, "CMP", command.CMP, addressing.AbsoluteY, 4, 3, KindOther},
	{0xC1, "CMP", command.CMP, addressing.IndirectZeroPageX, 6, 2, KindOther},
	{0xD1, "CMP", command.CMP, addressing.IndirectZeroPageY, 5, 2, KindOther},

	// CPX
	{0xE0, "CPX", command.CPX, addressing.Immediate, 2, 2, KindOther},
	{0xE4, "CPX", command.CPX, addressing.ZeroPage, 3, 2, KindOther},
	{0xEC, "CPX", command.CPX, addressing.Absolute, 4, 3, KindOther},

	// CPY
	{0xC0, "CPY", command.CPY, addressing.Immediate, 2, 2, KindOther},
	{0xC4, "CPY", command.CPY, addressing.ZeroPage, 3, 2, KindOther},
	{0xCC, "CPY", command.CPY, addressing.Absolute, 4, 3, KindOther},

	// INC / DEC (memory)
	{0xE6, "INC", command.INC, addressing.ZeroPage, 5, 2, KindRMW},
	{0xF6, "INC", command.INC, addressing.ZeroPageX, 6, 2, KindRMW},
	{0xEE, "INC", command.INC, addressing.Absolute, 6, 3, KindRMW},
	{0xFE, "INC", command.INC, addressing.AbsoluteX, 7, 3, KindRMW},
	{0xC6, "DEC", command.DEC, addressing.ZeroPage, 5, 2, KindRMW},
	{0xD6, "DEC", command.DEC, addressing.ZeroPageX, 6, 2, KindRMW},
	{0xCE, "DEC", command.DEC, addressing.Absolute, 6, 3, KindRMW},
	{0xDE, "DEC", command.DEC, addressing.AbsoluteX, 7, 3, KindRMW},

	// INX / INY / DEX / DEY (register)
	{0xE8, "INX", command.INX, addressing.Implied, 2, 1, KindOther},
	{0xC8, "INY", command.INY, addressing.Implied, 2, 1, KindOther},
	{0xCA, "DEX", command.DEX, addressing.Implied, 2, 1, KindOther},
	{0x88, "DEY", command.DEY, addressing.Implied, 2, 1, KindOther},

	// Branches
	{0x90, "BCC", command.BCC, addressing.Relative, 2, 2, KindOther},
	{0xB0, "BCS", command.BCS, addressing.Relative, 2, 2, KindOther},
	{0xF0, "BEQ", command.BEQ, addressing.Relative, 2, 2, KindOther},
	{0xD0, "BNE", command.BNE, addressing.Relative, 2, 2, KindOther},
	{0x30, "BMI", command.BMI, addressing.Relative, 2, 2, KindOther},
	{0x10, "BPL", command.BPL, addressing.Relative, 2, 2, KindOther},
	{0x50, "BVC", command.BVC, addressing.Relative, 2, 2, KindOther},
	{0x70, "BVS", command.BVS, addressing.Relative, 2, 2, KindOther},

	// Jumps & calls
	{0x4C, "JMP", command.JMP, addressing.Absolute, 3, 3, KindOther},
	{0x6C, "JMP", command.JMP, addressing.Indirect, 5, 3, KindOther},
	{0x20, "JSR", command.JSR, addressing.Absolute, 6, 3, KindOther},
	{0x60, "RTS", command.RTS, addressing.Implied, 6, 1, KindOther},
	{0x40, "RTI", command.RTI, addressing.Implied, 6, 1, KindOther},

	// Flag ops
	{0x18, "CLC", command.CLC, addressing.Implied, 2, 1, KindOther},
	{0x38, "SEC", command.SEC, addressing.Implied, 2, 1, KindOther},
	{0xD8, "CLD", command.CLD, addressing.Implied, 2, 1, KindOther},
	{0xF8, "SED", command.SED, addressing.Implied, 2, 1, KindOther},
	{0x58, "CLI", command.CLI, addressing.Implied, 2, 1, KindOther},
	{0x78, "SEI", command.SEI, addressing.Implied, 2, 1, KindOther},
	{0xB8, "CLV", command.CLV, addressing.Implied, 2, 1, KindOther},

	// System
	{0x00, "BRK", command.BRK, addressing.Implied, 7, 1, KindOther},
	{0xEA, "NOP", command.NOP, addressing.Implied, 2, 1, KindOther},
}
