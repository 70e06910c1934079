package cpu

import "fmt"

// InvalidCPUState indicates an internal invariant was violated — not
// something normal opcode execution can trigger, since every one of the
// 256 possible opcodes (including the undocumented ones mapped to Unknown)
// advances to a defined next state, but a defensive check for programmer
// error in construction or test harnesses.
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// HaltOpcode indicates a caller-requested halt-on-unknown-opcode policy
// tripped (see WithHaltOnUnknown). Not raised by default; the default
// policy is to treat unknown opcodes as a 1-cycle NOP with no error.
type HaltOpcode struct {
	Opcode uint8
	PC     uint16
}

func (e HaltOpcode) Error() string {
	return fmt.Sprintf("halted on opcode 0x%02X at PC 0x%04X", e.Opcode, e.PC)
}
