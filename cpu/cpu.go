// Package cpu implements the fetch/decode/execute loop and tick-driven
// clock for a MOS 6502 core: it owns a register file and a borrowed Bus,
// advances one machine cycle per call to Tick, and services NMI/IRQ
// latches at instruction boundaries.
package cpu

import (
	"github.com/msherman-go/sixtwoh502/addressing"
	"github.com/msherman-go/sixtwoh502/irq"
	"github.com/msherman-go/sixtwoh502/memory"
	"github.com/msherman-go/sixtwoh502/register"
)

// Variant selects the one documented behavioural fork this core models:
// the indirect-JMP page-wrap bug is NMOS-only; CMOS fixed it.
type Variant uint8

const (
	NMOS Variant = iota
	CMOS
)

// Vector addresses the CPU loads PC from on reset, IRQ/BRK and NMI.
const (
	ResetVector = 0xFFFC
	IRQVector   = 0xFFFE
	NMIVector   = 0xFFFA
)

// CPU is the owned register file plus the tick-driven control unit. It
// keeps the Bus passed to New and performs all its reads and writes
// through it during Tick and Reset.
type CPU struct {
	Reg register.File
	Bus memory.Bus

	variant Variant

	cyclesRemaining uint8
	nmiPending      bool
	irqPending      bool

	nmiSource irq.Sender
	irqSource irq.Sender

	haltOnUnknown bool
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithVariant selects the NMOS/CMOS behavioural fork. Default is NMOS.
func WithVariant(v Variant) Option {
	return func(c *CPU) { c.variant = v }
}

// WithNMISource wires an irq.Sender the CPU polls at every instruction
// boundary, in addition to the push-style NMI(). Use this for a
// peripheral (PPU, cartridge mapper) that holds the line itself rather
// than calling back into the CPU.
func WithNMISource(s irq.Sender) Option {
	return func(c *CPU) { c.nmiSource = s }
}

// WithIRQSource wires an irq.Sender the CPU polls at every instruction
// boundary, in addition to the push-style IRQ(). Unlike NMI, several
// peripherals commonly share one IRQ line; wiring a Sender here lets the
// CPU ask the peripheral directly rather than requiring it to track
// assert/deassert calls through IRQ()/IRQClear().
func WithIRQSource(s irq.Sender) Option {
	return func(c *CPU) { c.irqSource = s }
}

// WithHaltOnUnknown makes Tick return a HaltOpcode error instead of
// silently executing the Unknown placeholder when it decodes an
// undocumented opcode. Off by default — the CPU surfaces zero errors to
// callers in normal operation; this option exists for test harnesses and
// strict-mode tooling that want to catch it.
func WithHaltOnUnknown() Option {
	return func(c *CPU) { c.haltOnUnknown = true }
}

// New constructs a CPU borrowing bus. Reset must be called before the
// first Tick to establish a valid register state.
func New(bus memory.Bus, opts ...Option) (*CPU, error) {
	if bus == nil {
		return nil, InvalidCPUState{Reason: "nil bus"}
	}
	c := &CPU{Bus: bus}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Reset initializes the register file from the reset vector and sets the
// cycles-remaining counter to the reset sequence's length.
func (c *CPU) Reset() {
	c.Reg.Reset(memory.Read16(c.Bus, ResetVector))
	c.cyclesRemaining = 8
	c.nmiPending = false
	c.irqPending = false
}

// NMI latches a non-maskable interrupt request. It is edge-triggered: the
// latch clears the instant it is serviced, regardless of further calls
// before that point.
func (c *CPU) NMI() {
	c.nmiPending = true
}

// IRQ latches a maskable interrupt request. It is level-triggered: unlike
// NMI it does not autoclear on service, and will be serviced again at
// every subsequent instruction boundary while I is clear until the
// collaborator calls IRQClear.
func (c *CPU) IRQ() {
	c.irqPending = true
}

// IRQClear deasserts a previously raised IRQ line. Real hardware ties this
// to whatever peripheral asserted the line; the CPU core only exposes the
// level, not who owns it.
func (c *CPU) IRQClear() {
	c.irqPending = false
}

// Snapshot is a read-only copy of CPU state for debuggers and tests. It is
// never retained by the CPU and writing to it has no effect on the CPU.
type Snapshot struct {
	Reg             register.File
	CyclesRemaining uint8
	NMIPending      bool
	IRQPending      bool
}

// Snapshot copies the current CPU state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		Reg:             c.Reg,
		CyclesRemaining: c.cyclesRemaining,
		NMIPending:      c.nmiPending,
		IRQPending:      c.irqPending,
	}
}

// Tick advances the CPU by one machine cycle. If an instruction (or
// interrupt service) is already in flight it simply decrements the
// remaining-cycle counter. Otherwise it services a pending NMI (priority)
// or IRQ, or else fetches, decodes and executes the next instruction,
// performing all of its register/bus effects immediately and idling on
// subsequent ticks by charging the remaining cycles to the counter up
// front rather than replaying bus accesses one per cycle.
func (c *CPU) Tick() error {
	if c.cyclesRemaining > 0 {
		c.cyclesRemaining--
		return nil
	}

	if c.nmiPending || (c.nmiSource != nil && c.nmiSource.Raised()) {
		c.nmiPending = false
		c.serviceInterrupt(NMIVector)
		return nil
	}
	irqHeld := c.irqPending || (c.irqSource != nil && c.irqSource.Raised())
	if irqHeld && !c.Reg.TestFlag(register.FlagI) {
		c.serviceInterrupt(IRQVector)
		return nil
	}

	opcode := c.Bus.Read(c.Reg.GetAndIncrementPC())
	inst := Table[opcode]

	if c.haltOnUnknown && inst.Mnemonic == unknownInstruction.Mnemonic {
		return HaltOpcode{Opcode: opcode, PC: c.Reg.PC - 1}
	}

	op := addressing.Fetch(inst.Mode, &c.Reg, c.Bus, c.variant == CMOS)
	branchExtra := inst.Command(&c.Reg, c.Bus, inst.Mode, op)

	addrExtra := op.ExtraCycles
	if inst.Kind == KindStore || inst.Kind == KindRMW {
		addrExtra = 0
	}

	total := inst.Cycles + addrExtra + branchExtra
	c.cyclesRemaining = total - 1
	return nil
}

// serviceInterrupt implements the shared NMI/IRQ push sequence: PC high,
// PC low, status with B=0, set I, load PC from vector, charge 7 cycles.
// BRK's own push sequence (B=1) lives in command.BRK since BRK is a normal
// opcode dispatched through the instruction table, not through here.
func (c *CPU) serviceInterrupt(vector uint16) {
	c.Bus.Write(c.Reg.PushByte(), uint8(c.Reg.PC>>8))
	c.Bus.Write(c.Reg.PushByte(), uint8(c.Reg.PC))
	c.Bus.Write(c.Reg.PushByte(), c.Reg.Status()&^register.FlagB)
	c.Reg.SetFlag(register.FlagI, true)
	c.Reg.PC = memory.Read16(c.Bus, vector)
	c.cyclesRemaining = 7 - 1
}
