package addressing_test

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/msherman-go/sixtwoh502/addressing"
	"github.com/msherman-go/sixtwoh502/memory"
	"github.com/msherman-go/sixtwoh502/register"
)

func newBus(t *testing.T) *memory.RAM {
	t.Helper()
	bus, err := memory.NewRAM(1<<16, nil)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	return bus
}

func TestImmediate(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x10, 0x42)
	reg := register.File{PC: 0x10}

	op := addressing.Fetch(addressing.Immediate, &reg, bus, false)
	want := addressing.Operand{Address: 0x10, Value: 0x42}
	if diff := deep.Equal(op, want); diff != nil {
		t.Errorf("Immediate: %v", diff)
	}
	if reg.PC != 0x11 {
		t.Errorf("PC after Immediate = %#x, want 0x11", reg.PC)
	}
}

func TestZeroPageXWraps(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x00, 0xFF) // zp operand byte
	bus.Write(0x7F, 0x99) // (0xFF + 0x80) & 0xFF = 0x7F
	reg := register.File{PC: 0x00, X: 0x80}

	op := addressing.Fetch(addressing.ZeroPageX, &reg, bus, false)
	if op.Address != 0x7F || op.Value != 0x99 {
		t.Errorf("ZeroPageX wrap: got address=%#x value=%#x, want 0x7F/0x99", op.Address, op.Value)
	}
}

func TestAbsoluteXPageCross(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x00, 0xFF)
	bus.Write(0x01, 0x20) // base = 0x20FF
	bus.Write(0x2100, 0x77)
	reg := register.File{PC: 0x00, X: 0x01}

	op := addressing.Fetch(addressing.AbsoluteX, &reg, bus, false)
	if op.Address != 0x2100 || op.Value != 0x77 || op.ExtraCycles != 1 {
		t.Errorf("AbsoluteX page-cross: got %+v, want address=0x2100 value=0x77 extra=1", op)
	}
}

func TestAbsoluteXNoPageCross(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x00, 0x00)
	bus.Write(0x01, 0x20) // base = 0x2000
	bus.Write(0x2001, 0x55)
	reg := register.File{PC: 0x00, X: 0x01}

	op := addressing.Fetch(addressing.AbsoluteX, &reg, bus, false)
	if op.ExtraCycles != 0 {
		t.Errorf("no page cross: ExtraCycles = %d, want 0", op.ExtraCycles)
	}
}

// TestIndirectJMPBug reproduces the classic NMOS indirect-JMP page-wrap
// bug: JMP ($30FF) fetches its high byte from $3000, not $3100, because
// the pointer read never carries into the high byte of the pointer address.
func TestIndirectJMPBug(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x00, 0xFF)
	bus.Write(0x01, 0x30) // ptr = 0x30FF
	bus.Write(0x30FF, 0x40)
	bus.Write(0x3000, 0x80)
	bus.Write(0x3100, 0x50)
	reg := register.File{PC: 0x00}

	op := addressing.Fetch(addressing.Indirect, &reg, bus, false)
	if op.Address != 0x8040 {
		t.Errorf("NMOS indirect bug: got %#04x, want 0x8040", op.Address)
	}
}

func TestIndirectCMOSFixed(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x00, 0xFF)
	bus.Write(0x01, 0x30)
	bus.Write(0x30FF, 0x40)
	bus.Write(0x3100, 0x50)
	reg := register.File{PC: 0x00}

	op := addressing.Fetch(addressing.Indirect, &reg, bus, true)
	if op.Address != 0x5040 {
		t.Errorf("CMOS indirect: got %#04x, want 0x5040", op.Address)
	}
}

func TestIndirectZeroPageX(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x00, 0x20) // zp operand
	bus.Write(0x24, 0x00) // (0x20+0x04)&0xFF = 0x24 -> low byte
	bus.Write(0x25, 0x40) // high byte -> base 0x4000
	bus.Write(0x4000, 0x77)
	reg := register.File{PC: 0x00, X: 0x04}

	op := addressing.Fetch(addressing.IndirectZeroPageX, &reg, bus, false)
	if op.Address != 0x4000 || op.Value != 0x77 {
		t.Errorf("IndirectZeroPageX: got %+v", op)
	}
}

func TestIndirectZeroPageY(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x00, 0x20)
	bus.Write(0x20, 0x00)
	bus.Write(0x21, 0x40) // base = 0x4000
	bus.Write(0x4010, 0x77)
	reg := register.File{PC: 0x00, Y: 0x10}

	op := addressing.Fetch(addressing.IndirectZeroPageY, &reg, bus, false)
	if op.Address != 0x4010 || op.Value != 0x77 || op.ExtraCycles != 0 {
		t.Errorf("IndirectZeroPageY: got %+v", op)
	}
}

func TestRelativeBackwardBranch(t *testing.T) {
	bus := newBus(t)
	bus.Write(0x10, 0xFE) // -2
	reg := register.File{PC: 0x10}

	op := addressing.Fetch(addressing.Relative, &reg, bus, false)
	// PC after reading the operand byte is 0x11; target = 0x11 + (-2) = 0x0F.
	if op.Address != 0x0F {
		t.Errorf("Relative backward: got %#04x, want 0x0F", op.Address)
	}
}

func TestBytesToRead(t *testing.T) {
	cases := map[addressing.Mode]uint8{
		addressing.Implied:           0,
		addressing.Accumulator:       0,
		addressing.Immediate:         1,
		addressing.ZeroPage:          1,
		addressing.ZeroPageX:         1,
		addressing.ZeroPageY:         1,
		addressing.Relative:          1,
		addressing.Absolute:          2,
		addressing.AbsoluteX:         2,
		addressing.AbsoluteY:         2,
		addressing.Indirect:          2,
		addressing.IndirectZeroPageX: 1,
		addressing.IndirectZeroPageY: 1,
	}
	for mode, want := range cases {
		if got := mode.BytesToRead(); got != want {
			t.Errorf("%s.BytesToRead() = %d, want %d", mode, got, want)
		}
	}
}
