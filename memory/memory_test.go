package memory_test

import (
	"testing"

	"github.com/msherman-go/sixtwoh502/memory"
)

func TestNewRAMRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := memory.NewRAM(100, nil); err == nil {
		t.Error("expected error for non-power-of-2 size")
	}
}

func TestNewRAMRejectsOversize(t *testing.T) {
	if _, err := memory.NewRAM(1<<17, nil); err == nil {
		t.Error("expected error for size > 64k")
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	bus, err := memory.NewRAM(1<<16, nil)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	bus.Write(0x1234, 0x99)
	if got := bus.Read(0x1234); got != 0x99 {
		t.Errorf("got %#02x, want 0x99", got)
	}
	if got := bus.DatabusVal(); got != 0x99 {
		t.Errorf("DatabusVal = %#02x, want last read 0x99", got)
	}
}

func TestAliasingOnSmallerRAM(t *testing.T) {
	bus, err := memory.NewRAM(0x100, nil)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	bus.Write(0x0010, 0xAB)
	if got := bus.Read(0x0110); got != 0xAB {
		t.Errorf("expected aliasing at +0x100, got %#02x", got)
	}
}

func TestLatestDatabusValWalksParentChain(t *testing.T) {
	outer, err := memory.NewRAM(0x100, nil)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	outer.Write(0, 0x42)
	inner, err := memory.NewRAM(0x100, outer)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	// inner's own databusVal is untouched; LatestDatabusVal should report
	// the outermost bus's last-seen value.
	if got := memory.LatestDatabusVal(inner); got != 0x42 {
		t.Errorf("got %#02x, want 0x42 (outer's last write)", got)
	}
}

func TestRead16LittleEndian(t *testing.T) {
	bus, err := memory.NewRAM(1<<16, nil)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	bus.Write(0x00, 0x34)
	bus.Write(0x01, 0x12)
	if got := memory.Read16(bus, 0x00); got != 0x1234 {
		t.Errorf("got %#04x, want 0x1234", got)
	}
}
