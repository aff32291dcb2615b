package main

import "testing"

func TestBusRAMWindowReadWriteRoundTrip(t *testing.T) {
	b := NewBus(nil)
	b.Write8(0x0010, 0x42)
	if got := b.Read8(0x0010); got != 0x42 {
		t.Fatalf("Read8(0x0010) = %#02x, want 0x42", got)
	}
}

func TestBusOpenBusReturnsFF(t *testing.T) {
	b := NewBus(nil)
	// Default RAM window is 0x0000-0x00FF and I/O is 0x1000-0x103F, so
	// 0x2000 is unmapped open bus.
	if got := b.Read8(0x2000); got != 0xFF {
		t.Fatalf("Read8(unmapped) = %#02x, want 0xFF", got)
	}
	b.Write8(0x2000, 0x99)
	if got := b.Read8(0x2000); got != 0xFF {
		t.Fatalf("write to open bus should be dropped, still read %#02x", got)
	}
}

func TestBusIOWindowPriorityOverRAM(t *testing.T) {
	b := NewBus(nil)
	b.SetIOBase(0x0000) // overlap RAM window deliberately to test priority
	var seen uint8
	b.InstallIOHandler(0x10, 1, nil,
		func(ctx any, offset uint16) uint8 { return 0x77 },
		func(ctx any, offset uint16, v uint8) { seen = v })

	if got := b.Read8(0x0010); got != 0x77 {
		t.Fatalf("I/O handler should win over RAM at overlapping address, got %#02x", got)
	}
	b.Write8(0x0010, 0x55)
	if seen != 0x55 {
		t.Fatalf("I/O writer did not observe write, got %#02x", seen)
	}
}

func TestBusExternalRegionPriorityOverOpenBus(t *testing.T) {
	b := NewBus(nil)
	if err := b.MapRAM("ext", 0x4000, 0x100); err != nil {
		t.Fatalf("MapRAM: %v", err)
	}
	b.Write8(0x4010, 0x99)
	if got := b.Read8(0x4010); got != 0x99 {
		t.Fatalf("external RAM region round-trip failed, got %#02x", got)
	}
}

func TestBusRejectsOverlappingRegions(t *testing.T) {
	b := NewBus(nil)
	if err := b.MapRAM("a", 0x4000, 0x100); err != nil {
		t.Fatalf("MapRAM a: %v", err)
	}
	if err := b.MapRAM("b", 0x4050, 0x100); err == nil {
		t.Fatalf("expected overlap rejection for region b")
	}
}

func TestBusROMWritesIgnored(t *testing.T) {
	b := NewBus(nil)
	rom := []byte{0xAA, 0xBB, 0xCC}
	if err := b.MapROM("rom", 0x8000, rom); err != nil {
		t.Fatalf("MapROM: %v", err)
	}
	b.Write8(0x8001, 0x00)
	if got := b.Read8(0x8001); got != 0xBB {
		t.Fatalf("ROM write should be ignored, got %#02x want 0xBB", got)
	}
}

func TestBusRead16Write16BigEndian(t *testing.T) {
	b := NewBus(nil)
	b.Write16(0x0020, 0x1234)
	if got := b.Read8(0x0020); got != 0x12 {
		t.Fatalf("high byte at lower address: got %#02x, want 0x12", got)
	}
	if got := b.Read8(0x0021); got != 0x34 {
		t.Fatalf("low byte at higher address: got %#02x, want 0x34", got)
	}
	if got := b.Read16(0x0020); got != 0x1234 {
		t.Fatalf("Read16 = %#04x, want 0x1234", got)
	}
}

func TestBusRAMWindowRelocation(t *testing.T) {
	b := NewBus(nil)
	b.SetRAMBase(0x6000)
	b.Write8(0x6005, 0x11)
	if got := b.Read8(0x6005); got != 0x11 {
		t.Fatalf("relocated RAM window did not accept write, got %#02x", got)
	}
	if got := b.Read8(0x0005); got != 0xFF {
		t.Fatalf("old RAM window location should now be open bus, got %#02x", got)
	}
}
