package main

import "testing"

func TestRegistersAccumulatorAliasing(t *testing.T) {
	r := NewRegisters()
	r.D = 0x1234
	if r.A() != 0x12 || r.B() != 0x34 {
		t.Fatalf("A/B = %#02x/%#02x, want 0x12/0x34", r.A(), r.B())
	}
	r.SetA(0xAA)
	if r.D != 0xAA34 {
		t.Fatalf("SetA left D = %#04x, want 0xAA34", r.D)
	}
	r.SetB(0xBB)
	if r.D != 0xAABB {
		t.Fatalf("SetB left D = %#04x, want 0xAABB", r.D)
	}
}

func TestRegistersResetDefaults(t *testing.T) {
	r := NewRegisters()
	if !r.Flag(FlagS) || !r.Flag(FlagI) {
		t.Fatalf("post-reset CCR = %#02x, want S and I set", r.CCR)
	}
	if r.Flag(FlagN) || r.Flag(FlagZ) || r.Flag(FlagC) {
		t.Fatalf("post-reset CCR = %#02x, want N/Z/C clear", r.CCR)
	}
}

func TestSetAddFlags8HalfCarry(t *testing.T) {
	r := NewRegisters()
	// 0x0F + 0x01 carries out of bit 3 but not bit 7.
	r.setAddFlags8(0x0F, 0x01, 0x10)
	if !r.Flag(FlagH) {
		t.Fatalf("expected H set for 0x0F+0x01")
	}
	if r.Flag(FlagC) {
		t.Fatalf("did not expect C set for 0x0F+0x01")
	}
}

func TestSetAddFlags8Carry(t *testing.T) {
	r := NewRegisters()
	r.setAddFlags8(0xF0, 0x20, 0x10) // 0xF0+0x20 = 0x110, wraps to 0x10
	if !r.Flag(FlagC) {
		t.Fatalf("expected C set for 0xF0+0x20")
	}
	if r.Flag(FlagZ) {
		t.Fatalf("result 0x10 should not set Z")
	}
}

func TestSetSubFlags8Borrow(t *testing.T) {
	r := NewRegisters()
	r.setSubFlags8(0x00, 0x01, 0xFF)
	if !r.Flag(FlagC) {
		t.Fatalf("expected C (borrow) set for 0x00-0x01")
	}
	if !r.Flag(FlagN) {
		t.Fatalf("expected N set for result 0xFF")
	}
}

func TestSetLogicalFlags8ClearsV(t *testing.T) {
	r := NewRegisters()
	r.SetFlag(FlagV, true)
	r.setLogicalFlags8(0x00)
	if r.Flag(FlagV) {
		t.Fatalf("expected V cleared by logical op")
	}
	if !r.Flag(FlagZ) {
		t.Fatalf("expected Z set for zero result")
	}
}
