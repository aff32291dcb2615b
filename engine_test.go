package main

import "testing"

func newTestEngine(t *testing.T, pc uint16, program []byte) *Engine {
	t.Helper()
	bus := NewBus(nil)
	if err := bus.MapRAM("test-ram", pc, uint16(len(program))+0x100); err != nil {
		t.Fatalf("MapRAM: %v", err)
	}
	for i, b := range program {
		bus.Write8(pc+uint16(i), b)
	}
	regs := NewRegisters()
	regs.PC = pc
	e := NewEngine(regs, bus, nil)
	e.beginExecution()
	return e
}

// Scenario 1: LDAA immediate.
func TestScenarioLDAAImmediate(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x86, 0x42})
	e.Step()
	if e.Regs.A() != 0x42 {
		t.Fatalf("A = %#02x, want 0x42", e.Regs.A())
	}
	if e.Regs.PC != 0xE002 {
		t.Fatalf("PC = %#04x, want 0xE002", e.Regs.PC)
	}
	if e.Regs.Flag(FlagZ) || e.Regs.Flag(FlagN) {
		t.Fatalf("Z/N should be clear for A=0x42")
	}
}

// Scenario 2: ADDA extended with carry.
func TestScenarioADDAExtendedCarry(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x86, 0xF0, 0xBB, 0xE0, 0x05, 0x20})
	e.Step() // LDAA #0xF0
	if e.Regs.A() != 0xF0 {
		t.Fatalf("A after LDAA = %#02x, want 0xF0", e.Regs.A())
	}
	e.Step() // ADDA 0xE005 (value 0x20)
	if e.Regs.A() != 0x10 {
		t.Fatalf("A after ADDA = %#02x, want 0x10", e.Regs.A())
	}
	if !e.Regs.Flag(FlagC) {
		t.Fatalf("expected C set")
	}
	if e.Regs.Flag(FlagN) || e.Regs.Flag(FlagZ) || e.Regs.Flag(FlagH) || e.Regs.Flag(FlagV) {
		t.Fatalf("expected N/Z/H/V clear, CCR=%#02x", e.Regs.CCR)
	}
}

// Scenario 3: branch taken BNE loops back.
func TestScenarioBranchTakenBNE(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x86, 0x01, 0x26, 0xFC})
	e.Step() // LDAA #1
	if e.Regs.A() != 1 || e.Regs.Flag(FlagZ) {
		t.Fatalf("A=%#02x Z=%v, want A=1 Z=false", e.Regs.A(), e.Regs.Flag(FlagZ))
	}
	e.Step() // BNE -4
	if e.Regs.PC != 0xE000 {
		t.Fatalf("PC after taken BNE = %#04x, want 0xE000", e.Regs.PC)
	}
}

// Scenario 4: prefix-0x18 LDY immediate.
func TestScenarioPrefix18LDYImmediate(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x18, 0xCE, 0x12, 0x34})
	e.Step()
	if e.Regs.Y != 0x1234 {
		t.Fatalf("Y = %#04x, want 0x1234", e.Regs.Y)
	}
	if e.Regs.PC != 0xE004 {
		t.Fatalf("PC = %#04x, want 0xE004", e.Regs.PC)
	}
	if e.Prefix() != 0 {
		t.Fatalf("prefix not cleared after instruction commit")
	}
}

// Scenario 5: illegal double prefix.
func TestScenarioIllegalDoublePrefix(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x18, 0x18, 0x00, 0x00})
	reason := e.Step()
	if e.Status() != StatusStopped {
		t.Fatalf("status = %v, want STOPPED", e.Status())
	}
	if reason != StopFail {
		t.Fatalf("stop reason = %v, want StopFail", reason)
	}
}

// Invariant 3: JMP extended sets PC to the operand address.
func TestInvariantJMPExtended(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x7E, 0x30, 0x00})
	e.Step()
	if e.Regs.PC != 0x3000 {
		t.Fatalf("PC after JMP ext = %#04x, want 0x3000", e.Regs.PC)
	}
}

// Invariant 4 / boundary: BRA 0xFE at PC=0x1000 loops to itself.
func TestBranchOffsetSignedSelfLoop(t *testing.T) {
	e := newTestEngine(t, 0x1000, []byte{0x20, 0xFE})
	e.Step()
	if e.Regs.PC != 0x1000 {
		t.Fatalf("PC after BRA 0xFE = %#04x, want 0x1000", e.Regs.PC)
	}
}

// Invariant 5: PSHA/PULA round trip leaves A and SP unchanged.
func TestPSHAPULARoundTrip(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x36, 0x32}) // PSHA, PULA
	e.Regs.SetA(0x5A)
	e.Regs.SP = 0xE0FF
	wantSP := e.Regs.SP
	e.Step()
	e.Step()
	if e.Regs.A() != 0x5A {
		t.Fatalf("A after PSHA/PULA = %#02x, want 0x5A", e.Regs.A())
	}
	if e.Regs.SP != wantSP {
		t.Fatalf("SP after PSHA/PULA = %#04x, want %#04x", e.Regs.SP, wantSP)
	}
}

// Invariant 6: RTI after SWI restores CCR, B, A, X, Y, PC.
func TestSWIRTIRoundTrip(t *testing.T) {
	bus := NewBus(nil)
	bus.MapRAM("ram", 0x0000, 0x100)
	bus.MapRAM("prog", 0xE000, 0x10)
	bus.MapRAM("vectors", 0xFFC0, 0x40) // so the SWI vector written below is readable
	regs := NewRegisters()
	regs.PC = 0xE000
	regs.X, regs.Y = 0x1111, 0x2222
	regs.SetA(0x33)
	regs.SetB(0x44)
	regs.CCR = 0x55
	regs.SP = 0x00FF
	bus.Write8(0xE000, 0x3F) // SWI
	bus.Write8(VectorSWI, 0xE0)
	bus.Write8(VectorSWI+1, 0x01)
	bus.Write8(0xE001, 0x3B) // RTI at the SWI handler address

	e := NewEngine(regs, bus, nil)
	e.beginExecution()

	wantPC, wantX, wantY, wantA, wantB, wantCCR := regs.PC+1, regs.X, regs.Y, regs.A(), regs.B(), regs.CCR

	e.Step() // SWI
	e.Step() // RTI

	if e.Regs.PC != wantPC || e.Regs.X != wantX || e.Regs.Y != wantY ||
		e.Regs.A() != wantA || e.Regs.B() != wantB || e.Regs.CCR != wantCCR {
		t.Fatalf("SWI/RTI round trip mismatch: got PC=%#04x X=%#04x Y=%#04x A=%#02x B=%#02x CCR=%#02x",
			e.Regs.PC, e.Regs.X, e.Regs.Y, e.Regs.A(), e.Regs.B(), e.Regs.CCR)
	}
}

// Boundary: INC on 0xFF wraps to 0x00 with N=0, Z=1, V=1.
func TestINCBoundaryWrap(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x4C}) // INCA
	e.Regs.SetA(0xFF)
	e.Step()
	if e.Regs.A() != 0x00 {
		t.Fatalf("A after INCA on 0xFF = %#02x, want 0x00", e.Regs.A())
	}
	if e.Regs.Flag(FlagN) {
		t.Fatalf("expected N clear")
	}
	if !e.Regs.Flag(FlagZ) {
		t.Fatalf("expected Z set")
	}
	if !e.Regs.Flag(FlagV) {
		t.Fatalf("expected V set")
	}
}

// Boundary: indexed addressing treats the offset as unsigned.
func TestIndexedOffsetUnsigned(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0xA6, 0xFF}) // LDAA 0xFF,X
	e.Regs.X = 0x0000
	e.Bus.Write8(0x00FF, 0x7A)
	e.Step()
	if e.Regs.A() != 0x7A {
		t.Fatalf("A = %#02x, want 0x7A (offset 0xFF treated as +255, not -1)", e.Regs.A())
	}
}

// Invariant 1: D == (A<<8)|B at an instruction boundary after a 16-bit load.
func TestInvariantDEqualsAB(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0xCC, 0x12, 0x34}) // LDD #0x1234
	e.Step()
	if e.Regs.D != uint16(e.Regs.A())<<8|uint16(e.Regs.B()) {
		t.Fatalf("D != (A<<8)|B: D=%#04x A=%#02x B=%#02x", e.Regs.D, e.Regs.A(), e.Regs.B())
	}
}

// Invariant 2: clocks is monotone non-decreasing across steps.
func TestClocksMonotone(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x86, 0x01, 0x86, 0x02})
	prev := e.Clocks()
	for i := 0; i < 2; i++ {
		e.Step()
		if e.Clocks() < prev {
			t.Fatalf("clocks decreased: %d -> %d", prev, e.Clocks())
		}
		prev = e.Clocks()
	}
}

func TestBreakpointStopsRunUntilStop(t *testing.T) {
	e := newTestEngine(t, 0xE000, []byte{0x01, 0x01, 0x01, 0x01}) // NOP x4
	e.SetBreakpoint(0xE002)
	e.RunUntilStop() // first NOP retires
	if e.Status() != StatusRunning {
		t.Fatalf("status after first instruction = %v, want still RUNNING", e.Status())
	}
	e.RunUntilStop() // second NOP (at 0xE001) retires
	e.RunUntilStop() // should halt before fetching at 0xE002
	if e.Status() != StatusStopped {
		t.Fatalf("status = %v, want STOPPED at breakpoint", e.Status())
	}
	if e.Regs.PC != 0xE002 {
		t.Fatalf("PC = %#04x, want 0xE002 (halted before fetch)", e.Regs.PC)
	}
}
