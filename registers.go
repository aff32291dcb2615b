// registers.go - HC11 register file and condition code flags

package main

// CCR bit positions, MSB to LSB: S X H I N Z V C.
const (
	FlagC uint8 = 1 << iota
	FlagV
	FlagZ
	FlagN
	FlagI
	FlagH
	FlagX
	FlagS
)

// Registers holds the HC11's register file: the 16-bit index and stack
// registers, the program counter, and the accumulator pair D = A:B.
type Registers struct {
	X, Y, SP, PC uint16
	D            uint16 // A = high byte, B = low byte
	CCR          uint8
}

// NewRegisters returns a register file in its post-reset state: CCR with
// S and I set (interrupts masked, stop disabled), everything else zero.
func NewRegisters() *Registers {
	return &Registers{CCR: FlagS | FlagI}
}

func (r *Registers) A() uint8 { return uint8(r.D >> 8) }
func (r *Registers) B() uint8 { return uint8(r.D) }

func (r *Registers) SetA(v uint8) { r.D = uint16(v)<<8 | (r.D & 0x00FF) }
func (r *Registers) SetB(v uint8) { r.D = (r.D & 0xFF00) | uint16(v) }

func (r *Registers) Flag(f uint8) bool { return r.CCR&f != 0 }

func (r *Registers) SetFlag(f uint8, on bool) {
	if on {
		r.CCR |= f
	} else {
		r.CCR &^= f
	}
}

// setNZ8 updates N and Z from an 8-bit result.
func (r *Registers) setNZ8(v uint8) {
	r.SetFlag(FlagN, v&0x80 != 0)
	r.SetFlag(FlagZ, v == 0)
}

// setFlagZ16 updates only Z from a 16-bit result, matching HC11's INX/
// DEX/INY/DEY, which affect Z alone.
func (r *Registers) setFlagZ16(v uint16) {
	r.SetFlag(FlagZ, v == 0)
}

// setNZ16 updates N and Z from a 16-bit result.
func (r *Registers) setNZ16(v uint16) {
	r.SetFlag(FlagN, v&0x8000 != 0)
	r.SetFlag(FlagZ, v == 0)
}

// setAddFlags8 sets N, Z, V, C, H for an 8-bit addition a+b=result.
func (r *Registers) setAddFlags8(a, b, result uint8) {
	r.setNZ8(result)
	r.SetFlag(FlagH, (a&0x0F)+(b&0x0F) > 0x0F)
	r.SetFlag(FlagV, ((a^result)&(b^result)&0x80) != 0)
	r.SetFlag(FlagC, uint16(a)+uint16(b) > 0xFF)
}

// setAddFlags16 sets N, Z, V, C for a 16-bit addition a+b=result (no H).
func (r *Registers) setAddFlags16(a, b, result uint16) {
	r.setNZ16(result)
	r.SetFlag(FlagV, ((a^result)&(b^result)&0x8000) != 0)
	r.SetFlag(FlagC, uint32(a)+uint32(b) > 0xFFFF)
}

// setSubFlags8 sets N, Z, V, C for an 8-bit subtraction a-b=result.
func (r *Registers) setSubFlags8(a, b, result uint8) {
	r.setNZ8(result)
	r.SetFlag(FlagV, ((a^b)&(a^result)&0x80) != 0)
	r.SetFlag(FlagC, uint16(b) > uint16(a))
}

// setAdcFlags8 sets N, Z, V, C, H for a+b+carry=result, carry being the
// incoming FlagC. H and C are derived from the full-width a+b+carry sum
// so a carry-in that pushes b past 0xFF (e.g. b=0xFF, carry=1) is not
// lost to an 8-bit wraparound before the flags are computed.
func (r *Registers) setAdcFlags8(a, b, carry, result uint8) {
	r.setNZ8(result)
	r.SetFlag(FlagH, (a&0x0F)+(b&0x0F)+carry > 0x0F)
	r.SetFlag(FlagV, ((a^result)&(b^result)&0x80) != 0)
	r.SetFlag(FlagC, uint16(a)+uint16(b)+uint16(carry) > 0xFF)
}

// setSbcFlags8 sets N, Z, V, C for a-b-carry=result, carry being the
// incoming FlagC, with C derived from the full-width borrow so a
// carry-in is never lost to an 8-bit wraparound of b+carry.
func (r *Registers) setSbcFlags8(a, b, carry, result uint8) {
	r.setNZ8(result)
	r.SetFlag(FlagV, ((a^b)&(a^result)&0x80) != 0)
	r.SetFlag(FlagC, uint16(b)+uint16(carry) > uint16(a))
}

// setSubFlags16 sets N, Z, V, C for a 16-bit subtraction a-b=result.
func (r *Registers) setSubFlags16(a, b, result uint16) {
	r.setNZ16(result)
	r.SetFlag(FlagV, ((a^b)&(a^result)&0x8000) != 0)
	r.SetFlag(FlagC, uint32(b) > uint32(a))
}

// setLogicalFlags8 sets N, Z and clears V for AND/OR/EOR/COM-style results.
func (r *Registers) setLogicalFlags8(v uint8) {
	r.setNZ8(v)
	r.SetFlag(FlagV, false)
}
