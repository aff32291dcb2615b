// ops_arith.go - ADD/ADC/SUB/SBC/CMP/NEG/INC/DEC/DAA/MUL/IDIV/FDIV with
// full flag side-effects (spec 4.C).

package main

func init() {
	// ADDA
	define(0x00, 0x8B, "ADDA", modeImm8, 2, addA)
	define(0x00, 0x9B, "ADDA", modeDirect, 3, addA)
	define(0x00, 0xBB, "ADDA", modeExtended, 4, addA)
	define(0x00, 0xAB, "ADDA", modeIndexed, 4, addA)
	define(prefixY, 0xAB, "ADDA", modeIndexed, 5, addA)

	// ADCA
	define(0x00, 0x89, "ADCA", modeImm8, 2, adcA)
	define(0x00, 0x99, "ADCA", modeDirect, 3, adcA)
	define(0x00, 0xB9, "ADCA", modeExtended, 4, adcA)
	define(0x00, 0xA9, "ADCA", modeIndexed, 4, adcA)

	// ADDB / ADCB
	define(0x00, 0xCB, "ADDB", modeImm8, 2, addB)
	define(0x00, 0xDB, "ADDB", modeDirect, 3, addB)
	define(0x00, 0xFB, "ADDB", modeExtended, 4, addB)
	define(0x00, 0xEB, "ADDB", modeIndexed, 4, addB)
	define(0x00, 0xC9, "ADCB", modeImm8, 2, adcB)
	define(0x00, 0xD9, "ADCB", modeDirect, 3, adcB)
	define(0x00, 0xF9, "ADCB", modeExtended, 4, adcB)
	define(0x00, 0xE9, "ADCB", modeIndexed, 4, adcB)

	// ADDD
	define(0x00, 0xC3, "ADDD", modeImm16, 4, addD)
	define(0x00, 0xD3, "ADDD", modeDirect, 5, addD)
	define(0x00, 0xF3, "ADDD", modeExtended, 6, addD)
	define(0x00, 0xE3, "ADDD", modeIndexed, 6, addD)

	// SUBA / SBCA / CMPA
	define(0x00, 0x80, "SUBA", modeImm8, 2, subA)
	define(0x00, 0x90, "SUBA", modeDirect, 3, subA)
	define(0x00, 0xB0, "SUBA", modeExtended, 4, subA)
	define(0x00, 0xA0, "SUBA", modeIndexed, 4, subA)
	define(0x00, 0x82, "SBCA", modeImm8, 2, sbcA)
	define(0x00, 0x92, "SBCA", modeDirect, 3, sbcA)
	define(0x00, 0xB2, "SBCA", modeExtended, 4, sbcA)
	define(0x00, 0x81, "CMPA", modeImm8, 2, cmpA)
	define(0x00, 0x91, "CMPA", modeDirect, 3, cmpA)
	define(0x00, 0xB1, "CMPA", modeExtended, 4, cmpA)
	define(0x00, 0xA1, "CMPA", modeIndexed, 4, cmpA)

	// SUBB / SBCB / CMPB
	define(0x00, 0xC0, "SUBB", modeImm8, 2, subB)
	define(0x00, 0xD0, "SUBB", modeDirect, 3, subB)
	define(0x00, 0xF0, "SUBB", modeExtended, 4, subB)
	define(0x00, 0xC2, "SBCB", modeImm8, 2, sbcB)
	define(0x00, 0xD2, "SBCB", modeDirect, 3, sbcB)
	define(0x00, 0xC1, "CMPB", modeImm8, 2, cmpB)
	define(0x00, 0xD1, "CMPB", modeDirect, 3, cmpB)
	define(0x00, 0xE1, "CMPB", modeIndexed, 4, cmpB)

	// SUBD / CPX / CPY / CPD
	define(0x00, 0x83, "SUBD", modeImm16, 4, subD)
	define(0x00, 0x93, "SUBD", modeDirect, 5, subD)
	define(0x00, 0xB3, "SUBD", modeExtended, 6, subD)
	define(0x00, 0x8C, "CPX", modeImm16, 4, cpx)
	define(0x00, 0x9C, "CPX", modeDirect, 5, cpx)
	define(0x00, 0xBC, "CPX", modeExtended, 6, cpx)
	define(0x00, 0xAC, "CPX", modeIndexed, 6, cpx)
	define(prefixY, 0x8C, "CPY", modeImm16, 5, cpy)
	define(prefixY, 0xBC, "CPY", modeExtended, 7, cpy)
	define(prefixCPD, 0x83, "CPD", modeImm16, 5, cpd)
	define(prefixCPD, 0xB3, "CPD", modeExtended, 7, cpd)

	// NEG/INC/DEC/TST/CLR (accumulator and indexed/extended)
	define(0x00, 0x40, "NEGA", modeInherent, 2, negA)
	define(0x00, 0x4C, "INCA", modeInherent, 2, incA)
	define(0x00, 0x4A, "DECA", modeInherent, 2, decA)
	define(0x00, 0x4D, "TSTA", modeInherent, 2, tstA)
	define(0x00, 0x4F, "CLRA", modeInherent, 2, clrA)
	define(0x00, 0x50, "NEGB", modeInherent, 2, negB)
	define(0x00, 0x5C, "INCB", modeInherent, 2, incB)
	define(0x00, 0x5A, "DECB", modeInherent, 2, decB)
	define(0x00, 0x5D, "TSTB", modeInherent, 2, tstB)
	define(0x00, 0x5F, "CLRB", modeInherent, 2, clrB)

	define(0x00, 0x60, "NEG", modeIndexed, 6, negMem)
	define(0x00, 0x6C, "INC", modeIndexed, 6, incMem)
	define(0x00, 0x6A, "DEC", modeIndexed, 6, decMem)
	define(0x00, 0x6D, "TST", modeIndexed, 6, tstMem)
	define(0x00, 0x6F, "CLR", modeIndexed, 6, clrMem)
	define(0x00, 0x70, "NEG", modeExtended, 6, negMem)
	define(0x00, 0x7C, "INC", modeExtended, 6, incMem)
	define(0x00, 0x7A, "DEC", modeExtended, 6, decMem)
	define(0x00, 0x7D, "TST", modeExtended, 6, tstMem)
	define(0x00, 0x7F, "CLR", modeExtended, 6, clrMem)

	define(0x00, 0x19, "DAA", modeInherent, 2, daa)
	define(0x00, 0x3D, "MUL", modeInherent, 10, mul)
	define(0x00, 0x02, "IDIV", modeInherent, 41, idiv)
	define(0x00, 0x03, "FDIV", modeInherent, 41, fdiv)
}

func addA(e *Engine) { a, b := e.Regs.A(), e.readOperand8(); r := a + b; e.Regs.SetA(r); e.Regs.setAddFlags8(a, b, r) }
func addB(e *Engine) { a, b := e.Regs.B(), e.readOperand8(); r := a + b; e.Regs.SetB(r); e.Regs.setAddFlags8(a, b, r) }

func adcA(e *Engine) {
	a, b := e.Regs.A(), e.readOperand8()
	carry := uint8(0)
	if e.Regs.Flag(FlagC) {
		carry = 1
	}
	r := a + b + carry
	e.Regs.SetA(r)
	e.Regs.setAdcFlags8(a, b, carry, r)
}

func adcB(e *Engine) {
	a, b := e.Regs.B(), e.readOperand8()
	carry := uint8(0)
	if e.Regs.Flag(FlagC) {
		carry = 1
	}
	r := a + b + carry
	e.Regs.SetB(r)
	e.Regs.setAdcFlags8(a, b, carry, r)
}

func addD(e *Engine) { a, b := e.Regs.D, e.readOperand16(); r := a + b; e.Regs.D = r; e.Regs.setAddFlags16(a, b, r) }

func subA(e *Engine) { a, b := e.Regs.A(), e.readOperand8(); r := a - b; e.Regs.SetA(r); e.Regs.setSubFlags8(a, b, r) }
func subB(e *Engine) { a, b := e.Regs.B(), e.readOperand8(); r := a - b; e.Regs.SetB(r); e.Regs.setSubFlags8(a, b, r) }
func cmpA(e *Engine) { a, b := e.Regs.A(), e.readOperand8(); e.Regs.setSubFlags8(a, b, a-b) }
func cmpB(e *Engine) { a, b := e.Regs.B(), e.readOperand8(); e.Regs.setSubFlags8(a, b, a-b) }

func sbcA(e *Engine) {
	a, b := e.Regs.A(), e.readOperand8()
	carry := uint8(0)
	if e.Regs.Flag(FlagC) {
		carry = 1
	}
	r := a - b - carry
	e.Regs.SetA(r)
	e.Regs.setSbcFlags8(a, b, carry, r)
}

func sbcB(e *Engine) {
	a, b := e.Regs.B(), e.readOperand8()
	carry := uint8(0)
	if e.Regs.Flag(FlagC) {
		carry = 1
	}
	r := a - b - carry
	e.Regs.SetB(r)
	e.Regs.setSbcFlags8(a, b, carry, r)
}

func subD(e *Engine) { a, b := e.Regs.D, e.readOperand16(); r := a - b; e.Regs.D = r; e.Regs.setSubFlags16(a, b, r) }
func cpx(e *Engine)  { a, b := e.Regs.X, e.readOperand16(); e.Regs.setSubFlags16(a, b, a-b) }
func cpy(e *Engine)  { a, b := e.Regs.Y, e.readOperand16(); e.Regs.setSubFlags16(a, b, a-b) }
func cpd(e *Engine)  { a, b := e.Regs.D, e.readOperand16(); e.Regs.setSubFlags16(a, b, a-b) }

func negA(e *Engine) { a := e.Regs.A(); r := -a; e.Regs.SetA(r); e.Regs.setSubFlags8(0, a, r) }
func negB(e *Engine) { a := e.Regs.B(); r := -a; e.Regs.SetB(r); e.Regs.setSubFlags8(0, a, r) }
func negMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := -a
	e.Bus.Write8(addr, r)
	e.Regs.setSubFlags8(0, a, r)
}

// incA/incB/incMem set V on wrap: INC on 0xFF sets N=0, Z=1, V=1 and
// wraps to 0x00 (V here tracks the wrap to zero, not the 0x7F->0x80
// signed-overflow point).
func incA(e *Engine) { a := e.Regs.A(); r := a + 1; e.Regs.SetA(r); e.Regs.setNZ8(r); e.Regs.SetFlag(FlagV, r == 0x00) }
func incB(e *Engine) { a := e.Regs.B(); r := a + 1; e.Regs.SetB(r); e.Regs.setNZ8(r); e.Regs.SetFlag(FlagV, r == 0x00) }
func incMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := a + 1
	e.Bus.Write8(addr, r)
	e.Regs.setNZ8(r)
	e.Regs.SetFlag(FlagV, r == 0x00)
}

// decA/decB/decMem mirror INC's wrap rule: DEC on 0x00 sets V=1 wrapping
// to 0xFF.
func decA(e *Engine) { a := e.Regs.A(); r := a - 1; e.Regs.SetA(r); e.Regs.setNZ8(r); e.Regs.SetFlag(FlagV, a == 0x00) }
func decB(e *Engine) { a := e.Regs.B(); r := a - 1; e.Regs.SetB(r); e.Regs.setNZ8(r); e.Regs.SetFlag(FlagV, a == 0x00) }
func decMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := a - 1
	e.Bus.Write8(addr, r)
	e.Regs.setNZ8(r)
	e.Regs.SetFlag(FlagV, a == 0x00)
}

func tstA(e *Engine) { e.Regs.setNZ8(e.Regs.A()); e.Regs.SetFlag(FlagV, false); e.Regs.SetFlag(FlagC, false) }
func tstB(e *Engine) { e.Regs.setNZ8(e.Regs.B()); e.Regs.SetFlag(FlagV, false); e.Regs.SetFlag(FlagC, false) }
func tstMem(e *Engine) {
	v := e.Bus.Read8(e.ea())
	e.Regs.setNZ8(v)
	e.Regs.SetFlag(FlagV, false)
	e.Regs.SetFlag(FlagC, false)
}

func clrA(e *Engine) { e.Regs.SetA(0); e.Regs.CCR = e.Regs.CCR&^(FlagN|FlagV|FlagC) | FlagZ }
func clrB(e *Engine) { e.Regs.SetB(0); e.Regs.CCR = e.Regs.CCR&^(FlagN|FlagV|FlagC) | FlagZ }
func clrMem(e *Engine) {
	e.Bus.Write8(e.ea(), 0)
	e.Regs.CCR = e.Regs.CCR&^(FlagN|FlagV|FlagC) | FlagZ
}

// daa adjusts A after a BCD addition per the HC11 reference: add 0x06 if
// the low nibble or H indicates an invalid BCD digit or half-carry, add
// 0x60 if the high nibble or C indicates the same for the upper digit.
func daa(e *Engine) {
	a := e.Regs.A()
	lowAdjust := (a&0x0F) > 9 || e.Regs.Flag(FlagH)
	highAdjust := (a>>4) > 9 || e.Regs.Flag(FlagC) || ((a>>4) == 9 && (a&0x0F) > 9)
	var adj uint8
	if lowAdjust {
		adj += 0x06
	}
	if highAdjust {
		adj += 0x60
	}
	r := a + adj
	carry := e.Regs.Flag(FlagC) || highAdjust && uint16(a)+uint16(adj) > 0xFF
	e.Regs.SetA(r)
	e.Regs.setNZ8(r)
	e.Regs.SetFlag(FlagC, carry)
}

// mul multiplies A*B into D=A:B, setting C from bit 7 of B (spec: MUL
// with full flag side-effects - only C is defined on the HC11).
func mul(e *Engine) {
	a, b := e.Regs.A(), e.Regs.B()
	r := uint16(a) * uint16(b)
	e.Regs.D = r
	e.Regs.SetFlag(FlagC, r&0x80 != 0)
}

// idiv computes unsigned D/X -> X (quotient), D<-remainder. Division by
// zero sets C and leaves X as 0xFFFF per the HC11 reference.
func idiv(e *Engine) {
	if e.Regs.X == 0 {
		e.Regs.SetFlag(FlagC, true)
		e.Regs.X = 0xFFFF
		e.Regs.SetFlag(FlagZ, false)
		return
	}
	q := e.Regs.D / e.Regs.X
	r := e.Regs.D % e.Regs.X
	e.Regs.D = r
	e.Regs.X = q
	e.Regs.SetFlag(FlagC, false)
	e.Regs.SetFlag(FlagZ, q == 0)
}

// fdiv computes fractional D/X -> X, D<-remainder, treating D as the
// numerator scaled by 0x10000. Division by zero or an overflowing
// result sets C.
func fdiv(e *Engine) {
	if e.Regs.X == 0 || e.Regs.D >= e.Regs.X {
		e.Regs.SetFlag(FlagC, true)
		e.Regs.X = 0xFFFF
		return
	}
	num := uint32(e.Regs.D) << 16
	q := uint16(num / uint32(e.Regs.X))
	r := uint16(num % uint32(e.Regs.X))
	e.Regs.D = r
	e.Regs.X = q
	e.Regs.SetFlag(FlagC, false)
	e.Regs.SetFlag(FlagZ, q == 0)
}
