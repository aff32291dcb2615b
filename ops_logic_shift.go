// ops_logic_shift.go - AND/OR/EOR/BIT/COM and the shift/rotate family.

package main

func init() {
	define(0x00, 0x84, "ANDA", modeImm8, 2, andA)
	define(0x00, 0x94, "ANDA", modeDirect, 3, andA)
	define(0x00, 0xB4, "ANDA", modeExtended, 4, andA)
	define(0x00, 0xA4, "ANDA", modeIndexed, 4, andA)
	define(0x00, 0xC4, "ANDB", modeImm8, 2, andB)
	define(0x00, 0xD4, "ANDB", modeDirect, 3, andB)

	define(0x00, 0x8A, "ORAA", modeImm8, 2, oraA)
	define(0x00, 0x9A, "ORAA", modeDirect, 3, oraA)
	define(0x00, 0xBA, "ORAA", modeExtended, 4, oraA)
	define(0x00, 0xCA, "ORAB", modeImm8, 2, oraB)
	define(0x00, 0xDA, "ORAB", modeDirect, 3, oraB)

	define(0x00, 0x88, "EORA", modeImm8, 2, eorA)
	define(0x00, 0x98, "EORA", modeDirect, 3, eorA)
	define(0x00, 0xB8, "EORA", modeExtended, 4, eorA)
	define(0x00, 0xC8, "EORB", modeImm8, 2, eorB)
	define(0x00, 0xD8, "EORB", modeDirect, 3, eorB)

	define(0x00, 0x85, "BITA", modeImm8, 2, bitA)
	define(0x00, 0x95, "BITA", modeDirect, 3, bitA)
	define(0x00, 0xB5, "BITA", modeExtended, 4, bitA)
	define(0x00, 0xC5, "BITB", modeImm8, 2, bitB)
	define(0x00, 0xD5, "BITB", modeDirect, 3, bitB)

	define(0x00, 0x43, "COMA", modeInherent, 2, comA)
	define(0x00, 0x53, "COMB", modeInherent, 2, comB)
	define(0x00, 0x63, "COM", modeIndexed, 6, comMem)
	define(0x00, 0x73, "COM", modeExtended, 6, comMem)

	define(0x00, 0x48, "ASLA", modeInherent, 2, aslA)
	define(0x00, 0x58, "ASLB", modeInherent, 2, aslB)
	define(0x00, 0x68, "ASL", modeIndexed, 6, aslMem)
	define(0x00, 0x78, "ASL", modeExtended, 6, aslMem)
	define(0x00, 0x05, "LSLD", modeInherent, 3, aslD)

	define(0x00, 0x44, "LSRA", modeInherent, 2, lsrA)
	define(0x00, 0x54, "LSRB", modeInherent, 2, lsrB)
	define(0x00, 0x64, "LSR", modeIndexed, 6, lsrMem)
	define(0x00, 0x74, "LSR", modeExtended, 6, lsrMem)
	define(0x00, 0x04, "LSRD", modeInherent, 3, lsrD)

	define(0x00, 0x47, "ASRA", modeInherent, 2, asrA)
	define(0x00, 0x57, "ASRB", modeInherent, 2, asrB)
	define(0x00, 0x67, "ASR", modeIndexed, 6, asrMem)
	define(0x00, 0x77, "ASR", modeExtended, 6, asrMem)

	define(0x00, 0x49, "ROLA", modeInherent, 2, rolA)
	define(0x00, 0x59, "ROLB", modeInherent, 2, rolB)
	define(0x00, 0x69, "ROL", modeIndexed, 6, rolMem)
	define(0x00, 0x79, "ROL", modeExtended, 6, rolMem)

	define(0x00, 0x46, "RORA", modeInherent, 2, rorA)
	define(0x00, 0x56, "RORB", modeInherent, 2, rorB)
	define(0x00, 0x66, "ROR", modeIndexed, 6, rorMem)
	define(0x00, 0x76, "ROR", modeExtended, 6, rorMem)
}

func andA(e *Engine) { r := e.Regs.A() & e.readOperand8(); e.Regs.SetA(r); e.Regs.setLogicalFlags8(r) }
func andB(e *Engine) { r := e.Regs.B() & e.readOperand8(); e.Regs.SetB(r); e.Regs.setLogicalFlags8(r) }
func oraA(e *Engine)  { r := e.Regs.A() | e.readOperand8(); e.Regs.SetA(r); e.Regs.setLogicalFlags8(r) }
func oraB(e *Engine)  { r := e.Regs.B() | e.readOperand8(); e.Regs.SetB(r); e.Regs.setLogicalFlags8(r) }
func eorA(e *Engine)  { r := e.Regs.A() ^ e.readOperand8(); e.Regs.SetA(r); e.Regs.setLogicalFlags8(r) }
func eorB(e *Engine)  { r := e.Regs.B() ^ e.readOperand8(); e.Regs.SetB(r); e.Regs.setLogicalFlags8(r) }
func bitA(e *Engine)  { e.Regs.setLogicalFlags8(e.Regs.A() & e.readOperand8()) }
func bitB(e *Engine)  { e.Regs.setLogicalFlags8(e.Regs.B() & e.readOperand8()) }

func comA(e *Engine) { r := ^e.Regs.A(); e.Regs.SetA(r); e.Regs.setLogicalFlags8(r); e.Regs.SetFlag(FlagC, true) }
func comB(e *Engine) { r := ^e.Regs.B(); e.Regs.SetB(r); e.Regs.setLogicalFlags8(r); e.Regs.SetFlag(FlagC, true) }
func comMem(e *Engine) {
	addr := e.ea()
	r := ^e.Bus.Read8(addr)
	e.Bus.Write8(addr, r)
	e.Regs.setLogicalFlags8(r)
	e.Regs.SetFlag(FlagC, true)
}

func aslA(e *Engine) { a := e.Regs.A(); r := a << 1; e.Regs.SetA(r); e.Regs.setShiftFlags8(a, r, a&0x80 != 0) }
func aslB(e *Engine) { a := e.Regs.B(); r := a << 1; e.Regs.SetB(r); e.Regs.setShiftFlags8(a, r, a&0x80 != 0) }
func aslMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := a << 1
	e.Bus.Write8(addr, r)
	e.Regs.setShiftFlags8(a, r, a&0x80 != 0)
}
func aslD(e *Engine) { a := e.Regs.D; r := a << 1; e.Regs.D = r; e.Regs.setNZ16(r); e.Regs.SetFlag(FlagC, a&0x8000 != 0); e.Regs.SetFlag(FlagV, (a^r)&0x8000 != 0) }

func lsrA(e *Engine) { a := e.Regs.A(); r := a >> 1; e.Regs.SetA(r); e.Regs.setShiftFlags8(a, r, a&0x01 != 0) }
func lsrB(e *Engine) { a := e.Regs.B(); r := a >> 1; e.Regs.SetB(r); e.Regs.setShiftFlags8(a, r, a&0x01 != 0) }
func lsrMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := a >> 1
	e.Bus.Write8(addr, r)
	e.Regs.setShiftFlags8(a, r, a&0x01 != 0)
}
func lsrD(e *Engine) {
	a := e.Regs.D
	r := a >> 1
	e.Regs.D = r
	e.Regs.setNZ16(r)
	e.Regs.SetFlag(FlagC, a&0x0001 != 0)
	e.Regs.SetFlag(FlagV, e.Regs.Flag(FlagN) != e.Regs.Flag(FlagC))
}

func asrA(e *Engine) { a := e.Regs.A(); r := (a >> 1) | (a & 0x80); e.Regs.SetA(r); e.Regs.setShiftFlags8(a, r, a&0x01 != 0) }
func asrB(e *Engine) { a := e.Regs.B(); r := (a >> 1) | (a & 0x80); e.Regs.SetB(r); e.Regs.setShiftFlags8(a, r, a&0x01 != 0) }
func asrMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := (a >> 1) | (a & 0x80)
	e.Bus.Write8(addr, r)
	e.Regs.setShiftFlags8(a, r, a&0x01 != 0)
}

func rolA(e *Engine) { a := e.Regs.A(); r := rotl8(a, e.Regs.Flag(FlagC)); e.Regs.SetA(r); e.Regs.setShiftFlags8(a, r, a&0x80 != 0) }
func rolB(e *Engine) { a := e.Regs.B(); r := rotl8(a, e.Regs.Flag(FlagC)); e.Regs.SetB(r); e.Regs.setShiftFlags8(a, r, a&0x80 != 0) }
func rolMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := rotl8(a, e.Regs.Flag(FlagC))
	e.Bus.Write8(addr, r)
	e.Regs.setShiftFlags8(a, r, a&0x80 != 0)
}

func rorA(e *Engine) { a := e.Regs.A(); r := rotr8(a, e.Regs.Flag(FlagC)); e.Regs.SetA(r); e.Regs.setShiftFlags8(a, r, a&0x01 != 0) }
func rorB(e *Engine) { a := e.Regs.B(); r := rotr8(a, e.Regs.Flag(FlagC)); e.Regs.SetB(r); e.Regs.setShiftFlags8(a, r, a&0x01 != 0) }
func rorMem(e *Engine) {
	addr := e.ea()
	a := e.Bus.Read8(addr)
	r := rotr8(a, e.Regs.Flag(FlagC))
	e.Bus.Write8(addr, r)
	e.Regs.setShiftFlags8(a, r, a&0x01 != 0)
}

func rotl8(v uint8, carryIn bool) uint8 {
	r := v << 1
	if carryIn {
		r |= 0x01
	}
	return r
}

func rotr8(v uint8, carryIn bool) uint8 {
	r := v >> 1
	if carryIn {
		r |= 0x80
	}
	return r
}

// setShiftFlags8 sets N, Z, C=carryOut, V=N^C, the common epilogue for
// every HC11 shift/rotate instruction.
func (r *Registers) setShiftFlags8(before, after uint8, carryOut bool) {
	r.setNZ8(after)
	r.SetFlag(FlagC, carryOut)
	r.SetFlag(FlagV, r.Flag(FlagN) != r.Flag(FlagC))
}
