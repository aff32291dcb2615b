// ops_load_store.go - LDA/STA family for A, B, D, X, Y, S across
// IMM/DIR/EXT/IND,X/IND,Y addressing modes.

package main

func init() {
	// LDAA
	define(0x00, 0x86, "LDAA", modeImm8, 2, ldA)
	define(0x00, 0x96, "LDAA", modeDirect, 3, ldA)
	define(0x00, 0xB6, "LDAA", modeExtended, 4, ldA)
	define(0x00, 0xA6, "LDAA", modeIndexed, 4, ldA)
	define(prefixY, 0xA6, "LDAA", modeIndexed, 5, ldA)

	// STAA
	define(0x00, 0x97, "STAA", modeDirect, 3, stA)
	define(0x00, 0xB7, "STAA", modeExtended, 4, stA)
	define(0x00, 0xA7, "STAA", modeIndexed, 4, stA)
	define(prefixY, 0xA7, "STAA", modeIndexed, 5, stA)

	// LDAB
	define(0x00, 0xC6, "LDAB", modeImm8, 2, ldB)
	define(0x00, 0xD6, "LDAB", modeDirect, 3, ldB)
	define(0x00, 0xF6, "LDAB", modeExtended, 4, ldB)
	define(0x00, 0xE6, "LDAB", modeIndexed, 4, ldB)
	define(prefixY, 0xE6, "LDAB", modeIndexed, 5, ldB)

	// STAB
	define(0x00, 0xD7, "STAB", modeDirect, 3, stB)
	define(0x00, 0xF7, "STAB", modeExtended, 4, stB)
	define(0x00, 0xE7, "STAB", modeIndexed, 4, stB)
	define(prefixY, 0xE7, "STAB", modeIndexed, 5, stB)

	// LDD
	define(0x00, 0xCC, "LDD", modeImm16, 3, ldD)
	define(0x00, 0xDC, "LDD", modeDirect, 4, ldD)
	define(0x00, 0xFC, "LDD", modeExtended, 5, ldD)
	define(0x00, 0xEC, "LDD", modeIndexed, 5, ldD)
	define(prefixY, 0xEC, "LDD", modeIndexed, 6, ldD)

	// STD
	define(0x00, 0xDD, "STD", modeDirect, 4, stD)
	define(0x00, 0xFD, "STD", modeExtended, 5, stD)
	define(0x00, 0xED, "STD", modeIndexed, 5, stD)
	define(prefixY, 0xED, "STD", modeIndexed, 6, stD)

	// LDX (prefix 0x18 substitutes Y: spec e2e scenario 4)
	define(0x00, 0xCE, "LDX", modeImm16, 3, ldIndexReg)
	define(0x00, 0xDE, "LDX", modeDirect, 4, ldIndexReg)
	define(0x00, 0xFE, "LDX", modeExtended, 5, ldIndexReg)
	define(0x00, 0xEE, "LDX", modeIndexed, 5, ldIndexReg)
	define(prefixY, 0xCE, "LDY", modeImm16, 4, ldIndexReg)
	define(prefixY, 0xDE, "LDY", modeDirect, 5, ldIndexReg)
	define(prefixY, 0xFE, "LDY", modeExtended, 6, ldIndexReg)
	define(prefixY, 0xEE, "LDY", modeIndexed, 6, ldIndexReg)

	// STX / STY
	define(0x00, 0xDF, "STX", modeDirect, 4, stIndexReg)
	define(0x00, 0xFF, "STX", modeExtended, 5, stIndexReg)
	define(0x00, 0xEF, "STX", modeIndexed, 5, stIndexReg)
	define(prefixY, 0xDF, "STY", modeDirect, 5, stIndexReg)
	define(prefixY, 0xFF, "STY", modeExtended, 6, stIndexReg)
	define(prefixY, 0xEF, "STY", modeIndexed, 6, stIndexReg)

	// Cross-indexed forms (spec 4.C: "1A and CD enable cross-indexed
	// forms (LDX ind,Y / LDY ind,X)"): the index arithmetic uses the
	// *other* register from the one prefix 0/0x18 would pick, while the
	// loaded/stored register stays the one named by the mnemonic.
	define(prefixCrossX, 0xEE, "LDX", modeIndexed, 6, ldXIndY)
	define(prefixCPD, 0xEE, "LDY", modeIndexed, 6, ldYIndX)
	define(prefixCrossX, 0xEF, "STX", modeIndexed, 6, stXIndY)
	define(prefixCPD, 0xEF, "STY", modeIndexed, 6, stYIndX)

	// LDS / STS, TSX/TXS/TSY/TYS, INX/DEX/INY/DEY, INS/DES, ABX/ABY
	define(0x00, 0x8E, "LDS", modeImm16, 3, ldS)
	define(0x00, 0x9E, "LDS", modeDirect, 4, ldS)
	define(0x00, 0xBE, "LDS", modeExtended, 5, ldS)
	define(0x00, 0xAE, "LDS", modeIndexed, 5, ldS)
	define(0x00, 0x9F, "STS", modeDirect, 4, stS)
	define(0x00, 0xBF, "STS", modeExtended, 5, stS)
	define(0x00, 0xAF, "STS", modeIndexed, 5, stS)

	define(0x00, 0x30, "TSX", modeInherent, 3, func(e *Engine) { e.Regs.X = e.Regs.SP + 1 })
	define(0x00, 0x35, "TXS", modeInherent, 3, func(e *Engine) { e.Regs.SP = e.Regs.X - 1 })
	define(prefixY, 0x30, "TSY", modeInherent, 4, func(e *Engine) { e.Regs.Y = e.Regs.SP + 1 })
	define(prefixY, 0x35, "TYS", modeInherent, 4, func(e *Engine) { e.Regs.SP = e.Regs.Y - 1 })

	define(0x00, 0x08, "INX", modeInherent, 3, func(e *Engine) { e.Regs.X++; e.Regs.setFlagZ16(e.Regs.X) })
	define(0x00, 0x09, "DEX", modeInherent, 3, func(e *Engine) { e.Regs.X--; e.Regs.setFlagZ16(e.Regs.X) })
	define(prefixY, 0x08, "INY", modeInherent, 4, func(e *Engine) { e.Regs.Y++; e.Regs.setFlagZ16(e.Regs.Y) })
	define(prefixY, 0x09, "DEY", modeInherent, 4, func(e *Engine) { e.Regs.Y--; e.Regs.setFlagZ16(e.Regs.Y) })

	define(0x00, 0x31, "INS", modeInherent, 3, func(e *Engine) { e.Regs.SP++ })
	define(0x00, 0x34, "DES", modeInherent, 3, func(e *Engine) { e.Regs.SP-- })

	define(0x00, 0x3A, "ABX", modeInherent, 3, func(e *Engine) { e.Regs.X += uint16(e.Regs.B()) })
	define(prefixY, 0x3A, "ABY", modeInherent, 4, func(e *Engine) { e.Regs.Y += uint16(e.Regs.B()) })
}

func ldA(e *Engine) { v := e.readOperand8(); e.Regs.SetA(v); e.Regs.setLogicalFlags8(v) }
func stA(e *Engine) { e.Bus.Write8(e.ea(), e.Regs.A()); e.Regs.setLogicalFlags8(e.Regs.A()) }
func ldB(e *Engine) { v := e.readOperand8(); e.Regs.SetB(v); e.Regs.setLogicalFlags8(v) }
func stB(e *Engine) { e.Bus.Write8(e.ea(), e.Regs.B()); e.Regs.setLogicalFlags8(e.Regs.B()) }

func ldD(e *Engine) { v := e.readOperand16(); e.Regs.D = v; e.Regs.setNZ16(v); e.Regs.SetFlag(FlagV, false) }
func stD(e *Engine) { e.Bus.Write16(e.ea(), e.Regs.D); e.Regs.setNZ16(e.Regs.D); e.Regs.SetFlag(FlagV, false) }

func ldIndexReg(e *Engine) {
	v := e.readOperand16()
	*e.targetIndexReg() = v
	e.Regs.setNZ16(v)
	e.Regs.SetFlag(FlagV, false)
}

func stIndexReg(e *Engine) {
	v := *e.targetIndexReg()
	e.Bus.Write16(e.ea(), v)
	e.Regs.setNZ16(v)
	e.Regs.SetFlag(FlagV, false)
}

// targetIndexReg is the register an LDX/STX/LDY/STY instruction loads
// or stores, which tracks the prefix the same way indexReg does for
// plain (non-cross) forms.
func (e *Engine) targetIndexReg() *uint16 {
	if e.prefix == prefixY {
		return &e.Regs.Y
	}
	return &e.Regs.X
}

func ldXIndY(e *Engine) {
	v := e.Bus.Read16(e.Regs.Y + uint16(e.operand&0xFF))
	e.Regs.X = v
	e.Regs.setNZ16(v)
	e.Regs.SetFlag(FlagV, false)
}

func ldYIndX(e *Engine) {
	v := e.Bus.Read16(e.Regs.X + uint16(e.operand&0xFF))
	e.Regs.Y = v
	e.Regs.setNZ16(v)
	e.Regs.SetFlag(FlagV, false)
}

func stXIndY(e *Engine) {
	e.Bus.Write16(e.Regs.Y+uint16(e.operand&0xFF), e.Regs.X)
	e.Regs.setNZ16(e.Regs.X)
	e.Regs.SetFlag(FlagV, false)
}

func stYIndX(e *Engine) {
	e.Bus.Write16(e.Regs.X+uint16(e.operand&0xFF), e.Regs.Y)
	e.Regs.setNZ16(e.Regs.Y)
	e.Regs.SetFlag(FlagV, false)
}

func ldS(e *Engine) { v := e.readOperand16(); e.Regs.SP = v; e.Regs.setNZ16(v); e.Regs.SetFlag(FlagV, false) }
func stS(e *Engine) { e.Bus.Write16(e.ea(), e.Regs.SP); e.Regs.setNZ16(e.Regs.SP); e.Regs.SetFlag(FlagV, false) }
