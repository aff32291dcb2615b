// ops_branch.go - relative branches, JMP/JSR/RTS/RTI, SWI/WAI/STOP.
//
// Condition codes for branches follow spec 4.C exactly: BCC<->C=0,
// BCS<->C=1, BEQ<->Z=1, BNE<->Z=0, BPL<->N=0, BMI<->N=1, BVC/BVS<->V,
// BGE<->N^V=0, BLT<->N^V=1, BGT<->Z|(N^V)=0, BLE<->Z|(N^V)=1,
// BHI<->C|Z=0, BLS<->C|Z=1.

package main

func init() {
	define(0x00, 0x20, "BRA", modeRelative, 3, func(e *Engine) { branch(e, true) })
	define(0x00, 0x21, "BRN", modeRelative, 3, func(e *Engine) { branch(e, false) })
	define(0x00, 0x22, "BHI", modeRelative, 3, func(e *Engine) { branch(e, !(e.Regs.Flag(FlagC) || e.Regs.Flag(FlagZ))) })
	define(0x00, 0x23, "BLS", modeRelative, 3, func(e *Engine) { branch(e, e.Regs.Flag(FlagC) || e.Regs.Flag(FlagZ)) })
	define(0x00, 0x24, "BCC", modeRelative, 3, func(e *Engine) { branch(e, !e.Regs.Flag(FlagC)) })
	define(0x00, 0x25, "BCS", modeRelative, 3, func(e *Engine) { branch(e, e.Regs.Flag(FlagC)) })
	define(0x00, 0x26, "BNE", modeRelative, 3, func(e *Engine) { branch(e, !e.Regs.Flag(FlagZ)) })
	define(0x00, 0x27, "BEQ", modeRelative, 3, func(e *Engine) { branch(e, e.Regs.Flag(FlagZ)) })
	define(0x00, 0x28, "BVC", modeRelative, 3, func(e *Engine) { branch(e, !e.Regs.Flag(FlagV)) })
	define(0x00, 0x29, "BVS", modeRelative, 3, func(e *Engine) { branch(e, e.Regs.Flag(FlagV)) })
	define(0x00, 0x2A, "BPL", modeRelative, 3, func(e *Engine) { branch(e, !e.Regs.Flag(FlagN)) })
	define(0x00, 0x2B, "BMI", modeRelative, 3, func(e *Engine) { branch(e, e.Regs.Flag(FlagN)) })
	define(0x00, 0x2C, "BGE", modeRelative, 3, func(e *Engine) { branch(e, e.Regs.Flag(FlagN) == e.Regs.Flag(FlagV)) })
	define(0x00, 0x2D, "BLT", modeRelative, 3, func(e *Engine) { branch(e, e.Regs.Flag(FlagN) != e.Regs.Flag(FlagV)) })
	define(0x00, 0x2E, "BGT", modeRelative, 3, func(e *Engine) {
		branch(e, !e.Regs.Flag(FlagZ) && e.Regs.Flag(FlagN) == e.Regs.Flag(FlagV))
	})
	define(0x00, 0x2F, "BLE", modeRelative, 3, func(e *Engine) {
		branch(e, e.Regs.Flag(FlagZ) || e.Regs.Flag(FlagN) != e.Regs.Flag(FlagV))
	})

	define(0x00, 0x8D, "BSR", modeRelative, 6, bsr)

	define(0x00, 0x6E, "JMP", modeIndexed, 3, jmp)
	define(0x00, 0x7E, "JMP", modeExtended, 3, jmp)
	define(0x00, 0x9D, "JSR", modeDirect, 5, jsr)
	define(0x00, 0xAD, "JSR", modeIndexed, 6, jsr)
	define(0x00, 0xBD, "JSR", modeExtended, 6, jsr)
	define(0x00, 0x39, "RTS", modeInherent, 5, rts)

	define(0x00, 0x3F, "SWI", modeInherent, 14, swi)
	define(0x00, 0x3B, "RTI", modeInherent, 12, rti)
	define(0x00, 0x3E, "WAI", modeInherent, 9, wai)
	define(0x00, 0xCF, "STOP", modeInherent, 2, stop)
}

// branch applies the spec's signed-offset rule: PC already points past
// the operand byte when EXECUTE runs, so PC+2+signext(offset) is simply
// PC+signext(offset) at this point.
func branch(e *Engine, take bool) {
	if !take {
		return
	}
	e.Regs.PC += uint16(int16(int8(uint8(e.operand))))
}

func bsr(e *Engine) {
	pushReturnAddr(e, e.Regs.PC)
	branch(e, true)
}

func jmp(e *Engine) { e.Regs.PC = e.ea() }

func jsr(e *Engine) {
	pushReturnAddr(e, e.Regs.PC)
	e.Regs.PC = e.ea()
}

func rts(e *Engine) { e.Regs.PC = popReturnAddr(e) }

// swi pushes the full interrupt frame (PC, Y, X, A, B, CCR - spec
// 4.C "Stack") and redirects through VECTOR_SWI.
func swi(e *Engine) {
	pushInterruptFrame(e)
	e.Regs.SetFlag(FlagI, true)
	e.vector = VectorSWI
	e.busadr = e.Regs.PC
	e.state = stateVectorFetchH
}

// rti pops the interrupt frame in reverse of the SWI/ISR entry push.
func rti(e *Engine) { popInterruptFrame(e) }

// wai is a simple stop: the engine halts awaiting an interrupt. Modelling
// the interrupt wake itself is out of scope (spec Non-goals).
func wai(e *Engine) {
	e.status = StatusStopped
	e.busadr = e.Regs.PC
}

// stop fully halts the clock; spec 5 has the engine thread exit on
// EXECUTED_STOP.
func stop(e *Engine) {
	e.status = StatusExecutedStop
	e.busadr = e.Regs.PC
}
