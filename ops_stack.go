// ops_stack.go - PSH/PUL and subroutine/interrupt stack frames.
//
// The HC11 stack grows down and SP always points at the last pushed
// byte's address minus one (post-decrement push, pre-increment pull),
// per spec 4.C: "PSH/PUL and subroutine/interrupt frames push in fixed
// order (PC-lo, PC-hi, Y-lo, Y-hi, X-lo, X-hi, A, B, CCR for interrupt
// entry); RTI pops in reverse."

package main

func init() {
	define(0x00, 0x36, "PSHA", modeInherent, 3, func(e *Engine) { push8(e, e.Regs.A()) })
	define(0x00, 0x37, "PSHB", modeInherent, 3, func(e *Engine) { push8(e, e.Regs.B()) })
	define(0x00, 0x3C, "PSHX", modeInherent, 4, func(e *Engine) { push16(e, e.Regs.X) })
	define(prefixY, 0x3C, "PSHY", modeInherent, 5, func(e *Engine) { push16(e, e.Regs.Y) })

	define(0x00, 0x32, "PULA", modeInherent, 4, func(e *Engine) { e.Regs.SetA(pull8(e)) })
	define(0x00, 0x33, "PULB", modeInherent, 4, func(e *Engine) { e.Regs.SetB(pull8(e)) })
	define(0x00, 0x38, "PULX", modeInherent, 5, func(e *Engine) { e.Regs.X = pull16(e) })
	define(prefixY, 0x38, "PULY", modeInherent, 6, func(e *Engine) { e.Regs.Y = pull16(e) })
}

func push8(e *Engine, v uint8) {
	e.Bus.Write8(e.Regs.SP, v)
	e.Regs.SP--
}

func pull8(e *Engine) uint8 {
	e.Regs.SP++
	return e.Bus.Read8(e.Regs.SP)
}

func push16(e *Engine, v uint16) {
	push8(e, uint8(v))
	push8(e, uint8(v>>8))
}

func pull16(e *Engine) uint16 {
	hi := pull8(e)
	lo := pull8(e)
	return uint16(hi)<<8 | uint16(lo)
}

func pushReturnAddr(e *Engine, pc uint16) { push16(e, pc) }
func popReturnAddr(e *Engine) uint16      { return pull16(e) }

// pushInterruptFrame pushes the fixed SWI/IRQ entry order: PC, Y, X, A,
// B, CCR (each pushed low-byte-first by push16/push8 above, matching
// "PC-lo, PC-hi, Y-lo, Y-hi, X-lo, X-hi, A, B, CCR").
func pushInterruptFrame(e *Engine) {
	push16(e, e.Regs.PC)
	push16(e, e.Regs.Y)
	push16(e, e.Regs.X)
	push8(e, e.Regs.A())
	push8(e, e.Regs.B())
	push8(e, e.Regs.CCR)
}

// popInterruptFrame pops in exact reverse of pushInterruptFrame.
func popInterruptFrame(e *Engine) {
	e.Regs.CCR = pull8(e)
	e.Regs.SetB(pull8(e))
	e.Regs.SetA(pull8(e))
	e.Regs.X = pull16(e)
	e.Regs.Y = pull16(e)
	e.Regs.PC = pull16(e)
}
