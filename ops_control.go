// ops_control.go - direct CCR manipulation and miscellaneous inherent
// instructions.

package main

func init() {
	define(0x00, 0x01, "NOP", modeInherent, 2, func(e *Engine) {})
	define(0x00, 0x0C, "CLC", modeInherent, 2, func(e *Engine) { e.Regs.SetFlag(FlagC, false) })
	define(0x00, 0x0D, "SEC", modeInherent, 2, func(e *Engine) { e.Regs.SetFlag(FlagC, true) })
	define(0x00, 0x0E, "CLI", modeInherent, 2, func(e *Engine) { e.Regs.SetFlag(FlagI, false) })
	define(0x00, 0x0F, "SEI", modeInherent, 2, func(e *Engine) { e.Regs.SetFlag(FlagI, true) })
	define(0x00, 0x0A, "CLV", modeInherent, 2, func(e *Engine) { e.Regs.SetFlag(FlagV, false) })
	define(0x00, 0x0B, "SEV", modeInherent, 2, func(e *Engine) { e.Regs.SetFlag(FlagV, true) })
	define(0x00, 0x06, "TAP", modeInherent, 2, func(e *Engine) { e.Regs.CCR = e.Regs.A() })
	define(0x00, 0x07, "TPA", modeInherent, 2, func(e *Engine) { e.Regs.SetA(e.Regs.CCR) })
	define(0x00, 0x16, "TAB", modeInherent, 2, func(e *Engine) { v := e.Regs.A(); e.Regs.SetB(v); e.Regs.setLogicalFlags8(v) })
	define(0x00, 0x17, "TBA", modeInherent, 2, func(e *Engine) { v := e.Regs.B(); e.Regs.SetA(v); e.Regs.setLogicalFlags8(v) })
	define(0x00, 0x10, "SBA", modeInherent, 2, func(e *Engine) {
		a, b := e.Regs.A(), e.Regs.B()
		r := a - b
		e.Regs.SetA(r)
		e.Regs.setSubFlags8(a, b, r)
	})
	define(0x00, 0x11, "CBA", modeInherent, 2, func(e *Engine) {
		a, b := e.Regs.A(), e.Regs.B()
		e.Regs.setSubFlags8(a, b, a-b)
	})
}
