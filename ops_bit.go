// ops_bit.go - BSET/BCLR/BRSET/BRCLR bit-manipulation instructions.
//
// These read an extra immediate mask byte beyond the direct address byte;
// BRSET/BRCLR read a further relative branch offset. Both extra bytes
// are modelled as part of the addressing-mode operand fetch via a
// dedicated mode so the generic pipeline needs no special case.

package main

func init() {
	define(0x00, 0x1C, "BSET", modeBitDirect, 6, bset)
	define(0x00, 0x1D, "BCLR", modeBitDirect, 6, bclr)
	define(0x00, 0x12, "BRSET", modeBitBranchDirect, 6, brset)
	define(0x00, 0x13, "BRCLR", modeBitBranchDirect, 6, brclr)
}

// bitAddrAddr, bitAddrMask and bitAddrOffset split the fetched operand for
// the bit-manipulation addressing modes: the first byte fetched (the
// highest byte of operand) is the direct address, the next is the mask,
// and for BRSET/BRCLR the last (lowest) byte is the branch offset.
func bitAddrAddr(e *Engine) uint16 { return uint16(e.operand >> bitOperandShift(e)) & 0x00FF }

func bitOperandShift(e *Engine) uint {
	switch e.curInstr.mode {
	case modeBitDirect:
		return 8
	case modeBitBranchDirect:
		return 16
	}
	return 0
}

func bitAddrMask(e *Engine) uint8 {
	switch e.curInstr.mode {
	case modeBitDirect:
		return uint8(e.operand)
	case modeBitBranchDirect:
		return uint8(e.operand >> 8)
	}
	return 0
}

func bitAddrOffset(e *Engine) int8 { return int8(uint8(e.operand)) }

func bset(e *Engine) {
	addr, mask := bitAddrAddr(e), bitAddrMask(e)
	v := e.Bus.Read8(addr) | mask
	e.Bus.Write8(addr, v)
	e.Regs.setNZ8(v)
	e.Regs.SetFlag(FlagV, false)
}

func bclr(e *Engine) {
	addr, mask := bitAddrAddr(e), bitAddrMask(e)
	v := e.Bus.Read8(addr) &^ mask
	e.Bus.Write8(addr, v)
	e.Regs.setNZ8(v)
	e.Regs.SetFlag(FlagV, false)
}

// brset branches when every masked bit is set: (M & mask) == mask.
func brset(e *Engine) {
	addr, mask := bitAddrAddr(e), bitAddrMask(e)
	v := e.Bus.Read8(addr)
	e.Regs.setNZ8(v & mask)
	if v&mask == mask {
		e.Regs.PC += uint16(int16(bitAddrOffset(e)))
	}
}

// brclr branches when every masked bit is clear: (M & mask) == 0.
func brclr(e *Engine) {
	addr, mask := bitAddrAddr(e), bitAddrMask(e)
	v := e.Bus.Read8(addr)
	e.Regs.setNZ8(v & mask)
	if v&mask == 0 {
		e.Regs.PC += uint16(int16(bitAddrOffset(e)))
	}
}
