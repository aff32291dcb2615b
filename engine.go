// engine.go - the clock-stepped fetch/decode/execute state machine.
//
// Grounded on the DebuggableCPU lifecycle (IsRunning/Freeze/Resume/Step)
// in debug_interface.go and the goroutine-driven Execute()/
// ExecuteInstruction() loops in the teacher's main.go and
// cpu_6502_runner.go, generalized to the HC11's vector-fetch and
// prefix-byte decode pipeline (spec 4.C).

package main

import "sync"

// Status is the engine's run/stop state (spec 3).
type Status int

const (
	StatusStopped Status = iota
	StatusRunning
	StatusStepping
	StatusExecutedStop
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "STOPPED"
	case StatusRunning:
		return "RUNNING"
	case StatusStepping:
		return "STEPPING"
	case StatusExecutedStop:
		return "EXECUTED_STOP"
	default:
		return "UNKNOWN"
	}
}

// state is the sub-instruction pipeline phase (spec 3/4.C).
type state int

const (
	stateVectorFetchH state = iota
	stateVectorFetchL
	stateFetchOpcode
	stateFetchOperand
	stateExecute
)

// StopReason classifies why the engine transitioned to STOPPED (spec 4.D).
type StopReason int

const (
	StopNormal StopReason = iota
	StopFail
)

// prefix bytes that switch addressing mode (spec 3).
const (
	prefixY    uint8 = 0x18
	prefixCPD  uint8 = 0x1A
	prefixCrossX uint8 = 0xCD
)

func isPrefixByte(b uint8) bool {
	return b == prefixY || b == prefixCPD || b == prefixCrossX
}

// Engine is the HC11 fetch/decode/execute pipeline. A single Engine is
// constructed once in main and shared with the GDB server under Mu.
type Engine struct {
	Mu sync.Mutex

	Regs *Registers
	Bus  *Bus

	status Status
	state  state

	vector  uint16
	prefix  uint8
	opcode  uint8
	operand uint32 // wide enough for BRSET/BRCLR's 3-byte addr+mask+offset operand
	busadr  uint16
	clocks  uint64

	operandBytesNeeded int
	operandBytesRead   int
	curInstr           *instruction

	Debug *DebugSurface

	log *logger
}

// NewEngine returns an Engine wired to the given bus and register file,
// positioned to begin a reset vector fetch.
func NewEngine(regs *Registers, bus *Bus, log *logger) *Engine {
	e := &Engine{
		Regs:   regs,
		Bus:    bus,
		vector: VectorReset,
		state:  stateVectorFetchH,
		Debug:  newDebugSurface(),
		log:    log,
	}
	bus.SetWatchHook(e.Debug.checkWatch)
	return e
}

// Status/State accessors used by the GDB server and CLI.
func (e *Engine) Status() Status   { return e.status }
func (e *Engine) SetStatus(s Status) { e.status = s }
func (e *Engine) Clocks() uint64   { return e.clocks }
func (e *Engine) BusAddr() uint16  { return e.busadr }
func (e *Engine) Prefix() uint8    { return e.prefix }

// StopReason classifies the current STOPPED state per spec 4.D:
// busadr carries VectorIllegal to signal a fault, or the completed PC
// for a normal stop.
func (e *Engine) StopReason() StopReason {
	if e.busadr == VectorIllegal {
		return StopFail
	}
	return StopNormal
}

// SetBreakpoint / ClearBreakpoint / HasBreakpoint forward to the debug
// surface (spec 4.D); kept on Engine since the RSP dispatch table and the
// run loop only ever need the unconditional form.
func (e *Engine) SetBreakpoint(addr uint16)   { e.Debug.SetBreakpoint(addr) }
func (e *Engine) ClearBreakpoint(addr uint16) { e.Debug.ClearBreakpoint(addr) }
func (e *Engine) HasBreakpoint(addr uint16) bool {
	return e.Debug.HasBreakpoint(addr, e.Regs)
}

// Reset restores the engine's own state per spec 4.D and positions it to
// begin a fresh reset vector fetch. The register file is untouched unless
// hard is true, in which case it is also reset to its post-reset defaults.
func (e *Engine) Reset(hard bool) {
	e.Bus.Reset()
	e.vector = VectorReset
	e.state = stateVectorFetchH
	e.prefix = 0
	e.clocks = 0
	e.status = StatusStopped
	e.busadr = 0
	if hard {
		*e.Regs = *NewRegisters()
	}
}

// beginExecution skips the vector fetch and starts directly at
// FETCHOPCODE, used by the CLI's -r flag (spec 6).
func (e *Engine) beginExecution() {
	e.state = stateFetchOpcode
	e.prefix = 0
}

// clockOnce advances one sub-cycle of the fetch/decode/execute pipeline
// (spec 4.C). It is the single primitive both Step and Run are built on.
func (e *Engine) clockOnce() {
	switch e.state {
	case stateVectorFetchH:
		e.Regs.PC = uint16(e.Bus.Read8(e.vector)) << 8
		e.clocks++
		e.state = stateVectorFetchL

	case stateVectorFetchL:
		e.Regs.PC |= uint16(e.Bus.Read8(e.vector + 1))
		e.clocks++
		e.state = stateFetchOpcode

	case stateFetchOpcode:
		b := e.Bus.Read8(e.Regs.PC)
		e.busadr = e.Regs.PC
		e.Regs.PC++
		e.clocks++

		if isPrefixByte(b) {
			if e.prefix == 0 {
				e.prefix = b
				return
			}
			e.illegalOpcode()
			return
		}

		e.opcode = b
		instr, ok := decodeTable[decodeKey{e.prefix, b}]
		if !ok {
			e.illegalOpcode()
			return
		}
		e.curInstr = instr
		e.operand = 0
		e.operandBytesRead = 0
		e.operandBytesNeeded = operandBytes(instr.mode)
		if e.operandBytesNeeded == 0 {
			e.state = stateExecute
		} else {
			e.state = stateFetchOperand
		}

	case stateFetchOperand:
		b := e.Bus.Read8(e.Regs.PC)
		e.Regs.PC++
		e.clocks++
		e.operand = e.operand<<8 | uint32(b)
		e.operandBytesRead++
		if e.operandBytesRead >= e.operandBytesNeeded {
			e.state = stateExecute
		}

	case stateExecute:
		instr := e.curInstr
		instr.handler(e)
		e.clocks += uint64(instr.cycles)
		e.prefix = 0
		if e.state == stateExecute {
			// handler did not redirect to a vector fetch (as SWI does);
			// retire normally.
			e.state = stateFetchOpcode
		}
	}
}

// illegalOpcode redirects through VECTOR_ILLEGAL per spec 4.C/4.D.
func (e *Engine) illegalOpcode() {
	e.vector = VectorIllegal
	e.busadr = VectorIllegal
	e.prefix = 0
	e.state = stateVectorFetchH
	e.status = StatusStopped
}

// AtFetchBoundary reports whether the pipeline is positioned at an
// opcode fetch with no pending prefix - the only point at which a
// breakpoint can intercept execution (spec 4.C run() loop).
func (e *Engine) AtFetchBoundary() bool {
	return e.state == stateFetchOpcode && e.prefix == 0
}

// Step runs clockOnce until one instruction has retired, an illegal
// opcode is hit, or a STOP/WAI instruction halts the engine (spec 4.C).
// It does not itself consult the breakpoint table; callers driving a
// continuous run loop check AtFetchBoundary/HasBreakpoint first (spec
// 4.C's "before each opcode fetch" rule), which is what lets an
// explicit GDB single-step cross a breakpoint at the current PC.
func (e *Engine) Step() StopReason {
	e.status = StatusStepping
	for {
		prev := e.state
		e.clockOnce()
		if prev == stateExecute {
			break
		}
		if e.status == StatusStopped || e.status == StatusExecutedStop {
			break
		}
	}
	if e.status != StatusExecutedStop {
		e.status = StatusStopped
	}
	return e.StopReason()
}

// RunUntilStop drives the engine while status == RUNNING, one
// instruction at a time, stopping before the opcode fetch of any
// breakpointed address (spec 4.C). It is the unit of work the engine
// thread's poll loop (spec 5) calls on every tick while RUNNING.
func (e *Engine) RunUntilStop() {
	e.status = StatusRunning
	for e.status == StatusRunning {
		if e.AtFetchBoundary() && e.HasBreakpoint(e.Regs.PC) {
			e.status = StatusStopped
			e.busadr = e.Regs.PC
			return
		}
		prev := e.state
		e.clockOnce()
		if prev == stateExecute {
			return
		}
	}
}
