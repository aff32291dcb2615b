// debug.go - breakpoint/watchpoint table (spec 4.D). Stop-reason
// classification and reset live on Engine in engine.go.
//
// Grounded on debug_interface.go's BreakpointCondition/ConditionalBreakpoint/
// Watchpoint shapes, carried over almost unchanged and repurposed to key on
// 16-bit HC11 addresses instead of the teacher's 64-bit core addresses.

package main

import "fmt"

// BreakpointCondition gates a breakpoint on a register holding a specific
// value when the break address is hit, mirroring debug_interface.go's
// expression-free conditional form.
type BreakpointCondition struct {
	Register string // "a", "b", "x", "y", "d", "sp", "ccr"
	Equals   uint16
}

func (c *BreakpointCondition) satisfied(r *Registers) bool {
	if c == nil {
		return true
	}
	switch c.Register {
	case "a":
		return uint16(r.A()) == c.Equals
	case "b":
		return uint16(r.B()) == c.Equals
	case "ccr":
		return uint16(r.CCR) == c.Equals
	case "d":
		return r.D == c.Equals
	case "x":
		return r.X == c.Equals
	case "y":
		return r.Y == c.Equals
	case "sp":
		return r.SP == c.Equals
	default:
		return true
	}
}

// ConditionalBreakpoint associates a breakpoint address with an optional
// condition; nil Condition means unconditional (spec's plain set_breakpoint).
type ConditionalBreakpoint struct {
	Addr      uint16
	Condition *BreakpointCondition
	Hits      uint64
}

// WatchpointType distinguishes the kinds of watchpoint the bus can report;
// only writes are observable through Bus.SetWatchHook today.
type WatchpointType int

const (
	WatchWrite WatchpointType = iota
)

// Watchpoint is a write watchpoint on a memory address (spec's debug
// surface extended with the teacher's watchpoint concept - RSP itself
// only asks for software breakpoints, but qRcmd exposes these via the
// monitor command table).
type Watchpoint struct {
	Type WatchpointType
	Addr uint16
	Hits uint64
	Last uint8
}

// DebugSurface is the engine's breakpoint/watchpoint table (spec 4.D).
type DebugSurface struct {
	breakpoints map[uint16]*ConditionalBreakpoint
	watchpoints map[uint16]*Watchpoint
}

func newDebugSurface() *DebugSurface {
	return &DebugSurface{
		breakpoints: make(map[uint16]*ConditionalBreakpoint),
		watchpoints: make(map[uint16]*Watchpoint),
	}
}

// SetBreakpoint installs an unconditional software breakpoint, as used by
// the RSP Z0/z0 packets (spec 4.E).
func (d *DebugSurface) SetBreakpoint(addr uint16) {
	d.breakpoints[addr] = &ConditionalBreakpoint{Addr: addr}
}

// SetConditionalBreakpoint installs a breakpoint that only halts RunUntilStop
// when cond is satisfied; used by the monitor "break" command (monitor.go).
func (d *DebugSurface) SetConditionalBreakpoint(addr uint16, cond *BreakpointCondition) {
	d.breakpoints[addr] = &ConditionalBreakpoint{Addr: addr, Condition: cond}
}

func (d *DebugSurface) ClearBreakpoint(addr uint16) { delete(d.breakpoints, addr) }

func (d *DebugSurface) ClearAllBreakpoints() {
	d.breakpoints = make(map[uint16]*ConditionalBreakpoint)
}

// HasBreakpoint reports whether addr should halt execution right now: it
// must be registered and, if conditional, its condition must hold against
// the current register file.
func (d *DebugSurface) HasBreakpoint(addr uint16, regs *Registers) bool {
	bp, ok := d.breakpoints[addr]
	if !ok {
		return false
	}
	if !bp.Condition.satisfied(regs) {
		return false
	}
	bp.Hits++
	return true
}

func (d *DebugSurface) ListBreakpoints() []*ConditionalBreakpoint {
	out := make([]*ConditionalBreakpoint, 0, len(d.breakpoints))
	for _, bp := range d.breakpoints {
		out = append(out, bp)
	}
	return out
}

// SetWatchpoint/ClearWatchpoint manage write watchpoints, surfaced only via
// the monitor command table (the RSP dispatch in spec 4.E has no watchpoint
// verb).
func (d *DebugSurface) SetWatchpoint(addr uint16) {
	d.watchpoints[addr] = &Watchpoint{Type: WatchWrite, Addr: addr}
}

func (d *DebugSurface) ClearWatchpoint(addr uint16) { delete(d.watchpoints, addr) }

func (d *DebugSurface) ClearAllWatchpoints() {
	d.watchpoints = make(map[uint16]*Watchpoint)
}

func (d *DebugSurface) ListWatchpoints() []*Watchpoint {
	out := make([]*Watchpoint, 0, len(d.watchpoints))
	for _, wp := range d.watchpoints {
		out = append(out, wp)
	}
	return out
}

// checkWatch is the Bus watch hook: it records a hit against any installed
// watchpoint at addr. It does not itself stop the engine - spec's run()
// loop only halts at breakpointed opcode fetches, so a watchpoint hit is
// observable through "monitor watch" output rather than a forced stop.
func (d *DebugSurface) checkWatch(addr uint16, v uint8) {
	wp, ok := d.watchpoints[addr]
	if !ok {
		return
	}
	wp.Hits++
	wp.Last = v
}

func (bp *ConditionalBreakpoint) String() string {
	if bp.Condition == nil {
		return fmt.Sprintf("%#04x (hits=%d)", bp.Addr, bp.Hits)
	}
	return fmt.Sprintf("%#04x if %s==%#x (hits=%d)", bp.Addr, bp.Condition.Register, bp.Condition.Equals, bp.Hits)
}
