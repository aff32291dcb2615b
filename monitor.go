// monitor.go - qRcmd monitor command table, dispatched by unambiguous
// abbreviation via a prefix tree.
//
// Grounded on debug_commands.go's ParseCommand/ParseAddress dispatch shape,
// adapted from the teacher's hand-rolled switch to github.com/beevik/prefixtree/v2
// so commands can be abbreviated the way gdb's own "monitor" passthrough
// expects (e.g. "mon r" resolving to "reset" when unambiguous).

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

type monitorCmd struct {
	name string
	help string
	run  func(m *Monitor, args []string) string
}

// Monitor implements the handful of "monitor" commands qRcmd exposes (spec
// 4.E): engine reset plus the breakpoint/watchpoint table that has no RSP
// verb of its own.
type Monitor struct {
	engine *Engine
	tree   *prefixtree.Tree[*monitorCmd]
}

func NewMonitor(engine *Engine) *Monitor {
	m := &Monitor{engine: engine, tree: prefixtree.New[*monitorCmd]()}
	for _, c := range monitorCommands {
		c := c
		_ = m.tree.Add(c.name, c)
	}
	return m
}

var monitorCommands = []*monitorCmd{
	{name: "help", help: "help - list monitor commands", run: monitorHelp},
	{name: "reset", help: "reset - reset the engine (soft: registers untouched)", run: monitorReset},
	{name: "hardreset", help: "hardreset - reset the engine and register file", run: monitorHardReset},
	{name: "break", help: "break <addr> [<reg>=<val>] - set a (conditional) breakpoint", run: monitorBreak},
	{name: "watch", help: "watch <addr> - set a write watchpoint", run: monitorWatch},
	{name: "info", help: "info - list breakpoints and watchpoints", run: monitorInfo},
}

// Run executes the command named by the first whitespace-separated token
// of line (after unambiguous-prefix resolution against the command table),
// returning the text to hex-encode back to gdb as the qRcmd reply.
func (m *Monitor) Run(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	cmd, err := m.tree.Find(fields[0])
	if err != nil {
		return fmt.Sprintf("monitor: unknown command %q\n", fields[0])
	}
	return cmd.run(m, fields[1:])
}

func monitorHelp(m *Monitor, args []string) string {
	var b strings.Builder
	for _, c := range monitorCommands {
		b.WriteString(c.help)
		b.WriteByte('\n')
	}
	return b.String()
}

func monitorReset(m *Monitor, args []string) string {
	m.engine.Reset(false)
	return "engine reset\n"
}

func monitorHardReset(m *Monitor, args []string) string {
	m.engine.Reset(true)
	return "engine and registers reset\n"
}

func monitorBreak(m *Monitor, args []string) string {
	if len(args) == 0 {
		return "usage: break <addr> [<reg>=<val>]\n"
	}
	addr, err := parseAddrArg(args[0])
	if err != nil {
		return fmt.Sprintf("break: %v\n", err)
	}
	if len(args) < 2 {
		m.engine.Debug.SetBreakpoint(addr)
		return fmt.Sprintf("breakpoint set at %#04x\n", addr)
	}
	reg, val, ok := strings.Cut(args[1], "=")
	if !ok {
		return "usage: break <addr> <reg>=<val>\n"
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(val, "0x"), 16, 16)
	if err != nil {
		return fmt.Sprintf("break: bad value %q\n", val)
	}
	m.engine.Debug.SetConditionalBreakpoint(addr, &BreakpointCondition{Register: strings.ToLower(reg), Equals: uint16(v)})
	return fmt.Sprintf("conditional breakpoint set at %#04x (%s==%#x)\n", addr, reg, v)
}

func monitorWatch(m *Monitor, args []string) string {
	if len(args) == 0 {
		return "usage: watch <addr>\n"
	}
	addr, err := parseAddrArg(args[0])
	if err != nil {
		return fmt.Sprintf("watch: %v\n", err)
	}
	m.engine.Debug.SetWatchpoint(addr)
	return fmt.Sprintf("watchpoint set at %#04x\n", addr)
}

func monitorInfo(m *Monitor, args []string) string {
	var b strings.Builder
	for _, bp := range m.engine.Debug.ListBreakpoints() {
		fmt.Fprintf(&b, "breakpoint %s\n", bp)
	}
	for _, wp := range m.engine.Debug.ListWatchpoints() {
		fmt.Fprintf(&b, "watchpoint %#04x hits=%d last=%#02x\n", wp.Addr, wp.Hits, wp.Last)
	}
	if b.Len() == 0 {
		return "no breakpoints or watchpoints\n"
	}
	return b.String()
}

func parseAddrArg(s string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q", s)
	}
	return uint16(v), nil
}
