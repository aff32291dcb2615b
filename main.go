// main.go - hc11gdb CLI entry point: wires Bus + Registers + Engine +
// GDB server together and runs the engine thread (spec 5, spec 6).
//
// Flag parsing uses github.com/alecthomas/kong rather than the teacher's
// bespoke os.Args scan in its own main.go - that scan only ever had to
// recognize two fixed positional arguments; this tool's flag surface is
// far richer. Thread coordination uses golang.org/x/sync/errgroup,
// promoting the teacher's indirect dependency to direct use (see
// DESIGN.md), to start and jointly shut down the engine thread and the
// GDB listener thread.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"
)

const versionString = "hc11gdb 0.1.0"

// CLI is the flag surface from spec 6.
type CLI struct {
	ROM     []string         `short:"b" placeholder:"addr,file" help:"Map file as ROM at addr (repeatable)."`
	SRecord string           `short:"s" placeholder:"file" help:"Load S-record file."`
	RAM     bool             `short:"w" help:"Map 8 KiB RAM at 0xE000..0xFFFF."`
	Preset  string           `short:"p" placeholder:"reg=val,..." help:"Preset registers (d,a,b,x,y,p=pc,s=sp,c=ccr)."`
	Patch   []string         `short:"m" placeholder:"addr,hex" help:"Write hex-encoded bytes to memory (repeatable)."`
	Run     bool             `short:"r" help:"Begin execution immediately, skipping vector fetch."`
	Expect  string           `short:"e" placeholder:"reg=val,..." help:"After execution ends, warn on register mismatches."`
	NoGDB   bool             `short:"g" help:"Disable the GDB server."`
	Verbose bool             `short:"d" help:"Verbose logging."`
	Port    int              `default:"3333" help:"GDB server TCP port."`
	Version kong.VersionFlag `short:"v" help:"Print version and exit."`
}

func main() {
	var cli CLI
	parser := kong.Parse(&cli, kong.Vars{"version": versionString}, kong.UsageOnError())

	if err := runCLI(&cli); err != nil {
		parser.FatalIfErrorf(err)
		os.Exit(1)
	}
}

func runCLI(cli *CLI) error {
	log := newLogger(cli.Verbose)

	regs := NewRegisters()
	bus := NewBus(log)
	engine := NewEngine(regs, bus, log)

	if cli.RAM {
		if err := bus.MapRAM("external-ram", 0xE000, 0x2000); err != nil {
			return err
		}
	}

	for _, spec := range cli.ROM {
		if err := loadROMArg(bus, spec); err != nil {
			return err
		}
	}

	if cli.SRecord != "" {
		f, err := os.Open(cli.SRecord)
		if err != nil {
			return err
		}
		err = LoadSRecord(bus, f)
		f.Close()
		if err != nil {
			return err
		}
	}

	if cli.Preset != "" {
		if err := forEachAssignment(cli.Preset, func(key string, val uint64) error {
			applyRegField(regs, key, val)
			return nil
		}); err != nil {
			return err
		}
	}

	for _, patch := range cli.Patch {
		addr, data, err := ParseHexPatch(patch)
		if err != nil {
			return err
		}
		if err := LoadImage(bus, addr, data); err != nil {
			return err
		}
	}

	if cli.Run {
		engine.beginExecution()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		engineThread(gctx, engine, log)
		return nil
	})

	if !cli.NoGDB {
		server := NewGDBServer(fmt.Sprintf("127.0.0.1:%d", cli.Port), engine, log)
		g.Go(func() error {
			return server.ListenAndServe(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if cli.Expect != "" {
		warnRegMismatches(regs, cli.Expect, log)
	}
	return nil
}

func loadROMArg(bus *Bus, spec string) error {
	addrStr, path, ok := strings.Cut(spec, ",")
	if !ok {
		return fmt.Errorf("bad -b argument %q, want addr,file", spec)
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(addrStr, "0x"), 16, 16)
	if err != nil {
		return fmt.Errorf("bad -b address %q: %w", addrStr, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	data, err := LoadBinary(f)
	f.Close()
	if err != nil {
		return err
	}
	return bus.MapROM(path, uint16(addr), data)
}

// engineThread is the "Main/engine thread" of spec 5: it polls status,
// clocking the engine one instruction at a time while RUNNING/STEPPING
// under the engine's mutex, and sleeps ~10ms when STOPPED. It also
// computes throughput in MHz roughly once a second.
func engineThread(ctx context.Context, engine *Engine, log *logger) {
	lastReport := time.Now()
	lastClocks := uint64(0)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		engine.Mu.Lock()
		status := engine.Status()
		switch status {
		case StatusRunning:
			engine.RunUntilStop()
		case StatusStepping:
			engine.Step()
		case StatusExecutedStop:
			engine.Mu.Unlock()
			return
		}
		engine.Mu.Unlock()

		if status != StatusRunning && status != StatusStepping {
			time.Sleep(10 * time.Millisecond)
		}

		if elapsed := time.Since(lastReport); elapsed >= time.Second {
			engine.Mu.Lock()
			clocks := engine.Clocks()
			engine.Mu.Unlock()
			mhz := float64(clocks-lastClocks) / elapsed.Seconds() / 1e6
			log.debugf("engine: %.3f MHz (%d cycles total)", mhz, clocks)
			lastClocks = clocks
			lastReport = time.Now()
		}
	}
}

func applyRegField(regs *Registers, key string, val uint64) {
	switch key {
	case "d":
		regs.D = uint16(val)
	case "a":
		regs.SetA(uint8(val))
	case "b":
		regs.SetB(uint8(val))
	case "x":
		regs.X = uint16(val)
	case "y":
		regs.Y = uint16(val)
	case "p":
		regs.PC = uint16(val)
	case "s":
		regs.SP = uint16(val)
	case "c":
		regs.CCR = uint8(val)
	}
}

// warnRegMismatches implements "-e reg=val,...": after the run ends,
// compare each named register against its expected value and log a
// warning per mismatch (spec 6).
func warnRegMismatches(regs *Registers, spec string, log *logger) {
	forEachAssignment(spec, func(key string, want uint64) error {
		got := readRegField(regs, key)
		if got != want {
			log.infof("register mismatch: %s = %#x, expected %#x", key, got, want)
		}
		return nil
	})
}

func readRegField(regs *Registers, key string) uint64 {
	switch key {
	case "d":
		return uint64(regs.D)
	case "a":
		return uint64(regs.A())
	case "b":
		return uint64(regs.B())
	case "x":
		return uint64(regs.X)
	case "y":
		return uint64(regs.Y)
	case "p":
		return uint64(regs.PC)
	case "s":
		return uint64(regs.SP)
	case "c":
		return uint64(regs.CCR)
	default:
		return 0
	}
}

func forEachAssignment(spec string, fn func(key string, val uint64) error) error {
	for _, pair := range strings.Split(spec, ",") {
		if pair == "" {
			continue
		}
		key, valStr, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("bad register assignment %q, want reg=val", pair)
		}
		val, err := strconv.ParseUint(strings.TrimPrefix(valStr, "0x"), 16, 16)
		if err != nil {
			return fmt.Errorf("bad register value %q: %w", valStr, err)
		}
		if err := fn(strings.ToLower(key), val); err != nil {
			return err
		}
	}
	return nil
}
