// bus.go - HC11 memory-mapped bus: layered address decode over the
// on-chip I/O window, the on-chip RAM window, and user-installed
// external RAM/ROM regions.
//
// Grounded on the teacher's SystemBus/MachineBus dispatch shape
// (memory_bus_test.go, machine_bus.go) generalized from a flat 32-bit
// byte slice to the HC11's relocatable, priority-ordered windows.

package main

import "sort"

const (
	ramWindowSize = 256
	ioWindowSize  = 64

	defaultRAMBase = 0x0000
	defaultIOBase  = 0x1000
)

// ioHandler is one entry in the 64-byte on-chip I/O window.
type ioHandler struct {
	installed bool
	reader    func(ctx any, offset uint16) uint8
	writer    func(ctx any, offset uint16, v uint8)
	ctx       any
}

// region is an external, user-installed memory-mapped range.
type region struct {
	name    string
	start   uint16
	length  uint16
	rom     bool
	bytes   []byte
	ctx     any
	reader  func(ctx any, addr uint16) uint8
	writer  func(ctx any, addr uint16, v uint8)
}

func (rg *region) contains(addr uint16) bool {
	return addr >= rg.start && uint32(addr) < uint32(rg.start)+uint32(rg.length)
}

// Bus implements the HC11 layered address decoder described in spec 4.A.
type Bus struct {
	rambase uint16
	iobase  uint16
	ram     [ramWindowSize]uint8
	io      [ioWindowSize]ioHandler
	maps    []*region

	openBusReads  uint64
	openBusWrites uint64

	watchHook func(addr uint16, v uint8)

	log *logger
}

// SetWatchHook installs a callback invoked after every successful write to
// RAM, an external region, or an I/O handler - the hook the debug surface's
// write watchpoints are built on.
func (b *Bus) SetWatchHook(hook func(addr uint16, v uint8)) { b.watchHook = hook }

// NewBus returns a Bus with the reset-default RAM/IO window placement.
func NewBus(log *logger) *Bus {
	return &Bus{
		rambase: defaultRAMBase,
		iobase:  defaultIOBase,
		log:     log,
	}
}

// Reset restores the on-chip window bases to their power-on locations.
// External maps and their contents are left untouched.
func (b *Bus) Reset() {
	b.rambase = defaultRAMBase
	b.iobase = defaultIOBase
}

// Read8 performs a single-byte read following the decode priority in
// spec 4.A: I/O window, then RAM window, then external regions, then
// open bus (0xFF).
func (b *Bus) Read8(addr uint16) uint8 {
	if off, ok := b.ioOffset(addr); ok && b.io[off].installed {
		h := &b.io[off]
		if h.reader != nil {
			return h.reader(h.ctx, off)
		}
		return 0
	}
	if b.inRAMWindow(addr) {
		return b.ram[addr-b.rambase]
	}
	if rg := b.findRegion(addr); rg != nil {
		if rg.reader != nil {
			return rg.reader(rg.ctx, addr-rg.start)
		}
		if rg.bytes != nil {
			return rg.bytes[addr-rg.start]
		}
	}
	b.openBusReads++
	if b.log != nil {
		b.log.debugf("bus: open read at %#04x", addr)
	}
	return 0xFF
}

// Write8 performs a single-byte write with the same decode priority as
// Read8. Writes to ROM regions and to open bus are dropped.
func (b *Bus) Write8(addr uint16, v uint8) {
	if off, ok := b.ioOffset(addr); ok && b.io[off].installed {
		h := &b.io[off]
		if h.writer != nil {
			h.writer(h.ctx, off, v)
		}
		b.fireWatch(addr, v)
		return
	}
	if b.inRAMWindow(addr) {
		b.ram[addr-b.rambase] = v
		b.fireWatch(addr, v)
		return
	}
	if rg := b.findRegion(addr); rg != nil {
		if rg.rom {
			if b.log != nil {
				b.log.debugf("bus: write to ROM %q at %#04x ignored", rg.name, addr)
			}
			return
		}
		if rg.writer != nil {
			rg.writer(rg.ctx, addr-rg.start, v)
			b.fireWatch(addr, v)
			return
		}
		if rg.bytes != nil {
			rg.bytes[addr-rg.start] = v
		}
		b.fireWatch(addr, v)
		return
	}
	b.openBusWrites++
	if b.log != nil {
		b.log.debugf("bus: open write at %#04x dropped", addr)
	}
}

func (b *Bus) fireWatch(addr uint16, v uint8) {
	if b.watchHook != nil {
		b.watchHook(addr, v)
	}
}

// Read16 / Write16 decompose into two byte accesses, big-endian (high
// byte at the lower address), matching HC11 convention.
func (b *Bus) Read16(addr uint16) uint16 {
	hi := b.Read8(addr)
	lo := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (b *Bus) Write16(addr uint16, v uint16) {
	b.Write8(addr, uint8(v>>8))
	b.Write8(addr+1, uint8(v))
}

func (b *Bus) inRAMWindow(addr uint16) bool {
	return addr >= b.rambase && uint32(addr) < uint32(b.rambase)+ramWindowSize
}

func (b *Bus) ioOffset(addr uint16) (uint16, bool) {
	if addr >= b.iobase && uint32(addr) < uint32(b.iobase)+ioWindowSize {
		return addr - b.iobase, true
	}
	return 0, false
}

func (b *Bus) findRegion(addr uint16) *region {
	for _, rg := range b.maps {
		if rg.contains(addr) {
			return rg
		}
	}
	return nil
}

// MapRAM allocates and installs a writable external region of zeros.
func (b *Bus) MapRAM(name string, start uint16, length uint16) error {
	return b.insertRegion(&region{name: name, start: start, length: length, bytes: make([]byte, length)})
}

// MapROM installs a read-only region backed by the given image bytes.
func (b *Bus) MapROM(name string, start uint16, bytes []byte) error {
	return b.insertRegion(&region{name: name, start: start, length: uint16(len(bytes)), rom: true, bytes: bytes})
}

// InstallIOHandler binds per-byte callbacks inside the on-chip I/O
// window at offset..offset+count.
func (b *Bus) InstallIOHandler(offset uint16, count uint16, ctx any, reader func(ctx any, offset uint16) uint8, writer func(ctx any, offset uint16, v uint8)) {
	for i := uint16(0); i < count; i++ {
		o := offset + i
		if int(o) >= len(b.io) {
			break
		}
		b.io[o] = ioHandler{installed: true, reader: reader, writer: writer, ctx: ctx}
	}
}

// insertRegion keeps b.maps sorted by ascending start and rejects
// overlapping external regions.
func (b *Bus) insertRegion(rg *region) error {
	end := uint32(rg.start) + uint32(rg.length)
	for _, other := range b.maps {
		otherEnd := uint32(other.start) + uint32(other.length)
		if uint32(rg.start) < otherEnd && end > uint32(other.start) {
			return &busMapError{rg.name, other.name}
		}
	}
	idx := sort.Search(len(b.maps), func(i int) bool { return b.maps[i].start >= rg.start })
	b.maps = append(b.maps, nil)
	copy(b.maps[idx+1:], b.maps[idx:])
	b.maps[idx] = rg
	return nil
}

type busMapError struct {
	name, conflictsWith string
}

func (e *busMapError) Error() string {
	return "bus: region " + e.name + " overlaps existing region " + e.conflictsWith
}

// SetRAMBase relocates the on-chip RAM window (program control).
func (b *Bus) SetRAMBase(addr uint16) { b.rambase = addr }

// SetIOBase relocates the on-chip I/O window (program control).
func (b *Bus) SetIOBase(addr uint16) { b.iobase = addr }

func (b *Bus) RAMBase() uint16 { return b.rambase }
func (b *Bus) IOBase() uint16  { return b.iobase }
