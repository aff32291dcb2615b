// gdbserver.go - GDB Remote Serial Protocol TCP frontend (spec 4.E).
//
// Grounded on runtime_ipc.go's IPCServer accept-loop/single-client pattern
// (Listen, Accept, per-connection read loop, clean shutdown via listener
// Close from a context-watching goroutine), replacing its JSON-line
// protocol with RSP's escaped, checksummed "$payload#cc" framing.

package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

const defaultGDBPort = 3333

// GDBServer is the RSP frontend: a TCP listener that accepts a single
// client at a time and drives the engine on its behalf (spec 5).
type GDBServer struct {
	addr    string
	engine  *Engine
	monitor *Monitor
	log     *logger

	packetSize int
}

// NewGDBServer returns a server bound to addr (host:port, defaulting the
// port to 3333 per spec 6) that will drive engine under its mutex.
func NewGDBServer(addr string, engine *Engine, log *logger) *GDBServer {
	if addr == "" {
		addr = fmt.Sprintf("127.0.0.1:%d", defaultGDBPort)
	}
	return &GDBServer{
		addr:       addr,
		engine:     engine,
		monitor:    NewMonitor(engine),
		log:        log,
		packetSize: 4096,
	}
}

// ListenAndServe accepts one client connection at a time until ctx is
// cancelled, at which point the listener is closed and Accept unblocks
// (spec 5's "socket close plus an async wake" shutdown strategy).
func (s *GDBServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("gdbserver: listen %s: %w", s.addr, err)
	}
	defer ln.Close()

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.log.infof("gdbserver: listening on %s", s.addr)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.handleConn(ctx, conn)
		if ctx.Err() != nil {
			return nil
		}
	}
}

// handleConn services one client to completion: it blocks until the client
// detaches, disconnects, or ctx is cancelled.
func (s *GDBServer) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	s.log.infof("gdbserver: client connected from %s", conn.RemoteAddr())
	r := bufio.NewReader(conn)

	for {
		payload, ok := s.readPacket(conn, r)
		if !ok {
			return
		}
		reply, detach := s.dispatch(ctx, conn, string(payload))
		if reply != nil {
			conn.Write(encodePacket(reply))
		}
		if detach {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// rspState is the receiver's packet-framing state machine (spec 4.E):
// WAIT_START -> WAIT_CSUM -> {ESCAPE, CSUM_1} -> CSUM_2 -> WAIT_START.
type rspState int

const (
	rspWaitStart rspState = iota
	rspWaitCsum
	rspEscapeByte
	rspCsum1
	rspCsum2
)

// readPacket runs the receiver state machine over conn until a full,
// checksum-verified packet is collected (sending '+') or the connection
// closes. A checksum mismatch sends '-' and the machine restarts, matching
// the "sender retransmits on -" contract. An out-of-band 0x03 byte seen in
// WAIT_START halts the engine immediately and is answered with S05 sent
// directly; reading then continues with the next packet.
func (s *GDBServer) readPacket(conn net.Conn, r *bufio.Reader) ([]byte, bool) {
	state := rspWaitStart
	var raw []byte
	var csumDigits [2]byte

	for {
		b, err := r.ReadByte()
		if err != nil {
			return nil, false
		}

		switch state {
		case rspWaitStart:
			switch b {
			case 0x03:
				s.engine.Mu.Lock()
				s.engine.SetStatus(StatusStopped)
				s.engine.Mu.Unlock()
				conn.Write(encodePacket([]byte("S05")))
			case rspStart:
				raw = raw[:0]
				state = rspWaitCsum
			}

		case rspWaitCsum:
			switch b {
			case rspEnd:
				state = rspCsum1
			case rspEscape:
				raw = append(raw, b)
				state = rspEscapeByte
			default:
				raw = append(raw, b)
			}

		case rspEscapeByte:
			raw = append(raw, b)
			state = rspWaitCsum

		case rspCsum1:
			csumDigits[0] = b
			state = rspCsum2

		case rspCsum2:
			csumDigits[1] = b
			want, ok := parseHexByte(csumDigits[0], csumDigits[1])
			payload, got := decodePayload(raw)
			if !ok || got != want {
				conn.Write([]byte{'-'})
				state = rspWaitStart
				continue
			}
			conn.Write([]byte{'+'})
			return payload, true
		}
	}
}

// dispatch interprets one decoded RSP payload and returns the reply payload
// to encode ('c'/'s' block until the engine stops and then reply S05) and
// whether the connection should close (spec 4.E dispatch table).
func (s *GDBServer) dispatch(ctx context.Context, conn net.Conn, payload string) (reply []byte, detach bool) {
	if payload == "" {
		return []byte{}, false
	}

	// Every branch below unlocks explicitly (rather than via defer) because
	// 'c' must release the mutex before waitForStop polls the engine from
	// outside the lock.
	s.engine.Mu.Lock()

	switch payload[0] {
	case '?':
		s.engine.Mu.Unlock()
		return []byte("S05"), false

	case 'g':
		r := s.readAllRegisters()
		s.engine.Mu.Unlock()
		return []byte(r), false

	case 'G':
		s.writeAllRegisters(payload[1:])
		s.engine.Mu.Unlock()
		return []byte("OK"), false

	case 'p':
		n, err := strconv.ParseUint(payload[1:], 16, 8)
		if err != nil {
			s.engine.Mu.Unlock()
			return []byte("E02"), false
		}
		v, ok := s.readRegister(int(n))
		s.engine.Mu.Unlock()
		if !ok {
			return []byte("E02"), false
		}
		return []byte(v), false

	case 'P':
		reply := s.handleWriteRegister(payload[1:])
		s.engine.Mu.Unlock()
		return reply, false

	case 'm':
		reply := s.handleReadMemory(payload[1:])
		s.engine.Mu.Unlock()
		return reply, false

	case 'M':
		reply := s.handleWriteMemory(payload[1:])
		s.engine.Mu.Unlock()
		return reply, false

	case 'X':
		reply := s.handleWriteMemoryBinary(payload[1:])
		s.engine.Mu.Unlock()
		return reply, false

	case 'c':
		s.engine.SetStatus(StatusRunning)
		s.engine.Mu.Unlock()
		s.waitForStop(ctx, conn)
		return []byte("S05"), false

	case 's':
		s.engine.SetStatus(StatusStepping)
		s.engine.Mu.Unlock()
		s.waitForStop(ctx, conn)
		return []byte("S05"), false

	case 'Z':
		reply := s.handleBreakpointOp(payload[1:], true)
		s.engine.Mu.Unlock()
		return reply, false

	case 'z':
		reply := s.handleBreakpointOp(payload[1:], false)
		s.engine.Mu.Unlock()
		return reply, false

	case 'H':
		s.engine.Mu.Unlock()
		return []byte("OK"), false

	case 'D':
		s.engine.Mu.Unlock()
		return []byte("OK"), true

	case 'q':
		reply := s.handleQuery(payload[1:])
		s.engine.Mu.Unlock()
		return reply, false

	default:
		s.engine.Mu.Unlock()
		return []byte{}, false
	}
}

// waitForStop blocks while the engine thread (the poll loop in main.go)
// drives the engine through RUNNING or STEPPING, watching conn for an
// out-of-band 0x03 interrupt request in the meantime (spec 5). It returns
// once status settles to STOPPED/EXECUTED_STOP, matching "wait until the
// engine returns to STOPPED, reply S05" for both 'c' and 's'.
func (s *GDBServer) waitForStop(ctx context.Context, conn net.Conn) {
	buf := make([]byte, 1)
	for {
		conn.SetReadDeadline(time.Now().Add(10 * time.Millisecond))
		n, _ := conn.Read(buf)
		conn.SetReadDeadline(time.Time{})
		if n > 0 && buf[0] == 0x03 {
			s.engine.Mu.Lock()
			s.engine.SetStatus(StatusStopped)
			s.engine.Mu.Unlock()
			return
		}

		s.engine.Mu.Lock()
		status := s.engine.Status()
		s.engine.Mu.Unlock()
		if status != StatusRunning && status != StatusStepping {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// readAllRegisters renders the 16-bit registers in GDB m68hc11 order
// (spec 4.E 'g'/'p'): X, D, Y, SP, PC, followed by A, B, CCR.
func (s *GDBServer) readAllRegisters() string {
	r := s.engine.Regs
	var b strings.Builder
	fmt.Fprintf(&b, "%04x%04x%04x%04x%04x", r.X, r.D, r.Y, r.SP, r.PC)
	fmt.Fprintf(&b, "%02x%02x%02x", r.A(), r.B(), r.CCR)
	return b.String()
}

func (s *GDBServer) writeAllRegisters(hex string) {
	if len(hex) < 20+6 {
		return
	}
	r := s.engine.Regs
	r.X = parseHex16(hex[0:4])
	r.D = parseHex16(hex[4:8])
	r.Y = parseHex16(hex[8:12])
	r.SP = parseHex16(hex[12:16])
	r.PC = parseHex16(hex[16:20])
	r.SetA(parseHex8(hex[20:22]))
	r.SetB(parseHex8(hex[22:24]))
	r.CCR = parseHex8(hex[24:26])
}

func parseHex16(s string) uint16 { v, _ := strconv.ParseUint(s, 16, 16); return uint16(v) }
func parseHex8(s string) uint8   { v, _ := strconv.ParseUint(s, 16, 8); return uint8(v) }

// readRegister implements 'p N': N in 0..4 are the 16-bit registers in
// readAllRegisters' order, 5..7 are A, B, CCR.
func (s *GDBServer) readRegister(n int) (string, bool) {
	r := s.engine.Regs
	switch n {
	case 0:
		return fmt.Sprintf("%04x", r.X), true
	case 1:
		return fmt.Sprintf("%04x", r.D), true
	case 2:
		return fmt.Sprintf("%04x", r.Y), true
	case 3:
		return fmt.Sprintf("%04x", r.SP), true
	case 4:
		return fmt.Sprintf("%04x", r.PC), true
	case 5:
		return fmt.Sprintf("%02x", r.A()), true
	case 6:
		return fmt.Sprintf("%02x", r.B()), true
	case 7:
		return fmt.Sprintf("%02x", r.CCR), true
	}
	return "", false
}

func (s *GDBServer) handleWriteRegister(body string) []byte {
	n, val, ok := strings.Cut(body, "=")
	if !ok {
		return []byte("E02")
	}
	idx, err := strconv.ParseUint(n, 16, 8)
	if err != nil || idx > 7 {
		return []byte("E02")
	}
	r := s.engine.Regs
	switch idx {
	case 0:
		r.X = parseHex16(val)
	case 1:
		r.D = parseHex16(val)
	case 2:
		r.Y = parseHex16(val)
	case 3:
		r.SP = parseHex16(val)
	case 4:
		r.PC = parseHex16(val)
	case 5:
		r.SetA(parseHex8(val))
	case 6:
		r.SetB(parseHex8(val))
	case 7:
		r.CCR = parseHex8(val)
	}
	return []byte("OK")
}

func (s *GDBServer) handleReadMemory(body string) []byte {
	addrStr, lenStr, ok := strings.Cut(body, ",")
	if !ok {
		return []byte("E01")
	}
	addr, err1 := strconv.ParseUint(addrStr, 16, 16)
	length, err2 := strconv.ParseUint(lenStr, 16, 16)
	if err1 != nil || err2 != nil {
		return []byte("E01")
	}
	if int(length) > s.packetSize/2 {
		length = uint64(s.packetSize / 2)
	}
	data := make([]byte, length)
	for i := range data {
		data[i] = s.engine.Bus.Read8(uint16(uint64(addr) + uint64(i)))
	}
	return []byte(hexEncode(data))
}

func (s *GDBServer) handleWriteMemory(body string) []byte {
	head, data, ok := strings.Cut(body, ":")
	if !ok {
		return []byte("E01")
	}
	addrStr, lenStr, ok := strings.Cut(head, ",")
	if !ok {
		return []byte("E01")
	}
	addr, err1 := strconv.ParseUint(addrStr, 16, 16)
	length, err2 := strconv.ParseUint(lenStr, 16, 16)
	bytes, ok := hexDecode(data)
	if err1 != nil || err2 != nil || !ok || uint64(len(bytes)) < length {
		return []byte("E01")
	}
	for i := uint64(0); i < length; i++ {
		s.engine.Bus.Write8(uint16(addr+i), bytes[i])
	}
	return []byte("OK")
}

func (s *GDBServer) handleWriteMemoryBinary(body string) []byte {
	head, data, ok := strings.Cut(body, ":")
	if !ok {
		return []byte("E01")
	}
	addrStr, lenStr, ok := strings.Cut(head, ",")
	if !ok {
		return []byte("E01")
	}
	addr, err1 := strconv.ParseUint(addrStr, 16, 16)
	length, err2 := strconv.ParseUint(lenStr, 16, 16)
	if err1 != nil || err2 != nil || uint64(len(data)) < length {
		return []byte("E01")
	}
	for i := uint64(0); i < length; i++ {
		s.engine.Bus.Write8(uint16(addr+i), data[i])
	}
	return []byte("OK")
}

func (s *GDBServer) handleBreakpointOp(body string, install bool) []byte {
	if !strings.HasPrefix(body, "0,") {
		return []byte("")
	}
	rest := strings.TrimPrefix(body, "0,")
	addrStr, _, _ := strings.Cut(rest, ",")
	addr, err := strconv.ParseUint(addrStr, 16, 16)
	if err != nil {
		return []byte("E01")
	}
	if install {
		s.engine.SetBreakpoint(uint16(addr))
	} else {
		s.engine.ClearBreakpoint(uint16(addr))
	}
	return []byte("OK")
}

func (s *GDBServer) handleQuery(body string) []byte {
	switch {
	case strings.HasPrefix(body, "Supported"):
		return []byte(fmt.Sprintf("PacketSize=%x", s.packetSize))
	case body == "fThreadInfo":
		return []byte("m0")
	case body == "sThreadInfo":
		return []byte("l")
	case body == "Attached":
		return []byte("1")
	case body == "C":
		return []byte("0")
	case strings.HasPrefix(body, "Rcmd,"):
		hex := strings.TrimPrefix(body, "Rcmd,")
		cmdBytes, ok := hexDecode(hex)
		if !ok {
			return []byte("E01")
		}
		reply := s.monitor.Run(string(cmdBytes))
		return []byte(hexEncode([]byte(reply)))
	default:
		return []byte{}
	}
}
