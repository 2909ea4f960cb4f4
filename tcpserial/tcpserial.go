// Package tcpserial implements a serial port over TCP whose register
// face follows the ACIA 6551 layout (data, status, command, control at
// offsets 0-3), so firmware written for a serial console can talk to
// external programs through a socket. The status bit assignments are
// this device's own, listed below, not the 6551's.
//
// Register map:
//
//	$FA00        data (read pops rx, write transmits)
//	$FA01        status (read only): bit 0 rx data ready, bit 1 tx empty, bit 7 connected
//	$FA02        command register (latched, parity/echo bits unused here)
//	$FA03        control register (latched, baud bits unused here)
//	$FA04-$FA05  TCP port, little endian
//	$FA06        connection control: 0 disconnect, 1 connect, 2 listen
//	$FA10-$FA4F  hostname window, null terminated
//
// The socket pump runs on its own goroutines; the register face is
// single threaded from the bus's point of view and never blocks.
package tcpserial

import (
	"fmt"
	"net"
	"sync"

	"github.com/emu65/emu65/bus"
	"github.com/emu65/emu65/logger"
)

var _ = bus.Device(&Chip{})

const (
	DATA       = uint16(0xFA00)
	STATUS     = uint16(0xFA01)
	CMD        = uint16(0xFA02)
	CTRL       = uint16(0xFA03)
	PORT_LO    = uint16(0xFA04)
	PORT_HI    = uint16(0xFA05)
	CONNECT    = uint16(0xFA06)
	HOST_START = uint16(0xFA10)
	HOST_END   = uint16(0xFA4F)

	STATUS_RX_READY  = uint8(0x01)
	STATUS_TX_EMPTY  = uint8(0x02)
	STATUS_CONNECTED = uint8(0x80)

	CONN_DISCONNECT = uint8(0)
	CONN_CONNECT    = uint8(1)
	CONN_LISTEN     = uint8(2)

	// txBacklog bounds the transmit queue; writes past it are
	// dropped rather than stalling the CPU thread.
	txBacklog = 4096
)

// Chip is the device state. mu guards everything shared with the
// socket goroutines.
type Chip struct {
	mu       sync.Mutex
	rx       []uint8
	tx       chan uint8
	cmd      uint8
	ctrl     uint8
	port     uint16
	host     [HOST_END - HOST_START + 1]uint8
	conn     net.Conn
	listener net.Listener
	done     chan struct{}
}

// New returns a disconnected serial device.
func New() *Chip {
	return &Chip{}
}

// HandlesRead implements the interface for bus.Device.
func (t *Chip) HandlesRead(addr uint16) bool {
	return addr >= DATA && addr <= CONNECT || addr >= HOST_START && addr <= HOST_END
}

// HandlesWrite implements the interface for bus.Device.
func (t *Chip) HandlesWrite(addr uint16) bool {
	return t.HandlesRead(addr)
}

// Read implements the interface for bus.Device.
func (t *Chip) Read(addr uint16) uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch addr {
	case DATA:
		if len(t.rx) == 0 {
			return 0x00
		}
		c := t.rx[0]
		t.rx = t.rx[1:]
		return c
	case STATUS:
		v := STATUS_TX_EMPTY
		if len(t.rx) > 0 {
			v |= STATUS_RX_READY
		}
		if t.conn != nil {
			v |= STATUS_CONNECTED
		}
		return v
	case CMD:
		return t.cmd
	case CTRL:
		return t.ctrl
	case PORT_LO:
		return uint8(t.port & 0xFF)
	case PORT_HI:
		return uint8(t.port >> 8)
	}
	if addr >= HOST_START && addr <= HOST_END {
		return t.host[addr-HOST_START]
	}
	return 0x00
}

// Write implements the interface for bus.Device.
func (t *Chip) Write(addr uint16, val uint8) {
	switch addr {
	case DATA:
		t.transmit(val)
		return
	case CMD:
		t.mu.Lock()
		t.cmd = val
		t.mu.Unlock()
		return
	case CTRL:
		t.mu.Lock()
		t.ctrl = val
		t.mu.Unlock()
		return
	case PORT_LO:
		t.mu.Lock()
		t.port = t.port&0xFF00 | uint16(val)
		t.mu.Unlock()
		return
	case PORT_HI:
		t.mu.Lock()
		t.port = t.port&0x00FF | uint16(val)<<8
		t.mu.Unlock()
		return
	case CONNECT:
		switch val {
		case CONN_DISCONNECT:
			t.Disconnect()
		case CONN_CONNECT:
			t.mu.Lock()
			host, port := t.hostString(), t.port
			t.mu.Unlock()
			// Dial off the CPU thread; STATUS_CONNECTED reports the outcome.
			go func() {
				if err := t.Connect(fmt.Sprintf("%s:%d", host, port)); err != nil {
					logger.Warnf("tcpserial connect: %v", err)
				}
			}()
		case CONN_LISTEN:
			t.mu.Lock()
			port := t.port
			t.mu.Unlock()
			if err := t.Listen(port); err != nil {
				logger.Warnf("tcpserial listen: %v", err)
			}
		}
		return
	}
	if addr >= HOST_START && addr <= HOST_END {
		t.mu.Lock()
		t.host[addr-HOST_START] = val
		t.mu.Unlock()
	}
}

// transmit queues one byte for the writer goroutine. When the backlog
// is full or nothing is connected the byte is dropped; a serial line
// has no flow control here either.
func (t *Chip) transmit(val uint8) {
	t.mu.Lock()
	tx := t.tx
	t.mu.Unlock()
	if tx == nil {
		return
	}
	select {
	case tx <- val:
	default:
		logger.Warnf("tcpserial: transmit backlog full, dropping 0x%.2X", val)
	}
}

// Connect dials addr (host:port) and starts the socket pump.
func (t *Chip) Connect(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	t.attach(conn)
	return nil
}

// Listen accepts a single inbound connection on port, asynchronously,
// and attaches it when it arrives.
func (t *Chip) Listen(port uint16) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.listener = ln
	t.mu.Unlock()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		t.attach(conn)
	}()
	return nil
}

// attach installs a live connection and spawns the reader and writer
// goroutines.
func (t *Chip) attach(conn net.Conn) {
	t.mu.Lock()
	if t.conn != nil {
		t.conn.Close()
	}
	t.conn = conn
	tx := make(chan uint8, txBacklog)
	done := make(chan struct{})
	t.tx = tx
	t.done = done
	t.mu.Unlock()

	go func() {
		buf := make([]byte, 512)
		for {
			n, err := conn.Read(buf)
			if n > 0 {
				t.mu.Lock()
				t.rx = append(t.rx, buf[:n]...)
				t.mu.Unlock()
			}
			if err != nil {
				t.detach(conn)
				return
			}
		}
	}()
	go func() {
		for {
			select {
			case v := <-tx:
				if _, err := conn.Write([]byte{v}); err != nil {
					t.detach(conn)
					return
				}
			case <-done:
				return
			}
		}
	}()
}

// detach drops conn if it is still the active connection.
func (t *Chip) detach(conn net.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != conn {
		return
	}
	conn.Close()
	if t.done != nil {
		close(t.done)
		t.done = nil
	}
	t.tx = nil
	t.conn = nil
}

// Disconnect closes the connection and any pending listener.
func (t *Chip) Disconnect() {
	t.mu.Lock()
	conn, ln := t.conn, t.listener
	t.listener = nil
	t.mu.Unlock()
	if ln != nil {
		ln.Close()
	}
	if conn != nil {
		t.detach(conn)
	}
}

// Connected reports whether a peer is attached.
func (t *Chip) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn != nil
}

// PushInput injects bytes into the receive queue directly, for tests
// and loopback use.
func (t *Chip) PushInput(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rx = append(t.rx, s...)
}

func (t *Chip) hostString() string {
	for i, c := range t.host {
		if c == 0 {
			return string(t.host[:i])
		}
	}
	return string(t.host[:])
}
