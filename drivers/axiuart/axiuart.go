// Package axiuart drives the UART Lite soft core through a memory-mapped
// register bus. It is the console path: single-byte polled transfers with
// no FIFO state machine and no timeout — reads block until a byte arrives.
package axiuart

import (
	"axicomm-go/mmio"
	"axicomm-go/x/busywait"
)

// Config for Configure.
//
// The core's baud rate is fixed at synthesis; BaudRate is recorded for
// callers and cannot be verified against the hardware. A mismatch is a
// silent failure mode: Configure still succeeds and the line produces
// garbage.
type Config struct {
	BaudRate uint32
}

// Controller is the handle for one UART Lite instance.
type Controller struct {
	bus  mmio.Bus
	base uint32

	baudRate uint32
}

// New creates a controller for the core at base.
func New(bus mmio.Bus, base uint32) *Controller {
	return &Controller{bus: bus, base: base}
}

func (c *Controller) read(off uint32) uint32     { return c.bus.Read32(c.base + off) }
func (c *Controller) write(off uint32, v uint32) { c.bus.Write32(c.base+off, v) }

// Configure flushes both FIFOs and leaves interrupts disabled (polled
// operation). It always succeeds; see Config.BaudRate for the unverified
// mismatch caveat.
func (c *Controller) Configure(cfg Config) error {
	c.baudRate = cfg.BaudRate
	c.write(regCtrl, ctrlRstTx|ctrlRstRx)
	return nil
}

// BaudRate reports the rate recorded at Configure.
func (c *Controller) BaudRate() uint32 { return c.baudRate }

// WriteByte pushes one byte, waiting for the transmit FIFO to drain before
// and after so the byte is on the wire when the call returns.
func (c *Controller) WriteByte(b byte) {
	busywait.Wait(func() bool { return c.read(regStat)&statTxEmpty != 0 })
	c.write(regTxFIFO, uint32(b))
	busywait.Wait(func() bool { return c.read(regStat)&statTxEmpty != 0 })
}

// ReadByte blocks until a byte is available and returns it. A line
// terminator ('\n' or '\r') flushes both FIFOs so stale input does not
// bleed into the next line.
func (c *Controller) ReadByte() byte {
	busywait.Wait(func() bool { return c.read(regStat)&statRxValid != 0 })
	b := byte(c.read(regRxFIFO))
	if b == '\n' || b == '\r' {
		c.write(regCtrl, ctrlRstRx|ctrlRstTx)
	}
	return b
}

// WriteString writes each byte of s in order.
func (c *Controller) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		c.WriteByte(s[i])
	}
}

// Write makes the controller an io.Writer for console plumbing. It never
// fails; the error is always nil.
func (c *Controller) Write(p []byte) (int, error) {
	for _, b := range p {
		c.WriteByte(b)
	}
	return len(p), nil
}
