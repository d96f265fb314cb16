// Package axispi drives the AXI Quad SPI soft core through a memory-mapped
// register bus. The controller is a single-owner handle: it holds the base
// address and the persisted control-register image, and must not be shared
// between concurrent callers — the per-byte inhibit toggling corrupts the
// FIFO sequencing if interleaved.
//
// Transfers are full duplex and in place: each outgoing byte in the buffer
// is overwritten by the byte clocked in while it was sent. The core only
// emits clock edges while the transaction-inhibit control bit is clear, so
// the engine toggles inhibit around every FIFO push to avoid overrunning
// the internal shift register.
package axispi

import (
	"errors"

	"axicomm-go/mmio"
	"axicomm-go/x/busywait"
)

// DefaultPollBudget is the per-byte countdown of status probes before a
// transfer is declared stalled.
const DefaultPollBudget = 0xFFFF

// Errors returned by the driver.
var (
	ErrTimeout    = errors.New("axispi: timeout")
	ErrNoData     = errors.New("axispi: empty buffer")
	ErrSlaveRange = errors.New("axispi: slave id out of range")
)

// Config selects the transfer format for Configure.
//
// The core's SCK rate is fixed by the synthesis-time prescaler; ClockFreq is
// recorded for callers but does not program any register.
type Config struct {
	LSBFirst  bool   // LSB-first transfer format (default MSB first)
	ClockFreq uint32 // nominal SCK in Hz, informational
	CPOL      bool   // clock idles high
	ClockEdge bool   // output changes on the active->idle transition

	// PollBudget overrides DefaultPollBudget when non-zero. Tests use a
	// small budget to exercise the stall path without 64k probes.
	PollBudget uint32
}

// Controller is the handle for one AXI Quad SPI instance.
type Controller struct {
	bus  mmio.Bus
	base uint32

	cfg       CtrlReg
	clockFreq uint32
	budget    uint32
}

// New creates a controller for the core at base. It only creates the
// handle; Configure must run before the first Transfer.
func New(bus mmio.Bus, base uint32) *Controller {
	return &Controller{bus: bus, base: base, budget: DefaultPollBudget}
}

func (c *Controller) read(off uint32) uint32     { return c.bus.Read32(c.base + off) }
func (c *Controller) write(off uint32, v uint32) { c.bus.Write32(c.base+off, v) }

// Configure builds the control word and brings the core to the idle state:
// no slave selected, master enabled, transactions inhibited. The control
// word is assigned fresh on every call.
func (c *Controller) Configure(cfg Config) error {
	w := crEnable | crMaster | crManualSS | crTranInhibit | crRxFIFOReset
	if cfg.LSBFirst {
		w = w.With(crLSBFirst)
	}
	if cfg.CPOL {
		w = w.With(crCPOL)
	}
	if !cfg.ClockEdge {
		// Data valid on the second edge when output changes entering the
		// active clock state.
		w = w.With(crCPHA)
	}
	c.cfg = w
	c.clockFreq = cfg.ClockFreq
	c.budget = cfg.PollBudget
	if c.budget == 0 {
		c.budget = DefaultPollBudget
	}

	c.write(regSSR, ssrDeselectAll)
	c.write(regCR, uint32(c.cfg))
	return nil
}

// ClockFreq reports the nominal SCK rate recorded at Configure.
func (c *Controller) ClockFreq() uint32 { return c.clockFreq }

// Transfer clocks len(buf) bytes out to the selected slave and overwrites
// buf in place with the bytes received. It returns the number of bytes
// transferred, or ErrTimeout if the core stopped producing receive data
// within the per-byte poll budget; on timeout the core has been soft-reset
// and left deselected with transactions inhibited, and the buffer contents
// past the last received byte are unspecified.
//
// An empty buffer is rejected: a zero-length transaction has no meaning on
// the wire and would otherwise select and deselect the slave spuriously.
func (c *Controller) Transfer(slave uint8, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, ErrNoData
	}
	if slave > 31 {
		return 0, ErrSlaveRange
	}

	cfg := c.cfg

	c.write(regCR, uint32(cfg))

	// Assert the selected slave line (active low, one-hot).
	c.write(regSSR, ^(uint32(1) << slave))

	// Prime the TX FIFO, then release inhibit to start clocking.
	c.write(regDTR, uint32(buf[0]))
	cfg = cfg.Without(crTranInhibit)
	c.write(regCR, uint32(cfg))

	rx := 0
	for tx := 0; tx < len(buf); {
		// Each byte gets its own countdown; the budget must not carry
		// over or a slow first byte starves the rest.
		ok := busywait.Poll(func() bool {
			return c.read(regSR)&srRxEmpty == 0
		}, c.budget)
		if !ok {
			c.recoverFromStall(cfg)
			return 0, ErrTimeout
		}

		if rx < len(buf) {
			buf[rx] = byte(c.read(regDRR))
			rx++
		}
		tx++
		if tx < len(buf) {
			// Inhibit while the next byte is pushed so the shift
			// register is never overrun mid-byte.
			cfg = cfg.With(crTranInhibit)
			c.write(regCR, uint32(cfg))
			c.write(regDTR, uint32(buf[tx]))
			cfg = cfg.Without(crTranInhibit)
			c.write(regCR, uint32(cfg))
		}
	}

	cfg = cfg.With(crTranInhibit)
	c.write(regCR, uint32(cfg))
	c.write(regSSR, ssrDeselectAll)
	return len(buf), nil
}

// recoverFromStall returns the core to a known idle state after a poll
// budget expires: transactions inhibited, core soft-reset, all slaves
// deselected, control word reapplied.
func (c *Controller) recoverFromStall(cfg CtrlReg) {
	cfg = cfg.With(crTranInhibit)
	c.write(regCR, uint32(cfg))
	c.write(regSRR, srrResetKey)
	c.write(regSSR, ssrDeselectAll)
	c.write(regCR, uint32(cfg))
}
