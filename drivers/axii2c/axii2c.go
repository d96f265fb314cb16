// Package axii2c drives the AXI IIC soft core in dynamic mode through a
// memory-mapped register bus. The controller is stateless between calls:
// every transaction starts by resetting and re-enabling the core so a
// wedged previous transaction cannot leak into the next one.
//
// The read and write paths are deliberately asymmetric. Read completion
// depends on the external slave's timing, so each received byte is waited
// for under a countdown budget. Writes push into a TX FIFO whose depth is
// established at init to cover the maximum supported burst, cannot stall,
// and therefore carry no timeout machinery.
package axii2c

import (
	"errors"

	"axicomm-go/mmio"
	"axicomm-go/x/busywait"
)

// DefaultPollBudget is the per-byte countdown of status probes on the read
// path. It is larger than the SPI budget because a clock-stretching slave
// legitimately holds the bus far longer than a shift register does.
const DefaultPollBudget = 0xFFFFFF

// settleMillis is the fixed wait after enabling the core, letting the bus
// state machine stabilise before commands are pushed.
const settleMillis = 10

// maxBurst is the longest transaction the length byte of a read command
// can express, and the burst the TX FIFO depth is sized for.
const maxBurst = 255

// Errors returned by the driver.
var (
	ErrTimeout = errors.New("axii2c: timeout")
	ErrNoData  = errors.New("axii2c: empty buffer")
	ErrLength  = errors.New("axii2c: burst longer than 255 bytes")
)

// Config for Configure. The SCL rate is fixed by the synthesis-time
// prescaler; ClockFreq is recorded for callers but programs no register.
type Config struct {
	ClockFreq uint32 // nominal SCL in Hz, informational

	// PollBudget overrides DefaultPollBudget when non-zero.
	PollBudget uint32
}

// Controller is the handle for one AXI IIC instance.
type Controller struct {
	bus   mmio.Bus
	base  uint32
	delay mmio.Delayer

	clockFreq uint32
	budget    uint32
}

// New creates a controller for the core at base. A nil delayer falls back
// to real sleeps. Configure must run before the first transaction.
func New(bus mmio.Bus, base uint32, d mmio.Delayer) *Controller {
	if d == nil {
		d = mmio.SleepDelayer{}
	}
	return &Controller{bus: bus, base: base, delay: d, budget: DefaultPollBudget}
}

func (c *Controller) read(off uint32) uint32     { return c.bus.Read32(c.base + off) }
func (c *Controller) write(off uint32, v uint32) { c.bus.Write32(c.base+off, v) }

// Configure brings the core to its known idle state: disabled, receive
// FIFO depth at maximum, FIFOs flushed, then enabled. It is idempotent and
// doubles as the recovery sequence after a read stall.
func (c *Controller) Configure(cfg Config) error {
	c.clockFreq = cfg.ClockFreq
	c.budget = cfg.PollBudget
	if c.budget == 0 {
		c.budget = DefaultPollBudget
	}
	c.reinit()
	return nil
}

func (c *Controller) reinit() {
	c.write(regCR, 0x00)
	c.write(regRxPIRQ, rxPIRQMax)
	c.write(regCR, crTxFIFOReset)
	c.write(regCR, crEnable)
}

// enterTransaction flushes the TX FIFO, enables the core and waits for it
// to settle. Run at the top of every read and write.
func (c *Controller) enterTransaction() {
	c.write(regCR, crTxFIFOReset)
	c.write(regCR, crEnable)
	c.delay.DelayMillis(settleMillis)
}

// ClockFreq reports the nominal SCL rate recorded at Configure.
func (c *Controller) ClockFreq() uint32 { return c.clockFreq }

// Read fills buf from the slave at addr (7-bit) and returns the number of
// bytes actually received. If the slave stops producing data within the
// per-byte poll budget the core is re-initialised and the short count is
// returned with ErrTimeout; callers must treat n < len(buf) as failure.
// An address NAK is not distinguishable from a stall on this core's status
// register and surfaces as the same short read.
//
// stop is accepted for call compatibility; the read command always carries
// the stop tag, so the parameter does not alter the sequence on the wire.
func (c *Controller) Read(addr uint8, buf []byte, stop bool) (int, error) {
	if len(buf) == 0 {
		return 0, ErrNoData
	}
	if len(buf) > maxBurst {
		return 0, ErrLength
	}

	c.enterTransaction()

	// Address with read direction, then the transaction length. The stop
	// tag on the length entry ends the transaction after the last byte.
	c.write(regTxFIFO, tagStart|uint32(addr)<<1|dirRead)
	c.write(regTxFIFO, tagStop+uint32(len(buf)))

	rx := 0
	for rx < len(buf) {
		// Fresh countdown per byte.
		ok := busywait.Poll(func() bool {
			return c.read(regSR)&srRxEmpty == 0
		}, c.budget)
		if !ok {
			c.reinit()
			return rx, ErrTimeout
		}
		buf[rx] = byte(c.read(regRxFIFO))
		rx++
	}

	c.delay.DelayMillis(settleMillis)
	return rx, nil
}

// Write sends buf to the slave at addr (7-bit) and returns len(buf). The
// push loop never polls: the TX FIFO is sized for the full burst at init,
// so the write path has no failure mode of its own.
//
// stop is accepted for call compatibility; the final byte always carries
// the stop tag.
func (c *Controller) Write(addr uint8, buf []byte, stop bool) (int, error) {
	if len(buf) == 0 {
		return 0, ErrNoData
	}
	if len(buf) > maxBurst {
		return 0, ErrLength
	}

	c.enterTransaction()

	c.write(regTxFIFO, tagStart|uint32(addr)<<1)
	for i, b := range buf {
		entry := uint32(b)
		if i == len(buf)-1 {
			entry |= tagStop
		}
		c.write(regTxFIFO, entry)
	}

	c.delay.DelayMillis(settleMillis)
	return len(buf), nil
}
