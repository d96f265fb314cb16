// Package comm is the flat call surface legacy firmware links against: one
// SPI port, one UART console, one I2C port, with C-shaped int results
// (0/-1 status, byte counts, -1 on SPI timeout). New code should use the
// driver packages directly; this facade exists so ported application code
// keeps the call shape it was written against.
package comm

import (
	"axicomm-go/drivers/axii2c"
	"axicomm-go/drivers/axispi"
	"axicomm-go/drivers/axiuart"
	"axicomm-go/errcode"
)

// Status results for the init calls.
const (
	StatusOK   = 0
	StatusFail = -1
)

// Comm bundles the three peripheral handles behind the flat surface.
type Comm struct {
	spi  *axispi.Controller
	uart *axiuart.Controller
	i2c  *axii2c.Controller

	lastErr error
}

// New builds the facade. Any handle may be nil if the board image lacks
// that peripheral; init and transfer calls against a missing peripheral
// report failure. The UART byte calls have no failure channel and panic on
// a nil handle.
func New(spi *axispi.Controller, uart *axiuart.Controller, i2c *axii2c.Controller) *Comm {
	return &Comm{spi: spi, uart: uart, i2c: i2c}
}

// LastCode reports the error code behind the most recent -1 or short
// result, errcode.OK if the last call succeeded.
func (c *Comm) LastCode() errcode.Code {
	switch c.lastErr {
	case nil:
		return errcode.OK
	case axispi.ErrTimeout, axii2c.ErrTimeout:
		return errcode.Timeout
	case axispi.ErrNoData, axii2c.ErrNoData, axii2c.ErrLength, axispi.ErrSlaveRange:
		return errcode.InvalidParams
	default:
		return errcode.Of(c.lastErr)
	}
}

// SPIInit configures the SPI port. lsbFirst, clockPol and clockEdge take
// 0/1 as in the legacy firmware surface.
func (c *Comm) SPIInit(lsbFirst uint8, clockFreq uint32, clockPol, clockEdge uint8) int {
	if c.spi == nil {
		c.lastErr = errcode.UnknownDevice
		return StatusFail
	}
	c.lastErr = c.spi.Configure(axispi.Config{
		LSBFirst:  lsbFirst != 0,
		ClockFreq: clockFreq,
		CPOL:      clockPol != 0,
		ClockEdge: clockEdge != 0,
	})
	if c.lastErr != nil {
		return StatusFail
	}
	return StatusOK
}

// SPITransfer clocks buf out to the slave full duplex, overwriting buf with
// the received bytes. Returns the byte count, or -1 on timeout (the core
// has been reset and deselected).
func (c *Comm) SPITransfer(slave uint8, buf []byte) int {
	if c.spi == nil {
		c.lastErr = errcode.UnknownDevice
		return StatusFail
	}
	n, err := c.spi.Transfer(slave, buf)
	c.lastErr = err
	if err != nil {
		return StatusFail
	}
	return n
}

// UARTInit configures the console. The baud argument cannot be checked
// against the synthesis-fixed rate; a mismatch succeeds here and garbles
// the line.
func (c *Comm) UARTInit(baudRate uint32) int {
	if c.uart == nil {
		c.lastErr = errcode.UnknownDevice
		return StatusFail
	}
	c.lastErr = c.uart.Configure(axiuart.Config{BaudRate: baudRate})
	if c.lastErr != nil {
		return StatusFail
	}
	return StatusOK
}

// UARTWriteChar blocks until the byte is on the wire.
func (c *Comm) UARTWriteChar(b byte) { c.uart.WriteByte(b) }

// UARTReadChar blocks until a byte arrives.
func (c *Comm) UARTReadChar() byte { return c.uart.ReadByte() }

// UARTWriteString writes s byte by byte.
func (c *Comm) UARTWriteString(s string) { c.uart.WriteString(s) }

// I2CInit configures the I2C port.
func (c *Comm) I2CInit(clockFreq uint32) int {
	if c.i2c == nil {
		c.lastErr = errcode.UnknownDevice
		return StatusFail
	}
	c.lastErr = c.i2c.Configure(axii2c.Config{ClockFreq: clockFreq})
	if c.lastErr != nil {
		return StatusFail
	}
	return StatusOK
}

// I2CRead reads len(buf) bytes from the slave. The result is the number of
// bytes actually received; anything short of len(buf) is a failed
// transaction (the core has been re-initialised).
func (c *Comm) I2CRead(slaveAddr uint8, buf []byte, stop bool) int {
	if c.i2c == nil {
		c.lastErr = errcode.UnknownDevice
		return 0
	}
	n, err := c.i2c.Read(slaveAddr, buf, stop)
	c.lastErr = err
	return n
}

// I2CWrite sends buf to the slave and returns the byte count. The write
// path cannot stall, so a full count is the only outcome for a valid
// request.
func (c *Comm) I2CWrite(slaveAddr uint8, buf []byte, stop bool) int {
	if c.i2c == nil {
		c.lastErr = errcode.UnknownDevice
		return 0
	}
	n, err := c.i2c.Write(slaveAddr, buf, stop)
	c.lastErr = err
	return n
}
