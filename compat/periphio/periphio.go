// Package periphio adapts the AXI peripheral controllers to the periph.io
// conn interfaces, so periph.io device drivers can run against the FPGA
// soft cores instead of a host kernel bus.
package periphio

import (
	"errors"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"axicomm-go/drivers/axii2c"
	"axicomm-go/drivers/axispi"
)

// Compile-time checks.
var (
	_ i2c.Bus  = (*I2CBus)(nil)
	_ spi.Conn = (*SPIConn)(nil)
)

var errBitsPerWord = errors.New("periphio: only 8 bits per word supported")

// I2CBus exposes an AXI IIC controller as a periph.io i2c.Bus.
//
// Combined write+read transactions are issued as a write transaction
// followed by a read transaction (the dynamic-mode engine always stops
// between them); drivers that require a repeated start cannot use this.
type I2CBus struct {
	ctrl *axii2c.Controller
	name string
}

// NewI2C wraps ctrl. name is reported by String (e.g. "axi-iic0").
func NewI2C(ctrl *axii2c.Controller, name string) *I2CBus {
	return &I2CBus{ctrl: ctrl, name: name}
}

func (b *I2CBus) String() string { return b.name }

func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	if len(w) > 0 {
		if _, err := b.ctrl.Write(uint8(addr), w, true); err != nil {
			return err
		}
	}
	if len(r) > 0 {
		n, err := b.ctrl.Read(uint8(addr), r, true)
		if err != nil {
			return err
		}
		if n < len(r) {
			return axii2c.ErrTimeout
		}
	}
	return nil
}

// SetSpeed is accepted but has no effect: the SCL prescaler is fixed when
// the core is synthesised.
func (b *I2CBus) SetSpeed(physic.Frequency) error { return nil }

// SPIConn exposes one slave of an AXI Quad SPI controller as a periph.io
// spi.Conn.
type SPIConn struct {
	ctrl  *axispi.Controller
	slave uint8
	name  string
}

// NewSPI wraps ctrl for the given slave id.
func NewSPI(ctrl *axispi.Controller, slave uint8, name string) *SPIConn {
	return &SPIConn{ctrl: ctrl, slave: slave, name: name}
}

func (c *SPIConn) String() string      { return c.name }
func (c *SPIConn) Duplex() conn.Duplex { return conn.Full }

func (c *SPIConn) Tx(w, r []byte) error {
	switch {
	case len(w) == 0 && len(r) == 0:
		return nil
	case len(r) == 0:
		scratch := append([]byte(nil), w...)
		_, err := c.ctrl.Transfer(c.slave, scratch)
		return err
	case len(w) == 0:
		for i := range r {
			r[i] = 0
		}
		_, err := c.ctrl.Transfer(c.slave, r)
		return err
	default:
		if len(w) != len(r) {
			return axispi.ErrLenMismatch
		}
		copy(r, w)
		_, err := c.ctrl.Transfer(c.slave, r)
		return err
	}
}

// TxPackets runs each packet as its own transaction. KeepCS is not
// honoured: the engine deselects the slave at the end of every transfer.
func (c *SPIConn) TxPackets(p []spi.Packet) error {
	for _, pkt := range p {
		if pkt.BitsPerWord != 0 && pkt.BitsPerWord != 8 {
			return errBitsPerWord
		}
		if err := c.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}
