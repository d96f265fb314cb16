package axispi

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.SPI = (*Conn)(nil)

// ErrLenMismatch is returned by Conn.Tx when both buffers are provided
// with different lengths.
var ErrLenMismatch = errors.New("axispi: tx and rx buffer lengths differ")

// Conn binds a controller to one slave id and satisfies drivers.SPI, so
// TinyGo ecosystem device drivers can run over the AXI core unchanged.
type Conn struct {
	ctrl  *Controller
	slave uint8
}

// Conn returns a drivers.SPI view of the controller for the given slave.
func (c *Controller) Conn(slave uint8) *Conn {
	return &Conn{ctrl: c, slave: slave}
}

// Tx follows the machine.SPI contract: both buffers present (equal length,
// full duplex), w only (received bytes discarded), or r only (zero bytes
// clocked out).
func (cn *Conn) Tx(w, r []byte) error {
	switch {
	case len(w) == 0 && len(r) == 0:
		return nil
	case len(r) == 0:
		// The engine works in place; keep the caller's w intact.
		scratch := append([]byte(nil), w...)
		_, err := cn.ctrl.Transfer(cn.slave, scratch)
		return err
	case len(w) == 0:
		for i := range r {
			r[i] = 0
		}
		_, err := cn.ctrl.Transfer(cn.slave, r)
		return err
	default:
		if len(w) != len(r) {
			return ErrLenMismatch
		}
		copy(r, w)
		_, err := cn.ctrl.Transfer(cn.slave, r)
		return err
	}
}

// Transfer clocks a single byte in each direction.
func (cn *Conn) Transfer(b byte) (byte, error) {
	buf := [1]byte{b}
	if _, err := cn.ctrl.Transfer(cn.slave, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
