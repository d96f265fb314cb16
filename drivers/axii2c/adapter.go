package axii2c

import (
	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*Bus)(nil)

// Bus is a drivers.I2C view of the controller, so TinyGo ecosystem device
// drivers can run over the AXI core.
//
// The dynamic-mode engine issues every transaction with its own start and
// stop, so a combined Tx(addr, w, r) is a write transaction followed by a
// read transaction rather than a repeated start. Device drivers that
// strictly require repeated-start register reads cannot use this adapter.
type Bus struct {
	ctrl *Controller
}

// I2C returns the drivers.I2C view of the controller.
func (c *Controller) I2C() *Bus { return &Bus{ctrl: c} }

// Tx writes w (if any) then reads into r (if any). A short read is
// reported as an error.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
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
			return ErrTimeout
		}
	}
	return nil
}
