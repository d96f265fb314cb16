// Package simaxi holds register-level behavioural models of the three AXI
// soft cores, for host-side tests and the selftest binary. The models
// implement mmio.Bus and follow the hardware's documented register
// semantics, not the drivers' expectations, so driver bugs show up as
// simulated-bus misbehaviour rather than being mirrored.
package simaxi

import "axicomm-go/mmio"

// Mux routes bus accesses to the core owning the address. Each core claims
// a fixed-size window above its base address.
type Mux struct {
	cores []core
}

type core interface {
	mmio.Bus
	owns(addr uint32) bool
}

// NewMux builds a router over the given cores.
func NewMux(cores ...mmio.Bus) *Mux {
	m := &Mux{}
	for _, c := range cores {
		if cc, ok := c.(core); ok {
			m.cores = append(m.cores, cc)
		}
	}
	return m
}

func (m *Mux) Read32(addr uint32) uint32 {
	for _, c := range m.cores {
		if c.owns(addr) {
			return c.Read32(addr)
		}
	}
	return 0
}

func (m *Mux) Write32(addr uint32, v uint32) {
	for _, c := range m.cores {
		if c.owns(addr) {
			c.Write32(addr, v)
			return
		}
	}
}

// window is the address span each simulated core claims.
const window = 0x200
