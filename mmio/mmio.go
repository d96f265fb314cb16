// Package mmio defines the register-access collaborators the peripheral
// drivers are written against: a 32-bit memory-mapped bus and a millisecond
// delay source. Both are plain interfaces so that drivers hold an explicit
// handle (no package-level globals) and tests can substitute simulated
// hardware.
package mmio

import "time"

// Bus is 32-bit memory-mapped register access. Addresses are absolute
// physical addresses; drivers add their own base-address offsets.
//
// Implementations on real hardware are expected to perform single,
// uncached, naturally-aligned 32-bit accesses.
type Bus interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, v uint32)
}

// Delayer blocks the calling context for at least ms milliseconds.
// Peripheral settle waits go through this so tests do not sleep for real.
type Delayer interface {
	DelayMillis(ms uint32)
}

// SleepDelayer is the default Delayer, backed by time.Sleep.
type SleepDelayer struct{}

func (SleepDelayer) DelayMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// NopDelayer skips delays entirely. Intended for tests and simulations.
type NopDelayer struct{}

func (NopDelayer) DelayMillis(uint32) {}
