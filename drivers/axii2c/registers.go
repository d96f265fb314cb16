// Package axii2c provides constants for the register map of the AXI IIC
// soft core, dynamic controller mode.
package axii2c

// Register offsets from the core's base address.
const (
	regCR     = 0x100 // control register
	regSR     = 0x104 // status register
	regTxFIFO = 0x108 // transmit FIFO push (10-bit entries: tag + data)
	regRxFIFO = 0x10C // receive FIFO pop
	regRxPIRQ = 0x120 // receive FIFO programmable depth/interrupt level
)

// Control register bits.
const (
	crEnable      = 0x01 // core enable
	crTxFIFOReset = 0x02 // transmit FIFO reset/flush
)

// Status register bits.
const (
	srRxEmpty = 0x40 // receive FIFO has no pending byte
)

// TX FIFO entry tags (dynamic mode). A pushed entry is the data byte in
// bits 7:0 plus optional condition tags above it.
const (
	tagStart = 0x100 // issue a start condition before this byte
	tagStop  = 0x200 // issue a stop condition after this byte
)

// dirRead is OR-ed into the shifted slave address to request a read.
const dirRead = 0x01

// rxPIRQMax sets the receive FIFO depth to its maximum.
const rxPIRQMax = 0x0F
