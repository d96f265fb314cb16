// Package axiuart provides constants for the UART Lite soft core register
// map.
package axiuart

// Register offsets from the core's base address.
const (
	regRxFIFO = 0x00 // receive FIFO pop
	regTxFIFO = 0x04 // transmit FIFO push
	regStat   = 0x08 // status register
	regCtrl   = 0x0C // control register
)

// Status register bits.
const (
	statRxValid = 0x01 // receive FIFO holds at least one byte
	statRxFull  = 0x02
	statTxEmpty = 0x04 // transmit FIFO fully drained
	statTxFull  = 0x08
)

// Control register bits.
const (
	ctrlRstTx      = 0x01 // reset/flush transmit FIFO
	ctrlRstRx      = 0x02 // reset/flush receive FIFO
	ctrlEnableIntr = 0x10 // interrupt enable (left clear: polled operation)
)
