// Package axispi provides constants for the register map and control-word
// bitfields of the AXI Quad SPI soft core (standard mode, byte-wide FIFOs).
package axispi

// Register offsets from the core's base address.
const (
	regSRR = 0x40 // software reset register (write-only, keyed)
	regCR  = 0x60 // control register
	regSR  = 0x64 // status register
	regDTR = 0x68 // data transmit register (TX FIFO push)
	regDRR = 0x6C // data receive register (RX FIFO pop)
	regSSR = 0x70 // slave select register, active-low one-hot
)

// srrResetKey written to regSRR soft-resets the core.
const srrResetKey = 0x0000000A

// ssrDeselectAll is the slave select idle value: no device selected.
const ssrDeselectAll = 0xFFFFFFFF

// CtrlReg is the control-register image. The word is built once per
// Configure and persists on the controller handle; transfers work on a
// local copy and only ever toggle the transaction-inhibit field.
type CtrlReg uint32

const (
	crLoop        CtrlReg = 1 << 0 // internal loopback
	crEnable      CtrlReg = 1 << 1 // system enable (SPE)
	crMaster      CtrlReg = 1 << 2 // master configuration
	crCPOL        CtrlReg = 1 << 3 // clock idles high
	crCPHA        CtrlReg = 1 << 4 // data valid on second clock edge
	crTxFIFOReset CtrlReg = 1 << 5 // transmit FIFO reset (self-clearing)
	crRxFIFOReset CtrlReg = 1 << 6 // receive FIFO reset (self-clearing)
	crManualSS    CtrlReg = 1 << 7 // slave select follows regSSR
	crTranInhibit CtrlReg = 1 << 8 // master transaction inhibit: no clock edges while set
	crLSBFirst    CtrlReg = 1 << 9 // LSB-first transfer format
)

func (r CtrlReg) Has(flag CtrlReg) bool        { return r&flag != 0 }
func (r CtrlReg) With(flag CtrlReg) CtrlReg    { return r | flag }
func (r CtrlReg) Without(flag CtrlReg) CtrlReg { return r &^ flag }

// Status register bits.
const (
	srRxEmpty = 0x01 // receive FIFO has no pending byte
	srRxFull  = 0x02
	srTxEmpty = 0x04
	srTxFull  = 0x08
)
