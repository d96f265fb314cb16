package simaxi

// AXI Quad SPI register model constants (hardware view, kept separate from
// the driver's own constants on purpose).
const (
	spiSRR = 0x40
	spiCR  = 0x60
	spiSR  = 0x64
	spiDTR = 0x68
	spiDRR = 0x6C
	spiSSR = 0x70

	spiCRInhibit = 1 << 8

	spiSRRxEmpty = 0x01
	spiSRTxEmpty = 0x04

	spiResetKey = 0x0000000A
)

// SPICore models the AXI Quad SPI core with an attached slave. The slave
// answers each shifted byte through Respond (default: echo). While the
// transaction-inhibit control bit is set, pushed bytes sit in the TX FIFO
// and nothing reaches the slave.
type SPICore struct {
	Base uint32

	// Respond maps each outgoing byte to the slave's answer. Nil echoes.
	Respond func(b byte) byte

	// StallAfter stops the slave from producing receive data after that
	// many bytes. Negative means never stall.
	StallAfter int

	// Observable state.
	CR          uint32
	SSR         uint32
	Resets      int
	StatusReads int

	txFIFO   []byte
	rxFIFO   []byte
	produced int
}

// NewSPICore returns a model at base with an echo slave that never stalls.
func NewSPICore(base uint32) *SPICore {
	return &SPICore{Base: base, StallAfter: -1, SSR: 0xFFFFFFFF}
}

func (s *SPICore) owns(addr uint32) bool {
	return addr >= s.Base && addr < s.Base+window
}

func (s *SPICore) Read32(addr uint32) uint32 {
	switch addr - s.Base {
	case spiSR:
		s.StatusReads++
		st := uint32(spiSRTxEmpty)
		if len(s.rxFIFO) == 0 {
			st |= spiSRRxEmpty
		}
		return st
	case spiDRR:
		if len(s.rxFIFO) == 0 {
			return 0
		}
		b := s.rxFIFO[0]
		s.rxFIFO = s.rxFIFO[1:]
		return uint32(b)
	case spiCR:
		return s.CR
	case spiSSR:
		return s.SSR
	}
	return 0
}

func (s *SPICore) Write32(addr uint32, v uint32) {
	switch addr - s.Base {
	case spiCR:
		s.CR = v
		s.shift()
	case spiSSR:
		s.SSR = v
	case spiDTR:
		s.txFIFO = append(s.txFIFO, byte(v))
		s.shift()
	case spiSRR:
		if v == spiResetKey {
			s.Resets++
			s.txFIFO = nil
			s.rxFIFO = nil
		}
	}
}

// shift moves TX FIFO bytes through the slave while transactions are not
// inhibited, honouring StallAfter.
func (s *SPICore) shift() {
	if s.CR&spiCRInhibit != 0 {
		return
	}
	for len(s.txFIFO) > 0 {
		if s.StallAfter >= 0 && s.produced >= s.StallAfter {
			return
		}
		b := s.txFIFO[0]
		s.txFIFO = s.txFIFO[1:]
		r := b
		if s.Respond != nil {
			r = s.Respond(b)
		}
		s.rxFIFO = append(s.rxFIFO, r)
		s.produced++
	}
}
