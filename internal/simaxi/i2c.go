package simaxi

// AXI IIC register model constants (hardware view).
const (
	iicCR     = 0x100
	iicSR     = 0x104
	iicTxFIFO = 0x108
	iicRxFIFO = 0x10C
	iicRxPIRQ = 0x120

	iicCREnable      = 0x01
	iicCRTxFIFOReset = 0x02

	iicSRRxEmpty = 0x40

	iicTagStart = 0x100
	iicTagStop  = 0x200
	iicDirRead  = 0x01
)

// I2CCore models the AXI IIC core in dynamic mode with one attached slave.
// Bytes written to the slave accumulate in Received; read transactions are
// served from Mem (or from Received when EchoWrites is set).
type I2CCore struct {
	Base uint32

	// Mem is the data the slave returns on read transactions.
	Mem []byte

	// EchoWrites serves read transactions from Received instead of Mem,
	// i.e. the slave hands back whatever was last written to it.
	EchoWrites bool

	// StallAfter stops the slave from producing receive data after that
	// many bytes of the current read transaction. Negative: never stall.
	StallAfter int

	// Observable state.
	Received    []byte   // data bytes from write transactions
	Commands    []uint32 // every TX FIFO entry in push order
	CRWrites    []uint32
	PIRQ        uint32
	StatusReads int

	cr          uint32
	rxFIFO      []byte
	pendingRead bool
}

// NewI2CCore returns a model at base whose slave never stalls.
func NewI2CCore(base uint32) *I2CCore {
	return &I2CCore{Base: base, StallAfter: -1}
}

func (s *I2CCore) owns(addr uint32) bool {
	return addr >= s.Base && addr < s.Base+window
}

func (s *I2CCore) Read32(addr uint32) uint32 {
	switch addr - s.Base {
	case iicSR:
		s.StatusReads++
		if len(s.rxFIFO) == 0 {
			return iicSRRxEmpty
		}
		return 0
	case iicRxFIFO:
		if len(s.rxFIFO) == 0 {
			return 0
		}
		b := s.rxFIFO[0]
		s.rxFIFO = s.rxFIFO[1:]
		return uint32(b)
	case iicCR:
		return s.cr
	case iicRxPIRQ:
		return s.PIRQ
	}
	return 0
}

func (s *I2CCore) Write32(addr uint32, v uint32) {
	switch addr - s.Base {
	case iicCR:
		s.cr = v
		s.CRWrites = append(s.CRWrites, v)
	case iicRxPIRQ:
		s.PIRQ = v
	case iicTxFIFO:
		s.Commands = append(s.Commands, v)
		s.command(v)
	}
}

func (s *I2CCore) command(v uint32) {
	if v&iicTagStart != 0 {
		// Address phase. A read-direction address arms the next entry to
		// be interpreted as the transaction length.
		s.pendingRead = v&iicDirRead != 0
		return
	}
	if s.pendingRead {
		// Length entry of a read transaction: the slave streams bytes
		// into the receive FIFO, up to its stall point.
		s.pendingRead = false
		n := int(v & 0xFF)
		src := s.Mem
		if s.EchoWrites {
			src = s.Received
		}
		for i := 0; i < n && i < len(src); i++ {
			if s.StallAfter >= 0 && i >= s.StallAfter {
				break
			}
			s.rxFIFO = append(s.rxFIFO, src[i])
		}
		return
	}
	// Data byte of a write transaction (stop tag stripped).
	s.Received = append(s.Received, byte(v))
}
