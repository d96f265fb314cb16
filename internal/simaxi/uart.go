package simaxi

// UART Lite register model constants (hardware view).
const (
	uartRxFIFO = 0x00
	uartTxFIFO = 0x04
	uartStat   = 0x08
	uartCtrl   = 0x0C

	uartStatRxValid = 0x01
	uartStatTxEmpty = 0x04

	uartCtrlRstTx = 0x01
	uartCtrlRstRx = 0x02
)

// UARTCore models the UART Lite core. The transmit FIFO drains instantly;
// receive data is queued by the test via Feed.
type UARTCore struct {
	Base uint32

	// Observable state.
	Out        []byte   // everything written out the TX path
	CtrlWrites []uint32

	rxQueue []byte
}

// NewUARTCore returns a model at base with an empty receive queue.
func NewUARTCore(base uint32) *UARTCore {
	return &UARTCore{Base: base}
}

// Feed queues incoming bytes on the receive side.
func (s *UARTCore) Feed(b ...byte) { s.rxQueue = append(s.rxQueue, b...) }

// RxPending reports how many queued bytes have not been read yet.
func (s *UARTCore) RxPending() int { return len(s.rxQueue) }

func (s *UARTCore) owns(addr uint32) bool {
	return addr >= s.Base && addr < s.Base+window
}

func (s *UARTCore) Read32(addr uint32) uint32 {
	switch addr - s.Base {
	case uartStat:
		st := uint32(uartStatTxEmpty)
		if len(s.rxQueue) > 0 {
			st |= uartStatRxValid
		}
		return st
	case uartRxFIFO:
		if len(s.rxQueue) == 0 {
			return 0
		}
		b := s.rxQueue[0]
		s.rxQueue = s.rxQueue[1:]
		return uint32(b)
	}
	return 0
}

func (s *UARTCore) Write32(addr uint32, v uint32) {
	switch addr - s.Base {
	case uartTxFIFO:
		s.Out = append(s.Out, byte(v))
	case uartCtrl:
		s.CtrlWrites = append(s.CtrlWrites, v)
		if v&uartCtrlRstRx != 0 {
			s.rxQueue = nil
		}
	}
}
