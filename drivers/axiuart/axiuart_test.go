package axiuart

import (
	"bytes"
	"io"
	"testing"

	"axicomm-go/internal/simaxi"
)

// Compile-time check.
var _ io.Writer = (*Controller)(nil)

const testBase = 0x40600000

func newTestController(t *testing.T, sim *simaxi.UARTCore) *Controller {
	t.Helper()
	c := New(sim, testBase)
	if err := c.Configure(Config{BaudRate: 115200}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return c
}

func TestConfigureFlushesFIFOs(t *testing.T) {
	sim := simaxi.NewUARTCore(testBase)
	sim.Feed('x')
	c := newTestController(t, sim)

	if len(sim.CtrlWrites) != 1 || sim.CtrlWrites[0] != ctrlRstTx|ctrlRstRx {
		t.Errorf("control writes = %#x, want one reset of both FIFOs", sim.CtrlWrites)
	}
	if sim.RxPending() != 0 {
		t.Errorf("stale receive data survived Configure")
	}
	if c.BaudRate() != 115200 {
		t.Errorf("BaudRate = %d", c.BaudRate())
	}
}

func TestWritePaths(t *testing.T) {
	sim := simaxi.NewUARTCore(testBase)
	c := newTestController(t, sim)

	c.WriteByte('A')
	c.WriteString("BC")
	n, err := c.Write([]byte("DE"))
	if err != nil || n != 2 {
		t.Fatalf("Write = (%d, %v)", n, err)
	}
	if !bytes.Equal(sim.Out, []byte("ABCDE")) {
		t.Errorf("transmitted %q, want %q", sim.Out, "ABCDE")
	}
}

func TestReadByteFlushesOnLineTerminator(t *testing.T) {
	for _, term := range []byte{'\n', '\r'} {
		sim := simaxi.NewUARTCore(testBase)
		c := newTestController(t, sim)
		sim.Feed('h', 'i', term, 's', 't', 'a', 'l', 'e')

		if b := c.ReadByte(); b != 'h' {
			t.Fatalf("first byte = %q", b)
		}
		if b := c.ReadByte(); b != 'i' {
			t.Fatalf("second byte = %q", b)
		}
		if b := c.ReadByte(); b != term {
			t.Fatalf("terminator = %q, want %q", b, term)
		}

		// The terminator write resets both FIFOs, dropping queued input.
		last := sim.CtrlWrites[len(sim.CtrlWrites)-1]
		if last != ctrlRstRx|ctrlRstTx {
			t.Errorf("terminator control write = %#x", last)
		}
		if sim.RxPending() != 0 {
			t.Errorf("stale input survived the terminator flush")
		}
	}
}

func TestReadByteNoFlushOnData(t *testing.T) {
	sim := simaxi.NewUARTCore(testBase)
	c := newTestController(t, sim)
	sim.Feed('a', 'b')

	c.ReadByte()
	if len(sim.CtrlWrites) != 1 { // only the Configure flush
		t.Errorf("plain data byte triggered a control write: %#x", sim.CtrlWrites)
	}
	if sim.RxPending() != 1 {
		t.Errorf("queued input disturbed: %d pending", sim.RxPending())
	}
}
