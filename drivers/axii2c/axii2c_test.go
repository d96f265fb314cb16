package axii2c

import (
	"bytes"
	"reflect"
	"testing"

	"axicomm-go/internal/simaxi"
	"axicomm-go/mmio"

	"tinygo.org/x/drivers"
)

// Compile-time check.
var _ drivers.I2C = (*Bus)(nil)

const (
	testBase = 0x41600000
	testAddr = 0x48
)

func newTestController(t *testing.T, sim *simaxi.I2CCore, budget uint32) *Controller {
	t.Helper()
	c := New(sim, testBase, mmio.NopDelayer{})
	if err := c.Configure(Config{ClockFreq: 100_000, PollBudget: budget}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return c
}

func TestConfigureInitSequence(t *testing.T) {
	sim := simaxi.NewI2CCore(testBase)
	newTestController(t, sim, 0)

	want := []uint32{0x00, crTxFIFOReset, crEnable}
	if !reflect.DeepEqual(sim.CRWrites, want) {
		t.Errorf("CR writes = %#x, want %#x", sim.CRWrites, want)
	}
	if sim.PIRQ != rxPIRQMax {
		t.Errorf("RX PIRQ = %#x, want %#x", sim.PIRQ, uint32(rxPIRQMax))
	}
}

func TestReadFull(t *testing.T) {
	sim := simaxi.NewI2CCore(testBase)
	sim.Mem = []byte{0xDE, 0xAD, 0xBE, 0xEF}
	c := newTestController(t, sim, 0)

	buf := make([]byte, 4)
	n, err := c.Read(testAddr, buf, true)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4 {
		t.Fatalf("Read count = %d, want 4", n)
	}
	if !bytes.Equal(buf, sim.Mem) {
		t.Fatalf("buffer = %x, want %x", buf, sim.Mem)
	}

	want := []uint32{
		tagStart | testAddr<<1 | dirRead,
		tagStop + 4,
	}
	if !reflect.DeepEqual(sim.Commands, want) {
		t.Errorf("command stream = %#x, want %#x", sim.Commands, want)
	}
}

func TestReadShortOnStall(t *testing.T) {
	const budget = 8
	sim := simaxi.NewI2CCore(testBase)
	sim.Mem = []byte{1, 2, 3, 4, 5}
	sim.StallAfter = 2
	c := newTestController(t, sim, budget)

	buf := make([]byte, 5)
	n, err := c.Read(testAddr, buf, true)
	if err != ErrTimeout {
		t.Fatalf("Read err = %v, want ErrTimeout", err)
	}
	if n != 2 {
		t.Fatalf("Read count = %d, want short count 2", n)
	}
	if !bytes.Equal(buf[:2], []byte{1, 2}) {
		t.Errorf("delivered prefix = %x, want 0102", buf[:2])
	}

	// The wait is bounded: one probe per delivered byte plus a full
	// countdown for the byte that never arrived.
	if want := 2 + (budget + 1); sim.StatusReads != want {
		t.Errorf("status probes = %d, want %d", sim.StatusReads, want)
	}

	// The stall re-initialises the core: disable, depth, flush, enable.
	tail := sim.CRWrites[len(sim.CRWrites)-3:]
	if !reflect.DeepEqual(tail, []uint32{0x00, crTxFIFOReset, crEnable}) {
		t.Errorf("recovery CR writes = %#x", tail)
	}
	if sim.PIRQ != rxPIRQMax {
		t.Errorf("recovery RX PIRQ = %#x, want %#x", sim.PIRQ, uint32(rxPIRQMax))
	}
}

func TestWrite(t *testing.T) {
	sim := simaxi.NewI2CCore(testBase)
	c := newTestController(t, sim, 0)

	data := []byte{0x10, 0x20, 0x30}
	n, err := c.Write(testAddr, data, true)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 3 {
		t.Fatalf("Write count = %d, want 3", n)
	}
	if !bytes.Equal(sim.Received, data) {
		t.Errorf("slave received %x, want %x", sim.Received, data)
	}

	want := []uint32{
		tagStart | testAddr<<1,
		0x10,
		0x20,
		tagStop | 0x30,
	}
	if !reflect.DeepEqual(sim.Commands, want) {
		t.Errorf("command stream = %#x, want %#x", sim.Commands, want)
	}

	// The write path never waits on status.
	if sim.StatusReads != 0 {
		t.Errorf("write path made %d status probes, want 0", sim.StatusReads)
	}
}

func TestStopParamDoesNotChangeSequence(t *testing.T) {
	streams := make([][]uint32, 2)
	for i, stop := range []bool{false, true} {
		sim := simaxi.NewI2CCore(testBase)
		sim.Mem = []byte{7, 8}
		c := newTestController(t, sim, 0)

		if _, err := c.Write(testAddr, []byte{1, 2}, stop); err != nil {
			t.Fatalf("Write(stop=%v): %v", stop, err)
		}
		if _, err := c.Read(testAddr, make([]byte, 2), stop); err != nil {
			t.Fatalf("Read(stop=%v): %v", stop, err)
		}
		streams[i] = sim.Commands
	}
	if !reflect.DeepEqual(streams[0], streams[1]) {
		t.Errorf("stop flag changed the command stream: %#x vs %#x", streams[0], streams[1])
	}
}

func TestBurstBounds(t *testing.T) {
	sim := simaxi.NewI2CCore(testBase)
	c := newTestController(t, sim, 0)

	if _, err := c.Read(testAddr, nil, true); err != ErrNoData {
		t.Errorf("empty read err = %v, want ErrNoData", err)
	}
	if _, err := c.Write(testAddr, nil, true); err != ErrNoData {
		t.Errorf("empty write err = %v, want ErrNoData", err)
	}
	big := make([]byte, 256)
	if _, err := c.Read(testAddr, big, true); err != ErrLength {
		t.Errorf("oversize read err = %v, want ErrLength", err)
	}
	if _, err := c.Write(testAddr, big, true); err != ErrLength {
		t.Errorf("oversize write err = %v, want ErrLength", err)
	}
}

func TestRoundTripEcho(t *testing.T) {
	for _, n := range []int{1, 2, 16, 255} {
		sim := simaxi.NewI2CCore(testBase)
		sim.EchoWrites = true
		c := newTestController(t, sim, 0)

		out := make([]byte, n)
		for i := range out {
			out[i] = byte(255 - i)
		}
		if got, err := c.Write(testAddr, out, true); err != nil || got != n {
			t.Fatalf("n=%d: Write = (%d, %v)", n, got, err)
		}
		in := make([]byte, n)
		if got, err := c.Read(testAddr, in, true); err != nil || got != n {
			t.Fatalf("n=%d: Read = (%d, %v)", n, got, err)
		}
		if !bytes.Equal(in, out) {
			t.Fatalf("n=%d: round trip mismatch", n)
		}
	}
}

func TestBusAdapter(t *testing.T) {
	sim := simaxi.NewI2CCore(testBase)
	sim.EchoWrites = true
	c := newTestController(t, sim, 0)
	bus := c.I2C()

	r := make([]byte, 2)
	if err := bus.Tx(testAddr, []byte{0xAB, 0xCD}, r); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !bytes.Equal(r, []byte{0xAB, 0xCD}) {
		t.Errorf("Tx read back %x", r)
	}

	// A short read surfaces as an error, not a silent truncation.
	sim2 := simaxi.NewI2CCore(testBase)
	sim2.Mem = []byte{1}
	sim2.StallAfter = 1
	c2 := newTestController(t, sim2, 4)
	if err := c2.I2C().Tx(testAddr, nil, make([]byte, 3)); err != ErrTimeout {
		t.Errorf("short Tx err = %v, want ErrTimeout", err)
	}
}
