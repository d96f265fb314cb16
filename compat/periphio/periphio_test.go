package periphio

import (
	"bytes"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/spi"

	"axicomm-go/drivers/axii2c"
	"axicomm-go/drivers/axispi"
	"axicomm-go/internal/simaxi"
	"axicomm-go/mmio"
)

const (
	spiBase = 0x41E00000
	i2cBase = 0x41600000
)

func newSPIConn(t *testing.T, sim *simaxi.SPICore) *SPIConn {
	t.Helper()
	c := axispi.New(sim, spiBase)
	if err := c.Configure(axispi.Config{}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	return NewSPI(c, 0, "axi-quadspi0")
}

func TestI2CBus(t *testing.T) {
	sim := simaxi.NewI2CCore(i2cBase)
	sim.EchoWrites = true
	c := axii2c.New(sim, i2cBase, mmio.NopDelayer{})
	if err := c.Configure(axii2c.Config{ClockFreq: 400_000}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	bus := NewI2C(c, "axi-iic0")

	if bus.String() != "axi-iic0" {
		t.Errorf("String = %q", bus.String())
	}
	if err := bus.SetSpeed(0); err != nil {
		t.Errorf("SetSpeed: %v", err)
	}

	r := make([]byte, 3)
	if err := bus.Tx(0x2D, []byte{4, 5, 6}, r); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !bytes.Equal(r, []byte{4, 5, 6}) {
		t.Errorf("read back %x", r)
	}
}

func TestSPIConn(t *testing.T) {
	sim := simaxi.NewSPICore(spiBase)
	sim.Respond = func(b byte) byte { return ^b }
	cn := newSPIConn(t, sim)

	if cn.Duplex() != conn.Full {
		t.Errorf("Duplex = %v, want full", cn.Duplex())
	}

	w := []byte{0x0F, 0xF0}
	r := make([]byte, 2)
	if err := cn.Tx(w, r); err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if !bytes.Equal(r, []byte{0xF0, 0x0F}) {
		t.Errorf("rx = %x", r)
	}
	if !bytes.Equal(w, []byte{0x0F, 0xF0}) {
		t.Errorf("w clobbered: %x", w)
	}
}

func TestSPITxPackets(t *testing.T) {
	sim := simaxi.NewSPICore(spiBase)
	cn := newSPIConn(t, sim)

	r := make([]byte, 2)
	pkts := []spi.Packet{
		{W: []byte{1, 2}, R: r},
		{W: []byte{3}},
	}
	if err := cn.TxPackets(pkts); err != nil {
		t.Fatalf("TxPackets: %v", err)
	}
	if !bytes.Equal(r, []byte{1, 2}) {
		t.Errorf("packet rx = %x", r)
	}

	bad := []spi.Packet{{W: []byte{1}, BitsPerWord: 16}}
	if err := cn.TxPackets(bad); err == nil {
		t.Errorf("16 bits per word accepted")
	}
}
