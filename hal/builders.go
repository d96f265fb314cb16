package hal

import (
	"encoding/json"

	"axicomm-go/drivers/axii2c"
	"axicomm-go/drivers/axispi"
	"axicomm-go/drivers/axiuart"
	"axicomm-go/errcode"
)

// Builder registration for the three AXI peripheral types.
func init() {
	RegisterBuilder("axi-quadspi", quadSPIBuilder{})
	RegisterBuilder("axi-iic", iicBuilder{})
	RegisterBuilder("axi-uartlite", uartLiteBuilder{})
}

func decodeParams(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return &errcode.E{C: errcode.InvalidParams, Op: "hal.params", Msg: "missing params"}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &errcode.E{C: errcode.InvalidParams, Op: "hal.params", Err: err}
	}
	return nil
}

type quadSPIParams struct {
	Base      BaseAddr `json:"base"`
	LSBFirst  bool     `json:"lsb_first,omitempty"`
	ClockFreq uint32   `json:"clock_freq,omitempty"`
	CPOL      bool     `json:"cpol,omitempty"`
	ClockEdge bool     `json:"clock_edge,omitempty"`
}

type quadSPIBuilder struct{}

func (quadSPIBuilder) Build(in BuildInput) (any, error) {
	var p quadSPIParams
	if err := decodeParams(in.ParamsJSON, &p); err != nil {
		return nil, err
	}
	if p.Base == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "hal.params", Msg: in.DeviceID + ": base required"}
	}
	c := axispi.New(in.Bus, uint32(p.Base))
	if err := c.Configure(axispi.Config{
		LSBFirst:  p.LSBFirst,
		ClockFreq: p.ClockFreq,
		CPOL:      p.CPOL,
		ClockEdge: p.ClockEdge,
	}); err != nil {
		return nil, err
	}
	return c, nil
}

type iicParams struct {
	Base      BaseAddr `json:"base"`
	ClockFreq uint32   `json:"clock_freq,omitempty"`
}

type iicBuilder struct{}

func (iicBuilder) Build(in BuildInput) (any, error) {
	var p iicParams
	if err := decodeParams(in.ParamsJSON, &p); err != nil {
		return nil, err
	}
	if p.Base == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "hal.params", Msg: in.DeviceID + ": base required"}
	}
	c := axii2c.New(in.Bus, uint32(p.Base), in.Delay)
	if err := c.Configure(axii2c.Config{ClockFreq: p.ClockFreq}); err != nil {
		return nil, err
	}
	return c, nil
}

type uartLiteParams struct {
	Base     BaseAddr `json:"base"`
	BaudRate uint32   `json:"baud_rate,omitempty"`
}

type uartLiteBuilder struct{}

func (uartLiteBuilder) Build(in BuildInput) (any, error) {
	var p uartLiteParams
	if err := decodeParams(in.ParamsJSON, &p); err != nil {
		return nil, err
	}
	if p.Base == 0 {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "hal.params", Msg: in.DeviceID + ": base required"}
	}
	c := axiuart.New(in.Bus, uint32(p.Base))
	if err := c.Configure(axiuart.Config{BaudRate: p.BaudRate}); err != nil {
		return nil, err
	}
	return c, nil
}
