// Package hal builds peripheral controllers from a JSON board description.
// Each device type string maps to a registered builder; builders are
// installed by init() so adding a peripheral type is one file touching one
// registry.
package hal

import (
	"encoding/json"
	"fmt"
	"sync"

	"axicomm-go/drivers/axii2c"
	"axicomm-go/drivers/axispi"
	"axicomm-go/drivers/axiuart"
	"axicomm-go/errcode"
	"axicomm-go/mmio"
)

// BuildInput is provided to a device builder to construct one controller.
type BuildInput struct {
	Bus        mmio.Bus
	Delay      mmio.Delayer
	DeviceID   string
	Type       string
	ParamsJSON json.RawMessage
}

// Builder constructs a controller from config. The returned value must be
// one of the driver controller types.
type Builder interface {
	Build(in BuildInput) (any, error)
}

var (
	muBuilders sync.RWMutex
	builders   = map[string]Builder{}
)

// RegisterBuilder installs a builder for a given device type string.
// It panics on duplicate registration to catch mistakes at start-up.
func RegisterBuilder(deviceType string, b Builder) {
	muBuilders.Lock()
	defer muBuilders.Unlock()
	if deviceType == "" {
		panic("hal: empty device type for builder")
	}
	if _, exists := builders[deviceType]; exists {
		panic(fmt.Sprintf("hal: builder already registered for type %q", deviceType))
	}
	builders[deviceType] = b
}

// findBuilder looks up a registered builder by type.
func findBuilder(deviceType string) (Builder, bool) {
	muBuilders.RLock()
	defer muBuilders.RUnlock()
	b, ok := builders[deviceType]
	return b, ok
}

// Set holds the constructed controllers of one board, keyed by device id.
type Set struct {
	spi  map[string]*axispi.Controller
	i2c  map[string]*axii2c.Controller
	uart map[string]*axiuart.Controller
}

// Build constructs every device in cfg against the given register bus.
// Device ids must be unique across the whole config.
func Build(bus mmio.Bus, delay mmio.Delayer, cfg Config) (*Set, error) {
	s := &Set{
		spi:  map[string]*axispi.Controller{},
		i2c:  map[string]*axii2c.Controller{},
		uart: map[string]*axiuart.Controller{},
	}
	for _, d := range cfg.Devices {
		if d.ID == "" {
			return nil, &errcode.E{C: errcode.InvalidParams, Op: "hal.build", Msg: "device without id"}
		}
		if s.has(d.ID) {
			return nil, &errcode.E{C: errcode.DeviceInUse, Op: "hal.build", Msg: d.ID}
		}
		b, ok := findBuilder(d.Type)
		if !ok {
			return nil, &errcode.E{C: errcode.UnknownDevice, Op: "hal.build", Msg: d.Type}
		}
		ctrl, err := b.Build(BuildInput{
			Bus:        bus,
			Delay:      delay,
			DeviceID:   d.ID,
			Type:       d.Type,
			ParamsJSON: d.Params,
		})
		if err != nil {
			return nil, err
		}
		switch c := ctrl.(type) {
		case *axispi.Controller:
			s.spi[d.ID] = c
		case *axii2c.Controller:
			s.i2c[d.ID] = c
		case *axiuart.Controller:
			s.uart[d.ID] = c
		default:
			return nil, &errcode.E{C: errcode.Error, Op: "hal.build",
				Msg: fmt.Sprintf("builder %q returned %T", d.Type, ctrl)}
		}
	}
	return s, nil
}

func (s *Set) has(id string) bool {
	_, a := s.spi[id]
	_, b := s.i2c[id]
	_, c := s.uart[id]
	return a || b || c
}

// SPI returns the SPI controller with the given id, or nil if absent.
func (s *Set) SPI(id string) *axispi.Controller { return s.spi[id] }

// I2C returns the I2C controller with the given id, or nil if absent.
func (s *Set) I2C(id string) *axii2c.Controller { return s.i2c[id] }

// UART returns the UART controller with the given id, or nil if absent.
func (s *Set) UART(id string) *axiuart.Controller { return s.uart[id] }
