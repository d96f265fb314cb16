package hal

import (
	"encoding/json"
	"strconv"

	"axicomm-go/errcode"
)

// Config is the JSON device map for one board image.
type Config struct {
	Devices []Device `json:"devices"`
}

// Device describes one peripheral instance to be constructed.
type Device struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ParseConfig decodes a JSON board description.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "hal.parse", Err: err}
	}
	return cfg, nil
}

// BaseAddr is a 32-bit physical address that accepts either a JSON number
// or a hex string ("0x41E00000") — board files from hardware hand-off
// sheets use hex.
type BaseAddr uint32

func (b *BaseAddr) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return err
		}
		*b = BaseAddr(v)
		return nil
	}
	var v uint32
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = BaseAddr(v)
	return nil
}
