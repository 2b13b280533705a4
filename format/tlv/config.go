package tlv

import (
	"math"
	"reflect"
	"strconv"

	"github.com/eluv-io/errors-go"
	"github.com/mitchellh/mapstructure"
)

// DefaultStartOffset is the number of preamble bytes skipped before the first
// record.
const DefaultStartOffset = 4

// Config is the configuration of a Parser.
type Config struct {
	StartOffset  uint16 `json:"start_offset"`  // offset of the first record in the payload
	VendorEscape int64  `json:"vendor_escape"` // record tag announcing a vendor defined record
	Enterprise   int64  `json:"enterprise"`    // enterprise number of vendor defined records
	Workers      int    `json:"workers"`       // max parallelism of ParseBatch
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StartOffset:  DefaultStartOffset,
		VendorEscape: VendorEscape,
		Enterprise:   Enterprise,
		Workers:      4,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	e := errors.Template("tlv.Config", errors.K.Invalid)
	if c.VendorEscape <= 0 {
		return e("reason", "vendor escape must be positive", "vendor_escape", c.VendorEscape)
	}
	if c.Enterprise < 0 {
		return e("reason", "enterprise number must not be negative", "enterprise", c.Enterprise)
	}
	return nil
}

// UnmarshalMap decodes the configuration from a generic map as produced by
// unmarshaling JSON or YAML. Keys are the json tags of Config, missing keys
// keep their default values.
func (c *Config) UnmarshalMap(m map[string]interface{}) error {
	e := errors.Template("tlv.Config", errors.K.Invalid)

	cfg := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       checkUint16,
	})
	if err != nil {
		return e(err)
	}
	err = decoder.Decode(m)
	if err != nil {
		return e(err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = DefaultConfig().Workers
	}
	err = cfg.Validate()
	if err != nil {
		return err
	}
	*c = cfg
	return nil
}

// checkUint16 rejects values that do not fit into uint16 fields instead of
// letting them wrap around.
func checkUint16(_ reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if t.Kind() != reflect.Uint16 || data == nil {
		return data, nil
	}
	e := errors.Template("tlv.Config", errors.K.Invalid, "value", data)

	var n float64
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n = float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		n = v.Float()
		if n != math.Trunc(n) {
			return nil, e("reason", "not an integer")
		}
	case reflect.String:
		i, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return nil, e(err, "reason", "not an integer")
		}
		n = float64(i)
	default:
		return data, nil
	}
	if n < 0 || n > math.MaxUint16 {
		return nil, e("reason", "out of range", "min", 0, "max", math.MaxUint16)
	}
	return data, nil
}
