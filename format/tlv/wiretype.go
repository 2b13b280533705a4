package tlv

import (
	"strconv"
	"strings"

	"github.com/eluv-io/errors-go"
)

// WireType is the 3-bit code in the low bits of an option tag that tells how
// the option value is framed.
type WireType uint8

const (
	Varint          WireType = 0
	Fixed64         WireType = 1
	LengthDelimited WireType = 2
	StartGroup      WireType = 3
	EndGroup        WireType = 4
	Fixed32         WireType = 5
)

var wireTypeNames = map[WireType]string{
	Varint:          "varint",
	Fixed64:         "fixed64",
	LengthDelimited: "length-delimited",
	StartGroup:      "start-group",
	EndGroup:        "end-group",
	Fixed32:         "fixed32",
}

// WireTypeOf extracts the wire type from an option tag.
func WireTypeOf(tag int64) WireType {
	return WireType(tag & 0x7)
}

// FieldNumberOf extracts the field number from an option tag. Field numbers
// are limited to 8 bits, higher bits are dropped.
func FieldNumberOf(tag int64) uint8 {
	return uint8(tag >> 3)
}

// Supported returns true if options of this wire type can be decoded. Groups
// are deprecated and not supported, neither are the undefined codes 6 and 7.
func (w WireType) Supported() bool {
	switch w {
	case Varint, Fixed64, LengthDelimited, Fixed32:
		return true
	}
	return false
}

func (w WireType) String() string {
	if s, ok := wireTypeNames[w]; ok {
		return s
	}
	return "WireType(" + strconv.Itoa(int(w)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (w WireType) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts the names
// returned by String.
func (w *WireType) UnmarshalText(text []byte) error {
	s := string(text)
	for wt, name := range wireTypeNames {
		if name == s {
			*w = wt
			return nil
		}
	}
	if strings.HasPrefix(s, "WireType(") && strings.HasSuffix(s, ")") {
		n, err := strconv.ParseUint(s[len("WireType("):len(s)-1], 10, 3)
		if err == nil {
			*w = WireType(n)
			return nil
		}
	}
	return errors.E("WireType.UnmarshalText", errors.K.Invalid, "reason", "invalid wire type", "wire_type", s)
}
