package tlv

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/eluv-io/errors-go"
)

// Option is a single field of a record: the field number, the wire type it was
// framed with and the raw value bytes. The length of Value depends on the wire
// type: 8 bytes for Varint (the decoded value, little-endian) and Fixed64, 4
// bytes for Fixed32 and the declared length for LengthDelimited.
type Option struct {
	Field uint8
	Type  WireType
	Value []byte
}

// Int64 returns the value of a Varint or Fixed64 option as signed integer.
// Returns false for other wire types.
func (o Option) Int64() (int64, bool) {
	u, ok := o.Uint64()
	return int64(u), ok
}

// Uint64 returns the value of a Varint or Fixed64 option as unsigned integer.
// Returns false for other wire types.
func (o Option) Uint64() (uint64, bool) {
	if (o.Type != Varint && o.Type != Fixed64) || len(o.Value) != 8 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(o.Value), true
}

// Uint32 returns the value of a Fixed32 option. Returns false for other wire
// types.
func (o Option) Uint32() (uint32, bool) {
	if o.Type != Fixed32 || len(o.Value) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(o.Value), true
}

// Bytes returns the raw value bytes.
func (o Option) Bytes() []byte {
	return o.Value
}

func (o Option) String() string {
	return fmt.Sprintf("%d/%s:%s", o.Field, o.Type, hex.EncodeToString(o.Value))
}

type jsonOption struct {
	Field uint8    `json:"field"`
	Type  WireType `json:"type"`
	Value string   `json:"value"`
}

// MarshalJSON encodes the option with its value as hex string.
func (o Option) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonOption{
		Field: o.Field,
		Type:  o.Type,
		Value: hex.EncodeToString(o.Value),
	})
}

// UnmarshalJSON decodes an option encoded with MarshalJSON.
func (o *Option) UnmarshalJSON(bts []byte) error {
	var jo jsonOption
	err := json.Unmarshal(bts, &jo)
	if err != nil {
		return err
	}
	val, err := hex.DecodeString(jo.Value)
	if err != nil {
		return errors.E("Option.UnmarshalJSON", errors.K.Invalid, err, "reason", "invalid hex value")
	}
	if val == nil {
		val = []byte{}
	}
	*o = Option{Field: jo.Field, Type: jo.Type, Value: val}
	return nil
}

// ---------------------------------------------------------------------------------------------------------------------

// Record is a decoded TLV record. ID is the decimal tag of the record, or
// "e<enterprise>.<subtype>" for vendor defined records. Options are in wire
// order.
type Record struct {
	ID      string   `json:"id"`
	Options []Option `json:"options"`
}

// Option returns the first option with the given field number.
func (r Record) Option(field uint8) (Option, bool) {
	for _, o := range r.Options {
		if o.Field == field {
			return o, true
		}
	}
	return Option{}, false
}

// All returns all options with the given field number in wire order.
func (r Record) All(field uint8) []Option {
	var res []Option
	for _, o := range r.Options {
		if o.Field == field {
			res = append(res, o)
		}
	}
	return res
}

// IsVendor returns true if the record is a vendor defined record.
func (r Record) IsVendor() bool {
	_, _, ok := ParseVendorID(r.ID)
	return ok
}

// Vendor returns the enterprise number and subtype of a vendor defined record.
func (r Record) Vendor() (enterprise, subtype int64, ok bool) {
	return ParseVendorID(r.ID)
}

func (r Record) String() string {
	sb := strings.Builder{}
	sb.WriteString(r.ID)
	sb.WriteString(" [")
	for i, o := range r.Options {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(o.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// Records is the ordered result of a parse.
type Records []Record

// Find returns the first record with the given id.
func (rs Records) Find(id string) (Record, bool) {
	for _, r := range rs {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
