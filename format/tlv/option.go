package tlv

import (
	"encoding/binary"

	"github.com/eluv-io/errors-go"
)

// decodeOption decodes one option at the cursor position. remaining is the
// number of bytes left in the enclosing record, it is returned decremented by
// the bytes consumed.
//
// The boolean result is false for unsupported wire types: nothing but the tag
// is consumed and the caller must stop decoding options for the record.
//
// Values that extend past the end of the buffer yield an error.
func decodeOption(c *cursor, remaining int64, record string) (Option, int64, bool, error) {
	tagPos := c.pos
	tag, n := c.varint()
	remaining -= int64(n)

	opt := Option{
		Field: FieldNumberOf(tag),
		Type:  WireTypeOf(tag),
	}

	switch opt.Type {
	case Varint:
		v, n := c.varint()
		remaining -= int64(n)
		opt.Value = make([]byte, 8)
		binary.LittleEndian.PutUint64(opt.Value, uint64(v))
	case Fixed64, Fixed32:
		size := int64(8)
		if opt.Type == Fixed32 {
			size = 4
		}
		val, ok := c.take(size)
		if !ok {
			return Option{}, remaining, false, errOutOfBounds(c, record, opt, size)
		}
		opt.Value = val
		remaining -= size
	case LengthDelimited:
		l, n := c.varint()
		remaining -= int64(n)
		val, ok := c.take(l)
		if !ok {
			return Option{}, remaining, false, errOutOfBounds(c, record, opt, l)
		}
		opt.Value = val
		remaining -= l
	default:
		log.Debug("skipping option with unsupported wire type",
			"record", record,
			"field", opt.Field,
			"wire_type", opt.Type,
			"pos", tagPos)
		return Option{}, remaining, false, nil
	}
	return opt, remaining, true, nil
}

func errOutOfBounds(c *cursor, record string, opt Option, need int64) error {
	return errors.E("tlv.decodeOption", errors.K.Invalid,
		"reason", "value out of bounds",
		"record", record,
		"field", opt.Field,
		"wire_type", opt.Type,
		"pos", c.pos,
		"need", need,
		"have", c.available())
}
