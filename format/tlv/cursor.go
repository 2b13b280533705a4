package tlv

import (
	"github.com/eluv-io/tlv-go/util/byteutil"
)

// cursor is the read position in a payload. It is owned by a single parse call
// and handed by pointer to the decode functions, which advance it.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.buf)
}

// available returns the number of bytes left after the current position.
func (c *cursor) available() int {
	if c.pos >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.pos
}

// varint decodes a varint at the current position and advances past the bytes
// it consumed.
func (c *cursor) varint() (int64, int) {
	v, n := byteutil.DecodeVarint(c.buf, c.pos)
	c.pos += n
	return v, n
}

// take copies the next n bytes and advances past them. Returns false without
// moving if fewer than n bytes are left.
func (c *cursor) take(n int64) ([]byte, bool) {
	if n < 0 || n > int64(c.available()) {
		return nil, false
	}
	if n == 0 {
		return []byte{}, true
	}
	end := c.pos + int(n)
	res := byteutil.Clone(c.buf[c.pos:end])
	c.pos = end
	return res, true
}
