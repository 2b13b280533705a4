package byteutil

// MaxVarintLen is the maximum number of bytes DecodeVarint scans for a single
// varint, regardless of continuation bits.
const MaxVarintLen = 10

// LenUvarInt returns the number of bytes needed to encode the given uint64 as
// varint.
func LenUvarInt(x uint64) int {
	i := 0
	for x >= 0x80 {
		x >>= 7
		i++
	}
	return i + 1
}

// DecodeVarint decodes a base-128 varint starting at buf[pos] and returns the
// value and the number of bytes consumed. The low 7 bits of each byte are
// accumulated little-endian, a set top bit (0x80) signals that more bytes
// follow.
//
// Decoding is permissive: at most MaxVarintLen bytes are scanned, and if the
// buffer ends before a terminating byte, the value accumulated so far is
// returned together with the number of bytes actually read. A pos outside the
// buffer consumes nothing and yields (0, 0).
func DecodeVarint(buf []byte, pos int) (int64, int) {
	if pos < 0 {
		return 0, 0
	}
	var x uint64
	n := 0
	for n < MaxVarintLen && pos+n < len(buf) {
		b := buf[pos+n]
		x |= uint64(b&0x7f) << (7 * uint(n))
		n++
		if b&0x80 == 0 {
			break
		}
	}
	return int64(x), n
}
