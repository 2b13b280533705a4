package byteutil

import (
	"math/rand"
)

// RandomBytes returns a slice of the given length filled with pseudo-random
// bytes.
func RandomBytes(length int) []byte {
	b := make([]byte, length)
	_, _ = rand.Read(b)
	return b
}

// Clone returns a copy of b that does not share its backing array. The result
// is never nil, an empty or nil b yields an empty slice.
func Clone(b []byte) []byte {
	res := make([]byte, len(b))
	copy(res, b)
	return res
}
