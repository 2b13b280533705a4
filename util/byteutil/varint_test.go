package byteutil

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/require"
)

func TestLenUvarInt(t *testing.T) {
	tests := []struct {
		x    uint64
		want int
	}{
		{0, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{300, 2},
		{16383, 2},
		{16384, 3},
		{math.MaxInt64, 9},
		{math.MaxUint64, 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.x), func(t *testing.T) {
			require.Equal(t, tt.want, LenUvarInt(tt.x))
		})
	}
}

func TestDecodeVarint(t *testing.T) {
	tests := []struct {
		name  string
		buf   []byte
		pos   int
		want  int64
		wantN int
	}{
		{"zero", []byte{0x00}, 0, 0, 1},
		{"single byte", []byte{0x7f}, 0, 127, 1},
		{"multi byte", []byte{0xac, 0x02}, 0, 300, 2},
		{"offset", []byte{0xff, 0xff, 0xac, 0x02, 0x01}, 2, 300, 2},
		{"stops at terminator", []byte{0x01, 0x02}, 0, 1, 1},
		{"truncated", []byte{0xac}, 0, 44, 1},
		{"truncated two", []byte{0x80, 0x81}, 0, 128, 2},
		{"empty", []byte{}, 0, 0, 0},
		{"nil", nil, 0, 0, 0},
		{"pos at end", []byte{0x01}, 1, 0, 0},
		{"pos beyond end", []byte{0x01}, 5, 0, 0},
		{"negative pos", []byte{0x01}, -1, 0, 0},
		{"max int64", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}, 0, math.MaxInt64, 9},
		{"all bits", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, 0, -1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n := DecodeVarint(tt.buf, tt.pos)
			require.Equal(t, tt.want, v)
			require.Equal(t, tt.wantN, n)
		})
	}
}

func TestDecodeVarintCap(t *testing.T) {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = 0x80
	}
	_, n := DecodeVarint(buf, 0)
	require.Equal(t, MaxVarintLen, n)

	_, n = DecodeVarint(buf, 25)
	require.Equal(t, 7, n)
}

func TestDecodeVarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 256, 300, 16383, 16384, 1 << 32, math.MaxInt64}
	for i := 0; i < 1000; i++ {
		values = append(values, uint64(rand.Int63()))
		values = append(values, uint64(rand.Int63n(1<<uint(rand.Intn(62)+1))))
	}
	for _, v := range values {
		enc := varint.ToUvarint(v)
		got, n := DecodeVarint(enc, 0)
		require.Equal(t, int64(v), got, "value %d", v)
		require.Equal(t, len(enc), n, "value %d", v)
		require.Equal(t, LenUvarInt(v), n, "value %d", v)
	}
}

func TestClone(t *testing.T) {
	src := []byte{1, 2, 3}
	c := Clone(src)
	require.Equal(t, src, c)
	c[0] = 9
	require.Equal(t, byte(1), src[0])

	require.NotNil(t, Clone(nil))
	require.Len(t, Clone(nil), 0)
}

func TestRandomBytes(t *testing.T) {
	require.Len(t, RandomBytes(0), 0)
	require.Len(t, RandomBytes(17), 17)
}
