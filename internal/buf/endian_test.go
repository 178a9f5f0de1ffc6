package buf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestU16LE(t *testing.T) {
	require.Equal(t, uint16(0xEF53), U16LE([]byte{0x53, 0xEF}))
	require.Equal(t, uint16(0), U16LE([]byte{0x53}))
	require.Equal(t, uint16(0), U16LE(nil))
}

func TestU32LE(t *testing.T) {
	require.Equal(t, uint32(0x04030201), U32LE([]byte{1, 2, 3, 4}))
	require.Equal(t, uint32(0), U32LE([]byte{1, 2, 3}))
}

func TestPutRoundTrip(t *testing.T) {
	b := make([]byte, 8)
	PutU32LE(b, 0, 0xDEADBEEF)
	PutU16LE(b, 4, 0xEF53)
	require.Equal(t, uint32(0xDEADBEEF), U32LE(b[0:]))
	require.Equal(t, uint16(0xEF53), U16LE(b[4:]))

	// out-of-bounds writes must not panic or mutate
	PutU32LE(b, 6, 1)
	require.Equal(t, []byte{0, 0}, b[6:8])
	PutU16LE(b, -1, 1)
}

func TestSliceBounds(t *testing.T) {
	b := []byte{1, 2, 3, 4}

	s, ok := Slice(b, 1, 2)
	require.True(t, ok)
	require.Equal(t, []byte{2, 3}, s)

	_, ok = Slice(b, 3, 2)
	require.False(t, ok)
	_, ok = Slice(b, -1, 1)
	require.False(t, ok)

	require.True(t, Has(b, 0, 4))
	require.False(t, Has(b, 0, 5))
}
