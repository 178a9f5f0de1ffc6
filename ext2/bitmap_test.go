package ext2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmap_LSBFirst(t *testing.T) {
	// One group, 16 items starting at 1. Byte 0 = 0b00000101 marks
	// items 1 and 3 (bit 0 covers the first item).
	bm := &Bitmap{
		first:    1,
		count:    17,
		perGroup: 16,
		pages:    [][]byte{{0x05, 0x00}},
	}
	require.True(t, bm.Test(1))
	require.False(t, bm.Test(2))
	require.True(t, bm.Test(3))
	require.False(t, bm.Test(4))
	require.False(t, bm.Test(9))
}

func TestBitmap_OutOfRangeIsAllocated(t *testing.T) {
	bm := &Bitmap{first: 1, count: 9, perGroup: 8, pages: [][]byte{{0x00}}}
	require.True(t, bm.Test(0), "below first")
	require.False(t, bm.Test(8))
	require.True(t, bm.Test(9), "at count")
	require.True(t, bm.Test(1<<40), "far beyond")
}

func TestBitmap_MultiGroup(t *testing.T) {
	// Two groups of 8. Item 0..7 in page 0, 8..15 in page 1.
	bm := &Bitmap{
		first:    0,
		count:    16,
		perGroup: 8,
		pages:    [][]byte{{0xFF}, {0x01}},
	}
	for i := uint64(0); i < 8; i++ {
		require.True(t, bm.Test(i))
	}
	require.True(t, bm.Test(8))
	for i := uint64(9); i < 16; i++ {
		require.False(t, bm.Test(i))
	}
}

func TestBitmap_FreeInRange(t *testing.T) {
	bm := &Bitmap{first: 0, count: 8, perGroup: 8, pages: [][]byte{{0x0F}}}
	require.Equal(t, uint64(4), bm.FreeInRange(0, 8))
	require.Equal(t, uint64(0), bm.FreeInRange(0, 4))
	require.Equal(t, uint64(2), bm.FreeInRange(4, 6))
}
