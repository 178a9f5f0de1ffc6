package ext2

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/sweepkit/internal/testutil"
)

func TestOpen_ValidImage(t *testing.T) {
	spec := testutil.ImageSpec{
		Blocks:    64,
		Allocated: []uint32{10, 20, 30},
		Content:   0xFF,
	}
	path := testutil.WriteImage(t, spec)

	fs, err := Open(path)
	require.NoError(t, err)
	defer fs.Close()

	require.Equal(t, 1024, fs.BlockSize())
	require.Equal(t, uint64(1), fs.FirstDataBlock())
	require.Equal(t, uint64(64), fs.BlockCount())

	for _, blk := range spec.MetadataBlocks() {
		require.True(t, fs.IsAllocated(uint64(blk)), "metadata block %d", blk)
	}
	require.True(t, fs.IsAllocated(10))
	require.True(t, fs.IsAllocated(20))
	require.True(t, fs.IsAllocated(30))
	require.False(t, fs.IsAllocated(11))
	require.False(t, fs.IsAllocated(63))

	st := fs.Stats()
	require.Equal(t, uint64(64), st.BlockCount)
	require.True(t, st.Clean)
	require.Equal(t, uint32(1), st.GroupCount)
	require.Equal(t, fs.FreeBlockCount(), st.FreeBlocks)
}

func TestOpen_MultiGroup(t *testing.T) {
	spec := testutil.ImageSpec{
		Blocks:         40,
		BlocksPerGroup: 16,
		Allocated:      []uint32{20, 39},
	}
	path := testutil.WriteImage(t, spec)

	fs, err := Open(path)
	require.NoError(t, err)
	defer fs.Close()

	require.Equal(t, uint32(3), fs.Stats().GroupCount)
	require.True(t, fs.IsAllocated(20), "allocated block in group 1")
	require.True(t, fs.IsAllocated(39), "allocated block in group 2")
	require.False(t, fs.IsAllocated(21))
	require.False(t, fs.IsAllocated(38))

	counted := fs.blocks.FreeInRange(fs.FirstDataBlock(), fs.BlockCount())
	require.Equal(t, fs.FreeBlockCount(), counted)
}

func TestOpen_FreeCountMatchesBitmap(t *testing.T) {
	spec := testutil.ImageSpec{Blocks: 32, Allocated: []uint32{8, 9}}
	path := testutil.WriteImage(t, spec)

	fs, err := Open(path)
	require.NoError(t, err)
	defer fs.Close()

	counted := fs.blocks.FreeInRange(fs.FirstDataBlock(), fs.BlockCount())
	require.Equal(t, fs.FreeBlockCount(), counted)
}

func TestOpen_BadMagic(t *testing.T) {
	img := testutil.BuildImage(testutil.ImageSpec{Blocks: 16})
	img[1024+56] = 0x00
	img[1024+57] = 0x00
	path := filepath.Join(t.TempDir(), "bad.img")
	require.NoError(t, os.WriteFile(path, img, 0o600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpen_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.img")
	require.NoError(t, os.WriteFile(path, make([]byte, 512), 0o600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.img"))
	require.Error(t, err)
}

func TestReadWriteBlock(t *testing.T) {
	path := testutil.WriteImage(t, testutil.ImageSpec{Blocks: 16, Content: 0xAB})
	fs, err := Open(path)
	require.NoError(t, err)
	defer fs.Close()

	got := make([]byte, fs.BlockSize())
	require.NoError(t, fs.ReadBlock(8, got))
	require.Equal(t, bytes.Repeat([]byte{0xAB}, fs.BlockSize()), got)

	want := bytes.Repeat([]byte{0x00}, fs.BlockSize())
	require.NoError(t, fs.WriteBlock(8, want))
	require.NoError(t, fs.ReadBlock(8, got))
	require.Equal(t, want, got)
}

func TestBlockIO_Bounds(t *testing.T) {
	path := testutil.WriteImage(t, testutil.ImageSpec{Blocks: 16})
	fs, err := Open(path)
	require.NoError(t, err)
	defer fs.Close()

	p := make([]byte, fs.BlockSize())
	require.ErrorIs(t, fs.ReadBlock(16, p), ErrBlockRange)
	require.ErrorIs(t, fs.WriteBlock(99, p), ErrBlockRange)
	require.ErrorIs(t, fs.DiscardBlock(16), ErrBlockRange)

	short := make([]byte, 100)
	require.ErrorIs(t, fs.ReadBlock(8, short), ErrBufferSize)
	require.ErrorIs(t, fs.WriteBlock(8, short), ErrBufferSize)
}

func TestDiscardBlock(t *testing.T) {
	path := testutil.WriteImage(t, testutil.ImageSpec{Blocks: 16, Content: 0xFF})
	fs, err := Open(path)
	require.NoError(t, err)
	defer fs.Close()

	if err := fs.DiscardBlock(8); err != nil {
		if errors.Is(err, ErrDiscardUnsupported) {
			t.Skip("discard unsupported on this platform")
		}
		// Punch-hole may be rejected by the filesystem backing TempDir.
		t.Skipf("discard rejected: %v", err)
	}

	// A punched hole reads back as zeros.
	got := make([]byte, fs.BlockSize())
	require.NoError(t, fs.ReadBlock(8, got))
	require.Equal(t, make([]byte, fs.BlockSize()), got)
}

func TestClose_Idempotent(t *testing.T) {
	path := testutil.WriteImage(t, testutil.ImageSpec{Blocks: 16})
	fs, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, fs.Close())
	require.NoError(t, fs.Close())
}
