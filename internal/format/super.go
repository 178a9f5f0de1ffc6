package format

import (
	"fmt"

	"github.com/joshuapare/sweepkit/internal/buf"
)

// Superblock captures the subset of the ext2 superblock required to sweep
// free blocks. The diagram below highlights the offsets we care about.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x000   4    s_inodes_count
//	 0x004   4    s_blocks_count
//	 0x00C   4    s_free_blocks_count
//	 0x014   4    s_first_data_block (1 for 1K blocks, 0 otherwise)
//	 0x018   4    s_log_block_size (block size = 1024 << value)
//	 0x020   4    s_blocks_per_group
//	 0x028   4    s_inodes_per_group
//	 0x038   2    s_magic (0xEF53)
//	 0x03A   2    s_state
//	 0x04C   4    s_rev_level
//
// ext2 stores the superblock in little-endian form.
type Superblock struct {
	InodesCount     uint32
	BlocksCount     uint32
	FreeBlocksCount uint32
	FirstDataBlock  uint32
	LogBlockSize    uint32
	BlocksPerGroup  uint32
	InodesPerGroup  uint32
	State           uint16
	RevLevel        uint32
}

// BlockSize returns the filesystem block size in bytes.
func (sb *Superblock) BlockSize() int {
	return MinBlockSize << sb.LogBlockSize
}

// GroupCount returns the number of block groups.
func (sb *Superblock) GroupCount() uint32 {
	data := sb.BlocksCount - sb.FirstDataBlock
	return (data + sb.BlocksPerGroup - 1) / sb.BlocksPerGroup
}

// ParseSuperblock validates and extracts key fields from a superblock
// buffer. b must hold the SuperblockSize bytes starting at byte 1024 of
// the device.
func ParseSuperblock(b []byte) (Superblock, error) {
	if len(b) < SuperblockSize {
		return Superblock{}, fmt.Errorf("superblock: %w", ErrTruncated)
	}
	if buf.U16LE(b[SBMagicOffset:]) != SuperMagic {
		return Superblock{}, fmt.Errorf("superblock: %w", ErrBadMagic)
	}

	sb := Superblock{
		InodesCount:     buf.U32LE(b[SBInodesCountOffset:]),
		BlocksCount:     buf.U32LE(b[SBBlocksCountOffset:]),
		FreeBlocksCount: buf.U32LE(b[SBFreeBlocksCountOffset:]),
		FirstDataBlock:  buf.U32LE(b[SBFirstDataBlockOffset:]),
		LogBlockSize:    buf.U32LE(b[SBLogBlockSizeOffset:]),
		BlocksPerGroup:  buf.U32LE(b[SBBlocksPerGroupOffset:]),
		InodesPerGroup:  buf.U32LE(b[SBInodesPerGroupOffset:]),
		State:           buf.U16LE(b[SBStateOffset:]),
		RevLevel:        buf.U32LE(b[SBRevLevelOffset:]),
	}

	switch {
	case sb.LogBlockSize > MaxLogBlockSize:
		return Superblock{}, fmt.Errorf("superblock: log_block_size=%d: %w", sb.LogBlockSize, ErrBadGeometry)
	case sb.BlocksPerGroup == 0:
		return Superblock{}, fmt.Errorf("superblock: blocks_per_group=0: %w", ErrBadGeometry)
	case sb.BlocksCount == 0 || sb.FirstDataBlock >= sb.BlocksCount:
		return Superblock{}, fmt.Errorf("superblock: first_data_block=%d blocks_count=%d: %w",
			sb.FirstDataBlock, sb.BlocksCount, ErrBadGeometry)
	}

	return sb, nil
}
