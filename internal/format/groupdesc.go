package format

import (
	"fmt"

	"github.com/joshuapare/sweepkit/internal/buf"
)

// GroupDesc is one entry of the block group descriptor table. The table
// lives in the block immediately after the one holding the superblock.
//
//	Offset  Size  Description
//	------  ----  -------------------------------------------
//	 0x00    4    bg_block_bitmap (block number of the bitmap)
//	 0x04    4    bg_inode_bitmap
//	 0x08    4    bg_inode_table
//	 0x0C    2    bg_free_blocks_count
//	 0x0E    2    bg_free_inodes_count
//	 0x10    2    bg_used_dirs_count
//
// The remaining 14 bytes are padding/reserved in ext2 rev 0/1.
type GroupDesc struct {
	BlockBitmap     uint32
	InodeBitmap     uint32
	InodeTable      uint32
	FreeBlocksCount uint16
	FreeInodesCount uint16
	UsedDirsCount   uint16
}

// ParseGroupDesc decodes a single 32-byte descriptor.
func ParseGroupDesc(b []byte) (GroupDesc, error) {
	if len(b) < GroupDescSize {
		return GroupDesc{}, fmt.Errorf("group descriptor: %w", ErrTruncated)
	}
	return GroupDesc{
		BlockBitmap:     buf.U32LE(b[BGBlockBitmapOffset:]),
		InodeBitmap:     buf.U32LE(b[BGInodeBitmapOffset:]),
		InodeTable:      buf.U32LE(b[BGInodeTableOffset:]),
		FreeBlocksCount: buf.U16LE(b[BGFreeBlocksCountOffset:]),
		FreeInodesCount: buf.U16LE(b[BGFreeInodesCountOffset:]),
		UsedDirsCount:   buf.U16LE(b[BGUsedDirsCountOffset:]),
	}, nil
}

// ParseGroupDescTable decodes count descriptors from b.
func ParseGroupDescTable(b []byte, count uint32) ([]GroupDesc, error) {
	need := int(count) * GroupDescSize
	if !buf.Has(b, 0, need) {
		return nil, fmt.Errorf("group descriptor table (%d entries): %w", count, ErrTruncated)
	}
	descs := make([]GroupDesc, count)
	for i := range descs {
		gd, err := ParseGroupDesc(b[i*GroupDescSize:])
		if err != nil {
			return nil, err
		}
		descs[i] = gd
	}
	return descs, nil
}
