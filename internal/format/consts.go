// Package format houses low-level decoders for the ext2 on-disk format.
// The goal is to keep the parsing focused, allocation-free where possible,
// and independent from the public API so higher-level packages can
// orchestrate the data in a more ergonomic form.
//
// Only the structures the sweeper consumes are decoded: the superblock,
// the block group descriptor table, and the per-group allocation bitmaps.
// Inode tables, directory entries and journal structures are out of scope.
package format

const (
	// SuperblockOffset is the fixed byte offset of the superblock from the
	// start of the device. The first 1024 bytes are reserved for boot code.
	SuperblockOffset = 1024

	// SuperblockSize is the on-disk size of the superblock structure.
	SuperblockSize = 1024

	// SuperMagic is the ext2/3/4 magic number stored at s_magic.
	SuperMagic = 0xEF53

	// GroupDescSize is the size of one block group descriptor in ext2
	// revisions 0 and 1 (64-bit layouts are ext4-only).
	GroupDescSize = 32

	// MinBlockSize is the smallest legal ext2 block size (log_block_size 0).
	MinBlockSize = 1024

	// MaxLogBlockSize caps s_log_block_size. 1024 << 6 = 64 KiB, the
	// largest block size any ext2 variant supports.
	MaxLogBlockSize = 6

	// StateClean is the s_state flag set when the filesystem was
	// unmounted cleanly.
	StateClean = 1
)

// Superblock field offsets, relative to SuperblockOffset. Little-endian.
const (
	SBInodesCountOffset     = 0  // u32 s_inodes_count
	SBBlocksCountOffset     = 4  // u32 s_blocks_count
	SBRBlocksCountOffset    = 8  // u32 s_r_blocks_count
	SBFreeBlocksCountOffset = 12 // u32 s_free_blocks_count
	SBFreeInodesCountOffset = 16 // u32 s_free_inodes_count
	SBFirstDataBlockOffset  = 20 // u32 s_first_data_block
	SBLogBlockSizeOffset    = 24 // u32 s_log_block_size
	SBBlocksPerGroupOffset  = 32 // u32 s_blocks_per_group
	SBInodesPerGroupOffset  = 40 // u32 s_inodes_per_group
	SBMountTimeOffset       = 44 // u32 s_mtime
	SBWriteTimeOffset       = 48 // u32 s_wtime
	SBMagicOffset           = 56 // u16 s_magic
	SBStateOffset           = 58 // u16 s_state
	SBRevLevelOffset        = 76 // u32 s_rev_level
)

// Group descriptor field offsets, relative to the descriptor start.
const (
	BGBlockBitmapOffset     = 0  // u32 bg_block_bitmap
	BGInodeBitmapOffset     = 4  // u32 bg_inode_bitmap
	BGInodeTableOffset      = 8  // u32 bg_inode_table
	BGFreeBlocksCountOffset = 12 // u16 bg_free_blocks_count
	BGFreeInodesCountOffset = 14 // u16 bg_free_inodes_count
	BGUsedDirsCountOffset   = 16 // u16 bg_used_dirs_count
)
