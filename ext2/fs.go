package ext2

import (
	"fmt"
	"os"

	"github.com/joshuapare/sweepkit/internal/format"
)

// Fs is an opened ext2 image: the backing handle plus the parsed
// superblock, group descriptor table and allocation bitmaps.
type Fs struct {
	f        *os.File
	path     string
	blockDev bool

	sb     format.Superblock
	descs  []format.GroupDesc
	blocks *Bitmap
	inodes *Bitmap
}

// Open opens the ext2 image at path read-write, validates the superblock
// and loads the group descriptors and both allocation bitmaps.
//
// Open fails when the image is mounted read-write (when mount state can
// be determined on this platform), when the superblock is invalid, or
// when any bitmap cannot be read.
func Open(path string) (*Fs, error) {
	mounted, writable, err := mountState(path)
	if err != nil {
		return nil, fmt.Errorf("ext2: failed to determine mount state of %s: %w", path, err)
	}
	if mounted && writable {
		return nil, fmt.Errorf("%w: %s", ErrMountedRW, path)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	raw := make([]byte, format.SuperblockSize)
	if _, err := f.ReadAt(raw, format.SuperblockOffset); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("ext2: reading superblock: %w", err)
	}
	sb, err := format.ParseSuperblock(raw)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	fs := &Fs{
		f:        f,
		path:     path,
		blockDev: st.Mode()&os.ModeDevice != 0,
		sb:       sb,
	}

	if err := fs.loadGroupDescs(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if fs.blocks, err = fs.loadBitmap(blockBitmap); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("ext2: reading block bitmap: %w", err)
	}
	if fs.inodes, err = fs.loadBitmap(inodeBitmap); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("ext2: reading inode bitmap: %w", err)
	}

	return fs, nil
}

// Close releases the backing handle. The Fs must not be used afterwards.
func (fs *Fs) Close() error {
	if fs == nil || fs.f == nil {
		return nil
	}
	err := fs.f.Close()
	fs.f = nil
	return err
}

// Path returns the path the image was opened from.
func (fs *Fs) Path() string { return fs.path }

// BlockSize returns the filesystem block size in bytes.
func (fs *Fs) BlockSize() int { return fs.sb.BlockSize() }

// FirstDataBlock returns the number of the first data block: 1 for
// 1 KiB blocks, 0 for larger block sizes.
func (fs *Fs) FirstDataBlock() uint64 { return uint64(fs.sb.FirstDataBlock) }

// BlockCount returns the total number of blocks.
func (fs *Fs) BlockCount() uint64 { return uint64(fs.sb.BlocksCount) }

// FreeBlockCount returns the superblock's free block counter.
func (fs *Fs) FreeBlockCount() uint64 { return uint64(fs.sb.FreeBlocksCount) }

// IsAllocated reports whether block blk is in use according to the block
// bitmap loaded at Open.
func (fs *Fs) IsAllocated(blk uint64) bool { return fs.blocks.Test(blk) }

// Stats is a human-facing summary of the filesystem geometry.
type Stats struct {
	Path           string `json:"path"`
	BlockSize      int    `json:"block_size"`
	BlockCount     uint64 `json:"block_count"`
	FreeBlocks     uint64 `json:"free_blocks"`
	FirstDataBlock uint64 `json:"first_data_block"`
	InodeCount     uint64 `json:"inode_count"`
	GroupCount     uint32 `json:"group_count"`
	BlocksPerGroup uint32 `json:"blocks_per_group"`
	Clean          bool   `json:"clean"`
}

// Stats returns the parsed superblock geometry.
func (fs *Fs) Stats() Stats {
	return Stats{
		Path:           fs.path,
		BlockSize:      fs.BlockSize(),
		BlockCount:     fs.BlockCount(),
		FreeBlocks:     fs.FreeBlockCount(),
		FirstDataBlock: fs.FirstDataBlock(),
		InodeCount:     uint64(fs.sb.InodesCount),
		GroupCount:     fs.sb.GroupCount(),
		BlocksPerGroup: fs.sb.BlocksPerGroup,
		Clean:          fs.sb.State&format.StateClean != 0,
	}
}

func (fs *Fs) loadGroupDescs() error {
	// The descriptor table lives in the block after the superblock's block.
	off := int64(fs.sb.FirstDataBlock+1) * int64(fs.BlockSize())
	count := fs.sb.GroupCount()
	raw := make([]byte, int(count)*format.GroupDescSize)
	if _, err := fs.f.ReadAt(raw, off); err != nil {
		return fmt.Errorf("ext2: reading group descriptors: %w", err)
	}
	descs, err := format.ParseGroupDescTable(raw, count)
	if err != nil {
		return err
	}
	fs.descs = descs
	return nil
}

type bitmapKind int

const (
	blockBitmap bitmapKind = iota
	inodeBitmap
)

// loadBitmap reads one bitmap page per group. The inode bitmap is loaded
// for parity with e2fsprogs tooling but never consulted by sweeps.
func (fs *Fs) loadBitmap(kind bitmapKind) (*Bitmap, error) {
	bsize := fs.BlockSize()
	pages := make([][]byte, len(fs.descs))
	for i, gd := range fs.descs {
		loc := gd.BlockBitmap
		if kind == inodeBitmap {
			loc = gd.InodeBitmap
		}
		page := make([]byte, bsize)
		if _, err := fs.f.ReadAt(page, int64(loc)*int64(bsize)); err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		pages[i] = page
	}

	bm := &Bitmap{pages: pages}
	if kind == inodeBitmap {
		bm.first = 1
		bm.count = uint64(fs.sb.InodesCount) + 1
		bm.perGroup = uint64(fs.sb.InodesPerGroup)
	} else {
		bm.first = uint64(fs.sb.FirstDataBlock)
		bm.count = uint64(fs.sb.BlocksCount)
		bm.perGroup = uint64(fs.sb.BlocksPerGroup)
	}
	return bm, nil
}
