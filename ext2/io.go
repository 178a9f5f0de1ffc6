package ext2

import "fmt"

// ReadBlock reads block blk into p. len(p) must equal BlockSize.
func (fs *Fs) ReadBlock(blk uint64, p []byte) error {
	off, err := fs.blockOffset(blk, p)
	if err != nil {
		return err
	}
	if _, err := fs.f.ReadAt(p, off); err != nil {
		return fmt.Errorf("ext2: read block %d: %w", blk, err)
	}
	return nil
}

// WriteBlock overwrites block blk with p. len(p) must equal BlockSize.
func (fs *Fs) WriteBlock(blk uint64, p []byte) error {
	off, err := fs.blockOffset(blk, p)
	if err != nil {
		return err
	}
	if _, err := fs.f.WriteAt(p, off); err != nil {
		return fmt.Errorf("ext2: write block %d: %w", blk, err)
	}
	return nil
}

// DiscardBlock issues a storage-level discard for block blk: a punch-hole
// fallocate for regular files, BLKDISCARD for block devices. After a
// discard the block's content is undefined.
func (fs *Fs) DiscardBlock(blk uint64) error {
	if blk >= fs.BlockCount() {
		return fmt.Errorf("%w: %d", ErrBlockRange, blk)
	}
	bsize := int64(fs.BlockSize())
	if err := fs.discard(int64(blk)*bsize, bsize); err != nil {
		return fmt.Errorf("ext2: discard block %d: %w", blk, err)
	}
	return nil
}

func (fs *Fs) blockOffset(blk uint64, p []byte) (int64, error) {
	if blk >= fs.BlockCount() {
		return 0, fmt.Errorf("%w: %d", ErrBlockRange, blk)
	}
	if len(p) != fs.BlockSize() {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(p), fs.BlockSize())
	}
	return int64(blk) * int64(fs.BlockSize()), nil
}
