// Package testutil builds minimal ext2 images for tests. The images carry
// a valid superblock, group descriptor table and allocation bitmaps, but
// no inode tables or directories: just enough structure for block-level
// tooling to open and sweep them.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/sweepkit/internal/buf"
	"github.com/joshuapare/sweepkit/internal/format"
)

// ImageSpec describes the filesystem image to build.
type ImageSpec struct {
	BlockSize      int      // defaults to 1024
	Blocks         uint32   // total block count; required
	BlocksPerGroup uint32   // defaults to 8 * BlockSize
	Allocated      []uint32 // data blocks to mark in use, beyond the metadata blocks
	Content        byte     // initial content of every non-metadata block
}

func (s *ImageSpec) normalize() {
	if s.BlockSize == 0 {
		s.BlockSize = 1024
	}
	if s.BlocksPerGroup == 0 {
		s.BlocksPerGroup = uint32(8 * s.BlockSize)
	}
}

func (s *ImageSpec) firstDataBlock() uint32 {
	if s.BlockSize == format.MinBlockSize {
		return 1
	}
	return 0
}

// MetadataBlocks returns the block numbers the builder itself occupies:
// the superblock and descriptor-table blocks plus each group's bitmap
// blocks. These are always marked allocated in the built image.
func (s *ImageSpec) MetadataBlocks() []uint32 {
	s.normalize()
	first := s.firstDataBlock()
	meta := []uint32{first, first + 1}
	groups := (s.Blocks - first + s.BlocksPerGroup - 1) / s.BlocksPerGroup
	for g := uint32(0); g < groups; g++ {
		bb, ib := s.bitmapBlocks(g)
		meta = append(meta, bb, ib)
	}
	return meta
}

// bitmapBlocks returns where group g's block and inode bitmaps live.
func (s *ImageSpec) bitmapBlocks(g uint32) (blockBitmap, inodeBitmap uint32) {
	first := s.firstDataBlock()
	if g == 0 {
		return first + 2, first + 3
	}
	base := first + g*s.BlocksPerGroup
	return base, base + 1
}

// BuildImage renders the image into a fresh byte slice.
func BuildImage(spec ImageSpec) []byte {
	spec.normalize()
	first := spec.firstDataBlock()
	bsize := spec.BlockSize
	img := make([]byte, int(spec.Blocks)*bsize)
	for i := range img {
		img[i] = spec.Content
	}
	// The boot area must not carry pattern bytes that could be mistaken
	// for a superblock.
	for i := 0; i < format.SuperblockOffset && i < len(img); i++ {
		img[i] = 0
	}

	groups := (spec.Blocks - first + spec.BlocksPerGroup - 1) / spec.BlocksPerGroup

	allocated := make(map[uint32]bool, len(spec.Allocated))
	for _, b := range spec.MetadataBlocks() {
		allocated[b] = true
	}
	for _, b := range spec.Allocated {
		allocated[b] = true
	}

	// Bitmap pages: zero them, then set bits LSB-first.
	for g := uint32(0); g < groups; g++ {
		bb, ib := spec.bitmapBlocks(g)
		zero(img, int(bb)*bsize, bsize)
		zero(img, int(ib)*bsize, bsize)
	}
	var free uint32
	for blk := first; blk < spec.Blocks; blk++ {
		if !allocated[blk] {
			free++
			continue
		}
		rel := blk - first
		g := rel / spec.BlocksPerGroup
		idx := rel % spec.BlocksPerGroup
		bb, _ := spec.bitmapBlocks(g)
		img[int(bb)*bsize+int(idx>>3)] |= 1 << (idx & 7)
	}

	// Superblock.
	sbOff := format.SuperblockOffset
	zero(img, sbOff, format.SuperblockSize)
	logSize := uint32(0)
	for 1024<<logSize < bsize {
		logSize++
	}
	buf.PutU32LE(img[sbOff:], format.SBInodesCountOffset, 64)
	buf.PutU32LE(img[sbOff:], format.SBBlocksCountOffset, spec.Blocks)
	buf.PutU32LE(img[sbOff:], format.SBFreeBlocksCountOffset, free)
	buf.PutU32LE(img[sbOff:], format.SBFreeInodesCountOffset, 53)
	buf.PutU32LE(img[sbOff:], format.SBFirstDataBlockOffset, first)
	buf.PutU32LE(img[sbOff:], format.SBLogBlockSizeOffset, logSize)
	buf.PutU32LE(img[sbOff:], format.SBBlocksPerGroupOffset, spec.BlocksPerGroup)
	buf.PutU32LE(img[sbOff:], format.SBInodesPerGroupOffset, 64)
	buf.PutU16LE(img[sbOff:], format.SBMagicOffset, format.SuperMagic)
	buf.PutU16LE(img[sbOff:], format.SBStateOffset, format.StateClean)
	buf.PutU32LE(img[sbOff:], format.SBRevLevelOffset, 1)

	// Group descriptor table in the block after the superblock's block.
	gdOff := int(first+1) * bsize
	zero(img, gdOff, bsize)
	for g := uint32(0); g < groups; g++ {
		bb, ib := spec.bitmapBlocks(g)
		entry := gdOff + int(g)*format.GroupDescSize
		buf.PutU32LE(img, entry+format.BGBlockBitmapOffset, bb)
		buf.PutU32LE(img, entry+format.BGInodeBitmapOffset, ib)
		buf.PutU32LE(img, entry+format.BGInodeTableOffset, ib+1)
	}

	return img
}

// WriteImage builds the image and writes it to a file under t.TempDir.
func WriteImage(t *testing.T, spec ImageSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.img")
	if err := os.WriteFile(path, BuildImage(spec), 0o600); err != nil {
		t.Fatalf("writing test image: %v", err)
	}
	return path
}

func zero(b []byte, off, n int) {
	for i := off; i < off+n && i < len(b); i++ {
		b[i] = 0
	}
}
