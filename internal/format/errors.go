package format

import "errors"

var (
	// ErrTruncated indicates the buffer is too short for the structure.
	ErrTruncated = errors.New("format: truncated structure")

	// ErrBadMagic indicates the superblock magic is not 0xEF53.
	ErrBadMagic = errors.New("format: bad superblock magic")

	// ErrBadGeometry indicates superblock fields that cannot describe a
	// valid filesystem (zero blocks per group, oversized block size,
	// first data block beyond the block count).
	ErrBadGeometry = errors.New("format: implausible filesystem geometry")
)
