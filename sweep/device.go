package sweep

// Device is the filesystem surface a sweep consumes. *ext2.Fs satisfies
// it; tests substitute in-memory fakes.
//
// ReadBlock, WriteBlock and DiscardBlock must be safe for concurrent use:
// the sweep issues them from several goroutines at once, always on
// distinct block numbers. IsAllocated must answer for every block in
// [FirstDataBlock, BlockCount).
type Device interface {
	BlockSize() int
	FirstDataBlock() uint64
	BlockCount() uint64
	FreeBlockCount() uint64
	IsAllocated(blk uint64) bool
	ReadBlock(blk uint64, p []byte) error
	WriteBlock(blk uint64, p []byte) error
	DiscardBlock(blk uint64) error
}
