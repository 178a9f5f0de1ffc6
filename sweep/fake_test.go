package sweep

import (
	"bytes"
	"fmt"
	"sync"
)

// fakeDevice is an in-memory Device that records every I/O call so tests
// can pin down exact call sequences per mode.
type fakeDevice struct {
	mu        sync.Mutex
	blockSize int
	first     uint64
	content   [][]byte
	alloc     map[uint64]bool

	reads    []uint64
	writes   []uint64
	discards []uint64

	// failOn, when set, injects an error for matching operations.
	failOn func(op string, blk uint64) error
}

func newFake(blockSize int, nblocks, first uint64, allocated []uint64, fill byte) *fakeDevice {
	d := &fakeDevice{
		blockSize: blockSize,
		first:     first,
		content:   make([][]byte, nblocks),
		alloc:     make(map[uint64]bool),
	}
	for i := range d.content {
		d.content[i] = bytes.Repeat([]byte{fill}, blockSize)
	}
	for _, blk := range allocated {
		d.alloc[blk] = true
	}
	return d
}

func (d *fakeDevice) BlockSize() int          { return d.blockSize }
func (d *fakeDevice) FirstDataBlock() uint64  { return d.first }
func (d *fakeDevice) BlockCount() uint64      { return uint64(len(d.content)) }
func (d *fakeDevice) IsAllocated(blk uint64) bool {
	return d.alloc[blk]
}

func (d *fakeDevice) FreeBlockCount() uint64 {
	var n uint64
	for blk := d.first; blk < d.BlockCount(); blk++ {
		if !d.alloc[blk] {
			n++
		}
	}
	return n
}

func (d *fakeDevice) ReadBlock(blk uint64, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("read", blk); err != nil {
		return err
	}
	d.reads = append(d.reads, blk)
	copy(p, d.content[blk])
	return nil
}

func (d *fakeDevice) WriteBlock(blk uint64, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("write", blk); err != nil {
		return err
	}
	d.writes = append(d.writes, blk)
	copy(d.content[blk], p)
	return nil
}

func (d *fakeDevice) DiscardBlock(blk uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("discard", blk); err != nil {
		return err
	}
	d.discards = append(d.discards, blk)
	return nil
}

func (d *fakeDevice) fail(op string, blk uint64) error {
	if d.failOn == nil {
		return nil
	}
	return d.failOn(op, blk)
}

func (d *fakeDevice) callLog(kind string) []uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	var src []uint64
	switch kind {
	case "read":
		src = d.reads
	case "write":
		src = d.writes
	case "discard":
		src = d.discards
	}
	out := make([]uint64, len(src))
	copy(out, src)
	return out
}

// snapshot returns a deep copy of all block contents.
func (d *fakeDevice) snapshot() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.content))
	for i, b := range d.content {
		out[i] = append([]byte(nil), b...)
	}
	return out
}

func failAt(op string, blk uint64) func(string, uint64) error {
	return func(gotOp string, gotBlk uint64) error {
		if gotOp == op && gotBlk == blk {
			return fmt.Errorf("injected %s failure at block %d", op, blk)
		}
		return nil
	}
}
