// Package sweep zeroes (or discards) every free block of a filesystem.
//
// # Overview
//
// A sweep walks the full block range of an opened filesystem image and,
// for each block the allocation bitmap reports free, makes its content
// deterministic: blocks already matching the fill pattern are left
// alone, everything else is overwritten with the pattern or handed to
// the storage layer as a discard. Allocated blocks are never touched.
//
// The walk can be split across several workers. Each worker owns a
// disjoint, contiguous slice of the block range and a private scratch
// buffer; the fill pattern and the bitmap are shared read-only. The
// range that does not divide evenly among the workers is swept by the
// calling goroutine itself, concurrently with the workers.
//
// # Usage
//
//	fs, _ := ext2.Open("disk.img")
//	defer fs.Close()
//	res, err := sweep.Run(fs, sweep.Config{Workers: 4})
//	if err != nil {
//	    log.Fatal(err)        // single-worker sweeps fail fast
//	}
//	if res.AnyFailed() {
//	    // multi-worker block errors are per-worker; inspect res
//	}
package sweep
