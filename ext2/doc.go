// Package ext2 provides read/write access to ext2 filesystem images at the
// block level.
//
// # Overview
//
// This package opens an ext2 image (a regular file or a block device),
// parses the superblock and block group descriptor table, and loads the
// per-group block and inode allocation bitmaps. It exposes exactly the
// surface a free-space sweep needs: filesystem geometry, an allocation
// query per block, and raw per-block read, write and discard operations.
//
// It is not a filesystem driver. Inodes, directories and the journal are
// never interpreted, and no metadata is ever rewritten.
//
// # Opening an image
//
//	fs, err := ext2.Open("/dev/sdb1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fs.Close()
//
// Open refuses images that are currently mounted read-write, since
// sweeping free blocks underneath a live filesystem corrupts it.
//
// # Concurrency
//
// ReadBlock, WriteBlock and DiscardBlock are safe for concurrent use:
// they issue positioned I/O (pread/pwrite) on a single file handle and
// never touch shared mutable state. The bitmaps are loaded once at Open
// and are read-only afterwards.
package ext2
