//go:build linux

package ext2

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// discard drops the byte range [off, off+length) at the storage level.
//
// Regular files get FALLOC_FL_PUNCH_HOLE, which deallocates the extents
// while keeping the file size. Block devices get the BLKDISCARD ioctl,
// which forwards a TRIM/UNMAP to the device.
func (fs *Fs) discard(off, length int64) error {
	if fs.blockDev {
		rng := [2]uint64{uint64(off), uint64(length)}
		_, _, errno := unix.Syscall(
			unix.SYS_IOCTL,
			fs.f.Fd(),
			unix.BLKDISCARD,
			uintptr(unsafe.Pointer(&rng[0])),
		)
		if errno != 0 {
			return errno
		}
		return nil
	}
	return unix.Fallocate(
		int(fs.f.Fd()),
		unix.FALLOC_FL_PUNCH_HOLE|unix.FALLOC_FL_KEEP_SIZE,
		off,
		length,
	)
}
