package ext2

import "errors"

var (
	// ErrMountedRW indicates the image is mounted read-write and must not
	// be swept.
	ErrMountedRW = errors.New("ext2: filesystem is mounted read-write")

	// ErrBlockRange indicates a block number outside [0, BlockCount).
	ErrBlockRange = errors.New("ext2: block number out of range")

	// ErrBufferSize indicates an I/O buffer whose length is not the
	// filesystem block size.
	ErrBufferSize = errors.New("ext2: buffer length does not match block size")

	// ErrDiscardUnsupported indicates the platform or backing storage
	// cannot issue discard requests.
	ErrDiscardUnsupported = errors.New("ext2: discard not supported on this platform")
)
