//go:build !linux

package ext2

// discard is unavailable off Linux; callers fall back to overwriting.
func (fs *Fs) discard(off, length int64) error {
	return ErrDiscardUnsupported
}
