//go:build !linux

package ext2

// mountState cannot be determined portably; report not mounted and let
// the operator ensure the image is quiesced.
func mountState(path string) (mounted, writable bool, err error) {
	return false, false, nil
}
