//go:build linux

package ext2

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// mountState reports whether path is currently mounted, and if so whether
// the mount is writable. It scans /proc/self/mounts for an entry whose
// source is path (after resolving symlinks), which covers block devices
// mounted directly. Loop-mounted image files resolve to /dev/loopN and
// are not matched; those callers are on their own, as with e2fsprogs.
func mountState(path string) (mounted, writable bool, err error) {
	resolved, rerr := filepath.EvalSymlinks(path)
	if rerr != nil {
		resolved = path
	}
	if abs, aerr := filepath.Abs(resolved); aerr == nil {
		resolved = abs
	}

	f, err := os.Open("/proc/self/mounts")
	if err != nil {
		return false, false, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			continue
		}
		source := fields[0]
		if rs, rerr := filepath.EvalSymlinks(source); rerr == nil {
			source = rs
		}
		if source != resolved {
			continue
		}
		mounted = true
		for _, opt := range strings.Split(fields[3], ",") {
			if opt == "rw" {
				writable = true
			}
		}
		return mounted, writable, sc.Err()
	}
	return false, false, sc.Err()
}
