package sweep

import "io"

// Config controls one sweep. The zero value zeroes free blocks with a
// single worker and no output.
type Config struct {
	// Fill is the byte every free block is set to.
	Fill byte

	// DryRun computes and reports what would change without issuing
	// any write or discard.
	DryRun bool

	// Discard issues storage-level discards instead of overwrites.
	// Free blocks are never read or compared in this mode; a discard
	// hints arbitrary future content, so comparison is meaningless.
	Discard bool

	// Verbose emits live progress on sequential sweeps.
	Verbose bool

	// Workers is the number of concurrent sweepers. Values below 1 are
	// treated as 1, which runs the sweep sequentially on the calling
	// goroutine.
	Workers int

	// Progress receives verbose progress output. Defaults to io.Discard
	// so library callers opt in explicitly.
	Progress io.Writer
}

func (c Config) normalized() Config {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Progress == nil {
		c.Progress = io.Discard
	}
	return c
}
