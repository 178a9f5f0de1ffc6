package sweep

import "fmt"

// Outcome is the terminal state of one visited block.
type Outcome int

const (
	// OutcomeAllocated means the bitmap reported the block in use; no
	// I/O was issued.
	OutcomeAllocated Outcome = iota

	// OutcomeMatched means the block was free and its content already
	// equaled the fill pattern.
	OutcomeMatched

	// OutcomeWritten means the block was overwritten with the pattern.
	OutcomeWritten

	// OutcomeDiscarded means a discard was issued for the block.
	OutcomeDiscarded

	// OutcomeSuppressed means the block needed modification but dry-run
	// held the write or discard back.
	OutcomeSuppressed
)

// Free reports whether the bitmap considered the block free.
func (o Outcome) Free() bool { return o != OutcomeAllocated }

// Modified reports whether the block was, or in dry-run would have been,
// written or discarded.
func (o Outcome) Modified() bool {
	return o == OutcomeWritten || o == OutcomeDiscarded || o == OutcomeSuppressed
}

// sweepBlock decides and applies the action for a single block.
//
// Order matters: the allocation check always runs first, in every mode.
// The read/compare happens only when discard is off. Dry-run suppresses
// the write or discard after the determination, so reporting still
// reflects what would have changed. scratch is the caller's private read
// buffer, reused across blocks.
func sweepBlock(dev Device, blk uint64, pat *Pattern, cfg Config, scratch []byte) (Outcome, error) {
	if dev.IsAllocated(blk) {
		return OutcomeAllocated, nil
	}

	if !cfg.Discard {
		if err := dev.ReadBlock(blk, scratch); err != nil {
			return OutcomeMatched, fmt.Errorf("error while reading block: %w", err)
		}
		if pat.Matches(scratch) {
			return OutcomeMatched, nil
		}
	}

	if cfg.DryRun {
		return OutcomeSuppressed, nil
	}

	if cfg.Discard {
		if err := dev.DiscardBlock(blk); err != nil {
			return OutcomeDiscarded, fmt.Errorf("error while discarding block: %w", err)
		}
		return OutcomeDiscarded, nil
	}

	if err := dev.WriteBlock(blk, pat.Bytes()); err != nil {
		return OutcomeWritten, fmt.Errorf("error while writing block: %w", err)
	}
	return OutcomeWritten, nil
}
