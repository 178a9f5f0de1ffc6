package sweep

import (
	"fmt"
	"sync"
)

// Result reports what a sweep did.
type Result struct {
	// FreeVisited is the number of free blocks visited.
	FreeVisited uint64

	// Modified is the number of blocks written or discarded (or, in
	// dry-run, that would have been).
	Modified uint64

	// WorkerErrs has one entry per worker; nil entries finished their
	// partition cleanly. A failed worker stopped at its first block
	// error, leaving the rest of its partition unvisited. Always nil
	// for sequential sweeps, which fail fast through Run's error.
	WorkerErrs []error

	// RemainderErr is the orchestrator's own failure sweeping the
	// remainder range, if any.
	RemainderErr error
}

// AnyFailed reports whether any worker or the remainder sweep hit a
// block I/O error.
func (r Result) AnyFailed() bool {
	if r.RemainderErr != nil {
		return true
	}
	for _, err := range r.WorkerErrs {
		if err != nil {
			return true
		}
	}
	return false
}

// Failures returns the non-nil errors from WorkerErrs and RemainderErr.
func (r Result) Failures() []error {
	var errs []error
	for _, err := range r.WorkerErrs {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if r.RemainderErr != nil {
		errs = append(errs, r.RemainderErr)
	}
	return errs
}

// Run sweeps every free block of dev according to cfg.
//
// With one worker the sweep runs sequentially on the calling goroutine
// and the first block I/O error aborts the whole run: the error is
// returned and the Result carries the counts up to that point.
//
// With several workers the block range is partitioned; each worker stops
// its own partition at its first error but siblings and the remainder
// sweep run to completion regardless. Run itself returns a nil error in
// that mode — per-worker failures are reported in the Result and the
// caller decides what they mean for the process.
func Run(dev Device, cfg Config) (Result, error) {
	cfg = cfg.normalized()
	pat := NewPattern(cfg.Fill, dev.BlockSize())

	if cfg.Workers == 1 {
		return runSequential(dev, cfg, pat)
	}
	return runParallel(dev, cfg, pat)
}

func runSequential(dev Device, cfg Config, pat *Pattern) (Result, error) {
	var c counters
	var rep *reporter
	if cfg.Verbose {
		rep = newReporter(cfg.Progress, dev.FreeBlockCount(), dev.BlockCount())
	}

	scratch := make([]byte, dev.BlockSize())
	for blk := dev.FirstDataBlock(); blk < dev.BlockCount(); blk++ {
		o, err := sweepBlock(dev, blk, pat, cfg, scratch)
		if err != nil {
			return resultOf(&c, nil, nil), fmt.Errorf("block %d: %w", blk, err)
		}
		c.observe(o)
		if rep != nil {
			rep.step(&c, o)
		}
	}
	return resultOf(&c, nil, nil), nil
}

func runParallel(dev Device, cfg Config, pat *Pattern) (Result, error) {
	plan := NewPlan(dev.FirstDataBlock(), dev.BlockCount(), cfg.Workers)

	var (
		c    counters
		wg   sync.WaitGroup
		errs = make([]error, cfg.Workers)
	)
	for i, part := range plan.Parts {
		wg.Add(1)
		go func(i int, part Partition) {
			defer wg.Done()
			errs[i] = sweepRange(dev, part, pat, cfg, &c)
		}(i, part)
	}

	// Sweep the remainder on this goroutine while the workers run, then
	// rendezvous with all of them.
	remErr := sweepRange(dev, plan.Remainder, pat, cfg, &c)
	wg.Wait()

	return resultOf(&c, errs, remErr), nil
}

// sweepRange applies the block decision to one partition in increasing
// block order, with a private scratch buffer, stopping at the first I/O
// error. An empty partition is a no-op.
func sweepRange(dev Device, part Partition, pat *Pattern, cfg Config, c *counters) error {
	if part.Empty() {
		return nil
	}
	scratch := make([]byte, dev.BlockSize())
	for blk := part.Start; blk < part.End; blk++ {
		o, err := sweepBlock(dev, blk, pat, cfg, scratch)
		if err != nil {
			return fmt.Errorf("block %d: %w", blk, err)
		}
		c.observe(o)
	}
	return nil
}

func resultOf(c *counters, workerErrs []error, remErr error) Result {
	return Result{
		FreeVisited:  c.freeSeen.Load(),
		Modified:     c.modified.Load(),
		WorkerErrs:   workerErrs,
		RemainderErr: remErr,
	}
}
