package sweep

import (
	"fmt"
	"io"
	"sync/atomic"
)

// counters accumulates sweep statistics. The fields are atomic so worker
// goroutines can bump them without locks while the orchestrator reads.
type counters struct {
	freeSeen atomic.Uint64
	modified atomic.Uint64
}

func (c *counters) observe(o Outcome) {
	if o.Free() {
		c.freeSeen.Add(1)
	}
	if o.Modified() {
		c.modified.Add(1)
	}
}

// reporter drives verbose progress output on sequential sweeps. The
// percentage line is rewritten in place (carriage return, no newline)
// whenever its value crosses a new tenth of a percent; a
// modified/free/total tuple follows every block that needed
// modification.
type reporter struct {
	w         io.Writer
	totalFree uint64
	totalBlk  uint64
	lastTenth int
}

func newReporter(w io.Writer, totalFree, totalBlk uint64) *reporter {
	r := &reporter{w: w, totalFree: totalFree, totalBlk: totalBlk, lastTenth: -1}
	fmt.Fprintf(r.w, "\r%4.1f%%", 0.0)
	return r
}

func (r *reporter) step(c *counters, o Outcome) {
	if !o.Free() {
		return
	}
	free := c.freeSeen.Load()
	var percent float64
	if r.totalFree > 0 {
		percent = 100.0 * float64(free) / float64(r.totalFree)
	}
	if tenth := int(percent * 10); tenth != r.lastTenth {
		fmt.Fprintf(r.w, "\r%4.1f%%", percent)
		r.lastTenth = tenth
	}
	if o.Modified() {
		fmt.Fprintf(r.w, "\r%d/%d/%d\n", c.modified.Load(), free, r.totalBlk)
	}
}
