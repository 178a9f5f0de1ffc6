package sweep

// Partition is a half-open block range [Start, End) swept by exactly one
// party.
type Partition struct {
	Start uint64
	End   uint64
}

// Empty reports whether the partition covers no blocks.
func (p Partition) Empty() bool { return p.Start >= p.End }

// Len returns the number of blocks covered.
func (p Partition) Len() uint64 {
	if p.Empty() {
		return 0
	}
	return p.End - p.Start
}

// Plan assigns the sweepable range to n workers plus a remainder. The
// union of Parts and Remainder is exactly [start, end): no gaps, no
// overlaps.
type Plan struct {
	Parts     []Partition
	Remainder Partition
}

// NewPlan splits [start, end) into n equal contiguous partitions of
// floor((end-start)/n) blocks each; whatever is left over past the last
// partition becomes the remainder, swept by the orchestrator itself.
//
// With more workers than blocks every partition is empty and the entire
// range lands in the remainder. That is legal, not an error.
func NewPlan(start, end uint64, n int) Plan {
	if end < start {
		end = start
	}
	size := (end - start) / uint64(n)
	parts := make([]Partition, n)
	for i := range parts {
		parts[i] = Partition{
			Start: start + uint64(i)*size,
			End:   start + uint64(i+1)*size,
		}
	}
	return Plan{
		Parts:     parts,
		Remainder: Partition{Start: start + uint64(n)*size, End: end},
	}
}
