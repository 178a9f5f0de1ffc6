package ext2

// Bitmap answers allocation queries from the per-group bitmap pages read
// off disk at Open time. ext2 numbers bitmap bits LSB-first within each
// byte: bit i of a group's page covers item first + group*perGroup + i.
//
// A Bitmap is read-only after construction, so it may be shared by any
// number of goroutines without locking.
type Bitmap struct {
	first    uint64   // number of the first item covered
	count    uint64   // total items (absolute, not relative to first)
	perGroup uint64   // items per group
	pages    [][]byte // one bitmap page per group
}

// Test reports whether item n is marked in use. Items outside the mapped
// range report true: the sweep must never treat an unanswerable block as
// free.
func (b *Bitmap) Test(n uint64) bool {
	if n < b.first || n >= b.count {
		return true
	}
	rel := n - b.first
	group := rel / b.perGroup
	idx := rel % b.perGroup
	page := b.pages[group]
	byteIdx := idx >> 3
	if byteIdx >= uint64(len(page)) {
		return true
	}
	return page[byteIdx]&(1<<(idx&7)) != 0
}

// FreeInRange counts items in [lo, hi) not marked in use.
func (b *Bitmap) FreeInRange(lo, hi uint64) uint64 {
	var n uint64
	for i := lo; i < hi; i++ {
		if !b.Test(i) {
			n++
		}
	}
	return n
}
