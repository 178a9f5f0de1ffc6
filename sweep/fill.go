package sweep

import "bytes"

// Pattern is the block-sized fill buffer. It is built once per sweep and
// shared read-only by every worker; nothing may mutate it after
// construction, which is what makes the lock-free sharing sound.
type Pattern struct {
	fill byte
	buf  []byte
}

// NewPattern builds a pattern of blockSize bytes, each equal to fill.
func NewPattern(fill byte, blockSize int) *Pattern {
	return &Pattern{
		fill: fill,
		buf:  bytes.Repeat([]byte{fill}, blockSize),
	}
}

// Fill returns the fill byte.
func (p *Pattern) Fill() byte { return p.fill }

// Bytes returns the shared buffer. Callers must treat it as read-only.
func (p *Pattern) Bytes() []byte { return p.buf }

// Matches reports whether b already equals the pattern byte-for-byte.
func (p *Pattern) Matches(b []byte) bool {
	return bytes.Equal(b, p.buf)
}
