// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// PutU16LE writes a little-endian uint16 into b at off. No-op when out of bounds.
func PutU16LE(b []byte, off int, v uint16) {
	if off < 0 || off+2 > len(b) {
		return
	}
	binary.LittleEndian.PutUint16(b[off:], v)
}

// PutU32LE writes a little-endian uint32 into b at off. No-op when out of bounds.
func PutU32LE(b []byte, off int, v uint32) {
	if off < 0 || off+4 > len(b) {
		return
	}
	binary.LittleEndian.PutUint32(b[off:], v)
}
