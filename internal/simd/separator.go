package simd

import (
	"encoding/binary"
	"math/bits"
)

// IsSeparator reports whether b equals any byte in sep.
func IsSeparator(b byte, sep []byte) bool {
	for _, s := range sep {
		if b == s {
			return true
		}
	}
	return false
}

// IsWhitespace reports whether b is the AWK default field separator: space
// or tab.
func IsWhitespace(b byte) bool {
	return b == ' ' || b == '\t'
}

// IndexWhitespace returns the index of the first space-or-tab byte in data,
// or -1 if none is present. The field splitter's whitespace mode (§4.E mode
// 1) uses this to pre-check a window before falling back to a byte-by-byte
// scan for the exact transition points.
func IndexWhitespace(data []byte) int {
	lanes := 2
	if wideLane {
		lanes = 4
	}

	idx := 0
	for lanes > 0 && idx+8*lanes <= len(data) {
		for l := 0; l < lanes; l++ {
			off := idx + l*8
			if pos := swarFindEitherByte(data[off:off+8], ' ', '\t'); pos >= 0 {
				return off + pos
			}
		}
		idx += 8 * lanes
	}
	for idx+8 <= len(data) {
		if pos := swarFindEitherByte(data[idx:idx+8], ' ', '\t'); pos >= 0 {
			return idx + pos
		}
		idx += 8
	}
	for ; idx < len(data); idx++ {
		if IsWhitespace(data[idx]) {
			return idx
		}
	}
	return -1
}

// HasWhitespace reports whether data contains any space or tab byte. Used as
// the cheap "is this 32-byte window entirely inside the current field"
// pre-check described in spec §4.E mode 1.
func HasWhitespace(data []byte) bool {
	return IndexWhitespace(data) >= 0
}

func swarFindEitherByte(chunk []byte, needle1, needle2 byte) int {
	v := binary.LittleEndian.Uint64(chunk)
	mask1 := uint64(needle1) * 0x0101010101010101
	mask2 := uint64(needle2) * 0x0101010101010101
	const lo8 = uint64(0x0101010101010101)
	const hi8 = uint64(0x8080808080808080)

	xor1 := v ^ mask1
	hasZero1 := (xor1 - lo8) &^ xor1 & hi8
	xor2 := v ^ mask2
	hasZero2 := (xor2 - lo8) &^ xor2 & hi8

	hasZero := hasZero1 | hasZero2
	if hasZero == 0 {
		return -1
	}
	return bits.TrailingZeros64(hasZero) / 8
}
