package simd

import (
	"encoding/binary"
	"math/bits"
)

const newlineByte = '\n'

// FindNewline returns the index of the first '\n' at or after start, or
// len(input) if there is none. The result is exact; the lane-width loop
// below is a pure acceleration over the scalar tail that always runs last.
func FindNewline(input []byte, start int) int {
	if start >= len(input) {
		return len(input)
	}
	data := input[start:]

	lanes := 2
	if wideLane {
		lanes = 4
	}

	idx := 0
	for lanes > 0 && idx+8*lanes <= len(data) {
		for l := 0; l < lanes; l++ {
			off := idx + l*8
			if pos := swarFindByte(data[off:off+8], newlineByte); pos >= 0 {
				return start + off + pos
			}
		}
		idx += 8 * lanes
	}

	// Remaining bytes: still try 8-byte SWAR steps, then scalar.
	for idx+8 <= len(data) {
		if pos := swarFindByte(data[idx:idx+8], newlineByte); pos >= 0 {
			return start + idx + pos
		}
		idx += 8
	}
	for ; idx < len(data); idx++ {
		if data[idx] == newlineByte {
			return start + idx
		}
	}
	return len(input)
}

// swarFindByte returns the offset of needle within an 8-byte window, or -1.
// chunk must be exactly 8 bytes.
func swarFindByte(chunk []byte, needle byte) int {
	v := binary.LittleEndian.Uint64(chunk)
	mask := uint64(needle) * 0x0101010101010101
	xor := v ^ mask
	const lo8 = uint64(0x0101010101010101)
	const hi8 = uint64(0x8080808080808080)
	hasZero := (xor - lo8) &^ xor & hi8
	if hasZero == 0 {
		return -1
	}
	return bits.TrailingZeros64(hasZero) / 8
}
