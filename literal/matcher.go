// Package literal implements Boyer-Moore-Horspool literal search over byte
// slices, the fast path chosen by the backend dispatcher whenever a pattern
// fails regex classification.
package literal

import "github.com/e-jerk/gawk/internal/simd"

// skipTableSize covers every possible byte value.
const skipTableSize = 256

// Matcher holds a precomputed Horspool skip table for a fixed pattern.
type Matcher struct {
	pattern       []byte
	caseInsensitive bool
	skip          [skipTableSize]byte
}

// New builds a Matcher for pattern. When caseInsensitive is set, pattern is
// expected to already be lowered (the backend dispatcher does this), and the skip table is
// populated for both letter cases so that matching can compare the raw input
// byte-for-byte after lowering it.
func New(pattern []byte, caseInsensitive bool) *Matcher {
	m := &Matcher{
		pattern:         pattern,
		caseInsensitive: caseInsensitive,
	}
	m.buildSkipTable()
	return m
}

// Pattern returns the (possibly already-lowered) pattern bytes the matcher
// searches for.
func (m *Matcher) Pattern() []byte {
	return m.pattern
}

// SkipTable returns a copy of the precomputed 256-entry Horspool skip
// table, the exact layout the GPU kernel contract uploads alongside the
// pattern bytes for literal matching.
func (m *Matcher) SkipTable() [256]byte {
	return m.skip
}

// buildSkipTable fills skip[b] with the distance from the last occurrence of
// b in pattern[0:len-1] to the end of the pattern. Bytes absent from the
// pattern alphabet map to min(len(pattern), 255).
func (m *Matcher) buildSkipTable() {
	n := len(m.pattern)
	def := n
	if def > 255 {
		def = 255
	}
	for i := range m.skip {
		m.skip[i] = byte(def)
	}
	if n == 0 {
		return
	}
	for i := 0; i < n-1; i++ {
		b := m.pattern[i]
		d := n - 1 - i
		if d > 255 {
			d = 255
		}
		m.skip[b] = byte(d)
		if m.caseInsensitive {
			m.skip[swapCase(b)] = byte(d)
		}
	}
}

// swapCase flips the ASCII case of b, used only to populate both halves of
// the skip table when the matcher is case-insensitive.
func swapCase(b byte) byte {
	switch {
	case b >= 'a' && b <= 'z':
		return b - 32
	case b >= 'A' && b <= 'Z':
		return b + 32
	default:
		return b
	}
}

// Find returns the leftmost match of the pattern within line, or -1 if the
// pattern does not occur. An empty pattern is the caller's special case (see
// §4.F) and is not handled here.
func (m *Matcher) Find(line []byte) int {
	n := len(m.pattern)
	if n == 0 || len(line) < n {
		return -1
	}

	last := n - 1
	pos := 0
	for pos <= len(line)-n {
		if m.matchesAt(line, pos) {
			return pos
		}
		shift := int(m.skip[line[pos+last]])
		if shift < 1 {
			shift = 1
		}
		pos += shift
	}
	return -1
}

// matchesAt compares pattern against line[pos:pos+len(pattern)] back to
// front, the conventional Horspool compare order so the byte used for the
// skip decision is read first regardless of where the mismatch occurs.
func (m *Matcher) matchesAt(line []byte, pos int) bool {
	n := len(m.pattern)
	window := line[pos : pos+n]
	if m.caseInsensitive {
		for i := n - 1; i >= 0; i-- {
			if simd.ToLowerByte(window[i]) != m.pattern[i] {
				return false
			}
		}
		return true
	}
	for i := n - 1; i >= 0; i-- {
		if window[i] != m.pattern[i] {
			return false
		}
	}
	return true
}

// FindAll returns the start offsets of every non-overlapping leftmost match
// in line, advancing by len(pattern) after each hit as §4.G specifies for
// the literal substitution path.
func (m *Matcher) FindAll(line []byte) []int {
	var out []int
	n := len(m.pattern)
	if n == 0 {
		return out
	}
	pos := 0
	for pos <= len(line)-n {
		idx := m.Find(line[pos:])
		if idx < 0 {
			break
		}
		out = append(out, pos+idx)
		pos += idx + n
	}
	return out
}
