package engine

import (
	"bytes"
	"fmt"
)

// AllocError reports that building the exact-size output buffer a
// substitution pass computed failed. It is returned rather than left to
// crash the process, since the size is a function of caller-supplied input
// and replacement text, not a programming error.
type AllocError struct {
	Err error
}

func (e *AllocError) Error() string { return fmt.Sprintf("engine: output allocation failed: %v", e.Err) }
func (e *AllocError) Unwrap() error { return e.Err }

// SubstMatcher abstracts a matcher driven over the whole input buffer
// starting at an arbitrary offset, the access pattern the substitution
// engine needs (as opposed to Matcher's per-line, start-at-zero contract).
type SubstMatcher interface {
	// FindFrom returns the leftmost match in input at or after pos, or
	// ok=false if the pattern does not occur again.
	FindFrom(input []byte, pos int) (start, end int, ok bool)
}

// SubstRecord describes one replaced occurrence: its absolute position in
// the original input, the length of text it replaced, and the zero-indexed
// line it falls on.
type SubstRecord struct {
	Position uint32
	MatchLen uint32
	LineNum  uint32
}

// Substitute finds every non-overlapping match of matcher in input and
// replaces it with replacement, returning the rebuilt buffer and a record
// per replacement. When global is false only the first occurrence is
// replaced. A zero-width match advances the search position by one byte
// past the match to guarantee forward progress; a non-empty match advances
// to its end, which for a fixed-length literal pattern is equivalent to
// advancing by the pattern's length.
func Substitute(input []byte, matcher SubstMatcher, replacement []byte, global bool) ([]byte, []SubstRecord, error) {
	type occ struct{ start, end int }
	var occs []occ

	pos := 0
	for pos <= len(input) {
		start, end, ok := matcher.FindFrom(input, pos)
		if !ok {
			break
		}
		occs = append(occs, occ{start, end})
		if !global {
			break
		}
		if end > start {
			pos = end
		} else {
			pos = start + 1
		}
	}

	if len(occs) == 0 {
		return input, nil, nil
	}

	outLen := len(input)
	for _, o := range occs {
		outLen += len(replacement) - (o.end - o.start)
	}

	out, err := allocOutput(outLen)
	if err != nil {
		return nil, nil, err
	}
	records := make([]SubstRecord, len(occs))
	src := 0
	lineNum := uint32(0)
	scanned := 0
	for i, o := range occs {
		out = append(out, input[src:o.start]...)
		out = append(out, replacement...)
		src = o.end

		lineNum += uint32(bytes.Count(input[scanned:o.start], []byte{'\n'}))
		scanned = o.start
		records[i] = SubstRecord{
			Position: uint32(o.start),
			MatchLen: uint32(o.end - o.start),
			LineNum:  lineNum,
		}
	}
	out = append(out, input[src:]...)

	return out, records, nil
}

// allocOutput builds the exact-size buffer Substitute sized up front,
// converting a too-large allocation into a typed error instead of a crash. A
// negative n can only arise from a matcher returning end < start, which
// would otherwise panic inside make with a far less informative message.
func allocOutput(n int) (out []byte, err error) {
	if n < 0 {
		return nil, &AllocError{Err: fmt.Errorf("negative output length %d", n)}
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &AllocError{Err: fmt.Errorf("%v", r)}
		}
	}()
	return make([]byte, 0, n), nil
}
