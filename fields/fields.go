// Package fields implements the line field splitter: whitespace,
// single-byte, and multi-byte separator modes.
package fields

import "github.com/e-jerk/gawk/internal/simd"

// Record is one field within a line, offsets relative to the line's own
// start (matching the line-relative convention the rest of the data model
// uses for field records).
type Record struct {
	Start int
	End   int
}

// Separator selects which of the three splitting modes Split uses.
type Separator struct {
	// Whitespace selects mode 1 (runs of space/tab collapse, no leading or
	// trailing empty fields) when true; Bytes is ignored in that case.
	Whitespace bool

	// Bytes is the separator string for modes 2 (single byte) and 3
	// (multi-byte, matched exactly). Mode is chosen by len(Bytes): exactly
	// one byte selects single-byte mode, more than one selects multi-byte.
	Bytes []byte
}

// Split segments line into fields according to sep, appending Records to
// the caller-supplied slice and returning the extended slice along with the
// field count. The three modes are mutually exclusive per line; Whitespace
// takes priority when set regardless of what Bytes holds.
func Split(out []Record, line []byte, sep Separator) ([]Record, int) {
	start := len(out)
	switch {
	case sep.Whitespace:
		out = splitWhitespace(out, line)
	case len(sep.Bytes) == 1:
		out = splitSingleByte(out, line, sep.Bytes[0])
	case len(sep.Bytes) > 1:
		out = splitMultiByte(out, line, sep.Bytes)
	default:
		// No separator configured at all: treat the whole line as one field,
		// matching whitespace mode's handling of a line with no separator
		// bytes in it.
		if len(line) > 0 {
			out = append(out, Record{Start: 0, End: len(line)})
		}
	}
	return out, len(out) - start
}

// splitWhitespace implements mode 1: runs of space/tab collapse, leading
// and trailing whitespace produce no empty field. Windows of at least 32
// bytes get the vectorised pre-check described for this mode: if the window
// has no whitespace at all, it is known to lie entirely inside the current
// field and the scan can jump straight past it.
func splitWhitespace(out []Record, line []byte) []Record {
	const preCheckWindow = 32

	i := 0
	n := len(line)
	for i < n {
		// Skip any separator run.
		for i < n && simd.IsWhitespace(line[i]) {
			i++
		}
		if i >= n {
			break
		}
		fieldStart := i
		for i < n {
			if i+preCheckWindow <= n && !simd.HasWhitespace(line[i:i+preCheckWindow]) {
				i += preCheckWindow
				continue
			}
			if simd.IsWhitespace(line[i]) {
				break
			}
			i++
		}
		out = append(out, Record{Start: fieldStart, End: i})
	}
	return out
}

// splitSingleByte implements mode 2: every occurrence of sep is a field
// boundary, including adjacent ones, which yields empty fields. This is the
// documented deviation from the no-empty-field invariant, scoped to this
// mode and mode 3 only.
func splitSingleByte(out []Record, line []byte, sep byte) []Record {
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == sep {
			out = append(out, Record{Start: start, End: i})
			start = i + 1
		}
	}
	out = append(out, Record{Start: start, End: len(line)})
	return out
}

// splitMultiByte implements mode 3: the separator string is matched
// exactly; each occurrence advances past the whole separator. Empty fields
// are allowed exactly as in mode 2.
func splitMultiByte(out []Record, line []byte, sep []byte) []Record {
	start := 0
	i := 0
	n := len(line)
	m := len(sep)
	for i <= n-m {
		if matchesAt(line, i, sep) {
			out = append(out, Record{Start: start, End: i})
			i += m
			start = i
			continue
		}
		i++
	}
	out = append(out, Record{Start: start, End: n})
	return out
}

func matchesAt(line []byte, pos int, sep []byte) bool {
	for i, b := range sep {
		if line[pos+i] != b {
			return false
		}
	}
	return true
}
