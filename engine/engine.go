// Package engine drives the per-line scanning pipeline and the
// whole-buffer substitution pipeline, composing the literal/regex matchers
// and the field splitter.
package engine

import (
	"github.com/e-jerk/gawk/fields"
	"github.com/e-jerk/gawk/internal/simd"
)

// MatchRecord describes one selected line. Start/end offsets are absolute
// within the input buffer except MatchStart/MatchEnd, which are relative to
// LineStart. MatchStart == MatchEnd == 0 whenever the match concept does
// not apply: an empty pattern, or a line selected only because invert
// matching flipped a non-match into a selection.
type MatchRecord struct {
	LineStart  uint32
	LineEnd    uint32
	MatchStart uint32
	MatchEnd   uint32
	LineNum    uint32
	FieldCount int
}

// FieldRecord is one field of one selected line. FieldIdx is 1-indexed per
// the field-numbering convention; Start/End are relative to the owning
// line's LineStart.
type FieldRecord struct {
	LineIdx  int
	FieldIdx int
	Start    uint32
	End      uint32
}

// Matcher abstracts the literal and regex matchers so the line engine does
// not need to know which one it is driving. Find returns the leftmost match
// within line, or ok=false if the pattern does not occur.
type Matcher interface {
	Find(line []byte) (start, end int, ok bool)
}

// Config carries the per-scan knobs the line engine needs beyond the
// matcher itself.
type Config struct {
	// InvertMatch selects a line iff the pattern does NOT match.
	InvertMatch bool

	// Separator controls field splitting for selected lines.
	Separator fields.Separator

	// ExtractFields enables field enumeration; leaving it false skips the
	// splitter entirely when the caller has no use for field offsets (e.g. a
	// line-count-only scan). The data model's field-extraction flag exists for
	// exactly this toggle.
	ExtractFields bool
}

// Result holds the line engine's two output arrays.
type Result struct {
	Matches []MatchRecord
	Fields  []FieldRecord
}

// ScanLines delimits input into lines with find_next_newline, tests each
// line against matcher (nil meaning "empty pattern", which always matches),
// applies invert_match, and for every selected line appends a match record
// and that line's field records.
func ScanLines(input []byte, matcher Matcher, cfg Config) Result {
	var res Result

	offset := 0
	lineNum := uint32(0)
	for offset < len(input) {
		nl := simd.FindNewline(input, offset)
		lineStart := offset
		line := input[lineStart:nl]

		matched, matchStart, matchEnd := testLine(line, matcher)
		if matched != cfg.InvertMatch {
			res = appendSelected(res, lineStart, nl, matchStart, matchEnd, lineNum, line, cfg)
		}

		lineNum++
		if nl >= len(input) {
			break
		}
		offset = nl + 1
	}

	return res
}

// TestLine applies one matcher to one line using the same nil-means-
// empty-pattern and no-match-means-zero-offsets rules ScanLines uses. The
// GPU kernel stand-in reuses this so both paths test a line identically —
// a single source of truth for what "a line matches" means.
func TestLine(line []byte, matcher Matcher) (matched bool, start, end int) {
	return testLine(line, matcher)
}

func testLine(line []byte, matcher Matcher) (matched bool, start, end int) {
	if matcher == nil {
		return true, 0, 0
	}
	start, end, matched = matcher.Find(line)
	if !matched {
		return false, 0, 0
	}
	return true, start, end
}

func appendSelected(res Result, lineStart, lineEnd, matchStart, matchEnd int, lineNum uint32, line []byte, cfg Config) Result {
	fieldCount := 0
	if cfg.ExtractFields {
		lineIdx := len(res.Matches)
		splitStart := len(res.Fields)

		var raw []fields.Record
		raw, fieldCount = fields.Split(nil, line, cfg.Separator)
		res.Fields = append(res.Fields, make([]FieldRecord, len(raw))...)
		for i, r := range raw {
			res.Fields[splitStart+i] = FieldRecord{
				LineIdx:  lineIdx,
				FieldIdx: i + 1,
				Start:    uint32(r.Start),
				End:      uint32(r.End),
			}
		}
	}

	res.Matches = append(res.Matches, MatchRecord{
		LineStart:  uint32(lineStart),
		LineEnd:    uint32(lineEnd),
		MatchStart: uint32(matchStart),
		MatchEnd:   uint32(matchEnd),
		LineNum:    lineNum,
		FieldCount: fieldCount,
	})
	return res
}
