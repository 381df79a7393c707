// Package gpu implements the host-side half of the GPU kernel contract:
// the upload layouts, the bounded output arrays with silent truncation, and
// a goroutine-pool kernel stand-in fenced with a sync.WaitGroup in place of
// a real compute-shader dispatch and fence wait. No GPU compute binding was
// available to adapt, so this package is the observable contract only —
// ordering, truncation, field-count patch-back — not a real hardware path.
package gpu

import (
	"github.com/e-jerk/gawk/internal/simd"
	"github.com/e-jerk/gawk/nfa"
)

// Flags is the serialised bit layout shared between GPU config and the
// Options set at the external boundary.
type Flags uint32

const (
	FlagCaseInsensitive Flags = 1 << iota
	FlagPrintLineNumber
	FlagFieldExtraction
	FlagSubstitutionMode
	FlagGlobalSubstitution
	FlagInvertMatch
	// FlagRegexFieldSeparator is reserved; not implemented in this scope.
	FlagRegexFieldSeparator
)

// LineTable is the per-line offset/length arrays the host must precompute
// before a GPU dispatch — line boundary discovery is not on the GPU
// critical path in this scope.
type LineTable struct {
	Offsets []uint32
	Lengths []uint32
}

// BuildLineTable delimits input into lines with find_next_newline, the same
// primitive the CPU line engine uses, so both paths agree on where lines
// start and end.
func BuildLineTable(input []byte) LineTable {
	var lt LineTable
	offset := 0
	for offset < len(input) {
		nl := simd.FindNewline(input, offset)
		lt.Offsets = append(lt.Offsets, uint32(offset))
		lt.Lengths = append(lt.Lengths, uint32(nl-offset))
		if nl >= len(input) {
			break
		}
		offset = nl + 1
	}
	return lt
}

// MatchRecord is the extern-struct layout for a match record: explicit
// 32-bit fields plus 8 bytes of tail padding for GPU alignment.
type MatchRecord struct {
	LineStart  uint32
	LineEnd    uint32
	MatchStart uint32
	MatchEnd   uint32
	LineNum    uint32
	FieldCount uint32
	_          [8]byte
}

// FieldRecord is the extern-struct layout for a field record.
type FieldRecord struct {
	LineIdx  uint32
	FieldIdx uint32
	Start    uint32
	End      uint32
}

// LiteralUpload is what the host precomputes and uploads for literal
// matching: the (possibly case-lowered) pattern and its skip table.
type LiteralUpload struct {
	Pattern []byte
	Skip    [256]byte
}

// RegexUpload is what the host precomputes and uploads for regex matching:
// the compiled NFA states, its bitmap pool, and header fields. It wraps the
// same *nfa.Program the CPU executor interprets directly rather than
// round-tripping it through a separate byte layout, since a *nfa.Program
// already is the states/bitmap-pool/header representation §3 specifies and
// there is no real device-side consumer in this scope to serialise for —
// one compiled representation serves both paths, per the single-source-of-
// truth requirement for CPU/GPU parity.
type RegexUpload struct {
	Prog *nfa.Program
}
