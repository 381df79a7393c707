// Package nfa compiles the ERE-subset dialect into a Thompson NFA and
// executes it with a Pike-VM style multi-state simulation.
package nfa

import "fmt"

// StateID uniquely identifies a state within a Program.
type StateID uint32

// InvalidState marks an unset or out-of-range state reference.
const InvalidState StateID = 0xFFFFFFFF

// Kind identifies the role of a state and which of its fields are valid.
// This mirrors the tag set named by the data model: every compiled program
// state is one of these twelve kinds.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindCharClass
	KindDot
	KindAny
	KindSplit
	KindMatch
	KindGroupStart
	KindGroupEnd
	KindWordBoundary
	KindNotWordBoundary
	KindLineStart
	KindLineEnd
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindCharClass:
		return "char_class"
	case KindDot:
		return "dot"
	case KindAny:
		return "any"
	case KindSplit:
		return "split"
	case KindMatch:
		return "match"
	case KindGroupStart:
		return "group_start"
	case KindGroupEnd:
		return "group_end"
	case KindWordBoundary:
		return "word_boundary"
	case KindNotWordBoundary:
		return "not_word_boundary"
	case KindLineStart:
		return "line_start"
	case KindLineEnd:
		return "line_end"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// State is one node of the compiled NFA. Only the fields relevant to Kind
// are meaningful; the rest are left zero. Up to two out-edges (out, alt)
// cover every kind: consuming/zero-width states use only out, split uses
// both.
type State struct {
	Kind Kind

	// Out is the successor for every kind except Match, which has none. For
	// Split it is the first (higher-priority) branch, with Alt the second.
	Out StateID

	// Alt is the second branch of a Split state.
	Alt StateID

	// CaseInsensitive marks that Byte/ClassOffset comparisons should lower
	// the input byte before testing.
	CaseInsensitive bool

	// Byte holds the literal byte for KindLiteral.
	Byte byte

	// GroupIndex holds the capture group number for KindGroupStart/KindGroupEnd.
	GroupIndex uint32

	// ClassOffset indexes into the Program's bitmap pool for KindCharClass,
	// in units of bitmapWords (8 uint32 words = 256 bits per class).
	ClassOffset uint32
}

const bitmapWords = 8 // 256 bits per character class, per the data model.

// Bitmap is a 256-bit set of byte values, one bit per possible byte value.
type Bitmap [bitmapWords]uint32

// Set marks b as a member of the bitmap.
func (bm *Bitmap) Set(b byte) {
	bm[b/32] |= 1 << (b % 32)
}

// Test reports whether b is a member of the bitmap.
func (bm *Bitmap) Test(b byte) bool {
	return bm[b/32]&(1<<(b%32)) != 0
}

// Negate flips every bit in the bitmap in place, used for `[^...]` classes.
func (bm *Bitmap) Negate() {
	for i := range bm {
		bm[i] = ^bm[i]
	}
}

// FoldLower ORs the lowercase counterpart of every set uppercase-letter bit
// into the bitmap. Compiling a class under case_insensitive folds it this
// way once, at compile time, so the executor only has to lower the input
// byte before testing membership rather than re-deriving both cases on
// every byte.
func (bm *Bitmap) FoldLower() {
	for b := byte('A'); b <= 'Z'; b++ {
		if bm.Test(b) {
			bm.Set(b + 32)
		}
	}
}

// Flags is the header's global-flags bitset. It is separate from the flags
// word used at the GPU/config boundary (gpu.Flags): only bit 0
// (case-insensitive) has the same meaning in both.
type Flags uint32

const (
	FlagCaseInsensitive Flags = 1 << 0
	FlagAnchoredStart   Flags = 1 << 1
	FlagAnchoredEnd     Flags = 1 << 2
)

// Program is a compiled NFA: the header, state list, and shared bitmap pool
// described by the data model.
type Program struct {
	States       []State
	Start        StateID
	CaptureCount int
	Flags        Flags
	Bitmaps      []Bitmap

	// Source is the original pattern text, kept for diagnostics.
	Source string

	// Literals holds the bypass automaton when the whole pattern reduces to
	// an alternation of plain literals (see altliteral.go). Nil otherwise.
	Literals *literalAlternation
}

func (p *Program) state(id StateID) *State {
	if id == InvalidState || int(id) >= len(p.States) {
		return nil
	}
	return &p.States[id]
}

func (p *Program) bitmap(offset uint32) *Bitmap {
	if int(offset) >= len(p.Bitmaps) {
		return nil
	}
	return &p.Bitmaps[offset]
}

// IsAnchoredStart reports whether the pattern requires matching at offset 0.
func (p *Program) IsAnchoredStart() bool {
	return p.Flags&FlagAnchoredStart != 0
}

// IsAnchoredEnd reports whether the pattern requires matching at end of input.
func (p *Program) IsAnchoredEnd() bool {
	return p.Flags&FlagAnchoredEnd != 0
}
