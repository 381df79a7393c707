package gawk

import (
	"github.com/e-jerk/gawk/backend"
	"github.com/e-jerk/gawk/engine"
	"github.com/e-jerk/gawk/fields"
	"github.com/e-jerk/gawk/gpu"
	"github.com/e-jerk/gawk/nfa"
)

// Fixed constants exposed at the external boundary, re-exported from
// backend (where they are defined; the dispatcher, the gpu package and
// Scan consult them) under the names the interface documents.
const (
	MinGPUSize       = backend.MinGPUSize
	MaxGPUBufferSize = backend.MaxGPUBufferSize
	MaxPatternLen    = backend.MaxPatternLen
	MaxResults       = backend.MaxResults
	MaxFields        = backend.MaxFields
	MaxFieldSepLen   = backend.MaxFieldSepLen
)

// Backend is the caller's explicit backend preference, re-exported from
// backend so callers never need to import that package directly.
type Backend = backend.Backend

const (
	Auto = backend.Auto
	CPU  = backend.CPU
	GPU  = backend.GPU
)

// Strategy identifies which of the four execution paths actually served a
// request.
type Strategy = backend.Strategy

// MatchRecord, FieldRecord, and SubstRecord are the three record types the
// data model defines, re-exported from engine so callers only ever need to
// import this package.
type (
	MatchRecord = engine.MatchRecord
	FieldRecord = engine.FieldRecord
	SubstRecord = engine.SubstRecord
)

// Options recognises exactly the semantic keys the data model names.
type Options struct {
	// CaseInsensitive folds [A-Z] to [a-z] for matching and skip-table
	// construction.
	CaseInsensitive bool

	// InvertMatch selects a line iff the pattern does NOT match.
	InvertMatch bool

	// FieldSeparator is the byte string defining field boundaries. A nil
	// or empty value selects whitespace mode, the AWK default; a single
	// byte selects single-byte mode; more than one byte selects
	// multi-byte mode.
	FieldSeparator []byte

	// OutputFieldSeparator is placed between emitted fields by the
	// collaborator; the core carries it through but never reads it.
	OutputFieldSeparator []byte

	// RequestedFields is an ordered list of 1-indexed field numbers. It is
	// purely informational for the core, which always returns every
	// field; a collaborator uses it to select which to print.
	RequestedFields []int

	// GlobalSubstitution replaces every non-overlapping match rather than
	// only the first.
	GlobalSubstitution bool

	// Backend is the caller's explicit backend preference.
	Backend Backend

	// PosixMode selects leftmost-longest tie-breaking between alternation
	// branches tied at the same start position; the default is
	// leftmost-first (first alternative, greedy).
	PosixMode bool

	// PrintLineNumber is informational for a host collaborator (flags
	// word bit 1); the core does not change behaviour based on it.
	PrintLineNumber bool
}

func (o Options) separator() fields.Separator {
	switch len(o.FieldSeparator) {
	case 0:
		return fields.Separator{Whitespace: true}
	default:
		return fields.Separator{Bytes: o.FieldSeparator}
	}
}

// Flags serialises Options into the bit layout §6 defines for GPU config
// and for the Options set at the external boundary. substitution marks bit
// 3, since whether this call is a Scan or a Substitute is not itself part
// of Options.
func (o Options) Flags(substitution bool) gpu.Flags {
	var f gpu.Flags
	if o.CaseInsensitive {
		f |= gpu.FlagCaseInsensitive
	}
	if o.PrintLineNumber {
		f |= gpu.FlagPrintLineNumber
	}
	f |= gpu.FlagFieldExtraction
	if substitution {
		f |= gpu.FlagSubstitutionMode
	}
	if o.GlobalSubstitution {
		f |= gpu.FlagGlobalSubstitution
	}
	if o.InvertMatch {
		f |= gpu.FlagInvertMatch
	}
	return f
}

// CompileRegex compiles pattern as a regular expression, wrapping a parse
// or build failure in *CompileError. Scan and Substitute never call this
// directly — they go through the dispatcher's cache, which downgrades a
// compile failure to the literal matcher silently — but a caller validating
// a pattern ahead of time (e.g. at config-load time) can use this to get an
// explicit, typed error instead of a later silent downgrade.
func CompileRegex(pattern string, caseInsensitive bool) (*nfa.Program, error) {
	prog, err := nfa.Compile(pattern, caseInsensitive)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return prog, nil
}
