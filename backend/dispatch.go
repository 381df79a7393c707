package backend

import (
	"github.com/e-jerk/gawk/internal/simd"
	"github.com/e-jerk/gawk/literal"
	"github.com/e-jerk/gawk/nfa"
)

// Request describes one scan or substitution to dispatch.
type Request struct {
	// Pattern is the raw pattern bytes as supplied by the caller.
	Pattern []byte

	// CaseInsensitive folds ASCII letters before matching.
	CaseInsensitive bool

	// InputLen is the length of the buffer this request will run over,
	// used for the auto-mode GPU size threshold.
	InputLen int

	// Requested is the caller's explicit backend preference.
	Requested Backend

	// Substitution marks this request as feeding the substitution engine
	// rather than the line engine; a regex-classified substitution always
	// runs on CPU regardless of Requested.
	Substitution bool
}

// Decision is what the dispatcher chose and the resources that choice
// needs: exactly one of Literal or Regex is populated, matching whichever
// Strategy was selected.
type Decision struct {
	Strategy Strategy
	Literal  *literal.Matcher
	Regex    *nfa.Program
}

// Dispatcher classifies patterns and picks a Strategy per §4.H's selection
// rules, caching compiled regex programs across repeated calls.
type Dispatcher struct {
	cache *ProgramCache
	gpu   GPUProbe
}

// NewDispatcher creates a Dispatcher. A nil gpu probe is treated as
// Unavailable, so GPU is never selected unless a real probe is supplied.
func NewDispatcher(cache *ProgramCache, gpu GPUProbe) *Dispatcher {
	if cache == nil {
		cache = NewProgramCache(0)
	}
	if gpu == nil {
		gpu = Unavailable{}
	}
	return &Dispatcher{cache: cache, gpu: gpu}
}

// Dispatch classifies req.Pattern and selects a Strategy. A pattern that
// fails regex classification always dispatches to a literal strategy; a
// pattern that fails to compile as a regex falls back to the literal
// matcher over the raw pattern bytes, the defined contract for a
// regex-compile error.
func (d *Dispatcher) Dispatch(req Request) (Decision, error) {
	if !nfa.IsRegexLike(req.Pattern) {
		return d.literalDecision(req), nil
	}

	prog, err := d.cache.Get(string(req.Pattern), req.CaseInsensitive)
	if err != nil {
		return d.literalDecision(req), nil
	}

	dec := Decision{Regex: prog}
	switch {
	case req.Substitution:
		dec.Strategy = RegexCPU
	case d.WantsGPU(req):
		dec.Strategy = GPURegex
	default:
		dec.Strategy = RegexCPU
	}
	return dec, nil
}

func (d *Dispatcher) literalDecision(req Request) Decision {
	pattern := req.Pattern
	if req.CaseInsensitive {
		lowered := make([]byte, len(pattern))
		simd.ToLower(lowered, pattern)
		pattern = lowered
	}

	dec := Decision{Literal: literal.New(pattern, req.CaseInsensitive)}
	if d.WantsGPU(req) {
		dec.Strategy = GPULiteral
	} else {
		dec.Strategy = LiteralCPU
	}
	return dec
}

// WantsGPU applies §4.H's selection rules: an explicit CPU request always
// wins, an explicit GPU request is honoured unless the probe says
// unavailable, and auto mode only considers GPU once input.len reaches
// MinGPUSize.
func (d *Dispatcher) WantsGPU(req Request) bool {
	switch req.Requested {
	case CPU:
		return false
	case GPU:
		return d.gpu.Available()
	default:
		if req.InputLen < MinGPUSize {
			return false
		}
		return d.gpu.Available()
	}
}
