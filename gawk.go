package gawk

import (
	"github.com/e-jerk/gawk/backend"
	"github.com/e-jerk/gawk/engine"
	"github.com/e-jerk/gawk/gpu"
	"github.com/e-jerk/gawk/nfa"
)

// ScanResult is the line engine's output plus which strategy actually
// served the request.
type ScanResult struct {
	Matches []MatchRecord
	Fields  []FieldRecord

	// Strategy names which of the four execution paths ran.
	Strategy Strategy

	// Dropped is the number of match records silently truncated because a
	// GPU path's bounded output array was full. It is always zero for a
	// CPU strategy.
	Dropped uint32
}

// Scanner holds the long-lived state a sequence of Scan/Substitute calls
// can share: a compiled-program cache and the executor/kernel pair that run
// against it. A Scanner is safe for concurrent use from multiple
// goroutines, since the compiled programs it caches are read-only and the
// executor and kernel each hand out their own per-call scratch state.
type Scanner struct {
	dispatcher *backend.Dispatcher
	executor   *nfa.Executor
	kernel     *gpu.Kernel
}

// NewScanner creates a Scanner with the kernel stand-in wired in as the GPU
// probe, so auto-mode dispatch can actually select a GPU strategy for
// large inputs. Use NewScannerWithProbe with backend.Unavailable{} to force
// CPU-only behaviour instead.
func NewScanner() *Scanner {
	return &Scanner{
		dispatcher: backend.NewDispatcher(nil, gpu.Probe{}),
		executor:   nfa.NewExecutor(),
		kernel:     gpu.NewKernel(0),
	}
}

// NewScannerWithProbe creates a Scanner using a caller-supplied GPU probe,
// letting tests and CPU-only embedders force every dispatch to the CPU
// path via backend.Unavailable{}.
func NewScannerWithProbe(probe backend.GPUProbe) *Scanner {
	return &Scanner{
		dispatcher: backend.NewDispatcher(nil, probe),
		executor:   nfa.NewExecutor(),
		kernel:     gpu.NewKernel(0),
	}
}

// Scan drives the line engine over input with pattern and opts, selecting
// among the literal-CPU, regex-CPU, GPU-literal, and GPU-regex strategies
// per the backend dispatcher's rules. An empty pattern matches every line
// trivially, bypassing classification entirely, per §4.F.
func (s *Scanner) Scan(input []byte, pattern []byte, opts Options) (*ScanResult, error) {
	req := backend.Request{
		Pattern:         pattern,
		CaseInsensitive: opts.CaseInsensitive,
		InputLen:        len(input),
		Requested:       opts.Backend,
	}

	var matcher engine.Matcher
	var strategy Strategy
	if len(pattern) == 0 {
		strategy = backend.LiteralCPU
		if s.dispatcher.WantsGPU(req) {
			strategy = backend.GPULiteral
		}
	} else {
		if opts.Backend == backend.GPU && len(input) > MaxGPUBufferSize {
			return nil, &InputTooLargeError{Len: len(input), Max: MaxGPUBufferSize}
		}
		dec, err := s.dispatcher.Dispatch(req)
		if err != nil {
			return nil, err
		}
		matcher = s.matcherFor(dec, opts.PosixMode)
		strategy = dec.Strategy
	}

	switch strategy {
	case backend.GPULiteral, backend.GPURegex:
		return s.scanGPU(input, matcher, strategy, opts), nil
	default:
		return s.scanCPU(input, matcher, strategy, opts), nil
	}
}

func (s *Scanner) scanCPU(input []byte, matcher engine.Matcher, strategy Strategy, opts Options) *ScanResult {
	res := engine.ScanLines(input, matcher, engine.Config{
		InvertMatch:   opts.InvertMatch,
		Separator:     opts.separator(),
		ExtractFields: true,
	})
	return &ScanResult{Matches: res.Matches, Fields: res.Fields, Strategy: strategy}
}

func (s *Scanner) scanGPU(input []byte, matcher engine.Matcher, strategy Strategy, opts Options) *ScanResult {
	lines := gpu.BuildLineTable(input)
	out := s.kernel.Dispatch(input, lines, matcher, opts.InvertMatch)
	matches, fieldRecs := gpu.PostProcess(input, out.Matches, opts.separator())

	return &ScanResult{
		Matches:  convertGPUMatches(matches),
		Fields:   convertGPUFields(fieldRecs),
		Strategy: strategy,
		Dropped:  out.Dropped,
	}
}

// Substitute finds every non-overlapping match of pattern in input and
// replaces it with replacement, per §4.G. Regex substitution always runs on
// CPU regardless of opts.Backend, the GPU path's defined limitation. An
// empty pattern is a no-op: there is no well-defined "replace the empty
// match everywhere" semantics in scope here.
func (s *Scanner) Substitute(input []byte, pattern []byte, replacement []byte, opts Options) ([]byte, []SubstRecord, error) {
	if len(pattern) == 0 {
		return input, nil, nil
	}

	dec, err := s.dispatcher.Dispatch(backend.Request{
		Pattern:         pattern,
		CaseInsensitive: opts.CaseInsensitive,
		InputLen:        len(input),
		Requested:       opts.Backend,
		Substitution:    true,
	})
	if err != nil {
		return nil, nil, err
	}

	matcher := s.matcherFor(dec, opts.PosixMode)
	sm, ok := matcher.(engine.SubstMatcher)
	if !ok {
		return input, nil, nil
	}

	return engine.Substitute(input, sm, replacement, opts.GlobalSubstitution)
}

func (s *Scanner) matcherFor(dec backend.Decision, posixMode bool) engine.Matcher {
	switch {
	case dec.Literal != nil:
		return engine.LiteralMatcher{M: dec.Literal}
	case dec.Regex != nil:
		return engine.RegexMatcher{Ex: s.executor, Prog: dec.Regex, Longest: posixMode}
	default:
		return nil
	}
}

func convertGPUMatches(in []gpu.MatchRecord) []MatchRecord {
	out := make([]MatchRecord, len(in))
	for i, m := range in {
		out[i] = MatchRecord{
			LineStart:  m.LineStart,
			LineEnd:    m.LineEnd,
			MatchStart: m.MatchStart,
			MatchEnd:   m.MatchEnd,
			LineNum:    m.LineNum,
			FieldCount: int(m.FieldCount),
		}
	}
	return out
}

func convertGPUFields(in []gpu.FieldRecord) []FieldRecord {
	out := make([]FieldRecord, len(in))
	for i, f := range in {
		out[i] = FieldRecord{
			LineIdx:  int(f.LineIdx),
			FieldIdx: int(f.FieldIdx),
			Start:    f.Start,
			End:      f.End,
		}
	}
	return out
}
