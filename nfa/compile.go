package nfa

import "github.com/e-jerk/gawk/internal/simd"

// patch is a dangling out-edge awaiting a target: either the Out or the Alt
// field of state Id, depending on alt.
type patch struct {
	id  StateID
	alt bool
}

// frag is a fragment of the NFA under construction: a single entry state
// plus the list of dangling exits that the surrounding construction must
// eventually patch to the fragment's continuation. This is the classic
// Thompson-construction fragment discipline: build with holes, patch once
// the next piece's start state is known.
type frag struct {
	start StateID
	out   []patch
}

// Compiler walks a parsed pattern and emits a Program via a Builder.
type Compiler struct {
	b               *Builder
	caseInsensitive bool
}

// CompileError wraps a failure anywhere in parsing or Thompson construction.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return "regex compile error for " + quotePattern(e.Pattern) + ": " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }

func quotePattern(s string) string {
	return "\"" + s + "\""
}

// Compile parses pattern as an ERE-subset expression and emits a Program.
// Parsing ignores case; when caseInsensitive is set, compilation lowers
// literal bytes and folds class bitmaps, and marks those states so the
// executor lowers each input byte before comparing.
func Compile(pattern string, caseInsensitive bool) (*Program, error) {
	ast, groupCount, err := parsePattern(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	c := &Compiler{b: NewBuilder(), caseInsensitive: caseInsensitive}
	f, err := c.compile(ast)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	matchState := c.b.AddMatch()
	c.patchAll(f.out, matchState)
	c.b.SetStart(f.start)

	var flags Flags
	if caseInsensitive {
		flags |= FlagCaseInsensitive
	}
	if startsAnchored(ast) {
		flags |= FlagAnchoredStart
	}
	if endsAnchored(ast) {
		flags |= FlagAnchoredEnd
	}

	prog := c.b.Build(groupCount, flags, pattern)

	// The Aho-Corasick bypass only ever gives leftmost-first semantics, so it
	// is attached alongside the full NFA rather than in place of it: the
	// executor takes it for a non-longest search and falls through to the
	// NFA whenever POSIX leftmost-longest is requested (see Executor.Search).
	prog.Literals = tryLiteralAlternation(ast, caseInsensitive)
	return prog, nil
}

func (c *Compiler) patchAll(patches []patch, target StateID) {
	for _, p := range patches {
		if p.alt {
			c.b.PatchAlt(p.id, target)
		} else {
			c.b.Patch(p.id, target)
		}
	}
}

func (c *Compiler) compile(node astNode) (frag, error) {
	switch n := node.(type) {
	case astLiteral:
		byt := n.b
		if c.caseInsensitive {
			byt = simd.ToLowerByte(byt)
		}
		s := c.b.AddLiteral(byt, c.caseInsensitive, InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astCharClass:
		bm := n.bm
		if c.caseInsensitive {
			bm.FoldLower()
		}
		s := c.b.AddCharClass(bm, c.caseInsensitive, InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astDot:
		s := c.b.AddDot(InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astLineStart:
		s := c.b.AddLineStart(InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astLineEnd:
		s := c.b.AddLineEnd(InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astWordBoundary:
		s := c.b.AddWordBoundary(InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astNotWordBoundary:
		s := c.b.AddNotWordBoundary(InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astEmpty:
		// A zero-width passthrough. There is no dedicated "do nothing" state
		// kind in this dialect's state set, so an unused capture-group slot
		// (index 0, never emitted by the parser for a real group) doubles
		// as the epsilon marker: it consumes no input and asserts nothing.
		s := c.b.AddGroupStart(0, InvalidState)
		return frag{start: s, out: []patch{{id: s}}}, nil

	case astConcat:
		return c.compileConcat(n.subs)

	case astAlternate:
		return c.compileAlternate(n.subs)

	case astStar:
		return c.compileStar(n.sub)

	case astPlus:
		return c.compilePlus(n.sub)

	case astQuest:
		return c.compileQuest(n.sub)

	case astGroup:
		return c.compileGroup(n.sub, n.index)

	default:
		panic("nfa: unhandled ast node in compile")
	}
}

func (c *Compiler) compileConcat(subs []astNode) (frag, error) {
	first, err := c.compile(subs[0])
	if err != nil {
		return frag{}, err
	}
	result := first
	for _, sub := range subs[1:] {
		next, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		c.patchAll(result.out, next.start)
		result = frag{start: result.start, out: next.out}
	}
	return result, nil
}

// compileAlternate builds a right-leaning chain of Split states, mirroring
// the teacher's buildSplitChain: each split's Out edge holds one alternative
// and its Alt edge the rest of the chain, so earlier alternatives have
// priority in leftmost-first execution.
func (c *Compiler) compileAlternate(subs []astNode) (frag, error) {
	frags := make([]frag, len(subs))
	for i, sub := range subs {
		f, err := c.compile(sub)
		if err != nil {
			return frag{}, err
		}
		frags[i] = f
	}

	combined := frags[len(frags)-1]
	for i := len(frags) - 2; i >= 0; i-- {
		split := c.b.AddSplit(frags[i].start, combined.start)
		out := append(append([]patch{}, frags[i].out...), combined.out...)
		combined = frag{start: split, out: out}
	}
	return combined, nil
}

func (c *Compiler) compileStar(sub astNode) (frag, error) {
	f, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	split := c.b.AddSplit(f.start, InvalidState)
	c.patchAll(f.out, split)
	return frag{start: split, out: []patch{{id: split, alt: true}}}, nil
}

func (c *Compiler) compilePlus(sub astNode) (frag, error) {
	f, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	split := c.b.AddSplit(f.start, InvalidState)
	c.patchAll(f.out, split)
	return frag{start: f.start, out: []patch{{id: split, alt: true}}}, nil
}

func (c *Compiler) compileQuest(sub astNode) (frag, error) {
	f, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	split := c.b.AddSplit(f.start, InvalidState)
	out := append(append([]patch{}, f.out...), patch{id: split, alt: true})
	return frag{start: split, out: out}, nil
}

func (c *Compiler) compileGroup(sub astNode, index uint32) (frag, error) {
	f, err := c.compile(sub)
	if err != nil {
		return frag{}, err
	}
	start := c.b.AddGroupStart(index, f.start)
	end := c.b.AddGroupEnd(index, InvalidState)
	c.patchAll(f.out, end)
	return frag{start: start, out: []patch{{id: end}}}, nil
}

// startsAnchored reports whether node necessarily begins with a line-start
// assertion, used to set the header's anchored-start flag as a search-time
// shortcut (see executor.go).
func startsAnchored(node astNode) bool {
	switch n := node.(type) {
	case astLineStart:
		return true
	case astConcat:
		if len(n.subs) == 0 {
			return false
		}
		return startsAnchored(n.subs[0])
	case astGroup:
		return startsAnchored(n.sub)
	case astAlternate:
		for _, s := range n.subs {
			if !startsAnchored(s) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// endsAnchored reports whether node necessarily ends with a line-end
// assertion.
func endsAnchored(node astNode) bool {
	switch n := node.(type) {
	case astLineEnd:
		return true
	case astConcat:
		if len(n.subs) == 0 {
			return false
		}
		return endsAnchored(n.subs[len(n.subs)-1])
	case astGroup:
		return endsAnchored(n.sub)
	case astAlternate:
		for _, s := range n.subs {
			if !endsAnchored(s) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
