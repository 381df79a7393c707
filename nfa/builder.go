package nfa

// Builder constructs a Program incrementally, following the same
// add-then-patch discipline the compiler's fragment construction relies on:
// a fragment is built with its tail left dangling (InvalidState), then
// patched once the following fragment's start state is known.
type Builder struct {
	states  []State
	bitmaps []Bitmap
	start   StateID
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 32)}
}

func (b *Builder) add(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// AddLiteral adds a state matching a single byte.
func (b *Builder) AddLiteral(byt byte, caseInsensitive bool, out StateID) StateID {
	return b.add(State{Kind: KindLiteral, Byte: byt, CaseInsensitive: caseInsensitive, Out: out})
}

// AddCharClass adds a state matching any byte set in bm, registering bm in
// the shared bitmap pool and returning the new state.
func (b *Builder) AddCharClass(bm Bitmap, caseInsensitive bool, out StateID) StateID {
	offset := uint32(len(b.bitmaps))
	b.bitmaps = append(b.bitmaps, bm)
	return b.add(State{Kind: KindCharClass, ClassOffset: offset, CaseInsensitive: caseInsensitive, Out: out})
}

// AddDot adds a state matching any byte except '\n'.
func (b *Builder) AddDot(out StateID) StateID {
	return b.add(State{Kind: KindDot, Out: out})
}

// AddAny adds a state matching any byte, including '\n'.
func (b *Builder) AddAny(out StateID) StateID {
	return b.add(State{Kind: KindAny, Out: out})
}

// AddSplit adds a zero-width state with two out-edges, used for alternation
// and quantifier expansion.
func (b *Builder) AddSplit(out, alt StateID) StateID {
	return b.add(State{Kind: KindSplit, Out: out, Alt: alt})
}

// AddMatch adds a terminal accepting state.
func (b *Builder) AddMatch() StateID {
	return b.add(State{Kind: KindMatch})
}

// AddGroupStart adds a zero-width capture-open marker.
func (b *Builder) AddGroupStart(index uint32, out StateID) StateID {
	return b.add(State{Kind: KindGroupStart, GroupIndex: index, Out: out})
}

// AddGroupEnd adds a zero-width capture-close marker.
func (b *Builder) AddGroupEnd(index uint32, out StateID) StateID {
	return b.add(State{Kind: KindGroupEnd, GroupIndex: index, Out: out})
}

// AddWordBoundary adds a zero-width \b assertion.
func (b *Builder) AddWordBoundary(out StateID) StateID {
	return b.add(State{Kind: KindWordBoundary, Out: out})
}

// AddNotWordBoundary adds a zero-width \B assertion.
func (b *Builder) AddNotWordBoundary(out StateID) StateID {
	return b.add(State{Kind: KindNotWordBoundary, Out: out})
}

// AddLineStart adds a zero-width ^ assertion.
func (b *Builder) AddLineStart(out StateID) StateID {
	return b.add(State{Kind: KindLineStart, Out: out})
}

// AddLineEnd adds a zero-width $ assertion.
func (b *Builder) AddLineEnd(out StateID) StateID {
	return b.add(State{Kind: KindLineEnd, Out: out})
}

// Patch redirects a dangling Out edge to target. A Split's Alt edge is
// patched separately with PatchAlt, since star/plus/quest construction
// leaves only that edge dangling.
func (b *Builder) Patch(id, target StateID) {
	if id == InvalidState {
		return
	}
	b.states[id].Out = target
}

// PatchAlt redirects a Split state's Alt out-edge.
func (b *Builder) PatchAlt(id, target StateID) {
	if id == InvalidState {
		return
	}
	b.states[id].Alt = target
}

// SetStart records the program's entry state.
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// NumStates returns the number of states added so far.
func (b *Builder) NumStates() int {
	return len(b.states)
}

// Build finalizes the builder into a Program. captureCount and flags are
// supplied by the compiler, which tracks them across the whole parse.
func (b *Builder) Build(captureCount int, flags Flags, source string) *Program {
	return &Program{
		States:       b.states,
		Start:        b.start,
		CaptureCount: captureCount,
		Flags:        flags,
		Bitmaps:      b.bitmaps,
		Source:       source,
	}
}
