package nfa

import (
	"sync"

	"github.com/e-jerk/gawk/internal/simd"
	"github.com/e-jerk/gawk/internal/sparse"
)

// thread is one strand of the NFA simulation: the state it currently
// occupies and the byte offset at which it entered the graph. Priority
// between threads is never stored explicitly; it falls directly out of
// slice order, since addThread always expands a Split's Out branch (higher
// priority) fully before its Alt branch, and new unanchored start threads
// are always appended after every thread already in flight.
type thread struct {
	state StateID
	start int
}

// ExecState is the per-goroutine scratch space for a search: thread queues
// and a visited-state sparse set, sized to the program currently using it.
// Executor pools these so concurrent callers each get their own without
// allocating fresh backing arrays on every call.
type ExecState struct {
	cur      []thread
	next     []thread
	visited  *sparse.SparseSet
	capacity int
}

// Executor runs compiled Programs. It carries no mutable state of its own
// (programs are read-only and safe to share across goroutines, per the
// shared-resource policy); only the pooled ExecState is mutated during a
// search, and each goroutine borrows its own.
type Executor struct {
	pool sync.Pool
}

// NewExecutor creates an Executor ready to run searches concurrently.
func NewExecutor() *Executor {
	return &Executor{
		pool: sync.Pool{New: func() any { return &ExecState{} }},
	}
}

func (e *Executor) acquire(numStates int) *ExecState {
	st := e.pool.Get().(*ExecState)
	if st.visited == nil || st.capacity < numStates {
		st.visited = sparse.NewSparseSet(uint32(numStates))
		st.capacity = numStates
	}
	st.cur = st.cur[:0]
	st.next = st.next[:0]
	return st
}

func (e *Executor) release(st *ExecState) {
	e.pool.Put(st)
}

// Search performs an unanchored search for prog over haystack starting at
// or after offset at, using leftmost-first priority unless longest is set
// (POSIX leftmost-longest). It returns the best match's (start, end) or
// ok=false if the pattern does not occur anywhere from at onward.
func (e *Executor) Search(prog *Program, haystack []byte, at int, longest bool) (start, end int, ok bool) {
	// The Aho-Corasick bypass reports the first completed pattern during its
	// scan, which is leftmost-first by construction and has no notion of
	// "keep looking for a longer match at this same start". POSIX
	// leftmost-longest mode therefore always runs the NFA instead, even for
	// a pattern that would otherwise take the bypass.
	if prog.Literals != nil && !longest {
		return e.searchLiteralAlternation(prog, haystack, at)
	}
	return e.searchNFA(prog, haystack, at, longest)
}

func (e *Executor) searchLiteralAlternation(prog *Program, haystack []byte, at int) (int, int, bool) {
	hay := haystack
	if prog.Flags&FlagCaseInsensitive != 0 {
		lowered := make([]byte, len(haystack))
		simd.ToLower(lowered, haystack)
		hay = lowered
	}
	return prog.Literals.find(hay, at)
}

func (e *Executor) searchNFA(prog *Program, haystack []byte, at int, longest bool) (int, int, bool) {
	st := e.acquire(len(prog.States))
	defer e.release(st)

	cur := st.cur
	st.visited.Clear()

	bestStart, bestEnd := -1, -1
	injecting := true

	for pos := at; pos <= len(haystack); pos++ {
		if injecting {
			cur = addThread(cur, st.visited, prog, prog.Start, pos, pos, haystack)
			if prog.IsAnchoredStart() {
				injecting = false
			}
		}

		matchIdx := -1
		for i, t := range cur {
			if s := prog.state(t.state); s != nil && s.Kind == KindMatch {
				matchIdx = i
				break
			}
		}
		if matchIdx >= 0 {
			t := cur[matchIdx]
			take := bestStart == -1 || t.start < bestStart ||
				(t.start == bestStart && (!longest || pos > bestEnd))
			if take {
				bestStart, bestEnd = t.start, pos
			}
			// Leftmost-first: a match found now beats every thread of equal
			// or lower priority, so they are discarded along with the match
			// thread itself. Leftmost-longest: a lower-priority thread may
			// still be the one that reaches a longer match at this same
			// start, so every thread but the one that just matched keeps
			// running.
			if longest {
				cur = append(cur[:matchIdx], cur[matchIdx+1:]...)
			} else {
				cur = cur[:matchIdx]
			}
			injecting = false
		}

		if len(cur) == 0 || pos >= len(haystack) {
			break
		}

		b := haystack[pos]
		st.visited.Clear()
		next := st.next[:0]
		for _, t := range cur {
			next = stepThread(next, st.visited, prog, t, b, pos+1, haystack)
		}
		st.cur, st.next = next, cur[:0]
		cur = st.cur
	}

	if bestStart >= 0 {
		return bestStart, bestEnd, true
	}
	return -1, -1, false
}

// addThread follows the epsilon closure from state, queuing every
// input-consuming or match state it reaches and recursing through every
// zero-width state (split, group markers, anchors, boundaries). visited
// prevents a state already scheduled this generation from being queued
// twice, which both bounds the work per byte and avoids infinite recursion
// through a star/plus loop's split.
func addThread(threads []thread, visited *sparse.SparseSet, prog *Program, state StateID, start, pos int, haystack []byte) []thread {
	if !visited.InsertNew(uint32(state)) {
		return threads
	}
	s := prog.state(state)
	if s == nil {
		return threads
	}

	switch s.Kind {
	case KindMatch, KindLiteral, KindCharClass, KindDot, KindAny:
		return append(threads, thread{state: state, start: start})

	case KindGroupStart, KindGroupEnd:
		return addThread(threads, visited, prog, s.Out, start, pos, haystack)

	case KindLineStart:
		if pos == 0 {
			return addThread(threads, visited, prog, s.Out, start, pos, haystack)
		}
		return threads

	case KindLineEnd:
		if pos == len(haystack) {
			return addThread(threads, visited, prog, s.Out, start, pos, haystack)
		}
		return threads

	case KindWordBoundary:
		if isWordBoundary(haystack, pos) {
			return addThread(threads, visited, prog, s.Out, start, pos, haystack)
		}
		return threads

	case KindNotWordBoundary:
		if !isWordBoundary(haystack, pos) {
			return addThread(threads, visited, prog, s.Out, start, pos, haystack)
		}
		return threads

	case KindSplit:
		threads = addThread(threads, visited, prog, s.Out, start, pos, haystack)
		threads = addThread(threads, visited, prog, s.Alt, start, pos, haystack)
		return threads

	default:
		return threads
	}
}

// stepThread tests one consuming state against byte b and, on success,
// begins the epsilon closure for its successor in the next generation.
func stepThread(next []thread, visited *sparse.SparseSet, prog *Program, t thread, b byte, nextPos int, haystack []byte) []thread {
	s := prog.state(t.state)
	if s == nil {
		return next
	}

	switch s.Kind {
	case KindLiteral:
		in := b
		if s.CaseInsensitive {
			in = simd.ToLowerByte(in)
		}
		if in == s.Byte {
			return addThread(next, visited, prog, s.Out, t.start, nextPos, haystack)
		}

	case KindCharClass:
		bm := prog.bitmap(s.ClassOffset)
		if bm == nil {
			return next
		}
		in := b
		if s.CaseInsensitive {
			in = simd.ToLowerByte(in)
		}
		if bm.Test(in) {
			return addThread(next, visited, prog, s.Out, t.start, nextPos, haystack)
		}

	case KindDot:
		if b != '\n' {
			return addThread(next, visited, prog, s.Out, t.start, nextPos, haystack)
		}

	case KindAny:
		return addThread(next, visited, prog, s.Out, t.start, nextPos, haystack)
	}
	return next
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_'
}

func isWordBoundary(haystack []byte, pos int) bool {
	before := pos > 0 && isWordByte(haystack[pos-1])
	after := pos < len(haystack) && isWordByte(haystack[pos])
	return before != after
}
