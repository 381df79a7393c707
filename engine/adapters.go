package engine

import (
	"github.com/e-jerk/gawk/literal"
	"github.com/e-jerk/gawk/nfa"
)

// LiteralMatcher adapts literal.Matcher to Matcher and SubstMatcher.
type LiteralMatcher struct {
	M *literal.Matcher
}

// Find implements Matcher.
func (l LiteralMatcher) Find(line []byte) (start, end int, ok bool) {
	idx := l.M.Find(line)
	if idx < 0 {
		return 0, 0, false
	}
	return idx, idx + len(l.M.Pattern()), true
}

// FindFrom implements SubstMatcher.
func (l LiteralMatcher) FindFrom(input []byte, pos int) (start, end int, ok bool) {
	if pos > len(input) {
		return 0, 0, false
	}
	idx := l.M.Find(input[pos:])
	if idx < 0 {
		return 0, 0, false
	}
	abs := pos + idx
	return abs, abs + len(l.M.Pattern()), true
}

// RegexMatcher adapts a compiled nfa.Program to Matcher and SubstMatcher.
type RegexMatcher struct {
	Ex      *nfa.Executor
	Prog    *nfa.Program
	Longest bool
}

// Find implements Matcher.
func (r RegexMatcher) Find(line []byte) (start, end int, ok bool) {
	return r.Ex.Search(r.Prog, line, 0, r.Longest)
}

// FindFrom implements SubstMatcher.
func (r RegexMatcher) FindFrom(input []byte, pos int) (start, end int, ok bool) {
	return r.Ex.Search(r.Prog, input, pos, r.Longest)
}
