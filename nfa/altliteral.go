package nfa

import "github.com/coregx/ahocorasick"

// literalAlternation is the bypass path for a pattern that reduces to a pure
// alternation of plain literals (e.g. "foo|bar|baz"), with no quantifiers,
// classes, or anchors anywhere in it. Compiling such a pattern straight to
// an NFA and simulating it byte-by-byte would work, but it is strictly more
// machinery than a multi-pattern literal search needs; detecting the shape
// up front and handing it to an Aho-Corasick automaton gives the same
// leftmost-first semantics at a fraction of the per-byte cost.
type literalAlternation struct {
	automaton  *ahocorasick.Automaton
	literals   [][]byte
}

// tryLiteralAlternation inspects ast and, if it is exactly an alternation of
// literal-only branches (each branch itself a literal or a concatenation of
// literals, no nested alternation/quantifier/class/anchor), returns a
// compiled automaton for it. Returns nil if the pattern does not have this
// shape, in which case the caller falls through to ordinary NFA compilation.
func tryLiteralAlternation(ast astNode, caseInsensitive bool) *literalAlternation {
	alt, ok := ast.(astAlternate)
	if !ok {
		return nil
	}

	literals := make([][]byte, 0, len(alt.subs))
	for _, sub := range alt.subs {
		lit, ok := flattenLiteral(sub)
		if !ok {
			return nil
		}
		literals = append(literals, lit)
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		pat := lit
		if caseInsensitive {
			pat = lowerBytes(lit)
		}
		builder.AddPattern(pat)
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil
	}

	return &literalAlternation{automaton: automaton, literals: literals}
}

// flattenLiteral reports whether node is built entirely from literal bytes
// (a single literal, or a concatenation of literals) and, if so, returns the
// flattened byte string.
func flattenLiteral(node astNode) ([]byte, bool) {
	switch n := node.(type) {
	case astLiteral:
		return []byte{n.b}, true
	case astConcat:
		out := make([]byte, 0, len(n.subs))
		for _, sub := range n.subs {
			b, ok := flattenLiteral(sub)
			if !ok {
				return nil, false
			}
			out = append(out, b...)
		}
		return out, true
	default:
		return nil, false
	}
}

func lowerBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 32
		}
		out[i] = c
	}
	return out
}

// find returns the leftmost match within haystack starting at or after at,
// or ok=false if none exists.
func (l *literalAlternation) find(haystack []byte, at int) (start, end int, ok bool) {
	m := l.automaton.Find(haystack, at)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

// isMatch reports whether any literal occurs anywhere in haystack.
func (l *literalAlternation) isMatch(haystack []byte) bool {
	return l.automaton.IsMatch(haystack)
}
