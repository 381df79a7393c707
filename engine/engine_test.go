package engine

import (
	"testing"

	"github.com/e-jerk/gawk/fields"
	"github.com/e-jerk/gawk/literal"
	"github.com/e-jerk/gawk/nfa"
)

func TestScanLinesLiteralSelectsMatchingLines(t *testing.T) {
	input := []byte("apple pie\nbanana split\napple tart\n")
	m := LiteralMatcher{M: literal.New([]byte("apple"), false)}
	res := ScanLines(input, m, Config{Separator: fields.Separator{Whitespace: true}, ExtractFields: true})

	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(res.Matches), res.Matches)
	}
	if res.Matches[0].LineNum != 0 || res.Matches[1].LineNum != 2 {
		t.Fatalf("unexpected line numbers: %+v", res.Matches)
	}
	for _, mr := range res.Matches {
		if mr.FieldCount != 2 {
			t.Errorf("expected 2 fields per line, got %d", mr.FieldCount)
		}
	}
}

func TestScanLinesEmptyPatternSelectsEveryLine(t *testing.T) {
	input := []byte("one\ntwo\nthree\n")
	res := ScanLines(input, nil, Config{Separator: fields.Separator{Whitespace: true}, ExtractFields: true})
	if len(res.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(res.Matches))
	}
	for _, mr := range res.Matches {
		if mr.MatchStart != 0 || mr.MatchEnd != 0 {
			t.Errorf("empty pattern should report zero match offsets, got %+v", mr)
		}
	}
}

func TestScanLinesInvertMatch(t *testing.T) {
	input := []byte("apple pie\nbanana split\napple tart\n")
	m := LiteralMatcher{M: literal.New([]byte("apple"), false)}
	res := ScanLines(input, m, Config{InvertMatch: true, Separator: fields.Separator{Whitespace: true}, ExtractFields: true})

	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 inverted match, got %d", len(res.Matches))
	}
	if res.Matches[0].LineNum != 1 {
		t.Fatalf("expected line 1 (banana split), got %d", res.Matches[0].LineNum)
	}
	if res.Matches[0].MatchStart != 0 || res.Matches[0].MatchEnd != 0 {
		t.Fatalf("inverted selection should report zero match offsets, got %+v", res.Matches[0])
	}
}

func TestScanLinesNoTrailingNewline(t *testing.T) {
	input := []byte("only line, no trailing newline")
	res := ScanLines(input, nil, Config{Separator: fields.Separator{Whitespace: true}, ExtractFields: true})
	if len(res.Matches) != 1 {
		t.Fatalf("expected exactly 1 line, got %d", len(res.Matches))
	}
	if res.Matches[0].LineEnd != uint32(len(input)) {
		t.Fatalf("expected line end at buffer end, got %d", res.Matches[0].LineEnd)
	}
}

func TestScanLinesFieldsAreLineRelative(t *testing.T) {
	input := []byte("zzz aa bb\ncc dd\n")
	res := ScanLines(input, nil, Config{Separator: fields.Separator{Whitespace: true}, ExtractFields: true})
	if len(res.Fields) != 5 {
		t.Fatalf("expected 5 total field records, got %d", len(res.Fields))
	}
	// Second line's fields should be relative to its own start, not absolute.
	secondLineFields := res.Fields[3:]
	if secondLineFields[0].Start != 0 || secondLineFields[0].End != 2 {
		t.Fatalf("expected first field of second line at [0,2), got %+v", secondLineFields[0])
	}
}

func TestScanLinesExtractFieldsDisabled(t *testing.T) {
	input := []byte("a b c\n")
	res := ScanLines(input, nil, Config{Separator: fields.Separator{Whitespace: true}, ExtractFields: false})
	if len(res.Fields) != 0 {
		t.Fatalf("expected no field records when extraction disabled, got %d", len(res.Fields))
	}
	if res.Matches[0].FieldCount != 0 {
		t.Fatalf("expected field count 0 when extraction disabled, got %d", res.Matches[0].FieldCount)
	}
}

func TestScanLinesRegexMatcher(t *testing.T) {
	prog, err := nfa.Compile(`\d+`, false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	m := RegexMatcher{Ex: nfa.NewExecutor(), Prog: prog}
	input := []byte("no digits here\nbut 42 is here\n")
	res := ScanLines(input, m, Config{Separator: fields.Separator{Whitespace: true}, ExtractFields: true})
	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(res.Matches))
	}
	if res.Matches[0].LineNum != 1 {
		t.Fatalf("expected line 1, got %d", res.Matches[0].LineNum)
	}
	if res.Matches[0].MatchStart != 4 || res.Matches[0].MatchEnd != 6 {
		t.Fatalf("got match offsets (%d,%d), want (4,6)", res.Matches[0].MatchStart, res.Matches[0].MatchEnd)
	}
}

func TestSubstituteLiteralGlobal(t *testing.T) {
	input := []byte("cat hat cat mat")
	m := LiteralMatcher{M: literal.New([]byte("cat"), false)}
	out, recs, err := Substitute(input, m, []byte("dog"), true)
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if string(out) != "dog hat dog mat" {
		t.Fatalf("got %q", out)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 substitution records, got %d", len(recs))
	}
	if recs[0].Position != 0 || recs[1].Position != 8 {
		t.Fatalf("unexpected positions: %+v", recs)
	}
}

func TestSubstituteLiteralFirstOnly(t *testing.T) {
	input := []byte("cat hat cat mat")
	m := LiteralMatcher{M: literal.New([]byte("cat"), false)}
	out, recs, err := Substitute(input, m, []byte("dog"), false)
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if string(out) != "dog hat cat mat" {
		t.Fatalf("got %q", out)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 substitution record, got %d", len(recs))
	}
}

func TestSubstituteNoMatchReturnsInputUnchanged(t *testing.T) {
	input := []byte("nothing to replace here")
	m := LiteralMatcher{M: literal.New([]byte("zzz"), false)}
	out, recs, err := Substitute(input, m, []byte("x"), true)
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if string(out) != string(input) {
		t.Fatalf("expected unchanged output, got %q", out)
	}
	if recs != nil {
		t.Fatalf("expected nil records, got %+v", recs)
	}
}

func TestSubstituteRegexZeroWidthAdvances(t *testing.T) {
	prog, err := nfa.Compile(`x*`, false)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	m := RegexMatcher{Ex: nfa.NewExecutor(), Prog: prog}
	// Zero-width matches between every pair of non-x characters must not
	// loop forever; this mainly exercises forward progress.
	out, recs, err := Substitute([]byte("ab"), m, []byte("-"), true)
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected at least one substitution record")
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestSubstituteTracksLineNumbers(t *testing.T) {
	input := []byte("cat\ncat\ncat\n")
	m := LiteralMatcher{M: literal.New([]byte("cat"), false)}
	_, recs, err := Substitute(input, m, []byte("dog"), true)
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, r := range recs {
		if r.LineNum != uint32(i) {
			t.Errorf("record %d: got line %d, want %d", i, r.LineNum, i)
		}
	}
}

func TestSubstituteOutputSizeExactForShorterReplacement(t *testing.T) {
	input := []byte("aaaa")
	m := LiteralMatcher{M: literal.New([]byte("aa"), false)}
	out, _, err := Substitute(input, m, []byte("b"), true)
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if string(out) != "bb" {
		t.Fatalf("got %q, want %q", out, "bb")
	}
}

// malformedMatcher reports a match far longer than the input it was given,
// which would otherwise drive Substitute's exact-size computation negative.
type malformedMatcher struct{ reported bool }

func (m *malformedMatcher) FindFrom(input []byte, pos int) (start, end int, ok bool) {
	if m.reported {
		return 0, 0, false
	}
	m.reported = true
	return 0, 1_000_000, true
}

func TestSubstituteNegativeOutputLengthReturnsAllocError(t *testing.T) {
	_, _, err := Substitute([]byte("hello"), &malformedMatcher{}, nil, true)
	if err == nil {
		t.Fatal("expected an error")
	}
	ae, ok := err.(*AllocError)
	if !ok {
		t.Fatalf("expected *AllocError, got %T", err)
	}
	if ae.Unwrap() == nil {
		t.Fatal("expected a wrapped cause")
	}
}
