package gawk

import (
	"bytes"
	"testing"
)

func lineNums(t *testing.T, matches []MatchRecord) map[uint32]bool {
	t.Helper()
	out := map[uint32]bool{}
	for _, m := range matches {
		out[m.LineNum] = true
	}
	return out
}

// S1 Pattern match.
func TestScenarioS1PatternMatch(t *testing.T) {
	s := NewScanner()
	input := []byte("hello world\nerror occurred\nall is well\nerror again\n")
	res, err := s.Scan(input, []byte("error"), Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	got := lineNums(t, res.Matches)
	if !got[1] || !got[3] {
		t.Fatalf("expected line_num in {1,3}, got %+v", res.Matches)
	}
}

// S2 Invert match.
func TestScenarioS2InvertMatch(t *testing.T) {
	s := NewScanner()
	input := []byte("good line\nbad line\nanother good\n")
	res, err := s.Scan(input, []byte("bad"), Options{InvertMatch: true})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	got := lineNums(t, res.Matches)
	if !got[0] || !got[2] {
		t.Fatalf("expected line_num in {0,2}, got %+v", res.Matches)
	}
}

// S3 Field splitting, colon.
func TestScenarioS3FieldSplittingColon(t *testing.T) {
	s := NewScanner()
	input := []byte("root:x:0:0\nbin:x:1:1\n")
	res, err := s.Scan(input, nil, Options{FieldSeparator: []byte(":")})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 match records, got %d", len(res.Matches))
	}
	if len(res.Fields) != 8 {
		t.Fatalf("expected 8 field records, got %d", len(res.Fields))
	}
	for _, mr := range res.Matches {
		if mr.FieldCount != 4 {
			t.Errorf("expected field_count 4, got %d", mr.FieldCount)
		}
	}
	seen := map[int]bool{}
	for _, f := range res.Fields {
		if f.LineIdx == 0 {
			seen[f.FieldIdx] = true
		}
	}
	for i := 1; i <= 4; i++ {
		if !seen[i] {
			t.Errorf("expected field_idx %d present on line 0", i)
		}
	}
}

// S4 Substitution.
func TestScenarioS4Substitution(t *testing.T) {
	s := NewScanner()
	input := []byte("hello world world")
	out, recs, err := s.Substitute(input, []byte("world"), []byte("universe"), Options{GlobalSubstitution: true})
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if string(out) != "hello universe universe" {
		t.Fatalf("got %q", out)
	}
	if len(recs) != 2 || recs[0].Position != 6 || recs[1].Position != 12 {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

// S5 Regex digits.
func TestScenarioS5RegexDigits(t *testing.T) {
	s := NewScanner()
	input := []byte("hello world\nhello123\nworld456\n")
	res, err := s.Scan(input, []byte("[0-9]+"), Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(res.Matches))
	}
	byLine := map[uint32]MatchRecord{}
	for _, m := range res.Matches {
		byLine[m.LineNum] = m
	}
	l1 := byLine[1]
	if string(input[l1.LineStart+uint32(l1.MatchStart):l1.LineStart+uint32(l1.MatchEnd)]) != "123" {
		t.Errorf("line 1 match text = %q, want %q", input[l1.LineStart+uint32(l1.MatchStart):l1.LineStart+uint32(l1.MatchEnd)], "123")
	}
	l2 := byLine[2]
	if string(input[l2.LineStart+uint32(l2.MatchStart):l2.LineStart+uint32(l2.MatchEnd)]) != "456" {
		t.Errorf("line 2 match text = %q, want %q", input[l2.LineStart+uint32(l2.MatchStart):l2.LineStart+uint32(l2.MatchEnd)], "456")
	}
}

// S6 Regex alternation.
func TestScenarioS6RegexAlternation(t *testing.T) {
	s := NewScanner()
	input := []byte("error line\nwarning here\ninfo msg\nerror again\n")
	res, err := s.Scan(input, []byte("error|warning"), Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(res.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(res.Matches))
	}
	got := lineNums(t, res.Matches)
	if !got[0] || !got[1] || !got[3] {
		t.Fatalf("expected line_num in {0,1,3}, got %+v", res.Matches)
	}
}

// P2 Offsets in range.
func TestPropertyP2OffsetsInRange(t *testing.T) {
	s := NewScanner()
	input := []byte("one two\nthree four five\nsix\n")
	res, err := s.Scan(input, []byte("[a-z]+"), Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	for _, m := range res.Matches {
		if !(m.LineStart <= m.LineStart+m.MatchStart && m.MatchStart <= m.MatchEnd && m.LineStart+m.MatchEnd <= m.LineEnd && m.LineEnd <= uint32(len(input))) {
			t.Errorf("offsets out of range: %+v", m)
		}
	}
}

// P3 Invert duality.
func TestPropertyP3InvertDuality(t *testing.T) {
	s := NewScanner()
	input := []byte("apple\nbanana\ncherry\napricot\n")
	plain, err := s.Scan(input, []byte("ap"), Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	inverted, err := s.Scan(input, []byte("ap"), Options{InvertMatch: true})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	plainLines := lineNums(t, plain.Matches)
	invertedLines := lineNums(t, inverted.Matches)

	totalLines := uint32(bytes.Count(input, []byte("\n")))
	for ln := uint32(0); ln < totalLines; ln++ {
		if plainLines[ln] == invertedLines[ln] {
			t.Fatalf("line %d: plain=%v inverted=%v, expected exact complement", ln, plainLines[ln], invertedLines[ln])
		}
	}
}

// P4 Substitution round-trip.
func TestPropertyP4SubstitutionRoundTrip(t *testing.T) {
	s := NewScanner()
	input := []byte("the cat sat on the mat with a cat")
	out, _, err := s.Substitute(input, []byte("cat"), []byte("cat"), Options{GlobalSubstitution: true})
	if err != nil {
		t.Fatalf("Substitute error: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Fatalf("round-trip substitution changed the buffer: got %q, want %q", out, input)
	}
}

func TestScanEmptyPatternMatchesEveryLine(t *testing.T) {
	s := NewScanner()
	input := []byte("a\nb\nc\n")
	res, err := s.Scan(input, nil, Options{})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(res.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(res.Matches))
	}
}

func TestScanCaseInsensitive(t *testing.T) {
	s := NewScanner()
	input := []byte("HELLO world\nnothing here\n")
	res, err := s.Scan(input, []byte("hello"), Options{CaseInsensitive: true})
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(res.Matches))
	}
}

func TestCompileRegexReturnsTypedError(t *testing.T) {
	_, err := CompileRegex("(unterminated", false)
	if err == nil {
		t.Fatal("expected an error")
	}
	var ce *CompileError
	if !isCompileError(err, &ce) {
		t.Fatalf("expected *CompileError, got %T", err)
	}
}

func isCompileError(err error, target **CompileError) bool {
	ce, ok := err.(*CompileError)
	if ok {
		*target = ce
	}
	return ok
}

func TestScanInputTooLargeForGPU(t *testing.T) {
	s := NewScanner()
	input := make([]byte, MaxGPUBufferSize+1)
	_, err := s.Scan(input, []byte("x"), Options{Backend: GPU})
	if err == nil {
		t.Fatal("expected InputTooLargeError")
	}
	if _, ok := err.(*InputTooLargeError); !ok {
		t.Fatalf("expected *InputTooLargeError, got %T", err)
	}
}
