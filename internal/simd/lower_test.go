package simd

import (
	"strings"
	"testing"
)

func TestToLowerByte(t *testing.T) {
	tests := []struct {
		in, want byte
	}{
		{'A', 'a'}, {'Z', 'z'}, {'M', 'm'},
		{'a', 'a'}, {'z', 'z'},
		{'0', '0'}, {' ', ' '}, {'@', '@'}, {'[', '['},
	}
	for _, tt := range tests {
		if got := ToLowerByte(tt.in); got != tt.want {
			t.Errorf("ToLowerByte(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToLower(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"HELLO", "hello"},
		{"Hello, World!", "hello, world!"},
		{strings.Repeat("A", 40), strings.Repeat("a", 40)},
		{strings.Repeat("aB", 20), strings.Repeat("ab", 20)},
	}
	for _, tt := range tests {
		dst := make([]byte, len(tt.in))
		ToLower(dst, []byte(tt.in))
		if string(dst) != tt.want {
			t.Errorf("ToLower(%q) = %q, want %q", tt.in, dst, tt.want)
		}
	}
}

func TestToLowerInPlace(t *testing.T) {
	buf := []byte("MixedCASE text 123")
	ToLower(buf, buf)
	if string(buf) != "mixedcase text 123" {
		t.Errorf("in-place ToLower = %q", buf)
	}
}
