package nfa

// metaBytes is the set of bytes whose presence marks a pattern as
// "regex-like" rather than a plain literal.
const metaBytes = `.*+?[](){}|^$\`

// IsRegexLike classifies a pattern byte string, reporting whether it
// contains any ERE metacharacter. Callers use this to skip regex
// compilation entirely for patterns that are plain literals.
func IsRegexLike(pattern []byte) bool {
	for _, b := range pattern {
		for i := 0; i < len(metaBytes); i++ {
			if b == metaBytes[i] {
				return true
			}
		}
	}
	return false
}
