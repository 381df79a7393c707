package gawk

import (
	"fmt"

	"github.com/e-jerk/gawk/engine"
)

// InputTooLargeError is returned when an input buffer exceeds
// MaxGPUBufferSize on a GPU path. The caller may retry on CPU, which has no
// equivalent size cap.
type InputTooLargeError struct {
	Len int
	Max int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("gawk: input length %d exceeds maximum %d for this backend", e.Len, e.Max)
}

// AllocError wraps a failure building the substitution engine's exact-size
// output buffer. It is propagated to the caller verbatim rather than
// downgraded, since there is no fallback that uses less memory; re-exported
// from engine, the package that actually constructs that buffer.
type AllocError = engine.AllocError

// CompileError reports a pattern that failed regex compilation. Scan and
// Substitute never return this error themselves — a compile failure
// silently downgrades to the literal matcher over the raw pattern bytes,
// per the dispatcher's defined contract. CompileError exists for callers
// that want to validate a pattern up front via CompileRegex instead of
// discovering the silent downgrade later.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("gawk: compile %q: %v", e.Pattern, e.Err)
}
func (e *CompileError) Unwrap() error { return e.Err }
