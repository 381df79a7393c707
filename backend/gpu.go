package backend

// GPUProbe reports whether the GPU kernel stand-in is ready to accept a
// dispatch. Any failure here (unavailable device, initialisation error) is
// folded into a single bool: the dispatcher's contract is to fall back to
// CPU silently, never to surface why the GPU path was skipped.
type GPUProbe interface {
	Available() bool
}

// AlwaysAvailable is the probe used when the GPU kernel stand-in (see the
// gpu package) is always ready, since it is a goroutine pool rather than
// real hardware with its own failure modes.
type AlwaysAvailable struct{}

// Available always reports true.
func (AlwaysAvailable) Available() bool { return true }

// Unavailable is a probe that always reports false, used to force CPU-only
// dispatch in tests and in callers that have no kernel stand-in wired up.
type Unavailable struct{}

// Available always reports false.
func (Unavailable) Available() bool { return false }
