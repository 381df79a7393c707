//go:build amd64

package simd

import "golang.org/x/sys/cpu"

// wideLane reports whether the 32-byte lane width should be used instead of
// the 16-byte default. AVX2-capable CPUs get wider lanes even though this
// package never issues AVX2 instructions directly: a wider lane means fewer
// SWAR iterations per call, and AVX2 availability correlates with the newer,
// wider-load-friendly memory subsystems that benefit from it.
var wideLane = cpu.X86.HasAVX2
