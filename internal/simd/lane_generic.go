//go:build !amd64

package simd

// wideLane is always false off amd64: there is no CPU feature probe backing
// the wider lane width, so every platform gets the conservative 16-byte lane.
var wideLane = false
