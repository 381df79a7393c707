// Package simd provides the byte-scan primitives that accelerate the line
// engine: newline search, ASCII case folding, and separator-byte detection.
//
// The scanning primitives (FindNewline, IndexWhitespace) have a scalar tail
// and a lane-width loop that processes 8 bytes at a time via SWAR
// (SIMD-within-a-register) tricks on a uint64 — broadcast the needle across
// all eight byte lanes, XOR, and use the Hacker's Delight zero-byte-detection
// formula to find a match without a branch per byte. ToLower walks the same
// lanes with an unrolled scalar fold instead of SWAR (see lower.go), and the
// single-byte predicates are plain comparisons. No CPU intrinsics or assembly
// are involved; "lane width" here means how many 8-byte steps run before
// falling back to the scalar tail (four steps for a 32-byte lane, two for
// 16), gated on
// cpu.X86.HasAVX2 purely as a cheap proxy for "wide memory loads are cheap on
// this CPU", not because AVX2 instructions are ever issued.
package simd
