package gpu

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/e-jerk/gawk/backend"
	"github.com/e-jerk/gawk/engine"
	"github.com/e-jerk/gawk/fields"
)

// Probe satisfies backend.GPUProbe for this kernel stand-in: it reports
// always available, since the stand-in is a goroutine pool rather than
// hardware with its own device-init failure mode.
type Probe struct{}

// Available always reports true.
func (Probe) Available() bool { return true }

// Kernel is the goroutine-pool stand-in for the compute shader: each line
// is logically one thread, but the pool is bounded to GOMAXPROCS rather
// than spawning one goroutine per line unconditionally, matching how a
// real GPU timeslices warps across a bounded number of physical lanes.
type Kernel struct {
	workers int
}

// NewKernel creates a Kernel with the given worker bound. workers <= 0
// defaults to GOMAXPROCS.
func NewKernel(workers int) *Kernel {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Kernel{workers: workers}
}

// Output holds a dispatch's bounded match-record array and the count of
// matches dropped because the array was full.
type Output struct {
	Matches []MatchRecord
	Dropped uint32
}

// Dispatch runs matcher over every line in lines, selecting a line iff
// matched != invertMatch, exactly the line engine's XOR rule. Each thread
// reserves its output slot with an atomic fetch-and-add; a slot index at
// or beyond MaxResults is dropped silently, with only a drop count kept.
// field_count is left at zero here: field splitting happens host-side in
// PostProcess after the fence wait, per the kernel contract.
func (k *Kernel) Dispatch(input []byte, lines LineTable, matcher engine.Matcher, invertMatch bool) *Output {
	n := len(lines.Offsets)
	capacity := n
	if capacity > backend.MaxResults {
		capacity = backend.MaxResults
	}

	out := &Output{Matches: make([]MatchRecord, capacity)}
	var matchCount, dropped atomic.Uint32

	sem := make(chan struct{}, k.workers)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			lineStart := lines.Offsets[i]
			lineLen := lines.Lengths[i]
			line := input[lineStart : lineStart+lineLen]

			matched, ms, me := engine.TestLine(line, matcher)
			if matched == invertMatch {
				return
			}

			slot := matchCount.Add(1) - 1
			if int(slot) >= capacity {
				dropped.Add(1)
				return
			}
			out.Matches[slot] = MatchRecord{
				LineStart:  lineStart,
				LineEnd:    lineStart + lineLen,
				MatchStart: uint32(ms),
				MatchEnd:   uint32(me),
				LineNum:    uint32(i),
			}
		}(i)
	}
	wg.Wait() // stand-in for the host's wait-for-fence after GPU dispatch

	used := int(matchCount.Load())
	if used > capacity {
		used = capacity
	}
	out.Matches = out.Matches[:used]
	out.Dropped = dropped.Load()
	return out
}

// PostProcess performs the host-side work the kernel contract defers: sort
// the unordered match array by line_num (cross-thread ordering is
// unspecified, and the collaborator requires sorted output), split fields
// for every match with the CPU field splitter, and patch field_count back
// into each match record. The combined field array is bounded by
// MaxFields; once full, PostProcess stops appending further field records
// (silent truncation, matching the match array's own contract) but every
// match record itself is still present and sorted.
func PostProcess(input []byte, matches []MatchRecord, sep fields.Separator) ([]MatchRecord, []FieldRecord) {
	sort.Slice(matches, func(i, j int) bool { return matches[i].LineNum < matches[j].LineNum })

	var out []FieldRecord
	for i := range matches {
		m := &matches[i]
		if len(out) >= backend.MaxFields {
			break
		}

		line := input[m.LineStart:m.LineEnd]
		recs, count := fields.Split(nil, line, sep)

		room := backend.MaxFields - len(out)
		if count > room {
			recs = recs[:room]
			count = room
		}
		for j, r := range recs {
			out = append(out, FieldRecord{
				LineIdx:  uint32(i),
				FieldIdx: uint32(j + 1),
				Start:    uint32(r.Start),
				End:      uint32(r.End),
			})
		}
		m.FieldCount = uint32(count)
	}
	return matches, out
}
