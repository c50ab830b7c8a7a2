package profiling

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Frame accumulates CPU time per named bucket for a single frame.
// It is owned by the render thread.
type Frame struct {
	totals map[string]time.Duration
	now    func() time.Time
}

// NewFrame returns an empty frame profiler.
func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration), now: time.Now}
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer f.Track("mesh.Draw")()
func (f *Frame) Track(name string) func() {
	start := f.now()
	return func() {
		f.totals[name] += f.now().Sub(start)
	}
}

// Reset clears all buckets. Call at the start of each frame.
func (f *Frame) Reset() {
	clear(f.totals)
}

// SumWithPrefix adds every bucket whose name starts with prefix.
func (f *Frame) SumWithPrefix(prefix string) time.Duration {
	var sum time.Duration
	for k, v := range f.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n slowest buckets, slowest first.
// Example: "render.Draw:4.2ms, wait.SwapBuffers:2.1ms"
func (f *Frame) TopN(n int) string {
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(f.totals))
	for k, v := range f.totals {
		list = append(list, pair{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		parts = append(parts, p.name+":"+formatMs(p.dur))
	}
	return strings.Join(parts, ", ")
}

func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	return strconv.FormatFloat(ms, 'f', -1, 64) + "ms"
}
