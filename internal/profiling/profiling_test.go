package profiling

import (
	"testing"
	"time"
)

func record(f *Frame, name string, d time.Duration) {
	f.totals[name] += d
}

func TestTrackUsesClock(t *testing.T) {
	f := NewFrame()
	base := time.Unix(0, 0)
	ticks := []time.Time{base, base.Add(3 * time.Millisecond), base.Add(5 * time.Millisecond), base.Add(6 * time.Millisecond)}
	f.now = func() time.Time {
		next := ticks[0]
		ticks = ticks[1:]
		return next
	}

	f.Track("render.Draw")()
	f.Track("render.Draw")()

	if got := f.SumWithPrefix("render.Draw"); got != 4*time.Millisecond {
		t.Fatalf("got %v, want 4ms", got)
	}
}

func TestTopNOrdering(t *testing.T) {
	f := NewFrame()
	record(f, "wait.SwapBuffers", 2100*time.Microsecond)
	record(f, "render.Draw", 4200*time.Microsecond)
	record(f, "anim.Advance", 10*time.Microsecond)

	if got, want := f.TopN(2), "render.Draw:4.2ms, wait.SwapBuffers:2.1ms"; got != want {
		t.Errorf("TopN(2) = %q, want %q", got, want)
	}
	if got := f.TopN(10); got != "render.Draw:4.2ms, wait.SwapBuffers:2.1ms, anim.Advance:0.01ms" {
		t.Errorf("TopN(10) = %q", got)
	}
}

func TestSumWithPrefixAndReset(t *testing.T) {
	f := NewFrame()
	record(f, "wait.SwapBuffers", time.Millisecond)
	record(f, "wait.Limiter", 2*time.Millisecond)
	record(f, "render.Draw", 5*time.Millisecond)

	if got := f.SumWithPrefix("wait."); got != 3*time.Millisecond {
		t.Errorf("SumWithPrefix = %v, want 3ms", got)
	}

	f.Reset()
	if got := f.TopN(5); got != "" {
		t.Errorf("after Reset TopN = %q, want empty", got)
	}
}
