package app

import "time"

// FPSLimiter paces frames when vsync is off.
type FPSLimiter struct {
	next time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFPSLimiter creates a new FPS limiter
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next frame is due for the given rate. A limit of 0
// disables pacing. Sleeps most of the gap and spins the final stretch.
func (f *FPSLimiter) Wait(limit int) {
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.sleep(remaining - 200*time.Microsecond)
		}
		if f.next.Sub(f.now()) <= 0 {
			break
		}
	}

	// after a hitch, resync instead of racing to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
