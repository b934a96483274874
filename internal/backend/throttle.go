package backend

import (
	"context"
	"time"
)

// throttle spaces fetches at least interval apart. It is owned by the fetch
// worker goroutine and is not safe for concurrent use.
type throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: max(interval, 0), now: time.Now}
}

// wait sleeps until interval has passed since the previous slot, then claims
// a new slot. It returns false if ctx ends first.
func (t *throttle) wait(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if t == nil || t.interval == 0 {
		return true
	}
	if delay := t.last.Add(t.interval).Sub(t.now()); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	t.last = t.now()
	return true
}
