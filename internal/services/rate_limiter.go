package services

import (
	"context"
	"sync"
	"time"
)

// SlidingWindowLimiter admits at most max calls per window across all callers.
//
// Callers over the limit are delayed until the oldest admission ages out of
// the window; nothing is ever dropped. Check, wait and record happen under one
// lock so concurrent callers cannot over-admit.
type SlidingWindowLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	stamps []time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewSlidingWindowLimiter(max int, window time.Duration) *SlidingWindowLimiter {
	if max < 1 {
		max = 1
	}
	return &SlidingWindowLimiter{
		max:    max,
		window: window,
		stamps: make([]time.Time, 0, max),
		now:    time.Now,
		sleep:  sleepContext,
	}
}

// Wait blocks until the caller may proceed and returns how long it waited.
// It returns early only when ctx is done.
func (l *SlidingWindowLimiter) Wait(ctx context.Context) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var waited time.Duration
	for {
		now := l.now()
		l.prune(now)

		if len(l.stamps) < l.max {
			l.stamps = append(l.stamps, now)
			return waited, nil
		}

		d := l.stamps[0].Add(l.window).Sub(now)
		if err := l.sleep(ctx, d); err != nil {
			return waited, err
		}
		waited += d
	}
}

// prune drops admissions at least one window old.
func (l *SlidingWindowLimiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
