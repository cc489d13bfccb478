package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock advances only when the limiter sleeps.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return nil
}

func newFakeLimiter(max int, window time.Duration) (*SlidingWindowLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewSlidingWindowLimiter(max, window)
	l.now = clock.Now
	l.sleep = clock.Sleep
	return l, clock
}

func TestSlidingWindowLimiterBlocksPastLimit(t *testing.T) {
	l, clock := newFakeLimiter(10, time.Second)
	t0 := clock.Now()

	for i := 1; i <= 15; i++ {
		waited, err := l.Wait(context.Background())
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}

		admitted := clock.Now().Sub(t0)
		if i <= 10 {
			if waited != 0 || admitted != 0 {
				t.Fatalf("call %d: waited %s, admitted at %s; want immediate", i, waited, admitted)
			}
			continue
		}

		// Calls 11-15 are admitted only once the first slots age out of the window.
		if admitted != time.Second {
			t.Fatalf("call %d admitted at %s, want 1s", i, admitted)
		}
	}

	if n := len(l.stamps); n != 5 {
		t.Fatalf("window holds %d admissions, want 5", n)
	}
}

func TestSlidingWindowLimiterStaggeredSlots(t *testing.T) {
	l, clock := newFakeLimiter(2, time.Second)
	t0 := clock.Now()
	ctx := context.Background()

	_, _ = l.Wait(ctx)
	clock.Sleep(ctx, 300*time.Millisecond)
	_, _ = l.Wait(ctx)

	waited, err := l.Wait(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if waited != 700*time.Millisecond {
		t.Fatalf("third call waited %s, want 700ms", waited)
	}

	waited, _ = l.Wait(ctx)
	if waited != 300*time.Millisecond {
		t.Fatalf("fourth call waited %s, want 300ms", waited)
	}
	if got := clock.Now().Sub(t0); got != 1300*time.Millisecond {
		t.Fatalf("clock at %s, want 1.3s", got)
	}
}

func TestSlidingWindowLimiterHonoursContext(t *testing.T) {
	l := NewSlidingWindowLimiter(1, time.Hour)

	if _, err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := l.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestSlidingWindowLimiterConcurrentCallers(t *testing.T) {
	const (
		limit  = 5
		window = 50 * time.Millisecond
		calls  = 15
	)
	l := NewSlidingWindowLimiter(limit, window)

	var (
		mu    sync.Mutex
		count int
		wg    sync.WaitGroup
	)
	begin := time.Now()
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Wait(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			mu.Lock()
			count++
			mu.Unlock()
		}()
	}
	wg.Wait()

	if count != calls {
		t.Fatalf("admitted %d calls, want %d", count, calls)
	}

	// 15 calls at 5 per window need at least two full windows.
	if elapsed := time.Since(begin); elapsed < 2*window {
		t.Fatalf("all calls admitted after %s, want at least %s", elapsed, 2*window)
	}
}
