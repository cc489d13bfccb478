package services

import (
	"context"
	"errors"
	"flight-route-service/internal/adapters/flights"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/ports"
	"sync"
	"testing"
	"time"
)

func newTestPricer(provider ports.FareProvider) *LegPricer {
	return NewLegPricer(
		provider,
		NewLocationResolver(testDirectory(), StrategyLargest),
		NewSlidingWindowLimiter(100, time.Second),
		"GBP",
		domain.DefaultParty(),
	)
}

func TestLegPricerCachesByResolvedCodes(t *testing.T) {
	mock := flights.NewMockFareProvider([]flights.MockFare{
		{From: "LHR", To: "CDG", Price: 84.5},
	})
	p := newTestPricer(mock)
	ctx := context.Background()

	price, ok := p.Price(ctx, "London", "Paris", tripDay)
	if !ok || price != 84.5 {
		t.Fatalf("Price = %v, %v; want 84.5, true", price, ok)
	}

	// Different spellings of the same places share one cache entry.
	price, ok = p.Price(ctx, "LHR", "paris", tripDay)
	if !ok || price != 84.5 {
		t.Fatalf("second Price = %v, %v; want 84.5, true", price, ok)
	}

	if n := mock.TotalCalls(); n != 1 {
		t.Fatalf("provider called %d times, want 1", n)
	}
}

func TestLegPricerKeysIncludeDate(t *testing.T) {
	mock := flights.NewMockFareProvider([]flights.MockFare{
		{From: "LHR", To: "CDG", Date: "2026-06-01", Price: 80},
		{From: "LHR", To: "CDG", Date: "2026-06-02", Price: 95},
	})
	p := newTestPricer(mock)
	ctx := context.Background()

	first, _ := p.Price(ctx, "London", "Paris", tripDay)
	second, _ := p.Price(ctx, "London", "Paris", tripDay.AddDate(0, 0, 1))

	if first != 80 || second != 95 {
		t.Fatalf("prices = %v, %v; want 80, 95", first, second)
	}
	if mock.Calls("LHR", "CDG", "2026-06-01") != 1 || mock.Calls("LHR", "CDG", "2026-06-02") != 1 {
		t.Fatalf("expected one call per date")
	}
}

func TestLegPricerFailureIsNotCached(t *testing.T) {
	mock := flights.NewMockFareProvider(nil)
	p := newTestPricer(mock)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		price, ok := p.Price(ctx, "London", "Berlin", tripDay)
		if ok || price != 0 {
			t.Fatalf("attempt %d: Price = %v, %v; want 0, false", i, price, ok)
		}
	}

	if n := mock.Calls("LHR", "BER", "2026-06-01"); n != 2 {
		t.Fatalf("provider called %d times, want 2 (failures retried)", n)
	}
}

type fixedFare struct {
	price float64
	err   error
}

func (f fixedFare) LowestFare(ctx context.Context, q ports.FareQuery) (float64, error) {
	return f.price, f.err
}

func TestLegPricerRejectsNonPositiveFares(t *testing.T) {
	cases := []struct {
		name     string
		provider fixedFare
	}{
		{name: "zero", provider: fixedFare{price: 0}},
		{name: "negative", provider: fixedFare{price: -12}},
		{name: "error", provider: fixedFare{price: 50, err: errors.New("upstream down")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPricer(tc.provider)
			if price, ok := p.Price(context.Background(), "London", "Paris", tripDay); ok || price != 0 {
				t.Fatalf("Price = %v, %v; want 0, false", price, ok)
			}
		})
	}
}

// slowFare blocks each call briefly so concurrent lookups overlap.
type slowFare struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
}

func (s *slowFare) LowestFare(ctx context.Context, q ports.FareQuery) (float64, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	time.Sleep(s.delay)
	return 120, nil
}

func TestLegPricerCoalescesConcurrentMisses(t *testing.T) {
	slow := &slowFare{delay: 50 * time.Millisecond}
	p := newTestPricer(slow)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if price, ok := p.Price(context.Background(), "Madrid", "Lisbon", tripDay); !ok || price != 120 {
				t.Errorf("Price = %v, %v; want 120, true", price, ok)
			}
		}()
	}
	wg.Wait()

	slow.mu.Lock()
	defer slow.mu.Unlock()
	if slow.calls != 1 {
		t.Fatalf("provider called %d times, want 1", slow.calls)
	}
}

func TestLegPricerPassesQuery(t *testing.T) {
	var got ports.FareQuery
	p := NewLegPricer(
		captureFare(func(q ports.FareQuery) { got = q }),
		NewLocationResolver(testDirectory(), StrategyLargest),
		NewSlidingWindowLimiter(10, time.Second),
		"EUR",
		domain.Party{Adults: 2, Children: 1},
	)

	if _, ok := p.Price(context.Background(), "Rome", "Gotham", tripDay); !ok {
		t.Fatalf("expected a price")
	}

	if got.Origin != "CIA" || got.Destination != "GOT" {
		t.Fatalf("codes = %s -> %s, want CIA -> GOT", got.Origin, got.Destination)
	}
	if got.Currency != "EUR" || got.Party.Adults != 2 || got.Party.Children != 1 {
		t.Fatalf("unexpected query: %+v", got)
	}
	if !got.Date.Equal(tripDay) {
		t.Fatalf("date = %s, want %s", got.Date, tripDay)
	}
}

type captureFare func(q ports.FareQuery)

func (c captureFare) LowestFare(ctx context.Context, q ports.FareQuery) (float64, error) {
	c(q)
	return 42, nil
}
