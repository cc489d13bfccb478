package flights

import (
	"context"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/ports"
	"fmt"
	"sync"
)

// MockFare prices one leg. An empty Date matches any departure date.
type MockFare struct {
	From, To string
	Date     string
	Price    float64
}

// MockFareProvider is an in-memory FareProvider that counts upstream calls.
type MockFareProvider struct {
	mu    sync.Mutex
	fares map[string]float64
	calls map[string]int
	total int
}

func NewMockFareProvider(fares []MockFare) *MockFareProvider {
	m := make(map[string]float64, len(fares))
	for _, f := range fares {
		date := f.Date
		if date == "" {
			date = "*"
		}
		m[f.From+"|"+f.To+"|"+date] = f.Price
	}
	return &MockFareProvider{fares: m, calls: make(map[string]int)}
}

func (p *MockFareProvider) LowestFare(ctx context.Context, q ports.FareQuery) (float64, error) {
	date := q.Date.Format(domain.DateLayout)
	key := q.Origin + "|" + q.Destination + "|" + date

	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls[key]++
	p.total++

	if price, ok := p.fares[key]; ok {
		return price, nil
	}
	if price, ok := p.fares[q.Origin+"|"+q.Destination+"|*"]; ok {
		return price, nil
	}
	return 0, fmt.Errorf("missing fare %q -> %q on %s: %w", q.Origin, q.Destination, date, ErrNoFare)
}

// Calls reports how many times the leg was requested on date (YYYY-MM-DD).
func (p *MockFareProvider) Calls(from, to, date string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[from+"|"+to+"|"+date]
}

// TotalCalls reports the number of LowestFare invocations.
func (p *MockFareProvider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}
