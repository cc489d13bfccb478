package services

import (
	"context"
	"flight-route-service/internal/domain"
	"sync"
	"time"
)

func testLocations() []domain.Location {
	return []domain.Location{
		{Code: "LHR", Name: "London Heathrow Airport", City: "London", Country: "United Kingdom"},
		{Code: "LGW", Name: "London Gatwick Airport", City: "London", Country: "United Kingdom"},
		{Code: "CDG", Name: "Charles de Gaulle International Airport", City: "Paris", Country: "France"},
		{Code: "ORY", Name: "Paris-Orly Airport", City: "Paris", Country: "France"},
		{Code: "BER", Name: "Berlin Brandenburg Airport", City: "Berlin", Country: "Germany"},
		{Code: "CIA", Name: "Ciampino International Airport", City: "Rome", Country: "Italy"},
		{Code: "FCO", Name: "Leonardo da Vinci-Fiumicino Airport", City: "Rome", Country: "Italy"},
		{Code: "MAD", Name: "Adolfo Suarez Madrid-Barajas Airport", City: "Madrid", Country: "Spain"},
		{Code: "LIS", Name: "Humberto Delgado Airport", City: "Lisbon", Country: "Portugal"},
	}
}

func testDirectory() *LocationDirectory {
	return NewLocationDirectory(testLocations())
}

var tripDay = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

// priceTable is a LegPriceLookup over a fixed from|to map that counts calls.
type priceTable struct {
	mu     sync.Mutex
	prices map[string]float64
	calls  map[string]int
	dates  map[string][]time.Time
}

func newPriceTable(prices map[string]float64) *priceTable {
	return &priceTable{
		prices: prices,
		calls:  make(map[string]int),
		dates:  make(map[string][]time.Time),
	}
}

func (p *priceTable) Price(ctx context.Context, from, to string, date time.Time) (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := from + "|" + to
	p.calls[key]++
	p.dates[key] = append(p.dates[key], date)

	price, ok := p.prices[key]
	if !ok || price <= 0 {
		return 0, false
	}
	return price, true
}

func (p *priceTable) totalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.calls {
		n += c
	}
	return n
}
