package services

import (
	"context"
	"time"
)

// ItineraryCost is the priced breakdown of one city ordering.
type ItineraryCost struct {
	Total     float64
	LegPrices []float64
	LegDates  []time.Time
}

// EvaluateItinerary prices every consecutive leg of cities.
//
// Leg i departs dwellDays[i] days after the previous departure (arrival is
// treated as same-day). Evaluation is all-or-nothing: the first unpriced leg
// discards the whole ordering and ok is false.
func EvaluateItinerary(
	ctx context.Context,
	lookup LegPriceLookup,
	cities []string,
	dwellDays []int,
	start time.Time,
) (ItineraryCost, bool) {
	if len(cities) < 2 || len(dwellDays) != len(cities) {
		return ItineraryCost{}, false
	}

	cost := ItineraryCost{
		LegPrices: make([]float64, 0, len(cities)-1),
		LegDates:  make([]time.Time, 0, len(cities)-1),
	}

	current := start
	for i := 0; i < len(cities)-1; i++ {
		departure := current.AddDate(0, 0, dwellDays[i])

		price, ok := lookup.Price(ctx, cities[i], cities[i+1], departure)
		if !ok || price <= 0 {
			return ItineraryCost{}, false
		}

		cost.Total += price
		cost.LegPrices = append(cost.LegPrices, price)
		cost.LegDates = append(cost.LegDates, departure)

		current = departure
	}

	return cost, true
}
