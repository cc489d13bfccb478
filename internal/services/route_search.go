package services

import (
	"cmp"
	"context"
	"flight-route-service/internal/domain"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const DefaultResultLimit = 3

// SearchResult holds the ranked itineraries and how many orderings were priced.
type SearchResult struct {
	Itineraries []domain.Itinerary
	Evaluated   int
}

// SearchRoutes finds the cheapest orderings of the trip's intermediate stops.
//
// Every permutation of the stops is evaluated (k! orderings for k stops) with
// start and end fixed. Only fully priced orderings survive; they are sorted by
// total cost, truncated to the result limit and ranked. An empty result is a
// normal outcome, not an error.
//
// Up to workers orderings are priced concurrently. lookup must be safe for
// concurrent use when workers > 1.
func SearchRoutes(
	ctx context.Context,
	lookup LegPriceLookup,
	req domain.TripRequest,
	workers int,
) SearchResult {
	if strings.TrimSpace(req.StartCity) == "" || strings.TrimSpace(req.EndCity) == "" {
		return SearchResult{Itineraries: []domain.Itinerary{}}
	}

	limit := req.ResultLimit
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if workers < 1 {
		workers = 1
	}

	perms := Permutations(len(req.Stops))
	candidates := make([]*domain.Itinerary, len(perms))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, perm := range perms {
		i, perm := i, perm
		g.Go(func() error {
			cities, days := buildSequence(req, perm)

			cost, ok := EvaluateItinerary(ctx, lookup, cities, days, req.StartDate)
			if !ok || cost.Total <= 0 {
				return nil
			}

			it := &domain.Itinerary{
				Cities:    cities,
				DwellDays: days,
				LegPrices: cost.LegPrices,
				LegDates:  cost.LegDates,
				TotalCost: cost.Total,
			}
			if it.FullyPriced() {
				candidates[i] = it
			}
			return nil
		})
	}
	_ = g.Wait()

	routes := make([]domain.Itinerary, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			routes = append(routes, *c)
		}
	}

	// Stable sort keeps permutation order among equal totals.
	slices.SortStableFunc(routes, func(a, b domain.Itinerary) int {
		return cmp.Compare(a.TotalCost, b.TotalCost)
	})

	if len(routes) > limit {
		routes = routes[:limit]
	}
	for i := range routes {
		routes[i].Rank()
	}

	return SearchResult{Itineraries: routes, Evaluated: len(perms)}
}

// buildSequence lays out [start] + permuted stops + [end] and the aligned dwell days.
func buildSequence(req domain.TripRequest, perm []int) ([]string, []int) {
	cities := make([]string, 0, len(perm)+2)
	days := make([]int, 0, len(perm)+2)

	cities = append(cities, req.StartCity)
	days = append(days, 0)
	for _, idx := range perm {
		cities = append(cities, req.Stops[idx].Name)
		days = append(days, req.Stops[idx].Days)
	}
	cities = append(cities, req.EndCity)
	days = append(days, 0)

	return cities, days
}

// Permutations returns every ordering of 0..n-1 in lexicographic order.
// n == 0 yields a single empty ordering.
func Permutations(n int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	out := [][]int{slices.Clone(idx)}
	for nextPermutation(idx) {
		out = append(out, slices.Clone(idx))
	}
	return out
}

func nextPermutation(a []int) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	slices.Reverse(a[i+1:])
	return true
}

// Factorial of n, used to bound permutation counts.
func Factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
