package services

import (
	"context"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"
	"log"
	"time"
)

// OptimizerConfig carries the process-wide dependencies shared by all sessions.
type OptimizerConfig struct {
	Locations       LocationIndex
	Provider        ports.FareProvider
	Strategy        Strategy
	Currency        string
	RateLimitMax    int
	RateLimitWindow time.Duration
	Workers         int
}

// RouteOptimizer is one trip-optimization session.
//
// It owns the resolver cache, the price cache and the rate limiter, and must
// not be shared across requests.
type RouteOptimizer struct {
	cfg      OptimizerConfig
	party    domain.Party
	resolver *LocationResolver
	pricer   *LegPricer
}

func NewRouteOptimizer(cfg OptimizerConfig, party domain.Party) *RouteOptimizer {
	if cfg.RateLimitMax < 1 {
		cfg.RateLimitMax = 10
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = time.Second
	}
	if cfg.Currency == "" {
		cfg.Currency = "GBP"
	}
	if party.Adults == 0 && party.Children == 0 && party.Infants == 0 {
		party = domain.DefaultParty()
	}

	resolver := NewLocationResolver(cfg.Locations, cfg.Strategy)
	limiter := NewSlidingWindowLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)

	return &RouteOptimizer{
		cfg:      cfg,
		party:    party,
		resolver: resolver,
		pricer:   NewLegPricer(cfg.Provider, resolver, limiter, cfg.Currency, party),
	}
}

// FindOptimalRoutes runs the permutation search for req using this session's caches.
func (o *RouteOptimizer) FindOptimalRoutes(ctx context.Context, req domain.TripRequest) SearchResult {
	defer obs.Time(ctx, "optimizer.FindOptimalRoutes")(nil)

	start := time.Now()
	req.StartDate = dayStart(req.StartDate)

	log.Printf(
		"req_id=%s find routes: start=%q end=%q stops=%d date=%s adults=%d children=%d infants=%d",
		obs.RequestID(ctx), req.StartCity, req.EndCity, len(req.Stops), req.StartDate.Format(domain.DateLayout),
		o.party.Adults, o.party.Children, o.party.Infants,
	)

	res := SearchRoutes(ctx, o.pricer, req, o.cfg.Workers)

	obs.SearchPermutationsTotal.Add(float64(res.Evaluated))
	obs.SearchDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	if len(res.Itineraries) == 0 {
		log.Printf("req_id=%s find routes: no fully priced route among %d orderings", obs.RequestID(ctx), res.Evaluated)
	} else {
		log.Printf("req_id=%s find routes: %d routes, cheapest=%.2f", obs.RequestID(ctx), len(res.Itineraries), res.Itineraries[0].TotalCost)
	}

	return res
}

// OptimizeTrip creates a fresh session for req and runs the search.
func OptimizeTrip(ctx context.Context, cfg OptimizerConfig, req domain.TripRequest) SearchResult {
	return NewRouteOptimizer(cfg, req.Party).FindOptimalRoutes(ctx, req)
}
