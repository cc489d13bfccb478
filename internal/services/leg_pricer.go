package services

import (
	"context"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"
	"fmt"
	"log"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// LegPriceLookup prices one leg between two named places on a date.
// ok is false when no price is available; implementations never fail otherwise.
type LegPriceLookup interface {
	Price(ctx context.Context, from, to string, date time.Time) (price float64, ok bool)
}

// LegPricer is the cached, rate-limited price fetcher of one optimizer session.
//
// Prices are cached by (origin code, destination code, date) for the life of
// the pricer, with no expiry. Concurrent misses for the same leg share one
// upstream call. Upstream failures are logged and reported as unavailable.
type LegPricer struct {
	provider ports.FareProvider
	resolver *LocationResolver
	limiter  *SlidingWindowLimiter
	currency string
	party    domain.Party

	cache *gocache.Cache
	group singleflight.Group
}

func NewLegPricer(
	provider ports.FareProvider,
	resolver *LocationResolver,
	limiter *SlidingWindowLimiter,
	currency string,
	party domain.Party,
) *LegPricer {
	return &LegPricer{
		provider: provider,
		resolver: resolver,
		limiter:  limiter,
		currency: currency,
		party:    party,
		cache:    gocache.New(gocache.NoExpiration, 0),
	}
}

func legKey(origin, destination string, date time.Time) string {
	return fmt.Sprintf("%s|%s|%s", origin, destination, date.Format(domain.DateLayout))
}

func (p *LegPricer) Price(ctx context.Context, from, to string, date time.Time) (float64, bool) {
	origin, _ := p.resolver.Resolve(from)
	destination, _ := p.resolver.Resolve(to)
	key := legKey(origin, destination, date)

	if v, ok := p.cache.Get(key); ok {
		obs.LegLookupsTotal.WithLabelValues("hit").Inc()
		return v.(float64), true
	}

	v, _, _ := p.group.Do(key, func() (any, error) {
		if v, ok := p.cache.Get(key); ok {
			return v.(float64), nil
		}
		return p.fetch(ctx, from, to, ports.FareQuery{
			Origin:      origin,
			Destination: destination,
			Date:        date,
			Currency:    p.currency,
			Party:       p.party,
		}, key), nil
	})

	price := v.(float64)
	if price <= 0 {
		obs.LegLookupsTotal.WithLabelValues("unavailable").Inc()
		return 0, false
	}
	obs.LegLookupsTotal.WithLabelValues("fetched").Inc()
	return price, true
}

// fetch performs the rate-limited upstream call and caches valid prices.
func (p *LegPricer) fetch(ctx context.Context, from, to string, q ports.FareQuery, key string) float64 {
	waited, err := p.limiter.Wait(ctx)
	obs.RateLimitWaitMs.Observe(float64(waited.Milliseconds()))
	if err != nil {
		log.Printf("price leg: rate limiter wait %s -> %s: %v", from, to, err)
		return 0
	}

	price, err := p.provider.LowestFare(ctx, q)
	if err != nil {
		log.Printf(
			"price leg unavailable: from=%q(%s) to=%q(%s) date=%s err=%v",
			from, q.Origin, to, q.Destination, q.Date.Format(domain.DateLayout), err,
		)
		return 0
	}
	if price <= 0 {
		log.Printf("price leg: non-positive fare from=%s to=%s date=%s price=%v", q.Origin, q.Destination, q.Date.Format(domain.DateLayout), price)
		return 0
	}

	p.cache.Set(key, price, gocache.NoExpiration)
	log.Printf("price leg: from=%q(%s) to=%q(%s) date=%s price=%.2f", from, q.Origin, to, q.Destination, q.Date.Format(domain.DateLayout), price)
	return price
}
