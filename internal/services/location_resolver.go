package services

import (
	"flight-route-service/internal/domain"
	"log"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// LocationIndex is the subset of LocationDirectory the resolver depends on.
type LocationIndex interface {
	Lookup(code string) (domain.Location, bool)
	CodeForCity(city string, strategy Strategy) (string, bool)
	MatchSubstring(text string) (string, bool)
}

type resolution struct {
	code     string
	verified bool
}

// LocationResolver maps free text to a 3-letter location code.
//
// Resolve never fails: unrecognized input degrades to the first three
// characters of the text, reported as unverified. Results are memoized per
// resolver, so one resolver belongs to one optimizer session.
type LocationResolver struct {
	index    LocationIndex
	strategy Strategy
	cache    *gocache.Cache
}

func NewLocationResolver(index LocationIndex, strategy Strategy) *LocationResolver {
	if strategy == "" {
		strategy = StrategyLargest
	}
	return &LocationResolver{
		index:    index,
		strategy: strategy,
		cache:    gocache.New(gocache.NoExpiration, 0),
	}
}

// Resolve returns the code for text and whether it was confirmed against the dataset.
func (r *LocationResolver) Resolve(text string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	if v, ok := r.cache.Get(key); ok {
		res := v.(resolution)
		return res.code, res.verified
	}

	res := r.resolve(strings.TrimSpace(text))
	if !res.verified {
		log.Printf("resolve location: input=%q code=%s verified=false", text, res.code)
	}
	r.cache.Set(key, res, gocache.NoExpiration)

	return res.code, res.verified
}

func (r *LocationResolver) resolve(text string) resolution {
	// Well-formed codes bypass the city scan entirely.
	if isLocationCode(text) {
		if _, ok := r.index.Lookup(text); ok {
			return resolution{code: text, verified: true}
		}
		log.Printf("resolve location: code=%s not in dataset, using as-is", text)
		return resolution{code: text}
	}

	if code, ok := r.index.CodeForCity(text, r.strategy); ok {
		return resolution{code: code, verified: true}
	}

	upper := strings.ToUpper(text)
	if _, ok := r.index.Lookup(upper); ok {
		return resolution{code: upper, verified: true}
	}

	if code, ok := r.index.MatchSubstring(text); ok {
		return resolution{code: code, verified: true}
	}

	return resolution{code: fallbackCode(text)}
}

func isLocationCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func fallbackCode(s string) string {
	runes := []rune(s)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}
