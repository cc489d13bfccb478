package services

import (
	"flight-route-service/internal/domain"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"
)

// Strategy selects one airport when several share a city name.
type Strategy string

const (
	// Prefer airports whose name contains "international"; dataset order breaks ties.
	StrategyLargest Strategy = "largest"
	StrategyFirst   Strategy = "first"
	StrategyRandom  Strategy = "random"
)

const (
	DefaultSuggestionLimit = 7
	minSuggestionQuery     = 2
)

// ParseStrategy validates a strategy name. An empty name selects StrategyLargest.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyLargest:
		return StrategyLargest, nil
	case StrategyFirst:
		return StrategyFirst, nil
	case StrategyRandom:
		return StrategyRandom, nil
	}
	return "", fmt.Errorf("parse strategy: unknown strategy %q", s)
}

// LocationDirectory is the read-only index over the airport dataset.
// It is built once at startup and is safe for concurrent use.
type LocationDirectory struct {
	locations []domain.Location
	byCode    map[string]int
	byCity    map[string][]domain.Location
	cities    []string
}

func NewLocationDirectory(locations []domain.Location) *LocationDirectory {
	d := &LocationDirectory{
		locations: make([]domain.Location, 0, len(locations)),
		byCode:    make(map[string]int, len(locations)),
		byCity:    make(map[string][]domain.Location),
	}

	for _, loc := range locations {
		code := strings.ToUpper(strings.TrimSpace(loc.Code))
		if len(code) != 3 {
			continue
		}
		loc.Code = code

		// A repeated code replaces the earlier record but keeps its position.
		if i, ok := d.byCode[code]; ok {
			d.locations[i] = loc
			continue
		}
		d.byCode[code] = len(d.locations)
		d.locations = append(d.locations, loc)
	}

	for _, loc := range d.locations {
		city := normalizeCity(loc.City)
		if _, ok := d.byCity[city]; !ok {
			d.cities = append(d.cities, city)
		}
		d.byCity[city] = append(d.byCity[city], loc)
	}

	return d
}

func normalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Number of distinct location codes.
func (d *LocationDirectory) Count() int { return len(d.locations) }

// Number of distinct normalized city names.
func (d *LocationDirectory) CityCount() int { return len(d.cities) }

// Lookup returns the location for an exact (case-insensitive) code.
func (d *LocationDirectory) Lookup(code string) (domain.Location, bool) {
	i, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return domain.Location{}, false
	}
	return d.locations[i], true
}

// AirportsInCity returns every location whose city matches, in dataset order.
func (d *LocationDirectory) AirportsInCity(city string) []domain.Location {
	locs := d.byCity[normalizeCity(city)]
	out := make([]domain.Location, len(locs))
	copy(out, locs)
	return out
}

func (d *LocationDirectory) AirportsInCountry(country string) []domain.Location {
	want := normalizeCity(country)
	out := []domain.Location{}
	for _, loc := range d.locations {
		if normalizeCity(loc.Country) == want {
			out = append(out, loc)
		}
	}
	return out
}

// CodeForCity picks a single code for a city name using strategy.
func (d *LocationDirectory) CodeForCity(city string, strategy Strategy) (string, bool) {
	airports := d.byCity[normalizeCity(city)]
	switch len(airports) {
	case 0:
		return "", false
	case 1:
		return airports[0].Code, true
	}

	switch strategy {
	case StrategyFirst:
		return airports[0].Code, true
	case StrategyRandom:
		return airports[rand.Intn(len(airports))].Code, true
	default:
		for _, a := range airports {
			if strings.Contains(strings.ToLower(a.Name), "international") {
				return a.Code, true
			}
		}
		return airports[0].Code, true
	}
}

// MatchSubstring returns the first location (dataset order) whose name or
// city contains text, case-insensitively.
func (d *LocationDirectory) MatchSubstring(text string) (string, bool) {
	needle := strings.ToLower(text)
	if needle == "" {
		return "", false
	}
	for _, loc := range d.locations {
		if strings.Contains(strings.ToLower(loc.Name), needle) ||
			strings.Contains(strings.ToLower(loc.City), needle) {
			return loc.Code, true
		}
	}
	return "", false
}

// Search returns up to limit "City (CODE) - Airport Name" suggestions.
// City-name matches come first, then airport name or code matches.
func (d *LocationDirectory) Search(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < minSuggestionQuery {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	add := func(loc domain.Location) bool {
		s := loc.DisplayName()
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
		return len(out) >= limit
	}

	for _, city := range d.cities {
		if !strings.Contains(city, q) {
			continue
		}
		for _, loc := range d.byCity[city] {
			if add(loc) {
				return out
			}
		}
	}

	for _, loc := range d.locations {
		if strings.Contains(strings.ToLower(loc.Name), q) || strings.Contains(strings.ToLower(loc.Code), q) {
			if add(loc) {
				return out
			}
		}
	}

	return out
}
