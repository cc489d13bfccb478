package flights

import (
	"context"
	"encoding/json"
	"errors"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

var (
	// ErrNoFare means the API answered but the payload held no usable price.
	ErrNoFare = errors.New("no fare in response")
	// ErrRateLimited means the API rejected the call with HTTP 429.
	ErrRateLimited = errors.New("fare api rate limited")
)

const (
	searchFlightsPath = "/api/v1/searchFlights"

	sampleOrigin      = "LON"
	sampleDestination = "CDG"
	sampleCurrency    = "GBP"
)

// Settings for GoogleFlightsProvider. Zero values select the defaults.
type GoogleFlightsConfig struct {
	APIKey           string
	APIHost          string
	BaseURL          string
	Timeout          time.Duration
	RateLimitBackoff time.Duration
}

// GoogleFlightsProvider implements FareProvider using the Google Flights
// search API on RapidAPI.
//
// Each call is a single request with a fixed client timeout; there is no
// retry. A 429 answer sleeps a fixed backoff before returning so a later
// attempt is less likely to be rejected again.
//
// The provider is safe for concurrent use.
type GoogleFlightsProvider struct {
	session *http.Client
	apiKey  string
	apiHost string
	baseURL string
	backoff time.Duration
}

func NewGoogleFlightsProvider(cfg GoogleFlightsConfig) (*GoogleFlightsProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("google flights api key is empty")
	}
	if cfg.APIHost == "" {
		cfg.APIHost = "google-flights2.p.rapidapi.com"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://" + cfg.APIHost
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	// A negative backoff disables the post-429 sleep.
	if cfg.RateLimitBackoff == 0 {
		cfg.RateLimitBackoff = 2 * time.Second
	}

	return &GoogleFlightsProvider{
		session: &http.Client{Timeout: cfg.Timeout},
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		baseURL: cfg.BaseURL,
		backoff: cfg.RateLimitBackoff,
	}, nil
}

// LowestFare returns the cheapest fare found anywhere in the search response.
func (g *GoogleFlightsProvider) LowestFare(ctx context.Context, q ports.FareQuery) (_ float64, err error) {
	defer obs.Time(ctx, "flights.LowestFare")(&err)

	if q.Origin == "" || q.Destination == "" {
		return 0, errors.New("lowest fare: origin and destination must be non-empty")
	}

	req, err := g.newRequest(ctx, searchFlightsPath, searchParams(q))
	if err != nil {
		return 0, fmt.Errorf("lowest fare: %w", err)
	}

	start := time.Now()
	resp, err := g.session.Do(req)
	obs.FareRequestDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		obs.FareRequestsTotal.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("lowest fare %s -> %s: execute request: %w", q.Origin, q.Destination, err)
	}
	defer resp.Body.Close()

	obs.FareRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusTooManyRequests {
		g.waitBackoff(ctx)
		return 0, fmt.Errorf("lowest fare %s -> %s: %w", q.Origin, q.Destination, ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("lowest fare %s -> %s: %w", q.Origin, q.Destination, newHTTPStatusError(resp))
	}

	var payload any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return 0, fmt.Errorf("lowest fare %s -> %s: decode response: %w", q.Origin, q.Destination, err)
	}

	price, ok := ExtractLowestPrice(payload)
	if !ok {
		return 0, fmt.Errorf("lowest fare %s -> %s on %s: %w", q.Origin, q.Destination, q.Date.Format(domain.DateLayout), ErrNoFare)
	}

	return price, nil
}

// CheckConnection prices a fixed sample route a month from now.
func (g *GoogleFlightsProvider) CheckConnection(ctx context.Context) (float64, error) {
	q := ports.FareQuery{
		Origin:      sampleOrigin,
		Destination: sampleDestination,
		Date:        time.Now().UTC().AddDate(0, 1, 0),
		Currency:    sampleCurrency,
		Party:       domain.DefaultParty(),
	}

	price, err := g.LowestFare(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("check connection: %w", err)
	}
	return price, nil
}

func searchParams(q ports.FareQuery) map[string]string {
	adults := q.Party.Adults
	if adults < 1 && q.Party.Children == 0 && q.Party.Infants == 0 {
		adults = 1
	}

	params := map[string]string{
		"departure_id":  q.Origin,
		"arrival_id":    q.Destination,
		"outbound_date": q.Date.Format(domain.DateLayout),
		"currency":      q.Currency,
		"adults":        strconv.Itoa(adults),
	}
	if q.Party.Children > 0 {
		params["children"] = strconv.Itoa(q.Party.Children)
	}
	if q.Party.Infants > 0 {
		params["infants"] = strconv.Itoa(q.Party.Infants)
	}
	return params
}

func (g *GoogleFlightsProvider) waitBackoff(ctx context.Context) {
	if g.backoff <= 0 {
		return
	}

	timer := time.NewTimer(g.backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
