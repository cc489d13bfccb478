package ports

import (
	"context"
	"flight-route-service/internal/domain"
	"time"
)

// Parameters for a single one-way leg fare search.
type FareQuery struct {
	Origin      string
	Destination string
	Date        time.Time
	Currency    string
	Party       domain.Party
}

// Contract for retrieving the cheapest available fare for one leg.
type FareProvider interface {
	// Return the lowest fare found for the query, or an error when no fare is available.
	LowestFare(ctx context.Context, q FareQuery) (float64, error)
}

// Optional extension of FareProvider that can verify connectivity to the upstream API.
type FareProviderChecker interface {
	FareProvider
	// Issue a sample query and return the sample fare found.
	CheckConnection(ctx context.Context) (float64, error)
}
