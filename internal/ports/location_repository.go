package ports

import (
	"context"
	"flight-route-service/internal/domain"
)

// Port: a boundary for loading the airport reference dataset.
type LocationRepository interface {
	// Retrieve all locations in dataset order.
	ListLocations(ctx context.Context) ([]domain.Location, error)
}
