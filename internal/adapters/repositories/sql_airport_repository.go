package repositories

import (
	"context"
	"database/sql"
	"errors"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/obs"
	"fmt"
	"strings"
)

// SQLAirportRepository is the Postgres-backed LocationRepository.
type SQLAirportRepository struct {
	DB *sql.DB
}

func NewSQLAirportRepository(db *sql.DB) *SQLAirportRepository {
	return &SQLAirportRepository{DB: db}
}

// Return all airports in dataset order.
func (s *SQLAirportRepository) ListLocations(ctx context.Context) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "airports.ListLocations")(&err)

	if s.DB == nil {
		return nil, errors.New("airport repository: db is nil")
	}

	q := `
	SELECT iata, name, city, country, icao
	FROM airports
	ORDER BY position;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list airports: query airports table: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}

// Upsert airports, recording their dataset position.
func (s *SQLAirportRepository) SeedLocations(ctx context.Context, locations []domain.Location) error {
	if s.DB == nil {
		return errors.New("airport repository: db is nil")
	}

	if len(locations) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed airports: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO airports (iata, name, city, country, icao, position)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (iata) DO UPDATE
	SET name = EXCLUDED.name,
		city = EXCLUDED.city,
		country = EXCLUDED.country,
		icao = EXCLUDED.icao;
	`)
	if err != nil {
		return fmt.Errorf("seed airports: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, loc := range locations {
		code := strings.TrimSpace(loc.Code)
		if code == "" {
			return fmt.Errorf("seed airports: empty code at index %d", i)
		}

		if _, err := stmt.ExecContext(ctx, code, loc.Name, loc.City, loc.Country, loc.ICAO, i); err != nil {
			return fmt.Errorf("seed airports iata=%q: %w", code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed airports commit: %w", err)
	}

	return nil
}
