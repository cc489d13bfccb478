package repositories

import (
	"context"
	"database/sql"
	"errors"
	"flight-route-service/internal/domain"
	"fmt"
	"strings"
)

// SQLite-backed implementation of the LocationRepository port.
type SqliteAirportRepository struct{ DB *sql.DB }

func NewSqliteAirportRepository(db *sql.DB) *SqliteAirportRepository {
	return &SqliteAirportRepository{DB: db}
}

// Return all airports in dataset order.
func (s *SqliteAirportRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite airport repository: DB is nil")
	}

	query := `
	SELECT
		iata,
		name,
		city,
		country,
		icao
	FROM airports
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list airports: query airports table: %w", err)
	}
	defer rows.Close()

	return scanLocations(rows)
}

// Count the stored airports.
func (s *SqliteAirportRepository) Count(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite airport repository: DB is nil")
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM airports;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count airports: %w", err)
	}
	return n, nil
}

// Insert or replace airports, recording their dataset position.
func (s *SqliteAirportRepository) SeedLocations(ctx context.Context, locations []domain.Location) error {
	if s.DB == nil {
		return errors.New("sqlite airport repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed airports: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO airports (
		iata,
		name,
		city,
		country,
		icao,
		position
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed airports: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, loc := range locations {
		code := strings.TrimSpace(loc.Code)
		if code == "" {
			return fmt.Errorf("seed airports: empty code at index %d", i)
		}
		if _, err := stmt.ExecContext(ctx, code, loc.Name, loc.City, loc.Country, loc.ICAO, i); err != nil {
			return fmt.Errorf("seed airports: insert iata=%s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed airports: commit tx: %w", err)
	}

	return nil
}

func scanLocations(rows *sql.Rows) ([]domain.Location, error) {
	locations := make([]domain.Location, 0, 1024)
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.Code, &loc.Name, &loc.City, &loc.Country, &loc.ICAO); err != nil {
			return nil, fmt.Errorf("list airports: scan row: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list airports: row iteration: %w", err)
	}

	return locations, nil
}
