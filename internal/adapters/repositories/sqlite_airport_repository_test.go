package repositories

import (
	"context"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/db"
	"testing"
)

func TestSqliteAirportRepositoryRoundTrip(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer conn.Close()

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	repo := NewSqliteAirportRepository(conn)
	ctx := context.Background()

	seed := []domain.Location{
		{Code: "LHR", Name: "London Heathrow Airport", City: "London", Country: "United Kingdom", ICAO: "EGLL"},
		{Code: "CDG", Name: "Charles de Gaulle International Airport", City: "Paris", Country: "France", ICAO: "LFPG"},
		{Code: "BER", Name: "Berlin Brandenburg Airport", City: "Berlin", Country: "Germany"},
	}
	if err := repo.SeedLocations(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Re-seeding replaces rows rather than duplicating them.
	if err := repo.SeedLocations(ctx, seed); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}

	got, err := repo.ListLocations(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != len(seed) {
		t.Fatalf("listed %d airports, want %d", len(got), len(seed))
	}
	for i := range seed {
		if got[i] != seed[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], seed[i])
		}
	}
}

func TestSeedLocationsRejectsEmptyCode(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer conn.Close()

	if err := InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	repo := NewSqliteAirportRepository(conn)
	if err := repo.SeedLocations(context.Background(), []domain.Location{{Name: "Nameless"}}); err == nil {
		t.Fatal("expected error for empty code")
	}
}
