package main

import (
	"context"
	"database/sql"
	"flight-route-service/internal/adapters/airports"
	"flight-route-service/internal/adapters/repositories"
	"flight-route-service/internal/config"
	"flight-route-service/internal/platform/db"
	"log"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool creates the airports table in Postgres and loads it from the CSV dataset.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	csvPath := config.Get("AIRPORTS_CSV", "data/airports.csv")
	if err := initAndSeed(context.Background(), conn, csvPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, csvPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	locs, err := airports.LoadCSV(csvPath)
	if err != nil {
		log.Fatalf("reading airports failed: %v", err)
	}

	log.Printf("Seeding %d airports...", len(locs))
	if err := repositories.NewSQLAirportRepository(conn).SeedLocations(ctx, locs); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
