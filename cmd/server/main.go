package main

import (
	"context"
	"database/sql"
	"flight-route-service/internal/adapters/airports"
	"flight-route-service/internal/adapters/cache"
	"flight-route-service/internal/adapters/flights"
	"flight-route-service/internal/adapters/repositories"
	"flight-route-service/internal/api"
	"flight-route-service/internal/config"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/db"
	"flight-route-service/internal/ports"
	"flight-route-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It loads the airport dataset, wires the fare API adapter behind its port and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	strategy, err := services.ParseStrategy(cfg.ResolveStrategy)
	if err != nil {
		log.Fatal(err)
	}

	// Without a dataset no city can be resolved, so startup stops here.
	locations, err := loadLocations(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	directory := services.NewLocationDirectory(locations)
	log.Printf("airport dataset loaded: airports=%d cities=%d", directory.Count(), directory.CityCount())

	provider, err := flights.NewGoogleFlightsProvider(flights.GoogleFlightsConfig{
		APIKey:           cfg.RapidAPIKey,
		APIHost:          cfg.RapidAPIHost,
		BaseURL:          cfg.FlightsBaseURL,
		Timeout:          cfg.FareTimeout,
		RateLimitBackoff: cfg.RateLimitBackoff,
	})
	if err != nil {
		log.Fatal(err)
	}

	var suggestions ports.SuggestionCache
	if rc := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword); rc != nil {
		defer rc.Close()
		suggestions = cache.NewRedisSuggestionCache(rc, cfg.SuggestionTTL)
		log.Printf("suggestion cache enabled: redis=%s ttl=%s", cfg.RedisAddr, cfg.SuggestionTTL)
	}

	router := api.NewRouter(api.RouterConfig{
		Directory: directory,
		Optimizer: services.OptimizerConfig{
			Locations:       directory,
			Provider:        provider,
			Strategy:        strategy,
			Currency:        cfg.Currency,
			RateLimitMax:    cfg.RateLimitMax,
			RateLimitWindow: cfg.RateLimitWindow,
			Workers:         cfg.SearchWorkers,
		},
		Suggestions: suggestions,
		MaxStops:    cfg.MaxStops,
	})

	// Seven stops means 5040 orderings priced at the fare API rate limit, so
	// writes are allowed to take a long time.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// loadLocations reads the airport dataset from Postgres, a local SQLite copy
// seeded from the CSV, or the CSV itself, in that order of preference.
func loadLocations(ctx context.Context, cfg config.Server) ([]domain.Location, error) {
	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("load locations: %w", err)
		}
		defer conn.Close()

		return listNonEmpty(ctx, repositories.NewSQLAirportRepository(conn), "postgres")

	case cfg.DBPath != "":
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("load locations: %w", err)
		}
		defer conn.Close()

		if err := initAndSeed(ctx, conn, cfg.AirportsCSV); err != nil {
			return nil, fmt.Errorf("load locations: %w", err)
		}
		return listNonEmpty(ctx, repositories.NewSqliteAirportRepository(conn), "sqlite")

	default:
		locs, err := airports.LoadCSV(cfg.AirportsCSV)
		if err != nil {
			return nil, fmt.Errorf("load locations: %w", err)
		}
		if len(locs) == 0 {
			return nil, fmt.Errorf("load locations: no airports in %s", cfg.AirportsCSV)
		}
		return locs, nil
	}
}

func listNonEmpty(ctx context.Context, repo ports.LocationRepository, source string) ([]domain.Location, error) {
	locs, err := repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	if len(locs) == 0 {
		return nil, fmt.Errorf("load locations: %s airports table is empty", source)
	}
	return locs, nil
}

// initAndSeed creates the schema and fills an empty airports table from the CSV.
func initAndSeed(ctx context.Context, conn *sql.DB, csvPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	repo := repositories.NewSqliteAirportRepository(conn)
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if n > 0 {
		return nil
	}

	locs, err := airports.LoadCSV(csvPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repo.SeedLocations(ctx, locs); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Printf("sqlite airports seeded: rows=%d source=%s", len(locs), csvPath)

	return nil
}
