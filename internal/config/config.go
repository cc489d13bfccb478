package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses key as an integer; invalid values fall back with a log line.
func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// GetDuration parses key with time.ParseDuration; invalid values fall back with a log line.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// Largest accepted MAX_STOPS; every ordering of the stops is materialized up front.
const MaxStopsLimit = 9

// Server holds the settings read by cmd/server.
type Server struct {
	Port string

	AirportsCSV string
	DatabaseURL string
	DBPath      string

	RapidAPIKey    string
	RapidAPIHost   string
	FlightsBaseURL string
	Currency       string
	FareTimeout    time.Duration

	RateLimitMax     int
	RateLimitWindow  time.Duration
	RateLimitBackoff time.Duration

	SearchWorkers   int
	MaxStops        int
	ResolveStrategy string

	RedisAddr     string
	RedisPassword string
	SuggestionTTL time.Duration
}

// Load reads the server configuration from the environment.
func Load() (Server, error) {
	cfg := Server{
		Port: Get("PORT", "8080"),

		AirportsCSV: Get("AIRPORTS_CSV", "data/airports.csv"),
		DatabaseURL: Get("DATABASE_URL", ""),
		DBPath:      Get("DB_PATH", ""),

		RapidAPIKey:    Get("RAPIDAPI_KEY", ""),
		RapidAPIHost:   Get("RAPIDAPI_HOST", "google-flights2.p.rapidapi.com"),
		FlightsBaseURL: Get("FLIGHTS_BASE_URL", "https://google-flights2.p.rapidapi.com"),
		Currency:       Get("FARE_CURRENCY", "GBP"),
		FareTimeout:    GetDuration("FARE_TIMEOUT", 15*time.Second),

		RateLimitMax:     GetInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow:  GetDuration("RATE_LIMIT_WINDOW", time.Second),
		RateLimitBackoff: GetDuration("RATE_LIMIT_BACKOFF", 2*time.Second),

		SearchWorkers:   GetInt("SEARCH_WORKERS", 4),
		MaxStops:        GetInt("MAX_STOPS", 7),
		ResolveStrategy: Get("RESOLVE_STRATEGY", "largest"),

		RedisAddr:     Get("REDIS_ADDR", ""),
		RedisPassword: Get("REDIS_PASSWORD", ""),
		SuggestionTTL: GetDuration("SUGGESTION_TTL", time.Hour),
	}

	if cfg.RapidAPIKey == "" {
		return Server{}, fmt.Errorf("load config: RAPIDAPI_KEY is required")
	}
	if cfg.RateLimitMax < 1 {
		return Server{}, fmt.Errorf("load config: RATE_LIMIT_MAX must be >= 1, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return Server{}, fmt.Errorf("load config: RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}
	if cfg.MaxStops < 1 || cfg.MaxStops > MaxStopsLimit {
		return Server{}, fmt.Errorf("load config: MAX_STOPS must be between 1 and %d, got %d", MaxStopsLimit, cfg.MaxStops)
	}
	if cfg.SearchWorkers < 1 {
		cfg.SearchWorkers = 1
	}

	return cfg, nil
}
