package api

import (
	"flight-route-service/internal/api/handlers"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"
	"flight-route-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterConfig carries the process-wide dependencies of the HTTP layer.
type RouterConfig struct {
	Directory   *services.LocationDirectory
	Optimizer   services.OptimizerConfig
	Suggestions ports.SuggestionCache
	MaxStops    int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	tripHandler := &handlers.TripHandler{
		Optimizer: cfg.Optimizer,
		MaxStops:  cfg.MaxStops,
	}
	locHandler := &handlers.LocationHandler{
		Directory:   cfg.Directory,
		Suggestions: cfg.Suggestions,
	}
	flightsHandler := &handlers.FlightsHandler{Provider: cfg.Optimizer.Provider}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/optimize", tripHandler.Optimize).Methods(http.MethodPost)
	r.HandleFunc("/iata", locHandler.IATA).Methods(http.MethodGet)
	r.HandleFunc("/airports", locHandler.Airports).Methods(http.MethodGet)
	r.Handle("/metrics", obs.MetricsHandler()).Methods(http.MethodGet)

	apiRoutes := r.PathPrefix("/api").Subrouter()
	apiRoutes.HandleFunc("/airport-lookup/{city}", locHandler.AirportLookup).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/airports-by-country", locHandler.AirportsByCountry).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/city-suggestions", locHandler.CitySuggestions).Methods(http.MethodGet)
	apiRoutes.HandleFunc("/flights/status", flightsHandler.Status).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})

	return requestIDMiddleware(loggingMiddleware(recoveryMiddleware(corsHandler.Handler(r))))
}
