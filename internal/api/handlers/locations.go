package handlers

import (
	"flight-route-service/internal/api/dto"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"
	"flight-route-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

const maxSuggestionLimit = 50

// LocationHandler exposes read-only lookups over the airport dataset.
// Suggestions is optional; when nil, suggestions are computed on every request.
type LocationHandler struct {
	Directory   *services.LocationDirectory
	Suggestions ports.SuggestionCache
}

func (h *LocationHandler) IATA(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}

	strategy, err := services.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "strategy must be one of largest, first, random")
		return
	}

	code, ok := h.Directory.CodeForCity(city, strategy)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("no IATA code found for city: %s", city))
		return
	}

	res := dto.IATAResponse{City: city, IATA: code}
	if loc, ok := h.Directory.Lookup(code); ok {
		res.City = loc.City
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *LocationHandler) Airports(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		writeError(w, r, http.StatusBadRequest, "city is required")
		return
	}

	locs := h.Directory.AirportsInCity(city)
	if len(locs) == 0 {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("no airports found for city: %s", city))
		return
	}

	res := dto.AirportsResponse{
		City:     locs[0].City,
		Airports: make([]dto.AirportResponse, 0, len(locs)),
	}
	for _, loc := range locs {
		res.Airports = append(res.Airports, airportResponse(loc))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *LocationHandler) AirportsByCountry(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		writeError(w, r, http.StatusBadRequest, "country is required")
		return
	}

	locs := h.Directory.AirportsInCountry(country)
	if len(locs) == 0 {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("no airports found for country: %s", country))
		return
	}

	res := dto.CountryAirportsResponse{
		Country:  locs[0].Country,
		Airports: make([]dto.AirportResponse, 0, len(locs)),
	}
	for _, loc := range locs {
		res.Airports = append(res.Airports, airportResponse(loc))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// AirportLookup resolves a city path segment with the largest-airport strategy.
func (h *LocationHandler) AirportLookup(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(mux.Vars(r)["city"])

	code, ok := h.Directory.CodeForCity(city, services.StrategyLargest)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("no airports found for city: %s", city))
		return
	}
	loc, _ := h.Directory.Lookup(code)

	writeJSON(w, r, http.StatusOK, dto.AirportLookupResponse{
		IATACode:    code,
		CityName:    loc.City,
		Country:     loc.Country,
		AirportName: loc.Name,
	})
}

func (h *LocationHandler) CitySuggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	limit := services.DefaultSuggestionLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSuggestionLimit {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxSuggestionLimit))
			return
		}
		limit = n
	}

	key := fmt.Sprintf("%s|%d", strings.ToLower(query), limit)
	if h.Suggestions != nil {
		if cached, ok := h.Suggestions.Get(r.Context(), key); ok {
			writeJSON(w, r, http.StatusOK, dto.SuggestionsResponse{Suggestions: cached})
			return
		}
	}

	suggestions := h.Directory.Search(query, limit)

	if h.Suggestions != nil && len(suggestions) > 0 {
		if err := h.Suggestions.Set(r.Context(), key, suggestions); err != nil {
			log.Printf("req_id=%s city suggestions: cache set failed: %v", obs.RequestID(r.Context()), err)
		}
	}

	writeJSON(w, r, http.StatusOK, dto.SuggestionsResponse{Suggestions: suggestions})
}

func airportResponse(loc domain.Location) dto.AirportResponse {
	return dto.AirportResponse{
		IATA:    loc.Code,
		Name:    loc.Name,
		City:    loc.City,
		Country: loc.Country,
		ICAO:    loc.ICAO,
	}
}
