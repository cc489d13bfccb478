package handlers

import (
	"context"
	"errors"
	"flight-route-service/internal/api/dto"
	"flight-route-service/internal/domain"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultMaxStops = 7
	maxNumResults   = 10
)

type TripHandler struct {
	Optimizer services.OptimizerConfig
	MaxStops  int
}

// Optimize searches every ordering of the requested stops and returns the
// cheapest fully priced itineraries.
func (h *TripHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	maxStops := h.MaxStops
	if maxStops <= 0 {
		maxStops = DefaultMaxStops
	}

	trip, err := tripFromRequest(req, maxStops)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// A search is not abandoned when the client disconnects; every fare
	// request still has its own timeout.
	ctx := context.WithoutCancel(r.Context())

	log.Printf(
		"req_id=%s optimize: start=%q end=%q stops=%d orderings=%d date=%s",
		obs.RequestID(ctx), trip.StartCity, trip.EndCity, len(trip.Stops),
		services.Factorial(len(trip.Stops)), trip.StartDate.Format(domain.DateLayout),
	)

	res := services.OptimizeTrip(ctx, h.Optimizer, trip)

	if len(res.Itineraries) == 0 {
		writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
			Status:  "success",
			Message: "No routes found",
			Routes:  []dto.RouteResponse{},
		})
		return
	}

	out := dto.OptimizeResponse{
		Status: "success",
		Count:  len(res.Itineraries),
		Routes: make([]dto.RouteResponse, 0, len(res.Itineraries)),
	}
	for _, it := range res.Itineraries {
		out.Routes = append(out.Routes, routeResponse(it))
	}

	writeJSON(w, r, http.StatusOK, out)
}

func tripFromRequest(req dto.OptimizeRequest, maxStops int) (domain.TripRequest, error) {
	start := strings.TrimSpace(req.StartCity)
	end := strings.TrimSpace(req.EndCity)
	if start == "" || end == "" {
		return domain.TripRequest{}, errors.New("start_city and end_city are required")
	}

	startDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.StartDate))
	if err != nil {
		return domain.TripRequest{}, errors.New("start_date must be YYYY-MM-DD")
	}

	var endDate time.Time
	if s := strings.TrimSpace(req.EndDate); s != "" {
		endDate, err = time.Parse(domain.DateLayout, s)
		if err != nil {
			return domain.TripRequest{}, errors.New("end_date must be YYYY-MM-DD")
		}
		if endDate.Before(startDate) {
			return domain.TripRequest{}, errors.New("end_date must not be before start_date")
		}
	}

	if req.TotalDays < 0 {
		return domain.TripRequest{}, errors.New("total_days must not be negative")
	}
	if len(req.MiddleCities) > maxStops {
		return domain.TripRequest{}, fmt.Errorf("at most %d middle_cities are supported", maxStops)
	}

	stops := make([]domain.Stop, 0, len(req.MiddleCities))
	for i, c := range req.MiddleCities {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return domain.TripRequest{}, fmt.Errorf("middle_cities[%d].name is required", i)
		}
		if c.Days < 0 {
			return domain.TripRequest{}, fmt.Errorf("middle_cities[%d].days must not be negative", i)
		}
		stops = append(stops, domain.Stop{Name: name, Days: c.Days})
	}

	party := domain.DefaultParty()
	if req.Adults != nil {
		party.Adults = *req.Adults
	}
	party.Children = req.Children
	party.Infants = req.Infants
	if party.Adults < 0 || party.Children < 0 || party.Infants < 0 {
		return domain.TripRequest{}, errors.New("passenger counts must not be negative")
	}

	limit := req.NumResults
	if limit == 0 {
		limit = services.DefaultResultLimit
	}
	if limit < 1 || limit > maxNumResults {
		return domain.TripRequest{}, fmt.Errorf("num_results must be between 1 and %d", maxNumResults)
	}

	return domain.TripRequest{
		StartCity:   start,
		EndCity:     end,
		Stops:       stops,
		StartDate:   startDate,
		EndDate:     endDate,
		Party:       party,
		ResultLimit: limit,
	}, nil
}

func routeResponse(it domain.Itinerary) dto.RouteResponse {
	dates := make([]string, 0, len(it.LegDates))
	for _, d := range it.LegDates {
		dates = append(dates, d.Format(domain.DateLayout))
	}

	return dto.RouteResponse{
		Route:            it.Cities,
		DaysPerCity:      it.DwellDays,
		TotalCost:        it.TotalCost,
		IndividualPrices: it.LegPrices,
		FlightDates:      dates,
		NumFlights:       it.LegCount(),
		StartCity:        it.StartCity(),
		EndCity:          it.EndCity(),
		TotalDays:        it.TotalDays(),
		Confidence:       it.Confidence,
		Recommendation:   it.Recommendation,
	}
}
