package handlers

import (
	"flight-route-service/internal/api/dto"
	"flight-route-service/internal/platform/obs"
	"flight-route-service/internal/ports"
	"log"
	"net/http"
)

type FlightsHandler struct {
	Provider ports.FareProvider
}

// Status issues one sample fare query to confirm the fare API is reachable.
func (h *FlightsHandler) Status(w http.ResponseWriter, r *http.Request) {
	checker, ok := h.Provider.(ports.FareProviderChecker)
	if !ok {
		writeError(w, r, http.StatusNotImplemented, "fare provider does not support connectivity checks")
		return
	}

	price, err := checker.CheckConnection(r.Context())
	if err != nil {
		log.Printf("req_id=%s flights status: check failed: %v", obs.RequestID(r.Context()), err)
		writeJSON(w, r, http.StatusServiceUnavailable, dto.FlightsStatusResponse{
			Status: "unavailable",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FlightsStatusResponse{Status: "ok", SamplePrice: price})
}
