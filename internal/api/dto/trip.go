package dto

type StopRequest struct {
	Name string `json:"name"`
	Days int    `json:"days"`
}

// Adults is a pointer so an omitted value can default to one traveller.
type OptimizeRequest struct {
	StartCity    string        `json:"start_city"`
	EndCity      string        `json:"end_city"`
	MiddleCities []StopRequest `json:"middle_cities"`
	TotalDays    int           `json:"total_days"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Adults       *int          `json:"adults"`
	Children     int           `json:"children"`
	Infants      int           `json:"infants"`
	NumResults   int           `json:"num_results"`
}

type RouteResponse struct {
	Route            []string  `json:"route"`
	DaysPerCity      []int     `json:"days_per_city"`
	TotalCost        float64   `json:"total_cost"`
	IndividualPrices []float64 `json:"individual_prices"`
	FlightDates      []string  `json:"flight_dates"`
	NumFlights       int       `json:"num_flights"`
	StartCity        string    `json:"start_city"`
	EndCity          string    `json:"end_city"`
	TotalDays        int       `json:"total_days"`
	Confidence       float64   `json:"confidence"`
	Recommendation   string    `json:"recommendation"`
}

type OptimizeResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Count   int             `json:"count,omitempty"`
	Routes  []RouteResponse `json:"routes"`
}
