package dto

type AirportResponse struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
	ICAO    string `json:"icao,omitempty"`
}

type IATAResponse struct {
	City string `json:"city"`
	IATA string `json:"iata"`
}

type AirportsResponse struct {
	City     string            `json:"city"`
	Airports []AirportResponse `json:"airports"`
}

type CountryAirportsResponse struct {
	Country  string            `json:"country"`
	Airports []AirportResponse `json:"airports"`
}

type AirportLookupResponse struct {
	IATACode    string `json:"iata_code"`
	CityName    string `json:"city_name"`
	Country     string `json:"country"`
	AirportName string `json:"airport_name"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type FlightsStatusResponse struct {
	Status      string  `json:"status"`
	SamplePrice float64 `json:"sample_price,omitempty"`
	Error       string  `json:"error,omitempty"`
}
