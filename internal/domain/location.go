package domain

import "fmt"

// Represents a single airport record from the reference dataset.
// Locations are loaded once at startup and never mutated afterwards.
// Code is the 3-letter IATA-style identifier and is unique per dataset.
type Location struct {
	Code    string
	Name    string
	City    string
	Country string
	ICAO    string
}

// Return the human-readable suggestion form "City (CODE) - Airport Name".
func (l Location) DisplayName() string {
	return fmt.Sprintf("%s (%s) - %s", l.City, l.Code, l.Name)
}
