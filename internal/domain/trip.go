package domain

import "time"

// Date layout used for trip and leg dates on the wire.
const DateLayout = "2006-01-02"

// Passenger mix used when pricing a leg.
type Party struct {
	Adults   int
	Children int
	Infants  int
}

// Default passenger mix: a single adult.
func DefaultParty() Party {
	return Party{Adults: 1}
}

// Represents one intermediate city of a trip and how long the traveller stays there.
type Stop struct {
	Name string
	Days int
}

// Represents an incoming trip-optimization request.
// The start and end city are fixed; the intermediate stops may be visited in any order.
// EndDate is informational only: leg dates are derived from StartDate and dwell days.
type TripRequest struct {
	StartCity   string
	EndCity     string
	Stops       []Stop
	StartDate   time.Time
	EndDate     time.Time
	Party       Party
	ResultLimit int
}
