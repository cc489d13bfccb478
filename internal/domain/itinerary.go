package domain

import (
	"math"
	"strconv"
	"time"
)

const (
	RecommendBookNow = "Book now"
	RecommendWait    = "Wait for better prices"

	// Total cost at which confidence bottoms out on the linear scale.
	confidenceCostScale = 5000.0
	minConfidence       = 0.5
	bookNowThreshold    = 0.7
)

// Represents one priced ordering of the trip's cities.
// Cities holds start, the permuted intermediates and end. DwellDays is aligned
// 1:1 with Cities (start and end contribute 0). LegPrices and LegDates hold
// one entry per consecutive city pair.
type Itinerary struct {
	Cities         []string
	DwellDays      []int
	LegPrices      []float64
	LegDates       []time.Time
	TotalCost      float64
	Confidence     float64
	Recommendation string
}

func (it *Itinerary) StartCity() string {
	if len(it.Cities) == 0 {
		return ""
	}
	return it.Cities[0]
}

func (it *Itinerary) EndCity() string {
	if len(it.Cities) == 0 {
		return ""
	}
	return it.Cities[len(it.Cities)-1]
}

// Number of flights in the itinerary.
func (it *Itinerary) LegCount() int {
	if len(it.Cities) == 0 {
		return 0
	}
	return len(it.Cities) - 1
}

// Sum of days spent at all cities.
func (it *Itinerary) TotalDays() int {
	total := 0
	for _, d := range it.DwellDays {
		total += d
	}
	return total
}

// Report whether every leg is priced and the leg count matches the city count.
func (it *Itinerary) FullyPriced() bool {
	if it.TotalCost <= 0 || len(it.LegPrices) != it.LegCount() || len(it.LegPrices) == 0 {
		return false
	}
	for _, p := range it.LegPrices {
		if p <= 0 {
			return false
		}
	}
	return true
}

// Rank attaches the confidence score and recommendation label.
// Confidence is a linear heuristic on total cost, floored at 0.5 and rounded
// to two decimals; it carries no predictive guarantee.
func (it *Itinerary) Rank() {
	it.Confidence = Confidence(it.TotalCost)
	it.Recommendation = Recommendation(it.Confidence)
}

// Confidence returns max(0.5, 1 - totalCost/5000) rounded to 2 decimal places.
func Confidence(totalCost float64) float64 {
	c := math.Max(minConfidence, 1-totalCost/confidenceCostScale)
	// Round the exact double; c*100 can carry 0.99499.. up to 1.
	r, err := strconv.ParseFloat(strconv.FormatFloat(c, 'f', 2, 64), 64)
	if err != nil {
		return c
	}
	return r
}

func Recommendation(confidence float64) string {
	if confidence > bookNowThreshold {
		return RecommendBookNow
	}
	return RecommendWait
}
