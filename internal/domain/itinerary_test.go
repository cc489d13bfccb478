package domain

import (
	"testing"
	"time"
)

func TestItineraryRank(t *testing.T) {
	cases := []struct {
		cost           float64
		wantConfidence float64
		wantLabel      string
	}{
		{cost: 100, wantConfidence: 0.98, wantLabel: RecommendBookNow},
		{cost: 25, wantConfidence: 0.99, wantLabel: RecommendBookNow},
		{cost: 75, wantConfidence: 0.98, wantLabel: RecommendBookNow},
		{cost: 175, wantConfidence: 0.96, wantLabel: RecommendBookNow},
		{cost: 275, wantConfidence: 0.94, wantLabel: RecommendBookNow},
		{cost: 325, wantConfidence: 0.94, wantLabel: RecommendBookNow},
		{cost: 1500, wantConfidence: 0.7, wantLabel: RecommendWait},
		{cost: 1499, wantConfidence: 0.7, wantLabel: RecommendWait},
		{cost: 1400, wantConfidence: 0.72, wantLabel: RecommendBookNow},
		{cost: 2500, wantConfidence: 0.5, wantLabel: RecommendWait},
		{cost: 9000, wantConfidence: 0.5, wantLabel: RecommendWait},
	}

	for _, tc := range cases {
		it := Itinerary{TotalCost: tc.cost}
		it.Rank()

		if it.Confidence != tc.wantConfidence {
			t.Errorf("cost %.0f: confidence = %v, want %v", tc.cost, it.Confidence, tc.wantConfidence)
		}
		if it.Recommendation != tc.wantLabel {
			t.Errorf("cost %.0f: recommendation = %q, want %q", tc.cost, it.Recommendation, tc.wantLabel)
		}
		if it.Confidence < 0.5 || it.Confidence > 1.0 {
			t.Errorf("cost %.0f: confidence %v out of [0.5, 1.0]", tc.cost, it.Confidence)
		}
	}
}

func TestItineraryDerivedFields(t *testing.T) {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	it := Itinerary{
		Cities:    []string{"London", "Paris", "Berlin", "Rome"},
		DwellDays: []int{0, 2, 3, 0},
		LegPrices: []float64{50, 80, 120},
		LegDates:  []time.Time{day, day.AddDate(0, 0, 2), day.AddDate(0, 0, 5)},
		TotalCost: 250,
	}

	if it.LegCount() != 3 {
		t.Fatalf("LegCount = %d, want 3", it.LegCount())
	}
	if it.TotalDays() != 5 {
		t.Fatalf("TotalDays = %d, want 5", it.TotalDays())
	}
	if it.StartCity() != "London" || it.EndCity() != "Rome" {
		t.Fatalf("endpoints = %q..%q, want London..Rome", it.StartCity(), it.EndCity())
	}
	if !it.FullyPriced() {
		t.Fatal("expected itinerary to be fully priced")
	}

	it.LegPrices[1] = 0
	if it.FullyPriced() {
		t.Fatal("itinerary with an unpriced leg reported as fully priced")
	}
}

func TestLocationDisplayName(t *testing.T) {
	loc := Location{Code: "LHR", Name: "London Heathrow Airport", City: "London", Country: "United Kingdom"}
	if got := loc.DisplayName(); got != "London (LHR) - London Heathrow Airport" {
		t.Fatalf("DisplayName = %q", got)
	}
}
