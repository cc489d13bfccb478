package airports

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	locs, err := LoadCSV(filepath.Join("testdata", "airports.dat"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantCodes := []string{"LHR", "LGW", "CDG", "ORY", "CIA", "FCO", "BER"}
	if len(locs) != len(wantCodes) {
		t.Fatalf("loaded %d airports, want %d", len(locs), len(wantCodes))
	}
	for i, code := range wantCodes {
		if locs[i].Code != code {
			t.Errorf("locs[%d].Code = %q, want %q", i, locs[i].Code, code)
		}
	}

	lhr := locs[0]
	if lhr.Name != "London Heathrow Airport" || lhr.City != "London" || lhr.Country != "United Kingdom" || lhr.ICAO != "EGLL" {
		t.Fatalf("unexpected LHR record: %+v", lhr)
	}

	if ber := locs[6]; ber.ICAO != "" {
		t.Fatalf("BER ICAO = %q, want empty for \\N", ber.ICAO)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join("testdata", "missing.dat")); err == nil {
		t.Fatal("expected error for missing dataset")
	}
}

func TestParseOpenFlightsEmpty(t *testing.T) {
	locs, err := ParseOpenFlights(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(locs) != 0 {
		t.Fatalf("expected no locations, got %d", len(locs))
	}
}
