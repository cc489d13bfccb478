package airports

import (
	"encoding/csv"
	"errors"
	"flight-route-service/internal/domain"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jszwec/csvutil"
)

// Column layout of the OpenFlights airports.dat file, which has no header row.
var openFlightsHeader = []string{
	"id", "name", "city", "country", "iata", "icao",
	"latitude", "longitude", "altitude", "timezone", "dst", "tz", "type", "source",
}

// Rows shorter than this cannot carry an IATA code and are skipped.
const minColumns = 6

// Missing value marker used by OpenFlights.
const nullField = `\N`

type airportRow struct {
	ID      string `csv:"id"`
	Name    string `csv:"name"`
	City    string `csv:"city"`
	Country string `csv:"country"`
	IATA    string `csv:"iata"`
	ICAO    string `csv:"icao"`
}

// fixedWidthReader skips short rows and pads or truncates the rest to the
// header width, since csvutil requires every record to match the header.
type fixedWidthReader struct {
	r     *csv.Reader
	width int
}

func (f *fixedWidthReader) Read() ([]string, error) {
	for {
		record, err := f.r.Read()
		if err != nil {
			return nil, err
		}
		if len(record) < minColumns {
			continue
		}

		out := make([]string, f.width)
		copy(out, record)
		return out, nil
	}
}

// LoadCSV reads the airport dataset from path.
func LoadCSV(path string) ([]domain.Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load airports: open %q: %w", path, err)
	}
	defer f.Close()

	locations, err := ParseOpenFlights(f)
	if err != nil {
		return nil, fmt.Errorf("load airports: %q: %w", path, err)
	}

	log.Printf("Loaded %d airports with IATA codes from %s", len(locations), path)
	return locations, nil
}

// ParseOpenFlights decodes OpenFlights-formatted rows, keeping only airports
// with a 3-character IATA code, in file order.
func ParseOpenFlights(r io.Reader) ([]domain.Location, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	decoder, err := csvutil.NewDecoder(&fixedWidthReader{r: cr, width: len(openFlightsHeader)}, openFlightsHeader...)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Location{}, nil
		}
		return nil, fmt.Errorf("create csv decoder: %w", err)
	}

	locations := make([]domain.Location, 0, 1024)
	for {
		var row airportRow
		if err := decoder.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode airport row: %w", err)
		}

		iata := strings.TrimSpace(row.IATA)
		if iata == "" || iata == nullField || len(iata) != 3 {
			continue
		}

		icao := strings.TrimSpace(row.ICAO)
		if icao == nullField {
			icao = ""
		}

		locations = append(locations, domain.Location{
			Code:    iata,
			Name:    strings.TrimSpace(row.Name),
			City:    strings.TrimSpace(row.City),
			Country: strings.TrimSpace(row.Country),
			ICAO:    icao,
		})
	}

	return locations, nil
}
