package flights

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Flight list categories, in the order they are pooled.
var flightListKeys = []string{"topFlights", "otherFlights", "bestFlights", "cheapestFlights"}

// ExtractLowestPrice finds the cheapest fare in a decoded search response.
//
// The payload must be an object with status == true and an object under
// "data". Every flight list under data.itineraries and then data itself is
// pooled, and the minimum numeric "price" across all of them wins. When no
// list yields a price, a numeric data.price is used instead.
func ExtractLowestPrice(payload any) (float64, bool) {
	root, ok := payload.(map[string]any)
	if !ok {
		return 0, false
	}
	if status, ok := root["status"].(bool); !ok || !status {
		return 0, false
	}
	data, ok := root["data"].(map[string]any)
	if !ok {
		return 0, false
	}

	var lists [][]any
	if groups, ok := data["itineraries"].(map[string]any); ok {
		lists = appendFlightLists(lists, groups)
	}
	lists = appendFlightLists(lists, data)

	found := false
	lowest := 0.0
	for _, flights := range lists {
		for _, f := range flights {
			flight, ok := f.(map[string]any)
			if !ok {
				continue
			}
			price, ok := parsePrice(flight["price"])
			if !ok {
				continue
			}
			if !found || price < lowest {
				lowest = price
				found = true
			}
		}
	}
	if found {
		return lowest, true
	}

	return parsePrice(data["price"])
}

func appendFlightLists(lists [][]any, m map[string]any) [][]any {
	for _, key := range flightListKeys {
		if l, ok := m[key].([]any); ok {
			lists = append(lists, l)
		}
	}
	return lists
}

// parsePrice accepts JSON numbers and numeric strings; NaN and infinities are rejected.
func parsePrice(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
