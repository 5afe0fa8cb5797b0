package pricing

import (
	"strings"
)

// DefaultLocationCode is used when a place cannot be resolved.
const DefaultLocationCode = "DEL"

var defaultCityCodes = map[string]string{
	"delhi":     "DEL",
	"new delhi": "DEL",
	"noida":     "DEL",
	"mumbai":    "BOM",
	"bombay":    "BOM",
	"goa":       "GOI",
	"bengaluru": "BLR",
	"bangalore": "BLR",
	"hyderabad": "HYD",
	"kolkata":   "CCU",
	"calcutta":  "CCU",
	"chennai":   "MAA",
	"pune":      "PNQ",
	"jaipur":    "JAI",
	"lucknow":   "LKO",

	// international
	"dubai":       "DXB",
	"abu dhabi":   "AUH",
	"paris":       "CDG",
	"london":      "LHR",
	"new york":    "JFK",
	"los angeles": "LAX",
	"doha":        "DOH",
}

// DefaultCityCodes returns a fresh copy of the built-in place table.
func DefaultCityCodes() map[string]string {
	out := make(map[string]string, len(defaultCityCodes))
	for k, v := range defaultCityCodes {
		out[k] = v
	}
	return out
}

// CityResolver maps free-text place names to 3-letter location codes.
// It is immutable after construction and safe for concurrent use.
type CityResolver struct {
	codes       map[string]string
	defaultCode string
}

func NewCityResolver(codes map[string]string, defaultCode string) *CityResolver {
	table := make(map[string]string, len(codes))
	for name, code := range codes {
		table[normalizePlace(name)] = strings.ToUpper(code)
	}

	if !isLocationCode(defaultCode) {
		defaultCode = DefaultLocationCode
	}

	return &CityResolver{
		codes:       table,
		defaultCode: strings.ToUpper(defaultCode),
	}
}

// DefaultCode is the code returned for anything the table cannot place.
func (r *CityResolver) DefaultCode() string {
	return r.defaultCode
}

// Resolve never fails: known names map through the table, bare 3-letter
// inputs pass through upper-cased, and everything else gets the default.
func (r *CityResolver) Resolve(place string) string {
	key := normalizePlace(place)
	if key == "" {
		return r.defaultCode
	}
	if code, ok := r.codes[key]; ok {
		return code
	}
	if isLocationCode(key) {
		return strings.ToUpper(key)
	}
	return r.defaultCode
}

func normalizePlace(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isLocationCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
