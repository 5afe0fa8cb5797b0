package pricing

import (
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Stay holds the derived duration facts of a trip.
type Stay struct {
	Nights int `json:"nights"`
	Rooms  int `json:"roomsNeeded"`
}

// CalculateStay derives nights and rooms. It is total: bad input clamps to 1.
func CalculateStay(startDate, endDate string, travelers int) Stay {
	return Stay{
		Nights: Nights(startDate, endDate),
		Rooms:  Rooms(travelers),
	}
}

// Nights is ceil(end - start) in days, between 1 and MaxNights.
// Unparseable dates yield 1.
func Nights(startDate, endDate string) int {
	start, ok := ParseDate(startDate)
	if !ok {
		return 1
	}
	end, ok := ParseDate(endDate)
	if !ok {
		return 1
	}

	days := math.Ceil(end.Sub(start).Hours() / 24)
	switch {
	case days < 1:
		return 1
	case days > MaxNights:
		return MaxNights
	}
	return int(days)
}

// Rooms assumes two travelers share a room.
func Rooms(travelers int) int {
	if travelers < 1 {
		return 1
	}
	return (min(travelers, MaxTravelers) + 1) / 2
}

// ParseDate accepts a calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
