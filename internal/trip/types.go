package trip

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"trulytravels/internal/pricing"
)

// Travelers decodes from a JSON number or a numeric string. Anything
// missing, non-numeric, below 1 or above pricing.MaxTravelers becomes 1.
type Travelers int

func (t *Travelers) UnmarshalJSON(b []byte) error {
	*t = 1

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < 1 || f > pricing.MaxTravelers {
		return nil
	}
	*t = Travelers(int(f))
	return nil
}

func (t Travelers) Int() int {
	if t < 1 {
		return 1
	}
	return int(t)
}

type TripRequest struct {
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	Travelers      Travelers `json:"travelers"`
	Accommodation  string    `json:"accommodation"`
	Transportation string    `json:"transportation,omitempty"`
	PromoCode      string    `json:"promoCode,omitempty"`
}

type Meta struct {
	Nights      int          `json:"nights"`
	RoomsNeeded int          `json:"roomsNeeded"`
	Tier        pricing.Tier `json:"tier,omitempty"`
}

// Trip is the persisted estimate. TotalCost always equals Breakdown.Total().
type Trip struct {
	ID string `json:"id"`
	TripRequest
	OriginCode      string            `json:"originCode"`
	DestinationCode string            `json:"destinationCode"`
	Breakdown       pricing.Breakdown `json:"breakdown"`
	TotalCost       int64             `json:"totalCost"`
	Meta            Meta              `json:"meta"`
	CreatedAt       time.Time         `json:"createdAt"`
}
