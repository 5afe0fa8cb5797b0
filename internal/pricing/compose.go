package pricing

import "strings"

// Tier is the accommodation quality level.
type Tier string

const (
	TierBudget Tier = "budget"
	TierMid    Tier = "mid"
	TierLuxury Tier = "luxury"
)

// ParseTier normalizes s; ok is false for anything outside the three tiers.
func ParseTier(s string) (Tier, bool) {
	switch t := Tier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierBudget, TierMid, TierLuxury:
		return t, true
	default:
		return "", false
	}
}

// EffectiveTier prices unknown or empty tiers as mid.
func EffectiveTier(s string) Tier {
	if t, ok := ParseTier(s); ok {
		return t
	}
	return TierMid
}

// Input bounds for composition. Within them no breakdown line or total can
// overflow an int64.
const (
	MaxAmount    int64 = 100_000_000
	MaxTravelers       = 1_000_000
	MaxNights          = 3_660
)

// Rates are the fixed per-unit amounts, in whole currency units.
type Rates struct {
	Nightly             map[Tier]int64
	FoodPerPersonNight  int64
	ActivitiesPerPerson int64
	MiscPerPerson       int64
}

func DefaultRates() Rates {
	return Rates{
		Nightly: map[Tier]int64{
			TierBudget: 1200,
			TierMid:    2500,
			TierLuxury: 6500,
		},
		FoodPerPersonNight:  500,
		ActivitiesPerPerson: 1200,
		MiscPerPerson:       300,
	}
}

// Breakdown is the five-category cost split plus the flight price it used.
type Breakdown struct {
	Transportation  int64  `json:"transportation"`
	Accommodation   int64  `json:"accommodation"`
	Food            int64  `json:"food"`
	Activities      int64  `json:"activities"`
	Misc            int64  `json:"misc"`
	FlightPerPerson int64  `json:"flightPerPerson"`
	FlightSource    Source `json:"flightSource"`
}

// Total is always recomputed from the five categories.
func (b Breakdown) Total() int64 {
	return b.Transportation + b.Accommodation + b.Food + b.Activities + b.Misc
}

type Composer struct {
	rates Rates
}

// NewComposer copies rates. Any rate that is zero, negative or above
// MaxAmount, including tiers missing from rates.Nightly, takes its
// DefaultRates value, so NewComposer(Rates{}) prices like DefaultRates().
func NewComposer(rates Rates) *Composer {
	defaults := DefaultRates()
	nightly := make(map[Tier]int64, len(defaults.Nightly))
	for t, r := range defaults.Nightly {
		nightly[t] = r
	}
	for t, r := range rates.Nightly {
		if validRate(r) {
			nightly[t] = r
		}
	}
	rates.Nightly = nightly
	if !validRate(rates.FoodPerPersonNight) {
		rates.FoodPerPersonNight = defaults.FoodPerPersonNight
	}
	if !validRate(rates.ActivitiesPerPerson) {
		rates.ActivitiesPerPerson = defaults.ActivitiesPerPerson
	}
	if !validRate(rates.MiscPerPerson) {
		rates.MiscPerPerson = defaults.MiscPerPerson
	}
	return &Composer{rates: rates}
}

func validRate(r int64) bool {
	return r > 0 && r <= MaxAmount
}

func (c *Composer) NightlyRate(t Tier) int64 {
	if r, ok := c.rates.Nightly[t]; ok {
		return r
	}
	return c.rates.Nightly[TierMid]
}

// Compose is pure arithmetic over its inputs. Inputs are clamped to the
// Max* bounds first.
func (c *Composer) Compose(q Quote, stay Stay, travelers int, tier Tier) Breakdown {
	flight := clamp(q.Amount, 0, MaxAmount)
	n := clamp(int64(travelers), 1, MaxTravelers)
	nights := clamp(int64(stay.Nights), 1, MaxNights)
	rooms := clamp(int64(stay.Rooms), 1, (MaxTravelers+1)/2)

	return Breakdown{
		Transportation:  flight * n,
		Accommodation:   c.NightlyRate(tier) * nights * rooms,
		Food:            c.rates.FoodPerPersonNight * nights * n,
		Activities:      c.rates.ActivitiesPerPerson * n,
		Misc:            c.rates.MiscPerPerson * n,
		FlightPerPerson: flight,
		FlightSource:    q.Source,
	}
}

func clamp(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}
