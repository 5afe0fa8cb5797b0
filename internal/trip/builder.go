package trip

import (
	"time"

	"trulytravels/internal/pricing"
	"trulytravels/pkg/idgen"
)

// Builder turns a composed estimate into a Trip with identity and timestamp.
type Builder struct {
	ids idgen.Generator
	now func() time.Time
}

func NewBuilder(ids idgen.Generator) *Builder {
	return &Builder{
		ids: ids,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (b *Builder) Build(req TripRequest, originCode, destinationCode string, breakdown pricing.Breakdown, stay pricing.Stay, tier pricing.Tier) Trip {
	return Trip{
		ID:              idgen.NewStringID(b.ids),
		TripRequest:     req,
		OriginCode:      originCode,
		DestinationCode: destinationCode,
		Breakdown:       breakdown,
		TotalCost:       breakdown.Total(),
		Meta: Meta{
			Nights:      stay.Nights,
			RoomsNeeded: stay.Rooms,
			Tier:        tier,
		},
		CreatedAt: b.now(),
	}
}

// Normalize prepares a client-supplied trip for storage: the total is
// recomputed and a missing id or timestamp is filled in.
func (b *Builder) Normalize(t Trip) Trip {
	if t.ID == "" {
		t.ID = idgen.NewStringID(b.ids)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = b.now()
	}
	t.TotalCost = t.Breakdown.Total()
	return t
}
