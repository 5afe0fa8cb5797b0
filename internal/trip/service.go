package trip

import (
	"context"
	"io"
	"math"
	"net/http"
	"strings"

	"trulytravels/internal/pricing"
	"trulytravels/pkg/logger"
	"trulytravels/pkg/metrics"
	"trulytravels/pkg/pdf"
)

// Service runs the estimation pipeline and owns access to the trip store.
type Service struct {
	resolver *pricing.CityResolver
	prices   pricing.PriceSource
	composer *pricing.Composer
	builder  *Builder
	store    Store
	currency string
	logger   logger.Client
}

func NewService(
	resolver *pricing.CityResolver,
	prices pricing.PriceSource,
	composer *pricing.Composer,
	builder *Builder,
	store Store,
	currency string,
	logger logger.Client,
) *Service {
	if currency == "" {
		currency = pricing.DefaultCurrency
	}
	return &Service{
		resolver: resolver,
		prices:   prices,
		composer: composer,
		builder:  builder,
		store:    store,
		currency: currency,
		logger:   logger,
	}
}

// Estimate prices req, persists the resulting trip and returns it.
// Provider trouble only changes breakdown.flightSource; the only errors are
// a missing origin or destination and a failed write.
func (s *Service) Estimate(ctx context.Context, req TripRequest) (Trip, error) {
	if strings.TrimSpace(req.Origin) == "" {
		return Trip{}, validationError("origin is required")
	}
	if strings.TrimSpace(req.Destination) == "" {
		return Trip{}, validationError("destination is required")
	}

	originCode := s.resolver.Resolve(req.Origin)
	destinationCode := s.resolver.Resolve(req.Destination)
	travelers := req.Travelers.Int()

	quote := s.prices.Quote(ctx, originCode, destinationCode, departureDate(req.StartDate))
	stay := pricing.CalculateStay(req.StartDate, req.EndDate, travelers)

	tier, ok := pricing.ParseTier(req.Accommodation)
	if !ok {
		tier = pricing.EffectiveTier(req.Accommodation)
		s.logger.Warn("unknown accommodation tier, pricing as default",
			logger.Field{Key: "accommodation", Value: req.Accommodation},
			logger.Field{Key: "tier", Value: string(tier)},
		)
	}

	breakdown := s.composer.Compose(quote, stay, travelers, tier)
	trip := s.builder.Build(req, originCode, destinationCode, breakdown, stay, tier)

	if _, err := s.store.Append(ctx, trip); err != nil {
		s.logger.Error("failed to persist estimate",
			logger.Field{Key: "trip_id", Value: trip.ID},
			logger.Field{Key: "error", Value: err},
		)
		return Trip{}, internalError("failed to save trip", err)
	}

	metrics.EstimatesTotal.WithLabelValues(string(quote.Source)).Inc()
	s.logger.Info("estimate created",
		logger.Field{Key: "trip_id", Value: trip.ID},
		logger.Field{Key: "route", Value: originCode + "-" + destinationCode},
		logger.Field{Key: "flight_source", Value: string(quote.Source)},
		logger.Field{Key: "total_cost", Value: trip.TotalCost},
	)
	return trip, nil
}

// Save stores a client-supplied trip. Replaying an id that is already
// stored succeeds without touching the collection.
func (s *Service) Save(ctx context.Context, t Trip) (Trip, error) {
	if appErr := checkBreakdown(t.Breakdown); appErr != nil {
		return Trip{}, appErr
	}
	t = s.builder.Normalize(t)

	stored, err := s.store.Append(ctx, t)
	if err != nil {
		s.logger.Error("failed to save trip",
			logger.Field{Key: "trip_id", Value: t.ID},
			logger.Field{Key: "error", Value: err},
		)
		return Trip{}, internalError("failed to save trip", err)
	}
	if !stored {
		s.logger.Debug("trip already saved", logger.Field{Key: "trip_id", Value: t.ID})
	}
	return t, nil
}

// maxLineAmount keeps the recomputed sum of the five lines inside int64.
const maxLineAmount = math.MaxInt64 / 5

func checkBreakdown(b pricing.Breakdown) *AppError {
	for _, v := range []int64{b.Transportation, b.Accommodation, b.Food, b.Activities, b.Misc, b.FlightPerPerson} {
		if v < 0 {
			return validationError("breakdown amounts must not be negative")
		}
		if v > maxLineAmount {
			return validationError("breakdown amount is too large")
		}
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]Trip, error) {
	trips, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("failed to load trips", logger.Field{Key: "error", Value: err})
		return nil, internalError("failed to load trips", err)
	}
	return trips, nil
}

// ExportPDF writes the one-page summary of t to w.
func (s *Service) ExportPDF(_ context.Context, t Trip, w io.Writer) error {
	if err := pdf.Render(w, summaryFor(t, s.currency)); err != nil {
		s.logger.Error("failed to render trip summary",
			logger.Field{Key: "trip_id", Value: t.ID},
			logger.Field{Key: "error", Value: err},
		)
		return &AppError{Status: http.StatusInternalServerError, Code: ErrorCodeRenderFailure, Message: "failed to render pdf", Err: err}
	}
	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// departureDate hands the provider a plain calendar date when one can be
// read from the request; anything else is passed through untouched.
func departureDate(start string) string {
	if t, ok := pricing.ParseDate(start); ok {
		return t.Format("2006-01-02")
	}
	return start
}
