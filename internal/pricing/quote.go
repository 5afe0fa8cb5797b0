package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"trulytravels/pkg/logger"
	"trulytravels/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Source tags where a per-traveler price came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Fallback reasons, used as log fields and metric labels.
const (
	ReasonNotConfigured    = "not_configured"
	ReasonProviderError    = "provider_error"
	ReasonTimeout          = "timeout"
	ReasonNoOffers         = "no_offers"
	ReasonUnparseablePrice = "unparseable_price"
)

const (
	DefaultFallbackPrice int64 = 6000
	DefaultCurrency            = "INR"
	DefaultMaxOffers           = 5
	DefaultQuoteTimeout        = 5 * time.Second
)

// Quote is a per-traveler transportation price with its provenance.
type Quote struct {
	Amount int64  `json:"amount"`
	Source Source `json:"source"`
}

// OfferQuery is one lookup against a live provider.
type OfferQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	Currency      string
	Adults        int
	Max           int
}

// Offer is a provider offer reduced to what pricing needs. Total is kept as
// the provider's raw string so parsing failures stay inside this package.
type Offer struct {
	ID       string
	Total    string
	Currency string
}

// OfferSearcher is implemented by live provider clients.
type OfferSearcher interface {
	SearchOffers(ctx context.Context, q OfferQuery) ([]Offer, error)
}

// PriceSource always produces a quote. Failures only show up in Quote.Source.
type PriceSource interface {
	Quote(ctx context.Context, originCode, destinationCode, departureDate string) Quote
}

type SourceConfig struct {
	FallbackPrice int64
	Currency      string
	MaxOffers     int
	Timeout       time.Duration
}

func (c SourceConfig) withDefaults() SourceConfig {
	if c.FallbackPrice < 0 || c.FallbackPrice > MaxAmount {
		c.FallbackPrice = DefaultFallbackPrice
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.MaxOffers <= 0 {
		c.MaxOffers = DefaultMaxOffers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultQuoteTimeout
	}
	return c
}

// NewPriceSource picks the mode once: a nil searcher means no provider is
// configured and every quote is the fallback.
func NewPriceSource(searcher OfferSearcher, cfg SourceConfig, log logger.Client) PriceSource {
	cfg = cfg.withDefaults()
	if searcher == nil {
		return NewFixedSource(cfg.FallbackPrice)
	}
	latency, err := otel.Meter("trulytravels/pricing").Float64Histogram(
		"pricing.quote.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Time spent producing a live-mode quote"),
	)
	if err != nil {
		log.Warn("quote latency histogram unavailable", logger.Field{Key: "err", Value: err})
	}
	return &LiveSource{
		searcher: searcher,
		cfg:      cfg,
		logger:   log,
		tracer:   otel.Tracer("trulytravels/pricing"),
		latency:  latency,
	}
}

// FixedSource returns the configured constant for every route.
type FixedSource struct {
	amount int64
}

func NewFixedSource(amount int64) *FixedSource {
	return &FixedSource{amount: amount}
}

func (f *FixedSource) Quote(context.Context, string, string, string) Quote {
	metrics.QuoteFallbacks.WithLabelValues(ReasonNotConfigured).Inc()
	return Quote{Amount: f.amount, Source: SourceFallback}
}

// LiveSource asks a provider for a handful of offers and takes the cheapest.
type LiveSource struct {
	searcher OfferSearcher
	cfg      SourceConfig
	logger   logger.Client
	tracer   trace.Tracer
	latency  metric.Float64Histogram
}

func (s *LiveSource) Quote(ctx context.Context, originCode, destinationCode, departureDate string) (quote Quote) {
	start := time.Now()
	defer func() {
		if s.latency != nil {
			s.latency.Record(context.WithoutCancel(ctx), time.Since(start).Seconds(),
				metric.WithAttributes(attribute.String("source", string(quote.Source))))
		}
	}()

	ctx, span := s.tracer.Start(ctx, "pricing.Quote", trace.WithAttributes(
		attribute.String("route.origin", originCode),
		attribute.String("route.destination", destinationCode),
		attribute.String("route.departure_date", departureDate),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	q := OfferQuery{
		Origin:        originCode,
		Destination:   destinationCode,
		DepartureDate: departureDate,
		Currency:      s.cfg.Currency,
		Adults:        1,
		Max:           s.cfg.MaxOffers,
	}

	offers, err := s.search(ctx, q)
	if err != nil {
		reason := ReasonProviderError
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = ReasonTimeout
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return s.fallback(span, q, reason, err)
	}
	if len(offers) == 0 {
		return s.fallback(span, q, ReasonNoOffers, nil)
	}

	lowest, ok := LowestPrice(offers)
	if !ok {
		return s.fallback(span, q, ReasonUnparseablePrice, nil)
	}

	span.SetAttributes(
		attribute.String("quote.source", string(SourceLive)),
		attribute.Int64("quote.amount", lowest),
		attribute.Int("quote.offers", len(offers)),
	)
	s.logger.Debug("live quote",
		logger.Field{Key: "route", Value: fmt.Sprintf("%s->%s", originCode, destinationCode)},
		logger.Field{Key: "amount", Value: lowest},
		logger.Field{Key: "offers", Value: len(offers)},
	)
	return Quote{Amount: lowest, Source: SourceLive}
}

// search shields callers from provider panics as well as errors.
func (s *LiveSource) search(ctx context.Context, q OfferQuery) (offers []Offer, err error) {
	defer func() {
		if r := recover(); r != nil {
			offers, err = nil, fmt.Errorf("offer search panicked: %v", r)
		}
	}()
	return s.searcher.SearchOffers(ctx, q)
}

func (s *LiveSource) fallback(span trace.Span, q OfferQuery, reason string, err error) Quote {
	fields := []logger.Field{
		{Key: "reason", Value: reason},
		{Key: "route", Value: fmt.Sprintf("%s->%s", q.Origin, q.Destination)},
		{Key: "departure_date", Value: q.DepartureDate},
		{Key: "fallback_price", Value: s.cfg.FallbackPrice},
	}
	if err != nil {
		fields = append(fields, logger.Field{Key: "err", Value: err})
	}
	s.logger.Warn("live quote unavailable, using fallback price", fields...)

	metrics.QuoteFallbacks.WithLabelValues(reason).Inc()
	span.SetAttributes(
		attribute.String("quote.source", string(SourceFallback)),
		attribute.String("quote.fallback_reason", reason),
	)
	return Quote{Amount: s.cfg.FallbackPrice, Source: SourceFallback}
}

// LowestPrice returns the cheapest parseable offer total rounded to whole
// currency units. Offers with unparseable, negative, non-finite or
// above-MaxAmount totals are ignored; ok is false when none remain.
func LowestPrice(offers []Offer) (int64, bool) {
	lowest := math.Inf(1)
	for _, o := range offers {
		v, err := strconv.ParseFloat(strings.TrimSpace(o.Total), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > float64(MaxAmount) {
			continue
		}
		if v < lowest {
			lowest = v
		}
	}
	if math.IsInf(lowest, 1) {
		return 0, false
	}
	return int64(math.Round(lowest)), true
}
