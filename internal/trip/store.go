package trip

import (
	"context"
	"sync"

	"trulytravels/pkg/metrics"
)

// Store is the persisted trip collection: read all, append one.
// List returns trips most recent first. Append reports whether the trip was
// stored; a trip whose id already exists is left alone.
type Store interface {
	List(ctx context.Context) ([]Trip, error)
	Append(ctx context.Context, t Trip) (bool, error)
	Ping(ctx context.Context) error
}

// serialStore lets exactly one append run at a time.
type serialStore struct {
	mu    sync.Mutex
	inner Store
}

func NewSerialStore(inner Store) Store {
	return &serialStore{inner: inner}
}

func (s *serialStore) List(ctx context.Context) ([]Trip, error) {
	trips, err := s.inner.List(ctx)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("list").Inc()
	}
	return trips, err
}

func (s *serialStore) Append(ctx context.Context, t Trip) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.inner.Append(ctx, t)
	switch {
	case err != nil:
		metrics.StoreErrors.WithLabelValues("append").Inc()
	case stored:
		metrics.TripsSaved.WithLabelValues("inserted").Inc()
	default:
		metrics.TripsSaved.WithLabelValues("duplicate").Inc()
	}
	return stored, err
}

func (s *serialStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}
