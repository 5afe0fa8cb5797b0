package trip

import (
	"context"
	"encoding/json"
	"fmt"

	"trulytravels/pkg/cache"
)

const (
	tripsHashKey  = "trips:byid"
	tripsOrderKey = "trips:order"
)

// CacheStore keeps trips in a cache.Cache: payloads in a hash keyed by id and
// ids in a list, newest at the head.
type CacheStore struct {
	cache cache.Cache
}

func NewCacheStore(c cache.Cache) *CacheStore {
	return &CacheStore{cache: c}
}

func (s *CacheStore) List(ctx context.Context) ([]Trip, error) {
	payloads, err := s.cache.Ordered(ctx, tripsHashKey, tripsOrderKey)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	trips := make([]Trip, 0, len(payloads))
	for _, p := range payloads {
		var t Trip
		if err := json.Unmarshal([]byte(p), &t); err != nil {
			return nil, fmt.Errorf("decode trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (s *CacheStore) Append(ctx context.Context, t Trip) (bool, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return false, fmt.Errorf("encode trip: %w", err)
	}
	stored, err := s.cache.PushUnique(ctx, tripsHashKey, tripsOrderKey, t.ID, string(payload))
	if err != nil {
		return false, fmt.Errorf("append trip: %w", err)
	}
	return stored, nil
}

func (s *CacheStore) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
