package trip

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"trulytravels/internal/pricing"
	"trulytravels/migrations"
	"trulytravels/pkg/cache"
	"trulytravels/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) List(ctx context.Context) ([]Trip, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Trip), args.Error(1)
}

func (m *MockStore) Append(ctx context.Context, t Trip) (bool, error) {
	args := m.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	client, err := db.NewSQLiteClient(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, migrations.Up(client.DB()))

	return NewSQLStore(client)
}

func storeImplementations(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store { return newSQLiteStore(t) },
		"cache":  func(t *testing.T) Store { return NewCacheStore(cache.NewMemoryCache()) },
	}
}

func sampleTrip(id string, total int64) Trip {
	return Trip{
		ID:              id,
		TripRequest:     TripRequest{Origin: "Delhi", Destination: "Goa", Travelers: 2, Accommodation: "budget"},
		OriginCode:      "DEL",
		DestinationCode: "GOI",
		Breakdown:       pricing.Breakdown{Transportation: total, FlightPerPerson: total / 2, FlightSource: pricing.SourceLive},
		TotalCost:       total,
		Meta:            Meta{Nights: 3, RoomsNeeded: 1, Tier: pricing.TierBudget},
		CreatedAt:       time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			t.Run("empty list", func(t *testing.T) {
				s := newStore(t)

				trips, err := s.List(ctx)

				require.NoError(t, err)
				assert.NotNil(t, trips)
				assert.Empty(t, trips)
			})

			t.Run("most recent first", func(t *testing.T) {
				s := newStore(t)
				for i := 1; i <= 3; i++ {
					stored, err := s.Append(ctx, sampleTrip(strconv.Itoa(i), int64(i*1000)))
					require.NoError(t, err)
					assert.True(t, stored)
				}

				trips, err := s.List(ctx)

				require.NoError(t, err)
				require.Len(t, trips, 3)
				assert.Equal(t, []string{"3", "2", "1"}, []string{trips[0].ID, trips[1].ID, trips[2].ID})
				assert.Equal(t, sampleTrip("3", 3000), trips[0])
			})

			t.Run("duplicate id is ignored", func(t *testing.T) {
				s := newStore(t)
				_, err := s.Append(ctx, sampleTrip("7", 1000))
				require.NoError(t, err)

				stored, err := s.Append(ctx, sampleTrip("7", 9999))

				require.NoError(t, err)
				assert.False(t, stored)
				trips, err := s.List(ctx)
				require.NoError(t, err)
				require.Len(t, trips, 1)
				assert.Equal(t, int64(1000), trips[0].TotalCost)
			})

			t.Run("ping", func(t *testing.T) {
				assert.NoError(t, newStore(t).Ping(ctx))
			})
		})
	}
}

func TestSQLStore_SurvivesReopen(t *testing.T) {
	path := t.TempDir() + "/trips.db"
	ctx := context.Background()

	client, err := db.NewSQLiteClient(path)
	require.NoError(t, err)
	require.NoError(t, migrations.Up(client.DB()))
	_, err = NewSQLStore(client).Append(ctx, sampleTrip("1", 500))
	require.NoError(t, err)
	require.NoError(t, client.Close())

	reopened, err := db.NewSQLiteClient(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	require.NoError(t, migrations.Up(reopened.DB()))

	trips, err := NewSQLStore(reopened).List(ctx)

	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, "1", trips[0].ID)
}

type overlapDetector struct {
	active  atomic.Int32
	overlap atomic.Bool
	count   atomic.Int32
}

func (o *overlapDetector) List(context.Context) ([]Trip, error) { return []Trip{}, nil }
func (o *overlapDetector) Ping(context.Context) error           { return nil }

func (o *overlapDetector) Append(context.Context, Trip) (bool, error) {
	if o.active.Add(1) > 1 {
		o.overlap.Store(true)
	}
	time.Sleep(time.Millisecond)
	o.count.Add(1)
	o.active.Add(-1)
	return true, nil
}

func TestSerialStore_OneAppendAtATime(t *testing.T) {
	inner := &overlapDetector{}
	s := NewSerialStore(inner)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Append(context.Background(), sampleTrip(strconv.Itoa(i), 100))
		}(i)
	}
	wg.Wait()

	assert.False(t, inner.overlap.Load())
	assert.Equal(t, int32(20), inner.count.Load())
}

func TestSerialStore_ConcurrentAppendsAreAllKept(t *testing.T) {
	for name, newStore := range storeImplementations(t) {
		t.Run(name, func(t *testing.T) {
			s := NewSerialStore(newStore(t))
			ctx := context.Background()

			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					// every id is submitted twice
					_, err := s.Append(ctx, sampleTrip(strconv.Itoa(i%25), 100))
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()

			trips, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, trips, 25)
		})
	}
}

func TestSerialStore_PassesErrorsThrough(t *testing.T) {
	inner := new(MockStore)
	boom := errors.New("disk full")
	inner.On("Append", mock.Anything, mock.Anything).Return(false, boom)
	inner.On("List", mock.Anything).Return(nil, boom)

	s := NewSerialStore(inner)

	_, err := s.Append(context.Background(), sampleTrip("1", 1))
	assert.ErrorIs(t, err, boom)
	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, boom)
	inner.AssertExpectations(t)
}
