package trip

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"trulytravels/pkg/db"
)

// SQLStore keeps each trip as a JSON payload row. Insertion order is kept by
// the autoincrement seq column.
type SQLStore struct {
	db db.SQLExecutor
}

func NewSQLStore(exec db.SQLExecutor) *SQLStore {
	return &SQLStore{db: exec}
}

func (s *SQLStore) List(ctx context.Context) ([]Trip, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM trips ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		var t Trip
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			return nil, fmt.Errorf("decode trip: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

func (s *SQLStore) Append(ctx context.Context, t Trip) (bool, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return false, fmt.Errorf("encode trip: %w", err)
	}

	var stored bool
	err = s.db.WithTransaction(ctx, sql.LevelDefault, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO trips (id, payload, total_cost, created_at) VALUES (?, ?, ?, ?)`,
			t.ID, string(payload), t.TotalCost, t.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		stored = n == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("append trip: %w", err)
	}
	return stored, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
