// Package metrics records meal plan generation runs in the device database
// for the usage view and for pruning.
package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GenerationMetric describes one completed generation run.
type GenerationMetric struct {
	AccountID      string    `json:"accountId"`
	SlotsRequested int       `json:"slotsRequested"`
	SlotsFilled    int       `json:"slotsFilled"`
	SlotsFailed    int       `json:"slotsFailed"`
	LatencyMS      int64     `json:"latencyMs"`
	Timestamp      time.Time `json:"timestamp"`
}

// DailyUsage aggregates the runs of one calendar day.
type DailyUsage struct {
	Day         string `json:"day"`
	Runs        int    `json:"runs"`
	SlotsFilled int    `json:"slotsFilled"`
	SlotsFailed int    `json:"slotsFailed"`
}

// Store persists generation metrics.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record inserts one generation run.
func (s *Store) Record(ctx context.Context, m GenerationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_metrics
		 (account_id, slots_requested, slots_filled, slots_failed, latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.AccountID, m.SlotsRequested, m.SlotsFilled, m.SlotsFailed, m.LatencyMS, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to record generation metric: %w", err)
	}
	return nil
}

// Usage returns per-day aggregates for the account over the last given
// number of days, newest first.
func (s *Store) Usage(ctx context.Context, accountID string, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx,
		`SELECT date(created_at), COUNT(*), SUM(slots_filled), SUM(slots_failed)
		 FROM generation_metrics
		 WHERE account_id = ? AND created_at >= ?
		 GROUP BY date(created_at)
		 ORDER BY date(created_at) DESC`,
		accountID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query generation usage: %w", err)
	}
	defer rows.Close()

	var usage []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Day, &u.Runs, &u.SlotsFilled, &u.SlotsFailed); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		usage = append(usage, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate usage rows: %w", err)
	}
	return usage, nil
}

// Cleanup deletes metrics older than the given number of days and returns
// how many rows were removed.
func (s *Store) Cleanup(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM generation_metrics WHERE created_at < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up generation metrics: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count removed metrics: %w", err)
	}
	return removed, nil
}
