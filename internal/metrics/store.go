// Package metrics persists per-generation usage records to a local SQLite
// database so token spend and fallback rates can be inspected over time.
package metrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

// GenerationMetric records metadata for a single generation call.
type GenerationMetric struct {
	AgentName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Attempts         int
	Fallback         bool
	Timestamp        time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens the metrics database at dbPath, creating it and applying
// migrations as needed.
func NewStore(dbPath string) (*Store, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m GenerationMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	attempts := m.Attempts
	if attempts == 0 {
		attempts = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_metrics
			(agent_name, model, prompt_tokens, completion_tokens, latency_ms, attempts, fallback, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.AgentName, m.Model, m.PromptTokens, m.CompletionTokens, m.LatencyMS, attempts, m.Fallback, ts,
	)
	return err
}

// RecordMeta records a metric directly from shared.CallMeta. Calls that
// used no tokens and did not fall back leave no record.
func (s *Store) RecordMeta(ctx context.Context, meta shared.CallMeta) error {
	if meta.Usage.PromptTokens == 0 && meta.Usage.CompletionTokens == 0 && !meta.Fallback {
		return nil
	}
	return s.Record(ctx, GenerationMetric{
		AgentName:        meta.AgentName,
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		LatencyMS:        meta.Latency.Milliseconds(),
		Attempts:         meta.Attempts,
		Fallback:         meta.Fallback,
	})
}

// DailyUsage represents call and token totals for a single day.
type DailyUsage struct {
	Date            string
	Calls           int
	TotalPrompt     int
	TotalCompletion int
	Fallbacks       int
}

// GetDailyUsage retrieves usage for the last N days, oldest day first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	rows, err := s.db.QueryContext(ctx, `
		SELECT date(timestamp) AS day,
			COUNT(*),
			COALESCE(SUM(prompt_tokens), 0),
			COALESCE(SUM(completion_tokens), 0),
			COALESCE(SUM(fallback), 0)
		FROM generation_metrics
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day`,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []DailyUsage
	for rows.Next() {
		var u DailyUsage
		if err := rows.Scan(&u.Date, &u.Calls, &u.TotalPrompt, &u.TotalCompletion, &u.Fallbacks); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days and
// returns how many were removed.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	res, err := s.db.ExecContext(ctx, `DELETE FROM generation_metrics WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
