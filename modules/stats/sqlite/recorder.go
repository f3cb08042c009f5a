package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/axtarget/axtarchat/internal/stats"
)

// timeFormat is how timestamps are stored; RFC 3339 with sub-second
// precision sorts lexicographically.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Record implements stats.Recorder.
func (r *recorder) Record(ctx context.Context, e stats.Entry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO requests (at, identity, outcome, status, latency_ms, tokens)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.At.UTC().Format(timeFormat),
		e.Identity,
		e.Outcome,
		e.Status,
		e.Latency.Milliseconds(),
		e.Tokens,
	)
	if err != nil {
		return fmt.Errorf("sqlite: record request: %w", err)
	}
	return nil
}

// Totals implements stats.Recorder.
func (r *recorder) Totals(ctx context.Context) (stats.Totals, error) {
	var t stats.Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'ok' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome != 'ok' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(tokens), 0)
		 FROM requests`,
	).Scan(&t.Requests, &t.Completions, &t.Errors, &t.TotalTokens)
	if err != nil {
		return stats.Totals{}, fmt.Errorf("sqlite: totals: %w", err)
	}
	return t, nil
}

// Purge implements stats.Recorder.
func (r *recorder) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM requests WHERE at < ?",
		olderThan.UTC().Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: purge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: purge rows affected: %w", err)
	}
	return n, nil
}
