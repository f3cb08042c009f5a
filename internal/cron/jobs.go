package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/axtarget/axtarchat/internal/stats"
)

// WindowStore is the subset of the rate limiter needed by cron jobs.
// Defined here to avoid a dependency on the limiter package.
type WindowStore interface {
	Sweep(grace time.Duration) int
	Len() int
}

// WindowSweepJob evicts rate-limit windows that expired longer than Grace ago.
type WindowSweepJob struct {
	Store        WindowStore
	Grace        time.Duration
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "*/5 * * * *"
}

// Compile-time interface check.
var _ Job = (*WindowSweepJob)(nil)

// Name implements Job.
func (j *WindowSweepJob) Name() string { return "window_sweep" }

// Schedule implements Job.
func (j *WindowSweepJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "*/5 * * * *"
}

// Run evicts stale windows from the limiter.
func (j *WindowSweepJob) Run(_ context.Context) error {
	swept := j.Store.Sweep(j.Grace)
	if swept > 0 {
		j.Logger.Info("cron: swept stale rate-limit windows",
			"count", swept,
			"remaining", j.Store.Len(),
		)
	}
	return nil
}

// UsagePurgeJob deletes usage log rows older than the retention period.
type UsagePurgeJob struct {
	Recorder     stats.Recorder
	Retention    time.Duration
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "0 * * * *"
}

// Compile-time interface check.
var _ Job = (*UsagePurgeJob)(nil)

// Name implements Job.
func (j *UsagePurgeJob) Name() string { return "usage_purge" }

// Schedule implements Job.
func (j *UsagePurgeJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "0 * * * *"
}

// Run deletes usage rows that fell out of the retention window.
func (j *UsagePurgeJob) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return fmt.Errorf("cron: usage purge cancelled: %w", ctx.Err())
	}

	cutoff := time.Now().Add(-j.Retention)
	purged, err := j.Recorder.Purge(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("cron: usage purge: %w", err)
	}
	if purged > 0 {
		j.Logger.Info("cron: purged usage log rows", "count", purged)
	}
	return nil
}
