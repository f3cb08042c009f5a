// Package stats defines the usage-log contract: a Recorder that persists
// one row per handled chat request, for operational reporting only.
package stats

import (
	"context"
	"time"
)

// Entry is one handled request. Identity is the rate-limit key (an IP-ish
// string), not a user account.
type Entry struct {
	At       time.Time
	Identity string
	Outcome  string // "ok", "rate_limited", "invalid_input", "misconfigured", "upstream_error"
	Status   int
	Latency  time.Duration
	Tokens   int
}

// Totals is an aggregate view over the log.
type Totals struct {
	Requests    int64 `json:"requests"`
	Completions int64 `json:"completions"`
	Errors      int64 `json:"errors"`
	TotalTokens int64 `json:"total_tokens"`
}

// Recorder persists request entries. Implementations must be safe for
// concurrent use; recording is best-effort and never blocks a response.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Totals(ctx context.Context) (Totals, error)

	// Purge removes entries older than the cutoff and reports how many.
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
}
