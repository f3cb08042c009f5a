package gateway

import (
	"net/http"
	"time"

	"github.com/axtarget/axtarchat/internal/stats"
)

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	Uptime            time.Duration   `json:"uptime_seconds"`
	Metrics           MetricsSnapshot `json:"metrics"`
	TrackedClients    int             `json:"tracked_clients"`
	RequestsPerWindow int             `json:"requests_per_window"`
	Usage             *stats.Totals   `json:"usage,omitempty"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{
			Uptime:            time.Since(g.startedAt).Truncate(time.Second),
			Metrics:           g.metrics.Snapshot(),
			TrackedClients:    g.limiter.Len(),
			RequestsPerWindow: g.limiter.MaxRequests(),
		}

		if g.recorder != nil {
			if totals, err := g.recorder.Totals(r.Context()); err == nil {
				resp.Usage = &totals
			} else {
				g.logger.Warn("status: usage totals unavailable", "error", err)
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
