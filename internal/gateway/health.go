package gateway

import (
	"net/http"

	"github.com/axtarget/axtarchat/internal/provider"
)

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status string `json:"status"` // "ok" or "degraded"
	Model  string `json:"model,omitempty"`
}

// handleHealth returns an http.HandlerFunc for GET /health.
// Returns 200 when the completion provider is configured, 503 otherwise.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := HealthResponse{Status: "ok"}

		if g.provider == nil {
			resp.Status = "degraded"
		} else {
			resp.Model = g.provider.ModelName()
			if rc, ok := g.provider.(provider.ReadyChecker); ok {
				if err := rc.Ready(); err != nil {
					resp.Status = "degraded"
				}
			}
		}

		status := http.StatusOK
		if resp.Status == "degraded" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
