package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.MethodNotAllowed(handleMethodNotAllowed())

	// Public — no auth required.
	r.Get("/health", g.handleHealth())
	r.Handle("/metrics", g.metrics.Handler())
	r.Post("/api/chat", g.handleChat())

	// Status endpoint — auth required. Not mounted if no auth configured.
	if g.config.Auth.IsConfigured() {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(g.config.Auth))
			r.Get("/status", g.handleStatus())
		})
	}

	return r
}

// handleMethodNotAllowed rejects wrong-method requests with a JSON body so
// browser clients can show the error field uniformly.
func handleMethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	}
}

// errorResponse is the JSON error envelope for the chat API.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
