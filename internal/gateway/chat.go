package gateway

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/axtarget/axtarchat/internal/chat"
	"github.com/axtarget/axtarchat/internal/prompt"
)

// chatRequest is the JSON body for POST /api/chat.
type chatRequest struct {
	Message string        `json:"message"`
	History []prompt.Turn `json:"history"`
}

// chatResponse is the JSON success body.
type chatResponse struct {
	Response string `json:"response"`
}

// handleChat returns the http.HandlerFunc for POST /api/chat.
func (g *Gateway) handleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		body := http.MaxBytesReader(w, r.Body, g.config.MaxBodyBytes)
		var req chatRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			g.logger.Warn("chat: malformed request body", "error", err)
			g.metrics.Observe(string(chat.KindInvalidInput), time.Since(start), 0)
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Mesaj tələb olunur və 1000 simvoldan az olmalıdır"})
			return
		}

		result, err := g.pipeline.Handle(r.Context(), chat.Request{
			Identity: clientIdentity(r),
			Message:  req.Message,
			History:  req.History,
		})

		latency := time.Since(start)
		g.metrics.Observe(chat.Outcome(err), latency, result.Tokens)

		if err != nil {
			var ce *chat.Error
			if errors.As(err, &ce) {
				writeJSON(w, ce.Status, errorResponse{Error: ce.UserMessage})
				return
			}
			g.logger.Error("chat: unclassified pipeline error", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Üzr istəyirəm dostum, bir xəta baş verdi. Yenidən cəhd et!"})
			return
		}

		writeJSON(w, http.StatusOK, chatResponse{Response: result.Response})
	}
}

// clientIdentity derives the rate-limit key for a request: the first
// X-Forwarded-For entry, then the connection address, then a fixed
// placeholder.
func clientIdentity(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
