package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/axtarget/axtarchat/internal/provider"
	"github.com/axtarget/axtarchat/internal/provider/providertest"
)

func TestChat_Success(t *testing.T) {
	t.Parallel()

	mock := okProvider("Salam dostum!")
	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": mock},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Response != "Salam dostum!" {
		t.Errorf("response = %q", out.Response)
	}
	if mock.Calls() != 1 {
		t.Errorf("complete calls = %d, want 1", mock.Calls())
	}
}

func TestChat_HistoryForwarded(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var system string
	mock := &providertest.MockProvider{
		CompleteFunc: func(_ context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
			mu.Lock()
			system = req.Messages[0].Content
			mu.Unlock()
			return provider.CompletionResponse{Content: "cavab"}, nil
		},
	}

	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": mock},
	})

	body := `{"message":"bəs sonra?","history":[{"role":"user","content":"salam"},{"role":"assistant","content":"Salam dostum!"}]}`
	resp := doPostJSON(t, base+"/api/chat", body)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(system, "Əvvəlki söhbət:") {
		t.Error("system prompt missing history header")
	}
	if !strings.Contains(system, "İstifadəçi: salam") {
		t.Error("system prompt missing user turn")
	}
	if !strings.Contains(system, "Mən: Salam dostum!") {
		t.Error("system prompt missing assistant turn")
	}
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	t.Parallel()

	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": okProvider("x")},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":""}`)
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(body, "Mesaj tələb olunur və 1000 simvoldan az olmalıdır") {
		t.Errorf("body = %q, want fixed validation message", body)
	}
}

func TestChat_MalformedBodyRejected(t *testing.T) {
	t.Parallel()

	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": okProvider("x")},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":`)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestChat_RateLimitSixteenthRejected(t *testing.T) {
	t.Parallel()

	mock := okProvider("cavab")
	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": mock},
	})

	for i := 1; i <= 15; i++ {
		resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, resp.StatusCode)
		}
	}

	resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("16th request: status = %d, want 429", resp.StatusCode)
	}
	if !strings.Contains(body, "Çox tez-tez sorğu. Bir az gözləyin dostum!") {
		t.Errorf("body = %q, want fixed rate-limit message", body)
	}
	if mock.Calls() != 15 {
		t.Errorf("complete calls = %d, want 15", mock.Calls())
	}
}

func TestChat_MisconfiguredProvider(t *testing.T) {
	t.Parallel()

	mock := &providertest.MockProvider{
		ReadyFunc: func() error { return provider.ErrNotConfigured },
	}
	g, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": mock},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(body, "API açarı təyin edilməyib") {
		t.Errorf("body = %q, want missing-key message", body)
	}

	// A misconfigured provider must not consume rate-limit quota.
	if g.limiter.Len() != 0 {
		t.Errorf("limiter tracked %d identities, want 0", g.limiter.Len())
	}
}

func TestChat_NoProviderModule(t *testing.T) {
	t.Parallel()

	_, base := newTestGateway(t, testGatewayOptions{})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(body, "API açarı təyin edilməyib") {
		t.Errorf("body = %q, want missing-key message", body)
	}
}

func TestChat_UpstreamErrorApology(t *testing.T) {
	t.Parallel()

	mock := &providertest.MockProvider{
		CompleteFunc: func(_ context.Context, _ provider.CompletionRequest) (provider.CompletionResponse, error) {
			return provider.CompletionResponse{}, provider.ErrProviderDown
		},
	}
	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": mock},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if !strings.Contains(body, "Üzr istəyirəm dostum, bir xəta baş verdi. Yenidən cəhd et!") {
		t.Errorf("body = %q, want fixed apology", body)
	}
}

func TestChat_SearchSnippetInPrompt(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var system string
	mock := &providertest.MockProvider{
		CompleteFunc: func(_ context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
			mu.Lock()
			system = req.Messages[0].Content
			mu.Unlock()
			return provider.CompletionResponse{Content: "cavab"}, nil
		},
	}
	searcher := &stubSearcher{snippet: "Bakıda hava 25 dərəcədir"}

	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{
			"provider.openai":   mock,
			"search.duckduckgo": searcher,
		},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"bugün hava necədir?"}`)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if searcher.calls != 1 {
		t.Errorf("search calls = %d, want 1", searcher.calls)
	}

	mu.Lock()
	defer mu.Unlock()
	if !strings.Contains(system, "İnternet məlumatı: Bakıda hava 25 dərəcədir") {
		t.Errorf("system prompt missing search snippet:\n%s", system)
	}
}

func TestChat_SearchFailureDegrades(t *testing.T) {
	t.Parallel()

	searcher := &stubSearcher{err: errors.New("connection refused")}
	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{
			"provider.openai":   okProvider("cavab"),
			"search.duckduckgo": searcher,
		},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"son xəbərlər nədir?"}`)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 despite search failure", resp.StatusCode)
	}
	if searcher.calls != 1 {
		t.Errorf("search calls = %d, want 1", searcher.calls)
	}
}

func TestChat_GetMethodNotAllowed(t *testing.T) {
	t.Parallel()

	_, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": okProvider("x")},
	})

	resp := doGet(t, base+"/api/chat")
	body := readBody(t, resp)

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	if !strings.Contains(body, "Method not allowed") {
		t.Errorf("body = %q, want method-not-allowed error", body)
	}
}

func TestChat_RecordsMetrics(t *testing.T) {
	t.Parallel()

	g, base := newTestGateway(t, testGatewayOptions{
		services: map[string]any{"provider.openai": okProvider("cavab")},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	_ = resp.Body.Close()

	snap := g.metrics.Snapshot()
	if snap.Messages != 1 {
		t.Errorf("messages = %d, want 1", snap.Messages)
	}
	if snap.Completions != 1 {
		t.Errorf("completions = %d, want 1", snap.Completions)
	}
	if snap.TotalTokens != 12 {
		t.Errorf("tokens = %d, want 12", snap.TotalTokens)
	}
}

func TestClientIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"forwarded single", "10.0.0.1:1234", "203.0.113.7", "203.0.113.7"},
		{"forwarded list", "10.0.0.1:1234", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"forwarded padded", "10.0.0.1:1234", "  203.0.113.7  ,10.0.0.2", "203.0.113.7"},
		{"remote addr", "198.51.100.3:9999", "", "198.51.100.3"},
		{"remote addr no port", "198.51.100.3", "", "198.51.100.3"},
		{"nothing", "", "", "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tc.forwarded)
			}

			if got := clientIdentity(r); got != tc.want {
				t.Errorf("identity = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestChat_WindowResetAdmitsAgain(t *testing.T) {
	t.Parallel()

	_, base := newTestGateway(t, testGatewayOptions{
		rate:     RateLimitConfig{Window: 50 * time.Millisecond, MaxRequests: 1},
		services: map[string]any{"provider.openai": okProvider("cavab")},
	})

	resp := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", resp.StatusCode)
	}

	resp2 := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	_ = resp2.Body.Close()
	if resp2.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", resp2.StatusCode)
	}

	time.Sleep(60 * time.Millisecond)

	resp3 := doPostJSON(t, base+"/api/chat", `{"message":"salam"}`)
	_ = resp3.Body.Close()
	if resp3.StatusCode != http.StatusOK {
		t.Errorf("after window reset: status = %d, want 200", resp3.StatusCode)
	}
}
