package gateway

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/axtarget/axtarchat/internal/core"
	"github.com/axtarget/axtarchat/internal/provider"
	"github.com/axtarget/axtarchat/internal/provider/providertest"
	"gopkg.in/yaml.v3"
)

// okProvider returns a mock that answers every completion with the given text.
func okProvider(text string) *providertest.MockProvider {
	return &providertest.MockProvider{
		CompleteFunc: func(_ context.Context, _ provider.CompletionRequest) (provider.CompletionResponse, error) {
			return provider.CompletionResponse{
				Content: text,
				Usage:   provider.TokenUsage{TotalTokens: 12},
			}, nil
		},
	}
}

// stubSearcher returns a fixed snippet for every lookup.
type stubSearcher struct {
	snippet string
	err     error
	calls   int
}

func (s *stubSearcher) Lookup(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.snippet, nil
}

// freeAddr returns a free TCP address on localhost.
func freeAddr(t *testing.T) string {
	t.Helper()
	var lc net.ListenConfig
	ln, err := lc.Listen(t.Context(), "tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		t.Fatal(err)
	}
	return addr
}

// doGet makes a GET request with context.
func doGet(t *testing.T, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// doGetWithBearer makes a GET request with a bearer token.
func doGetWithBearer(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// doPostJSON makes a POST request with a JSON body.
func doPostJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// readBody drains and closes a response body.
func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// testGatewayOptions configures newTestGateway.
type testGatewayOptions struct {
	auth     AuthConfig
	rate     RateLimitConfig
	services map[string]any
}

// newTestGateway provisions and starts a gateway on a free port with the
// given services registered. The server is stopped on test cleanup.
func newTestGateway(t *testing.T, opts testGatewayOptions) (g *Gateway, base string) {
	t.Helper()

	addr := freeAddr(t)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	appCtx := core.NewAppContext(logger, t.TempDir())

	for name, svc := range opts.services {
		appCtx.RegisterService(name, svc)
	}

	g = &Gateway{}
	g.config = Config{
		Bind:            addr,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 2 * time.Second,
		Auth:            opts.auth,
		RateLimit:       opts.rate,
	}
	g.config.defaults()

	if err := g.Provision(appCtx.ForModule("gateway.http")); err != nil {
		t.Fatalf("Provision: %v", err)
	}
	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = g.Stop(context.Background()) })

	return g, "http://" + addr
}

// mustYAMLNode parses YAML text into a *yaml.Node for Configure calls.
func mustYAMLNode(t *testing.T, text string) *yaml.Node {
	t.Helper()
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		t.Fatalf("YAML parse: %v", err)
	}
	if len(node.Content) > 0 {
		return node.Content[0]
	}
	return &node
}
