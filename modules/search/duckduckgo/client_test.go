package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testModule(t *testing.T, handler http.HandlerFunc) *Module {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := &Module{
		config: Config{BaseURL: srv.URL, Timeout: "2s"},
		client: &http.Client{Timeout: 2 * time.Second},
	}
	return m
}

func TestLookupPrefersAbstract(t *testing.T) {
	t.Parallel()

	m := testModule(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "bugün hava" {
			t.Errorf("query q = %q, want %q", got, "bugün hava")
		}
		if got := r.URL.Query().Get("no_html"); got != "1" {
			t.Errorf("query no_html = %q, want 1", got)
		}
		_, _ = w.Write([]byte(`{"AbstractText":"Hava açıqdır.","Answer":"42"}`))
	})

	got, err := m.Lookup(context.Background(), "bugün hava")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got != "Hava açıqdır." {
		t.Errorf("Lookup() = %q, want abstract text", got)
	}
}

func TestLookupFallsBackToAnswer(t *testing.T) {
	t.Parallel()

	m := testModule(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"AbstractText":"","Answer":"42"}`))
	})

	got, err := m.Lookup(context.Background(), "question")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got != "42" {
		t.Errorf("Lookup() = %q, want %q", got, "42")
	}
}

func TestLookupEmptyResult(t *testing.T) {
	t.Parallel()

	m := testModule(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	got, err := m.Lookup(context.Background(), "obscure")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if got != "" {
		t.Errorf("Lookup() = %q, want empty", got)
	}
}

func TestLookupHTTPError(t *testing.T) {
	t.Parallel()

	m := testModule(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := m.Lookup(context.Background(), "q"); err == nil {
		t.Fatal("Lookup() should surface HTTP errors to the caller")
	}
}

func TestLookupMalformedJSON(t *testing.T) {
	t.Parallel()

	m := testModule(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := m.Lookup(context.Background(), "q"); err == nil {
		t.Fatal("Lookup() should fail on malformed JSON")
	}
}
