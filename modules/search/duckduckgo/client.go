package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxResponseSize is the maximum response body size (1 MB). Instant answers
// are small; anything larger is malformed.
const maxResponseSize = 1 << 20

// instantAnswer is the subset of the Instant Answer response we consume.
type instantAnswer struct {
	AbstractText string `json:"AbstractText"`
	Answer       string `json:"Answer"`
}

// Lookup queries the Instant Answer API and returns the abstract text,
// falling back to the direct answer, else the empty string. The caller
// treats any error as a degraded empty result; nothing here is fatal.
func (m *Module) Lookup(ctx context.Context, query string) (string, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")

	reqURL := m.config.BaseURL + "/?" + q.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("duckduckgo: create request: %w", err)
	}

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("duckduckgo: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("duckduckgo: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("duckduckgo: read response: %w", err)
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return "", fmt.Errorf("duckduckgo: unmarshal response: %w", err)
	}

	if answer.AbstractText != "" {
		return answer.AbstractText, nil
	}
	return answer.Answer, nil
}
