package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/axtarget/axtarchat/internal/provider"
)

// maxResponseSize is the maximum response body size (10 MB).
// Protects against OOM from malformed or huge responses.
const maxResponseSize = 10 * 1024 * 1024

// buildChatRequest creates an OpenAI API chat request from a provider
// CompletionRequest, merging request-level overrides with config defaults.
func (p *Provider) buildChatRequest(req provider.CompletionRequest) chatRequest {
	cr := chatRequest{
		Model:    p.config.Model,
		Messages: toMessages(req.Messages),
	}

	if req.MaxTokens > 0 {
		cr.MaxTokens = req.MaxTokens
	} else {
		cr.MaxTokens = p.config.MaxTokens
	}

	return cr
}

// newHTTPRequest creates an authenticated HTTP request for the OpenAI API.
func (p *Provider) newHTTPRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	url := p.config.BaseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	return httpReq, nil
}

// doPost sends a POST request and returns the response body and status code.
// The response body is limited to maxResponseSize bytes.
func (p *Provider) doPost(ctx context.Context, path string, payload any) ([]byte, int, error) {
	httpReq, err := p.newHTTPRequest(ctx, path, payload)
	if err != nil {
		return nil, 0, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, 0, mapConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("openai: read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// Complete sends a completion request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	if p.config.APIKey == "" {
		return provider.CompletionResponse{}, provider.ErrNotConfigured
	}

	cr := p.buildChatRequest(req)

	body, statusCode, err := p.doPost(ctx, "/chat/completions", cr)
	if err != nil {
		return provider.CompletionResponse{}, err
	}

	if httpErr := mapHTTPError(statusCode, body); httpErr != nil {
		return provider.CompletionResponse{}, httpErr
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return provider.CompletionResponse{}, fmt.Errorf("openai: unmarshal response: %w", err)
	}

	return fromResponse(&resp), nil
}

// HealthCheck validates the provider is functional by sending a minimal
// 1-token completion. This tests the full path: authentication, model
// access, and quota.
func (p *Provider) HealthCheck(ctx context.Context) error {
	req := provider.CompletionRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleUser, Content: "hi"},
		},
		MaxTokens: 1,
	}
	_, err := p.Complete(ctx, req)
	return err
}

// ModelName returns the configured model identifier.
func (p *Provider) ModelName() string {
	return p.config.Model
}
