// Package provider defines the contract for text-generation backends.
package provider

import "context"

// Provider is the interface for communicating with an LLM.
// Concrete implementations live in separate packages (e.g., provider.openai)
// and typically also implement core.Module for lifecycle management.
type Provider interface {
	// Complete sends a completion request and returns the full response.
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}

// HealthChecker is an optional interface that providers may implement
// to support active health probing.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ReadyChecker is an optional interface that providers may implement to
// report whether they are usable at all (credential present, endpoint set).
// A non-nil error means every request would fail for configuration reasons,
// which callers surface without consuming rate-limit quota.
type ReadyChecker interface {
	Ready() error
}
