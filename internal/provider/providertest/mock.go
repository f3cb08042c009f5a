// Package providertest provides test helpers for the provider package.
package providertest

import (
	"context"
	"sync"

	"github.com/axtarget/axtarchat/internal/provider"
)

// MockProvider is a configurable test double for provider.Provider.
// Set the Func fields to control behavior. Unset funcs panic on call.
// All methods are safe for concurrent use.
type MockProvider struct {
	CompleteFunc  func(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error)
	ModelNameFunc func() string
	ReadyFunc     func() error

	mu            sync.Mutex
	CompleteCalls int
}

// Complete delegates to CompleteFunc and tracks call count.
func (m *MockProvider) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	m.mu.Lock()
	m.CompleteCalls++
	m.mu.Unlock()
	return m.CompleteFunc(ctx, req)
}

// ModelName delegates to ModelNameFunc, defaulting to "mock" when unset.
func (m *MockProvider) ModelName() string {
	if m.ModelNameFunc == nil {
		return "mock"
	}
	return m.ModelNameFunc()
}

// Ready delegates to ReadyFunc, defaulting to ready when unset.
func (m *MockProvider) Ready() error {
	if m.ReadyFunc == nil {
		return nil
	}
	return m.ReadyFunc()
}

// Calls returns the number of Complete invocations so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CompleteCalls
}

// Interface guards.
var (
	_ provider.Provider     = (*MockProvider)(nil)
	_ provider.ReadyChecker = (*MockProvider)(nil)
)
