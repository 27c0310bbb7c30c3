package adapter

import (
	"context"
	"fmt"
	"sync"
)

// MockAdapter returns deterministic responses for local runs and tests. It
// costs nothing per call. Like the real adapters it is shared by every
// concurrently running generation in a batch, so the call counter is
// serialized.
type MockAdapter struct {
	responses       map[string]string
	defaultResponse string

	// Err, when set, is returned by every Complete call.
	Err error

	mu    sync.Mutex
	calls int
}

// NewMockAdapter creates a mock adapter with a default response.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		responses:       make(map[string]string),
		defaultResponse: `{"answer": "I think so, probably", "confidence": 0.7, "reasoning": "mock response"}`,
	}
}

// NewMockAdapterWithResponses creates a mock adapter with responses keyed by
// user prompt.
func NewMockAdapterWithResponses(responses map[string]string, defaultResponse string) *MockAdapter {
	m := NewMockAdapter()
	m.responses = responses
	if defaultResponse != "" {
		m.defaultResponse = defaultResponse
	}
	return m
}

// Name returns the adapter identifier.
func (a *MockAdapter) Name() string {
	return "mock"
}

// CostPerCall returns zero; mock calls are free.
func (a *MockAdapter) CostPerCall() float64 {
	return 0
}

// CallCount returns how many times Complete has been invoked.
func (a *MockAdapter) CallCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Complete returns the scripted response for the user prompt, or the default.
func (a *MockAdapter) Complete(_ context.Context, _ string, user string) (string, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if a.Err != nil {
		return "", fmt.Errorf("mock: %w", a.Err)
	}
	if response, ok := a.responses[user]; ok {
		return response, nil
	}
	return a.defaultResponse, nil
}
