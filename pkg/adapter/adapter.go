// Package adapter abstracts the upstream language-model providers behind a
// single completion capability. Exactly one adapter is selected at service
// construction based on which credentials are configured.
package adapter

import "context"

// Adapter defines the interface for LLM provider adapters.
type Adapter interface {
	// Complete sends a system instruction and user prompt to the provider
	// and returns the raw text reply.
	Complete(ctx context.Context, system, user string) (string, error)

	// Name returns the adapter's identifier.
	Name() string

	// CostPerCall returns the fixed per-call cost estimate in USD. It is an
	// approximation for budgeting, not metered against real billing.
	CostPerCall() float64
}
