package adapter

import (
	"errors"
	"fmt"
)

// ErrNoProvider is returned when no provider credential is configured; every
// generation call fails fast and the caller falls back to synthesis.
var ErrNoProvider = errors.New("no provider configured")

// AdapterError wraps provider call failures with status metadata.
type AdapterError struct {
	Provider string
	Status   int
	Err      error
}

func (e *AdapterError) Error() string {
	if e == nil {
		return "adapter error"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: adapter error (status=%d)", e.Provider, e.Status)
}

func (e *AdapterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
