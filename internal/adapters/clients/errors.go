// Package clients provides the instrumented HTTP client quotectl uses to
// reach the quotation API.
package clients

import (
	"errors"
	"fmt"
	"time"
)

// Transport failures. Callers translate them into domain errors.
var (
	// ErrCircuitOpen is returned while the circuit breaker rejects requests.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error once every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// CircuitOpenError reports a request rejected by an open breaker and how
// long the breaker stays open. It matches ErrCircuitOpen.
type CircuitOpenError struct {
	Service    string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	if e.RetryAfter <= 0 {
		return fmt.Sprintf("%s: %s", e.Service, ErrCircuitOpen)
	}

	return fmt.Sprintf("%s: %s, retry in %s", e.Service, ErrCircuitOpen, e.RetryAfter.Round(time.Second))
}

func (e *CircuitOpenError) Unwrap() error { return ErrCircuitOpen }
