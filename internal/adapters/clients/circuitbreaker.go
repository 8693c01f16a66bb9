package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quotation-service/internal/platform/config"
)

// State is the position of a circuit breaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the open timeout has passed.
	StateOpen

	// StateHalfOpen lets a limited number of probe requests through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker stops calling the quotation API after repeated failures.
//
//   - Closed → Open after MaxFailures consecutive failures
//   - Open → HalfOpen once Timeout has passed since the last failure
//   - HalfOpen → Closed after HalfOpenLimit consecutive successes
//   - HalfOpen → Open on any failure
//
// Transition callbacks run on the calling goroutine after the lock is
// released, in the order the transitions happened.
type CircuitBreaker struct {
	mu          sync.Mutex
	cfg         config.CircuitBreakerConfig
	state       State
	failures    int
	successes   int
	probes      int
	lastFailure time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

type transition struct {
	from, to State
	notify   func(from, to State)
}

func (t *transition) fire() {
	if t != nil && t.notify != nil {
		t.notify(t.from, t.to)
	}
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg: cfg,
		now: time.Now,
	}
}

// OnStateChange registers fn to be told about every state change.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may be sent. An open breaker whose
// timeout has passed moves to half-open and admits the caller as a probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var (
		t       *transition
		allowed bool
	)

	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			t = cb.moveTo(StateHalfOpen)
			cb.probes = 1
			allowed = true
		}

	case StateHalfOpen:
		if cb.probes < cb.cfg.HalfOpenLimit {
			cb.probes++
			allowed = true
		}
	}

	cb.mu.Unlock()
	t.fire()

	return allowed
}

// RecordSuccess records a request that reached the API and got an answer.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var t *transition

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.probes--
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			t = cb.moveTo(StateClosed)
		}
	}

	cb.mu.Unlock()
	t.fire()
}

// RecordFailure records a failed request. Half-open breakers reopen at once.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var t *transition

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			t = cb.moveTo(StateOpen)
		}

	case StateHalfOpen:
		cb.probes--
		t = cb.moveTo(StateOpen)
	}

	cb.mu.Unlock()
	t.fire()
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// RetryAfter is how long an open breaker keeps rejecting requests. It is
// zero in any other state.
func (cb *CircuitBreaker) RetryAfter() time.Duration {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return 0
	}

	return max(0, cb.cfg.Timeout-cb.now().Sub(cb.lastFailure))
}

// moveTo changes state and resets the counters. Callers hold cb.mu and
// fire the returned transition after unlocking.
func (cb *CircuitBreaker) moveTo(next State) *transition {
	if cb.state == next {
		return nil
	}

	t := &transition{from: cb.state, to: next, notify: cb.onStateChange}

	cb.state = next
	cb.failures = 0
	cb.successes = 0

	return t
}
