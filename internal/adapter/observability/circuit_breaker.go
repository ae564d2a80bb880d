package observability

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// BreakerState represents the state of a circuit breaker.
type BreakerState int

const (
	// StateClosed means requests are allowed.
	StateClosed BreakerState = iota
	// StateOpen means requests are blocked until the cool-down elapses.
	StateOpen
	// StateHalfOpen means a limited number of trial requests are allowed.
	StateHalfOpen
)

func (s BreakerState) String() string {
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

// ErrCircuitOpen is returned by Call when the breaker rejects a request.
var ErrCircuitOpen = errors.New("circuit breaker open")

// CircuitBreaker guards an upstream dependency. It opens after maxFailures
// consecutive failures and lets halfOpenMax trial calls through after timeout.
type CircuitBreaker struct {
	name        string
	maxFailures int
	timeout     time.Duration
	halfOpenMax int
	now         func() time.Time

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	inFlight  int
	openedAt  time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(name string, maxFailures int, timeout time.Duration) *CircuitBreaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		name:        name,
		maxFailures: maxFailures,
		timeout:     timeout,
		halfOpenMax: 3,
		now:         time.Now,
	}
}

// Call runs fn unless the breaker is open. Errors marked by ignore, such as
// client errors from the upstream, do not count as failures.
func (cb *CircuitBreaker) Call(fn func() error, ignore func(error) bool) error {
	if !cb.allow() {
		return fmt.Errorf("%w: %s", ErrCircuitOpen, cb.name)
	}
	err := fn()
	cb.record(err == nil || (ignore != nil && ignore(err)))
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.timeout {
		cb.transition(StateHalfOpen)
	}
	switch cb.state {
	case StateClosed:
		return true
	case StateHalfOpen:
		if cb.inFlight+cb.successes >= cb.halfOpenMax {
			return false
		}
		cb.inFlight++
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) record(ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen && cb.inFlight > 0 {
		cb.inFlight--
	}
	if !ok {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.maxFailures {
			cb.openedAt = cb.now()
			cb.transition(StateOpen)
		}
		return
	}
	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.halfOpenMax {
			cb.transition(StateClosed)
		}
	}
}

// transition must be called with mu held.
func (cb *CircuitBreaker) transition(to BreakerState) {
	cb.state = to
	cb.failures = 0
	cb.successes = 0
	cb.inFlight = 0
	RecordCircuitBreakerState(cb.name, to)
}

// State returns the current state.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Name returns the breaker name used in metrics and errors.
func (cb *CircuitBreaker) Name() string { return cb.name }
