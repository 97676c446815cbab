// Package circuitbreaker stops calling an optional dependency after repeated
// failures and probes it again once a cool-down has passed.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned without calling the dependency while the breaker is open
var ErrOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state
type State int

const (
	// StateClosed lets calls through
	StateClosed State = iota
	// StateOpen rejects calls
	StateOpen
	// StateHalfOpen lets a single probe through
	StateHalfOpen
)

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

// Config holds circuit breaker configuration
type Config struct {
	// Name identifies the breaker in logs
	Name string
	// MaxFailures is the number of consecutive failures that opens the circuit
	MaxFailures int
	// CoolDown is how long the circuit stays open before a probe is allowed
	CoolDown time.Duration
	// OnStateChange is called synchronously, outside the lock, on every transition
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns a default circuit breaker configuration
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		MaxFailures: 5,
		CoolDown:    30 * time.Second,
	}
}

// CircuitBreaker guards calls to a dependency. Safe for concurrent use.
type CircuitBreaker struct {
	config Config
	now    func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a new circuit breaker with the given configuration
func New(config Config) *CircuitBreaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.CoolDown <= 0 {
		config.CoolDown = 30 * time.Second
	}

	return &CircuitBreaker{
		config: config,
		now:    time.Now,
		state:  StateClosed,
	}
}

// Do runs fn unless the circuit is open and records its outcome.
// Context cancellation is not counted as a dependency failure.
func Do[T any](ctx context.Context, cb *CircuitBreaker, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if err := cb.allow(); err != nil {
		return zero, err
	}

	result, err := fn(ctx)
	if err != nil && ctx.Err() != nil {
		cb.release()
		return zero, err
	}
	cb.record(err)
	return result, err
}

// allow reports whether a call may proceed
func (cb *CircuitBreaker) allow() error {
	cb.mu.Lock()

	var from State
	changed := false

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.openedAt) < cb.config.CoolDown {
			cb.mu.Unlock()
			return ErrOpen
		}
		from, changed = cb.setState(StateHalfOpen)
		cb.probing = true
	case StateHalfOpen:
		if cb.probing {
			cb.mu.Unlock()
			return ErrOpen
		}
		cb.probing = true
	}

	cb.mu.Unlock()
	if changed {
		cb.notify(from, StateHalfOpen)
	}
	return nil
}

// release frees the probe slot without recording an outcome
func (cb *CircuitBreaker) release() {
	cb.mu.Lock()
	cb.probing = false
	cb.mu.Unlock()
}

// record updates the state from a call outcome
func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()

	cb.probing = false
	to := cb.state

	if err == nil {
		cb.failures = 0
		to = StateClosed
	} else {
		cb.failures++
		if cb.state == StateHalfOpen || cb.failures >= cb.config.MaxFailures {
			to = StateOpen
			cb.openedAt = cb.now()
		}
	}

	from, changed := cb.setState(to)
	cb.mu.Unlock()

	if changed {
		cb.notify(from, to)
	}
}

// setState must be called with mu held
func (cb *CircuitBreaker) setState(to State) (State, bool) {
	from := cb.state
	if from == to {
		return from, false
	}
	cb.state = to
	if to == StateClosed {
		cb.failures = 0
	}
	return from, true
}

func (cb *CircuitBreaker) notify(from, to State) {
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the current consecutive failure count
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}
