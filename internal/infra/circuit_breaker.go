package infra

import (
	"errors"
	"sync"
	"time"
)

// Breaker is a minimal circuit breaker (closed → open → half-open) used to
// stop hammering the SMTP relay when it is down. While open, sends fast-fail
// and the caller requeues the job.

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned when Do is called while the breaker is open.
var ErrBreakerOpen = errors.New("circuit breaker is open")

type Breaker struct {
	mu          sync.Mutex
	state       BreakerState
	failures    int
	successes   int
	lastFailure time.Time

	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
}

// NewBreaker creates a closed breaker that trips after failureThreshold
// consecutive failures, probes again after openTimeout, and closes after
// successThreshold consecutive probe successes.
func NewBreaker(failureThreshold, successThreshold int, openTimeout time.Duration) *Breaker {
	if failureThreshold <= 0 {
		failureThreshold = 5
	}
	if successThreshold <= 0 {
		successThreshold = 2
	}
	if openTimeout <= 0 {
		openTimeout = time.Minute
	}
	return &Breaker{
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		openTimeout:      openTimeout,
	}
}

// State returns the current state, transitioning open → half-open once the
// open timeout has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.lastFailure) >= b.openTimeout {
		b.state = BreakerHalfOpen
		b.successes = 0
	}
	return b.state
}

// Do runs fn through the breaker, returning ErrBreakerOpen immediately while
// tripped.
func (b *Breaker) Do(fn func() error) error {
	if b.State() == BreakerOpen {
		return ErrBreakerOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

func (b *Breaker) recordFailure() {
	b.failures++
	b.lastFailure = time.Now()

	switch b.state {
	case BreakerClosed:
		if b.failures >= b.failureThreshold {
			b.state = BreakerOpen
			b.successes = 0
		}
	case BreakerHalfOpen:
		b.state = BreakerOpen
		b.failures = 0
	}
}

func (b *Breaker) recordSuccess() {
	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.successThreshold {
			b.state = BreakerClosed
			b.failures = 0
			b.successes = 0
		}
	}
}
