package recommend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"seoanalyzer/internal/log"
	"seoanalyzer/internal/metrics"
)

type BreakerState int

const (
	StateClosed BreakerState = iota
	StateOpen
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
	}
	return "unknown"
}

// CircuitBreaker stops calling a failing dependency until cooldown has passed.
type CircuitBreaker struct {
	mu              sync.Mutex
	state           BreakerState
	failures        int
	successes       int
	lastFailureTime time.Time

	failureThreshold int
	successThreshold int
	cooldown         time.Duration

	now func() time.Time
}

func NewCircuitBreaker(failureThreshold int, cooldown time.Duration, successThreshold int) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 1
	}
	if successThreshold < 1 {
		successThreshold = 1
	}
	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		cooldown:         cooldown,
		now:              time.Now,
	}
}

func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Allow reports whether a call may go through. An open breaker moves to
// half-open once the cooldown has elapsed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastFailureTime) >= cb.cooldown {
			cb.state = StateHalfOpen
			cb.successes = 0
			return true
		}
	}
	return false
}

func (cb *CircuitBreaker) OnSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.successThreshold {
			cb.state = StateClosed
			cb.failures = 0
		}
	}
}

func (cb *CircuitBreaker) OnFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailureTime = cb.now()

	switch cb.state {
	case StateClosed:
		if cb.failures >= cb.failureThreshold {
			cb.state = StateOpen
		}
	case StateHalfOpen:
		cb.state = StateOpen
	}
}

type guarded struct {
	next    Recommender
	breaker *CircuitBreaker
}

// WithBreaker fails fast with ErrCircuitOpen while the breaker is open.
func WithBreaker(next Recommender, cb *CircuitBreaker) Recommender {
	return &guarded{next: next, breaker: cb}
}

func (g *guarded) Recommend(ctx context.Context, checkTitle, keyphrase, context string) (string, error) {
	if !g.breaker.Allow() {
		metrics.ObserveRecommendation(metrics.RecommendationCircuitOpen)
		return "", ErrCircuitOpen
	}

	text, err := g.next.Recommend(ctx, checkTitle, keyphrase, context)
	if err != nil {
		// the caller giving up is not a provider failure
		if ctx.Err() == nil {
			g.breaker.OnFailure()
			if g.breaker.State() == StateOpen {
				log.Logger.Warn("recommendation circuit open", zap.Error(err))
			}
		}
		return "", err
	}
	g.breaker.OnSuccess()
	return text, nil
}
