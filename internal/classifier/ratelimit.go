package classifier

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// adaptiveLimiter paces outbound classifier HTTP calls, widening its rate
// on success once more than 10 seconds have passed since the last error,
// and narrowing it after a rate-limit or server error. Adapted
// from the teacher's generic retrylimit.AdaptiveLimiter for this single
// purpose: classifier requests only.
type adaptiveLimiter struct {
	mu        sync.RWMutex
	limiter   *rate.Limiter
	minLimit  rate.Limit
	maxLimit  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

func newAdaptiveLimiter(initial, min, max rate.Limit) *adaptiveLimiter {
	if initial < 1 {
		initial = 1
	}
	if min < 1 {
		min = 1
	}
	return &adaptiveLimiter{
		limiter:  rate.NewLimiter(initial, int(initial)),
		minLimit: min,
		maxLimit: max,
		stepUp:   1,
		stepDown: 0.5,
	}
}

func (a *adaptiveLimiter) wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

func (a *adaptiveLimiter) success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.adjust(a.limiter.Limit() + a.stepUp)
	}
}

func (a *adaptiveLimiter) rateLimited() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.adjust(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

func (a *adaptiveLimiter) currentLimit() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return float64(a.limiter.Limit())
}

func (a *adaptiveLimiter) adjust(newLimit rate.Limit) {
	if newLimit > a.maxLimit {
		newLimit = a.maxLimit
	} else if newLimit < a.minLimit {
		newLimit = a.minLimit
	}
	if newLimit != a.limiter.Limit() {
		a.limiter.SetLimit(newLimit)
		burst := int(newLimit)
		if burst < 1 {
			burst = 1
		}
		a.limiter.SetBurst(burst)
	}
}

// httpStatusError carries the response status code so the retry loop can
// tell rate-limit and server-error responses apart from other failures.
// Every failure is retried until cfg.maxAttempts; only the pacing differs.
type httpStatusError struct {
	status int
	err    error
}

func (e *httpStatusError) Error() string { return e.err.Error() }
func (e *httpStatusError) Unwrap() error { return e.err }
func (e *httpStatusError) StatusCode() int { return e.status }

func isRateLimited(err error) bool {
	if as, ok := err.(*httpStatusError); ok {
		return as.status == http.StatusTooManyRequests
	}
	return false
}

func isServerFailure(err error) bool {
	if as, ok := err.(*httpStatusError); ok {
		return as.status >= 500 && as.status < 600
	}
	return false
}

// retryConfig configures the classifier HTTP retry loop.
type retryConfig struct {
	maxAttempts    int
	initialDelay   time.Duration
	maxDelay       time.Duration
	rateLimitDelay time.Duration
	multiplier     float64
}

func defaultRetryConfig() retryConfig {
	return retryConfig{
		maxAttempts:    4,
		initialDelay:   250 * time.Millisecond,
		maxDelay:       5 * time.Second,
		rateLimitDelay: 500 * time.Millisecond,
		multiplier:     2.0,
	}
}

// withRetry runs fn with exponential backoff and jitter, widening/narrowing
// lim based on outcome. Stops on success, context cancellation, or after
// cfg.maxAttempts.
func withRetry(ctx context.Context, lim *adaptiveLimiter, cfg retryConfig, fn func() error) error {
	delay := cfg.initialDelay

	var lastErr error
	for attempt := 1; attempt <= cfg.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lim != nil {
			if err := lim.wait(ctx); err != nil {
				return err
			}
		}

		err := fn()
		if err == nil {
			if lim != nil {
				lim.success()
			}
			return nil
		}
		lastErr = err

		if isRateLimited(err) {
			if lim != nil {
				lim.rateLimited()
			}
			log.Printf("[AFFECT] classifier rate limited (attempt %d), limiter now %.2f rps", attempt, lim.currentLimit())
			sleepWithContext(ctx, cfg.rateLimitDelay)
			continue
		}

		if isServerFailure(err) && lim != nil {
			lim.rateLimited()
		}

		log.Printf("[AFFECT] classifier request failed (attempt %d): %v", attempt, err)
		sleepWithContext(ctx, addJitter(delay))
		delay = time.Duration(float64(delay) * cfg.multiplier)
		if delay > cfg.maxDelay {
			delay = cfg.maxDelay
		}
	}
	return lastErr
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func addJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return delay
	}
	return delay + time.Duration(rand.Int63n(int64(delay/4+1)))
}
