// Package ratelimit paces outgoing API calls on the client side.
//
// The service reports its own quota in response headers and the tmdb client
// always honors those. A Limiter is an optional extra that spreads calls out
// before the service has to push back.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a name for logging.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a limiter allowing requestsPerSecond calls per second with a
// burst of the same size. A non-positive rate allows every call.
func New(name string, requestsPerSecond int) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0), name: name}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		name:    name,
	}
}

// PerWindow creates a limiter allowing calls per window, released in a
// single burst. The legacy API quota was 40 calls per 10 seconds.
func PerWindow(name string, calls int, window time.Duration) *Limiter {
	if calls <= 0 || window <= 0 {
		return New(name, 0)
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(window/time.Duration(calls)), calls),
		name:    name,
	}
}

// Wait blocks until a call may proceed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}
