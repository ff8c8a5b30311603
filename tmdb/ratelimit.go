package tmdb

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	headerRemaining  = "X-RateLimit-Remaining"
	headerReset      = "X-RateLimit-Reset"
	headerRetryAfter = "Retry-After"

	// safetyMargin is added to every server-provided wait.
	safetyMargin = time.Second
	// maxWait caps server-provided waits so adding the margin cannot
	// overflow time.Duration.
	maxWait = time.Duration(math.MaxInt64) - safetyMargin
	// maxRetryAfterSeconds is the largest delta-seconds value below maxWait.
	maxRetryAfterSeconds = int64(maxWait / time.Second)
)

// RateLimitSignal is a read-only view over the quota headers of one response.
type RateLimitSignal struct {
	// Remaining is the number of calls left in the current window.
	Remaining int
	// HasRemaining is false when the header was missing or malformed.
	HasRemaining bool
	// Reset is when the current window ends.
	Reset time.Time
	// HasReset is false when the header was missing or malformed.
	HasReset bool
}

// ParseRateLimit reads the quota headers of a response.
func ParseRateLimit(h http.Header) RateLimitSignal {
	var sig RateLimitSignal
	if v := strings.TrimSpace(h.Get(headerRemaining)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sig.Remaining = n
			sig.HasRemaining = true
		}
	}
	if v := strings.TrimSpace(h.Get(headerReset)); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			sig.Reset = time.Unix(epoch, 0)
			sig.HasReset = true
		}
	}
	return sig
}

// Exhausted reports whether the response announced an empty quota with a
// known reset time.
func (s RateLimitSignal) Exhausted() bool {
	return s.HasRemaining && s.Remaining == 0 && s.HasReset
}

// Delay returns how long to wait from now until one second past the reset
// time. It never returns a negative duration.
func (s RateLimitSignal) Delay(now time.Time) time.Duration {
	d := s.Reset.Add(safetyMargin).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// retryAfter returns the wait requested by a 429 response plus the safety
// margin. Retry-After may be delta-seconds or an HTTP-date; a missing or
// malformed header counts as zero.
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := strings.TrimSpace(h.Get(headerRetryAfter))
	if v == "" {
		return safetyMargin
	}
	// out of range values saturate, so huge waits stay huge
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		secs = max(0, min(secs, maxRetryAfterSeconds))
		return time.Duration(secs)*time.Second + safetyMargin
	}
	if at, err := http.ParseTime(v); err == nil {
		d := max(0, min(at.Sub(now), maxWait))
		return d + safetyMargin
	}
	return safetyMargin
}
