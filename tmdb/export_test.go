package tmdb

import "time"

// SetClock replaces the clock used to evaluate rate-limit headers.
func SetClock(c *Client, now func() time.Time) {
	c.now = now
}

// SetDelayHook intercepts every throttle delay. The hook receives the
// computed delay and returns the one actually slept.
func SetDelayHook(c *Client, hook func(time.Duration) time.Duration) {
	c.scheduleDelay = hook
}
