package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// errQuotaExhausted marks a successful response that arrived with an empty
// quota. It never leaves execute.
var errQuotaExhausted = errors.New("tmdb: rate limit quota exhausted")

// request is one logical call: a command plus method and optional JSON body.
type request struct {
	method string
	cmd    Command
	body   []byte
}

// attemptState is the per-call state of the throttle loop.
type attemptState struct {
	// held is a successful response waiting out an exhausted quota, with its
	// body already buffered. It is returned once the delay has elapsed.
	held *http.Response
	// resp is the final response.
	resp *http.Response
	// delay is the wait requested by the most recent attempt.
	delay time.Duration
	// throttled counts 429 responses seen so far.
	throttled int
}

// execute runs one logical call to completion. On success the caller owns
// the returned response and must close its body.
//
// Only throttle conditions are retried: a 429 waits Retry-After plus one
// second and re-dispatches the same request, and a successful response with
// an exhausted quota waits until one second past the reset time and is then
// returned without being fetched again. Transport errors are returned
// untouched. Any other non-2xx status becomes a *ServiceError. Cancellation
// at any point returns the context error.
func (c *Client) execute(ctx context.Context, req request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target := req.cmd.target(c.baseURL, c.apiKey)
	st := &attemptState{}

	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		return c.scheduleDelay(st.delay), false
	})

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if st.held != nil {
			st.resp, st.held = st.held, nil
			return nil
		}
		return c.attempt(ctx, req, target, st)
	})
	if err != nil {
		if st.held != nil {
			_ = st.held.Body.Close()
			st.held = nil
		}
		return nil, err
	}
	return st.resp, nil
}

// attempt performs a single dispatch and classifies the outcome.
func (c *Client) attempt(ctx context.Context, req request, target string, st *attemptState) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
	}

	httpReq, err := c.newRequest(ctx, req, target)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		delay := retryAfter(resp.Header, c.now())
		svcErr := interpretError(resp)
		_ = resp.Body.Close()

		st.throttled++
		if c.maxThrottleRetries > 0 && st.throttled > c.maxThrottleRetries {
			c.logger.Warn("Giving up after repeated throttling",
				"path", req.cmd.Path(),
				"attempts", st.throttled,
			)
			return fmt.Errorf("%w: %w", ErrThrottled, svcErr)
		}

		c.logger.Debug("Throttled, retrying",
			"path", req.cmd.Path(),
			"delay", delay,
			"attempt", st.throttled,
		)
		st.delay = delay
		return retry.RetryableError(svcErr)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		svcErr := interpretError(resp)
		_ = resp.Body.Close()
		return svcErr
	}

	if sig := ParseRateLimit(resp.Header); sig.Exhausted() {
		// the client timeout keeps running while the body sits unread
		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("tmdb: read %s: %w", req.cmd.Path(), err)
		}
		resp.Body = io.NopCloser(bytes.NewReader(data))

		st.held = resp
		st.delay = sig.Delay(c.now())
		c.logger.Debug("Rate limit quota exhausted, waiting for reset",
			"path", req.cmd.Path(),
			"reset", sig.Reset,
			"delay", st.delay,
		)
		return retry.RetryableError(errQuotaExhausted)
	}

	st.resp = resp
	return nil
}

func (c *Client) newRequest(ctx context.Context, req request, target string) (*http.Request, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("tmdb: build request %s: %w", req.cmd.Path(), err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json;charset=utf-8")
	}

	if c.tokenSource != nil {
		token, err := c.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("tmdb: access token: %w", err)
		}
		token.SetAuthHeader(httpReq)
	}
	return httpReq, nil
}

// do executes a request and decodes the response body into target.
func (c *Client) do(ctx context.Context, req request, target any) error {
	resp, err := c.execute(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("tmdb: read %s: %w", req.cmd.Path(), err)
	}
	if target == nil {
		return nil
	}
	if err := decodeBody(c.logger, req.cmd.Path(), data, target); err != nil {
		return err
	}
	c.resolver.bind(target)
	return nil
}

// get fetches a command with GET and decodes the result into a new T.
func get[T any](ctx context.Context, c *Client, cmd Command) (*T, error) {
	var out T
	if err := c.do(ctx, request{method: http.MethodGet, cmd: cmd}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// send issues a write call and reports whether the service acknowledged it.
func send(ctx context.Context, c *Client, method string, cmd Command, payload any) (bool, error) {
	req := request{method: method, cmd: cmd}
	if payload != nil {
		data, err := marshalBody(cmd, payload)
		if err != nil {
			return false, err
		}
		req.body = data
	}

	var status StatusResponse
	if err := c.do(ctx, req, &status); err != nil {
		return false, err
	}
	return status.Succeeded(), nil
}

func marshalBody(cmd Command, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("tmdb: encode %s: %w", cmd.Path(), err)
	}
	return data, nil
}
