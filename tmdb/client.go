// Package tmdb provides a client for TheMovieDB v3 API.
//
// Every call goes through a single execution path that absorbs server
// throttling (HTTP 429 and exhausted rate-limit quotas), normalizes failures
// into *ServiceError and resolves mixed-kind results into Resource values.
package tmdb

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	defaultBaseURL            = "https://api.themoviedb.org/3"
	defaultImageBaseURL       = "https://image.tmdb.org/t/p"
	defaultTimeout            = 10 * time.Second
	defaultMaxThrottleRetries = 10
	userAgent                 = "tmdbkit"
)

// Client is a TMDB API client. It is safe for concurrent use.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   HTTPDoer
	timeout      time.Duration
	tokenSource  oauth2.TokenSource
	rateLimiter  RateLimiter
	logger       *slog.Logger
	resolver     *Resolver

	maxThrottleRetries int
	breakerFailures    uint32
	breakerTimeout     time.Duration

	// test seams
	now           func() time.Time
	scheduleDelay func(time.Duration) time.Duration

	Movies      *MovieService
	Shows       *ShowService
	People      *PersonService
	Collections *CollectionService
	Companies   *CompanyService
	Genres      *GenreService
	Lists       *ListService
	Reviews     *ReviewService
	System      *SystemService
	Storage     *StorageService
}

type service struct {
	client *Client
}

// NewClient creates a new TMDB API client. The API key is sent as the
// api_key query parameter; it may be empty when WithAccessToken is used.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:             apiKey,
		baseURL:            defaultBaseURL,
		imageBaseURL:       defaultImageBaseURL,
		timeout:            defaultTimeout,
		logger:             slog.Default(),
		resolver:           NewResolver(),
		maxThrottleRetries: defaultMaxThrottleRetries,
		now:                time.Now,
		scheduleDelay:      func(d time.Duration) time.Duration { return d },
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = newHTTPClient(client.timeout)
	}
	if client.breakerFailures > 0 {
		client.httpClient = newBreakerDoer(client.httpClient, client.breakerFailures, client.breakerTimeout, client.logger)
	}

	common := &service{client: client}
	client.Movies = (*MovieService)(common)
	client.Shows = (*ShowService)(common)
	client.People = (*PersonService)(common)
	client.Collections = (*CollectionService)(common)
	client.Companies = (*CompanyService)(common)
	client.Genres = (*GenreService)(common)
	client.Lists = (*ListService)(common)
	client.Reviews = (*ReviewService)(common)
	client.System = (*SystemService)(common)
	client.Storage = (*StorageService)(common)

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The caller is responsible for
// its redirect and cookie policy.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images. The image size is
// appended to it as a path segment.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout sets the per-exchange timeout of the default HTTP client.
// It has no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.timeout = d
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

// RateLimiter paces outgoing requests. *rate.Limiter from
// golang.org/x/time/rate satisfies it.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// WithRateLimiter paces outgoing requests on the client side. Requests are
// not paced by default; the service's own rate-limit headers are always
// honored.
func WithRateLimiter(limiter RateLimiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithMaxThrottleRetries bounds how many 429 responses one call absorbs
// before it fails with ErrThrottled. Zero removes the bound.
func WithMaxThrottleRetries(n int) Option {
	return func(client *Client) {
		if n >= 0 {
			client.maxThrottleRetries = n
		}
	}
}

// WithAccessToken authenticates with a v4 read access token sent as a
// bearer token.
func WithAccessToken(token string) Option {
	return func(client *Client) {
		if token == "" {
			return
		}
		client.tokenSource = oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   "Bearer",
		})
	}
}

// WithTokenSource authenticates every request with tokens from ts.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(client *Client) {
		client.tokenSource = ts
	}
}

// WithCircuitBreaker stops dispatching for openTimeout after the given
// number of consecutive transport failures. HTTP error statuses do not
// count as failures.
func WithCircuitBreaker(failures uint32, openTimeout time.Duration) Option {
	return func(client *Client) {
		client.breakerFailures = failures
		client.breakerTimeout = openTimeout
	}
}

// WithResolver replaces the resolver used for mixed-kind results.
func WithResolver(r *Resolver) Option {
	return func(client *Client) {
		if r != nil {
			client.resolver = r
		}
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ensure the default transport satisfies HTTPDoer
var _ HTTPDoer = (*http.Client)(nil)
