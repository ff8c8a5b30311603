package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/tmdbkit/internal/ratelimit"
	"github.com/lepinkainen/tmdbkit/tmdb"
)

// Global configuration variables
var (
	// APIKey is the v3 API key for TheMovieDB
	APIKey string
	// AccessToken is the v4 read access token, sent as a bearer token
	AccessToken string
	// Language is the default response language, e.g. "en-US"
	Language string
	// BaseURL overrides the API host
	BaseURL string
	// ImageBaseURL overrides the image host
	ImageBaseURL string
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration
	// MaxThrottleRetries bounds how many 429 responses a call absorbs (0 = unbounded)
	MaxThrottleRetries int
	// RequestsPerSecond enables client-side pacing when above zero
	RequestsPerSecond int
	// RequestsPerWindow paces calls per RateWindow instead, released in one
	// burst. It takes precedence over RequestsPerSecond.
	RequestsPerWindow int
	// RateWindow is the window of RequestsPerWindow
	RateWindow time.Duration
	// BreakerFailures enables the circuit breaker when above zero
	BreakerFailures int
	// OutputFormat is the default CLI output format
	OutputFormat string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("tmdb.language", "en-US")
	viper.SetDefault("tmdb.timeout", "10s")
	viper.SetDefault("tmdb.max_throttle_retries", 10)
	viper.SetDefault("tmdb.requests_per_second", 0)
	viper.SetDefault("tmdb.requests_per_window", 0)
	viper.SetDefault("tmdb.rate_window", "10s")
	viper.SetDefault("tmdb.circuit_breaker", 0)
	viper.SetDefault("output.format", "")

	// Get values from viper
	APIKey = viper.GetString("tmdb.api_key")
	AccessToken = viper.GetString("tmdb.access_token")
	Language = viper.GetString("tmdb.language")
	BaseURL = viper.GetString("tmdb.base_url")
	ImageBaseURL = viper.GetString("tmdb.image_base_url")
	Timeout = viper.GetDuration("tmdb.timeout")
	MaxThrottleRetries = viper.GetInt("tmdb.max_throttle_retries")
	RequestsPerSecond = viper.GetInt("tmdb.requests_per_second")
	RequestsPerWindow = viper.GetInt("tmdb.requests_per_window")
	RateWindow = viper.GetDuration("tmdb.rate_window")
	BreakerFailures = viper.GetInt("tmdb.circuit_breaker")
	OutputFormat = viper.GetString("output.format")
}

// HasCredentials reports whether an API key or an access token is set.
func HasCredentials() bool {
	return APIKey != "" || AccessToken != ""
}

// ClientOptions builds the client options from the global configuration.
func ClientOptions(logger *slog.Logger) []tmdb.Option {
	opts := []tmdb.Option{
		tmdb.WithLogger(logger),
		tmdb.WithBaseURL(BaseURL),
		tmdb.WithImageBaseURL(ImageBaseURL),
		tmdb.WithTimeout(Timeout),
		tmdb.WithMaxThrottleRetries(MaxThrottleRetries),
		tmdb.WithAccessToken(AccessToken),
	}
	if limiter := newRateLimiter(); limiter != nil {
		opts = append(opts, tmdb.WithRateLimiter(limiter))
	}
	if BreakerFailures > 0 {
		opts = append(opts, tmdb.WithCircuitBreaker(uint32(BreakerFailures), 30*time.Second))
	}
	return opts
}

var _ tmdb.RateLimiter = (*ratelimit.Limiter)(nil)

// newRateLimiter returns the configured client-side limiter, or nil when
// requests are not paced.
func newRateLimiter() *ratelimit.Limiter {
	switch {
	case RequestsPerWindow > 0 && RateWindow > 0:
		return ratelimit.PerWindow("TMDB", RequestsPerWindow, RateWindow)
	case RequestsPerSecond > 0:
		return ratelimit.New("TMDB", RequestsPerSecond)
	}
	return nil
}

// NewClient creates a TMDB client from the global configuration.
func NewClient(logger *slog.Logger) *tmdb.Client {
	return tmdb.NewClient(APIKey, ClientOptions(logger)...)
}
