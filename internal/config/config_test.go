package config

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		InitConfig()
	})
}

func TestInitConfigDefaults(t *testing.T) {
	resetGlobals(t)

	InitConfig()

	assert.Equal(t, "en-US", Language)
	assert.Equal(t, 10*time.Second, Timeout)
	assert.Equal(t, 10, MaxThrottleRetries)
	assert.Zero(t, RequestsPerSecond)
	assert.Zero(t, RequestsPerWindow)
	assert.Equal(t, 10*time.Second, RateWindow)
	assert.Zero(t, BreakerFailures)
	assert.Empty(t, APIKey)
	assert.False(t, HasCredentials())
}

func TestInitConfigReadsValues(t *testing.T) {
	resetGlobals(t)

	viper.Set("tmdb.api_key", "key")
	viper.Set("tmdb.language", "fi-FI")
	viper.Set("tmdb.timeout", "3s")
	viper.Set("tmdb.max_throttle_retries", 0)
	viper.Set("tmdb.requests_per_second", 4)
	viper.Set("output.format", "yaml")

	InitConfig()

	assert.Equal(t, "key", APIKey)
	assert.Equal(t, "fi-FI", Language)
	assert.Equal(t, 3*time.Second, Timeout)
	assert.Equal(t, 0, MaxThrottleRetries)
	assert.Equal(t, 4, RequestsPerSecond)
	assert.Equal(t, "yaml", OutputFormat)
	assert.True(t, HasCredentials())
}

func TestHasCredentialsWithAccessTokenOnly(t *testing.T) {
	resetGlobals(t)

	viper.Set("tmdb.access_token", "token")
	InitConfig()

	assert.True(t, HasCredentials())
}

func TestClientOptions(t *testing.T) {
	testCases := []struct {
		name     string
		rps      int
		window   int
		breaker  int
		expected int
	}{
		{name: "base options", expected: 6},
		{name: "with rate limiter", rps: 4, expected: 7},
		{name: "with window limiter", window: 40, expected: 7},
		{name: "with limiter and breaker", rps: 4, breaker: 3, expected: 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetGlobals(t)
			InitConfig()
			RequestsPerSecond = tc.rps
			RequestsPerWindow = tc.window
			BreakerFailures = tc.breaker

			opts := ClientOptions(slog.Default())
			assert.Len(t, opts, tc.expected)
		})
	}
}

func TestNewClientUsesBaseURL(t *testing.T) {
	resetGlobals(t)
	viper.Set("tmdb.base_url", "http://localhost:1234/3/")
	InitConfig()

	client := NewClient(slog.Default())
	require.NotNil(t, client)
	assert.Equal(t, "http://localhost:1234/3", client.BaseURL())
}

func TestRateLimiterSelection(t *testing.T) {
	resetGlobals(t)
	InitConfig()

	assert.Nil(t, newRateLimiter())

	RequestsPerSecond = 4
	require.NotNil(t, newRateLimiter())

	// a window quota releases its calls in one burst
	RequestsPerWindow = 40
	RateWindow = 10 * time.Second
	limiter := newRateLimiter()
	require.NotNil(t, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	for range 40 {
		require.NoError(t, limiter.Wait(ctx))
	}
	assert.Error(t, limiter.Wait(ctx))
}
