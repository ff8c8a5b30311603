package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/tmdbkit/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	APIKey             string
	AccessToken        string
	Language           string
	BaseURL            string
	ImageBaseURL       string
	Timeout            time.Duration
	MaxThrottleRetries int
	RequestsPerSecond  int
	RequestsPerWindow  int
	RateWindow         time.Duration
	BreakerFailures    int
	OutputFormat       string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		APIKey:             config.APIKey,
		AccessToken:        config.AccessToken,
		Language:           config.Language,
		BaseURL:            config.BaseURL,
		ImageBaseURL:       config.ImageBaseURL,
		Timeout:            config.Timeout,
		MaxThrottleRetries: config.MaxThrottleRetries,
		RequestsPerSecond:  config.RequestsPerSecond,
		RequestsPerWindow:  config.RequestsPerWindow,
		RateWindow:         config.RateWindow,
		BreakerFailures:    config.BreakerFailures,
		OutputFormat:       config.OutputFormat,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.APIKey = state.APIKey
	config.AccessToken = state.AccessToken
	config.Language = state.Language
	config.BaseURL = state.BaseURL
	config.ImageBaseURL = state.ImageBaseURL
	config.Timeout = state.Timeout
	config.MaxThrottleRetries = state.MaxThrottleRetries
	config.RequestsPerSecond = state.RequestsPerSecond
	config.RequestsPerWindow = state.RequestsPerWindow
	config.RateWindow = state.RateWindow
	config.BreakerFailures = state.BreakerFailures
	config.OutputFormat = state.OutputFormat
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig points the configuration at a fake API. Both the config
// globals and the viper keys InitConfig reads are set, so code that reloads
// the configuration sees the same values. The previous state is restored
// when the test completes.
func SetTestConfig(t *testing.T, srv *Server) {
	t.Helper()

	ResetConfig(t)

	values := map[string]any{
		"tmdb.api_key":              "test-tmdb-key",
		"tmdb.access_token":         "",
		"tmdb.language":             "en-US",
		"tmdb.timeout":              "5s",
		"tmdb.max_throttle_retries": 10,
		"tmdb.requests_per_second":  0,
		"tmdb.requests_per_window":  0,
		"tmdb.circuit_breaker":      0,
		"output.format":             "json",
	}
	if srv != nil {
		values["tmdb.base_url"] = srv.BaseURL()
		values["tmdb.image_base_url"] = srv.URL() + "/t/p"
	}
	for k, v := range values {
		viper.Set(k, v)
	}
	config.InitConfig()
}
