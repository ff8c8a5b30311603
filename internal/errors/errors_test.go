package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lepinkainen/tmdbkit/tmdb"
)

func TestStopProcessingError(t *testing.T) {
	err := NewStopProcessingError("user stopped")

	assert.Equal(t, "user stopped", err.Error())
	assert.True(t, IsStopProcessingError(err))
	assert.True(t, IsStopProcessingError(stdErrors.Join(err)))
	assert.False(t, IsStopProcessingError(stdErrors.New("other")))
}

func TestConfigError(t *testing.T) {
	assert.Equal(t, "config tmdb.api_key is not set", NewConfigError("tmdb.api_key", "").Error())
	assert.Equal(t, "config output.format: unknown format \"xml\"",
		NewConfigError("output.format", `unknown format "xml"`).Error())
	assert.True(t, IsConfigError(fmt.Errorf("startup: %w", NewConfigError("tmdb.api_key", ""))))
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: ExitOK},
		{name: "stopped", err: NewStopProcessingError("q"), expected: ExitOK},
		{name: "config", err: NewConfigError("tmdb.api_key", ""), expected: ExitConfig},
		{name: "throttled", err: fmt.Errorf("%w: %w", tmdb.ErrThrottled, &tmdb.ServiceError{StatusCode: 429}), expected: ExitThrottled},
		{name: "not found", err: &tmdb.ServiceError{StatusCode: 404, ServiceCode: tmdb.StatusResourceNotFound}, expected: ExitNotFound},
		{name: "auth", err: fmt.Errorf("movie: %w", &tmdb.ServiceError{StatusCode: 401, ServiceCode: tmdb.StatusInvalidAPIKey}), expected: ExitAuth},
		{name: "other", err: stdErrors.New("boom"), expected: ExitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExitCode(tc.err))
		})
	}
}
