package errors

import (
	"errors"

	"github.com/lepinkainen/tmdbkit/tmdb"
)

// Process exit codes.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitConfig    = 2
	ExitNotFound  = 3
	ExitAuth      = 4
	ExitThrottled = 5
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil, IsStopProcessingError(err):
		return ExitOK
	case IsConfigError(err):
		return ExitConfig
	case errors.Is(err, tmdb.ErrThrottled):
		return ExitThrottled
	case tmdb.IsNotFound(err):
		return ExitNotFound
	case tmdb.IsAuthFailure(err):
		return ExitAuth
	}
	return ExitFailure
}
