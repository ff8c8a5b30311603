package tmdb

import (
	"errors"
	"fmt"
)

// Service status codes with a meaning callers commonly branch on.
// The full value space is defined by the service.
const (
	StatusSuccess              = 1
	StatusAuthenticationFailed = 3
	StatusInvalidAPIKey        = 7
	StatusUpdated              = 12
	StatusDeleted              = 13
	StatusInvalidParameters    = 22
	StatusRequestLimit         = 25
	StatusSessionDenied        = 17
	StatusInvalidCredentials   = 30
	StatusInvalidToken         = 33
	StatusResourceNotFound     = 34
)

var (
	// ErrThrottled is returned when the service kept throttling a call past
	// the configured retry ceiling.
	ErrThrottled = errors.New("tmdb: throttle retry limit reached")
	// ErrInvalidArgument is returned when a required argument is missing.
	ErrInvalidArgument = errors.New("tmdb: invalid argument")
	// ErrUnsupportedSource is returned by Find for an unknown external source.
	ErrUnsupportedSource = errors.New("tmdb: unsupported external source")
)

// ServiceError is the normalized form of every non-success response.
type ServiceError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// ServiceCode is the service status code from the response body,
	// or 0 when the body did not carry one.
	ServiceCode int
	Message     string
}

func (e *ServiceError) Error() string {
	if e.ServiceCode != 0 {
		return fmt.Sprintf("tmdb: status %d (code %d): %s", e.StatusCode, e.ServiceCode, e.Message)
	}
	return fmt.Sprintf("tmdb: status %d: %s", e.StatusCode, e.Message)
}

// ServiceCodeOf returns the service status code carried by err, or 0.
func ServiceCodeOf(err error) int {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.ServiceCode
	}
	return 0
}

// IsNotFound reports whether err is a "resource not found" service error.
func IsNotFound(err error) bool {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		return false
	}
	return svcErr.ServiceCode == StatusResourceNotFound ||
		(svcErr.ServiceCode == 0 && svcErr.StatusCode == 404)
}

// IsAuthFailure reports whether err is an authentication or authorization failure.
func IsAuthFailure(err error) bool {
	switch ServiceCodeOf(err) {
	case StatusAuthenticationFailed, StatusInvalidAPIKey, StatusSessionDenied, StatusInvalidCredentials, StatusInvalidToken:
		return true
	}
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.ServiceCode == 0 && svcErr.StatusCode == 401
}

// IsInvalidRequest reports whether err was caused by invalid request parameters.
func IsInvalidRequest(err error) bool {
	return ServiceCodeOf(err) == StatusInvalidParameters
}
