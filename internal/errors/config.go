package errors

import (
	"errors"
	"fmt"
)

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Key  string
	Hint string
}

func (e *ConfigError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("config %s: %s", e.Key, e.Hint)
	}
	return fmt.Sprintf("config %s is not set", e.Key)
}

// NewConfigError creates a ConfigError for key.
func NewConfigError(key, hint string) *ConfigError {
	return &ConfigError{Key: key, Hint: hint}
}

// IsConfigError reports whether err is a ConfigError (even when wrapped).
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}
