package errs

import (
	"errors"
	"fmt"
)

// ErrConfiguration is the sentinel for missing or unusable pricing configuration.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing pricing table, a missing weight rule or
// an invalid carrier parameter such as a non-positive volumetric divisor.
type ConfigurationError struct {
	Scope  Scope
	Reason string
	Cause  error
}

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(scope Scope, reason string) *ConfigurationError {
	return &ConfigurationError{Scope: scope, Reason: reason}
}

// NewConfigurationErrorWithCause creates a ConfigurationError with an underlying cause.
func NewConfigurationErrorWithCause(scope Scope, reason string, cause error) *ConfigurationError {
	return &ConfigurationError{Scope: scope, Reason: reason, Cause: cause}
}

func (e *ConfigurationError) Error() string {
	msg := withScope(fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason), e.Scope)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
