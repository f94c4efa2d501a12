package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is the sentinel for malformed requests and inconsistent rule sets.
var ErrValidation = errors.New("validation failed")

// Violation is a single failed check. RuleID is empty for request violations.
type Violation struct {
	RuleID  string `json:"ruleId,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.RuleID != "" {
		return fmt.Sprintf("rule %s: %s: %s", v.RuleID, v.Field, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationError carries the complete list of violations found by a check.
// It is never produced for the first failure alone.
type ValidationError struct {
	Violations []Violation
}

// NewValidationError creates a ValidationError from the collected violations.
func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: append([]Violation(nil), violations...)}
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %d violation(s): %s", ErrValidation, len(e.Violations), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Messages returns the rendered violations in order.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.String()
	}
	return out
}
