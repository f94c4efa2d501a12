// Package errs provides standardized error types for the pricing application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic value errors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// And the pricing error taxonomy:
//   - ConfigurationError: missing pricing table or rule, invalid carrier divisor
//   - ValidationError: malformed request or inconsistent rule set, always a complete list
//   - CapacityError: carrier cannot serve the requested weight, dimensions or zone
//   - CalculationError: unexpected arithmetic or lookup failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The pricing errors carry a Scope (carrier, zone, service, weight, rule id)
// so that every failure can be reproduced from its message alone.
package errs
