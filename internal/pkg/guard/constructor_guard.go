// Package guard provides the ConstructorGuard used by value objects and
// commands to tell constructor-built values apart from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Embedding it in a
// struct lets Validate reject zero values, which keeps invariants such as
// "a Money always has a currency" enforceable without pointer receivers.
//
// Example usage:
//
//	var ErrDimensionsNotConstructed = errors.New("Dimensions must be created via NewDimensions")
//
//	type Dimensions struct {
//	    length, width, height decimal.Decimal
//	    guard                 guard.ConstructorGuard
//	}
//
//	func (d Dimensions) Validate() error {
//	    return d.guard.Validate(ErrDimensionsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it only from
// constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) if
// the guarded value was not built by its constructor, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
