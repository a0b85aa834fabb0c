// Package guard helps value types detect that they were built by their
// constructor rather than declared as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in commands, queries and domain values. Its zero
// value fails Validate; NewConstructorGuard produces one that passes.
//
// Example:
//
//	type GetSearchPageQuery struct {
//	    userID int64
//	    guard  guard.ConstructorGuard
//	}
//
//	func (q GetSearchPageQuery) Validate() error {
//	    return q.guard.Validate(ErrGetSearchPageQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
