package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when a
// nil error is passed, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created
// through their designated constructor functions. A zero-value struct fails
// validation, which lets repositories and handlers detect aggregates that
// bypassed invariant checks.
//
// Embed a ConstructorGuard in the struct, set it with NewConstructorGuard in
// the constructor, and delegate to Validate from the object's own Validate
// method with a type-specific error.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was built via its constructor,
// otherwise the provided error (or ErrDefaultConstructorGuard when nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
