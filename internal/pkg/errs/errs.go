// Package errs provides the standardized error taxonomy for the application.
// Every failure surfaced by the fulfillment core belongs to one of the
// categories below, each with a sentinel error for classification via
// errors.Is and a struct type carrying details.
//
// Categories:
//   - ValueIsRequiredError / ValueIsInvalidError: malformed or missing input
//   - ObjectNotFoundError: the referenced entity does not exist
//   - InvalidTransitionError: a state-machine guard rejected the transition
//   - ConflictError: the entity changed concurrently; the caller may retry
//   - UnauthorizedError: the acting user may not perform the action
//   - DuplicateError: a uniqueness constraint would be violated
//   - ProviderError: the payment gateway failed or answered abnormally
//
// Each type follows the same pattern: a sentinel variable, a constructor
// (plus a WithCause variant where a wrapped cause is useful), Error() for
// formatting and Unwrap() so errors.Is matches the sentinel.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as errors.Is targets for classification.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrObjectNotFound    = errors.New("object not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("concurrent modification conflict")
	ErrUnauthorized      = errors.New("actor is not authorized")
	ErrDuplicate         = errors.New("duplicate object")
	ErrProvider          = errors.New("payment provider error")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func (e *ValueIsRequiredError) Error() string {
	return fmt.Sprintf("value is required: %s", e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a supplied value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is invalid: %s (cause: %s)", e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("value is invalid: %s", e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates that an entity lookup failed.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("object not found: param is: %s, ID is: %s (cause: %s)",
			e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("object not found: %s", sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// InvalidTransitionError indicates that a state machine rejected a transition
// because the entity is not in the expected source state. The entity is
// guaranteed to be unchanged.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidTransitionError(entity, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s cannot move from %s to %s", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError indicates that a guarded compare-and-set lost a race: the
// entity's status changed between read and commit. Nothing was modified and
// the operation may be retried against fresh state.
type ConflictError struct {
	Entity string
	ID     any
}

func NewConflictError(entity string, id any) *ConflictError {
	return &ConflictError{Entity: entity, ID: id}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s %s was modified concurrently", e.Entity, sanitize(e.ID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UnauthorizedError indicates that the acting user is not permitted to
// perform the requested action on the target entity.
type UnauthorizedError struct {
	Action  string
	ActorID any
}

func NewUnauthorizedError(action string, actorID any) *UnauthorizedError {
	return &UnauthorizedError{Action: action, ActorID: actorID}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: actor %s may not %s", sanitize(e.ActorID), e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// DuplicateError indicates that creating the object would violate a
// uniqueness constraint (second payment per order, second active assignment,
// second rating for the same subject pair).
type DuplicateError struct {
	What string
	Key  any
}

func NewDuplicateError(what string, key any) *DuplicateError {
	return &DuplicateError{What: what, Key: key}
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate: %s already exists for %s", e.What, sanitize(e.Key))
}

func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}

// ProviderError indicates a failure while talking to the payment gateway.
type ProviderError struct {
	Op    string
	Cause error
}

func NewProviderError(op string, cause error) *ProviderError {
	return &ProviderError{Op: op, Cause: cause}
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payment provider error: %s (cause: %s)", e.Op, sanitize(e.Cause))
	}
	return fmt.Sprintf("payment provider error: %s", e.Op)
}

func (e *ProviderError) Unwrap() error {
	return ErrProvider
}
