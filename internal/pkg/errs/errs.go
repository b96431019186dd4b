package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used as unwrap targets for error classification.
// Callers can use errors.Is with these sentinels to branch on error kind
// without depending on concrete error types.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")

	ErrAuth              = errors.New("authentication failed")
	ErrCart              = errors.New("cart operation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrChannel           = errors.New("tracking channel failed")
)

// sanitize collapses newlines in error output so that multi-line causes
// cannot break log formatting.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

func withCause(message string, cause error) string {
	if cause == nil {
		return sanitize(message)
	}
	return sanitize(fmt.Sprintf("%s (cause: %s)", message, cause))
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the named parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the named parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a value is outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError describing the violated bounds.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("value is invalid: %v is %s, min value is %v, max value is %v", e.Value, e.ParamName, e.Min, e.Max),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError indicates that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause == nil {
		return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
	}
	return withCause(fmt.Sprintf("%s: param is: %s, ID is: %v", ErrObjectNotFound, e.ParamName, e.ID), e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// AuthError indicates a failed authentication or an invalidated credential.
// Observing an AuthError from any remote call escalates to global session
// invalidation, not just a local failure.
type AuthError struct {
	Op    string
	Cause error
}

// NewAuthError creates an AuthError for the named operation.
func NewAuthError(op string) *AuthError {
	return &AuthError{Op: op}
}

// NewAuthErrorWithCause creates an AuthError wrapping an underlying cause.
func NewAuthErrorWithCause(op string, cause error) *AuthError {
	return &AuthError{Op: op, Cause: cause}
}

func (e *AuthError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrAuth, e.Op), e.Cause)
}

func (e *AuthError) Unwrap() error {
	return ErrAuth
}

// CartError indicates a failed cart mutation. Local cart state is left
// unchanged when a CartError is returned.
type CartError struct {
	Op    string
	Cause error
}

// NewCartError creates a CartError for the named operation.
func NewCartError(op string) *CartError {
	return &CartError{Op: op}
}

// NewCartErrorWithCause creates a CartError wrapping an underlying cause.
func NewCartErrorWithCause(op string, cause error) *CartError {
	return &CartError{Op: op, Cause: cause}
}

func (e *CartError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrCart, e.Op), e.Cause)
}

func (e *CartError) Unwrap() error {
	return ErrCart
}

// InvalidTransitionError indicates an order status change that is not legal
// from the current status, or not permitted for the requesting actor.
// The order is left unchanged.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

// NewInvalidTransitionError creates an InvalidTransitionError for the rejected pair.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// NewInvalidTransitionErrorWithCause creates an InvalidTransitionError wrapping an underlying cause.
func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To), e.Cause)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ChannelError indicates a realtime channel failure: a failed connect, a
// dropped connection, or a scope conflict. Channel failures are recoverable
// by falling back to the request/response path.
type ChannelError struct {
	Op    string
	Cause error
}

// NewChannelError creates a ChannelError for the named operation.
func NewChannelError(op string) *ChannelError {
	return &ChannelError{Op: op}
}

// NewChannelErrorWithCause creates a ChannelError wrapping an underlying cause.
func NewChannelErrorWithCause(op string, cause error) *ChannelError {
	return &ChannelError{Op: op, Cause: cause}
}

func (e *ChannelError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrChannel, e.Op), e.Cause)
}

func (e *ChannelError) Unwrap() error {
	return ErrChannel
}
