// Package errs provides standardized error types for the storefront client core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//
// Generic validation errors used by value objects and constructors:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value is outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// Failure-taxonomy errors returned across store boundaries:
//   - AuthError: bad credentials or an invalidated token; escalates to
//     global session invalidation
//   - CartError: a failed cart mutation; local cart state is unchanged
//   - InvalidTransitionError: an illegal order status change; order unchanged
//   - ChannelError: a realtime channel failure; recovered by re-fetching
//     over the ordinary request path
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrCart)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Remote failures are caught at the store boundary and returned as one of
// these typed failures; nothing in this package (or the stores that use it)
// is fatal to the process.
package errs
