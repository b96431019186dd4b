package identity

import (
	"fmt"

	"localshop/internal/pkg/errs"
)

// SessionStatus is the lifecycle state of the client's authenticated session.
//
// State transitions:
//
//	SessionUnknown ──┬──> SessionAuthenticated <──> SessionAnonymous
//	                 └──> SessionAnonymous
//
// A freshly started process is SessionUnknown until rehydration of the
// persisted credential completes. SessionUnknown means "still loading" and
// must never be treated as a denial by access decisions.
type SessionStatus int

const (
	// SessionUnknown is the state before rehydration has completed.
	// The zero value is deliberately Unknown: a session that has not been
	// examined yet must not look authenticated or anonymous.
	SessionUnknown SessionStatus = iota

	// SessionAnonymous means no valid credential is held.
	SessionAnonymous

	// SessionAuthenticated means a credential is held. The identity may lag
	// the credential briefly after a restart until it is fetched again.
	SessionAuthenticated
)

// getSessionStatusStrings returns a map of SessionStatus values to their
// string representations.
func getSessionStatusStrings() map[SessionStatus]string {
	return map[SessionStatus]string{
		SessionUnknown:       "unknown",
		SessionAnonymous:     "anonymous",
		SessionAuthenticated: "authenticated",
	}
}

// Validate checks if the SessionStatus value is one of the defined states.
// Unlike most enums in this codebase, SessionUnknown is a legal state: it is
// the observable "loading" phase, not an uninitialized value.
func (s SessionStatus) Validate() error {
	if _, ok := getSessionStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"session status", fmt.Errorf("%d is not a valid session status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface.
func (s SessionStatus) String() string {
	if str, ok := getSessionStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Session is an immutable snapshot of the client's session state at one
// point in time. It is the input to access decisions and to authorization
// checks on cart and order operations.
//
// Invariant: Token != "" implies the identity will eventually be populated;
// User may be nil immediately after a restart while the identity is still
// being re-fetched.
type Session struct {
	// Status is the lifecycle state the snapshot was taken in.
	Status SessionStatus

	// User is the authenticated identity, or nil when anonymous or when the
	// identity has not been fetched yet.
	User *UserRef

	// Token is the held credential, or the empty string when anonymous.
	Token string
}

// IsAuthenticated reports whether the snapshot holds a credential.
func (s Session) IsAuthenticated() bool {
	return s.Status == SessionAuthenticated
}
