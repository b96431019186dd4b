package access

import (
	"localshop/internal/core/domain/model/identity"
)

// Routes the gate redirects to. They name the two places an unauthorized
// navigation can land.
const (
	LoginRoute = "/login"
	HomeRoute  = "/"
)

// Verdict is the outcome kind of a gate decision.
type Verdict int

const (
	// VerdictUnknown represents an invalid or undefined verdict.
	VerdictUnknown Verdict = iota

	// VerdictAllow lets the navigation proceed.
	VerdictAllow

	// VerdictPending means the session is still being rehydrated and the
	// caller should hold the navigation until the session settles.
	VerdictPending

	// VerdictRedirect sends the navigation to Decision.Target instead.
	VerdictRedirect
)

// String returns a short name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictPending:
		return "pending"
	case VerdictRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of gating one navigation attempt.
//
// When Verdict is VerdictRedirect, Target names the route to go to instead.
// ReturnTo is set only for login redirects and carries the originally
// requested route so the caller can come back after authenticating.
type Decision struct {
	Verdict  Verdict
	Target   string
	ReturnTo string
}

// IsAllowed reports whether the navigation may proceed.
func (d Decision) IsAllowed() bool {
	return d.Verdict == VerdictAllow
}

// Decide gates a navigation to the requested route against the current
// session. allowed lists the roles the route admits; an empty list marks a
// route that only requires authentication.
//
// Rules, in order:
//   - a session still rehydrating yields VerdictPending; the caller must
//     not redirect while the outcome is undecided
//   - an anonymous session is redirected to the login route with ReturnTo
//     set to the requested route
//   - an authenticated session whose identity has not loaded yet also
//     yields VerdictPending: it holds a credential, so routing it to login
//     would discard a sign-in that is still settling
//   - an authenticated session passes an empty allow list
//   - a role outside the allow list is redirected to the home route
//
// Decide is pure: it never mutates the session and has no side effects.
func Decide(session identity.Session, requested string, allowed []identity.Role) Decision {
	if session.Status == identity.SessionUnknown {
		return Decision{Verdict: VerdictPending}
	}

	if !session.IsAuthenticated() {
		return Decision{
			Verdict:  VerdictRedirect,
			Target:   LoginRoute,
			ReturnTo: requested,
		}
	}

	if session.User == nil {
		return Decision{Verdict: VerdictPending}
	}

	if len(allowed) == 0 {
		return Decision{Verdict: VerdictAllow}
	}

	if session.User.Role().OneOf(allowed) {
		return Decision{Verdict: VerdictAllow}
	}

	return Decision{Verdict: VerdictRedirect, Target: HomeRoute}
}
