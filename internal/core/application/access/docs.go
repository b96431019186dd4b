// Package access decides whether a navigation may reach a role-protected
// route given the current session.
//
// The package exposes a single pure function, Decide, so every surface that
// guards a route shares one authorization rule set. Redirect targets and the
// preserved return route travel in the Decision value; performing the
// redirect is the caller's job.
package access
