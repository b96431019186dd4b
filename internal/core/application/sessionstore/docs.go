// Package sessionstore owns the client's authentication session.
//
// The Store is the single holder of "who is signed in": it rehydrates a
// persisted session on startup, performs login, registration and logout
// against the remote store, and invalidates the session when the remote
// store rejects the token. Every other component reads the session through
// Snapshot and the bearer token through Token.
package sessionstore
