// Package identity provides the domain model for users and sessions in the
// storefront client.
//
// The package includes:
//   - Role: the immutable part a user plays (customer, shop, delivery, admin)
//   - UserRef: the client's reference to a user known to the remote store
//   - Session / SessionStatus: an immutable snapshot of the authenticated
//     session and its lifecycle state
//
// Key business rules:
//   - Role is assigned at registration and never changes afterwards
//   - A session starts Unknown, resolves to Authenticated or Anonymous on
//     rehydration, and flips to Anonymous on logout or credential
//     invalidation
//   - Unknown means "still loading" and must never be read as a denial
package identity
