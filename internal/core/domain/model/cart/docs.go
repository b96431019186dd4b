// Package cart provides the domain model for the customer's shopping cart.
//
// The package includes:
//   - Line: a value object pairing a resolved product reference with a unit
//     price and a positive quantity
//   - Lines: the confirmed line set with total and snapshot helpers
//
// Key business rules:
//   - Quantity is always a positive integer
//   - Totals are recomputed from the line set on every read, never cached
//   - Lines are values; snapshots taken at checkout are immune to later
//     cart mutation
//
// The cart's authoritative state lives in the remote store. This package
// only models the confirmed shape of that state; the write-through
// synchronization lives in the cartstore application package.
package cart
