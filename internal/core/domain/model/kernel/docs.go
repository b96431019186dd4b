// Package kernel provides core domain primitives for the storefront client.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - ID: A value object for identifiers minted by the remote store
//   - GeoPoint: A value object for latitude/longitude positions reported
//     by delivery agents
//   - Money: An integer-cents value object used for prices and cart totals
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are designed to be
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
