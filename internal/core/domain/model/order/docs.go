// Package order provides domain entities and business logic for order
// lifecycle management in the storefront client. It implements the Order
// aggregate with role-gated state transitions.
//
// The package includes:
//   - Order: the client-side model of one placed order
//   - Status: a state machine that enforces valid order status transitions
//   - Address: the delivery destination captured at checkout
//
// Key business rules:
//   - Order status follows a defined workflow:
//     pending -> accepted -> out_for_delivery -> delivered,
//     with cancellation reachable only from pending or accepted
//   - Advancing the delivery chain is restricted to the assigned delivery
//     agent or an admin; cancelling is restricted to the owning customer,
//     the shop, or an admin
//   - Order lines are a by-value snapshot of the cart at checkout
//   - Status never changes locally; the client submits a transition and
//     adopts the authoritative order echoed back by the remote store
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business rules
// are enforced.
package order
