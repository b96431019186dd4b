// Package orders coordinates order placement, listing and status changes
// with the remote store.
//
// Status transitions are checked locally against the domain rules before
// they are submitted, but every state change is adopted from the store's
// echo; the client never advances an order on its own.
package orders
