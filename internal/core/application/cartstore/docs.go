// Package cartstore mirrors the server-owned shopping cart on the client.
//
// The Store writes every mutation through to the remote store and adopts
// the cart echoed back, discarding responses that arrive after a
// later-started call has already been applied. The total is never cached:
// it is recomputed from the lines on every read.
package cartstore
