package ports

import (
	"context"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/kernel"
)

// CartAPI defines the cart contract with the remote store. The server owns
// the cart; every mutation returns the authoritative cart contents so the
// client can adopt them.
type CartAPI interface {
	// Fetch retrieves the current cart contents.
	Fetch(ctx context.Context) (cart.Lines, error)

	// AddItem adds quantity units of a product and returns the resulting
	// cart. Adding a product already in the cart increases its quantity.
	AddItem(ctx context.Context, productID kernel.ID, quantity int) (cart.Lines, error)

	// RemoveItem removes a product's line entirely and returns the
	// resulting cart.
	RemoveItem(ctx context.Context, productID kernel.ID) (cart.Lines, error)

	// Clear empties the cart. The store confirms with a bare 2xx and no
	// cart payload, so nothing is returned to adopt.
	Clear(ctx context.Context) error
}
