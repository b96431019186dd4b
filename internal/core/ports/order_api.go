package ports

import (
	"context"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
)

// OrderAPI defines the order contract with the remote store. The store is
// the single source of truth for order state: every call returns the
// authoritative order(s), and the client adopts what it is given.
type OrderAPI interface {
	// Checkout places an order from a cart snapshot: the selling shop, the
	// line set copied by value, and the customer's delivery address.
	// Returns the newly created order.
	Checkout(ctx context.Context, shopID kernel.ID, lines cart.Lines, deliveryAddress string) (*order.Order, error)

	// MyOrders retrieves the orders placed by the current user.
	MyOrders(ctx context.Context) ([]*order.Order, error)

	// AssignedOrders retrieves the orders assigned to the current user as
	// delivery agent.
	AssignedOrders(ctx context.Context) ([]*order.Order, error)

	// Get retrieves one order by its identifier.
	// Returns ObjectNotFoundError when the store does not know the order.
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)

	// UpdateStatus submits a status transition and returns the order as the
	// store sees it afterwards. The caller adopts the echoed order rather
	// than applying the transition locally.
	UpdateStatus(ctx context.Context, id kernel.ID, next order.Status) (*order.Order, error)
}
