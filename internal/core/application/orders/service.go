package orders

import (
	"context"
	"errors"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
	"localshop/internal/core/ports"
	"localshop/internal/pkg/errs"
)

// CartMirror is the slice of the cart store the order service needs:
// the current contents for the checkout snapshot, and a clear to empty
// the cart once the order is placed.
type CartMirror interface {
	Lines() cart.Lines
	Clear(ctx context.Context) error
}

// Service coordinates order operations against the remote store.
//
// The remote store is the single source of truth for order state. The
// service checks transitions locally with the domain rules before
// submitting them, but it always adopts the order echoed back by the store
// rather than applying any change itself.
type Service struct {
	api  ports.OrderAPI
	cart CartMirror
}

// NewService creates an order service over the given order API and cart
// mirror.
func NewService(api ports.OrderAPI, cartMirror CartMirror) (*Service, error) {
	if api == nil {
		return nil, errs.NewValueIsRequiredError("api")
	}
	if cartMirror == nil {
		return nil, errs.NewValueIsRequiredError("cartMirror")
	}
	return &Service{api: api, cart: cartMirror}, nil
}

// Checkout places an order from a snapshot of the current cart, delivered
// to the given address. The line set is copied by value before the call,
// so cart mutations racing the checkout cannot change what was ordered.
// The selling shop is taken from the snapshot's first line. After the
// store accepts the order the cart is cleared on a best effort basis.
//
// Returns CartError when the local cart is empty, so an accidental
// double-submit after checkout fails fast without a round trip.
func (s *Service) Checkout(ctx context.Context, deliveryAddress string) (*order.Order, error) {
	if deliveryAddress == "" {
		return nil, errs.NewValueIsRequiredError("deliveryAddress")
	}

	snapshot := s.cart.Lines().Clone()
	if len(snapshot) == 0 {
		return nil, errs.NewCartError("checkout with empty cart")
	}

	shopID := snapshot[0].ShopID()
	if err := shopID.Validate(); err != nil {
		return nil, errs.NewCartErrorWithCause("checkout without a shop reference", err)
	}

	placed, err := s.api.Checkout(ctx, shopID, snapshot, deliveryAddress)
	if err != nil {
		return nil, err
	}

	_ = s.cart.Clear(ctx)

	return placed, nil
}

// MyOrders retrieves the orders placed by the current user.
func (s *Service) MyOrders(ctx context.Context) ([]*order.Order, error) {
	return s.api.MyOrders(ctx)
}

// AssignedOrders retrieves the orders assigned to the current user as
// delivery agent.
func (s *Service) AssignedOrders(ctx context.Context) ([]*order.Order, error) {
	return s.api.AssignedOrders(ctx)
}

// Get retrieves one order by its identifier.
func (s *Service) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return s.api.Get(ctx, id)
}

// UpdateStatus submits a status transition on behalf of actor and returns
// the order as the store sees it afterwards.
//
// The transition is authorized locally against the current order first:
// an illegal step or a disallowed actor fails with InvalidTransitionError
// before anything reaches the store. The store applies its own checks too;
// a rejection there is returned as-is and nothing is adopted.
func (s *Service) UpdateStatus(
	ctx context.Context,
	actor identity.UserRef,
	id kernel.ID,
	next order.Status,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), next.Validate()); err != nil {
		return nil, err
	}

	current, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := current.AuthorizeTransition(actor, next); err != nil {
		return nil, err
	}

	return s.api.UpdateStatus(ctx, id, next)
}
