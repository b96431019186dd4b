package order

import (
	"errors"
	"fmt"
	"time"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/identity"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Address is the delivery destination captured at checkout.
type Address struct {
	Street string
	City   string
}

// Validate checks that the address names at least a street.
func (a Address) Validate() error {
	if a.Street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	return nil
}

// Order is the client-side model of one placed order. It is the aggregate
// the tracking and order views operate on.
//
// Order follows these invariants:
//   - Must have a valid store-assigned identifier, owner, and shop
//   - Lines are a by-value snapshot of the cart at checkout; later cart
//     mutation never affects a placed order
//   - Status is only changed by adopting the authoritative order echoed
//     back by the remote store; the client never advances status locally
//   - Can only be created through the NewOrder constructor
type Order struct {
	id kernel.ID

	// owner is the customer the order belongs to
	owner identity.UserRef

	// shopID identifies the shop the order was placed against
	shopID kernel.ID

	// lines is the cart snapshot the order was created from
	lines cart.Lines

	// deliveryAddress is the destination captured at checkout
	deliveryAddress Address

	// status is the current state in the order lifecycle
	status Status

	// agent is the assigned delivery agent (nil while unassigned)
	agent *identity.UserRef

	// agentLocation is the agent's last known position (nil when unknown)
	agentLocation *kernel.GeoPoint

	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates an Order from remote store data with validation.
// The line slice is cloned so the order cannot observe later mutation of
// the caller's slice.
func NewOrder(
	id kernel.ID,
	owner identity.UserRef,
	shopID kernel.ID,
	lines cart.Lines,
	deliveryAddress Address,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		owner.Validate(),
		shopID.Validate(),
		deliveryAddress.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		owner:           owner,
		shopID:          shopID,
		lines:           lines.Clone(),
		deliveryAddress: deliveryAddress,
		status:          status,
		createdAt:       createdAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through
// NewOrder. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's store-assigned identifier.
func (o *Order) ID() kernel.ID {
	return o.id
}

// Owner returns the customer the order belongs to.
func (o *Order) Owner() identity.UserRef {
	return o.owner
}

// ShopID returns the identifier of the shop the order was placed against.
func (o *Order) ShopID() kernel.ID {
	return o.shopID
}

// Lines returns a copy of the order's line snapshot.
func (o *Order) Lines() cart.Lines {
	return o.lines.Clone()
}

// Total returns the monetary total of the order's line snapshot.
func (o *Order) Total() kernel.Money {
	return o.lines.Total()
}

// DeliveryAddress returns the destination captured at checkout.
func (o *Order) DeliveryAddress() Address {
	return o.deliveryAddress
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Agent returns the assigned delivery agent, or nil while unassigned.
func (o *Order) Agent() *identity.UserRef {
	return o.agent
}

// AgentLocation returns the agent's last known position, or nil.
func (o *Order) AgentLocation() *kernel.GeoPoint {
	return o.agentLocation
}

// CreatedAt returns the order's creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SetAgent records the delivery agent assigned by the remote store, with an
// optional last known position. Used when reconstructing orders from remote
// responses; assignment itself is a backend decision the client only
// mirrors.
func (o *Order) SetAgent(agent identity.UserRef, location *kernel.GeoPoint) error {
	if err := agent.Validate(); err != nil {
		return err
	}
	if agent.Role() != identity.RoleDelivery {
		return errs.NewValueIsInvalidErrorWithCause(
			"agent", fmt.Errorf("%s is not a delivery agent", agent.Role()))
	}

	o.agent = &agent
	o.agentLocation = location
	return nil
}

// AuthorizeTransition checks that moving the order to next is both a legal
// lifecycle step and permitted for the requesting actor. The order is never
// mutated: on success the caller submits the change to the remote store and
// adopts the authoritative echo.
//
// Authorization rules:
//   - Pending -> Accepted -> OutForDelivery -> Delivered may only be
//     advanced by the assigned delivery agent or an admin
//   - Cancelled may only be triggered by the owning customer, the shop, or
//     an admin, and only while the order is Pending or Accepted
//
// Returns:
//   - nil when the actor may request the transition
//   - InvalidTransitionError for an illegal pair or a disallowed actor
func (o *Order) AuthorizeTransition(actor identity.UserRef, next Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.status.CanTransitionTo(next); err != nil {
		return err
	}

	if next == Cancelled {
		return o.authorizeCancel(actor)
	}
	return o.authorizeAdvance(actor, next)
}

func (o *Order) authorizeCancel(actor identity.UserRef) error {
	switch actor.Role() {
	case identity.RoleAdmin, identity.RoleShop:
		return nil
	case identity.RoleCustomer:
		if actor.IsEqual(o.owner) {
			return nil
		}
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), Cancelled.String(),
			fmt.Errorf("customer %s does not own this order", actor.ID()))
	default:
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), Cancelled.String(),
			fmt.Errorf("%s may not cancel orders", actor.Role()))
	}
}

func (o *Order) authorizeAdvance(actor identity.UserRef, next Status) error {
	if actor.Role() == identity.RoleAdmin {
		return nil
	}
	if actor.Role() == identity.RoleDelivery && o.agent != nil && actor.IsEqual(*o.agent) {
		return nil
	}

	return errs.NewInvalidTransitionErrorWithCause(
		o.status.String(), next.String(),
		fmt.Errorf("%s %s is not the assigned delivery agent", actor.Role(), actor.ID()))
}
