package backendapi

import (
	"context"
	"errors"
	"net/http"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/kernel"
	"localshop/internal/core/domain/model/order"
	"localshop/internal/pkg/errs"
)

// OrderClient implements ports.OrderAPI against the store's order
// endpoints.
type OrderClient struct {
	client *Client
}

// NewOrderClient creates an order client over the shared store client.
func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

// Checkout places an order from a cart snapshot. The store expects the
// full line set in the body, priced as the client last saw it.
func (c *OrderClient) Checkout(
	ctx context.Context,
	shopID kernel.ID,
	lines cart.Lines,
	deliveryAddress string,
) (*order.Order, error) {
	products := make([]orderProductDTO, 0, len(lines))
	for _, line := range lines {
		products = append(products, orderProductDTO{
			ProductID: line.ProductID().String(),
			Name:      line.ProductName(),
			Quantity:  line.Quantity(),
			Price:     line.UnitPrice().Float64(),
		})
	}

	body := map[string]any{
		"shopId":          shopID.String(),
		"products":        products,
		"deliveryAddress": deliveryAddress,
		"paymentMethod":   "card",
	}

	var dto orderDTO
	if err := c.client.do(ctx, http.MethodPost, "/orders", body, &dto, true); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// MyOrders retrieves the orders placed by the current user.
func (c *OrderClient) MyOrders(ctx context.Context) ([]*order.Order, error) {
	var dtos []orderDTO
	if err := c.client.do(ctx, http.MethodGet, "/orders/my-orders", nil, &dtos, true); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos)
}

// AssignedOrders retrieves the orders assigned to the current user as
// delivery agent.
func (c *OrderClient) AssignedOrders(ctx context.Context) ([]*order.Order, error) {
	var dtos []orderDTO
	if err := c.client.do(ctx, http.MethodGet, "/orders/assigned-orders", nil, &dtos, true); err != nil {
		return nil, err
	}
	return ordersToDomain(dtos)
}

// Get retrieves one order by its identifier via the tracking endpoint.
func (c *OrderClient) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	var dto orderDTO
	if err := c.client.do(ctx, http.MethodGet, "/orders/"+id.String()+"/track", nil, &dto, true); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("orderID", id.String(), err)
		}
		return nil, err
	}
	return dto.toDomain()
}

// UpdateStatus submits a status transition and returns the echoed order.
func (c *OrderClient) UpdateStatus(ctx context.Context, id kernel.ID, next order.Status) (*order.Order, error) {
	body := map[string]string{"status": next.String()}

	var dto orderDTO
	err := c.client.do(ctx, http.MethodPatch, "/orders/"+id.String()+"/status", body, &dto, true)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("orderID", id.String(), err)
		}
		return nil, err
	}
	return dto.toDomain()
}
