package backendapi

import (
	"context"
	"net/http"

	"localshop/internal/core/domain/model/cart"
	"localshop/internal/core/domain/model/kernel"
)

// CartClient implements ports.CartAPI against the store's cart endpoints.
type CartClient struct {
	client *Client
}

// NewCartClient creates a cart client over the shared store client.
func NewCartClient(client *Client) *CartClient {
	return &CartClient{client: client}
}

// Fetch retrieves the current server cart.
func (c *CartClient) Fetch(ctx context.Context) (cart.Lines, error) {
	var dto cartDTO
	if err := c.client.do(ctx, http.MethodGet, "/cart", nil, &dto, true); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// AddItem adds quantity units of a product and returns the echoed cart.
func (c *CartClient) AddItem(ctx context.Context, productID kernel.ID, quantity int) (cart.Lines, error) {
	body := map[string]any{"productId": productID.String(), "quantity": quantity}

	var dto cartDTO
	if err := c.client.do(ctx, http.MethodPost, "/cart", body, &dto, true); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// RemoveItem removes a product's line and returns the echoed cart.
func (c *CartClient) RemoveItem(ctx context.Context, productID kernel.ID) (cart.Lines, error) {
	var dto cartDTO
	if err := c.client.do(ctx, http.MethodDelete, "/cart/"+productID.String(), nil, &dto, true); err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// Clear empties the server cart. The endpoint answers a bare confirmation
// message, so the response body is not decoded.
func (c *CartClient) Clear(ctx context.Context) error {
	return c.client.do(ctx, http.MethodDelete, "/cart", nil, nil, false)
}
