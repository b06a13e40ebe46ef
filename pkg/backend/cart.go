package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vovantri123/glamora-store-api/pkg/models"
)

// GetCart fetches the current cart; this is the source of truth the cached
// snapshot resynchronizes against.
func (c *Client) GetCart(ctx context.Context) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &cart); err != nil {
		return nil, err
	}
	cart.RecalculateTotals()
	return &cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, req *models.AddToCartRequest) (*models.Cart, error) {
	var cart models.Cart
	if err := c.do(ctx, http.MethodPost, "/api/cart/items", req, &cart); err != nil {
		return nil, err
	}
	cart.RecalculateTotals()
	return &cart, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID string, req *models.UpdateCartItemRequest) (*models.Cart, error) {
	var cart models.Cart
	path := fmt.Sprintf("/api/cart/items/%s", itemID)
	if err := c.do(ctx, http.MethodPut, path, req, &cart); err != nil {
		return nil, err
	}
	cart.RecalculateTotals()
	return &cart, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (*models.Cart, error) {
	var cart models.Cart
	path := fmt.Sprintf("/api/cart/items/%s", itemID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &cart); err != nil {
		return nil, err
	}
	cart.RecalculateTotals()
	return &cart, nil
}
