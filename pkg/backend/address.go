package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vovantri123/glamora-store-api/pkg/models"
)

func (c *Client) ListAddresses(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	if err := c.do(ctx, http.MethodGet, "/api/addresses", nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetDefaultAddress fetches the single address the backend flags as default.
// Sole-default is a backend invariant; after any default change the UI
// re-fetches rather than patching locally.
func (c *Client) GetDefaultAddress(ctx context.Context) (*models.Address, error) {
	var address models.Address
	if err := c.do(ctx, http.MethodGet, "/api/addresses/default", nil, &address); err != nil {
		return nil, err
	}
	return &address, nil
}

func (c *Client) GetAddress(ctx context.Context, addressID string) (*models.Address, error) {
	var address models.Address
	path := fmt.Sprintf("/api/addresses/%s", addressID)
	if err := c.do(ctx, http.MethodGet, path, nil, &address); err != nil {
		return nil, err
	}
	return &address, nil
}
