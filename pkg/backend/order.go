package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vovantri123/glamora-store-api/pkg/models"
)

func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/api/orders/%s", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	path := "/api/orders"
	if status != "" {
		path += "?status=" + status
	}
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder requests a lifecycle transition; the backend validates it
// against the order's current status.
func (c *Client) CancelOrder(ctx context.Context, orderID string, req *models.CancelOrderRequest) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/api/orders/%s/cancel", orderID)
	if err := c.do(ctx, http.MethodPut, path, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ConfirmOrderReceived(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/api/orders/%s/received", orderID)
	if err := c.do(ctx, http.MethodPut, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
