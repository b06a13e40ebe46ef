package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vovantri123/glamora-store-api/pkg/models"
)

func (c *Client) ListPaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := c.do(ctx, http.MethodGet, "/api/payment-methods", nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (c *Client) GetPaymentMethod(ctx context.Context, methodID string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	path := fmt.Sprintf("/api/payment-methods/%s", methodID)
	if err := c.do(ctx, http.MethodGet, path, nil, &method); err != nil {
		return nil, err
	}
	return &method, nil
}

// CreatePayment creates a payment record for an existing order. Gateway
// methods answer with a redirect URL; cash-on-delivery settles in place.
func (c *Client) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
