package models

import "time"

// Order status lifecycle. Transitions are server-authoritative; the
// storefront only requests them and displays the result.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipping  = "SHIPPING"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCanceled  = "CANCELED"
)

// OrderLine is a (variant, quantity) pair drawn from a selected cart item.
type OrderLine struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type OrderItem struct {
	VariantID   string  `json:"variant_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

// Order is the backend's snapshot of a placed order. ConfirmedShippingFee is
// the authoritative fee computed at creation time; it is deliberately a
// different field from the preview estimate so nothing downstream can lean
// on the client-side figure.
type Order struct {
	ID                   string      `json:"id"`
	Code                 string      `json:"code"`
	Status               string      `json:"status"`
	Items                []OrderItem `json:"items"`
	Subtotal             float64     `json:"subtotal"`
	DiscountAmount       float64     `json:"discount_amount"`
	ConfirmedShippingFee float64     `json:"confirmed_shipping_fee"`
	Total                float64     `json:"total"`
	AddressID            string      `json:"address_id"`
	PaymentMethodID      string      `json:"payment_method_id"`
	Note                 string      `json:"note,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
}

// CreateOrderRequest is submitted to the backend order-creation endpoint.
// VoucherID and DiscountAmount are copied verbatim from the applied voucher.
type CreateOrderRequest struct {
	AddressID       string      `json:"address_id"`
	PaymentMethodID string      `json:"payment_method_id"`
	Note            string      `json:"note,omitempty"`
	Items           []OrderLine `json:"items"`
	VoucherID       string      `json:"voucher_id,omitempty"`
	DiscountAmount  float64     `json:"discount_amount,omitempty"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CanCancel reports whether the storefront should offer cancellation. The
// backend revalidates against current status either way.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending
}

// CanRetryPayment reports whether the order may have its payment retried.
func (o *Order) CanRetryPayment() bool {
	return o.Status == OrderStatusPending
}

// IsTerminal reports whether the storefront treats the status as final.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCanceled
}
