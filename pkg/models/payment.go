package models

// Payment method kinds. Cash-on-delivery settles synchronously when the
// payment record is created; gateway methods hand the shopper to an external
// provider via a redirect URL.
const (
	PaymentKindCOD     = "cod"
	PaymentKindGateway = "gateway"
)

type PaymentMethod struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (m *PaymentMethod) IsRedirect() bool {
	return m != nil && m.Kind == PaymentKindGateway
}

type CreatePaymentRequest struct {
	OrderID         string `json:"order_id"`
	PaymentMethodID string `json:"payment_method_id"`
}

// Payment is the backend's payment record. RedirectURL is only present for
// gateway methods; its absence there is treated as a failed payment leg.
type Payment struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	MethodID    string `json:"payment_method_id"`
	Status      string `json:"status"`
	RedirectURL string `json:"redirect_url,omitempty"`
}
