package models

// CheckoutState tracks a single checkout attempt through the orchestrator.
type CheckoutState string

const (
	CheckoutStateIdle                 CheckoutState = "IDLE"
	CheckoutStateValidating           CheckoutState = "VALIDATING"
	CheckoutStateCreatingOrder        CheckoutState = "CREATING_ORDER"
	CheckoutStateCreatingPayment      CheckoutState = "CREATING_PAYMENT"
	CheckoutStateRedirectingToGateway CheckoutState = "REDIRECTING_TO_GATEWAY"
	CheckoutStateFinalized            CheckoutState = "FINALIZED"
	CheckoutStateFailed               CheckoutState = "FAILED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateRedirectingToGateway ||
		s == CheckoutStateFinalized ||
		s == CheckoutStateFailed
}

func (s CheckoutState) String() string {
	return string(s)
}

// checkoutTransitions is the allowed-transition table. Terminal states have
// no outgoing edges; an attempt is never revisited once it reaches one.
var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutStateIdle:            {CheckoutStateValidating},
	CheckoutStateValidating:      {CheckoutStateCreatingOrder, CheckoutStateFailed},
	CheckoutStateCreatingOrder:   {CheckoutStateCreatingPayment, CheckoutStateFailed},
	CheckoutStateCreatingPayment: {CheckoutStateRedirectingToGateway, CheckoutStateFinalized, CheckoutStateFailed},
}

// CanTransitionTo reports whether the state machine allows moving from s to
// next.
func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	for _, allowed := range checkoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Navigation targets handed back to the storefront UI after an attempt.
const (
	NavigateOrderConfirmation = "order_confirmation"
	NavigateOrderDetail       = "order_detail"
	NavigateGateway           = "gateway"
)

// PlaceOrderRequest is the storefront's checkout submission.
type PlaceOrderRequest struct {
	AddressID       string `json:"address_id"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	Note            string `json:"note,omitempty"`
}

// CheckoutResult is the directive the UI follows once an attempt finishes.
// Payment failure after a created order is represented here as a successful
// result pointing at the order detail view: the order is real and must not
// look rolled back.
type CheckoutResult struct {
	State       CheckoutState `json:"state"`
	NavigateTo  string        `json:"navigate_to"`
	RedirectURL string        `json:"redirect_url,omitempty"`
	OrderID     string        `json:"order_id,omitempty"`
	OrderCode   string        `json:"order_code,omitempty"`
	Message     string        `json:"message,omitempty"`
}
