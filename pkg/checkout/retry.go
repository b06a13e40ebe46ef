package checkout

import (
	"context"

	"github.com/vovantri123/glamora-store-api/pkg/global"
	"github.com/vovantri123/glamora-store-api/pkg/models"
)

// RetryPayment re-runs only the payment leg for an order that is still
// PENDING, typically after an earlier payment failure or an abandoned
// gateway redirect. The order itself is never recreated.
func (s *Service) RetryPayment(ctx context.Context, sessionID, orderID, methodID string) (*models.CheckoutResult, error) {
	ok, err := s.session.TryBeginCheckout(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, global.NewError(global.KindConflict, "A checkout is already in progress for this session")
	}
	defer s.session.EndCheckout(ctx, sessionID)

	order, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanRetryPayment() {
		return nil, global.NewError(global.KindConflict, "This order can no longer be paid")
	}

	if methodID == "" {
		methodID = order.PaymentMethodID
	}
	method, err := s.api.GetPaymentMethod(ctx, methodID)
	if err != nil {
		return nil, err
	}

	attemptID := s.beginJournal(ctx, sessionID, &models.PlaceOrderRequest{
		AddressID:       order.AddressID,
		PaymentMethodID: method.ID,
	})
	s.attachOrder(ctx, attemptID, order)

	// The order already exists, so the trail walks straight through the
	// order stage to the payment stage.
	state := s.advance(ctx, attemptID, models.CheckoutStateValidating, models.CheckoutStateCreatingOrder)
	state = s.advance(ctx, attemptID, state, models.CheckoutStateCreatingPayment)

	// Nothing left to settle in the session; the items left the cart when
	// the order was first placed.
	return s.paymentLeg(ctx, sessionID, attemptID, state, order, method, models.NewSelection())
}
